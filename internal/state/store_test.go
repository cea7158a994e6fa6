package state

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/orderdesk/internal/api"
	"github.com/five82/orderdesk/internal/orders"
)

var (
	networkErr = &api.Error{Kind: api.KindNetwork, Op: "GET /x", Err: errors.New("connection refused")}
	serverErr  = &api.Error{Kind: api.KindServer, Op: "GET /x", Status: http.StatusInternalServerError}
)

// failingOrders fails every call with err.
type failingOrders struct{ err error }

func (f failingOrders) List(context.Context) ([]orders.Order, error) { return nil, f.err }
func (f failingOrders) Get(context.Context, string) (orders.Order, error) {
	return orders.Order{}, f.err
}
func (f failingOrders) Create(context.Context, orders.OrderInput) (orders.Order, error) {
	return orders.Order{}, f.err
}
func (f failingOrders) Update(context.Context, string, orders.OrderInput) (orders.Order, error) {
	return orders.Order{}, f.err
}
func (f failingOrders) Delete(context.Context, string) error { return f.err }

// switchableProducts delegates to the mock until err is set.
type switchableProducts struct {
	api.ProductAccess
	mu    sync.Mutex
	err   error
	calls int
}

func (s *switchableProducts) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *switchableProducts) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *switchableProducts) List(ctx context.Context) ([]orders.Product, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.ProductAccess.List(ctx)
}

func (s *switchableProducts) Create(ctx context.Context, in orders.Product) (orders.Product, error) {
	if err := s.check(); err != nil {
		return orders.Product{}, err
	}
	return s.ProductAccess.Create(ctx, in)
}

func (s *switchableProducts) Update(ctx context.Context, id string, in orders.Product) (orders.Product, error) {
	if err := s.check(); err != nil {
		return orders.Product{}, err
	}
	return s.ProductAccess.Update(ctx, id, in)
}

func (s *switchableProducts) Delete(ctx context.Context, id string) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.ProductAccess.Delete(ctx, id)
}

func mockAccess() api.Access {
	return api.NewMockAccess(orders.NewIDGenerator(), nil)
}

func TestOrderStore_FetchLoadsCollection(t *testing.T) {
	s := NewOrderStore(mockAccess().Orders, nil)
	s.Fetch(context.Background())

	snap := s.Snapshot()
	require.Len(t, snap.Items, 3)
	assert.False(t, snap.Loading)
	assert.False(t, snap.Offline)
	assert.Empty(t, snap.Error)
	assert.False(t, snap.LastUpdated.IsZero())

	o, ok := s.ByID(snap.Items[0].ID)
	require.True(t, ok)
	assert.Equal(t, snap.Items[0].OrderNumber, o.OrderNumber)

	_, ok = s.ByID("missing")
	assert.False(t, ok)
}

func TestOrderStore_SnapshotIsIndependent(t *testing.T) {
	s := NewOrderStore(mockAccess().Orders, nil)
	s.Fetch(context.Background())

	snap := s.Snapshot()
	snap.Items[0].Products[0].Quantity = 99
	snap.Items[0].OrderNumber = "changed"

	again := s.Snapshot()
	assert.NotEqual(t, 99, again.Items[0].Products[0].Quantity)
	assert.NotEqual(t, "changed", again.Items[0].OrderNumber)
}

func TestOrderStore_FetchNetworkFailureGoesOfflineWithoutSeed(t *testing.T) {
	s := NewOrderStore(failingOrders{err: networkErr}, nil)
	s.Fetch(context.Background())

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.True(t, snap.Offline)
	assert.Equal(t, MsgFetchOrders, snap.Error)
	assert.False(t, snap.Loading)
}

func TestOrderStore_FetchServerFailureStaysOnline(t *testing.T) {
	s := NewOrderStore(failingOrders{err: serverErr}, nil)
	s.Fetch(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Offline)
	assert.Equal(t, MsgFetchOrders, snap.Error)
}

func TestOrderStore_AddAppendsDerivedOrder(t *testing.T) {
	s := NewOrderStore(mockAccess().Orders, nil)

	created, err := s.Add(context.Background(), orders.OrderInput{
		OrderNumber: "ORD-100",
		Products:    []orders.LineRef{{ID: "1", Quantity: 2}, {ID: "2", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 2, created.ProductCount)
	assert.InDelta(t, 25.0, created.FinalPrice, 1e-9)
	assert.Equal(t, orders.StatusPending, created.Status)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, created.ID, snap.Items[0].ID)
}

func TestOrderStore_UpdateReplacesInPlace(t *testing.T) {
	s := NewOrderStore(mockAccess().Orders, nil)
	s.Fetch(context.Background())
	before := s.Snapshot().Items

	in := orders.InputFromOrder(before[1])
	in.Status = orders.StatusCompleted
	_, err := s.Update(context.Background(), in)
	require.NoError(t, err)

	after := s.Snapshot().Items
	require.Len(t, after, len(before))
	assert.Equal(t, before[1].ID, after[1].ID)
	assert.Equal(t, orders.StatusCompleted, after[1].Status)
}

func TestOrderStore_DeleteDoesNotGuardCompleted(t *testing.T) {
	s := NewOrderStore(mockAccess().Orders, nil)
	s.Fetch(context.Background())

	var completed orders.Order
	for _, o := range s.Snapshot().Items {
		if o.IsCompleted() {
			completed = o
		}
	}
	require.NotEmpty(t, completed.ID)

	require.NoError(t, s.Delete(context.Background(), completed.ID))
	_, ok := s.ByID(completed.ID)
	assert.False(t, ok)
	assert.Len(t, s.Snapshot().Items, 2)
}

func TestOrderStore_MutationFailuresRecordAndReturn(t *testing.T) {
	s := NewOrderStore(failingOrders{err: serverErr}, nil)
	ctx := context.Background()

	_, err := s.Add(ctx, orders.OrderInput{OrderNumber: "X"})
	require.ErrorIs(t, err, serverErr)
	assert.Equal(t, MsgAddOrder, s.Snapshot().Error)

	_, err = s.Update(ctx, orders.OrderInput{ID: "1", OrderNumber: "X"})
	require.Error(t, err)
	assert.Equal(t, MsgUpdateOrder, s.Snapshot().Error)

	require.Error(t, s.Delete(ctx, "1"))
	assert.Equal(t, MsgDeleteOrder, s.Snapshot().Error)
	assert.False(t, s.Snapshot().Loading)
}

func TestOrderStore_ChangesSignalCoalesces(t *testing.T) {
	s := NewOrderStore(mockAccess().Orders, nil)
	s.Fetch(context.Background())
	s.Fetch(context.Background())

	select {
	case <-s.Changes():
	default:
		t.Fatal("expected a pending change signal")
	}
	select {
	case <-s.Changes():
		t.Fatal("signals should coalesce into one")
	default:
	}
}

func TestProductStore_NetworkFailureFallsBackToSeed(t *testing.T) {
	fake := &switchableProducts{ProductAccess: mockAccess().Products}
	fake.fail(networkErr)
	s := NewProductStore(fake, orders.NewIDGenerator(), nil)

	s.Fetch(context.Background())

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 5)
	assert.True(t, snap.Offline)
	assert.Equal(t, MsgOfflineProducts, snap.Error)
	assert.False(t, snap.Loading)
}

func TestProductStore_ServerFailureKeepsCatalog(t *testing.T) {
	fake := &switchableProducts{ProductAccess: mockAccess().Products}
	s := NewProductStore(fake, nil, nil)
	s.Fetch(context.Background())
	require.Len(t, s.Snapshot().Items, 5)

	fake.fail(serverErr)
	s.Fetch(context.Background())

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 5)
	assert.False(t, snap.Offline)
	assert.Equal(t, MsgFetchProducts, snap.Error)
}

func TestProductStore_OfflineMutationsStayLocal(t *testing.T) {
	fake := &switchableProducts{ProductAccess: mockAccess().Products}
	fake.fail(networkErr)
	s := NewProductStore(fake, orders.NewIDGenerator(), nil)
	ctx := context.Background()

	s.Fetch(ctx)
	callsAfterFetch := fake.calls

	added, err := s.Add(ctx, orders.Product{Name: "Milkshake", UnitPrice: 4.5})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	_, err = s.Update(ctx, orders.Product{ID: "5", Name: "Soda Large", UnitPrice: 4})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "2"))

	assert.Equal(t, callsAfterFetch, fake.calls, "offline mutations must not reach the access layer")

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 5)
	p, ok := s.ByID("5")
	require.True(t, ok)
	assert.Equal(t, "Soda Large", p.Name)
	_, ok = s.ByID("2")
	assert.False(t, ok)
	_, ok = s.ByID(added.ID)
	assert.True(t, ok)
}

func TestProductStore_OnlineFailureReturnsError(t *testing.T) {
	fake := &switchableProducts{ProductAccess: mockAccess().Products}
	s := NewProductStore(fake, nil, nil)
	ctx := context.Background()
	s.Fetch(ctx)

	fake.fail(serverErr)
	_, err := s.Add(ctx, orders.Product{Name: "Water"})
	require.Error(t, err)
	assert.Equal(t, MsgAddProduct, s.Snapshot().Error)

	_, err = s.Update(ctx, orders.Product{ID: "1", Name: "x"})
	require.Error(t, err)
	assert.Equal(t, MsgUpdateProduct, s.Snapshot().Error)

	require.Error(t, s.Delete(ctx, "1"))
	assert.Equal(t, MsgDeleteProduct, s.Snapshot().Error)
	assert.Len(t, s.Snapshot().Items, 5)
}

func TestProductStore_RecoversAfterOffline(t *testing.T) {
	fake := &switchableProducts{ProductAccess: mockAccess().Products}
	fake.fail(networkErr)
	s := NewProductStore(fake, nil, nil)
	ctx := context.Background()

	s.Fetch(ctx)
	require.True(t, s.Snapshot().Offline)

	fake.fail(nil)
	s.Fetch(ctx)

	snap := s.Snapshot()
	assert.False(t, snap.Offline)
	assert.Empty(t, snap.Error)
}

// blockingOrders holds List until release is closed.
type blockingOrders struct {
	failingOrders
	entered chan struct{}
	release chan struct{}
}

func (b blockingOrders) List(ctx context.Context) ([]orders.Order, error) {
	close(b.entered)
	<-b.release
	return orders.SeedOrders(time.Now()), nil
}

func TestOrderStore_LoadingWhileInFlight(t *testing.T) {
	fake := blockingOrders{entered: make(chan struct{}), release: make(chan struct{})}
	s := NewOrderStore(fake, nil)

	done := make(chan struct{})
	go func() {
		s.Fetch(context.Background())
		close(done)
	}()

	<-fake.entered
	assert.True(t, s.Snapshot().Loading)

	close(fake.release)
	<-done
	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Len(t, snap.Items, 3)
}
