package state

import (
	"context"

	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/api"
	"github.com/five82/orderdesk/internal/orders"
)

// Display messages recorded by OrderStore.
const (
	MsgFetchOrders = "Failed to fetch orders"
	MsgAddOrder    = "Failed to add order"
	MsgUpdateOrder = "Failed to update order"
	MsgDeleteOrder = "Failed to delete order"
)

// OrderSnapshot is what the UI reads from an OrderStore.
type OrderSnapshot = Snapshot[orders.Order]

// OrderStore holds the order collection shown by the UI.
type OrderStore struct {
	access api.OrderAccess
	log    *zap.Logger
	s      *store[orders.Order]
}

// NewOrderStore returns an empty store backed by access.
func NewOrderStore(access api.OrderAccess, log *zap.Logger) *OrderStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderStore{
		access: access,
		log:    log.Named("orders"),
		s:      newStore(orders.Order.Clone),
	}
}

// Snapshot returns a copy of the current state.
func (o *OrderStore) Snapshot() OrderSnapshot { return o.s.snapshot() }

// Changes signals after every state transition. Signals coalesce.
func (o *OrderStore) Changes() <-chan struct{} { return o.s.changes }

// ByID looks an order up in the held collection.
func (o *OrderStore) ByID(id string) (orders.Order, bool) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	if i := find(o.s.items, id, orderID); i >= 0 {
		return o.s.items[i].Clone(), true
	}
	return orders.Order{}, false
}

// Fetch replaces the collection. Failures are recorded, not returned; the
// store goes offline only when the API could not be reached. There is no
// seed fallback for orders.
func (o *OrderStore) Fetch(ctx context.Context) {
	o.s.begin()
	list, err := o.access.List(ctx)
	if err != nil {
		o.log.Warn("fetch orders failed", zap.Error(err), zap.Bool("network", api.IsNetwork(err)))
		o.s.finish(func() {
			o.s.errMsg = MsgFetchOrders
			o.s.offline = api.IsNetwork(err)
		})
		return
	}
	o.log.Debug("fetched orders", zap.Int("count", len(list)))
	o.s.finish(func() {
		o.s.items = o.s.cloneItems(list)
		o.s.errMsg = ""
		o.s.offline = false
	})
}

// Add creates an order and appends the server's copy.
func (o *OrderStore) Add(ctx context.Context, in orders.OrderInput) (orders.Order, error) {
	o.s.begin()
	created, err := o.access.Create(ctx, in)
	if err != nil {
		o.log.Warn("add order failed", zap.Error(err))
		o.s.finish(func() { o.s.errMsg = MsgAddOrder })
		return orders.Order{}, err
	}
	o.s.finish(func() {
		o.s.items = append(o.s.items, created.Clone())
		o.s.errMsg = ""
	})
	return created, nil
}

// Update saves in and replaces the entry with the same id in place.
func (o *OrderStore) Update(ctx context.Context, in orders.OrderInput) (orders.Order, error) {
	o.s.begin()
	updated, err := o.access.Update(ctx, in.ID, in)
	if err != nil {
		o.log.Warn("update order failed", zap.String("id", in.ID), zap.Error(err))
		o.s.finish(func() { o.s.errMsg = MsgUpdateOrder })
		return orders.Order{}, err
	}
	o.s.finish(func() {
		if i := find(o.s.items, updated.ID, orderID); i >= 0 {
			o.s.items[i] = updated.Clone()
		}
		o.s.errMsg = ""
	})
	return updated, nil
}

// Delete removes an order. Status is not checked here; callers refuse
// Completed orders before calling.
func (o *OrderStore) Delete(ctx context.Context, id string) error {
	o.s.begin()
	if err := o.access.Delete(ctx, id); err != nil {
		o.log.Warn("delete order failed", zap.String("id", id), zap.Error(err))
		o.s.finish(func() { o.s.errMsg = MsgDeleteOrder })
		return err
	}
	o.s.finish(func() {
		o.s.items = without(o.s.items, id, orderID)
		o.s.errMsg = ""
	})
	return nil
}

func orderID(o orders.Order) string { return o.ID }
