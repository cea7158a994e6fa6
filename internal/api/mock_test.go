package api

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/orderdesk/internal/orders"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newMock() Access {
	a := NewMockAccess(orders.NewIDGenerator(), nil)
	a.Orders.(*MockOrders).now = func() time.Time { return testNow }
	return a
}

func TestMockOrders_CreateDerivesTotals(t *testing.T) {
	a := newMock()

	o, err := a.Orders.Create(context.Background(), orders.OrderInput{
		OrderNumber: "ORD-100",
		Products:    []orders.LineRef{{ID: "1", Quantity: 2}, {ID: "2", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, o.ProductCount)
	assert.InDelta(t, 25.0, o.FinalPrice, 1e-9)
	assert.Equal(t, orders.StatusPending, o.Status)
	assert.Equal(t, "Hamburger Classic", o.Products[0].Name)
	assert.Equal(t, testNow.Format(time.RFC3339Nano), o.Date)
	_, err = strconv.ParseInt(o.ID, 10, 64)
	assert.NoError(t, err, "id is a millisecond timestamp")
}

func TestMockOrders_IDsStrictlyIncrease(t *testing.T) {
	a := newMock()
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		o, err := a.Orders.Create(ctx, orders.OrderInput{OrderNumber: "X"})
		require.NoError(t, err)
		id, err := strconv.ParseInt(o.ID, 10, 64)
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}
}

func TestMockOrders_UnknownProductContributesNothing(t *testing.T) {
	a := newMock()

	o, err := a.Orders.Update(context.Background(), "3", orders.OrderInput{
		OrderNumber: "ORD-003",
		Status:      orders.StatusCompleted,
		Products:    []orders.LineRef{{ID: "404", Quantity: 3}, {ID: "5", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "3", o.ID)
	assert.Equal(t, orders.StatusCompleted, o.Status)
	assert.Equal(t, 2, o.ProductCount)
	assert.InDelta(t, 6.0, o.FinalPrice, 1e-9)
}

func TestMockOrders_ListIsFreshAndDeleteIsNoop(t *testing.T) {
	a := newMock()
	ctx := context.Background()

	first, err := a.Orders.List(ctx)
	require.NoError(t, err)
	first[0].OrderNumber = "mutated"

	require.NoError(t, a.Orders.Delete(ctx, "1"))

	second, err := a.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, 3)
	assert.Equal(t, "ORD-001", second[0].OrderNumber)
}

func TestMockGet_MissingIsNotFound(t *testing.T) {
	a := newMock()

	_, err := a.Orders.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))

	p, err := a.Products.Get(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "Soda", p.Name)

	_, err = a.Products.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMockProducts_CreateAssignsID(t *testing.T) {
	a := newMock()

	p, err := a.Products.Create(context.Background(), orders.Product{ID: "ignored", Name: "Water", UnitPrice: 1})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", p.ID)
	assert.Equal(t, "Water", p.Name)

	u, err := a.Products.Update(context.Background(), "5", orders.Product{Name: "Soda Large", UnitPrice: 4})
	require.NoError(t, err)
	assert.Equal(t, "5", u.ID)
}
