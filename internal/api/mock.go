package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/orders"
)

// NewMockAccess returns the in-memory variant backed by the seed dataset.
func NewMockAccess(ids *orders.IDGenerator, log *zap.Logger) Access {
	if ids == nil {
		ids = orders.NewIDGenerator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return Access{
		Mode:     ModeMock,
		Orders:   &MockOrders{ids: ids, now: time.Now, log: log},
		Products: &MockProducts{ids: ids, log: log},
	}
}

// MockOrders serves the seed orders. Creates and updates are echoed back with
// derived fields and are not retained; deletes always succeed.
type MockOrders struct {
	ids *orders.IDGenerator
	now func() time.Time
	log *zap.Logger
}

func (m *MockOrders) List(ctx context.Context) ([]orders.Order, error) {
	m.log.Debug("mock request", zap.String("op", "list orders"))
	return orders.SeedOrders(m.clock()), nil
}

func (m *MockOrders) Get(ctx context.Context, id string) (orders.Order, error) {
	m.log.Debug("mock request", zap.String("op", "get order"), zap.String("id", id))
	for _, o := range orders.SeedOrders(m.clock()) {
		if o.ID == strings.TrimSpace(id) {
			return o, nil
		}
	}
	return orders.Order{}, fmt.Errorf("order %q: %w", id, ErrNotFound)
}

func (m *MockOrders) Create(ctx context.Context, in orders.OrderInput) (orders.Order, error) {
	out := m.materialize(m.ids.Next(), in)
	m.log.Debug("mock request", zap.String("op", "create order"), zap.String("id", out.ID))
	return out, nil
}

func (m *MockOrders) Update(ctx context.Context, id string, in orders.OrderInput) (orders.Order, error) {
	m.log.Debug("mock request", zap.String("op", "update order"), zap.String("id", id))
	return m.materialize(id, in), nil
}

func (m *MockOrders) Delete(ctx context.Context, id string) error {
	m.log.Debug("mock request", zap.String("op", "delete order"), zap.String("id", id))
	return nil
}

// materialize joins the payload against the seed catalog and stamps the
// server-assigned fields.
func (m *MockOrders) materialize(id string, in orders.OrderInput) orders.Order {
	return orders.WithTotals(orders.Order{
		ID:          id,
		OrderNumber: in.OrderNumber,
		Date:        m.clock().UTC().Format(time.RFC3339Nano),
		Status:      in.Status.Normalize(),
		Products:    orders.Resolve(in.Products, orders.SeedProducts()),
	})
}

func (m *MockOrders) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

// MockProducts serves the seed catalog with the same echo semantics as
// MockOrders.
type MockProducts struct {
	ids *orders.IDGenerator
	log *zap.Logger
}

func (m *MockProducts) List(ctx context.Context) ([]orders.Product, error) {
	m.log.Debug("mock request", zap.String("op", "list products"))
	return orders.SeedProducts(), nil
}

func (m *MockProducts) Get(ctx context.Context, id string) (orders.Product, error) {
	m.log.Debug("mock request", zap.String("op", "get product"), zap.String("id", id))
	for _, p := range orders.SeedProducts() {
		if p.ID == strings.TrimSpace(id) {
			return p, nil
		}
	}
	return orders.Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
}

func (m *MockProducts) Create(ctx context.Context, in orders.Product) (orders.Product, error) {
	in.ID = m.ids.Next()
	m.log.Debug("mock request", zap.String("op", "create product"), zap.String("id", in.ID))
	return in, nil
}

func (m *MockProducts) Update(ctx context.Context, id string, in orders.Product) (orders.Product, error) {
	m.log.Debug("mock request", zap.String("op", "update product"), zap.String("id", id))
	in.ID = id
	return in, nil
}

func (m *MockProducts) Delete(ctx context.Context, id string) error {
	m.log.Debug("mock request", zap.String("op", "delete product"), zap.String("id", id))
	return nil
}
