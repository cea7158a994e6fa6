package api

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/config"
	"github.com/five82/orderdesk/internal/orders"
)

// OrderAccess is the capability set for the orders resource.
type OrderAccess interface {
	List(ctx context.Context) ([]orders.Order, error)
	Get(ctx context.Context, id string) (orders.Order, error)
	Create(ctx context.Context, in orders.OrderInput) (orders.Order, error)
	Update(ctx context.Context, id string, in orders.OrderInput) (orders.Order, error)
	Delete(ctx context.Context, id string) error
}

// ProductAccess is the capability set for the products resource.
type ProductAccess interface {
	List(ctx context.Context) ([]orders.Product, error)
	Get(ctx context.Context, id string) (orders.Product, error)
	Create(ctx context.Context, in orders.Product) (orders.Product, error)
	Update(ctx context.Context, id string, in orders.Product) (orders.Product, error)
	Delete(ctx context.Context, id string) error
}

// Compile-time checks for both variants.
var (
	_ OrderAccess   = (*RemoteOrders)(nil)
	_ ProductAccess = (*RemoteProducts)(nil)
	_ OrderAccess   = (*MockOrders)(nil)
	_ ProductAccess = (*MockProducts)(nil)
)

// Mode tags which variant an Access holds.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeMock   Mode = "mock"
)

// Access bundles the resource capabilities selected at startup.
type Access struct {
	Mode     Mode
	Orders   OrderAccess
	Products ProductAccess
}

// New picks the mock or remote variant from cfg. The choice is made once;
// callers only ever see the interfaces.
func New(cfg config.Config, tokens TokenSource, log *zap.Logger) (Access, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.UseMockData {
		log.Info("using mock data access")
		return NewMockAccess(orders.NewIDGenerator(), log), nil
	}

	client, err := NewClient(cfg.APIURL, tokens, log)
	if err != nil {
		return Access{}, fmt.Errorf("init api client: %w", err)
	}
	log.Info("using remote data access", zap.String("base_url", client.BaseURL()))
	return Access{
		Mode:     ModeRemote,
		Orders:   client.Orders(),
		Products: client.Products(),
	}, nil
}
