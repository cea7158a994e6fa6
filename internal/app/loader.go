package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/five82/orderdesk/internal/state"
)

// Refresh fetches orders and products concurrently and returns once both
// stores have settled. Fetch failures land in the store snapshots, so the
// group itself never fails.
func Refresh(ctx context.Context, orders *state.OrderStore, products *state.ProductStore) {
	g, gctx := errgroup.WithContext(ctx)
	if orders != nil {
		g.Go(func() error {
			orders.Fetch(gctx)
			return nil
		})
	}
	if products != nil {
		g.Go(func() error {
			products.Fetch(gctx)
			return nil
		})
	}
	_ = g.Wait()
}
