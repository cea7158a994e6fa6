package state

import (
	"context"

	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/api"
	"github.com/five82/orderdesk/internal/orders"
)

// Display messages recorded by ProductStore.
const (
	MsgOfflineProducts = "Cannot connect to server. Using offline data."
	MsgFetchProducts   = "Failed to fetch products"
	MsgAddProduct      = "Failed to add product"
	MsgUpdateProduct   = "Failed to update product"
	MsgDeleteProduct   = "Failed to delete product"
)

// ProductSnapshot is what the UI reads from a ProductStore.
type ProductSnapshot = Snapshot[orders.Product]

// ProductStore holds the catalog. When the API is unreachable it falls back
// to the built-in seed catalog and keeps mutations local until the next
// successful fetch.
type ProductStore struct {
	access api.ProductAccess
	ids    *orders.IDGenerator
	log    *zap.Logger
	s      *store[orders.Product]
}

// NewProductStore returns an empty store. ids synthesizes ids for products
// added while offline.
func NewProductStore(access api.ProductAccess, ids *orders.IDGenerator, log *zap.Logger) *ProductStore {
	if ids == nil {
		ids = orders.NewIDGenerator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductStore{
		access: access,
		ids:    ids,
		log:    log.Named("products"),
		s:      newStore[orders.Product](nil),
	}
}

func (p *ProductStore) Snapshot() ProductSnapshot { return p.s.snapshot() }

func (p *ProductStore) Changes() <-chan struct{} { return p.s.changes }

func (p *ProductStore) ByID(id string) (orders.Product, bool) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	if i := find(p.s.items, id, productID); i >= 0 {
		return p.s.items[i], true
	}
	return orders.Product{}, false
}

// Fetch replaces the catalog. A network failure is a soft success: the seed
// catalog is loaded and the store goes offline.
func (p *ProductStore) Fetch(ctx context.Context) {
	p.s.begin()
	list, err := p.access.List(ctx)
	switch {
	case err == nil:
		p.log.Debug("fetched products", zap.Int("count", len(list)))
		p.s.finish(func() {
			p.s.items = p.s.cloneItems(list)
			p.s.errMsg = ""
			p.s.offline = false
		})
	case api.IsNetwork(err):
		p.log.Warn("products unreachable, using offline catalog", zap.Error(err))
		p.s.finish(func() {
			p.s.items = orders.SeedProducts()
			p.s.errMsg = MsgOfflineProducts
			p.s.offline = true
		})
	default:
		p.log.Warn("fetch products failed", zap.Error(err))
		p.s.finish(func() {
			p.s.errMsg = MsgFetchProducts
			p.s.offline = false
		})
	}
}

func (p *ProductStore) isOffline() bool {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return p.s.offline
}

// Add appends a product. Offline, the id is synthesized locally.
func (p *ProductStore) Add(ctx context.Context, in orders.Product) (orders.Product, error) {
	p.s.begin()
	if p.isOffline() {
		in.ID = p.ids.Next()
		p.s.finish(func() { p.s.items = append(p.s.items, in) })
		return in, nil
	}
	created, err := p.access.Create(ctx, in)
	if err != nil {
		p.log.Warn("add product failed", zap.Error(err))
		p.s.finish(func() { p.s.errMsg = MsgAddProduct })
		return orders.Product{}, err
	}
	p.s.finish(func() {
		p.s.items = append(p.s.items, created)
		p.s.errMsg = ""
	})
	return created, nil
}

// Update replaces the product with in.ID.
func (p *ProductStore) Update(ctx context.Context, in orders.Product) (orders.Product, error) {
	p.s.begin()
	replace := func(v orders.Product) func() {
		return func() {
			if i := find(p.s.items, v.ID, productID); i >= 0 {
				p.s.items[i] = v
			}
		}
	}
	if p.isOffline() {
		p.s.finish(replace(in))
		return in, nil
	}
	updated, err := p.access.Update(ctx, in.ID, in)
	if err != nil {
		p.log.Warn("update product failed", zap.String("id", in.ID), zap.Error(err))
		p.s.finish(func() { p.s.errMsg = MsgUpdateProduct })
		return orders.Product{}, err
	}
	p.s.finish(func() {
		replace(updated)()
		p.s.errMsg = ""
	})
	return updated, nil
}

// Delete removes a product. Order line items keep their snapshot copies.
func (p *ProductStore) Delete(ctx context.Context, id string) error {
	p.s.begin()
	if p.isOffline() {
		p.s.finish(func() { p.s.items = without(p.s.items, id, productID) })
		return nil
	}
	if err := p.access.Delete(ctx, id); err != nil {
		p.log.Warn("delete product failed", zap.String("id", id), zap.Error(err))
		p.s.finish(func() { p.s.errMsg = MsgDeleteProduct })
		return err
	}
	p.s.finish(func() {
		p.s.items = without(p.s.items, id, productID)
		p.s.errMsg = ""
	})
	return nil
}

func productID(p orders.Product) string { return p.ID }
