package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/api"
	"github.com/five82/orderdesk/internal/config"
)

func TestRefresh_PopulatesBothStores(t *testing.T) {
	orderStore, productStore := newStores(api.NewMockAccess(nil, nil), zap.NewNop())

	Refresh(context.Background(), orderStore, productStore)

	orders := orderStore.Snapshot()
	products := productStore.Snapshot()
	assert.Len(t, orders.Items, 3)
	assert.Len(t, products.Items, 5)
	assert.False(t, orders.Loading)
	assert.False(t, products.Loading)
	assert.Empty(t, orders.Error)
	assert.False(t, orders.LastUpdated.IsZero())
}

func TestRefresh_UnreachableAPI(t *testing.T) {
	cfg := config.Defaults()
	cfg.UseMockData = false
	cfg.APIURL = "http://127.0.0.1:1/api"
	access, err := api.New(cfg, nil, nil)
	require.NoError(t, err)
	orderStore, productStore := newStores(access, zap.NewNop())

	Refresh(context.Background(), orderStore, productStore)

	orders := orderStore.Snapshot()
	assert.Empty(t, orders.Items)
	assert.True(t, orders.Offline)
	assert.NotEmpty(t, orders.Error)

	products := productStore.Snapshot()
	assert.Len(t, products.Items, 5, "seed catalog")
	assert.True(t, products.Offline)
	assert.NotEmpty(t, products.Error)
}

func TestRefresh_NilStores(t *testing.T) {
	assert.NotPanics(t, func() { Refresh(context.Background(), nil, nil) })
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name string
		base bool
		opts Options
		want bool
	}{
		{name: "no flags keeps file", base: false, want: false},
		{name: "mock flag", base: false, opts: Options{ForceMock: true}, want: true},
		{name: "remote flag", base: true, opts: Options{ForceRemote: true}, want: false},
		{name: "remote wins", base: true, opts: Options{ForceMock: true, ForceRemote: true}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.UseMockData = tt.base
			applyOverrides(&cfg, tt.opts)
			assert.Equal(t, tt.want, cfg.UseMockData)
		})
	}
}
