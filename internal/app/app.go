package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/api"
	"github.com/five82/orderdesk/internal/config"
	"github.com/five82/orderdesk/internal/logging"
	"github.com/five82/orderdesk/internal/orders"
	"github.com/five82/orderdesk/internal/prefs"
	"github.com/five82/orderdesk/internal/state"
	"github.com/five82/orderdesk/internal/ui"
)

// Options configure the orderdesk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/orderdesk/prefs.toml
	// ForceMock and ForceRemote override use_mock_data. ForceRemote wins
	// when both are set.
	ForceMock   bool
	ForceRemote bool
}

// Run boots the orderdesk TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	userPrefs := prefs.Load(opts.PrefsPath)

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	access, err := api.New(cfg, userPrefs, log.Named("api"))
	if err != nil {
		return err
	}
	log.Info("starting",
		zap.String("mode", string(access.Mode)),
		zap.String("api_url", cfg.APIURL),
	)

	orderStore, productStore := newStores(access, log)
	refresh := func(ctx context.Context) { Refresh(ctx, orderStore, productStore) }

	// Populate both stores before the first frame.
	refresh(ctx)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Orders:    orderStore,
		Products:  productStore,
		Refresh:   refresh,
		Mode:      access.Mode,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogFile,
		Logger:    log,
	})
	if err != nil {
		log.Error("ui exited", zap.Error(err))
		return err
	}
	log.Info("stopped")
	return nil
}

func applyOverrides(cfg *config.Config, opts Options) {
	switch {
	case opts.ForceRemote:
		cfg.UseMockData = false
	case opts.ForceMock:
		cfg.UseMockData = true
	}
}

func newStores(access api.Access, log *zap.Logger) (*state.OrderStore, *state.ProductStore) {
	return state.NewOrderStore(access.Orders, log),
		state.NewProductStore(access.Products, orders.NewIDGenerator(), log)
}
