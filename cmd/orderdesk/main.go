package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/orderdesk/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	mock := flag.Bool("mock", false, "use the built-in mock data")
	remote := flag.Bool("remote", false, "use the remote API even if use_mock_data is set")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		PrefsPath:   *prefsPath,
		ForceMock:   *mock,
		ForceRemote: *remote,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "orderdesk: %v\n", err)
		return 1
	}
	return 0
}
