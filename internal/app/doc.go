// Package app is the composition root for orderdesk.
//
// # Startup
//
// Run performs these steps in order:
//
//  1. Load ~/.config/orderdesk/config.toml (or the -config path)
//  2. Apply the -mock / -remote overrides to use_mock_data
//  3. Load prefs.toml for the theme and bearer token
//  4. Build the zap logger writing to log_file
//  5. Select the mock or remote data access with api.New
//  6. Create the order and product stores
//  7. Run Refresh once so the first frame has data
//  8. Start the TUI and block until the user quits or ctx is cancelled
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()      config.toml + ORDERDESK_API
//	       ├─────> prefs.Load()       theme, token
//	       ├─────> logging.New()      zap file logger
//	       ├─────> api.New()          mock or remote access
//	       ├─────> state.New*Store()  orders, products
//	       ├─────> Refresh()          errgroup: both Fetch calls
//	       └─────> ui.Run()           TUI (blocks)
//
// # Error Handling
//
// Only startup problems are returned from Run: an unreadable or invalid
// config file, a log file that cannot be opened, or an unparseable API URL.
// Fetch and mutation failures never leave the stores; they show up in the
// snapshots as error text and the offline flag.
//
// # Refresh
//
// There is no background polling. The stores reload at startup and when the
// user presses r, both through Refresh.
package app
