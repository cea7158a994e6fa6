// Package config loads orderdesk's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/orderdesk/config.toml
//  3. If the file doesn't exist, fall back to Defaults()
//  4. If the file exists but fields are missing or blank, keep the defaults
//  5. ORDERDESK_API, when set, replaces api_url
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:5001/api"
//	use_mock_data = true
//	cache_ttl = "5m"
//	log_level = "info"
//	log_file = "~/.local/state/orderdesk/orderdesk.log"
//
// All fields are optional. Tilde expansion is applied to log_file.
//
// cache_ttl is accepted and validated but no component reads it; there is
// no caching layer.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and an unparseable cache_ttl. A missing
// file is not an error.
package config
