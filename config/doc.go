// Package config loads and persists StatusView configuration.
// Configuration lives in a TOML file under the user config directory
// and maps onto statusview.Options; a file watcher supports hot reload.
package config
