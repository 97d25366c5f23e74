// Package config handles configuration loading for coven-settings hosts.
//
// # Overview
//
// Configuration is loaded from YAML or TOML files with environment variable
// expansion. The package provides validation and sensible defaults.
//
// # Configuration File
//
// Locations (in order):
//
//  1. Path passed explicitly (the --config flag)
//  2. Path from COVEN_SETTINGS_CONFIG environment variable
//  3. ~/.config/coven/settings.yaml
//
// If none exists the defaults are used. COVEN_SETTINGS_FILE overrides
// database.path regardless of where the rest came from.
//
// # Format
//
// Files ending in .toml are parsed as TOML; everything else is YAML:
//
//	database:
//	  path: "~/.local/share/coven/settings.db"
//	  driver: "sqlite"       # sqlite (pure Go) or sqlite3 (cgo builds)
//	  busy_timeout: "5s"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// The same in TOML:
//
//	[database]
//	path = "${XDG_DATA_HOME}/coven/settings.db"
//	busy_timeout = "2s"
//
// # Environment Variable Expansion
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string.
package config
