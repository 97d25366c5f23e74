//go:build cgo

// ABOUTME: Registers the cgo SQLite driver (mattn/go-sqlite3) when cgo is enabled
// ABOUTME: Selected with WithDriver(DriverCGO); the pure Go driver stays the default

package store

import (
	_ "github.com/mattn/go-sqlite3"
)
