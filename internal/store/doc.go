// Package store provides the persistent storage backend for settings using SQLite.
//
// # Architecture
//
// The Backend interface is deliberately small: byte-string keys mapped to
// byte-string values, with point lookup, upsert, delete and ordered prefix scan,
// plus a users table keyed by username. Key layout and value encoding belong to
// the callers (see internal/keys and internal/codec); this package never
// interprets either.
//
// SQLiteStore implements Backend on database/sql. MockStore is an in-memory
// twin with the same semantics for unit tests.
//
// # SQLite Configuration
//
// Each handle opens its own *sql.DB with a single connection, so statements
// issued through one handle are applied in order:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA busy_timeout=5000;
//
// Drivers:
//
//   - "sqlite": modernc.org/sqlite, pure Go (default)
//   - "sqlite3": github.com/mattn/go-sqlite3, only in cgo builds
//
// Close runs a TRUNCATE checkpoint before releasing the connection so the
// main database file holds every committed write and the WAL is emptied. This
// lets another handle open the same file afterwards without relying on leftover
// -wal state. Two handles open on the same file at the same time is not
// supported.
//
// # Tables
//
//	settings(k BLOB PRIMARY KEY, v BLOB NOT NULL, updated_at TEXT NOT NULL)
//	users(id TEXT PRIMARY KEY, username TEXT UNIQUE, password TEXT, is_admin INTEGER, ...)
//
// # Error Handling
//
//   - ErrNotFound: Get/GetUser on a missing key or username
//   - ErrClosed: any call after Close
//
// Driver errors are wrapped with context and returned unchanged otherwise.
//
// # Testing
//
// Use NewMockStore() for unit tests, or NewSQLiteStore(":memory:") for
// integration tests against real SQLite.
package store
