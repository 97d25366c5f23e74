// ABOUTME: SQLite implementation of the Backend interface using modernc.org/sqlite
// ABOUTME: Provides byte-keyed settings records and user rows with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/2389/coven-settings/internal/keys"
)

// Driver names accepted by WithDriver.
const (
	DriverModernc = "sqlite"
	DriverCGO     = "sqlite3"
)

const defaultBusyTimeout = 5 * time.Second

// SQLiteStore implements the Backend interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	path   string

	mu     sync.RWMutex
	closed bool
}

type sqliteOptions struct {
	driver      string
	busyTimeout time.Duration
	logger      *slog.Logger
}

// Option configures NewSQLiteStore.
type Option func(*sqliteOptions)

// WithDriver selects the database/sql driver name (DriverModernc or DriverCGO).
func WithDriver(name string) Option {
	return func(o *sqliteOptions) {
		if name != "" {
			o.driver = name
		}
	}
}

// WithBusyTimeout sets how long SQLite waits on a locked database before failing.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *sqliteOptions) {
		if d > 0 {
			o.busyTimeout = d
		}
	}
}

// WithLogger sets the logger; the store adds a component attribute.
func WithLogger(l *slog.Logger) Option {
	return func(o *sqliteOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	o := sqliteOptions{
		driver:      DriverModernc,
		busyTimeout: defaultBusyTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With("component", "store")

	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if !slices.Contains(sql.Drivers(), o.driver) {
		return nil, fmt.Errorf("sqlite driver %q is not available in this build", o.driver)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open(o.driver, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection per handle: statements are applied in issue order and
	// per-connection pragmas cannot be lost to pool churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", o.busyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Enable WAL mode for durable, crash-safe writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
		path:   path,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store opened", "path", path, "driver", o.driver)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			k          BLOB PRIMARY KEY,
			v          BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			username   TEXT UNIQUE NOT NULL,
			password   TEXT NOT NULL,
			is_admin   INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close checkpoints the WAL into the main database file and closes the connection.
// Calling Close again is a no-op.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.logger.Info("closing SQLite store", "path", s.path)

	var checkpointErr error
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		checkpointErr = fmt.Errorf("checkpointing WAL: %w", err)
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return checkpointErr
}

// acquire takes the read side of the lifecycle lock. Callers must call the
// returned release func when done.
func (s *SQLiteStore) acquire() (func(), error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrClosed
	}
	return s.mu.RUnlock, nil
}

// Get returns the value stored under key.
// Returns ErrNotFound if the key doesn't exist.
func (s *SQLiteStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	var value []byte
	err = s.db.QueryRowContext(ctx, `SELECT v FROM settings WHERE k = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying setting: %w", err)
	}
	return value, nil
}

// Put inserts or replaces the value stored under key.
func (s *SQLiteStore) Put(ctx context.Context, key, value []byte) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	query := `
		INSERT INTO settings (k, v, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		key,
		nonNilBytes(value),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}

	s.logger.Debug("saved setting", "key_len", len(key), "size", len(value))
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key []byte) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	result, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE k = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting setting: %w", err)
	}

	n, _ := result.RowsAffected()
	s.logger.Debug("deleted setting", "key_len", len(key), "rows", n)
	return nil
}

// Scan returns every record whose key starts with prefix, in ascending key order.
func (s *SQLiteStore) Scan(ctx context.Context, prefix []byte) ([]Record, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	query := `SELECT k, v, updated_at FROM settings WHERE k >= ? ORDER BY k ASC`
	args := []any{nonNilBytes(prefix)}
	if end := keys.PrefixEnd(prefix); end != nil {
		query = `SELECT k, v, updated_at FROM settings WHERE k >= ? AND k < ? ORDER BY k ASC`
		args = append(args, end)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var r Record
		var updatedAt string
		if err := rows.Scan(&r.Key, &r.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			s.logger.Warn("failed to parse setting updated_at", "error", err)
		} else {
			r.UpdatedAt = parsed
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating setting rows: %w", err)
	}

	return records, nil
}

// nonNilBytes keeps an empty slice from being bound as SQL NULL.
func nonNilBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// Ensure SQLiteStore implements Backend.
var _ Backend = (*SQLiteStore)(nil)
