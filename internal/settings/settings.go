// ABOUTME: Settings store handle: setup, close and the shared read/write plumbing
// ABOUTME: Builds physical keys, encodes values and guards every call against a closed handle

package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/2389/coven-settings/internal/codec"
	"github.com/2389/coven-settings/internal/keys"
	"github.com/2389/coven-settings/internal/store"
)

// Config is the setup configuration. File is the path of the backing store;
// it may name a new or an existing file.
type Config struct {
	File string `yaml:"file" toml:"file"`
}

type setupOptions struct {
	logger      *slog.Logger
	backend     store.Backend
	driver      string
	busyTimeout time.Duration
}

// Option configures Setup.
type Option func(*setupOptions)

// WithLogger sets the logger used by the store and its backend.
func WithLogger(l *slog.Logger) Option {
	return func(o *setupOptions) { o.logger = l }
}

// WithBackend makes Setup use b instead of opening Config.File. The Store takes
// ownership of b and closes it on Close.
func WithBackend(b store.Backend) Option {
	return func(o *setupOptions) { o.backend = b }
}

// WithDriver selects the SQLite driver (store.DriverModernc or store.DriverCGO).
func WithDriver(name string) Option {
	return func(o *setupOptions) { o.driver = name }
}

// WithBusyTimeout sets how long the backend waits on a locked file.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *setupOptions) { o.busyTimeout = d }
}

// Store is an open handle on a settings file. It is safe for concurrent use;
// calls issued one after another from a single caller are applied in order.
type Store struct {
	backend store.Backend
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// Setup opens or creates the settings store described by cfg.
// The returned Store must be closed exactly once by its owner.
func Setup(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	o := setupOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if err := ctx.Err(); err != nil {
		if o.backend != nil {
			_ = o.backend.Close()
		}
		return nil, err
	}

	backend := o.backend
	if backend == nil {
		if cfg.File == "" {
			return nil, &ValidationError{Field: "file", Reason: "setup requires a backing file path"}
		}
		sqlite, err := store.NewSQLiteStore(cfg.File,
			store.WithDriver(o.driver),
			store.WithBusyTimeout(o.busyTimeout),
			store.WithLogger(o.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("opening settings store: %w", err)
		}
		backend = sqlite
	}

	s := &Store{
		backend: backend,
		logger:  o.logger.With("component", "settings"),
	}
	s.logger.Info("settings store ready", "file", cfg.File)
	return s, nil
}

// Close flushes pending writes and releases the backend. Operations issued
// after Close fail with ErrClosed; calling Close again returns nil.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.backend.Close(); err != nil {
		return fmt.Errorf("closing settings store: %w", err)
	}
	s.logger.Info("settings store closed")
	return nil
}

// acquire holds the handle open for the duration of one operation.
func (s *Store) acquire() (func(), error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrClosed
	}
	return s.mu.RUnlock, nil
}

// get reads and decodes one physical key. found is false when the key was never written.
func (s *Store) get(ctx context.Context, key []byte) (any, bool, error) {
	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	v, err := codec.Decode(raw)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// put encodes value and writes it under key in a single backend call.
func (s *Store) put(ctx context.Context, key []byte, value any) error {
	raw, err := codec.Encode(value)
	if err != nil {
		return err
	}
	return s.backend.Put(ctx, key, raw)
}

// decoded is one scanned record with its key parsed and value decoded.
type decoded struct {
	tuple keys.Tuple
	value any
}

// scan returns every record under prefix, decoded.
func (s *Store) scan(ctx context.Context, prefix []byte) ([]decoded, error) {
	records, err := s.backend.Scan(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := make([]decoded, 0, len(records))
	for _, r := range records {
		t, err := keys.Decode(r.Key)
		if err != nil {
			return nil, &codec.DecodeError{Reason: "stored key", Err: err}
		}
		v, err := codec.Decode(r.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded{tuple: t, value: v})
	}
	return out, nil
}
