// ABOUTME: Global-scope settings operations
// ABOUTME: Get, list, set and delete keys shared by every skill and user

package settings

import (
	"context"

	"github.com/2389/coven-settings/internal/keys"
)

// Entry is one global setting.
type Entry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// GetGlobal returns the value stored under key. found is false if key was never
// written (or is empty); a stored null is returned as (nil, true, nil).
func (s *Store) GetGlobal(ctx context.Context, key string) (value any, found bool, err error) {
	release, err := s.acquire()
	if err != nil {
		return nil, false, err
	}
	defer release()

	if key == "" {
		return nil, false, nil
	}
	return s.get(ctx, keys.Global(key))
}

// ListGlobal returns every global setting.
func (s *Store) ListGlobal(ctx context.Context) ([]Entry, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := s.scan(ctx, keys.GlobalPrefix())
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{Key: r.tuple.Key, Value: r.value})
	}
	return entries, nil
}

// SetGlobal stores value under key, replacing any previous value. A nil value
// stores null.
func (s *Store) SetGlobal(ctx context.Context, key string, value any) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := requireNonEmpty("key", key); err != nil {
		return err
	}
	if err := s.put(ctx, keys.Global(key), value); err != nil {
		return err
	}

	s.logger.Debug("set global value", "key", key)
	return nil
}

// DeleteGlobal removes key. Removing a key that was never written is a no-op.
func (s *Store) DeleteGlobal(ctx context.Context, key string) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := requireNonEmpty("key", key); err != nil {
		return err
	}
	return s.backend.Delete(ctx, keys.Global(key))
}
