// ABOUTME: Mock Backend implementation for testing
// ABOUTME: Allows tests to run without SQLite while matching SQLiteStore semantics

package store

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore is an in-memory Backend implementation for testing.
type MockStore struct {
	mu      sync.RWMutex
	records map[string]Record // keyed by string(key)
	users   map[string]*User  // keyed by username
	closed  bool

	// FailPut, when set, is returned by Put without modifying state.
	FailPut error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		records: make(map[string]Record),
		users:   make(map[string]*User),
	}
}

// Get returns the value stored under key.
func (m *MockStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	r, ok := m.records[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(r.Value), nil
}

// Put inserts or replaces the value stored under key.
func (m *MockStore) Put(ctx context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.FailPut != nil {
		return m.FailPut
	}

	// Make a copy to avoid external modification
	m.records[string(key)] = Record{
		Key:       bytes.Clone(key),
		Value:     nonNilBytes(bytes.Clone(value)),
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// Delete removes key.
func (m *MockStore) Delete(ctx context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.records, string(key))
	return nil
}

// Scan returns every record whose key starts with prefix, in ascending key order.
func (m *MockStore) Scan(ctx context.Context, prefix []byte) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	var records []Record
	for _, r := range m.records {
		if bytes.HasPrefix(r.Key, prefix) {
			records = append(records, Record{
				Key:       bytes.Clone(r.Key),
				Value:     bytes.Clone(r.Value),
				UpdatedAt: r.UpdatedAt,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return bytes.Compare(records[i].Key, records[j].Key) < 0
	})
	return records, nil
}

// SaveUser creates or updates a user by username.
func (m *MockStore) SaveUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	now := time.Now().UTC()
	if existing, ok := m.users[user.Username]; ok {
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	} else {
		if user.ID == "" {
			user.ID = uuid.New().String()
		}
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	u := *user
	m.users[u.Username] = &u
	return nil
}

// GetUser retrieves a user by username.
func (m *MockStore) GetUser(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	u, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy
	result := *u
	return &result, nil
}

// Close marks the store closed. Calling Close again is a no-op.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// Ensure MockStore implements Backend.
var _ Backend = (*MockStore)(nil)
