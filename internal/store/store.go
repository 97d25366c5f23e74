// ABOUTME: Backend interface and data types for settings persistence
// ABOUTME: Defines the byte-keyed record store and the user record table

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested key or user does not exist
var ErrNotFound = errors.New("not found")

// ErrClosed is returned by a backend used after Close
var ErrClosed = errors.New("store is closed")

// Record is one stored key/value pair as returned by Scan
type Record struct {
	Key       []byte
	Value     []byte
	UpdatedAt time.Time
}

// User is a row of the users table. Password is stored exactly as given.
type User struct {
	ID        string
	Username  string
	Password  string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Backend defines durable byte-keyed storage plus the user record table.
// Keys are compared bytewise; Scan returns records in ascending key order.
type Backend interface {
	// Key/value records
	Get(ctx context.Context, key []byte) ([]byte, error)
	Put(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
	Scan(ctx context.Context, prefix []byte) ([]Record, error)

	// Users (upsert by username)
	SaveUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, username string) (*User, error)

	// Close flushes pending writes and releases the backend
	Close() error
}
