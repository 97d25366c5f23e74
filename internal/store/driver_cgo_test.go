//go:build cgo

// ABOUTME: Tests for the cgo SQLite driver path
// ABOUTME: Runs the same open/write/reopen cycle with mattn/go-sqlite3

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_CGODriver(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cgo.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(dbPath, WithDriver(DriverCGO))
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, []byte("k"), []byte("v")))
	u := &User{Username: "test", Password: "test", IsAdmin: true}
	require.NoError(t, s.SaveUser(ctx, u))
	require.NoError(t, s.Close())

	// The file is plain SQLite, so the default driver reads it back
	s, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	user, err := s.GetUser(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)
}
