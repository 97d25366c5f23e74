// ABOUTME: Unit tests for MockStore behavior not covered by the shared contract tests
// ABOUTME: Focuses on copy isolation and injected write failures

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStore_CopiesValues(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, store.Put(ctx, []byte("k"), value))
	value[0] = 'X'

	got, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(got), "stored value must not alias the caller's slice")

	got[0] = 'Y'
	again, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(again), "returned value must not alias stored state")
}

func TestMockStore_FailPut(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, []byte("k"), []byte("v1")))

	diskFull := errors.New("disk full")
	store.FailPut = diskFull
	assert.ErrorIs(t, store.Put(ctx, []byte("k"), []byte("v2")), diskFull)

	got, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got), "failed Put must leave prior value")
}

func TestMockStore_GetUserReturnsCopy(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, &User{Username: "test", Password: "pw"}))

	u, err := store.GetUser(ctx, "test")
	require.NoError(t, err)
	u.Password = "mutated"

	again, err := store.GetUser(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, "pw", again.Password)
}
