package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFStoreLifecycle(t *testing.T) {
	store := NewCSRFStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-1", time.Hour))

	ok, err := store.Exists(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "never-issued")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCSRFStoreExpiry(t *testing.T) {
	store := NewCSRFStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-1", -time.Second))

	ok, err := store.Exists(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, ok, "expired tokens read as absent")

	// The expired entry is dropped, not kept around.
	store.mu.Lock()
	_, kept := store.tokens["tok-1"]
	store.mu.Unlock()
	assert.False(t, kept)
}
