package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", "111111"))

	code, ok, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "111111", code)

	_, ok, err = store.Get(ctx, "other@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStorePutReplaces(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", "111111"))
	require.NoError(t, store.Put(ctx, "a@example.com", "222222"))

	code, ok, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "222222", code)
}

func TestMemoryStoreLazyExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Minute)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }
	require.NoError(t, store.Put(ctx, "a@example.com", "111111"))

	// Just inside the TTL
	store.now = func() time.Time { return base.Add(10 * time.Minute) }
	_, ok, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	// Past the TTL, before the eviction timer fires
	store.now = func() time.Time { return base.Add(10*time.Minute + time.Second) }
	_, ok, err = store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreTimerEviction(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", "111111"))

	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		_, ok := store.entries["a@example.com"]
		return !ok
	}, time.Second, 10*time.Millisecond, "entry should be evicted at TTL")
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", "111111"))
	require.NoError(t, store.Delete(ctx, "a@example.com"))

	_, ok, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is a no-op
	require.NoError(t, store.Delete(ctx, "a@example.com"))
}
