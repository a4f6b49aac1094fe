package cart

import (
	"context"
	"testing"
	"time"

	"futur-backend/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ReturnsSameStorePerSession(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(cache.NewMemoryCache(time.Minute, time.Minute), newMemKV(), time.Minute, time.Second)

	a := r.Get(ctx, "s1")
	b := r.Get(ctx, "s1")
	c := r.Get(ctx, "s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestRegistry_EvictedStoreRehydratesFromStorage(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	stores := cache.NewMemoryCache(time.Minute, time.Minute)
	r := NewRegistry(stores, kv, time.Minute, time.Second)

	s := r.Get(ctx, "s1")
	require.NoError(t, s.AddItem(item("a", 15, 2)))
	s.SetOpen(true)

	stores.Delete(KeyFor("s1"))
	assert.Equal(t, 0, r.Active())
	again := r.Get(ctx, "s1")

	assert.NotSame(t, s, again)
	assert.Equal(t, 2, again.ItemCount())
	assert.False(t, again.IsOpen(), "visibility is not persisted")
	_, ok := kv.raw("cart:s1")
	assert.True(t, ok)
}

func TestRegistry_IdleSessionsExpire(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	r := NewRegistry(cache.NewMemoryCache(time.Minute, 10*time.Millisecond), kv, 20*time.Millisecond, time.Second)

	require.NoError(t, r.Get(ctx, "s1").AddItem(item("a", 10, 1)))
	r.Get(ctx, "s2")
	assert.Equal(t, 2, r.Active())

	assert.Eventually(t, func() bool { return r.Active() == 0 }, time.Second, 10*time.Millisecond)

	again := r.Get(ctx, "s1")
	assert.Equal(t, 1, again.ItemCount(), "expired store is hydrated from storage")
}
