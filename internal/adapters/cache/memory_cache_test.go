package cache

import (
	"context"
	"testing"

	"github.com/mikey/frozen-screen-detector/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func result(url string, frozen bool) *core.DetectionResult {
	return &core.DetectionResult{URL: url, IsFrozen: frozen}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(10, zap.NewNop())
	ctx := context.Background()

	_, ok := c.Get(ctx, "http://example.com/live.m3u8")
	assert.False(t, ok)

	c.Set(ctx, "http://example.com/live.m3u8", result("http://example.com/live.m3u8", true))

	got, ok := c.Get(ctx, "http://example.com/live.m3u8")
	require.True(t, ok)
	assert.True(t, got.IsFrozen)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemoryCache(2, zap.NewNop())
	ctx := context.Background()

	c.Set(ctx, "a", result("a", false))
	c.Set(ctx, "b", result("b", false))

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get(ctx, "a")
	require.True(t, ok)

	c.Set(ctx, "c", result("c", false))

	_, ok = c.Get(ctx, "b")
	assert.False(t, ok, "least-recently-used entry should have been evicted")
	_, ok = c.Get(ctx, "a")
	assert.True(t, ok)
	_, ok = c.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCacheUpdateExistingEntry(t *testing.T) {
	c := NewMemoryCache(2, zap.NewNop())
	ctx := context.Background()

	c.Set(ctx, "a", result("a", false))
	c.Set(ctx, "a", result("a", true))

	got, ok := c.Get(ctx, "a")
	require.True(t, ok)
	assert.True(t, got.IsFrozen)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(10, zap.NewNop())
	ctx := context.Background()

	c.Set(ctx, "a", result("a", false))
	c.Set(ctx, "b", result("b", true))

	require.NoError(t, c.Clear(ctx))

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)

	// The cache keeps working after a clear.
	c.Set(ctx, "a", result("a", true))
	_, ok = c.Get(ctx, "a")
	assert.True(t, ok)
}

func TestMemoryCacheDefaultCapacity(t *testing.T) {
	c := NewMemoryCache(0, zap.NewNop())
	assert.Equal(t, DefaultCapacity, c.capacity)
}
