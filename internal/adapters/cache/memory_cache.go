package cache

import (
	"container/list"
	"context"
	"sync"

	"github.com/mikey/frozen-screen-detector/internal/core"
	"go.uber.org/zap"
)

// DefaultCapacity bounds the cache when no capacity is configured
const DefaultCapacity = 100

// MemoryCache is an in-memory implementation of the CacheRepository
// interface with least-recently-used eviction. All operations take the
// mutex, so the read-check-insert sequence is safe for concurrent callers.
type MemoryCache struct {
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front is most recently used
	mu       sync.Mutex
	logger   *zap.Logger
}

type lruEntry struct {
	url    string
	result *core.DetectionResult
}

// NewMemoryCache creates a new bounded in-memory cache
func NewMemoryCache(capacity int, logger *zap.Logger) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		logger:   logger,
	}
}

// Get retrieves a cached result for a URL and marks it as recently used
func (c *MemoryCache) Get(ctx context.Context, url string) (*core.DetectionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[url]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).result, true
}

// Set stores a detection result, evicting the least-recently-used entry
// when the capacity bound would be exceeded
func (c *MemoryCache) Set(ctx context.Context, url string, result *core.DetectionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[url]; ok {
		el.Value.(*lruEntry).result = result
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			evicted := oldest.Value.(*lruEntry)
			c.order.Remove(oldest)
			delete(c.entries, evicted.url)
			c.logger.Debug("Evicted least-recently-used cache entry",
				zap.String("url", evicted.url))
		}
	}

	c.entries[url] = c.order.PushFront(&lruEntry{url: url, result: result})
}

// Clear removes every cached entry
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := len(c.entries)
	c.entries = make(map[string]*list.Element)
	c.order.Init()

	c.logger.Debug("Cleared cache entries", zap.Int("count", count))
	return nil
}

// Len returns the number of cached entries
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
