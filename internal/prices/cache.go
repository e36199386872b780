package prices

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Cache stores full currency-to-price maps per coin id for a bounded time.
type Cache interface {
	Get(ctx context.Context, coinID string) (map[string]decimal.Decimal, bool)
	Set(ctx context.Context, coinID string, prices map[string]decimal.Decimal)
}

type memoryEntry struct {
	prices    map[string]decimal.Decimal
	fetchedAt time.Time
}

// MemoryCache is an in-process TTL cache. Entries are never evicted; the
// coin universe a user touches is small, so growth is bounded in practice.
// The clock is injected so expiry is testable.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a memory cache with the given TTL
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock overrides the cache clock, for tests
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.now = now
	return c
}

// Get returns the cached price map if it is younger than the TTL
func (c *MemoryCache) Get(_ context.Context, coinID string) (map[string]decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[coinID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.prices, true
}

// Set stores a freshly fetched price map with the current timestamp
func (c *MemoryCache) Set(_ context.Context, coinID string, prices map[string]decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[coinID] = memoryEntry{prices: prices, fetchedAt: c.now()}
}
