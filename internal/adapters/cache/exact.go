// Package cache implements the exact and fuzzy lookup tiers' shared state:
// a bounded LRU of parse results keyed by normalized input.
package cache

import (
	"container/list"
	"sync"
	"time"

	"go.jot.dev/jot/internal/core/domain"
)

// Exact is a bounded key -> result map with recency-based eviction.
// All access happens under a short-lived exclusive critical section;
// callers must not hold results by reference into the cache (Get and
// Snapshot return copies).
type Exact struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	index    map[domain.NormalizedKey]*list.Element
	now      func() time.Time
}

// NewExact creates an exact cache bounded to capacity entries.
// A non-positive capacity falls back to the default of 1000.
func NewExact(capacity int) *Exact {
	if capacity <= 0 {
		capacity = domain.DefaultConfig().Cache.Capacity
	}
	return &Exact{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[domain.NormalizedKey]*list.Element, capacity),
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used in tests.
func (c *Exact) WithClock(now func() time.Time) *Exact {
	c.now = now
	return c
}

// Get returns the cached result for key, refreshing its recency and hit
// count. O(1).
func (c *Exact) Get(key domain.NormalizedKey) (domain.ParsedResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		return domain.ParsedResult{}, false
	}
	entry := el.Value.(*domain.CacheEntry)
	entry.LastAccess = c.now()
	entry.Hits++
	c.order.MoveToFront(el)
	return entry.Result.Clone(), true
}

// Put stores result under key, evicting the least-recently-used entry on
// overflow. An existing entry is refreshed in place. O(1) amortized.
func (c *Exact) Put(key domain.NormalizedKey, result domain.ParsedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		entry := el.Value.(*domain.CacheEntry)
		entry.Result = result.Clone()
		entry.LastAccess = c.now()
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			evicted := oldest.Value.(*domain.CacheEntry)
			delete(c.index, evicted.Key)
			c.order.Remove(oldest)
		}
	}

	entry := &domain.CacheEntry{
		Key:        key,
		Result:     result.Clone(),
		LastAccess: c.now(),
	}
	c.index[key] = c.order.PushFront(entry)
}

// Len returns the number of cached entries.
func (c *Exact) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Snapshot returns copies of all entries, most recently used first.
// The fuzzy matcher scans this without holding the cache lock.
func (c *Exact) Snapshot() []domain.CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]domain.CacheEntry, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		entry := el.Value.(*domain.CacheEntry)
		copied := *entry
		copied.Result = entry.Result.Clone()
		entries = append(entries, copied)
	}
	return entries
}
