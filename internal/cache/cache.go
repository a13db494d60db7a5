// Package cache provides a bounded TTL cache for verification results,
// keyed by normalized identifier.
package cache

import (
	"sync"
	"time"

	"github.com/matsen/citevet/internal/citation"
)

// Defaults for the batch coordinator's cache.
const (
	DefaultTTL      = 30 * time.Minute
	DefaultCapacity = 1000
)

type entry struct {
	result  citation.Result
	addedAt time.Time
}

// Cache is a capacity- and TTL-bounded result cache. Safe for concurrent
// use; the batch coordinator reads and writes it from multiple goroutines.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithCapacity sets the maximum number of entries.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		c.capacity = n
	}
}

// withClock substitutes the time source (for testing).
func withClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache with the given options.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[string]entry),
		ttl:      DefaultTTL,
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached result for key, if present and not expired.
func (c *Cache) Get(key string) (citation.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return citation.Result{}, false
	}
	if c.now().Sub(e.addedAt) > c.ttl {
		delete(c.entries, key)
		return citation.Result{}, false
	}
	return e.result, true
}

// Put stores a result under key. At capacity, expired entries are evicted
// first; if none are expired the whole cache is cleared, matching the
// upstream behavior of a periodic full clear rather than tracking recency.
func (c *Cache) Put(key string, result citation.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[key] = entry{result: result, addedAt: c.now()}
}

// evictLocked drops expired entries, falling back to a full clear.
func (c *Cache) evictLocked() {
	now := c.now()
	evicted := false
	for k, e := range c.entries {
		if now.Sub(e.addedAt) > c.ttl {
			delete(c.entries, k)
			evicted = true
		}
	}
	if !evicted {
		c.entries = make(map[string]entry)
	}
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of entries currently held, including any expired
// entries not yet evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
