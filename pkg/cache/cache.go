package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value for a cache key from the backing store.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Cache is a string-keyed result cache for aggregator queries. Concurrent
// reads of the same key collapse to one underlying fetch, and an invalidation
// that lands while a fetch is in flight is never lost: each key carries a
// generation counter, the flight is keyed by (key, generation), and a
// completed fetch only populates the cache when its generation is still
// current. A reader arriving after the invalidation therefore starts a fresh
// fetch instead of joining the stale flight.
type Cache struct {
	mu      sync.Mutex
	entries map[string]interface{}
	gens    map[string]uint64
	group   singleflight.Group
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]interface{}),
		gens:    make(map[string]uint64),
	}
}

// Get returns the cached value for key, fetching it when absent. Fetch errors
// are returned to the caller and nothing is cached.
func (c *Cache) Get(ctx context.Context, key string, fetch FetchFunc) (interface{}, error) {
	for {
		c.mu.Lock()
		if value, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return value, nil
		}
		gen := c.gens[key]
		c.mu.Unlock()

		value, err, _ := c.group.Do(flightKey(key, gen), func() (interface{}, error) {
			return fetch(ctx)
		})
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gens[key] == gen {
			c.entries[key] = value
			c.mu.Unlock()
			return value, nil
		}
		c.mu.Unlock()
		// Invalidated while the fetch was in flight; retry against the
		// current generation rather than serving the stale result.
	}
}

// Invalidate marks key stale. Any in-flight fetch for it will be discarded.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked(key)
}

// InvalidatePrefix invalidates every key with the given prefix. Used for
// parameterized keys such as lead-volume-by-date:<range>.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.invalidateLocked(key)
		}
	}
	for key := range c.gens {
		if strings.HasPrefix(key, prefix) {
			c.invalidateLocked(key)
		}
	}
}

// Keys returns the keys currently holding a cached value.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

func (c *Cache) invalidateLocked(key string) {
	delete(c.entries, key)
	c.gens[key]++
}

func flightKey(key string, gen uint64) string {
	return fmt.Sprintf("%s#%d", key, gen)
}
