package utils

import (
	"sync"
	"time"
)

// QueryCache is an in-memory TTL cache keyed on query text. It belongs to
// the provider layer: scrape and search results are cached for a fixed
// time-to-live (one hour by default) so repeated comparisons of the same
// query do not re-fetch. Scoring always recomputes from whatever set it is
// given — normalized values are never stored here.
type QueryCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]cacheEntry
}

type cacheEntry struct {
	value   any
	expires time.Time
}

// NewQueryCache creates a cache with the given TTL. A non-positive TTL
// disables caching entirely.
func NewQueryCache(ttl time.Duration) *QueryCache {
	return &QueryCache{
		ttl:  ttl,
		data: make(map[string]cacheEntry),
	}
}

// Get returns the cached value for key if present and not expired.
func (c *QueryCache) Get(key string) (any, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for the configured TTL.
func (c *QueryCache) Set(key string, value any) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = cacheEntry{value: value, expires: time.Now().Add(c.ttl)}
}

// Len returns the number of live (possibly expired, not yet evicted) entries.
func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
