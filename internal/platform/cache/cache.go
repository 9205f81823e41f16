// Package cache wraps an in-process LRU used to serve repeated report and
// balance reads. Correctness never depends on it: every value is rebuildable
// from the ledger, entries expire after a TTL, and a nil *Cache is a no-op.
package cache

import (
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a TTL-bounded LRU keyed by string. Keys are conventionally
// "<kind>:<organizationID>:<discriminator>" so that a whole organization's
// reports can be dropped by prefix after a posting.
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, entry]
	ttl time.Duration
	now func() time.Time
}

// New returns a cache holding at most size entries, each fresh for ttl.
// Returns nil when size <= 0; a nil cache is safe to use and caches nothing.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		return nil
	}
	l, err := lru.New[string, entry](size)
	if err != nil {
		return nil
	}
	return &Cache{lru: l, ttl: ttl, now: time.Now}
}

// Get returns the cached value when present and still fresh.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		c.lru.Remove(key)
		return nil, false
	}
	return e.value, true
}

// Set stores a value under the key.
func (c *Cache) Set(key string, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry{value: value, storedAt: c.now()})
}

// Remove drops one key.
func (c *Cache) Remove(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// InvalidatePrefix drops every key with the given prefix. Used after postings
// to evict all derived reads of an organization in one call.
func (c *Cache) InvalidatePrefix(prefix string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.lru.Remove(k)
		}
	}
}

// Len reports the number of live entries, stale ones included.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
