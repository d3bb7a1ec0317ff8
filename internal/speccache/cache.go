// Package speccache provides a small TTL cache with LRU eviction, shared by
// the MCP server (parsed documents) and the HTTP API (sessions).
package speccache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// entry holds a cached value with LRU ordering and TTL expiry.
type entry[V any] struct {
	value     V
	usedAt    time.Time
	expiresAt time.Time
}

// Cache is a mutex-guarded map whose entries expire after a per-entry TTL.
// When full, Put evicts the least recently used entry.
type Cache[V any] struct {
	mu             sync.Mutex
	entries        map[string]*entry[V]
	maxSize        int
	sweeperStarted atomic.Bool

	// now is replaced in tests.
	now func() time.Time
}

// New creates a cache holding at most maxSize entries. A non-positive
// maxSize means 1.
func New[V any](maxSize int) *Cache[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Cache[V]{
		entries: make(map[string]*entry[V]),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns a cached value. Expired entries are lazily removed.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	now := c.now()
	if e.expired(now) {
		delete(c.entries, key)
		return zero, false
	}
	// Touch entry for LRU.
	e.usedAt = now
	return e.value, true
}

// Put stores value under key for ttl, evicting the least recently used entry
// if the cache is full. A non-positive ttl never expires.
func (c *Cache[V]) Put(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := &entry[V]{value: value, usedAt: now}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}

	// If already cached, just update.
	if _, ok := c.entries[key]; ok {
		c.entries[key] = e
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for k, candidate := range c.entries {
			if oldestKey == "" || candidate.usedAt.Before(oldest) {
				oldestKey = k
				oldest = candidate.usedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = e
}

// Delete removes key and reports whether it was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Len returns the number of cached entries, including expired entries that
// have not been swept yet.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset clears all cached entries.
func (c *Cache[V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry[V])
}

// Sweep removes all expired entries and returns how many were removed.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// StartSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper; it stops when ctx
// is cancelled, after which a new sweeper may be started.
func (c *Cache[V]) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}
