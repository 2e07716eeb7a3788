// Package cache implements a bounded in-memory cache with insertion-order
// (FIFO) eviction and lazy time-based expiry. Eviction is deliberately not
// LRU: the oldest-inserted entry goes first regardless of access recency.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a bounded key/value store with a fixed TTL. Safe for concurrent
// use; a Put is atomic with respect to any concurrent Get.
type Cache[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]entry[V]
	order    []string // Insertion order, oldest first

	now func() time.Time // Overridable in tests
}

// New creates a cache holding at most capacity entries, each valid for ttl
// after insertion. Capacity must be at least 1.
func New[V any](capacity int, ttl time.Duration) *Cache[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[V]{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]entry[V]),
		now:      time.Now,
	}
}

// Get returns the value stored under key. An entry older than the TTL is
// removed and reported as a miss; there is no background sweeper.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if c.now().Sub(e.storedAt) > c.ttl {
		c.remove(key)
		var zero V
		return zero, false
	}

	return e.value, true
}

// Put stores value under key. When the cache is full the oldest-inserted
// entry is evicted first. Re-putting an existing key refreshes its value
// and timestamp and moves it to the back of the eviction order.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.remove(key)
	}

	for len(c.entries) >= c.capacity && len(c.order) > 0 {
		c.remove(c.order[0])
	}

	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	c.order = append(c.order, key)
}

// Len reports the number of entries currently stored, including entries
// that have expired but not yet been looked up.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes key from both the map and the order slice.
// Caller must hold c.mu.
func (c *Cache[V]) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
