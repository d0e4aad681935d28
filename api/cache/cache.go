package cache

import (
	"sync"
	"time"
)

// Entry represents a cached item
type Entry[T any] struct {
	Value     T
	CreatedAt time.Time
}

// Cache is an in-memory memo keyed by string.
// Entries are inserted once and live for the lifetime of the process: there is
// no eviction, TTL or capacity limit, so the cache grows with every distinct key.
//
// The mutex only protects the map. GetOrSet does not hold it while fn runs, so
// concurrent misses on the same key may each call fn; the first stored value wins
// and every caller gets it.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
}

// New creates an empty cache
func New[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]Entry[T]),
	}
}

// Get returns the cached value for key, if any
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	return entry.Value, ok
}

// Set stores value under key unless key is already present.
// It returns the value stored under key after the call.
func (c *Cache[T]) Set(key string, value T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		return entry.Value
	}
	c.entries[key] = Entry[T]{
		Value:     value,
		CreatedAt: time.Now(),
	}
	return value
}

// GetOrSet retrieves a value from cache or stores the result of fn if it doesn't exist.
// A non-nil error from fn is returned as is and nothing is stored.
func (c *Cache[T]) GetOrSet(key string, fn func() (T, error)) (T, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}

	return c.Set(key, value), nil
}

// Len returns the number of cached entries
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
