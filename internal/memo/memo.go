// Package memo provides a compute-once cache keyed by operation name.
// It backs the branch/tag listings so repeated requests on one provider
// instance never repeat the underlying network round-trips.
package memo

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes the first successful result per key for its whole lifetime.
// There is no TTL and no invalidation; callers wanting a refetch construct a
// fresh cache (in practice, a fresh provider instance).
//
// Concurrent callers for the same key are coalesced: exactly one executes the
// compute function, the rest block and receive the identical stored value.
// A failed compute stores nothing, so a later call retries cleanly.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	group   singleflight.Group
}

// NewCache creates an empty cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]V),
	}
}

// Do returns the cached value for key, computing and storing it on first use.
func (c *Cache[V]) Do(key string, compute func() (V, error)) (V, error) {
	c.mu.RLock()
	value, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the lock: a previous flight may have stored the
		// value between the fast-path read and this call.
		c.mu.RLock()
		value, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return value, nil
		}

		computed, computeErr := compute()
		if computeErr != nil {
			return nil, computeErr
		}

		c.mu.Lock()
		c.entries[key] = computed
		c.mu.Unlock()
		return computed, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	//nolint:forcetypeassert // the flight only ever stores V
	return result.(V), nil
}

// Populated reports whether a value is already stored for key.
func (c *Cache[V]) Populated(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}
