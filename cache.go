package cantype

import "sync"

// cache maps markers to the object built for them. Entries are never evicted.
type cache[V any] struct {
	mu      sync.RWMutex
	entries map[any]V
}

func newCache[V any]() *cache[V] {
	return &cache[V]{entries: make(map[any]V)}
}

// getOrCreate returns the entry for key, calling create under the write lock
// when it is missing, so concurrent first requests share one object.
func (c *cache[V]) getOrCreate(key any, create func() V) (V, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return v, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[key]; ok {
		return v, false
	}
	v = create()
	c.entries[key] = v
	return v, true
}

func (c *cache[V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
