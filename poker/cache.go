package poker

import "sync"

// Cache memoises the class of non-straight, non-flush hands keyed by the
// product of their five rank primes. The product identifies the rank multiset,
// so the key space is a few thousand entries and the cache is never evicted.
// A Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	classes map[uint32]RankClass
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{classes: make(map[uint32]RankClass, 256)}
}

// Get returns the cached class for product.
func (c *Cache) Get(product uint32) (RankClass, bool) {
	c.mu.RLock()
	rc, ok := c.classes[product]
	c.mu.RUnlock()
	return rc, ok
}

// Put stores the class for product.
func (c *Cache) Put(product uint32, rc RankClass) {
	c.mu.Lock()
	c.classes[product] = rc
	c.mu.Unlock()
}

// Len returns the number of cached products.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.classes)
}

// Snapshot returns a copy of the cached entries.
func (c *Cache) Snapshot() map[uint32]RankClass {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[uint32]RankClass, len(c.classes))
	for k, v := range c.classes {
		out[k] = v
	}
	return out
}
