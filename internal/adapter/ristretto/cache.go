// Package ristretto implements the cache port using dgraph-io/ristretto as
// an in-process cache for prompt content bodies.
package ristretto

import (
	"github.com/dgraph-io/ristretto/v2"
)

// Cache wraps a ristretto cache keyed by content path.
type Cache struct {
	c *ristretto.Cache[string, []byte]
}

// New creates a ristretto-backed cache. maxCostBytes is the maximum total
// size of cached values in bytes.
func New(maxCostBytes int64) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x expected items
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

// Get retrieves a cached content body.
func (c *Cache) Get(key string) ([]byte, bool) {
	return c.c.Get(key)
}

// Set stores a content body, costed by its length.
func (c *Cache) Set(key string, value []byte) {
	c.c.Set(key, value, int64(len(value)))
}

// Delete removes a content body from the cache.
func (c *Cache) Delete(key string) {
	c.c.Del(key)
}

// Close shuts down the cache and releases resources.
func (c *Cache) Close() {
	c.c.Close()
}
