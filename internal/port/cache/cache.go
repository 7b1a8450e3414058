// Package cache defines the port interface for in-process caching.
package cache

// Cache is a byte-value cache keyed by string. Implementations may evict
// entries at any time; callers must treat every Get as fallible.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}
