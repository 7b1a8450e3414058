package localfs

import (
	"path/filepath"

	"github.com/promptdeck/promptdeck/internal/port/cache"
)

// Factory creates partition stores under a common base directory:
// <base>/local for the anonymous identity, <base>/users/<id> for
// authenticated users.
type Factory struct {
	baseDir string
	cache   cache.Cache
}

// NewFactory creates a partition factory. cache may be nil.
func NewFactory(baseDir string, c cache.Cache) *Factory {
	return &Factory{baseDir: baseDir, cache: c}
}

// BaseDir returns the root data directory.
func (f *Factory) BaseDir() string { return f.baseDir }

// Anonymous returns the store for the anonymous partition.
func (f *Factory) Anonymous() *Store {
	return New(filepath.Join(f.baseDir, "local"), f.options()...)
}

// ForUser returns the store for the given user's partition.
func (f *Factory) ForUser(userID string) *Store {
	return NewForUser(filepath.Join(f.baseDir, "users", userID), userID, f.options()...)
}

func (f *Factory) options() []Option {
	if f.cache == nil {
		return nil
	}
	return []Option{WithContentCache(f.cache)}
}
