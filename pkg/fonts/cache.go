package fonts

import "sync/atomic"

// Cache holds the process-wide FontSet. Reads are lock-free; once stored, a
// set is never replaced by the provider. The composition root creates one
// Cache per process and injects it; tests create a fresh one each.
type Cache struct {
	set atomic.Pointer[FontSet]
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

// Load returns the cached set or nil.
func (c *Cache) Load() *FontSet { return c.set.Load() }

// Store sets the cached set. Storing nil is ignored.
func (c *Cache) Store(fs *FontSet) {
	if fs != nil {
		c.set.Store(fs)
	}
}
