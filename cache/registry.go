package cache

import "sync"

// Registry hands out one shared cache per index name. Every handle opened on
// the same name through the same registry sees the same cache. Setup is
// idempotent per name: the first caller's size wins and later sizes are
// ignored, so re-opening with a different size is a no-op rather than an
// error.
//
// The registry is an explicit dependency injected at open time, not a hidden
// process-wide singleton; a convenient shared default lives in the root
// package.
type Registry struct {
	mu     sync.Mutex
	spaces map[string]Cache
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{spaces: make(map[string]Cache)}
}

// Namespace returns the cache for the given index name, creating it with the
// given entry capacity on first use. A size <= 0 disables caching for the
// name (returns nil) unless an earlier caller already created it.
func (r *Registry) Namespace(name string, size int) Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.spaces[name]; ok {
		return c
	}
	if size <= 0 {
		return nil
	}

	c := NewSharded(size)
	r.spaces[name] = c
	return c
}
