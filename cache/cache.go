// Package cache provides the bounded read-through cache sitting in front of
// the persistent tables, plus the per-name registry that lets every handle
// opened on the same index name within one process share a cache.
//
// The cache is internally synchronized: callers may Get and Set concurrently
// without external locking. There is no invalidation path; the store is
// build-once/read-many, so entries never go stale.
package cache

// Kind separates the two cached key spaces of an index.
type Kind uint8

const (
	// KindTerm caches the forward direction: term -> encoded (id, vector).
	KindTerm Kind = iota + 1
	// KindID caches the reverse direction: id -> term.
	KindID
)

// Key identifies one cached entry within a namespace. Exactly one of Term or
// ID is meaningful, selected by Kind.
type Key struct {
	Kind Kind
	Term string
	ID   uint64
}

// Cache is an entry-count-bounded cache for immutable values. Returned slices
// must be treated as read-only.
type Cache interface {
	// Get returns a cached value. ok is false on a miss.
	Get(key Key) (b []byte, ok bool)
	// Set caches a value. The caller must not mutate b afterwards.
	Set(key Key, b []byte)
	// Stats returns cumulative hit/miss counters.
	Stats() (hits, misses int64)
}
