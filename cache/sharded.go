package cache

import (
	"encoding/binary"
	"hash/maphash"
)

const numShards = 64

// Sharded distributes entries across up to 64 LRU shards to reduce lock
// contention under highly concurrent lookups. The capacity is divided evenly
// across shards and never exceeded: capacities below the shard count use one
// shard per entry.
type Sharded struct {
	shards []*LRU
	seed   maphash.Seed
}

// NewSharded creates a sharded cache holding at most capacity entries total.
func NewSharded(capacity int) *Sharded {
	if capacity < 1 {
		capacity = 1
	}
	n := numShards
	if capacity < n {
		n = capacity
	}

	s := &Sharded{
		shards: make([]*LRU, n),
		seed:   maphash.MakeSeed(),
	}
	for i := range s.shards {
		s.shards[i] = NewLRU(capacity / n)
	}
	return s
}

// shard picks the shard for a key using a fast seeded hash.
func (s *Sharded) shard(key Key) *LRU {
	var h maphash.Hash
	h.SetSeed(s.seed)

	var buf [9]byte
	buf[0] = byte(key.Kind)
	binary.LittleEndian.PutUint64(buf[1:], key.ID)
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(key.Term)

	return s.shards[h.Sum64()%uint64(len(s.shards))]
}

// Get returns a cached value.
func (s *Sharded) Get(key Key) ([]byte, bool) {
	return s.shard(key).Get(key)
}

// Set caches a value.
func (s *Sharded) Set(key Key, b []byte) {
	s.shard(key).Set(key, b)
}

// Len returns the total number of resident entries across shards.
func (s *Sharded) Len() int {
	var n int
	for _, shard := range s.shards {
		n += shard.Len()
	}
	return n
}

// Stats returns aggregated hit/miss counters across shards.
func (s *Sharded) Stats() (hits, misses int64) {
	for _, shard := range s.shards {
		h, m := shard.Stats()
		hits += h
		misses += m
	}
	return hits, misses
}
