package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUEviction(t *testing.T) {
	c := NewLRU(2)

	k1 := Key{Kind: KindTerm, Term: "a"}
	k2 := Key{Kind: KindTerm, Term: "b"}
	k3 := Key{Kind: KindTerm, Term: "c"}

	c.Set(k1, []byte("1"))
	c.Set(k2, []byte("2"))
	assert.Equal(t, 2, c.Len())

	// Touch k1 so k2 becomes the LRU victim.
	_, ok := c.Get(k1)
	require.True(t, ok)

	c.Set(k3, []byte("3"))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(k2)
	assert.False(t, ok, "k2 should be evicted")

	v, ok := c.Get(k1)
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	_, ok = c.Get(k3)
	assert.True(t, ok)
}

func TestLRUUpdateExisting(t *testing.T) {
	c := NewLRU(2)
	k := Key{Kind: KindID, ID: 7}

	c.Set(k, []byte("old"))
	c.Set(k, []byte("new"))
	assert.Equal(t, 1, c.Len())

	v, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), v)
}

func TestLRUStats(t *testing.T) {
	c := NewLRU(4)
	k := Key{Kind: KindTerm, Term: "x"}

	c.Get(k)
	c.Set(k, []byte("v"))
	c.Get(k)
	c.Get(k)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestKindsSeparateKeySpaces(t *testing.T) {
	c := NewLRU(4)

	c.Set(Key{Kind: KindTerm, Term: "x"}, []byte("term"))
	c.Set(Key{Kind: KindID, ID: 1}, []byte("id"))

	v, ok := c.Get(Key{Kind: KindTerm, Term: "x"})
	require.True(t, ok)
	assert.Equal(t, []byte("term"), v)

	v, ok = c.Get(Key{Kind: KindID, ID: 1})
	require.True(t, ok)
	assert.Equal(t, []byte("id"), v)
}

func TestShardedConcurrent(t *testing.T) {
	c := NewSharded(10_000)

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := Key{Kind: KindTerm, Term: fmt.Sprintf("t%d-%d", w, i)}
				c.Set(key, []byte{byte(i)})
				if v, ok := c.Get(key); ok {
					assert.Equal(t, []byte{byte(i)}, v)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16*200, c.Len())
}

func TestShardedCapacityBound(t *testing.T) {
	// Capacities below the shard count are a hard bound, not a per-shard
	// rounding: 7 means at most 7 resident entries.
	c := NewSharded(7)

	for i := 0; i < 100; i++ {
		c.Set(Key{Kind: KindTerm, Term: fmt.Sprintf("t%d", i)}, []byte{byte(i)})
	}
	assert.LessOrEqual(t, c.Len(), 7)

	c = NewSharded(1)
	c.Set(Key{Kind: KindTerm, Term: "a"}, []byte("1"))
	c.Set(Key{Kind: KindTerm, Term: "b"}, []byte("2"))
	assert.Equal(t, 1, c.Len())
}

func TestRegistryFirstSizeWins(t *testing.T) {
	r := NewRegistry()

	c1 := r.Namespace("glove", 100)
	require.NotNil(t, c1)

	// Second open with a different size is a no-op; same cache comes back.
	c2 := r.Namespace("glove", 999_999)
	assert.Same(t, c1, c2)

	// Distinct names get distinct namespaces.
	c3 := r.Namespace("fasttext", 100)
	assert.NotSame(t, c1, c3)
}

func TestRegistryDisabled(t *testing.T) {
	r := NewRegistry()

	assert.Nil(t, r.Namespace("nocache", 0))

	// A later caller with a real size still gets a cache.
	c := r.Namespace("nocache", 10)
	require.NotNil(t, c)
	assert.Same(t, c, r.Namespace("nocache", 0))
}
