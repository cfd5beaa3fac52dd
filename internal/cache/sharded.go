package cache

import (
	"hash/fnv"
	"sync"
)

// ShardCount is the number of independently locked shards in a Sharded cache.
// Must be a power of 2.
const ShardCount = 16

const shardMask = ShardCount - 1

// Hasher computes the shard-selection hash of a key.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of s.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Uint64Hasher returns u itself. Use it for keys that already are hashes.
func Uint64Hasher(u uint64) uint64 {
	return u
}

// Sharded is an LRU split across ShardCount shards, each behind its own
// mutex. Total capacity is the per-shard capacity times ShardCount.
//
// Sharded is safe for concurrent use.
type Sharded[K comparable, V any] struct {
	shards [ShardCount]shard[K, V]
	hasher Hasher[K]
}

type shard[K comparable, V any] struct {
	mu  sync.Mutex
	lru *LRU[K, V]
}

// NewSharded creates a sharded cache holding up to capacity entries per shard.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	c := &Sharded[K, V]{hasher: hasher}
	for i := range c.shards {
		c.shards[i].lru = New[K, V](capacity)
	}
	return c
}

func (c *Sharded[K, V]) shard(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get returns the value for key.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Get(key)
}

// Put stores value under key.
func (c *Sharded[K, V]) Put(key K, value V) {
	s := c.shard(key)
	s.mu.Lock()
	s.lru.Put(key, value)
	s.mu.Unlock()
}

// Len returns the number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += s.lru.Len()
		s.mu.Unlock()
	}
	return n
}

// Stats returns counters summed across shards.
func (c *Sharded[K, V]) Stats() Stats {
	var total Stats
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		st := s.lru.Stats()
		s.mu.Unlock()
		total.Hits += st.Hits
		total.Misses += st.Misses
		total.Evictions += st.Evictions
	}
	return total
}

// Clear removes all entries.
func (c *Sharded[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.lru.Clear()
		s.mu.Unlock()
	}
}
