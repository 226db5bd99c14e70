// Package featurecache implements the bounded, concurrent, time-bucketed
// feature cache of §4.4.2: a map from bridge_id+5-minute-bucket to a feature
// vector, FIFO eviction by insertion order, capacity 1000 by default.
//
// The concurrency contract is a single reader-writer lock protecting one map
// and one insertion-order list together (§4.4.2, §5): "many readers may
// look up simultaneously; writers acquire an exclusive lock; readers and
// writers do not block each other except during write commits." This rules
// out sharding the cache itself — Invariant 12 (§8) requires one global FIFO
// order, not N independent ones — so this package stays a single sync.RWMutex
// guarding one gammazero/deque.Deque (the insertion-order list) and one map.
package featurecache

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/gammazero/deque"

	"github.com/plm/bridge-routing-engine/feature"
)

// DefaultCapacity is the default bound on distinct (bridge_id, time_bucket)
// entries retained by the cache.
const DefaultCapacity = 1000

// Key identifies one cache entry.
type Key struct {
	BridgeID   string
	TimeBucket uint32
}

// digest collapses a Key into the fixed-width 64-bit value actually used as
// the map key, so the cache's memory footprint doesn't grow with bridge-ID
// string length once occupancy is high.
func (k Key) digest() uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(k.BridgeID)
	var buf [4]byte
	buf[0] = byte(k.TimeBucket)
	buf[1] = byte(k.TimeBucket >> 8)
	buf[2] = byte(k.TimeBucket >> 16)
	buf[3] = byte(k.TimeBucket >> 24)
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Cache is the bounded FIFO feature cache.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	data     map[uint64][feature.VectorLen]float64
	order    deque.Deque[uint64]

	hits   atomic.Int64
	misses atomic.Int64
}

// New builds a Cache with the given capacity; capacity <= 0 uses
// DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		data:     make(map[uint64][feature.VectorLen]float64, capacity),
	}
}

// Get looks up key. Many concurrent Get calls may proceed together.
func (c *Cache) Get(key Key) (vec [feature.VectorLen]float64, ok bool) {
	d := key.digest()
	c.mu.RLock()
	vec, ok = c.data[d]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return vec, ok
}

// Put inserts or refreshes key's entry. Re-inserting an existing key moves
// it to the tail of the FIFO order without changing the cache's size
// (Invariant 12, §8). Put takes the exclusive lock for its full duration.
func (c *Cache) Put(key Key, vec [feature.VectorLen]float64) {
	d := key.digest()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[d]; exists {
		c.moveToTailLocked(d)
		c.data[d] = vec
		return
	}

	if len(c.data) >= c.capacity {
		oldest, ok := c.order.PopFront()
		if ok {
			delete(c.data, oldest)
		}
	}

	c.order.PushBack(d)
	c.data[d] = vec
}

// moveToTailLocked removes d from wherever it sits in the order deque and
// re-pushes it at the back. Callers must hold c.mu for writing. The deque
// offers no O(1) arbitrary removal, so this is an O(n) scan; n is bounded by
// capacity (1000 by default), which keeps this cheap in practice.
func (c *Cache) moveToTailLocked(d uint64) {
	n := c.order.Len()
	for i := 0; i < n; i++ {
		if c.order.At(i) == d {
			c.order.Remove(i)
			break
		}
	}
	c.order.PushBack(d)
}

// Len returns the current number of entries held.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Stats reports monotone hit/miss counters.
type Stats struct {
	Hits   int64
	Misses int64
}

// Stats returns a snapshot of the hit/miss counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
