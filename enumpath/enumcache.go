package enumpath

import (
	"bytes"
	"encoding/gob"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/flate"

	"github.com/plm/bridge-routing-engine/graph"
	"github.com/plm/bridge-routing-engine/rterr"
)

// CacheKey identifies one memoized EnumeratePaths call: the graph's
// structural signature (§4.2), the endpoints, and every field of the
// enumeration config that can change the result set.
type CacheKey struct {
	digest uint64
}

// NewCacheKey builds a CacheKey from a graph signature, endpoints, and
// config, collapsing them into a single 64-bit xxhash digest — the cache is
// "unbounded (bounded by distinct query shapes in practice)" per §4.2, so
// the map key stays fixed-width rather than retaining the full string.
func NewCacheKey(graphSignature string, start, end graph.NodeID, cfg PathEnumConfig) CacheKey {
	h := xxhash.New()
	_, _ = h.WriteString(graphSignature)
	_, _ = h.WriteString("\x1e")
	_, _ = h.WriteString(string(start))
	_, _ = h.WriteString("\x1f")
	_, _ = h.WriteString(string(end))
	_, _ = h.WriteString("\x1f")
	_ = gob.NewEncoder(h).Encode(cfg)
	return CacheKey{digest: h.Sum64()}
}

// Cache memoizes EnumeratePaths results. Query shapes accumulate over a
// long-lived process, so entries are gob-encoded and flate-compressed
// before being stored to keep the resident memory footprint down; entries
// are decompressed on every Get.
type Cache struct {
	mu    sync.RWMutex
	store map[uint64][]byte
}

// NewCache builds an empty enumeration memoization cache.
func NewCache() *Cache {
	return &Cache{store: make(map[uint64][]byte)}
}

// Get returns the memoized route set for key, if present.
func (c *Cache) Get(key CacheKey) ([]*graph.RoutePath, bool) {
	c.mu.RLock()
	compressed, ok := c.store[key.digest]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	routes, err := decodeRoutes(compressed)
	if err != nil {
		return nil, false
	}
	return routes, true
}

// Put memoizes routes under key.
func (c *Cache) Put(key CacheKey, routes []*graph.RoutePath) {
	compressed, err := encodeRoutes(routes)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.store[key.digest] = compressed
	c.mu.Unlock()
}

// Len reports the number of distinct memoized query shapes held.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func encodeRoutes(routes []*graph.RoutePath) ([]byte, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(routes); err != nil {
		return nil, rterr.NewEnumError("enumcache_encode", err)
	}

	var compressed bytes.Buffer
	w, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		return nil, rterr.NewEnumError("enumcache_encode", err)
	}
	if _, err := w.Write(raw.Bytes()); err != nil {
		return nil, rterr.NewEnumError("enumcache_encode", err)
	}
	if err := w.Close(); err != nil {
		return nil, rterr.NewEnumError("enumcache_encode", err)
	}
	return compressed.Bytes(), nil
}

func decodeRoutes(compressed []byte) ([]*graph.RoutePath, error) {
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, rterr.NewEnumError("enumcache_decode", err)
	}

	var routes []*graph.RoutePath
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&routes); err != nil {
		return nil, rterr.NewEnumError("enumcache_decode", err)
	}
	return routes, nil
}
