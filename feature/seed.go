// Package feature builds the 14-dimensional prediction feature vector of
// §4.4.1: two sin/cos pairs for time-of-day and day-of-week, and ten
// deterministic per-bridge quantities, some derived from the route and some
// drawn from a seeded PRNG stream.
//
// The host language's native string hash codes are not portable across
// processes or platforms, so — per the "string hashing for seeding" design
// note — this package replaces them with FNV-1a 64-bit over the bridge ID's
// UTF-8 bytes concatenated with the little-endian 5-minute bucket and the
// little-endian 64-bit global seed, feeding a 64-bit LCG.
package feature

import (
	"encoding/binary"
	"hash/fnv"
)

// VectorLen is the fixed feature-vector dimensionality.
const VectorLen = 14

// lcgMultiplier and lcgIncrement are the constants of the 64-bit linear
// congruential generator specified in §4.4.1 (Knuth's MMIX multiplier with
// an increment of 1).
const (
	lcgMultiplier uint64 = 6364136223846793005
	lcgIncrement  uint64 = 1
)

// TimeBucket packs an hour-of-day and a 5-minute-aligned minute into the
// bucket index used both here and by the feature cache: hour*12 + minute/5.
func TimeBucket(hour, minute int) uint32 {
	return uint32(hour*12 + minute/5)
}

// Seed computes the FNV-1a 64-bit seed for one (bridgeID, timeBucket,
// globalSeed) triple: FNV-1a over bridgeID's UTF-8 bytes, then the bucket's
// little-endian uint32, then the global seed's little-endian uint64.
func Seed(bridgeID string, timeBucket uint32, globalSeed uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(bridgeID))

	var bucketBuf [4]byte
	binary.LittleEndian.PutUint32(bucketBuf[:], timeBucket)
	_, _ = h.Write(bucketBuf[:])

	var seedBuf [8]byte
	binary.LittleEndian.PutUint64(seedBuf[:], globalSeed)
	_, _ = h.Write(seedBuf[:])

	return h.Sum64()
}

// LCG is the 64-bit linear congruential generator seeded by Seed, used to
// draw the per-bridge pseudo-random stream for the PRNG-derived entries among
// feature indices 4..13 (see Vector).
type LCG struct {
	state uint64
}

// NewLCG constructs an LCG in the state produced by seed.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Next advances the generator and returns the new 64-bit state.
func (l *LCG) Next() uint64 {
	l.state = l.state*lcgMultiplier + lcgIncrement
	return l.state
}

// Float64 draws the next value as a float64 in [0, 1).
func (l *LCG) Float64() float64 {
	// Use the high 53 bits for a uniform double, matching the common
	// LCG-to-float64 conversion.
	return float64(l.Next()>>11) / float64(1<<53)
}
