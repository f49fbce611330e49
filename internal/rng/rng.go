// internal/rng/rng.go
//
// Deterministic seeded randomness for the daily puzzle.
// Responsibilities:
//   - HashSeed: map an arbitrary string to a stable 32-bit seed (FNV-1a).
//   - Generator: mulberry32 pseudo-random stream of float64 values in [0,1).
//   - RandomInt / RandomChoice: inclusive integer draws and uniform picks.
//
// Notes:
//   - The daily secret is derived from this stream, so the exact bit-level
//     behaviour (wrap-to-uint32 arithmetic, draw order) is a compatibility
//     contract: the same seed must yield the same sequence on every platform.
//   - Not cryptographic. Do not use for anything security-sensitive.
package rng

import "math"

// fnvBasis and fnvPrime are the 32-bit FNV-1a parameters.
const (
	fnvBasis uint32 = 2166136261
	fnvPrime uint32 = 16777619
)

// HashSeed returns the 32-bit FNV-1a hash of text.
// Order-sensitive and stable across runs and platforms.
func HashSeed(text string) uint32 {
	h := fnvBasis
	for i := 0; i < len(text); i++ {
		h ^= uint32(text[i])
		h *= fnvPrime
	}
	return h
}

// Generator is a mulberry32 pseudo-random number generator.
// The zero value is a valid generator seeded with 0.
type Generator struct {
	state uint32
}

// New constructs a Generator with the given seed.
func New(seed uint32) *Generator {
	return &Generator{state: seed}
}

// Float64 advances the state and returns the next value in [0,1).
// One state advance per call; all arithmetic wraps to 32 bits.
func (g *Generator) Float64() float64 {
	g.state += 0x6D2B79F5
	t := g.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// RandomInt returns a uniform integer in [min, max], inclusive of both bounds.
func RandomInt(g *Generator, min, max int) int {
	return int(math.Floor(g.Float64()*float64(max-min+1))) + min
}

// RandomChoice picks a uniformly random element of items.
// Panics on an empty slice, matching the out-of-range index it would imply.
func RandomChoice[T any](g *Generator, items []T) T {
	return items[RandomInt(g, 0, len(items)-1)]
}
