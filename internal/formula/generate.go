// internal/formula/generate.go
//
// Deterministic daily formula generation.
// The secret for a date key is derived purely from the key: hash the salted
// key to a 32-bit seed, then draw operator count, operators, and operands from
// a mulberry32 stream until an attempt lands on exactly 8 tiles.
//
// The draw order is load-bearing: an attempt that overflows 8 tiles is
// abandoned wholesale and everything (operator count included) is re-rolled,
// consuming additional draws. Changing when draws happen — even retrying just
// the failing operand — would silently change every daily secret, so the loop
// below must stay draw-for-draw compatible with the reference derivation.
package formula

import (
	"strconv"

	"github.com/mathle/go-server/internal/rng"
)

// seedSalt versions the derivation; bump only with a deliberate puzzle reset.
const seedSalt = "daily-v4::tiles8::1to3digits::"

var termCounts = []int{2, 3}

// GenerateDaily returns the secret formula and its lowercase tile string for
// a date key (YYYY-MM-DD). Deterministic: the same key always produces the
// same secret, with no stored state.
func GenerateDaily(dateKey string) (Formula, string) {
	gen := rng.New(rng.HashSeed(seedSalt + dateKey))
	for {
		tiles, ok := attempt(gen)
		if !ok {
			continue
		}
		f, err := Parse(tiles)
		if err != nil {
			continue
		}
		return f, tiles
	}
}

// attempt rolls one candidate tile sequence. It reports ok=false as soon as
// the running length would exceed 8 tiles; an operator tile that overflows is
// detected before its operand is drawn.
func attempt(gen *rng.Generator) (string, bool) {
	terms := rng.RandomChoice(gen, termCounts)
	tiles := []byte{'x'}
	for t := 0; t < terms; t++ {
		tiles = append(tiles, byte(rng.RandomChoice(gen, Ops)))
		if len(tiles) > TileCount {
			return "", false
		}
		n := rng.RandomInt(gen, 1, 999)
		tiles = append(tiles, strconv.Itoa(n)...)
		if len(tiles) > TileCount {
			return "", false
		}
	}
	if len(tiles) != TileCount {
		return "", false
	}
	return string(tiles), true
}
