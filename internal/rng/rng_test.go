package rng_test

import (
	"testing"

	"github.com/mathle/go-server/internal/rng"
)

func TestHashSeedKnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 2166136261}, // FNV-1a offset basis
		{"a", 0xe40c292c},
		{"2024-01-01", 1395918025},
		{"daily-v4::tiles8::1to3digits::2024-01-01", 3406379445},
	}
	for _, tc := range tests {
		if got := rng.HashSeed(tc.in); got != tc.want {
			t.Errorf("HashSeed(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestHashSeedOrderSensitive(t *testing.T) {
	if rng.HashSeed("ab") == rng.HashSeed("ba") {
		t.Error("HashSeed should distinguish ab from ba")
	}
}

func TestGeneratorDeterminism(t *testing.T) {
	a := rng.New(42)
	b := rng.New(42)
	for i := 0; i < 1000; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d diverged: %v vs %v", i, x, y)
		}
	}
}

func TestGeneratorKnownSequence(t *testing.T) {
	// Pinned against the reference mulberry32 stream for seed 12345.
	g := rng.New(12345)
	want := []int{979, 307, 484, 818, 509}
	for i, w := range want {
		if got := rng.RandomInt(g, 1, 999); got != w {
			t.Errorf("draw %d: RandomInt(1,999) = %d, want %d", i, got, w)
		}
	}
}

func TestFloat64Range(t *testing.T) {
	g := rng.New(7)
	for i := 0; i < 10000; i++ {
		f := g.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, f)
		}
	}
}

func TestRandomIntInclusiveBounds(t *testing.T) {
	g := rng.New(1)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		n := rng.RandomInt(g, 1, 3)
		if n < 1 || n > 3 {
			t.Fatalf("RandomInt(1,3) out of range: %d", n)
		}
		seen[n] = true
	}
	for v := 1; v <= 3; v++ {
		if !seen[v] {
			t.Errorf("RandomInt(1,3) never produced %d in 10000 draws", v)
		}
	}
}

func TestRandomChoice(t *testing.T) {
	g := rng.New(99)
	items := []string{"+", "-", "*"}
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[rng.RandomChoice(g, items)] = true
	}
	if len(seen) != len(items) {
		t.Errorf("RandomChoice covered %d of %d items", len(seen), len(items))
	}
}
