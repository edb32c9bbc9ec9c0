// Package rng provides the seeded random source shared by every
// simulation subsystem. A seed string maps to an infinite deterministic
// sequence of floats in [0, 1).
package rng

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"
)

// RNG is a deterministic generator derived from a seed string.
// It is not safe for concurrent use; the simulation owns it for a run.
type RNG struct {
	seed  string
	src   *rand.Rand
	draws uint64
}

// Factory builds a generator for a seed string.
type Factory func(seed string) *RNG

// New creates a generator for the given seed string.
func New(seed string) *RNG {
	hi, lo := hashSeed(seed)
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewPCG(hi, lo)),
	}
}

// hashSeed derives the two PCG state words from the seed string.
func hashSeed(seed string) (uint64, uint64) {
	h := fnv.New64a()
	h.Write([]byte(seed))
	hi := h.Sum64()
	h.Write([]byte{0x9e, 0x37, 0x79, 0xb9})
	lo := h.Sum64()
	return hi, lo
}

// Seed returns the seed string the generator was created with.
func (r *RNG) Seed() string {
	return r.seed
}

// Draws returns how many values have been consumed so far.
func (r *RNG) Draws() uint64 {
	return r.draws
}

// Float returns the next value in [0, 1).
func (r *RNG) Float() float64 {
	r.draws++
	return r.src.Float64()
}

// Range returns a value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}

// Spread returns a value in [-amount, amount).
func (r *RNG) Spread(amount float64) float64 {
	return (r.Float()*2 - 1) * amount
}

// Intn returns a value in [0, n). It consumes exactly one draw.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(math.Floor(r.Float() * float64(n)))
	if i >= n {
		i = n - 1
	}
	return i
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Float() < p
}

// Pick returns an index chosen proportionally to weights, consuming one draw.
// Non-positive weights are never chosen; if all are non-positive, 0 is returned.
func (r *RNG) Pick(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	roll := r.Float() * total
	if total <= 0 {
		return 0
	}
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if roll < w {
			return i
		}
		roll -= w
	}
	return last
}

// DailySeed returns the shared challenge seed for a calendar day (UTC).
func DailySeed(day time.Time) string {
	return "daily-" + day.UTC().Format("2006-01-02")
}

// RandomSeed returns a fresh seed string based on the current time.
func RandomSeed() string {
	return fmt.Sprintf("run-%x", time.Now().UnixNano())
}
