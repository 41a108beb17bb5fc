// Package dice provides the seedable random source threaded through level generation.
package dice

import (
	"math/rand"
)

// Roller is the random capability consumed by every builder stage.
// Implementations must be deterministic for a given seed.
type Roller interface {
	// Roll rolls n dice with the specified number of sides and returns the total
	Roll(n, sides int) int

	// Range returns a uniform integer in [min, max)
	Range(min, max int) int
}

// RNG is the default Roller backed by math/rand
type RNG struct {
	rng  *rand.Rand
	seed int64
}

// New creates a new RNG seeded with the given value
func New(seed int64) *RNG {
	return &RNG{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the RNG was created with
func (r *RNG) Seed() int64 {
	return r.seed
}

// Roll rolls n dice with the specified number of sides and returns the total.
// Dice with fewer than one side contribute nothing.
func (r *RNG) Roll(n, sides int) int {
	if sides < 1 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += r.rng.Intn(sides) + 1
	}
	return total
}

// Range returns a uniform integer in [min, max), or min when the range is empty
func (r *RNG) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min)
}

// D100 rolls a 100-sided die (1-100), used for percentage checks
func D100(r Roller) int {
	return r.Roll(1, 100)
}

// Shuffle permutes n elements in place using swap, Fisher-Yates style
func Shuffle(r Roller, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Range(0, i+1)
		swap(i, j)
	}
}
