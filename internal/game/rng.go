package game

import (
	"math/rand"
	"time"
)

// Rand is the randomness the simulation consumes. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source. Seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// uniform returns a value in [min, max).
func uniform(rng Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// signed returns +v or -v with equal probability.
func signed(rng Rand, v float64) float64 {
	if rng.Intn(2) == 0 {
		return -v
	}
	return v
}
