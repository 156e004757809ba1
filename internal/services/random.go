package services

import "math/rand/v2"

// RandomSource yields uniform values in [0, 1).
//
// A source is owned by a single planning request and is not safe for
// concurrent use; callers that plan in parallel create one source each.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a deterministic source for the given seed.
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32|1))
}

// uniform draws a value in [lo, hi).
func uniform(rng RandomSource, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
