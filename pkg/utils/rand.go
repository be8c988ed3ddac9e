// Package utils provides small helpers for host runner logic.
package utils

import "math/rand/v2"

// RandSource is a per-invocation random number generator. Host runners
// derive one from each experiment's seed, so concurrent invocations stay
// independent and a rerun under the same seed is reproducible.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a generator for one experiment seed.
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Float64 returns a random float64 in [0.0, 1.0).
func (r *RandSource) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a random int in [0, n).
func (r *RandSource) Intn(n int) int {
	return r.rng.IntN(n)
}

// UniformFloat64 returns a uniform random number in [lower, upper).
func (r *RandSource) UniformFloat64(lower, upper float64) float64 {
	return lower + r.rng.Float64()*(upper-lower)
}

// NormFloat64 returns a normal random number with the given mean and
// standard deviation.
func (r *RandSource) NormFloat64(mean, stddev float64) float64 {
	return r.rng.NormFloat64()*stddev + mean
}
