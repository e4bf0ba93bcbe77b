package model

import "math/rand"

// NoiseSource supplies normal draws for the stochastic carbon
// perturbation. Randomness is always injected through this interface,
// never pulled from process-global state, so stochastic runs are
// reproducible from a seed.
//
// Implemented by RandNoise (production) and testutil.FixedNoise (tests).
type NoiseSource interface {
	Normal(mean, stddev float64) float64
}

// RandNoise draws from a seedable math/rand source.
//
// Not safe for concurrent use; ensemble members each get their own.
type RandNoise struct {
	rng *rand.Rand
}

// NewRandNoise creates a noise source seeded with seed. The same seed
// always produces the same sequence of draws.
func NewRandNoise(seed int64) *RandNoise {
	return &RandNoise{rng: rand.New(rand.NewSource(seed))}
}

// Normal returns a draw from N(mean, stddev²).
func (n *RandNoise) Normal(mean, stddev float64) float64 {
	return n.rng.NormFloat64()*stddev + mean
}
