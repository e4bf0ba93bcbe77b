// Package testutil provides deterministic test doubles for the model's
// injectable dependencies.
package testutil

// FixedNoise returns a deterministic "draw" for every Normal call.
//
// The returned value is mean + Offset*stddev, so tests can dial in an
// exact perturbation in units of the standard deviation. Offset 0 makes
// the stochastic feedback a no-op, which lets a test enable the
// stochastic code path while keeping the trajectory reproducible by
// hand.
//
// Thread-safety: FixedNoise is stateless and safe for concurrent use.
type FixedNoise struct {
	Offset float64
}

// Normal implements model.NoiseSource.
func (n FixedNoise) Normal(mean, stddev float64) float64 {
	return mean + n.Offset*stddev
}
