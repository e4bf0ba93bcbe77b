package model

import "math"

// SigmoidUp is a smooth step-up from 0 to 1 centered at transition.
// The factor of 3 sets the steepness so most of the change happens
// within about ±interval of the center; the value at x == transition
// is exactly 0.5.
//
// interval must be nonzero; callers validate their configuration before
// reaching the gates.
func SigmoidUp(x, transition, interval float64) float64 {
	return 1 / (1 + math.Exp(-(x-transition)*3/interval))
}

// SigmoidDown is the complementary smooth step-down from 1 to 0.
func SigmoidDown(x, transition, interval float64) float64 {
	return 1 - SigmoidUp(x, transition, interval)
}

// SigmoidFloor is a step-down rescaled to asymptote at floor instead
// of 0. For floor in [0, 1] the output always stays in [floor, 1],
// which models feedbacks that saturate rather than vanish.
func SigmoidFloor(x, transition, interval, floor float64) float64 {
	return SigmoidDown(x, transition, interval)*(1-floor) + floor
}
