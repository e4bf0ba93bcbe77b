// Package scenario generates the anthropogenic-emissions forcing
// series consumed by the driver loop: an exponential growth curve
// gated by a sigmoid decay, flattened after its peak toward a nonzero
// long-term emission rate (the "LTE" scenario shape).
package scenario

import (
	"fmt"
	"math"
)

// Reference point for normalizing the exponential growth curve: global
// emissions were about 11.3 GtC/year in 2020.
const (
	refYear      = 2020.0
	refEmissions = 11.3
)

// Spec holds the shape parameters for an emissions scenario.
type Spec struct {
	StartYear float64
	StopYear  float64
	Dtime     float64 // timestep, years

	GrowthRate         float64 // inverse time constant k of the growth curve
	TransitionYear     float64 // center of the sigmoid decay
	TransitionDuration float64 // width of the decay, years
	LongTermEmissions  float64 // asymptotic emission rate, GtC/year
}

// Validate rejects degenerate or non-physical shape parameters. It runs
// before any propagation begins; a failure here is a configuration
// error, never a mid-run one.
func (s Spec) Validate() error {
	switch {
	case s.Dtime <= 0:
		return fmt.Errorf("timestep must be positive, got %g", s.Dtime)
	case s.StopYear <= s.StartYear:
		return fmt.Errorf("stop year %g must be after start year %g", s.StopYear, s.StartYear)
	case s.TransitionDuration == 0:
		return fmt.Errorf("transition duration must be nonzero")
	}
	return nil
}

// Scenario is the generated forcing series. Time[i] pairs with
// Emissions[i] in GtC/year; the slices always have equal length and
// Time increases by exactly Dtime per element. A Scenario is generated
// once and consumed read-only.
type Scenario struct {
	Time      []float64
	Emissions []float64
}

// Generate builds the emissions series for spec s. The generator is
// deterministic: identical specs produce bit-identical series.
//
// The time grid is half-open, [StartYear, StopYear) stepped by Dtime,
// matching the convention of the rest of the driver.
//
// The base curve is exp(k*t) normalized so that it passes through the
// 2020 reference emission level, multiplied by a step-down sigmoid
// centered on TransitionYear. Everything at and after the curve's peak
// is then replaced by a Gaussian-weighted blend decaying from the peak
// value toward LongTermEmissions.
//
// The curve is evaluated in log space. The naive form normalizes by
// exp(k*refYear)*sigmoidDown(refYear), which underflows to zero when
// the transition sits far before the reference year and turns the
// whole series into Inf and NaN.
func Generate(s Spec) (Scenario, error) {
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}

	n := int(math.Ceil((s.StopYear - s.StartYear) / s.Dtime))
	time := make([]float64, n)
	eps := make([]float64, n)

	// sigmoidDown(x) == 1/(1+exp(z)) == exp(-softplus(z)) for
	// z = (x-transition)*3/duration.
	zRef := (refYear - s.TransitionYear) * 3 / s.TransitionDuration
	spRef := softplus(zRef)
	for i := range time {
		t := s.StartYear + float64(i)*s.Dtime
		time[i] = t
		z := (t - s.TransitionYear) * 3 / s.TransitionDuration
		eps[i] = refEmissions * math.Exp((t-refYear)*s.GrowthRate+spRef-softplus(z))
	}

	for i, e := range eps {
		if math.IsInf(e, 0) || math.IsNaN(e) {
			return Scenario{}, fmt.Errorf("emissions not finite at year %g; growth rate and transition do not describe a physical scenario", time[i])
		}
	}

	flattenPostPeak(time, eps, s.TransitionDuration, s.LongTermEmissions)

	return Scenario{Time: time, Emissions: eps}, nil
}

// softplus is log(1+exp(z)) evaluated without overflow for large z.
func softplus(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

// flattenPostPeak rewrites everything at and after the curve's maximum
// with a Gaussian-weighted blend that decays from the peak value toward
// the long-term floor instead of toward zero. Values before the peak
// are untouched.
//
// A monotonic curve degenerates to an endpoint peak; the blend then
// rewrites only the tail from that endpoint, which at the endpoint
// itself is the peak value unchanged.
func flattenPostPeak(time, eps []float64, duration, longTerm float64) {
	ipeak := 0
	for i, v := range eps {
		if v > eps[ipeak] {
			ipeak = i
		}
	}
	peak := eps[ipeak]
	for i := ipeak; i < len(eps); i++ {
		dt := time[i] - time[ipeak]
		eps[i] = longTerm + math.Exp(-(dt*dt)/(duration*duration))*(peak-longTerm)
	}
}

// TransitionYearForPeak converts a desired peak-emissions year into the
// transition year that produces it, given the growth rate k and the
// transition duration. Derived by setting the time derivative of the
// base curve to zero. Requires k > 0, duration > 0 and k*duration < 3;
// otherwise the base curve has no interior maximum.
func TransitionYearForPeak(k, peakYear, duration float64) (float64, error) {
	if k <= 0 || duration <= 0 || k*duration >= 3 {
		return 0, fmt.Errorf("no interior peak for k=%g, duration=%g", k, duration)
	}
	// Evaluated in log space; the direct form overflows for small
	// durations.
	return peakYear + duration/3*math.Log((3-k*duration)/(k*duration)), nil
}
