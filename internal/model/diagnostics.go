package model

import (
	"math"
)

// TemperatureAnomaly computes the warming, in K, implied by the current
// atmospheric carbon mass. Linear response around the preindustrial
// reference.
func (p *Params) TemperatureAnomaly(cAtm float64) float64 {
	return p.ClimateSensitivity * (cAtm - p.PreindustCAtm)
}

// FluxAtmOcean is the carbon flux from atmosphere to ocean, GtC/year.
func (p *Params) FluxAtmOcean(cAtm float64) float64 {
	return p.KAo * cAtm
}

// FluxOceanAtm is the temperature-dependent degassing flux from ocean
// to atmosphere, GtC/year. Degassing increases with warming.
func (p *Params) FluxOceanAtm(cOcean, tAnomaly float64) float64 {
	return p.KOa * (1 + p.OceanDegasFeedback*tAnomaly) * cOcean
}

// FluxAtmLand is the terrestrial carbon sink, GtC/year. The CO2
// fertilization term saturates as warming passes the transition
// anomaly: the sigmoid gate drops from 1 toward its fractional floor.
func (p *Params) FluxAtmLand(tAnomaly, cAtm float64) float64 {
	gate := SigmoidFloor(tAnomaly, p.FluxAlTransitionT, p.FluxAlTransitionInterval, p.FracFluxAlFloor)
	return p.KAl0 + p.KAl1*gate*cAtm
}

// FluxLandAtm is the terrestrial carbon source, a constant GtC/year.
func (p *Params) FluxLandAtm() float64 {
	return p.KLa
}

// AlbedoFromAnomaly returns the planetary albedo implied by the
// temperature anomaly, unconstrained by any rate limit.
func (p *Params) AlbedoFromAnomaly(tAnomaly float64) float64 {
	gate := SigmoidFloor(tAnomaly, p.AlbedoTransitionT, p.AlbedoTransitionInterval, p.FracAlbedoFloor)
	return gate * p.PreindustAlbedo
}

// AlbedoConstrained returns the albedo implied by the anomaly, with the
// per-step change clamped to at most MaxAlbedoChangeRate*dtime when
// both prevAlbedo and dtime are nonzero. The sign of the intended
// change is preserved.
func (p *Params) AlbedoConstrained(tAnomaly, prevAlbedo, dtime float64) float64 {
	albedo := p.AlbedoFromAnomaly(tAnomaly)

	if prevAlbedo != 0 && dtime != 0 {
		change := albedo - prevAlbedo
		maxChange := p.MaxAlbedoChangeRate * dtime
		if math.Abs(change) > maxChange {
			albedo = prevAlbedo + math.Copysign(maxChange, change)
		}
	}
	return albedo
}

// DeltaTFromAlbedo computes the additional warming from a changed
// albedo, from radiative balance (ASR = OLR). With a negative
// AlbedoSensitivity, a lower albedo (more absorption) raises the
// temperature.
func (p *Params) DeltaTFromAlbedo(albedo float64) float64 {
	return (albedo - p.PreindustAlbedo) * p.AlbedoSensitivity
}

// OceanPH diagnoses the ocean surface pH from atmospheric carbon.
// Returns a DomainError for a non-positive cAtm rather than a silent
// NaN: driving the atmosphere to zero carbon is a model breakdown.
func (p *Params) OceanPH(cAtm float64) (float64, error) {
	if cAtm <= 0 {
		return 0, &DomainError{Quantity: "atmospheric carbon", Value: cAtm}
	}
	return -math.Log10(cAtm/p.PreindustCAtm) + p.PreindustPH, nil
}

// StochasticCAtm returns a perturbed atmospheric carbon mass drawn from
// noise, centered on cAtm with the configured standard deviation.
func (p *Params) StochasticCAtm(cAtm float64, noise NoiseSource) float64 {
	return noise.Normal(cAtm, p.StochasticCAtmStdDev)
}

// ActualTemperature converts an anomaly to degrees Celsius using the
// fixed 14 C preindustrial baseline.
func ActualTemperature(tAnomaly float64) float64 {
	return tAnomaly + 14
}

// DegreesF converts Celsius to Fahrenheit.
func DegreesF(tC float64) float64 {
	return tC*9/5 + 32
}
