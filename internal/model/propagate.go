package model

import "fmt"

// Feedbacks enumerates the optional branches of the state transition.
// The zero value disables everything: fluxes behave as if the climate
// were at baseline temperature, albedo responds instantly, and the run
// is fully deterministic.
type Feedbacks struct {
	// Temperature lets the current anomaly modify the ocean degassing
	// flux and the terrestrial sink. Off, both are diagnosed with a
	// zero anomaly.
	Temperature bool

	// Albedo adds the albedo-driven temperature delta to the anomaly
	// after the albedo has been diagnosed. The coupling is one-step
	// lagged: the albedo is computed from the pre-feedback anomaly.
	Albedo bool

	// RateLimitedAlbedo clamps the per-step albedo change to
	// MaxAlbedoChangeRate*dtime.
	RateLimitedAlbedo bool

	// StochasticCarbon replaces the updated atmospheric carbon with a
	// normal draw centered on it. Requires a NoiseSource.
	StochasticCarbon bool
}

// Propagate advances prev by one step of dtime years under the external
// anthropogenic flux fHa (GtC/year). Each call is a pure transition:
// prev is read but never mutated, and the returned State carries every
// diagnostic field for the new year.
//
// noise may be nil unless fb.StochasticCarbon is set.
//
// The transition order is fixed: anomaly, temperature-gated fluxes,
// ungated fluxes, reservoir update, albedo, albedo feedback, stochastic
// perturbation, then the remaining diagnostics. The atmosphere-ocean
// exchange terms enter both reservoir updates with opposite sign, so
// land and human fluxes are the only net sources to the combined
// atmosphere+ocean system.
func Propagate(prev State, p *Params, fb Feedbacks, dtime, fHa float64, noise NoiseSource) (State, error) {
	if fb.StochasticCarbon && noise == nil {
		return State{}, fmt.Errorf("stochastic carbon feedback enabled without a noise source")
	}

	cAtm := prev.CAtm
	cOcean := prev.COcean

	tAnomaly := p.TemperatureAnomaly(cAtm)

	var fOa, fAl float64
	if fb.Temperature {
		fOa = p.FluxOceanAtm(cOcean, tAnomaly)
		fAl = p.FluxAtmLand(tAnomaly, cAtm)
	} else {
		fOa = p.FluxOceanAtm(cOcean, 0)
		fAl = p.FluxAtmLand(0, cAtm)
	}
	fAo := p.FluxAtmOcean(cAtm)
	fLa := p.FluxLandAtm()

	cAtm += (fLa + fOa - fAo - fAl + fHa) * dtime
	cOcean += (fAo - fOa) * dtime

	var albedo float64
	if fb.RateLimitedAlbedo {
		albedo = p.AlbedoConstrained(tAnomaly, prev.Albedo, dtime)
	} else {
		albedo = p.AlbedoFromAnomaly(tAnomaly)
	}

	// One-step-lagged coupling: the albedo above was diagnosed from the
	// pre-feedback anomaly, then feeds back into the anomaly here.
	if fb.Albedo {
		tAnomaly += p.DeltaTFromAlbedo(albedo)
	}

	if fb.StochasticCarbon {
		cAtm = p.StochasticCAtm(cAtm, noise)
	}

	ph, err := p.OceanPH(cAtm)
	if err != nil {
		return State{}, fmt.Errorf("propagating from year %g: %w", prev.Year, err)
	}
	tC := ActualTemperature(tAnomaly)

	return State{
		Year:     prev.Year + dtime,
		CAtm:     cAtm,
		COcean:   cOcean,
		Albedo:   albedo,
		TAnomaly: tAnomaly,
		PH:       ph,
		TC:       tC,
		TF:       DegreesF(tC),
		FHa:      fHa,
		FAo:      fAo,
		FOa:      fOa,
		FAl:      fAl,
		FLa:      fLa,
	}, nil
}
