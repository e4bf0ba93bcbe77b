package model

// Params bundles the physical constants and feedback thresholds consumed
// by the diagnostics and the propagator. A Params value is created once
// per run and treated as read-only thereafter; there is no ambient or
// global parameter state anywhere in the model.
type Params struct {
	// Preindustrial reference values. Carbon masses are in GtC.
	PreindustCAtm   float64
	PreindustCOcean float64
	PreindustAlbedo float64
	PreindustPH     float64

	// Sensitivity of the temperature anomaly to atmospheric carbon,
	// in K per GtC. IPCC: about 3 degrees for doubled CO2.
	ClimateSensitivity float64

	// Carbon flux constants. KLa and KAl0 are GtC/year; KAl1, KOa and
	// KAo are per-year rate coefficients.
	KLa  float64
	KAl0 float64
	KAl1 float64
	KOa  float64
	KAo  float64

	// Ocean degassing flux increase per degree of warming.
	// Pretty well known from physical chemistry.
	OceanDegasFeedback float64

	// Albedo feedback.
	AlbedoSensitivity        float64 // K per unit albedo; negative
	AlbedoTransitionT        float64 // anomaly at which reduction kicks in
	AlbedoTransitionInterval float64
	MaxAlbedoChangeRate      float64 // per year, from measurements
	FracAlbedoFloor          float64 // at most 10% reduction by default

	// Atmosphere->land flux feedback: CO2 fertilization suffers
	// diminishing returns once warming passes the transition anomaly.
	FluxAlTransitionT        float64
	FluxAlTransitionInterval float64
	FracFluxAlFloor          float64

	// Standard deviation of the stochastic atmospheric-carbon
	// perturbation, in GtC. Zero means a perturbed draw returns the
	// mean, but the stochastic branch is gated separately by Feedbacks.
	StochasticCAtmStdDev float64
}

// DefaultParams returns the standard parameter set.
func DefaultParams() *Params {
	const preindustCAtm = 615

	return &Params{
		PreindustCAtm:   preindustCAtm,
		PreindustCOcean: 350,
		PreindustAlbedo: 0.3,
		PreindustPH:     8.2,

		ClimateSensitivity: 3.0 / preindustCAtm,

		KLa:  120,
		KAl0: 113,
		KAl1: 0.0114,
		KOa:  0.2,
		KAo:  0.114,

		OceanDegasFeedback: 0.034,

		AlbedoSensitivity:        -100,
		AlbedoTransitionT:        4,
		AlbedoTransitionInterval: 1,
		MaxAlbedoChangeRate:      0.0006,
		FracAlbedoFloor:          0.9,

		FluxAlTransitionT:        4,
		FluxAlTransitionInterval: 1,
		FracFluxAlFloor:          0.9,

		StochasticCAtmStdDev: 0.1,
	}
}
