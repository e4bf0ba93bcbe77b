package model

// State is one time-slice of the climate. States are values: the
// propagator returns a fresh State every step and never mutates or
// retains its input, so the baseline and every intermediate state stay
// valid for the lifetime of a run.
//
// Units: CAtm and COcean are GtC; all fluxes are GtC/year; TAnomaly is
// kelvin relative to the preindustrial reference; TC and TF are degrees
// Celsius and Fahrenheit.
type State struct {
	Year     float64
	CAtm     float64
	COcean   float64
	Albedo   float64
	TAnomaly float64
	PH       float64
	TC       float64
	TF       float64
	FHa      float64
	FAo      float64
	FOa      float64
	FAl      float64
	FLa      float64
}

// PreindustrialState returns the baseline state for p at the given year.
// Reservoirs and albedo carry the preindustrial reference values; the
// remaining diagnostic fields are placeholders until the first
// propagation fills them in.
func PreindustrialState(p *Params, year float64) State {
	return State{
		Year:   year,
		CAtm:   p.PreindustCAtm,
		COcean: p.PreindustCOcean,
		Albedo: p.PreindustAlbedo,
	}
}
