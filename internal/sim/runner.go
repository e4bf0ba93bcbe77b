package sim

import (
	"context"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/roach88/cambio/internal/model"
	"github.com/roach88/cambio/internal/scenario"
)

// divergenceTol is the floating-point tolerance of the consistency
// guard. The loop copies grid values through verbatim, so anything
// beyond rounding noise is a bug.
const divergenceTol = 1e-9

// Config is everything needed for a single run.
type Config struct {
	Scenario  scenario.Spec
	Feedbacks model.Feedbacks

	// StochasticStdDev overrides the default standard deviation of the
	// stochastic carbon perturbation when non-nil. Zero is a valid
	// override: the perturbation draws collapse to their mean.
	StochasticStdDev *float64

	// Seed for the injected noise source. Only consulted when the
	// stochastic-carbon feedback is on and Noise is nil.
	Seed int64

	// Params replaces the default parameter set when non-nil.
	Params *model.Params

	// Noise replaces the seeded noise source. Used by tests to make
	// stochastic runs reproducible byte for byte.
	Noise model.NoiseSource
}

// Result is the outcome of one completed, consistency-checked run.
type Result struct {
	ID       string
	Params   *model.Params
	Scenario scenario.Scenario
	Series   *TimeSeries
}

// Run generates the emissions scenario, folds the propagator over its
// time grid, and returns the collected time series after verifying that
// the reconstructed year and forcing grids reproduce the scenario.
//
// The loop is an inherently serial fold: each step's state depends on
// the prior step's output. Only whole repeated runs parallelize (see
// RunEnsemble).
func Run(ctx context.Context, cfg Config) (*Result, error) {
	scn, err := scenario.Generate(cfg.Scenario)
	if err != nil {
		return nil, &RunError{Code: ErrCodeConfigInvalid, Message: "invalid scenario", Step: -1, Err: err}
	}

	params := cfg.Params
	if params == nil {
		params = model.DefaultParams()
	}
	if cfg.StochasticStdDev != nil {
		p := *params
		p.StochasticCAtmStdDev = *cfg.StochasticStdDev
		params = &p
	}

	noise := cfg.Noise
	if noise == nil && cfg.Feedbacks.StochasticCarbon {
		noise = model.NewRandNoise(cfg.Seed)
	}

	id := uuid.NewString()
	slog.Info("run starting",
		"id", id,
		"steps", len(scn.Time),
		"start_year", cfg.Scenario.StartYear,
		"stop_year", cfg.Scenario.StopYear,
		"feedbacks", cfg.Feedbacks,
	)

	// The baseline sits one step before the grid so that the i-th
	// propagated state lands exactly on Time[i].
	st := model.PreindustrialState(params, scn.Time[0]-cfg.Scenario.Dtime)
	series := newTimeSeries(len(scn.Time))

	for i := range scn.Time {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		st, err = model.Propagate(st, params, cfg.Feedbacks, cfg.Scenario.Dtime, scn.Emissions[i], noise)
		if err != nil {
			return nil, &RunError{Code: ErrCodeDomain, Message: err.Error(), Step: i, Err: err}
		}
		// The scenario grid is authoritative for the year. Accumulating
		// prev.Year+dtime drifts off start+i*dtime over tens of
		// thousands of fractional steps and would trip the guard below.
		st.Year = scn.Time[i]
		series.Append(st)

		slog.Debug("step",
			"i", i,
			"year", st.Year,
			"c_atm", st.CAtm,
			"t_anomaly", st.TAnomaly,
		)
	}

	if err := checkConsistency(scn, series); err != nil {
		return nil, err
	}

	final, _ := series.Last()
	slog.Info("run complete",
		"id", id,
		"final_year", final.Year,
		"final_c_atm", final.CAtm,
		"final_t_anomaly", final.TAnomaly,
		"final_ph", final.PH,
	)

	return &Result{ID: id, Params: params, Scenario: scn, Series: series}, nil
}

// checkConsistency verifies that the accumulated year and forcing
// series exactly reproduce the generated scenario's grids. This guards
// against a propagator bug silently dropping or duplicating a step; it
// is not physical validation. A mismatch is a hard failure.
func checkConsistency(scn scenario.Scenario, series *TimeSeries) error {
	if series.Len() != len(scn.Time) {
		return &RunError{
			Code:    ErrCodeSeriesDiverged,
			Message: "step count diverged from scenario grid",
			Step:    -1,
		}
	}
	for i := range scn.Time {
		if math.Abs(series.Year[i]-scn.Time[i]) > divergenceTol {
			return &RunError{
				Code:    ErrCodeSeriesDiverged,
				Message: "year grid diverged from scenario",
				Step:    i,
			}
		}
		if math.Abs(series.FHa[i]-scn.Emissions[i]) > divergenceTol {
			return &RunError{
				Code:    ErrCodeSeriesDiverged,
				Message: "forcing series diverged from scenario",
				Step:    i,
			}
		}
	}
	return nil
}
