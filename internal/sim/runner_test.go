package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cambio/internal/model"
	"github.com/roach88/cambio/internal/scenario"
	"github.com/roach88/cambio/internal/testutil"
)

func smallConfig() Config {
	return Config{
		Scenario: scenario.Spec{
			StartYear:          1750,
			StopYear:           1800,
			Dtime:              1,
			GrowthRate:         0.025,
			TransitionYear:     2040,
			TransitionDuration: 20,
			LongTermEmissions:  2,
		},
	}
}

func TestRun_SeriesMatchesScenarioGrid(t *testing.T) {
	res, err := Run(context.Background(), smallConfig())
	require.NoError(t, err)

	require.Equal(t, len(res.Scenario.Time), res.Series.Len())
	for i := range res.Scenario.Time {
		assert.Equal(t, res.Scenario.Time[i], res.Series.Year[i])
		assert.Equal(t, res.Scenario.Emissions[i], res.Series.FHa[i])
	}
}

func TestRun_Deterministic(t *testing.T) {
	a, err := Run(context.Background(), smallConfig())
	require.NoError(t, err)
	b, err := Run(context.Background(), smallConfig())
	require.NoError(t, err)

	// Fresh ID per run, bit-identical series.
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Series, b.Series)
}

func TestRun_StartsFromPreindustrialBaseline(t *testing.T) {
	res, err := Run(context.Background(), smallConfig())
	require.NoError(t, err)

	first := res.Series.At(0)
	assert.Equal(t, 1750.0, first.Year)
	// One step in, the reservoirs have barely moved off the reference.
	assert.InDelta(t, 615, first.CAtm, 1)
	assert.InDelta(t, 350, first.COcean, 1)
}

func TestRun_InvalidScenarioIsConfigError(t *testing.T) {
	cfg := smallConfig()
	cfg.Scenario.Dtime = -1

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.False(t, IsDomainError(err))
}

func TestRun_ModelBreakdownIsDomainError(t *testing.T) {
	// An absurd atmosphere-to-ocean rate empties the atmosphere in one
	// step, which the pH diagnostic rejects.
	params := model.DefaultParams()
	params.KAo = 10

	cfg := smallConfig()
	cfg.Params = params

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, IsDomainError(err))
	assert.True(t, model.IsDomainError(err))
}

func TestRun_FractionalTimestepLongRun(t *testing.T) {
	// Tens of thousands of 0.01-year steps; the collected year grid
	// must still match the scenario exactly rather than drifting off by
	// accumulated rounding.
	cfg := smallConfig()
	cfg.Scenario.StopYear = 2200
	cfg.Scenario.Dtime = 0.01

	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 45000, res.Series.Len())
	assert.Equal(t, res.Scenario.Time, res.Series.Year)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, smallConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_StochasticSameSeedSameSeries(t *testing.T) {
	cfg := smallConfig()
	cfg.Feedbacks.StochasticCarbon = true
	cfg.Seed = 42

	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Series, b.Series)

	cfg.Seed = 43
	c, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Series.CAtm, c.Series.CAtm)
}

func TestRun_InjectedZeroNoiseMatchesDeterministic(t *testing.T) {
	cfg := smallConfig()
	cfg.Feedbacks.StochasticCarbon = true
	cfg.Noise = testutil.FixedNoise{}

	stochastic, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	clean, err := Run(context.Background(), smallConfig())
	require.NoError(t, err)

	// A zero-offset source turns every draw into its mean, so the
	// stochastic path reproduces the deterministic trajectory.
	assert.Equal(t, clean.Series, stochastic.Series)
}

func TestRun_StochasticStdDevOverride(t *testing.T) {
	sd := 5.0
	cfg := smallConfig()
	cfg.Feedbacks.StochasticCarbon = true
	cfg.Noise = testutil.FixedNoise{Offset: 1}
	cfg.StochasticStdDev = &sd

	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	clean, err := Run(context.Background(), smallConfig())
	require.NoError(t, err)

	// Each step's carbon is shifted by one overridden stddev before the
	// next step compounds it.
	assert.InDelta(t, 5.0, res.Series.CAtm[0]-clean.Series.CAtm[0], 1e-9)
	assert.Equal(t, 5.0, res.Params.StochasticCAtmStdDev)

	// The caller's parameter set is never mutated by the override.
	assert.Equal(t, 0.1, model.DefaultParams().StochasticCAtmStdDev)
}

func TestRun_StochasticStdDevZeroIsAnOverride(t *testing.T) {
	// An explicit zero means no randomness in the carbon draw; it must
	// not fall back to the 0.1 default.
	sd := 0.0
	cfg := smallConfig()
	cfg.Feedbacks.StochasticCarbon = true
	cfg.Seed = 42
	cfg.StochasticStdDev = &sd

	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Params.StochasticCAtmStdDev)

	clean, err := Run(context.Background(), smallConfig())
	require.NoError(t, err)
	assert.Equal(t, clean.Series.CAtm, res.Series.CAtm)
}

func TestCheckConsistency_DetectsDivergence(t *testing.T) {
	scn := scenario.Scenario{Time: []float64{1750, 1751}, Emissions: []float64{1, 2}}

	ok := &TimeSeries{Year: []float64{1750, 1751}, FHa: []float64{1, 2}}
	assert.NoError(t, checkConsistency(scn, ok))

	short := &TimeSeries{Year: []float64{1750}, FHa: []float64{1}}
	err := checkConsistency(scn, short)
	assert.True(t, IsDivergenceError(err))

	badYear := &TimeSeries{Year: []float64{1750, 1752}, FHa: []float64{1, 2}}
	err = checkConsistency(scn, badYear)
	assert.True(t, IsDivergenceError(err))

	badForcing := &TimeSeries{Year: []float64{1750, 1751}, FHa: []float64{1, 3}}
	err = checkConsistency(scn, badForcing)
	assert.True(t, IsDivergenceError(err))
}
