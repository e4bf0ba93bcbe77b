package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemperatureAnomaly_ZeroAtPreindustrial(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 0.0, p.TemperatureAnomaly(p.PreindustCAtm))
}

func TestTemperatureAnomaly_ThreeDegreesAtDoubling(t *testing.T) {
	p := DefaultParams()
	assert.InDelta(t, 3.0, p.TemperatureAnomaly(2*p.PreindustCAtm), 1e-12)
}

func TestFluxes_BalanceAtPreindustrial(t *testing.T) {
	p := DefaultParams()

	// The ocean exchange is constructed to balance at the reference
	// reservoirs: 0.2*350 == 0.114*615 == 70 to within rounding.
	fOa := p.FluxOceanAtm(p.PreindustCOcean, 0)
	fAo := p.FluxAtmOcean(p.PreindustCAtm)
	assert.InDelta(t, 70.0, fOa, 1e-12)
	assert.InDelta(t, 70.11, fAo, 1e-12)

	// The land exchange is near balance with the gate fully open.
	fAl := p.FluxAtmLand(0, p.PreindustCAtm)
	assert.InDelta(t, 120.011, fAl, 1e-3)
	assert.Equal(t, 120.0, p.FluxLandAtm())
}

func TestFluxOceanAtm_DegassingGrowsWithWarming(t *testing.T) {
	p := DefaultParams()
	cold := p.FluxOceanAtm(p.PreindustCOcean, 0)
	warm := p.FluxOceanAtm(p.PreindustCOcean, 2)
	assert.InDelta(t, cold*(1+0.034*2), warm, 1e-12)
}

func TestFluxAtmLand_SinkSaturatesWithWarming(t *testing.T) {
	p := DefaultParams()
	cool := p.FluxAtmLand(0, p.PreindustCAtm)
	hot := p.FluxAtmLand(10, p.PreindustCAtm)

	assert.Less(t, hot, cool)
	// Far past the transition the fertilization term bottoms out at its
	// floor fraction.
	assert.InDelta(t, p.KAl0+p.KAl1*p.FracFluxAlFloor*p.PreindustCAtm, hot, 1e-9)
}

func TestAlbedoFromAnomaly_PreindustrialBelowTransition(t *testing.T) {
	p := DefaultParams()
	assert.InDelta(t, p.PreindustAlbedo, p.AlbedoFromAnomaly(0), 1e-6)

	// Deep past the transition the albedo settles at 90% of reference.
	assert.InDelta(t, 0.9*p.PreindustAlbedo, p.AlbedoFromAnomaly(20), 1e-9)
}

func TestAlbedoConstrained_ClampsChangeRate(t *testing.T) {
	p := DefaultParams()

	// A huge anomaly wants the albedo at its floor immediately; the
	// constraint only lets it move MaxAlbedoChangeRate per year.
	got := p.AlbedoConstrained(20, p.PreindustAlbedo, 1)
	assert.InDelta(t, p.PreindustAlbedo-p.MaxAlbedoChangeRate, got, 1e-15)

	// Scales with the step size.
	got = p.AlbedoConstrained(20, p.PreindustAlbedo, 0.5)
	assert.InDelta(t, p.PreindustAlbedo-0.5*p.MaxAlbedoChangeRate, got, 1e-15)
}

func TestAlbedoConstrained_SmallChangePassesThrough(t *testing.T) {
	p := DefaultParams()
	want := p.AlbedoFromAnomaly(0)
	got := p.AlbedoConstrained(0, p.PreindustAlbedo, 1)
	assert.Equal(t, want, got)
}

func TestAlbedoConstrained_ZeroPrevSkipsClamp(t *testing.T) {
	p := DefaultParams()
	// No previous albedo means nothing to clamp against.
	assert.Equal(t, p.AlbedoFromAnomaly(20), p.AlbedoConstrained(20, 0, 1))
}

func TestDeltaTFromAlbedo_LowerAlbedoWarms(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 0.0, p.DeltaTFromAlbedo(p.PreindustAlbedo))

	// Albedo down 0.01 with sensitivity -100 means +1 K.
	assert.InDelta(t, 1.0, p.DeltaTFromAlbedo(p.PreindustAlbedo-0.01), 1e-12)
}

func TestOceanPH_PreindustrialReference(t *testing.T) {
	p := DefaultParams()
	ph, err := p.OceanPH(p.PreindustCAtm)
	require.NoError(t, err)
	assert.Equal(t, p.PreindustPH, ph)
}

func TestOceanPH_DropsWithMoreCarbon(t *testing.T) {
	p := DefaultParams()
	ph, err := p.OceanPH(10 * p.PreindustCAtm)
	require.NoError(t, err)
	assert.InDelta(t, p.PreindustPH-1, ph, 1e-12)
}

func TestOceanPH_NonPositiveCarbonIsDomainError(t *testing.T) {
	p := DefaultParams()
	for _, cAtm := range []float64{0, -5} {
		_, err := p.OceanPH(cAtm)
		require.Error(t, err)
		assert.True(t, IsDomainError(err))
	}
}

func TestStochasticCAtm_UsesConfiguredStdDev(t *testing.T) {
	p := DefaultParams()
	noise := recordingNoise{}
	p.StochasticCAtm(615, &noise)
	assert.Equal(t, 615.0, noise.mean)
	assert.Equal(t, p.StochasticCAtmStdDev, noise.stddev)
}

type recordingNoise struct {
	mean, stddev float64
}

func (n *recordingNoise) Normal(mean, stddev float64) float64 {
	n.mean, n.stddev = mean, stddev
	return mean
}

func TestActualTemperature_Baseline14C(t *testing.T) {
	assert.Equal(t, 14.0, ActualTemperature(0))
	assert.Equal(t, 17.0, ActualTemperature(3))
}

func TestDegreesF_FreezingAndBaseline(t *testing.T) {
	assert.Equal(t, 32.0, DegreesF(0))
	assert.InDelta(t, 57.2, DegreesF(14), 1e-12)
}
