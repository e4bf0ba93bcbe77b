package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cambio/internal/model"
)

func TestTimeSeries_AppendRoundtrip(t *testing.T) {
	ts := newTimeSeries(2)
	_, ok := ts.Last()
	assert.False(t, ok)

	first := model.State{Year: 1750, CAtm: 615, COcean: 350, Albedo: 0.3, PH: 8.2, TC: 14, TF: 57.2, FLa: 120}
	second := model.State{Year: 1751, CAtm: 620, COcean: 351, Albedo: 0.3, PH: 8.19, TC: 14.1, TF: 57.38, FHa: 5, FLa: 120}
	ts.Append(first)
	ts.Append(second)

	assert.Equal(t, 2, ts.Len())
	assert.Equal(t, first, ts.At(0))
	assert.Equal(t, second, ts.At(1))

	last, ok := ts.Last()
	require.True(t, ok)
	assert.Equal(t, second, last)
}

func TestTimeSeries_ColumnCoversAllFields(t *testing.T) {
	ts := newTimeSeries(1)
	ts.Append(model.State{Year: 1750})

	for _, name := range Fields {
		col, ok := ts.Column(name)
		assert.True(t, ok, "field %s", name)
		assert.Len(t, col, 1, "field %s", name)
	}

	_, ok := ts.Column("no_such_field")
	assert.False(t, ok)
}

func TestTimeSeries_WriteCSV(t *testing.T) {
	ts := newTimeSeries(1)
	ts.Append(model.State{
		Year: 1750, CAtm: 615, COcean: 350, Albedo: 0.3,
		PH: 8.2, TC: 14, TF: 57.2, FAo: 70.11, FOa: 70, FAl: 120.011, FLa: 120,
	})

	var sb strings.Builder
	require.NoError(t, ts.WriteCSV(&sb))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(Fields, ","), lines[0])
	assert.Equal(t, "1750,615,350,0.3,0,8.2,14,57.2,0,70.11,70,120.011,120", lines[1])
}
