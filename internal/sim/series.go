package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/roach88/cambio/internal/model"
)

// Fields lists the state fields in canonical column order. Exports, the
// run archive and the golden tests all use this ordering.
var Fields = []string{
	"year", "C_atm", "C_ocean", "albedo", "T_anomaly",
	"pH", "T_C", "T_F", "F_ha", "F_ao", "F_oa", "F_al", "F_la",
}

// TimeSeries collects one value per step for every state field, built
// by the driver appending each propagated state in lockstep with the
// scenario grid. All columns always have equal length.
type TimeSeries struct {
	Year     []float64
	CAtm     []float64
	COcean   []float64
	Albedo   []float64
	TAnomaly []float64
	PH       []float64
	TC       []float64
	TF       []float64
	FHa      []float64
	FAo      []float64
	FOa      []float64
	FAl      []float64
	FLa      []float64
}

func newTimeSeries(capacity int) *TimeSeries {
	return &TimeSeries{
		Year:     make([]float64, 0, capacity),
		CAtm:     make([]float64, 0, capacity),
		COcean:   make([]float64, 0, capacity),
		Albedo:   make([]float64, 0, capacity),
		TAnomaly: make([]float64, 0, capacity),
		PH:       make([]float64, 0, capacity),
		TC:       make([]float64, 0, capacity),
		TF:       make([]float64, 0, capacity),
		FHa:      make([]float64, 0, capacity),
		FAo:      make([]float64, 0, capacity),
		FOa:      make([]float64, 0, capacity),
		FAl:      make([]float64, 0, capacity),
		FLa:      make([]float64, 0, capacity),
	}
}

// Append adds one propagated state to every column.
func (ts *TimeSeries) Append(st model.State) {
	ts.Year = append(ts.Year, st.Year)
	ts.CAtm = append(ts.CAtm, st.CAtm)
	ts.COcean = append(ts.COcean, st.COcean)
	ts.Albedo = append(ts.Albedo, st.Albedo)
	ts.TAnomaly = append(ts.TAnomaly, st.TAnomaly)
	ts.PH = append(ts.PH, st.PH)
	ts.TC = append(ts.TC, st.TC)
	ts.TF = append(ts.TF, st.TF)
	ts.FHa = append(ts.FHa, st.FHa)
	ts.FAo = append(ts.FAo, st.FAo)
	ts.FOa = append(ts.FOa, st.FOa)
	ts.FAl = append(ts.FAl, st.FAl)
	ts.FLa = append(ts.FLa, st.FLa)
}

// Len returns the number of collected steps.
func (ts *TimeSeries) Len() int {
	return len(ts.Year)
}

// Last returns the final state of the series.
func (ts *TimeSeries) Last() (model.State, bool) {
	n := ts.Len()
	if n == 0 {
		return model.State{}, false
	}
	return ts.At(n - 1), true
}

// At reassembles the state at step i.
func (ts *TimeSeries) At(i int) model.State {
	return model.State{
		Year:     ts.Year[i],
		CAtm:     ts.CAtm[i],
		COcean:   ts.COcean[i],
		Albedo:   ts.Albedo[i],
		TAnomaly: ts.TAnomaly[i],
		PH:       ts.PH[i],
		TC:       ts.TC[i],
		TF:       ts.TF[i],
		FHa:      ts.FHa[i],
		FAo:      ts.FAo[i],
		FOa:      ts.FOa[i],
		FAl:      ts.FAl[i],
		FLa:      ts.FLa[i],
	}
}

// Column returns the series for a named field from Fields.
func (ts *TimeSeries) Column(name string) ([]float64, bool) {
	switch name {
	case "year":
		return ts.Year, true
	case "C_atm":
		return ts.CAtm, true
	case "C_ocean":
		return ts.COcean, true
	case "albedo":
		return ts.Albedo, true
	case "T_anomaly":
		return ts.TAnomaly, true
	case "pH":
		return ts.PH, true
	case "T_C":
		return ts.TC, true
	case "T_F":
		return ts.TF, true
	case "F_ha":
		return ts.FHa, true
	case "F_oa":
		return ts.FOa, true
	case "F_ao":
		return ts.FAo, true
	case "F_al":
		return ts.FAl, true
	case "F_la":
		return ts.FLa, true
	default:
		return nil, false
	}
}

// WriteCSV writes the series with a header row in canonical field
// order. Values are formatted with six significant digits, which is
// stable across runs and platforms for golden comparison.
func (ts *TimeSeries) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Fields); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(Fields))
	for i := 0; i < ts.Len(); i++ {
		for j, name := range Fields {
			col, _ := ts.Column(name)
			record[j] = strconv.FormatFloat(col[i], 'g', 6, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
