package cli

// Display unit conversions. The model works in GtC and GtC/year
// throughout; these exist only for output.
const (
	gtcPerGtCO2 = 0.27 // GtC per GtCO2, for comparison with GtCO2-based models
	gtcPerPPM   = 2.12 // GtC per ppm atmospheric CO2
)

func gtcToGtCO2(v float64) float64 { return v / gtcPerGtCO2 }

func gtcToPPM(v float64) float64 { return v / gtcPerPPM }
