// Package sim drives the box model over a generated emissions
// scenario: it folds the single-step propagator across the scenario's
// time grid, collects the per-field time series, and enforces the
// self-consistency guard that the reconstructed year and forcing grids
// reproduce the scenario exactly.
package sim
