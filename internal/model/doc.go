// Package model implements the carbon-cycle box model: the parameter
// set, the per-quantity diagnostics, the sigmoid feedback gates, and
// the single-step state propagator.
//
// The equations of motion are
//
//	F_la = k_la
//	F_al = k_al0 + k_al1 * sigma_floor(T_anomaly) * C_atm
//	F_oa = k_oa * (1 + DC * T_anomaly) * C_ocean
//	F_ao = k_ao * C_atm
//	F_ha = eps(t)      (external anthropogenic forcing)
//
// integrated with a fixed-timestep explicit Euler update of the two
// reservoirs. Everything in this package is pure and single-threaded;
// the only nondeterminism is the injected NoiseSource used by the
// stochastic-carbon branch.
package model
