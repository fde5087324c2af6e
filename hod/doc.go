// Package hod implements halo occupation distribution (HOD) models: the
// statistical rule for how many central and satellite galaxies a halo of
// a given mass hosts.
//
// Models are resolved by name through a registry, so the pipeline can
// select one from configuration:
//
//	m, err := hod.New("zehavi05", map[string]float64{"m_min": 12.0})
//
// Shipped models:
//
//   - zehavi05 — sharp central cutoff: N_cen is a step at M_min and
//     N_sat = (M/M_1)^alpha above it. SharpCut() = true, which selects
//     the closed-form spline inversion in the M_min solver.
//
//   - zheng05 — smooth central cutoff: N_cen = 1/2 [1 + erf((lg M -
//     lg M_min)/sigma)], N_sat = ((M - M_0)/M_1)^alpha. SharpCut() =
//     false, so the solver falls back to numerical minimization, and
//     CentralCondition() = true: a satellite requires a central.
//
// All parameters are given and validated as a map of named floats; mass
// thresholds are log10 masses.
//
// Errors:
//   - ErrUnknownModel — name not in the registry.
//   - ErrUnknownParam — parameter key the model does not recognize.
//   - ErrBadParam     — non-finite or out-of-range parameter value.
package hod
