// Package quad provides the integral and transform utilities of the halo
// model: uniform-grid trapezoid and Simpson rules (the workhorses of every
// log-mass integral in the pipeline), a reverse cumulative trapezoid used
// by the M_min solver, a double Simpson rule for pairwise halo-exclusion
// integrals, the Ogata oscillatory-quadrature transform from a power
// spectrum to a real-space correlation function, and the virial-radius /
// exclusion-mass helpers behind the 1-halo and 2-halo masks.
//
// All rules assume a uniform grid spacing dx supplied by the caller; for
// log-mass integrals that spacing is ln(10)·dlog10m.
//
// Errors:
//   - ErrTooFewPoints — an integrand with fewer samples than the rule needs.
//   - ErrBadSpacing   — non-positive or non-finite grid spacing.
package quad
