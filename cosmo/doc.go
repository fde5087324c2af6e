// Package cosmo defines the boundary to the background-cosmology and
// halo-mass-function engine, and ships an analytic reference provider.
//
// The halo-model pipeline never computes cosmology itself: it consumes a
// Provider for the mass function dn/dm, the peak height nu(m), linear and
// nonlinear matter power spectra, the growth factor and a handful of
// scalar constants. Any real engine (CAMB-backed, emulator-backed, ...)
// plugs in behind the same interface.
//
// The Analytic provider implements the contract in closed form: a pure
// power-law linear spectrum normalized to sigma8, a Press–Schechter mass
// function, Einstein–de-Sitter growth and a one-parameter small-scale
// enhancement standing in for a nonlinear fit. It is exact, fast and
// self-consistent, which is what the solver and pipeline tests need.
//
// Conventions: masses in Msun/h, lengths in Mpc/h, densities in
// (Msun/h)/(Mpc/h)^3, wavenumbers in h/Mpc.
package cosmo
