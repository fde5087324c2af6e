// Package bias implements halo bias models: the multiplicative factor
// relating halo clustering to the underlying matter clustering, as a
// function of peak height nu.
//
// Models resolve by name through a registry:
//
//	b, err := bias.New("tinker10", bias.Config{DeltaC: 1.686, DeltaHalo: 200}, nil)
//	vals := b.Bias(nu)
//
// Shipped models: tinker10 (Tinker et al. 2010 fit, overdensity-aware),
// smt01 (Sheth, Mo & Tormen 2001, with tunable a/b/c coefficients) and
// mo96 (Mo & White 1996 peak-background split).
//
// Errors mirror the hod package: ErrUnknownModel, ErrUnknownParam,
// ErrBadParam, plus ErrBadConfig for a nonsensical Config.
package bias
