// Package halomod computes galaxy clustering statistics from an analytic
// halo model of large-scale structure: halos are populated with galaxies
// through an occupation model, and pairwise clustering splits into a
// 1-halo term (pairs inside one halo) and a 2-halo term (pairs in
// distinct halos, corrected for halo exclusion).
//
// What lives where:
//
//	cosmo/         — mass-function & cosmology provider boundary + analytic reference
//	hod/           — halo occupation models (Zehavi05, Zheng05) + registry
//	bias/          — halo bias models (Tinker10, SMT01, Mo96) + registry
//	concentration/ — concentration–mass relations (Duffy08, Bullock01) + registry
//	profile/       — halo density profiles (NFW, TopHat) with Fourier transforms
//	quad/          — log-mass integration, Ogata power→correlation transform, masks
//	interp/        — monotone cubic interpolation
//	optimize/      — derivative-free Nelder–Mead minimization
//	twohalo/       — 2-halo term with halo-exclusion schemes, worker-parallel
//	cache/         — dependency-tracked lazy evaluation store
//	halo/          — the pipeline: parameters, derived quantities, M_min solver
//
// The central type is halo.Model: configure it with functional options (or
// a YAML file), then read derived quantities; each is computed lazily from
// its declared dependencies and cached until a parameter it depends on
// changes.
//
//	m, err := halo.New(halo.WithExclusion("sphere"))
//	xi, err := m.CorrGal()
//
//	go get github.com/katalvlaran/halomod/halo
package halomod
