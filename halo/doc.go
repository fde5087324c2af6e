// Package halo assembles the full galaxy-clustering pipeline: an
// occupation model over a halo mass function, halo bias, a
// concentration-mass relation and a density profile, combined into the
// 1-halo and 2-halo galaxy correlation terms.
//
// The pipeline is a dependency-tracked lazy graph (package cache): every
// quantity — the mass grid, occupations, bias, Fourier profiles, the
// matter correlation, the correlation terms — is a named node computed on
// first access and cached until a parameter it (transitively) depends on
// changes. Update replaces parameters and invalidates exactly the stale
// subgraph, so switching the exclusion scheme recomputes the 2-halo term
// but never the mass function.
//
//	m, err := halo.New(
//	    halo.WithHOD("zheng05", map[string]float64{"m_min": 12.0}),
//	    halo.WithExclusion("sphere"),
//	)
//	xi, err := m.CorrGal()
//
// Setting a target galaxy density (WithNG) inverts the occupation: the
// pipeline solves for the minimum halo mass reproducing that density and
// rewrites the occupation threshold accordingly. Setting the threshold
// explicitly clears the density target. An infeasible target — denser
// than the occupation can reach even from the lowest supported mass —
// fails with an NGExceededError carrying the achievable maximum.
//
// Configuration can also be loaded from YAML (LoadConfig), which yields
// the same functional options New and Update accept.
package halo
