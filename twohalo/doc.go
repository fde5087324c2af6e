// Package twohalo computes the 2-halo term of the galaxy correlation
// function: the clustering of galaxy pairs living in distinct halos,
// corrected for halo exclusion (two halos cannot overlap, so at small
// separations part of the pair population must be removed).
//
// For each separation r the kernel
//
//  1. restricts the halo population according to the chosen exclusion
//     scheme (a mass limit or pairwise weight derived from virial radii),
//  2. forms the restricted galaxy power spectrum
//     P_2h(k) = P_m(k) [Int b(m) n_tot(m) dn/dm m u(k,m) dln m / n_g']^2,
//  3. transforms it to real space with the Ogata quadrature, and
//  4. applies the density-ratio correction
//     xi_2h(r) = (n_g'/n_g)^2 [1 + xi'(r)] - 1.
//
// Scale-dependent bias multiplies the restricted spectrum by the
// Tinker et al. 2005 correction built from the matter correlation at r.
//
// Separations are independent, so the per-r jobs run on a bounded worker
// pool (Params.Workers); the kernel exposes no partial results and
// returns only when every separation is done.
//
// Schemes: none, sphere (hard mass cut at virial radius = r/2),
// ellipsoid (pairwise smooth overlap weight, Tinker et al. 2005),
// ng_matched (hard cut whose restricted density matches the ellipsoid
// one) and schneider (hard cut at virial radius = r).
package twohalo
