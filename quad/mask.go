package quad

import "math"

// VirialRadius returns the radius of a halo of mass m defined by the
// overdensity threshold deltaHalo relative to the mean density meanDens:
//
//	m = (4 pi / 3) r^3 meanDens deltaHalo
//
// Units follow the inputs (mass over density gives volume).
func VirialRadius(m, meanDens, deltaHalo float64) float64 {
	return math.Cbrt(3 * m / (4 * math.Pi * meanDens * deltaHalo))
}

// ExclusionMass is the inverse of VirialRadius: the mass whose virial
// radius equals r. The 1-halo integrands zero out halos below
// ExclusionMass(r/2): a halo whose diameter is smaller than the pair
// separation cannot contain the pair.
func ExclusionMass(r, meanDens, deltaHalo float64) float64 {
	return 4 * math.Pi * r * r * r * meanDens * deltaHalo / 3
}
