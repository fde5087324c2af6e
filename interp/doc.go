// Package interp provides a shape-preserving (monotone) cubic Hermite
// interpolant after Fritsch & Carlson (1980).
//
// The interpolant passes through every knot and never overshoots: on any
// sub-interval where the data are monotone, the curve is monotone too.
// That property is what the halo-model M_min solver relies on when it
// inverts a cumulative number-density integral — a plain cubic spline can
// wiggle between knots and hand back a non-monotone inverse.
//
// Usage:
//
//	s, err := interp.NewMonotone(xs, ys)
//	y := s.Eval(x) // clamped extrapolation outside [xs[0], xs[n-1]]
//
// Errors:
//   - ErrTooFewPoints — fewer than two knots.
//   - ErrNotIncreasing — xs not strictly increasing.
//   - ErrNaNInf — a non-finite knot coordinate.
package interp
