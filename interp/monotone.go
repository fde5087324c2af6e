package interp

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrTooFewPoints indicates fewer than two knots were supplied.
	ErrTooFewPoints = errors.New("interp: need at least two points")

	// ErrNotIncreasing indicates xs is not strictly increasing.
	ErrNotIncreasing = errors.New("interp: x values must be strictly increasing")

	// ErrNaNInf indicates a NaN or ±Inf knot coordinate.
	ErrNaNInf = errors.New("interp: NaN or Inf in input")
)

// Spline is a monotone piecewise-cubic Hermite interpolant.
// Construct with NewMonotone; the zero value is not usable.
type Spline struct {
	xs []float64
	ys []float64
	ds []float64 // knot derivatives after monotonicity limiting
}

// NewMonotone builds a Fritsch–Carlson monotone cubic through (xs, ys).
// The inputs are copied; the caller may reuse its slices.
//
// Algorithm:
//  1. Secant slopes Δi = (y[i+1]-y[i])/(x[i+1]-x[i]).
//  2. Initial knot derivatives d[i] = mean of adjacent secants
//     (one-sided at the ends).
//  3. Limiting: wherever Δi == 0 force d[i]=d[i+1]=0; otherwise clamp
//     the vector (d[i]/Δi, d[i+1]/Δi) into the disc of radius 3, which
//     is sufficient for monotonicity on the interval.
//
// Complexity: O(n) time, O(n) space.
func NewMonotone(xs, ys []float64) (*Spline, error) {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return nil, ErrTooFewPoints
	}
	for i := 0; i < n; i++ {
		if isNonFinite(xs[i]) || isNonFinite(ys[i]) {
			return nil, ErrNaNInf
		}
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, ErrNotIncreasing
		}
	}

	x := append([]float64(nil), xs...)
	y := append([]float64(nil), ys...)

	// Secant slopes.
	delta := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		delta[i] = (y[i+1] - y[i]) / (x[i+1] - x[i])
	}

	// Initial derivatives.
	d := make([]float64, n)
	d[0] = delta[0]
	d[n-1] = delta[n-2]
	for i := 1; i < n-1; i++ {
		if delta[i-1]*delta[i] <= 0 {
			d[i] = 0 // local extremum: flat tangent
		} else {
			d[i] = (delta[i-1] + delta[i]) / 2
		}
	}

	// Fritsch–Carlson limiting pass.
	for i := 0; i < n-1; i++ {
		if delta[i] == 0 {
			d[i] = 0
			d[i+1] = 0
			continue
		}
		a := d[i] / delta[i]
		b := d[i+1] / delta[i]
		s := a*a + b*b
		if s > 9 {
			t := 3 / math.Sqrt(s)
			d[i] = t * a * delta[i]
			d[i+1] = t * b * delta[i]
		}
	}

	return &Spline{xs: x, ys: y, ds: d}, nil
}

// Eval returns the interpolated value at x. Outside the knot range the
// interpolant extrapolates linearly with the boundary tangent.
//
// Complexity: O(log n) per call.
func (s *Spline) Eval(x float64) float64 {
	n := len(s.xs)
	if x <= s.xs[0] {
		return s.ys[0] + s.ds[0]*(x-s.xs[0])
	}
	if x >= s.xs[n-1] {
		return s.ys[n-1] + s.ds[n-1]*(x-s.xs[n-1])
	}

	// Locate the interval containing x.
	i := sort.SearchFloat64s(s.xs, x) - 1

	h := s.xs[i+1] - s.xs[i]
	t := (x - s.xs[i]) / h

	// Cubic Hermite basis.
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*s.ys[i] + h10*h*s.ds[i] + h01*s.ys[i+1] + h11*h*s.ds[i+1]
}

// EvalAll evaluates the interpolant at every point of xq.
func (s *Spline) EvalAll(xq []float64) []float64 {
	out := make([]float64, len(xq))
	for i, x := range xq {
		out[i] = s.Eval(x)
	}

	return out
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
