package quad

import (
	"errors"
	"math"
)

var (
	// ErrTooFewPoints indicates the integrand has too few samples.
	ErrTooFewPoints = errors.New("quad: too few integrand samples")

	// ErrBadSpacing indicates a non-positive or non-finite grid spacing.
	ErrBadSpacing = errors.New("quad: grid spacing must be positive and finite")
)

// TrapzUniform integrates f sampled on a uniform grid with spacing dx
// using the composite trapezoidal rule.
//
// Complexity: O(n).
func TrapzUniform(f []float64, dx float64) (float64, error) {
	if len(f) < 2 {
		return 0, ErrTooFewPoints
	}
	if err := checkSpacing(dx); err != nil {
		return 0, err
	}

	sum := (f[0] + f[len(f)-1]) / 2
	for i := 1; i < len(f)-1; i++ {
		sum += f[i]
	}

	return sum * dx, nil
}

// SimpsUniform integrates f on a uniform grid with spacing dx using the
// composite Simpson rule. An even sample count leaves one trailing
// interval that is closed with the trapezoidal rule.
//
// Complexity: O(n).
func SimpsUniform(f []float64, dx float64) (float64, error) {
	if len(f) < 3 {
		return 0, ErrTooFewPoints
	}
	if err := checkSpacing(dx); err != nil {
		return 0, err
	}

	n := len(f)
	m := n
	if n%2 == 0 {
		m = n - 1 // odd sample count for Simpson; last interval via trapezoid
	}

	sum := f[0] + f[m-1]
	for i := 1; i < m-1; i++ {
		if i%2 == 1 {
			sum += 4 * f[i]
		} else {
			sum += 2 * f[i]
		}
	}
	total := sum * dx / 3

	if m != n {
		total += (f[n-2] + f[n-1]) * dx / 2
	}

	return total, nil
}

// CumTrapzRev returns the cumulative trapezoidal integral of f taken in
// order of decreasing index: out[j] is the integral over the top j+1
// intervals of the grid. len(out) == len(f)-1.
//
// This is the "cumulative density above threshold" shape the M_min solver
// needs: out is non-decreasing in j whenever f is non-negative.
//
// Complexity: O(n).
func CumTrapzRev(f []float64, dx float64) ([]float64, error) {
	if len(f) < 2 {
		return nil, ErrTooFewPoints
	}
	if err := checkSpacing(dx); err != nil {
		return nil, err
	}

	n := len(f)
	out := make([]float64, n-1)
	acc := 0.0
	for j := 0; j < n-1; j++ {
		acc += (f[n-1-j] + f[n-2-j]) * dx / 2
		out[j] = acc
	}

	return out, nil
}

// DblSimps integrates a function sampled on a uniform 2-D grid, f[i][j],
// with spacings dx (first index) and dy (second index), by applying the
// composite Simpson rule along each axis in turn.
//
// Complexity: O(n·m).
func DblSimps(f [][]float64, dx, dy float64) (float64, error) {
	if len(f) < 3 {
		return 0, ErrTooFewPoints
	}

	inner := make([]float64, len(f))
	for i, row := range f {
		v, err := SimpsUniform(row, dy)
		if err != nil {
			return 0, err
		}
		inner[i] = v
	}

	return SimpsUniform(inner, dx)
}

// checkSpacing validates a grid spacing.
func checkSpacing(dx float64) error {
	if dx <= 0 || math.IsNaN(dx) || math.IsInf(dx, 0) {
		return ErrBadSpacing
	}

	return nil
}
