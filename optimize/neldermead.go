package optimize

import (
	"errors"
	"math"
)

var (
	// ErrMaxIterations indicates the iteration cap was exhausted before the
	// simplex contracted below the requested tolerance. The accompanying
	// Result still carries the best point found.
	ErrMaxIterations = errors.New("optimize: iteration cap exhausted before convergence")

	// ErrBadTolerance indicates a non-positive or non-finite tolerance.
	ErrBadTolerance = errors.New("optimize: tolerance must be positive and finite")

	// ErrBadMaxIter indicates a non-positive iteration cap.
	ErrBadMaxIter = errors.New("optimize: iteration cap must be positive")
)

// Nelder–Mead coefficients (standard values).
const (
	reflectCoeff  = 1.0
	expandCoeff   = 2.0
	contractCoeff = 0.5
	shrinkCoeff   = 0.5

	// initialStep offsets the second simplex vertex from the start point.
	initialStep = 0.25
)

// Result is the outcome of a minimization.
type Result struct {
	// X is the best point found.
	X float64

	// F is the objective value at X.
	F float64

	// Iterations is the number of simplex iterations performed.
	Iterations int
}

// MinimizeScalar minimizes f starting from x0 with a one-dimensional
// Nelder–Mead simplex (a moving interval of two vertices).
//
// Convergence: the simplex has contracted so that both the vertex spread
// and the objective spread are below tol. Determinism: identical inputs
// walk an identical vertex sequence.
//
// Returns the best Result and nil on convergence, or the best Result and
// ErrMaxIterations when maxIter is exhausted first.
func MinimizeScalar(f func(float64) float64, x0, tol float64, maxIter int) (Result, error) {
	if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		return Result{}, ErrBadTolerance
	}
	if maxIter <= 0 {
		return Result{}, ErrBadMaxIter
	}

	// Two-vertex simplex: best and worst, kept ordered.
	xb, xw := x0, x0+initialStep
	fb, fw := f(xb), f(xw)
	if fw < fb {
		xb, xw = xw, xb
		fb, fw = fw, fb
	}

	for it := 1; it <= maxIter; it++ {
		if math.Abs(xw-xb) < tol && math.Abs(fw-fb) < tol {
			return Result{X: xb, F: fb, Iterations: it - 1}, nil
		}

		// Reflect the worst vertex through the best.
		xr := xb + reflectCoeff*(xb-xw)
		fr := f(xr)

		switch {
		case fr < fb:
			// Try expanding further in the same direction.
			xe := xb + expandCoeff*(xb-xw)
			if fe := f(xe); fe < fr {
				xw, fw = xe, fe
			} else {
				xw, fw = xr, fr
			}
		case fr < fw:
			xw, fw = xr, fr
		default:
			// Contract toward the best vertex.
			xc := xb + contractCoeff*(xw-xb)
			if fc := f(xc); fc < fw {
				xw, fw = xc, fc
			} else {
				// Shrink: pull the worst vertex halfway in.
				xw = xb + shrinkCoeff*(xw-xb)
				fw = f(xw)
			}
		}

		if fw < fb {
			xb, xw = xw, xb
			fb, fw = fw, fb
		}
	}

	return Result{X: xb, F: fb, Iterations: maxIter}, ErrMaxIterations
}
