package halo

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/halomod/cosmo"
	"github.com/katalvlaran/halomod/hod"
	"github.com/katalvlaran/halomod/interp"
	"github.com/katalvlaran/halomod/optimize"
	"github.com/katalvlaran/halomod/quad"
)

// Solver grid: finer than the pipeline grid and floored at 10^8 so the
// feasible threshold range is fully covered.
const (
	solverFloorLogMass = 8.0
	solverDLog10M      = 0.01
	solverGuess        = 12.0
	solverTol          = 1e-3
	solverMaxIter      = 200
)

// FindMMin returns the log10 halo mass threshold at which the current
// occupation model reproduces the target mean galaxy density ng. The
// solve runs on its own mass grid and never touches pipeline state.
//
// Sharp-cut occupations invert the cumulative density directly; smooth
// ones minimize the density mismatch over the threshold. An ng above the
// occupation's reach fails with an NGExceededError.
func (m *Model) FindMMin(ng float64) (float64, error) {
	h, err := hod.New(m.cfg.hodModel, m.cfg.hodParams)
	if err != nil {
		return 0, err
	}

	if h.SharpCut() {
		return m.findSharp(h, m.cfg.provider, ng)
	}

	return m.findSmooth(h, m.cfg.provider, ng)
}

// findSharp inverts the cumulative galaxy density. With a step-function
// central occupation, the density at threshold x is exactly the integral
// of the unthresholded integrand from x upward, so the reverse cumulative
// integral is the whole solution curve at once.
func (m *Model) findSharp(h hod.Model, prov cosmo.Provider, ng float64) (float64, error) {
	grid := massGrid(solverFloorLogMass, logMassMax, solverDLog10M)
	dndm := prov.DnDm(grid)
	ntot := h.WithMinLogMass(solverFloorLogMass).NTot(grid)

	integ := make([]float64, len(grid))
	for i := range integ {
		integ[i] = dndm[i] * ntot[i] * grid[i]
	}
	cum, err := quad.CumTrapzRev(integ, math.Ln10*solverDLog10M)
	if err != nil {
		return 0, err
	}

	maxNG := cum[len(cum)-1]
	if ng > maxNG {
		return 0, &NGExceededError{Target: ng, Max: maxNG}
	}

	ind := 0
	for ind < len(cum) && cum[ind] < ng {
		ind++
	}
	lo, hi := ind-4, ind+4
	if lo < 0 {
		lo = 0
	}
	if hi > len(cum) {
		hi = len(cum)
	}

	// Interpolate log threshold against log cumulative density in a window
	// around the bracketing sample; cum[j] is the density with lower mass
	// limit grid[n-2-j].
	n := len(grid)
	xs := make([]float64, hi-lo)
	ys := make([]float64, hi-lo)
	for j := lo; j < hi; j++ {
		xs[j-lo] = math.Log10(cum[j])
		ys[j-lo] = math.Log10(grid[n-2-j])
	}
	spl, err := interp.NewMonotone(xs, ys)
	if err != nil {
		return 0, err
	}

	return spl.Eval(math.Log10(ng)), nil
}

// findSmooth minimizes the density mismatch over the threshold. The mass
// grid and mass function are fixed; only the occupation is re-evaluated
// per candidate.
func (m *Model) findSmooth(h hod.Model, prov cosmo.Provider, ng float64) (float64, error) {
	grid := massGrid(solverFloorLogMass, logMassMax, solverDLog10M)
	dndm := prov.DnDm(grid)
	dlnm := math.Ln10 * solverDLog10M

	density := func(lg float64) (float64, error) {
		ntot := h.WithMinLogMass(lg).NTot(grid)
		integ := make([]float64, len(grid))
		for i := range integ {
			integ[i] = dndm[i] * ntot[i] * grid[i]
		}

		return quad.SimpsUniform(integ, dlnm)
	}

	maxNG, err := density(solverFloorLogMass)
	if err != nil {
		return 0, err
	}
	if ng > maxNG {
		return 0, &NGExceededError{Target: ng, Max: maxNG}
	}

	res, err := optimize.MinimizeScalar(func(lg float64) float64 {
		v, derr := density(lg)
		if derr != nil {
			return math.Inf(1)
		}

		return math.Abs(v - ng)
	}, solverGuess, solverTol, solverMaxIter)
	if err != nil {
		if !errors.Is(err, optimize.ErrMaxIterations) {
			return 0, err
		}
		// The cap still yields the best threshold seen; use it.
		m.log.Warn("threshold solve hit the iteration cap",
			zap.Float64("ng", ng), zap.Float64("best", res.X))
	}

	return res.X, nil
}
