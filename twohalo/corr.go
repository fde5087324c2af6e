package twohalo

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/halomod/quad"
)

// Corr evaluates the 2-halo galaxy correlation on every separation of
// p.R. Separations are processed independently; with p.Workers >= 2 they
// run on a bounded worker pool and the first failure cancels the batch.
//
// Complexity: O(len(R) · len(LnK) · len(M)) for the hard-cut schemes,
// plus O(len(R) · len(M)^2) for the pairwise ellipsoid weight.
func Corr(p Params) ([]float64, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dlnm := math.Ln10 * p.DLog10M

	// Galaxy number integrand in ln m and virial radii, shared read-only
	// across the per-separation jobs.
	nm := len(p.M)
	dens := make([]float64, nm)
	rvir := make([]float64, nm)
	for i := 0; i < nm; i++ {
		dens[i] = p.NTot[i] * p.DnDm[i] * p.M[i]
		rvir[i] = quad.VirialRadius(p.M[i], p.MeanDensity, p.DeltaHalo)
	}

	log.Debug("2-halo term",
		zap.String("exclusion", string(p.Exclusion)),
		zap.Int("separations", len(p.R)),
		zap.Int("workers", p.Workers))

	out := make([]float64, len(p.R))
	if p.Workers < 2 {
		for i := range p.R {
			v, err := corrAt(&p, dens, rvir, dlnm, i)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}

		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(p.Workers)
	for i := range p.R {
		i := i
		g.Go(func() error {
			v, err := corrAt(&p, dens, rvir, dlnm, i)
			if err != nil {
				return err
			}
			out[i] = v // indices are disjoint across jobs

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// corrAt evaluates the 2-halo correlation at the single separation
// p.R[ir]. It allocates its own scratch buffers so concurrent calls never
// share mutable state.
func corrAt(p *Params, dens, rvir []float64, dlnm float64, ir int) (float64, error) {
	r := p.R[ir]

	zeta := 1.0
	if p.ScaleDependentBias {
		// Tinker et al. 2005 eq. B7, from the nonlinear matter correlation.
		xi := p.DMCorr[ir]
		if 1+1.17*xi <= 0 {
			zeta = 0
		} else {
			zeta = math.Pow(1+1.17*xi, 1.49) / math.Pow(1+0.69*xi, 2.09)
		}
	}

	lim, ngRestr, err := restrict(p, dens, rvir, dlnm, r)
	if err != nil {
		return 0, err
	}
	if lim < 2 || !(ngRestr > 0) {
		// Exclusion removed the entire population: no distinct-halo pairs.
		return -1, nil
	}

	integ := make([]float64, lim)
	p2h := make([]float64, len(p.LnK))
	for ik := range p.LnK {
		for im := 0; im < lim; im++ {
			integ[im] = p.Bias[im] * dens[im] * p.U[ik][im]
		}
		v, err := quad.TrapzUniform(integ, dlnm)
		if err != nil {
			return 0, err
		}
		frac := v / ngRestr
		p2h[ik] = p.Power[ik] * zeta * frac * frac
	}

	xi, err := quad.PowerToCorr(p.LnK, p2h, []float64{r})
	if err != nil {
		return 0, err
	}
	if p.Exclusion == ExclusionNone {
		return xi[0], nil
	}

	// Density-ratio correction for the excluded pair count.
	ratio := ngRestr / p.MeanGalDen

	return ratio*ratio*(1+xi[0]) - 1, nil
}

// restrict applies the exclusion scheme at separation r. It returns the
// mass-grid index limit for the bias integral (len(M) when the whole grid
// participates) and the restricted galaxy density n_g'.
func restrict(p *Params, dens, rvir []float64, dlnm, r float64) (int, float64, error) {
	nm := len(p.M)
	switch p.Exclusion {
	case ExclusionNone:
		ng, err := quad.TrapzUniform(dens, dlnm)

		return nm, ng, err

	case ExclusionSphere:
		// A pair at separation r needs two halos of radius <= r/2.
		return hardCut(dens, dlnm,
			massLimit(p.M, quad.ExclusionMass(r/2, p.MeanDensity, p.DeltaHalo)))

	case ExclusionSchneider:
		// Hard cut on the single-halo radius instead of the pair sum.
		return hardCut(dens, dlnm,
			massLimit(p.M, quad.ExclusionMass(r, p.MeanDensity, p.DeltaHalo)))

	case ExclusionEllipsoid:
		ng2, err := pairDensity(dens, rvir, dlnm, r)
		if err != nil {
			return 0, 0, err
		}
		if !(ng2 > 0) {
			return nm, 0, nil
		}

		return nm, math.Sqrt(ng2), nil

	case ExclusionNgMatched:
		// Hard mass cut whose restricted density reproduces the ellipsoid one.
		ng2, err := pairDensity(dens, rvir, dlnm, r)
		if err != nil {
			return 0, 0, err
		}
		if !(ng2 > 0) {
			return 0, 0, nil
		}

		return hardCut(dens, dlnm, matchLimit(dens, dlnm, math.Sqrt(ng2)))
	}

	return 0, 0, fmt.Errorf("%w: %q", ErrUnknownScheme, p.Exclusion)
}

// hardCut integrates the galaxy density over the first lim grid points.
func hardCut(dens []float64, dlnm float64, lim int) (int, float64, error) {
	if lim < 2 {
		return lim, 0, nil
	}
	ng, err := quad.TrapzUniform(dens[:lim], dlnm)

	return lim, ng, err
}

// massLimit counts the leading grid points with mass at most mlim.
func massLimit(m []float64, mlim float64) int {
	lim := 0
	for lim < len(m) && m[lim] <= mlim {
		lim++
	}

	return lim
}

// pairDensity evaluates the Tinker 2005 smoothly restricted pair density:
// the double integral of n(m1) n(m2) P(r / (rv1 + rv2)) over the log-mass
// grid, with P the cubic overlap ramp.
func pairDensity(dens, rvir []float64, dlnm, r float64) (float64, error) {
	nm := len(dens)
	g := make([][]float64, nm)
	for i := range g {
		row := make([]float64, nm)
		for j := range row {
			row[j] = dens[i] * dens[j] * overlap(r/(rvir[i]+rvir[j]))
		}
		g[i] = row
	}

	return quad.DblSimps(g, dlnm, dlnm)
}

// overlap is the smooth pair-survival probability as a function of the
// separation in units of the summed virial radii: 0 below x = 0.8, 1
// above x = 1.09, a 3y^2 - 2y^3 ramp in between.
func overlap(x float64) float64 {
	y := (x - 0.8) / 0.29
	switch {
	case y <= 0:
		return 0
	case y >= 1:
		return 1
	}

	return y * y * (3 - 2*y)
}

// matchLimit returns the smallest index limit whose hard-cut density
// reaches target, or the full grid length when even that falls short.
func matchLimit(dens []float64, dlnm, target float64) int {
	acc := 0.0
	for i := 1; i < len(dens); i++ {
		acc += (dens[i-1] + dens[i]) * dlnm / 2
		if acc >= target {
			return i + 1
		}
	}

	return len(dens)
}
