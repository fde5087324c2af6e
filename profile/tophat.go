package profile

import (
	"math"

	"github.com/katalvlaran/halomod/quad"
)

func init() {
	Register("tophat", NewTopHat)
}

// tophat is the uniform-sphere profile: constant density inside the
// virial radius. It is the one shipped profile with an exact
// self-convolution — the overlap volume of two spheres — which makes it
// the validation reference for the Fourier-space 1-halo path.
type tophat struct {
	cfg Config
}

// NewTopHat builds the profile.
func NewTopHat(cfg Config) (Profile, error) {
	return &tophat{cfg: cfg}, nil
}

// U implements Profile: the top-hat window 3 (sin x - x cos x)/x^3 at
// x = k r_vir.
func (p *tophat) U(k, m []float64) [][]float64 {
	out := make([][]float64, len(k))
	for ik := range out {
		out[ik] = make([]float64, len(m))
	}

	for im, mm := range m {
		rv := quad.VirialRadius(mm, p.cfg.MeanDens, p.cfg.DeltaHalo)
		for ik, kk := range k {
			out[ik][im] = topHatWindow(kk * rv)
		}
	}

	return out
}

// Rho implements Profile: 3/(4 pi r_vir^3) per unit mass inside the
// virial radius.
func (p *tophat) Rho(r, m []float64) [][]float64 {
	out := make([][]float64, len(r))
	for ir := range out {
		out[ir] = make([]float64, len(m))
	}

	for im, mm := range m {
		rv := quad.VirialRadius(mm, p.cfg.MeanDens, p.cfg.DeltaHalo)
		dens := 3 / (4 * math.Pi * rv * rv * rv)
		for ir, rr := range r {
			if rr <= rv {
				out[ir][im] = dens
			}
		}
	}

	return out
}

// Lam implements Profile with the exact sphere-overlap self-convolution:
// two unit-mass spheres of radius r_vir at separation r overlap in the
// lens volume (pi/12)(4 r_vir + r)(2 r_vir - r)^2, so
//
//	lam(r) = rho_n^2 * V_overlap(r),  rho_n = 3/(4 pi r_vir^3)
//
// vanishing beyond r = 2 r_vir.
func (p *tophat) Lam(r, m []float64) ([][]float64, error) {
	out := make([][]float64, len(r))
	for ir := range out {
		out[ir] = make([]float64, len(m))
	}

	for im, mm := range m {
		rv := quad.VirialRadius(mm, p.cfg.MeanDens, p.cfg.DeltaHalo)
		dens := 3 / (4 * math.Pi * rv * rv * rv)
		for ir, rr := range r {
			if rr >= 2*rv {
				continue
			}
			overlap := math.Pi / 12 * (4*rv + rr) * (2*rv - rr) * (2*rv - rr)
			out[ir][im] = dens * dens * overlap
		}
	}

	return out, nil
}

// HasLam implements Profile.
func (p *tophat) HasLam() bool { return true }

// topHatWindow is the Fourier transform of a uniform unit-mass sphere.
func topHatWindow(x float64) float64 {
	if x < 1e-6 {
		return 1 - x*x/10 // series limit; avoids 0/0 at x -> 0
	}

	return 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
}
