package profile

import (
	"math"

	"github.com/katalvlaran/halomod/quad"
)

func init() {
	Register("nfw", NewNFW)
}

// nfw is the Navarro–Frenk–White profile, rho ~ 1/(x (1+x)^2) with
// x = r/r_s, truncated at the virial radius. Its Fourier transform is
// analytic in terms of sine/cosine integrals; no closed-form
// self-convolution exists, so HasLam is false and the pipeline reaches
// the 1-halo correlation through the Ogata transform instead.
type nfw struct {
	cfg Config
}

// NewNFW builds the profile.
func NewNFW(cfg Config) (Profile, error) {
	return &nfw{cfg: cfg}, nil
}

// U implements Profile with the analytic NFW transform: for mu = k r_s,
//
//	u(k) = [cos(mu) (Ci((1+c)mu) - Ci(mu)) + sin(mu) (Si((1+c)mu) - Si(mu))
//	        - sin(c mu)/((1+c) mu)] / (ln(1+c) - c/(1+c))
func (p *nfw) U(k, m []float64) [][]float64 {
	cs := p.cfg.CM.CM(m)
	out := make([][]float64, len(k))
	for ik := range out {
		out[ik] = make([]float64, len(m))
	}

	for im, mm := range m {
		c := cs[im]
		rv := quad.VirialRadius(mm, p.cfg.MeanDens, p.cfg.DeltaHalo)
		rs := rv / c
		norm := math.Log(1+c) - c/(1+c)

		for ik, kk := range k {
			mu := kk * rs
			siC, ciC := sici((1 + c) * mu)
			si1, ci1 := sici(mu)
			u := (math.Cos(mu)*(ciC-ci1) + math.Sin(mu)*(siC-si1) -
				math.Sin(c*mu)/((1+c)*mu)) / norm
			out[ik][im] = u
		}
	}

	return out
}

// Rho implements Profile: density per unit halo mass, zero beyond the
// virial radius.
func (p *nfw) Rho(r, m []float64) [][]float64 {
	cs := p.cfg.CM.CM(m)
	out := make([][]float64, len(r))
	for ir := range out {
		out[ir] = make([]float64, len(m))
	}

	for im, mm := range m {
		c := cs[im]
		rv := quad.VirialRadius(mm, p.cfg.MeanDens, p.cfg.DeltaHalo)
		rs := rv / c
		norm := 4 * math.Pi * rs * rs * rs * (math.Log(1+c) - c/(1+c))

		for ir, rr := range r {
			if rr > rv {
				continue
			}
			x := rr / rs
			out[ir][im] = 1 / (norm * x * (1 + x) * (1 + x))
		}
	}

	return out
}

// Lam implements Profile: NFW has no closed-form self-convolution.
func (p *nfw) Lam(_, _ []float64) ([][]float64, error) {
	return nil, ErrNoLam
}

// HasLam implements Profile.
func (p *nfw) HasLam() bool { return false }
