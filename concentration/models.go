package concentration

import (
	"fmt"
	"math"

	"github.com/katalvlaran/halomod/interp"
)

// Duffy08 defaults (full sample, mean-density halos).
const (
	defaultDuffyAmp   = 5.71
	defaultDuffySlope = -0.084
	defaultDuffyZExp  = -0.47
	defaultDuffyPivot = 2e12 // Msun/h
)

// Bullock01 (simplified) defaults.
const (
	defaultBullockAmp   = 9.0
	defaultBullockSlope = -0.13
)

func init() {
	Register("duffy08", NewDuffy08)
	Register("bullock01", NewBullock01)
}

// duffy08 is the power-law fit of Duffy et al. 2008:
// c(M, z) = amp (M/pivot)^slope (1+z)^zexp.
type duffy08 struct {
	amp, slope, zexp, pivot float64
	z                       float64
}

// NewDuffy08 builds the relation from params {amp, slope, z_exp, pivot}.
func NewDuffy08(cfg Config, params map[string]float64) (Relation, error) {
	p, err := applyParams(map[string]float64{
		"amp":   defaultDuffyAmp,
		"slope": defaultDuffySlope,
		"z_exp": defaultDuffyZExp,
		"pivot": defaultDuffyPivot,
	}, params)
	if err != nil {
		return nil, err
	}
	if p["amp"] <= 0 || p["pivot"] <= 0 {
		return nil, fmt.Errorf("%w: amp and pivot must be positive", ErrBadParam)
	}

	return &duffy08{
		amp:   p["amp"],
		slope: p["slope"],
		zexp:  p["z_exp"],
		pivot: p["pivot"],
		z:     cfg.Redshift,
	}, nil
}

// CM implements Relation.
func (d *duffy08) CM(m []float64) []float64 {
	zfac := math.Pow(1+d.z, d.zexp)
	out := make([]float64, len(m))
	for i, mm := range m {
		out[i] = d.amp * math.Pow(mm/d.pivot, d.slope) * zfac
	}

	return out
}

// bullock01 is the simplified Bullock et al. 2001 relation:
// c(M, z) = amp/(1+z) (M/M*)^slope, with M* the nonlinear mass where
// nu(M*) = 1, located on the config grids.
type bullock01 struct {
	amp, slope float64
	z          float64
	mstar      float64
}

// NewBullock01 builds the relation from params {amp, slope}. The config
// must carry an aligned peak-height grid so M* can be located.
func NewBullock01(cfg Config, params map[string]float64) (Relation, error) {
	p, err := applyParams(map[string]float64{
		"amp":   defaultBullockAmp,
		"slope": defaultBullockSlope,
	}, params)
	if err != nil {
		return nil, err
	}
	if p["amp"] <= 0 {
		return nil, fmt.Errorf("%w: amp must be positive", ErrBadParam)
	}
	if len(cfg.Nu) != len(cfg.M) || len(cfg.Nu) == 0 {
		return nil, fmt.Errorf("%w: bullock01 needs the peak-height grid", ErrBadConfig)
	}

	mstar, err := nonlinearMass(cfg.Nu, cfg.M)
	if err != nil {
		return nil, err
	}

	return &bullock01{
		amp:   p["amp"],
		slope: p["slope"],
		z:     cfg.Redshift,
		mstar: mstar,
	}, nil
}

// CM implements Relation.
func (b *bullock01) CM(m []float64) []float64 {
	out := make([]float64, len(m))
	for i, mm := range m {
		out[i] = b.amp / (1 + b.z) * math.Pow(mm/b.mstar, b.slope)
	}

	return out
}

// nonlinearMass interpolates log M against nu and evaluates at nu = 1.
// When the grid sits entirely above nu = 1 (high-mass grids), the
// interpolant's boundary-tangent extrapolation supplies the answer.
func nonlinearMass(nu, m []float64) (float64, error) {
	lgm := make([]float64, len(m))
	for i, mm := range m {
		lgm[i] = math.Log10(mm)
	}

	s, err := interp.NewMonotone(nu, lgm)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	return math.Pow(10, s.Eval(1)), nil
}
