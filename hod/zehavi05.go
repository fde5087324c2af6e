package hod

import (
	"fmt"
	"math"
)

// Zehavi05 defaults (log10 masses).
const (
	defaultZehaviMMin  = 11.6
	defaultZehaviM1    = 12.85
	defaultZehaviAlpha = 1.049
)

func init() {
	Register("zehavi05", NewZehavi05)
}

// zehavi05 is the three-parameter sharp-cutoff HOD of Zehavi et al. 2005:
// a halo above M_min hosts exactly one central, and satellites follow a
// power law N_sat = (M/M_1)^alpha in the same halos.
type zehavi05 struct {
	mmin  float64 // log10 M_min
	m1    float64 // log10 M_1
	alpha float64
}

// NewZehavi05 builds the model from params {m_min, m_1, alpha}.
func NewZehavi05(params map[string]float64) (Model, error) {
	p, err := applyParams(map[string]float64{
		"m_min": defaultZehaviMMin,
		"m_1":   defaultZehaviM1,
		"alpha": defaultZehaviAlpha,
	}, params)
	if err != nil {
		return nil, err
	}
	if p["alpha"] < 0 {
		return nil, fmt.Errorf("%w: alpha must be non-negative", ErrBadParam)
	}

	return &zehavi05{mmin: p["m_min"], m1: p["m_1"], alpha: p["alpha"]}, nil
}

// NCen implements Model: a unit step at M_min.
func (z *zehavi05) NCen(m []float64) []float64 {
	mcut := math.Pow(10, z.mmin)
	out := make([]float64, len(m))
	for i, mm := range m {
		if mm >= mcut {
			out[i] = 1
		}
	}

	return out
}

// NSat implements Model: (M/M_1)^alpha above the central cutoff.
func (z *zehavi05) NSat(m []float64) []float64 {
	mcut := math.Pow(10, z.mmin)
	m1 := math.Pow(10, z.m1)
	out := make([]float64, len(m))
	for i, mm := range m {
		if mm >= mcut {
			out[i] = math.Pow(mm/m1, z.alpha)
		}
	}

	return out
}

// NTot implements Model.
func (z *zehavi05) NTot(m []float64) []float64 {
	nc := z.NCen(m)
	ns := z.NSat(m)
	for i := range nc {
		nc[i] += ns[i]
	}

	return nc
}

// MinLogMass implements Model.
func (z *zehavi05) MinLogMass() float64 { return z.mmin }

// SharpCut implements Model.
func (z *zehavi05) SharpCut() bool { return true }

// CentralCondition implements Model: satellites do not require an
// explicit central factor (the step already gates them).
func (z *zehavi05) CentralCondition() bool { return false }

// WithMinLogMass implements Model.
func (z *zehavi05) WithMinLogMass(lg float64) Model {
	c := *z
	c.mmin = lg

	return &c
}
