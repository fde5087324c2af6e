package hod

import (
	"fmt"
	"math"
)

// Zheng05 defaults (log10 masses).
const (
	defaultZhengMMin    = 11.6
	defaultZhengSigLogM = 0.26
	defaultZhengM0      = 11.5
	defaultZhengM1      = 12.85
	defaultZhengAlpha   = 1.049

	// smoothTailWidths is how many sigma below M_min the mass grid must
	// extend to capture the erf tail of the central occupation.
	smoothTailWidths = 5
)

func init() {
	Register("zheng05", NewZheng05)
}

// zheng05 is the five-parameter smooth HOD of Zheng et al. 2005: the
// central occupation rises as an error function of log mass, and
// satellites follow ((M - M_0)/M_1)^alpha.
type zheng05 struct {
	mmin    float64 // log10 M_min
	sigLogM float64
	m0      float64 // log10 M_0
	m1      float64 // log10 M_1
	alpha   float64
}

// NewZheng05 builds the model from params
// {m_min, sig_logm, m_0, m_1, alpha}.
func NewZheng05(params map[string]float64) (Model, error) {
	p, err := applyParams(map[string]float64{
		"m_min":    defaultZhengMMin,
		"sig_logm": defaultZhengSigLogM,
		"m_0":      defaultZhengM0,
		"m_1":      defaultZhengM1,
		"alpha":    defaultZhengAlpha,
	}, params)
	if err != nil {
		return nil, err
	}
	if p["sig_logm"] <= 0 {
		return nil, fmt.Errorf("%w: sig_logm must be positive", ErrBadParam)
	}
	if p["alpha"] < 0 {
		return nil, fmt.Errorf("%w: alpha must be non-negative", ErrBadParam)
	}

	return &zheng05{
		mmin:    p["m_min"],
		sigLogM: p["sig_logm"],
		m0:      p["m_0"],
		m1:      p["m_1"],
		alpha:   p["alpha"],
	}, nil
}

// NCen implements Model: 1/2 [1 + erf((lg M - lg M_min)/sigma)].
func (z *zheng05) NCen(m []float64) []float64 {
	out := make([]float64, len(m))
	for i, mm := range m {
		out[i] = 0.5 * (1 + math.Erf((math.Log10(mm)-z.mmin)/z.sigLogM))
	}

	return out
}

// NSat implements Model: ((M - M_0)/M_1)^alpha above M_0.
func (z *zheng05) NSat(m []float64) []float64 {
	m0 := math.Pow(10, z.m0)
	m1 := math.Pow(10, z.m1)
	out := make([]float64, len(m))
	for i, mm := range m {
		if mm > m0 {
			out[i] = math.Pow((mm-m0)/m1, z.alpha)
		}
	}

	return out
}

// NTot implements Model.
func (z *zheng05) NTot(m []float64) []float64 {
	nc := z.NCen(m)
	ns := z.NSat(m)
	for i := range nc {
		nc[i] += ns[i]
	}

	return nc
}

// MinLogMass implements Model: the erf tail is negligible beyond
// smoothTailWidths sigma below M_min.
func (z *zheng05) MinLogMass() float64 {
	return z.mmin - smoothTailWidths*z.sigLogM
}

// SharpCut implements Model.
func (z *zheng05) SharpCut() bool { return false }

// CentralCondition implements Model: a satellite requires a central.
func (z *zheng05) CentralCondition() bool { return true }

// WithMinLogMass implements Model.
func (z *zheng05) WithMinLogMass(lg float64) Model {
	c := *z
	c.mmin = lg

	return &c
}
