package bias

import "math"

// SMT01 coefficient defaults (Sheth, Mo & Tormen 2001, eq. 8).
const (
	defaultSMTA = 0.707
	defaultSMTB = 0.5
	defaultSMTC = 0.6
)

func init() {
	Register("mo96", NewMo96)
	Register("smt01", NewSMT01)
	Register("tinker10", NewTinker10)
}

// mo96 is the peak-background-split bias of Mo & White 1996:
// b = 1 + (nu^2 - 1)/delta_c.
type mo96 struct {
	deltaC float64
}

// NewMo96 builds the model; it takes no parameters.
func NewMo96(cfg Config, params map[string]float64) (Model, error) {
	if _, err := applyParams(map[string]float64{}, params); err != nil {
		return nil, err
	}

	return &mo96{deltaC: cfg.DeltaC}, nil
}

// Bias implements Model.
func (m *mo96) Bias(nu []float64) []float64 {
	out := make([]float64, len(nu))
	for i, v := range nu {
		out[i] = 1 + (v*v-1)/m.deltaC
	}

	return out
}

// smt01 is the ellipsoidal-collapse bias of Sheth, Mo & Tormen 2001.
type smt01 struct {
	deltaC  float64
	a, b, c float64
}

// NewSMT01 builds the model from params {a, b, c}.
func NewSMT01(cfg Config, params map[string]float64) (Model, error) {
	p, err := applyParams(map[string]float64{
		"a": defaultSMTA,
		"b": defaultSMTB,
		"c": defaultSMTC,
	}, params)
	if err != nil {
		return nil, err
	}

	return &smt01{deltaC: cfg.DeltaC, a: p["a"], b: p["b"], c: p["c"]}, nil
}

// Bias implements Model (SMT01 eq. 8).
func (m *smt01) Bias(nu []float64) []float64 {
	sa := math.Sqrt(m.a)
	out := make([]float64, len(nu))
	for i, v := range nu {
		anu2 := m.a * v * v
		num := sa*anu2 + sa*m.b*math.Pow(anu2, 1-m.c) -
			math.Pow(anu2, m.c)/(math.Pow(anu2, m.c)+m.b*(1-m.c)*(1-m.c/2))
		out[i] = 1 + num/(sa*m.deltaC)
	}

	return out
}

// tinker10 is the overdensity-dependent bias fit of Tinker et al. 2010
// (table 2); the coefficients depend on y = log10(delta_halo).
type tinker10 struct {
	deltaC           float64
	bigA, bigB, bigC float64
	ea, eb, ec       float64
}

// NewTinker10 builds the model; it takes no parameters (the fit is fully
// determined by the halo overdensity).
func NewTinker10(cfg Config, params map[string]float64) (Model, error) {
	if _, err := applyParams(map[string]float64{}, params); err != nil {
		return nil, err
	}

	y := math.Log10(cfg.DeltaHalo)
	ey := math.Exp(-math.Pow(4/y, 4))

	return &tinker10{
		deltaC: cfg.DeltaC,
		bigA:   1 + 0.24*y*ey,
		ea:     0.44*y - 0.88,
		bigB:   0.183,
		eb:     1.5,
		bigC:   0.019 + 0.107*y + 0.19*ey,
		ec:     2.4,
	}, nil
}

// Bias implements Model (Tinker10 eq. 6).
func (m *tinker10) Bias(nu []float64) []float64 {
	dca := math.Pow(m.deltaC, m.ea)
	out := make([]float64, len(nu))
	for i, v := range nu {
		va := math.Pow(v, m.ea)
		out[i] = 1 - m.bigA*va/(va+dca) +
			m.bigB*math.Pow(v, m.eb) + m.bigC*math.Pow(v, m.ec)
	}

	return out
}
