package cosmo

import (
	"math"

	"github.com/katalvlaran/halomod/quad"
)

// Documented defaults for the analytic provider.
const (
	// DefaultSigma8 normalizes the linear spectrum in 8 Mpc/h spheres.
	DefaultSigma8 = 0.8

	// DefaultSpectralIndex is the power-law slope of P(k). Values in
	// (-3, -1) keep both sigma(R) and the normalization integral finite.
	DefaultSpectralIndex = -1.5

	// DefaultMeanDensity0 is Omega_m * rho_crit for Omega_m = 0.3, in
	// (Msun/h)/(Mpc/h)^3.
	DefaultMeanDensity0 = 0.3 * 2.7755e11

	// DefaultDeltaC is the spherical-collapse critical overdensity.
	DefaultDeltaC = 1.686

	// DefaultDeltaHalo defines halos at 200x the mean density.
	DefaultDeltaHalo = 200.0

	// DefaultRedshift evaluates the model at z = 0.
	DefaultRedshift = 0.0
)

// Nonlinear enhancement constants: P_nl = P_lin * (1 + (k/kNL)^nlExponent)
// below cancels against nothing at large scales and boosts small scales,
// standing in for a halofit-style correction.
const (
	nlScale    = 0.25 // h/Mpc
	nlExponent = 1.4
)

// sigma8Radius is the normalization scale in Mpc/h.
const sigma8Radius = 8.0

// Option mutates the analytic provider configuration.
// Constructors panic on non-finite or out-of-range values (programmer
// error); runtime data never reaches them.
type Option func(*Analytic)

// WithSigma8 sets the sigma8 normalization (must be positive and finite).
func WithSigma8(s8 float64) Option {
	if !(s8 > 0) || math.IsInf(s8, 0) {
		panic("cosmo: WithSigma8: sigma8 must be positive and finite")
	}

	return func(a *Analytic) { a.sigma8 = s8 }
}

// WithSpectralIndex sets the power-law slope n, restricted to (-3, -1) so
// that sigma(R) decreases with mass and the normalization converges.
func WithSpectralIndex(n float64) Option {
	if !(n > -3 && n < -1) {
		panic("cosmo: WithSpectralIndex: n must lie in (-3, -1)")
	}

	return func(a *Analytic) { a.index = n }
}

// WithMeanDensity0 sets the z=0 comoving mean matter density.
func WithMeanDensity0(rho float64) Option {
	if !(rho > 0) || math.IsInf(rho, 0) {
		panic("cosmo: WithMeanDensity0: density must be positive and finite")
	}

	return func(a *Analytic) { a.meanDensity0 = rho }
}

// WithDeltaC sets the critical collapse overdensity.
func WithDeltaC(dc float64) Option {
	if !(dc > 0) || math.IsInf(dc, 0) {
		panic("cosmo: WithDeltaC: delta_c must be positive and finite")
	}

	return func(a *Analytic) { a.deltaC = dc }
}

// WithDeltaHalo sets the halo-defining overdensity threshold.
func WithDeltaHalo(dh float64) Option {
	if !(dh > 0) || math.IsInf(dh, 0) {
		panic("cosmo: WithDeltaHalo: delta_halo must be positive and finite")
	}

	return func(a *Analytic) { a.deltaHalo = dh }
}

// WithRedshift sets the evaluation redshift (z >= 0).
func WithRedshift(z float64) Option {
	if z < 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		panic("cosmo: WithRedshift: z must be finite and non-negative")
	}

	return func(a *Analytic) { a.redshift = z }
}

// Analytic is the closed-form reference Provider: power-law linear
// spectrum, Press–Schechter mass function, Einstein–de-Sitter growth.
type Analytic struct {
	sigma8       float64
	index        float64
	meanDensity0 float64
	deltaC       float64
	deltaHalo    float64
	redshift     float64

	// amplitude is the P(k) = amplitude * k^index normalization solved
	// from sigma8 at construction.
	amplitude float64
}

var _ Provider = (*Analytic)(nil)

// NewAnalytic builds the reference provider with the documented defaults,
// then applies opts in order and solves the spectrum normalization.
func NewAnalytic(opts ...Option) *Analytic {
	a := &Analytic{
		sigma8:       DefaultSigma8,
		index:        DefaultSpectralIndex,
		meanDensity0: DefaultMeanDensity0,
		deltaC:       DefaultDeltaC,
		deltaHalo:    DefaultDeltaHalo,
		redshift:     DefaultRedshift,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.amplitude = a.solveAmplitude()

	return a
}

// solveAmplitude matches sigma(8 Mpc/h) to sigma8 at z=0:
//
//	sigma^2(R) = 1/(2 pi^2) Int dlnk k^3 P(k) W^2(kR)
//
// with the top-hat window W(x) = 3 (sin x - x cos x) / x^3.
func (a *Analytic) solveAmplitude() float64 {
	const (
		lnkMin = -14.0
		lnkMax = 12.0
		nk     = 2048
	)
	dlnk := (lnkMax - lnkMin) / float64(nk-1)

	integrand := make([]float64, nk)
	for i := range integrand {
		k := math.Exp(lnkMin + float64(i)*dlnk)
		w := topHatWindow(k * sigma8Radius)
		integrand[i] = math.Pow(k, a.index+3) * w * w
	}

	// Spacing and sample count are fixed above; the rule cannot fail.
	unnorm, _ := quad.TrapzUniform(integrand, dlnk)

	return a.sigma8 * a.sigma8 * 2 * math.Pi * math.Pi / unnorm
}

// sigma returns the rms top-hat fluctuation for mass m at the provider's
// redshift. For a power-law spectrum sigma(R) scales as R^-(n+3)/2.
func (a *Analytic) sigma(m float64) float64 {
	r := math.Cbrt(3 * m / (4 * math.Pi * a.meanDensity0))

	return a.sigma8 * math.Pow(r/sigma8Radius, -(a.index+3)/2) * a.GrowthFactor()
}

// DnDm implements Provider with the Press–Schechter mass function:
//
//	dn/dm = sqrt(2/pi) rho/m^2 nu exp(-nu^2/2) |dln sigma/dln m|
//
// where |dln sigma/dln m| = (n+3)/6 for a power-law spectrum.
func (a *Analytic) DnDm(m []float64) []float64 {
	slope := (a.index + 3) / 6
	out := make([]float64, len(m))
	for i, mm := range m {
		nu := a.deltaC / a.sigma(mm)
		out[i] = math.Sqrt(2/math.Pi) * a.meanDensity0 / (mm * mm) *
			nu * math.Exp(-nu*nu/2) * slope
	}

	return out
}

// PeakHeight implements Provider.
func (a *Analytic) PeakHeight(m []float64) []float64 {
	out := make([]float64, len(m))
	for i, mm := range m {
		out[i] = a.deltaC / a.sigma(mm)
	}

	return out
}

// LinearPower implements Provider: P(k) = A k^n D^2(z).
func (a *Analytic) LinearPower(lnk []float64) []float64 {
	d := a.GrowthFactor()
	out := make([]float64, len(lnk))
	for i, lk := range lnk {
		out[i] = a.amplitude * math.Exp(a.index*lk) * d * d
	}

	return out
}

// NonlinearPower implements Provider with the documented small-scale
// enhancement of the linear spectrum.
func (a *Analytic) NonlinearPower(lnk []float64) []float64 {
	out := a.LinearPower(lnk)
	for i, lk := range lnk {
		k := math.Exp(lk)
		out[i] *= 1 + math.Pow(k/nlScale, nlExponent)
	}

	return out
}

// GrowthFactor implements Provider with Einstein–de-Sitter growth,
// D(z) = 1/(1+z).
func (a *Analytic) GrowthFactor() float64 { return 1 / (1 + a.redshift) }

// MeanDensity0 implements Provider.
func (a *Analytic) MeanDensity0() float64 { return a.meanDensity0 }

// DeltaC implements Provider.
func (a *Analytic) DeltaC() float64 { return a.deltaC }

// DeltaHalo implements Provider.
func (a *Analytic) DeltaHalo() float64 { return a.deltaHalo }

// SpectralIndex implements Provider.
func (a *Analytic) SpectralIndex() float64 { return a.index }

// Redshift implements Provider.
func (a *Analytic) Redshift() float64 { return a.redshift }

// topHatWindow is the Fourier transform of a real-space top-hat sphere.
func topHatWindow(x float64) float64 {
	if x < 1e-6 {
		return 1 - x*x/10 // series limit; avoids 0/0 at x -> 0
	}

	return 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
}
