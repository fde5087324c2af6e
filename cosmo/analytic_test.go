package cosmo_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/halomod/cosmo"
	"github.com/katalvlaran/halomod/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalytic_Sigma8Normalization recomputes sigma(8) from the returned
// spectrum and checks it reproduces the requested sigma8.
func TestAnalytic_Sigma8Normalization(t *testing.T) {
	a := cosmo.NewAnalytic(cosmo.WithSigma8(0.9))

	const (
		lnkMin = -14.0
		lnkMax = 12.0
		nk     = 2048
	)
	dlnk := (lnkMax - lnkMin) / float64(nk-1)
	lnk := make([]float64, nk)
	for i := range lnk {
		lnk[i] = lnkMin + float64(i)*dlnk
	}
	pk := a.LinearPower(lnk)

	integrand := make([]float64, nk)
	for i := range integrand {
		k := math.Exp(lnk[i])
		x := 8 * k
		var w float64
		if x < 1e-6 {
			w = 1
		} else {
			w = 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
		}
		integrand[i] = k * k * k * pk[i] * w * w
	}
	s2, err := quad.TrapzUniform(integrand, dlnk)
	require.NoError(t, err)

	sigma8 := math.Sqrt(s2 / (2 * math.Pi * math.Pi))
	assert.InEpsilon(t, 0.9, sigma8, 1e-6)
}

// TestAnalytic_PeakHeightIncreasesWithMass: rarer halos are more massive.
func TestAnalytic_PeakHeightIncreasesWithMass(t *testing.T) {
	a := cosmo.NewAnalytic()
	m := []float64{1e10, 1e12, 1e14, 1e16}
	nu := a.PeakHeight(m)

	for i := 1; i < len(nu); i++ {
		assert.Greater(t, nu[i], nu[i-1], "nu must increase with mass")
	}
}

// TestAnalytic_MassFunctionIntegratesToMeanDensity: Press–Schechter
// conserves mass, Int m dn/dm dm = rho_mean.
func TestAnalytic_MassFunctionIntegratesToMeanDensity(t *testing.T) {
	a := cosmo.NewAnalytic()

	const (
		lgMin    = 2.0
		lgMax    = 18.0
		dlog10m  = 0.01
		ln10     = math.Ln10
		nSamples = int((lgMax-lgMin)/dlog10m) + 1
	)
	m := make([]float64, nSamples)
	for i := range m {
		m[i] = math.Pow(10, lgMin+float64(i)*dlog10m)
	}
	dndm := a.DnDm(m)

	integrand := make([]float64, nSamples)
	for i := range integrand {
		integrand[i] = m[i] * m[i] * dndm[i] // extra m for the dlnm measure
	}
	total, err := quad.TrapzUniform(integrand, dlog10m*ln10)
	require.NoError(t, err)

	assert.InEpsilon(t, a.MeanDensity0(), total, 1e-2,
		"mass function must conserve the mean density")
}

// TestAnalytic_NonlinearBoostsSmallScales: nonlinear power exceeds linear
// at high k and converges to it at low k.
func TestAnalytic_NonlinearBoostsSmallScales(t *testing.T) {
	a := cosmo.NewAnalytic()
	lnk := []float64{math.Log(1e-4), math.Log(10)}

	lin := a.LinearPower(lnk)
	nl := a.NonlinearPower(lnk)

	assert.InEpsilon(t, lin[0], nl[0], 1e-2, "large scales stay linear")
	assert.Greater(t, nl[1], 2*lin[1], "small scales must be boosted")
}

// TestAnalytic_GrowthRedshift: D(z) = 1/(1+z) scales sigma and the
// spectrum consistently.
func TestAnalytic_GrowthRedshift(t *testing.T) {
	z0 := cosmo.NewAnalytic()
	z1 := cosmo.NewAnalytic(cosmo.WithRedshift(1))

	assert.Equal(t, 1.0, z0.GrowthFactor())
	assert.Equal(t, 0.5, z1.GrowthFactor())

	lnk := []float64{0}
	p0 := z0.LinearPower(lnk)[0]
	p1 := z1.LinearPower(lnk)[0]
	assert.InEpsilon(t, p0/4, p1, 1e-12, "power scales as D^2")
}

// TestAnalytic_OptionPanics: nonsensical construction is programmer error.
func TestAnalytic_OptionPanics(t *testing.T) {
	assert.Panics(t, func() { cosmo.WithSigma8(-1) })
	assert.Panics(t, func() { cosmo.WithSpectralIndex(0) })
	assert.Panics(t, func() { cosmo.WithMeanDensity0(math.Inf(1)) })
	assert.Panics(t, func() { cosmo.WithRedshift(-0.5) })
}
