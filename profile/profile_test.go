package profile_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/halomod/concentration"
	"github.com/katalvlaran/halomod/profile"
	"github.com/katalvlaran/halomod/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMeanDens  = 0.3 * 2.7755e11
	testDeltaHalo = 200.0
)

func testConfig(t *testing.T) profile.Config {
	t.Helper()
	rel, err := concentration.New("duffy08", concentration.Config{
		M:      []float64{1e12},
		Growth: 1,
	}, nil)
	require.NoError(t, err)

	return profile.Config{
		CM:        rel,
		MeanDens:  testMeanDens,
		DeltaHalo: testDeltaHalo,
	}
}

// TestNew_Registry resolves shipped profiles and validates config.
func TestNew_Registry(t *testing.T) {
	cfg := testConfig(t)
	for _, name := range []string{"nfw", "tophat"} {
		p, err := profile.New(name, cfg)
		require.NoError(t, err, name)
		require.NotNil(t, p)
	}

	_, err := profile.New("einasto", cfg)
	assert.ErrorIs(t, err, profile.ErrUnknownProfile)

	_, err = profile.New("nfw", profile.Config{})
	assert.ErrorIs(t, err, profile.ErrBadConfig)
}

// TestProfiles_FourierNormalization: u -> 1 as k -> 0 and |u| decays at
// high k, for both profiles.
func TestProfiles_FourierNormalization(t *testing.T) {
	cfg := testConfig(t)
	masses := []float64{1e11, 1e13, 1e15}

	for _, name := range []string{"nfw", "tophat"} {
		p, err := profile.New(name, cfg)
		require.NoError(t, err, name)

		u := p.U([]float64{1e-5, 0.1, 100}, masses)
		for im := range masses {
			assert.InDelta(t, 1.0, u[0][im], 1e-3, "%s: u(k->0) = 1", name)
			assert.Less(t, math.Abs(u[2][im]), 0.6,
				"%s: u must decay at high k", name)
			assert.Less(t, math.Abs(u[2][im]), math.Abs(u[1][im]),
				"%s: u must decay with k", name)
		}
	}
}

// TestProfiles_RhoIntegratesToUnity: the per-mass density integrates to
// one inside the virial radius.
func TestProfiles_RhoIntegratesToUnity(t *testing.T) {
	cfg := testConfig(t)
	const mass = 1e13
	rv := quad.VirialRadius(mass, testMeanDens, testDeltaHalo)

	const nr = 4000
	dr := rv / nr
	r := make([]float64, nr)
	for i := range r {
		r[i] = (float64(i) + 0.5) * dr // midpoints avoid the NFW center
	}

	for _, name := range []string{"nfw", "tophat"} {
		p, err := profile.New(name, cfg)
		require.NoError(t, err, name)

		rho := p.Rho(r, []float64{mass})
		total := 0.0
		for i := range r {
			total += 4 * math.Pi * r[i] * r[i] * rho[i][0] * dr
		}
		assert.InEpsilon(t, 1.0, total, 1e-2, "%s: mass normalization", name)
	}
}

// TestProfiles_RhoTruncatedAtVirialRadius.
func TestProfiles_RhoTruncatedAtVirialRadius(t *testing.T) {
	cfg := testConfig(t)
	const mass = 1e13
	rv := quad.VirialRadius(mass, testMeanDens, testDeltaHalo)

	for _, name := range []string{"nfw", "tophat"} {
		p, err := profile.New(name, cfg)
		require.NoError(t, err, name)

		rho := p.Rho([]float64{1.01 * rv, 5 * rv}, []float64{mass})
		assert.Zero(t, rho[0][0], "%s", name)
		assert.Zero(t, rho[1][0], "%s", name)
	}
}

// TestTopHat_LamProperties: lam(0) equals the interior density, lam
// vanishes beyond twice the virial radius, and its volume integral is
// one (a self-convolution of a unit-mass profile).
func TestTopHat_LamProperties(t *testing.T) {
	cfg := testConfig(t)
	p, err := profile.New("tophat", cfg)
	require.NoError(t, err)
	require.True(t, p.HasLam())

	const mass = 1e13
	rv := quad.VirialRadius(mass, testMeanDens, testDeltaHalo)
	interior := 3 / (4 * math.Pi * rv * rv * rv)

	lam, err := p.Lam([]float64{1e-8 * rv, 2.001 * rv}, []float64{mass})
	require.NoError(t, err)
	assert.InEpsilon(t, interior, lam[0][0], 1e-6, "lam(0) = Int rho^2 dV")
	assert.Zero(t, lam[1][0], "no overlap beyond 2 r_vir")

	const nr = 4000
	dr := 2 * rv / nr
	r := make([]float64, nr)
	for i := range r {
		r[i] = (float64(i) + 0.5) * dr
	}
	grid, err := p.Lam(r, []float64{mass})
	require.NoError(t, err)

	total := 0.0
	for i := range r {
		total += 4 * math.Pi * r[i] * r[i] * grid[i][0] * dr
	}
	assert.InEpsilon(t, 1.0, total, 1e-3, "self-convolution normalization")
}

// TestNFW_NoLam: the capability flag and the sentinel agree.
func TestNFW_NoLam(t *testing.T) {
	p, err := profile.New("nfw", testConfig(t))
	require.NoError(t, err)

	assert.False(t, p.HasLam())
	_, err = p.Lam([]float64{1}, []float64{1e12})
	assert.ErrorIs(t, err, profile.ErrNoLam)
}

// TestNFW_MoreConcentratedIsMoreCompact: at fixed mass, a higher
// concentration keeps more power at high k.
func TestNFW_MoreConcentratedIsMoreCompact(t *testing.T) {
	lo, err := concentration.New("duffy08", concentration.Config{M: []float64{1e12}, Growth: 1},
		map[string]float64{"amp": 3})
	require.NoError(t, err)
	hi, err := concentration.New("duffy08", concentration.Config{M: []float64{1e12}, Growth: 1},
		map[string]float64{"amp": 12})
	require.NoError(t, err)

	mk := func(rel concentration.Relation) profile.Profile {
		p, perr := profile.New("nfw", profile.Config{
			CM: rel, MeanDens: testMeanDens, DeltaHalo: testDeltaHalo,
		})
		require.NoError(t, perr)

		return p
	}

	k := []float64{5.0}
	m := []float64{1e13}
	uLo := mk(lo).U(k, m)[0][0]
	uHi := mk(hi).U(k, m)[0][0]
	assert.Greater(t, uHi, uLo, "concentration steepens the inner profile")
}
