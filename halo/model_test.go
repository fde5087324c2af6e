package halo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/halomod/halo"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fastOpts keeps end-to-end tests cheap: few separations, coarse mass grid.
func fastOpts(extra ...halo.Option) []halo.Option {
	opts := []halo.Option{
		halo.WithRGrid([]float64{0.5, 2, 10}),
		halo.WithDLog10M(0.1),
	}

	return append(opts, extra...)
}

// TestNew_Defaults: construction wires the graph without computing it.
func TestNew_Defaults(t *testing.T) {
	m, err := halo.New()
	require.NoError(t, err)

	assert.Zero(t, m.Computes("corr_gal"), "nothing computes before first access")
	assert.False(t, m.Cached("m"))

	r, err := m.R()
	require.NoError(t, err)
	assert.Len(t, r, halo.DefaultRNum)
	assert.InDelta(t, halo.DefaultRMin, r[0], 1e-12)
	assert.InDelta(t, halo.DefaultRMax, r[len(r)-1], 1e-9)

	mm, err := m.M()
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pow(10, 11.6), mm[0], 1e-9,
		"mass grid anchors at the occupation threshold")
}

// TestNew_BadConfig: unresolvable names and inconsistent grids fail fast.
func TestNew_BadConfig(t *testing.T) {
	_, err := halo.New(halo.WithHOD("nope", nil))
	assert.Error(t, err)

	_, err = halo.New(halo.WithExclusion("torus"))
	assert.Error(t, err)

	_, err = halo.New(halo.WithRGrid([]float64{2, 1}))
	assert.ErrorIs(t, err, halo.ErrBadConfig)
}

// TestCorrGal_Identity: the total correlation is exactly
// corr_1h + corr_2h at every separation.
func TestCorrGal_Identity(t *testing.T) {
	m, err := halo.New(fastOpts()...)
	require.NoError(t, err)

	total, err := m.CorrGal()
	require.NoError(t, err)
	c1, err := m.CorrGal1h()
	require.NoError(t, err)
	c2, err := m.CorrGal2h()
	require.NoError(t, err)

	require.Len(t, total, 3)
	for i := range total {
		assert.False(t, math.IsNaN(total[i]) || math.IsInf(total[i], 0))
		assert.Equal(t, c1[i]+c2[i], total[i], "the identity is exact, not approximate")
	}
}

// TestLazyIdempotence: repeated access never recomputes.
func TestLazyIdempotence(t *testing.T) {
	m, err := halo.New(fastOpts()...)
	require.NoError(t, err)

	first, err := m.CorrGal()
	require.NoError(t, err)
	second, err := m.CorrGal()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.Computes("corr_gal"))
	assert.Equal(t, 1, m.Computes("u"), "the Fourier profile computes once")
	assert.Equal(t, 1, m.Computes("dndm"))
}

// TestUpdate_ExclusionScope: switching the exclusion scheme invalidates
// the 2-halo branch and nothing else.
func TestUpdate_ExclusionScope(t *testing.T) {
	m, err := halo.New(fastOpts()...)
	require.NoError(t, err)

	_, err = m.CorrGal()
	require.NoError(t, err)

	require.NoError(t, m.Update(halo.WithExclusion("sphere")))
	assert.True(t, m.Cached("m"))
	assert.True(t, m.Cached("bias"))
	assert.True(t, m.Cached("cm"))
	assert.True(t, m.Cached("profile"))
	assert.True(t, m.Cached("u"))
	assert.True(t, m.Cached("corr_gal_1h"))
	assert.False(t, m.Cached("corr_gal_2h"))
	assert.False(t, m.Cached("corr_gal"))

	_, err = m.CorrGal()
	require.NoError(t, err)
	assert.Equal(t, 2, m.Computes("corr_gal_2h"))
	assert.Equal(t, 1, m.Computes("corr_gal_1h"), "1-halo term untouched")
	assert.Equal(t, 1, m.Computes("dndm"), "mass function untouched")
}

// TestUpdate_HODInvalidatesMassGrid: swapping the occupation rebuilds the
// mass grid and everything downstream.
func TestUpdate_HODInvalidatesMassGrid(t *testing.T) {
	m, err := halo.New(fastOpts()...)
	require.NoError(t, err)
	_, err = m.CorrGal()
	require.NoError(t, err)

	require.NoError(t, m.Update(
		halo.WithHOD("zheng05", map[string]float64{"m_min": 12.0})))
	assert.False(t, m.Cached("m"))
	assert.False(t, m.Cached("corr_gal"))

	mm, err := m.M()
	require.NoError(t, err)
	assert.Less(t, mm[0], math.Pow(10, 12.0),
		"smooth occupations extend the grid below the threshold")
}

// TestEndToEnd_SphereExclusion: a full pipeline run with sphere exclusion
// and a bounded worker pool yields finite, decaying clustering.
func TestEndToEnd_SphereExclusion(t *testing.T) {
	m, err := halo.New(fastOpts(
		halo.WithExclusion("sphere"),
		halo.WithWorkers(2),
	)...)
	require.NoError(t, err)

	xi, err := m.CorrGal()
	require.NoError(t, err)
	require.Len(t, xi, 3)
	for i, v := range xi {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "xi[%d]", i)
		assert.Greater(t, v, 0.0, "xi[%d]", i)
	}
	assert.Greater(t, xi[0], xi[1], "clustering decays with separation")
	assert.Greater(t, xi[1], xi[2], "clustering decays with separation")

	c1, err := m.CorrGal1h()
	require.NoError(t, err)
	c2, err := m.CorrGal2h()
	require.NoError(t, err)
	assert.Greater(t, c1[0], c2[0], "1-halo dominates inside halos")
	assert.Greater(t, c2[2], c1[2], "2-halo dominates at large separations")
}

// TestEffectiveQuantities: the galaxy-weighted summaries are consistent
// with each other and with the mass grid.
func TestEffectiveQuantities(t *testing.T) {
	m, err := halo.New(fastOpts()...)
	require.NoError(t, err)

	ng, err := m.MeanGalDen()
	require.NoError(t, err)
	assert.Greater(t, ng, 0.0)

	beff, err := m.BiasEffective()
	require.NoError(t, err)
	assert.Greater(t, beff, 0.0)

	meff, err := m.MassEffective()
	require.NoError(t, err)
	mm, err := m.M()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, meff, math.Log10(mm[0]),
		"log10 effective mass sits on the mass grid")
	assert.LessOrEqual(t, meff, math.Log10(mm[len(mm)-1]))

	fs, err := m.SatelliteFraction()
	require.NoError(t, err)
	fc, err := m.CentralFraction()
	require.NoError(t, err)
	assert.Greater(t, fs, 0.0)
	assert.Less(t, fs, 1.0)
	assert.InDelta(t, 1.0, fs+fc, 1e-12)
}

// TestMatterQuantities: the matter-side nodes are finite and positive
// where physics demands it.
func TestMatterQuantities(t *testing.T) {
	m, err := halo.New(fastOpts()...)
	require.NoError(t, err)

	pw, err := m.MatterPower()
	require.NoError(t, err)
	for _, v := range pw {
		assert.Greater(t, v, 0.0)
	}

	xi, err := m.DMCorr()
	require.NoError(t, err)
	assert.Greater(t, xi[0], xi[2], "matter clustering decays with separation")

	mm1h, err := m.CorrMM1h()
	require.NoError(t, err)
	for i, v := range mm1h {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "corr_mm_1h[%d]", i)
	}

	c, err := m.Concentration()
	require.NoError(t, err)
	masses, err := m.M()
	require.NoError(t, err)
	require.Len(t, c, len(masses))
	assert.Greater(t, c[0], c[len(c)-1],
		"low-mass halos are more concentrated")
}

// TestOccupationAccessors: N_cen + N_sat = N_tot on the grid.
func TestOccupationAccessors(t *testing.T) {
	m, err := halo.New(fastOpts()...)
	require.NoError(t, err)

	ncen, err := m.NCen()
	require.NoError(t, err)
	nsat, err := m.NSat()
	require.NoError(t, err)
	ntot, err := m.NTot()
	require.NoError(t, err)

	require.Len(t, nsat, len(ncen))
	require.Len(t, ntot, len(ncen))
	for i := range ntot {
		assert.InDelta(t, ncen[i]+nsat[i], ntot[i], 1e-12)
	}
}

// TestOptionPanics: programmer errors die at option construction.
func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { halo.WithRBounds(-1, 10, 5) })
	assert.Panics(t, func() { halo.WithRGrid(nil) })
	assert.Panics(t, func() { halo.WithNG(0) })
	assert.Panics(t, func() { halo.WithWorkers(-1) })
	assert.Panics(t, func() { halo.WithDLog10M(0) })
	assert.Panics(t, func() { halo.WithCosmology(nil) })
}
