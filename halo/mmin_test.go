package halo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/halomod/cosmo"
	"github.com/katalvlaran/halomod/halo"
)

// TestFindMMin_RoundTripSharp: for a step occupation, inverting the
// density of a known threshold recovers that threshold.
func TestFindMMin_RoundTripSharp(t *testing.T) {
	m, err := halo.New(halo.WithHOD("zehavi05", map[string]float64{"m_min": 12.5}))
	require.NoError(t, err)

	ng, err := m.MeanGalDen()
	require.NoError(t, err)
	require.Greater(t, ng, 0.0)

	lg, err := m.FindMMin(ng)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, lg, 0.02)
}

// TestFindMMin_RoundTripSmooth: the simplex solve recovers a smooth
// occupation threshold from its density.
func TestFindMMin_RoundTripSmooth(t *testing.T) {
	m, err := halo.New(halo.WithHOD("zheng05", map[string]float64{"m_min": 12.2}))
	require.NoError(t, err)

	ng, err := m.MeanGalDen()
	require.NoError(t, err)
	require.Greater(t, ng, 0.0)

	lg, err := m.FindMMin(ng)
	require.NoError(t, err)
	assert.InDelta(t, 12.2, lg, 0.03)
}

// TestFindMMin_MonotoneInThreshold: a higher threshold means a lower
// density, so a lower target must solve to a higher threshold.
func TestFindMMin_MonotoneInThreshold(t *testing.T) {
	m, err := halo.New()
	require.NoError(t, err)

	ng, err := m.MeanGalDen()
	require.NoError(t, err)

	hi, err := m.FindMMin(ng / 10)
	require.NoError(t, err)
	lo, err := m.FindMMin(ng / 2)
	require.NoError(t, err)
	assert.Greater(t, hi, lo)
}

// TestFindMMin_Infeasible: a target above the occupation's reach reports
// the achievable maximum.
func TestFindMMin_Infeasible(t *testing.T) {
	m, err := halo.New()
	require.NoError(t, err)

	_, err = m.FindMMin(1e30)
	require.Error(t, err)
	assert.ErrorIs(t, err, halo.ErrNGExceeded)

	var exceeded *halo.NGExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, 1e30, exceeded.Target)
	assert.Greater(t, exceeded.Max, 0.0)
	assert.Less(t, exceeded.Max, 1e30)
}

// TestWithNG_SolvesThreshold: a density target pins the mean density and
// rewrites the occupation threshold.
func TestWithNG_SolvesThreshold(t *testing.T) {
	ref, err := halo.New()
	require.NoError(t, err)
	ng0, err := ref.MeanGalDen()
	require.NoError(t, err)
	refM, err := ref.M()
	require.NoError(t, err)

	m, err := halo.New(halo.WithNG(ng0 / 4))
	require.NoError(t, err)

	got, err := m.MeanGalDen()
	require.NoError(t, err)
	assert.Equal(t, ng0/4, got, "an explicit target is returned verbatim")

	mm, err := m.M()
	require.NoError(t, err)
	assert.Greater(t, mm[0], refM[0],
		"a rarer population needs a higher threshold")
}

// TestWithNG_Infeasible: an unreachable target fails at construction.
func TestWithNG_Infeasible(t *testing.T) {
	_, err := halo.New(halo.WithNG(1e30))
	require.Error(t, err)
	assert.ErrorIs(t, err, halo.ErrNGExceeded)
}

// TestUpdate_ExplicitThresholdClearsTarget: setting the threshold by hand
// drops the density target, so the density is integrated again.
func TestUpdate_ExplicitThresholdClearsTarget(t *testing.T) {
	ref, err := halo.New()
	require.NoError(t, err)
	ng0, err := ref.MeanGalDen()
	require.NoError(t, err)

	m, err := halo.New(halo.WithNG(ng0 / 4))
	require.NoError(t, err)

	require.NoError(t, m.Update(
		halo.WithHOD("zehavi05", map[string]float64{"m_min": 13.0})))
	got, err := m.MeanGalDen()
	require.NoError(t, err)
	assert.NotEqual(t, ng0/4, got, "the stale target must not survive")
	assert.Less(t, got, ng0, "a 13.0 threshold is rarer than the default")
}

// TestUpdate_NGReSolves: setting a new target through Update re-runs the
// inversion against the current occupation.
func TestUpdate_NGReSolves(t *testing.T) {
	m, err := halo.New()
	require.NoError(t, err)
	ng0, err := m.MeanGalDen()
	require.NoError(t, err)
	m0, err := m.M()
	require.NoError(t, err)

	require.NoError(t, m.Update(halo.WithNG(ng0/8)))
	mm, err := m.M()
	require.NoError(t, err)
	assert.Greater(t, mm[0], m0[0])

	got, err := m.MeanGalDen()
	require.NoError(t, err)
	assert.Equal(t, ng0/8, got)

	// The solved threshold and the target stay consistent.
	lg, err := m.FindMMin(ng0 / 8)
	require.NoError(t, err)
	assert.InDelta(t, lg, math.Log10(mm[0]), 1e-9)
}

// TestUpdate_CosmologyReSolvesTarget: while a density target is active,
// changing the cosmology re-inverts it, so the stored threshold never
// goes stale against the new mass function.
func TestUpdate_CosmologyReSolvesTarget(t *testing.T) {
	ref, err := halo.New()
	require.NoError(t, err)
	ng0, err := ref.MeanGalDen()
	require.NoError(t, err)

	m, err := halo.New(halo.WithNG(ng0 / 4))
	require.NoError(t, err)
	m0, err := m.M()
	require.NoError(t, err)

	require.NoError(t, m.Update(
		halo.WithCosmology(cosmo.NewAnalytic(cosmo.WithSigma8(0.6)))))

	mm, err := m.M()
	require.NoError(t, err)
	assert.NotEqual(t, m0[0], mm[0],
		"a lower sigma8 shifts the threshold solving the same target")

	lg, err := m.FindMMin(ng0 / 4)
	require.NoError(t, err)
	assert.InDelta(t, lg, math.Log10(mm[0]), 1e-9,
		"the stored threshold matches a fresh solve against the new cosmology")

	got, err := m.MeanGalDen()
	require.NoError(t, err)
	assert.Equal(t, ng0/4, got, "the target itself is untouched")
}
