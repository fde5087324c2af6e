package bias_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/halomod/bias"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() bias.Config {
	return bias.Config{DeltaC: 1.686, DeltaHalo: 200, SpectralIndex: -1.5}
}

// TestNew_RegistryAndConfig covers resolution and config validation.
func TestNew_RegistryAndConfig(t *testing.T) {
	for _, name := range []string{"mo96", "smt01", "tinker10"} {
		m, err := bias.New(name, defaultConfig(), nil)
		require.NoError(t, err, name)
		require.NotNil(t, m)
	}

	_, err := bias.New("nope", defaultConfig(), nil)
	assert.ErrorIs(t, err, bias.ErrUnknownModel)

	_, err = bias.New("mo96", bias.Config{DeltaC: 0, DeltaHalo: 200}, nil)
	assert.ErrorIs(t, err, bias.ErrBadConfig)

	_, err = bias.New("tinker10", defaultConfig(), map[string]float64{"a": 1})
	assert.ErrorIs(t, err, bias.ErrUnknownParam)

	_, err = bias.New("smt01", defaultConfig(), map[string]float64{"a": math.NaN()})
	assert.ErrorIs(t, err, bias.ErrBadParam)
}

// TestMo96_ClosedForm checks the peak-background-split formula exactly.
func TestMo96_ClosedForm(t *testing.T) {
	m, err := bias.New("mo96", defaultConfig(), nil)
	require.NoError(t, err)

	nu := []float64{0.5, 1, 2}
	b := m.Bias(nu)
	for i, v := range nu {
		assert.InDelta(t, 1+(v*v-1)/1.686, b[i], 1e-12)
	}
	assert.InDelta(t, 1.0, b[1], 1e-12, "nu=1 halos are unbiased in Mo96")
}

// TestModels_HighPeaksAreBiased: every model gives b > 1 for rare halos
// and increases monotonically at high nu.
func TestModels_HighPeaksAreBiased(t *testing.T) {
	nu := []float64{1.5, 2, 3, 4}
	for _, name := range []string{"mo96", "smt01", "tinker10"} {
		m, err := bias.New(name, defaultConfig(), nil)
		require.NoError(t, err, name)

		b := m.Bias(nu)
		assert.Greater(t, b[0], 1.0, "%s: rare halos must be biased", name)
		for i := 1; i < len(b); i++ {
			assert.Greater(t, b[i], b[i-1], "%s: bias must rise with nu", name)
		}
	}
}

// TestTinker10_ReferenceValue pins the fit at nu=1, delta=200: the
// published coefficients give b close to but below 1.
func TestTinker10_ReferenceValue(t *testing.T) {
	m, err := bias.New("tinker10", defaultConfig(), nil)
	require.NoError(t, err)

	b := m.Bias([]float64{1})[0]
	assert.Greater(t, b, 0.5)
	assert.Less(t, b, 1.1)
}

// TestSMT01_CoefficientOverride: changing `a` moves the answer.
func TestSMT01_CoefficientOverride(t *testing.T) {
	def, err := bias.New("smt01", defaultConfig(), nil)
	require.NoError(t, err)
	alt, err := bias.New("smt01", defaultConfig(), map[string]float64{"a": 0.9})
	require.NoError(t, err)

	nu := []float64{2}
	assert.NotEqual(t, def.Bias(nu)[0], alt.Bias(nu)[0])
}
