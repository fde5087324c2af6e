package concentration_test

import (
	"testing"

	"github.com/katalvlaran/halomod/concentration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridConfig(z float64) concentration.Config {
	return concentration.Config{
		Nu:       []float64{0.5, 0.8, 1.2, 2.0, 3.5},
		M:        []float64{1e11, 1e12, 1e13, 1e14, 1e15},
		Redshift: z,
		Growth:   1 / (1 + z),
	}
}

// TestNew_RegistryAndConfig covers resolution and validation.
func TestNew_RegistryAndConfig(t *testing.T) {
	for _, name := range []string{"duffy08", "bullock01"} {
		rel, err := concentration.New(name, gridConfig(0), nil)
		require.NoError(t, err, name)
		require.NotNil(t, rel)
	}

	_, err := concentration.New("nfw97", gridConfig(0), nil)
	assert.ErrorIs(t, err, concentration.ErrUnknownModel)

	_, err = concentration.New("duffy08", concentration.Config{}, nil)
	assert.ErrorIs(t, err, concentration.ErrBadConfig)

	_, err = concentration.New("duffy08", gridConfig(0), map[string]float64{"beta": 1})
	assert.ErrorIs(t, err, concentration.ErrUnknownParam)

	_, err = concentration.New("duffy08", gridConfig(0), map[string]float64{"amp": -2})
	assert.ErrorIs(t, err, concentration.ErrBadParam)
}

// TestDuffy08_PivotAndSlope pins the closed form: c(pivot) = amp at z=0
// and concentration decreases with mass.
func TestDuffy08_PivotAndSlope(t *testing.T) {
	rel, err := concentration.New("duffy08", gridConfig(0), nil)
	require.NoError(t, err)

	c := rel.CM([]float64{2e12})
	assert.InDelta(t, 5.71, c[0], 1e-12, "amplitude at the pivot mass")

	cs := rel.CM([]float64{1e11, 1e13, 1e15})
	assert.Greater(t, cs[0], cs[1])
	assert.Greater(t, cs[1], cs[2], "massive halos are less concentrated")
}

// TestDuffy08_RedshiftEvolution: higher z, lower concentration.
func TestDuffy08_RedshiftEvolution(t *testing.T) {
	rel0, err := concentration.New("duffy08", gridConfig(0), nil)
	require.NoError(t, err)
	rel1, err := concentration.New("duffy08", gridConfig(1), nil)
	require.NoError(t, err)

	m := []float64{1e13}
	assert.Greater(t, rel0.CM(m)[0], rel1.CM(m)[0])
}

// TestBullock01_NonlinearMassScale: c(M*) = amp/(1+z) where nu(M*) = 1.
func TestBullock01_NonlinearMassScale(t *testing.T) {
	rel, err := concentration.New("bullock01", gridConfig(0), nil)
	require.NoError(t, err)

	// nu = 1 falls between the grid's 0.8 and 1.2 entries, i.e. between
	// 1e12 and 1e13; the relation must hand back amp there.
	cs := rel.CM([]float64{1e12, 1e13})
	assert.Greater(t, cs[0], 9.0*0.9)
	assert.Less(t, cs[1], 9.0*1.1)
	assert.Greater(t, cs[0], cs[1], "falling power law in mass")
}

// TestBullock01_NeedsPeakHeight rejects configs without nu.
func TestBullock01_NeedsPeakHeight(t *testing.T) {
	cfg := gridConfig(0)
	cfg.Nu = nil

	_, err := concentration.New("bullock01", cfg, nil)
	assert.ErrorIs(t, err, concentration.ErrBadConfig)
}
