package halo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/halomod/halo"
)

// TestLoadConfig_FullFile: a complete YAML file builds a working model.
func TestLoadConfig_FullFile(t *testing.T) {
	const file = `
rmin: 0.2
rmax: 30
rnum: 16
rlog: true
hod:
  model: zheng05
  params:
    m_min: 12.0
    alpha: 1.1
profile: nfw
cm:
  model: duffy08
bias:
  model: smt01
halo_exclusion: sphere
nonlinear: false
scale_dependent_bias: false
workers: 2
dlog10m: 0.1
`
	opts, err := halo.LoadConfig(strings.NewReader(file))
	require.NoError(t, err)

	m, err := halo.New(opts...)
	require.NoError(t, err)

	r, err := m.R()
	require.NoError(t, err)
	require.Len(t, r, 16)
	assert.InDelta(t, 0.2, r[0], 1e-12)
	assert.InDelta(t, 30.0, r[len(r)-1], 1e-9)
}

// TestLoadConfig_PartialKeepsDefaults: absent fields keep their defaults.
func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	opts, err := halo.LoadConfig(strings.NewReader("halo_exclusion: ellipsoid\n"))
	require.NoError(t, err)

	m, err := halo.New(opts...)
	require.NoError(t, err)

	r, err := m.R()
	require.NoError(t, err)
	assert.Len(t, r, halo.DefaultRNum)
}

// TestLoadConfig_Rejections: unknown fields and bad values fail with
// errors, never panics.
func TestLoadConfig_Rejections(t *testing.T) {
	cases := map[string]string{
		"unknown field": "warp_drive: 9\n",
		"bad bounds":    "rmin: 5\nrmax: 1\nrnum: 10\n",
		"missing rnum":  "rmin: 0.1\nrmax: 10\n",
		"negative ng":   "ng: -1\n",
		"bad workers":   "workers: -2\n",
		"bad dlog10m":   "dlog10m: -0.1\n",
		"nameless hod":  "hod:\n  params:\n    m_min: 12\n",
	}
	for name, file := range cases {
		_, err := halo.LoadConfig(strings.NewReader(file))
		assert.Error(t, err, name)
	}
}
