package twohalo

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

var (
	// ErrUnknownScheme indicates an exclusion label outside the fixed set.
	ErrUnknownScheme = errors.New("twohalo: unknown halo-exclusion scheme")

	// ErrBadParams indicates misaligned grids or non-positive densities.
	ErrBadParams = errors.New("twohalo: invalid kernel parameters")
)

// Scheme enumerates the halo-exclusion corrections.
type Scheme string

// The fixed exclusion-scheme set.
const (
	ExclusionNone      Scheme = "none"
	ExclusionSphere    Scheme = "sphere"
	ExclusionEllipsoid Scheme = "ellipsoid"
	ExclusionNgMatched Scheme = "ng_matched"
	ExclusionSchneider Scheme = "schneider"
)

// ParseScheme normalizes a user-facing label into a Scheme. The empty
// string and the literal "None" both normalize to ExclusionNone.
func ParseScheme(s string) (Scheme, error) {
	switch s {
	case "", "None", string(ExclusionNone):
		return ExclusionNone, nil
	case string(ExclusionSphere), string(ExclusionEllipsoid),
		string(ExclusionNgMatched), string(ExclusionSchneider):
		return Scheme(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
	}
}

// Params carries every input of the kernel. All mass-indexed slices are
// aligned with M; U is wavenumber-major, U[ik][im].
type Params struct {
	// Exclusion selects the halo-exclusion scheme.
	Exclusion Scheme

	// ScaleDependentBias applies the Tinker 2005 nonlinear-bias factor.
	ScaleDependentBias bool

	// M is the halo mass grid (log-spaced); DLog10M its decade step.
	M       []float64
	DLog10M float64

	// Bias, NTot and DnDm are the halo bias, total occupation and mass
	// function on the mass grid.
	Bias, NTot, DnDm []float64

	// LnK is the log-wavenumber grid and Power the matter power spectrum
	// (linear or nonlinear, chosen by the caller) on it.
	LnK, Power []float64

	// U is the normalized Fourier halo profile, U[ik][im].
	U [][]float64

	// R is the separation grid and DMCorr the matter correlation on it.
	R, DMCorr []float64

	// MeanGalDen is the mean galaxy number density.
	MeanGalDen float64

	// MeanDensity and DeltaHalo define virial radii.
	MeanDensity, DeltaHalo float64

	// Workers bounds the parallel per-separation jobs; values below 2
	// mean serial evaluation.
	Workers int

	// Logger receives debug traces; nil means silent.
	Logger *zap.Logger
}

// validate rejects parameter sets the kernel cannot evaluate.
func (p *Params) validate() error {
	if _, err := ParseScheme(string(p.Exclusion)); err != nil {
		return err
	}
	nm := len(p.M)
	if nm < 3 || len(p.Bias) != nm || len(p.NTot) != nm || len(p.DnDm) != nm {
		return fmt.Errorf("%w: mass-grid slices misaligned", ErrBadParams)
	}
	nk := len(p.LnK)
	if nk < 2 || len(p.Power) != nk || len(p.U) != nk {
		return fmt.Errorf("%w: wavenumber-grid slices misaligned", ErrBadParams)
	}
	for ik := range p.U {
		if len(p.U[ik]) != nm {
			return fmt.Errorf("%w: profile row %d misaligned", ErrBadParams, ik)
		}
	}
	if len(p.R) == 0 || len(p.DMCorr) != len(p.R) {
		return fmt.Errorf("%w: separation-grid slices misaligned", ErrBadParams)
	}
	if !(p.MeanGalDen > 0) || !(p.MeanDensity > 0) || !(p.DeltaHalo > 0) {
		return fmt.Errorf("%w: densities must be positive", ErrBadParams)
	}
	if !(p.DLog10M > 0) || math.IsInf(p.DLog10M, 0) {
		return fmt.Errorf("%w: dlog10m must be positive", ErrBadParams)
	}

	return nil
}
