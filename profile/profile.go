package profile

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/halomod/concentration"
)

var (
	// ErrUnknownProfile indicates the requested profile is not registered.
	ErrUnknownProfile = errors.New("profile: unknown halo profile")

	// ErrNoLam indicates Lam was called on a profile without a closed-form
	// self-convolution; check HasLam first.
	ErrNoLam = errors.New("profile: profile has no self-convolution")

	// ErrBadConfig indicates an unusable Config.
	ErrBadConfig = errors.New("profile: invalid profile config")
)

// Config carries the shared inputs of every profile.
type Config struct {
	// CM supplies the concentration for each mass.
	CM concentration.Relation

	// MeanDens is the comoving mean matter density.
	MeanDens float64

	// DeltaHalo is the halo-defining mean overdensity threshold.
	DeltaHalo float64

	// Redshift of evaluation.
	Redshift float64
}

// validate rejects configs no profile can work with.
func (c Config) validate() error {
	if c.CM == nil {
		return fmt.Errorf("%w: nil concentration relation", ErrBadConfig)
	}
	if !(c.MeanDens > 0) || math.IsInf(c.MeanDens, 0) {
		return fmt.Errorf("%w: mean density = %v", ErrBadConfig, c.MeanDens)
	}
	if !(c.DeltaHalo > 0) || math.IsInf(c.DeltaHalo, 0) {
		return fmt.Errorf("%w: delta_halo = %v", ErrBadConfig, c.DeltaHalo)
	}

	return nil
}

// Profile is the halo-profile contract consumed by the pipeline.
type Profile interface {
	// U returns the normalized Fourier profile u[ik][im].
	U(k, m []float64) [][]float64

	// Rho returns the real-space density per unit mass, rho[ir][im],
	// truncated at the virial radius.
	Rho(r, m []float64) [][]float64

	// Lam returns the self-convolution lam[ir][im], or ErrNoLam when the
	// profile has no closed form for it.
	Lam(r, m []float64) ([][]float64, error)

	// HasLam reports whether Lam is available.
	HasLam() bool
}

// Constructor builds a profile from the shared config.
type Constructor func(cfg Config) (Profile, error)

var registry = map[string]Constructor{}

// Register adds a named constructor; an existing name is overwritten.
func Register(name string, c Constructor) {
	registry[name] = c
}

// New resolves name through the registry and builds the profile.
func New(name string, cfg Config) (Profile, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownProfile, name, Names())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return c(cfg)
}

// Names lists the registered profile names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
