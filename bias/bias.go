package bias

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnknownModel indicates the requested model name is not registered.
	ErrUnknownModel = errors.New("bias: unknown bias model")

	// ErrUnknownParam indicates a parameter key the model does not accept.
	ErrUnknownParam = errors.New("bias: unknown model parameter")

	// ErrBadParam indicates a non-finite or out-of-range parameter value.
	ErrBadParam = errors.New("bias: invalid model parameter value")

	// ErrBadConfig indicates a non-finite or non-positive Config field.
	ErrBadConfig = errors.New("bias: invalid model config")
)

// Config carries the cosmology-side inputs every bias model shares.
type Config struct {
	// DeltaC is the critical linear collapse overdensity.
	DeltaC float64

	// DeltaHalo is the halo-defining mean overdensity threshold.
	DeltaHalo float64

	// SpectralIndex is the effective spectral index (used by models that
	// carry an explicit shape dependence; others ignore it).
	SpectralIndex float64
}

// validate rejects configs no model can work with.
func (c Config) validate() error {
	if !(c.DeltaC > 0) || math.IsInf(c.DeltaC, 0) {
		return fmt.Errorf("%w: delta_c = %v", ErrBadConfig, c.DeltaC)
	}
	if !(c.DeltaHalo > 0) || math.IsInf(c.DeltaHalo, 0) {
		return fmt.Errorf("%w: delta_halo = %v", ErrBadConfig, c.DeltaHalo)
	}
	if math.IsNaN(c.SpectralIndex) || math.IsInf(c.SpectralIndex, 0) {
		return fmt.Errorf("%w: spectral index = %v", ErrBadConfig, c.SpectralIndex)
	}

	return nil
}

// Model maps peak height to halo bias.
type Model interface {
	// Bias evaluates b(nu) elementwise on the peak-height grid.
	Bias(nu []float64) []float64
}

// Constructor builds a model from the shared config and a parameter map.
type Constructor func(cfg Config, params map[string]float64) (Model, error)

var registry = map[string]Constructor{}

// Register adds a named constructor; an existing name is overwritten.
func Register(name string, c Constructor) {
	registry[name] = c
}

// New resolves name through the registry and builds the model.
func New(name string, cfg Config, params map[string]float64) (Model, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownModel, name, Names())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return c(cfg, params)
}

// Names lists the registered model names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// applyParams overlays user params onto defaults, rejecting unknown keys
// and non-finite values.
func applyParams(defaults map[string]float64, params map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range params {
		if _, ok := out[k]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParam, k)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q = %v", ErrBadParam, k, v)
		}
		out[k] = v
	}

	return out, nil
}
