package concentration

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnknownModel indicates the requested relation is not registered.
	ErrUnknownModel = errors.New("concentration: unknown c(M) relation")

	// ErrUnknownParam indicates a parameter key the relation does not accept.
	ErrUnknownParam = errors.New("concentration: unknown relation parameter")

	// ErrBadParam indicates a non-finite or out-of-range parameter value.
	ErrBadParam = errors.New("concentration: invalid relation parameter value")

	// ErrBadConfig indicates an unusable Config (empty grids, bad redshift).
	ErrBadConfig = errors.New("concentration: invalid relation config")
)

// Config carries the shared inputs of every relation. Nu and M are the
// peak-height and mass grids, aligned elementwise; relations that do not
// need peak height ignore Nu.
type Config struct {
	Nu       []float64
	M        []float64
	Redshift float64
	Growth   float64
}

// validate rejects configs no relation can work with.
func (c Config) validate() error {
	if len(c.M) == 0 || (len(c.Nu) != 0 && len(c.Nu) != len(c.M)) {
		return fmt.Errorf("%w: mass/peak-height grids misaligned", ErrBadConfig)
	}
	if c.Redshift < 0 || math.IsNaN(c.Redshift) || math.IsInf(c.Redshift, 0) {
		return fmt.Errorf("%w: redshift = %v", ErrBadConfig, c.Redshift)
	}
	if !(c.Growth > 0) || math.IsInf(c.Growth, 0) {
		return fmt.Errorf("%w: growth = %v", ErrBadConfig, c.Growth)
	}

	return nil
}

// Relation maps halo mass to concentration.
type Relation interface {
	// CM evaluates c(m) elementwise on the mass grid.
	CM(m []float64) []float64
}

// Constructor builds a relation from the shared config and parameters.
type Constructor func(cfg Config, params map[string]float64) (Relation, error)

var registry = map[string]Constructor{}

// Register adds a named constructor; an existing name is overwritten.
func Register(name string, c Constructor) {
	registry[name] = c
}

// New resolves name through the registry and builds the relation.
func New(name string, cfg Config, params map[string]float64) (Relation, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownModel, name, Names())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return c(cfg, params)
}

// Names lists the registered relation names in sorted order.
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
