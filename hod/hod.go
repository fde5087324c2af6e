package hod

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnknownModel indicates the requested model name is not registered.
	ErrUnknownModel = errors.New("hod: unknown occupation model")

	// ErrUnknownParam indicates a parameter key the model does not accept.
	ErrUnknownParam = errors.New("hod: unknown model parameter")

	// ErrBadParam indicates a non-finite or out-of-range parameter value.
	ErrBadParam = errors.New("hod: invalid model parameter value")
)

// Model is the occupation-model contract consumed by the pipeline.
// Implementations are immutable; WithMinLogMass returns a modified copy.
type Model interface {
	// NCen returns the expected central occupation per halo on the mass grid.
	NCen(m []float64) []float64

	// NSat returns the expected satellite occupation per halo.
	NSat(m []float64) []float64

	// NTot returns NCen + NSat.
	NTot(m []float64) []float64

	// MinLogMass is the log10 of the smallest halo mass the model can
	// populate; the pipeline's mass grid starts here.
	MinLogMass() float64

	// SharpCut reports whether the central occupation is a step function.
	SharpCut() bool

	// CentralCondition reports whether a satellite requires a central
	// (multiplies N_cen into the satellite pair integrands).
	CentralCondition() bool

	// WithMinLogMass returns a copy of the model with the central mass
	// threshold replaced; used by the M_min solver.
	WithMinLogMass(lg float64) Model
}

// Constructor builds a model from a validated parameter map.
type Constructor func(params map[string]float64) (Model, error)

// registry maps model names to constructors. Populated at init time;
// external packages may add models via Register before building pipelines.
var registry = map[string]Constructor{}

// Register adds a named constructor. Registering an existing name
// overwrites it, which is how callers shadow a shipped model.
func Register(name string, c Constructor) {
	registry[name] = c
}

// New resolves name through the registry and builds the model.
func New(name string, params map[string]float64) (Model, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownModel, name, Names())
	}

	return c(params)
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
