package halo

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/halomod/cosmo"
	"github.com/katalvlaran/halomod/hod"
	"github.com/katalvlaran/halomod/twohalo"
)

// Pipeline defaults; every one can be overridden with an option.
const (
	// DefaultRMin, DefaultRMax and DefaultRNum define the separation grid.
	DefaultRMin = 0.1
	DefaultRMax = 50.0
	DefaultRNum = 100

	// DefaultHOD, DefaultProfile, DefaultCM and DefaultBias are the model
	// names resolved through the package registries.
	DefaultHOD     = "zehavi05"
	DefaultProfile = "nfw"
	DefaultCM      = "duffy08"
	DefaultBias    = "tinker10"

	// DefaultDLog10M is the decade step of the halo mass grid.
	DefaultDLog10M = 0.05
)

// settings is the full parameter set behind a Model. Options mutate it
// and record which graph parameters they touched, so Update can push
// exactly the changed values into the store.
type settings struct {
	rmin, rmax float64
	rnum       int
	rlog       bool
	rgrid      []float64 // explicit grid; overrides the bounds when set

	hodModel     string
	hodParams    map[string]float64
	profileModel string
	cmModel      string
	cmParams     map[string]float64
	biasModel    string
	biasParams   map[string]float64

	nonlinear bool
	sdBias    bool
	exclusion twohalo.Scheme
	ng        float64 // 0 means no density target
	workers   int
	dlog10m   float64

	provider cosmo.Provider
	log      *zap.Logger

	changed map[string]bool
}

// defaults returns the baseline settings New starts from.
func defaults() settings {
	return settings{
		rmin:         DefaultRMin,
		rmax:         DefaultRMax,
		rnum:         DefaultRNum,
		rlog:         true,
		hodModel:     DefaultHOD,
		profileModel: DefaultProfile,
		cmModel:      DefaultCM,
		biasModel:    DefaultBias,
		nonlinear:    true,
		sdBias:       true,
		exclusion:    twohalo.ExclusionNone,
		dlog10m:      DefaultDLog10M,
		provider:     cosmo.NewAnalytic(),
		changed:      map[string]bool{},
	}
}

// mark records the graph parameters an option touched.
func (s *settings) mark(names ...string) {
	for _, n := range names {
		s.changed[n] = true
	}
}

// clone deep-copies the mutable fields; the provider and logger are
// shared references.
func (s settings) clone() settings {
	out := s
	out.rgrid = append([]float64(nil), s.rgrid...)
	out.hodParams = cloneParams(s.hodParams)
	out.cmParams = cloneParams(s.cmParams)
	out.biasParams = cloneParams(s.biasParams)
	out.changed = map[string]bool{}

	return out
}

func cloneParams(p map[string]float64) map[string]float64 {
	if p == nil {
		return nil
	}
	out := make(map[string]float64, len(p))
	for k, v := range p {
		out[k] = v
	}

	return out
}

// validate rejects cross-field inconsistencies and unresolvable model
// names. Per-value nonsense (negative counts, non-finite bounds) panics
// in the option constructors instead.
func (s *settings) validate() error {
	if len(s.rgrid) == 0 && !(s.rmin < s.rmax) {
		return fmt.Errorf("%w: rmin %v must be below rmax %v", ErrBadConfig, s.rmin, s.rmax)
	}
	for i, r := range s.rgrid {
		if !(r > 0) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: separation grid must be positive and finite", ErrBadConfig)
		}
		if i > 0 && r <= s.rgrid[i-1] {
			return fmt.Errorf("%w: separation grid must be strictly increasing", ErrBadConfig)
		}
	}
	if s.provider == nil {
		return fmt.Errorf("%w: nil cosmology provider", ErrBadConfig)
	}
	scheme, err := twohalo.ParseScheme(string(s.exclusion))
	if err != nil {
		return err
	}
	s.exclusion = scheme // normalize legacy labels
	// Resolve the occupation eagerly: it anchors the mass grid, so a typo
	// here should fail at construction, not at first quantity access.
	if _, err := hod.New(s.hodModel, s.hodParams); err != nil {
		return err
	}

	return nil
}

// Option configures a Model at construction or through Update.
type Option func(*settings)

// WithRBounds sets a log- or linear-spaced separation grid by its bounds
// and point count, clearing any explicit grid. Panics when the bounds are
// not positive finite or num < 2.
func WithRBounds(rmin, rmax float64, num int) Option {
	if !(rmin > 0) || math.IsInf(rmax, 0) || math.IsNaN(rmax) || num < 2 {
		panic("halo: WithRBounds requires 0 < rmin, finite rmax, num >= 2")
	}

	return func(s *settings) {
		s.rmin, s.rmax, s.rnum = rmin, rmax, num
		s.rgrid = nil
		s.mark("rmin", "rmax", "rnum", "rgrid")
	}
}

// WithRLog toggles logarithmic spacing of the bounds-derived grid.
func WithRLog(log bool) Option {
	return func(s *settings) {
		s.rlog = log
		s.mark("rlog")
	}
}

// WithRGrid sets an explicit separation grid, overriding the bounds.
// Panics on an empty grid; ordering is validated at construction.
func WithRGrid(r []float64) Option {
	if len(r) == 0 {
		panic("halo: WithRGrid requires a non-empty grid")
	}
	grid := append([]float64(nil), r...)

	return func(s *settings) {
		s.rgrid = grid
		s.mark("rgrid")
	}
}

// WithHOD selects the occupation model and its parameter overrides.
func WithHOD(name string, params map[string]float64) Option {
	if name == "" {
		panic("halo: WithHOD requires a model name")
	}

	return func(s *settings) {
		s.hodModel = name
		s.hodParams = cloneParams(params)
		s.mark("hod_model", "hod_params")
	}
}

// WithProfile selects the halo density profile by registry name.
func WithProfile(name string) Option {
	if name == "" {
		panic("halo: WithProfile requires a profile name")
	}

	return func(s *settings) {
		s.profileModel = name
		s.mark("profile_model")
	}
}

// WithCM selects the concentration-mass relation and its overrides.
func WithCM(name string, params map[string]float64) Option {
	if name == "" {
		panic("halo: WithCM requires a relation name")
	}

	return func(s *settings) {
		s.cmModel = name
		s.cmParams = cloneParams(params)
		s.mark("cm_model", "cm_params")
	}
}

// WithBias selects the halo bias model and its overrides.
func WithBias(name string, params map[string]float64) Option {
	if name == "" {
		panic("halo: WithBias requires a bias model name")
	}

	return func(s *settings) {
		s.biasModel = name
		s.biasParams = cloneParams(params)
		s.mark("bias_model", "bias_params")
	}
}

// WithNonlinear selects the nonlinear (true) or linear matter spectrum.
func WithNonlinear(nl bool) Option {
	return func(s *settings) {
		s.nonlinear = nl
		s.mark("nonlinear")
	}
}

// WithScaleDependentBias toggles the nonlinear-bias correction of the
// 2-halo term.
func WithScaleDependentBias(on bool) Option {
	return func(s *settings) {
		s.sdBias = on
		s.mark("scale_dependent_bias")
	}
}

// WithExclusion selects the halo-exclusion scheme by label; unknown
// labels are rejected at construction.
func WithExclusion(label string) Option {
	return func(s *settings) {
		s.exclusion = twohalo.Scheme(label)
		s.mark("halo_exclusion")
	}
}

// WithNG sets a target mean galaxy density; the pipeline solves for the
// occupation threshold reproducing it. Panics on a non-positive or
// non-finite target.
func WithNG(ng float64) Option {
	if !(ng > 0) || math.IsInf(ng, 0) {
		panic("halo: WithNG requires a positive finite density")
	}

	return func(s *settings) {
		s.ng = ng
		s.mark("ng")
	}
}

// WithWorkers bounds the 2-halo worker pool; 0 or 1 means serial.
// Panics on a negative count.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("halo: WithWorkers requires a non-negative count")
	}

	return func(s *settings) {
		s.workers = n
		s.mark("workers")
	}
}

// WithDLog10M sets the decade step of the halo mass grid. Panics on a
// non-positive or non-finite step.
func WithDLog10M(step float64) Option {
	if !(step > 0) || math.IsInf(step, 0) {
		panic("halo: WithDLog10M requires a positive finite step")
	}

	return func(s *settings) {
		s.dlog10m = step
		s.mark("dlog10m")
	}
}

// WithCosmology replaces the background-cosmology provider. Panics on nil.
func WithCosmology(p cosmo.Provider) Option {
	if p == nil {
		panic("halo: WithCosmology requires a non-nil provider")
	}

	return func(s *settings) {
		s.provider = p
		s.mark("cosmo")
	}
}

// WithLogger attaches a structured logger; nil silences the pipeline.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}

// paramValues maps every graph parameter name to its current value.
func (s *settings) paramValues() map[string]any {
	return map[string]any{
		"rmin":                 s.rmin,
		"rmax":                 s.rmax,
		"rnum":                 s.rnum,
		"rlog":                 s.rlog,
		"rgrid":                s.rgrid,
		"hod_model":            s.hodModel,
		"hod_params":           s.hodParams,
		"profile_model":        s.profileModel,
		"cm_model":             s.cmModel,
		"cm_params":            s.cmParams,
		"bias_model":           s.biasModel,
		"bias_params":          s.biasParams,
		"nonlinear":            s.nonlinear,
		"scale_dependent_bias": s.sdBias,
		"halo_exclusion":       string(s.exclusion),
		"ng":                   s.ng,
		"workers":              s.workers,
		"dlog10m":              s.dlog10m,
		"cosmo":                s.provider,
	}
}
