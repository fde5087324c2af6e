package halo

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/halomod/cache"
)

// Model is the assembled pipeline. It is not safe for concurrent use;
// the 2-halo term parallelizes internally when WithWorkers allows.
type Model struct {
	log   *zap.Logger
	cfg   settings
	store *cache.Store
}

// New builds a pipeline from defaults overlaid with opts. Nothing is
// computed yet; quantities materialize on first access.
func New(opts ...Option) (*Model, error) {
	cfg := defaults()
	for _, o := range opts {
		o(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log := cfg.log
	if log == nil {
		log = zap.NewNop()
	}
	m := &Model{log: log, cfg: cfg, store: cache.NewStore(log)}
	for name, v := range cfg.paramValues() {
		if err := m.store.RegisterParam(name, v); err != nil {
			return nil, err
		}
	}
	if err := m.registerQuantities(); err != nil {
		return nil, err
	}
	if cfg.changed["ng"] {
		if err := m.applyNG(cfg.ng); err != nil {
			return nil, err
		}
	}
	m.cfg.changed = map[string]bool{}

	return m, nil
}

// Update replaces parameters and invalidates exactly their transitive
// dependents. Setting a density target re-solves the occupation
// threshold; explicitly setting the threshold (or swapping the
// occupation model) clears any previous target. While a target stays
// active, changing the cosmology re-runs the inversion so the stored
// threshold keeps reproducing the target under the new mass function.
func (m *Model) Update(opts ...Option) error {
	next := m.cfg.clone()
	for _, o := range opts {
		o(&next)
	}
	if err := next.validate(); err != nil {
		return err
	}

	vals := next.paramValues()
	delta := make(map[string]any, len(next.changed))
	for name := range next.changed {
		delta[name] = vals[name]
	}
	if len(delta) > 0 {
		if err := m.store.SetMany(delta); err != nil {
			return err
		}
	}
	changed := next.changed
	next.changed = map[string]bool{}
	m.cfg = next

	switch {
	case changed["ng"]:
		return m.applyNG(m.cfg.ng)
	case changed["hod_model"], hasKey(m.cfg.hodParams, "m_min") && changed["hod_params"]:
		if m.cfg.ng != 0 {
			m.cfg.ng = 0

			return m.store.Set("ng", 0.0)
		}
	case m.cfg.ng != 0 && changed["cosmo"]:
		// The solved threshold depends on the mass function; an active
		// target must track it.
		return m.applyNG(m.cfg.ng)
	}

	return nil
}

func hasKey(p map[string]float64, key string) bool {
	_, ok := p[key]

	return ok
}

// applyNG inverts the density target into an occupation threshold and
// rewrites the occupation parameters with it.
func (m *Model) applyNG(ng float64) error {
	lg, err := m.FindMMin(ng)
	if err != nil {
		return err
	}
	m.log.Debug("solved occupation threshold",
		zap.Float64("ng", ng), zap.Float64("log10_m_min", lg))

	p := cloneParams(m.cfg.hodParams)
	if p == nil {
		p = map[string]float64{}
	}
	p["m_min"] = lg
	m.cfg.hodParams = p

	return m.store.Set("hod_params", p)
}

// Computes reports how many times the named quantity has been computed;
// instrumentation for cache behavior.
func (m *Model) Computes(name string) int { return m.store.Computes(name) }

// Cached reports whether the named quantity currently holds a value.
func (m *Model) Cached(name string) bool { return m.store.Has(name) }

// floats fetches a []float64 quantity by node name.
func (m *Model) floats(name string) ([]float64, error) {
	v, err := m.store.Get(name)
	if err != nil {
		return nil, err
	}

	return v.([]float64), nil
}

// scalar fetches a float64 quantity by node name.
func (m *Model) scalar(name string) (float64, error) {
	v, err := m.store.Get(name)
	if err != nil {
		return 0, err
	}

	return v.(float64), nil
}

// R returns the separation grid.
func (m *Model) R() ([]float64, error) { return m.floats("r") }

// M returns the halo mass grid.
func (m *Model) M() ([]float64, error) { return m.floats("m") }

// NCen returns the expected central occupation on the mass grid.
func (m *Model) NCen() ([]float64, error) { return m.floats("n_cen") }

// NSat returns the expected satellite occupation on the mass grid.
func (m *Model) NSat() ([]float64, error) { return m.floats("n_sat") }

// NTot returns the total occupation on the mass grid.
func (m *Model) NTot() ([]float64, error) { return m.floats("n_tot") }

// NGal returns the galaxy number density per mass, dn/dm times N_tot.
func (m *Model) NGal() ([]float64, error) { return m.floats("n_gal") }

// Bias returns the halo bias on the mass grid.
func (m *Model) Bias() ([]float64, error) { return m.floats("bias") }

// Concentration returns c(m) on the mass grid.
func (m *Model) Concentration() ([]float64, error) { return m.floats("concentration") }

// MatterPower returns the matter power spectrum on the wavenumber grid.
func (m *Model) MatterPower() ([]float64, error) { return m.floats("matter_power") }

// DMCorr returns the matter correlation on the separation grid.
func (m *Model) DMCorr() ([]float64, error) { return m.floats("dm_corr") }

// CorrMM1h returns the 1-halo matter correlation.
func (m *Model) CorrMM1h() ([]float64, error) { return m.floats("corr_mm_1h") }

// CorrGal1h returns the 1-halo galaxy correlation.
func (m *Model) CorrGal1h() ([]float64, error) { return m.floats("corr_gal_1h") }

// CorrGal2h returns the 2-halo galaxy correlation.
func (m *Model) CorrGal2h() ([]float64, error) { return m.floats("corr_gal_2h") }

// CorrGal returns the total galaxy correlation, the exact sum of the
// 1-halo and 2-halo terms.
func (m *Model) CorrGal() ([]float64, error) { return m.floats("corr_gal") }

// MeanGalDen returns the mean galaxy density: the density target when
// one is set, otherwise the occupation integral.
func (m *Model) MeanGalDen() (float64, error) { return m.scalar("mean_gal_den") }

// BiasEffective returns the galaxy-density-weighted mean halo bias.
func (m *Model) BiasEffective() (float64, error) { return m.scalar("bias_effective") }

// MassEffective returns log10 of the galaxy-density-weighted mean halo
// mass, in the units of the mass grid.
func (m *Model) MassEffective() (float64, error) { return m.scalar("mass_effective") }

// SatelliteFraction returns the satellite share of the galaxy density.
func (m *Model) SatelliteFraction() (float64, error) { return m.scalar("satellite_fraction") }

// CentralFraction returns 1 - SatelliteFraction.
func (m *Model) CentralFraction() (float64, error) { return m.scalar("central_fraction") }
