package halo

import (
	"math"

	"github.com/katalvlaran/halomod/bias"
	"github.com/katalvlaran/halomod/cache"
	"github.com/katalvlaran/halomod/concentration"
	"github.com/katalvlaran/halomod/cosmo"
	"github.com/katalvlaran/halomod/hod"
	"github.com/katalvlaran/halomod/profile"
	"github.com/katalvlaran/halomod/quad"
	"github.com/katalvlaran/halomod/twohalo"
)

// The mass grid tops out at 10^18; the wavenumber grid spans roughly
// 1e-8 .. 2e4 in log steps of 0.05.
const (
	logMassMax = 18.0
	lnKMin     = -18.4
	lnKMax     = 9.9
	dLnK       = 0.05
)

// getter accumulates the first store error across a computation rule, so
// the rule body reads like straight-line math.
type getter struct {
	s   *cache.Store
	err error
}

func get[T any](g *getter, name string) T {
	var zero T
	if g.err != nil {
		return zero
	}
	v, err := g.s.Get(name)
	if err != nil {
		g.err = err

		return zero
	}

	return v.(T)
}

// registerQuantities wires the derived nodes. Registration order is
// topological: every dependency is registered before its dependents.
func (m *Model) registerQuantities() error {
	reg := func(name string, deps []string, fn cache.ComputeFunc) error {
		return m.store.Register(name, deps, fn)
	}
	g := func() *getter { return &getter{s: m.store} }

	steps := []struct {
		name string
		deps []string
		fn   cache.ComputeFunc
	}{
		{"lnk", nil, func() (any, error) {
			n := int((lnKMax-lnKMin)/dLnK) + 1
			lnk := make([]float64, n)
			for i := range lnk {
				lnk[i] = lnKMin + float64(i)*dLnK
			}

			return lnk, nil
		}},

		{"r", []string{"rmin", "rmax", "rnum", "rlog", "rgrid"}, func() (any, error) {
			gg := g()
			grid := get[[]float64](gg, "rgrid")
			rmin := get[float64](gg, "rmin")
			rmax := get[float64](gg, "rmax")
			num := get[int](gg, "rnum")
			logspace := get[bool](gg, "rlog")
			if gg.err != nil {
				return nil, gg.err
			}
			if len(grid) > 0 {
				return append([]float64(nil), grid...), nil
			}
			r := make([]float64, num)
			if logspace {
				lo, hi := math.Log10(rmin), math.Log10(rmax)
				step := (hi - lo) / float64(num-1)
				for i := range r {
					r[i] = math.Pow(10, lo+float64(i)*step)
				}
			} else {
				step := (rmax - rmin) / float64(num-1)
				for i := range r {
					r[i] = rmin + float64(i)*step
				}
			}

			return r, nil
		}},

		{"hod", []string{"hod_model", "hod_params"}, func() (any, error) {
			gg := g()
			name := get[string](gg, "hod_model")
			params := get[map[string]float64](gg, "hod_params")
			if gg.err != nil {
				return nil, gg.err
			}

			return hod.New(name, params)
		}},

		{"m", []string{"hod", "dlog10m"}, func() (any, error) {
			gg := g()
			h := get[hod.Model](gg, "hod")
			step := get[float64](gg, "dlog10m")
			if gg.err != nil {
				return nil, gg.err
			}

			return massGrid(h.MinLogMass(), logMassMax, step), nil
		}},

		{"nu", []string{"m", "cosmo"}, func() (any, error) {
			gg := g()
			mm := get[[]float64](gg, "m")
			prov := get[cosmo.Provider](gg, "cosmo")
			if gg.err != nil {
				return nil, gg.err
			}

			return prov.PeakHeight(mm), nil
		}},

		{"dndm", []string{"m", "cosmo"}, func() (any, error) {
			gg := g()
			mm := get[[]float64](gg, "m")
			prov := get[cosmo.Provider](gg, "cosmo")
			if gg.err != nil {
				return nil, gg.err
			}

			return prov.DnDm(mm), nil
		}},

		{"n_cen", []string{"hod", "m"}, func() (any, error) {
			gg := g()
			h := get[hod.Model](gg, "hod")
			mm := get[[]float64](gg, "m")
			if gg.err != nil {
				return nil, gg.err
			}

			return h.NCen(mm), nil
		}},

		{"n_sat", []string{"hod", "m"}, func() (any, error) {
			gg := g()
			h := get[hod.Model](gg, "hod")
			mm := get[[]float64](gg, "m")
			if gg.err != nil {
				return nil, gg.err
			}

			return h.NSat(mm), nil
		}},

		{"n_tot", []string{"hod", "m"}, func() (any, error) {
			gg := g()
			h := get[hod.Model](gg, "hod")
			mm := get[[]float64](gg, "m")
			if gg.err != nil {
				return nil, gg.err
			}

			return h.NTot(mm), nil
		}},

		{"n_gal", []string{"dndm", "n_tot"}, func() (any, error) {
			gg := g()
			dndm := get[[]float64](gg, "dndm")
			ntot := get[[]float64](gg, "n_tot")
			if gg.err != nil {
				return nil, gg.err
			}
			out := make([]float64, len(dndm))
			for i := range out {
				out[i] = dndm[i] * ntot[i]
			}

			return out, nil
		}},

		{"mean_gal_den", []string{"ng", "n_gal", "m", "dlog10m"}, func() (any, error) {
			gg := g()
			ng := get[float64](gg, "ng")
			ngal := get[[]float64](gg, "n_gal")
			mm := get[[]float64](gg, "m")
			step := get[float64](gg, "dlog10m")
			if gg.err != nil {
				return nil, gg.err
			}
			if ng > 0 {
				return ng, nil
			}

			return densityIntegral(ngal, mm, step)
		}},

		{"bias", []string{"nu", "bias_model", "bias_params", "cosmo"}, func() (any, error) {
			gg := g()
			nu := get[[]float64](gg, "nu")
			name := get[string](gg, "bias_model")
			params := get[map[string]float64](gg, "bias_params")
			prov := get[cosmo.Provider](gg, "cosmo")
			if gg.err != nil {
				return nil, gg.err
			}
			bm, err := bias.New(name, bias.Config{
				DeltaC:        prov.DeltaC(),
				DeltaHalo:     prov.DeltaHalo(),
				SpectralIndex: prov.SpectralIndex(),
			}, params)
			if err != nil {
				return nil, err
			}

			return bm.Bias(nu), nil
		}},

		{"cm", []string{"cm_model", "cm_params", "nu", "m", "cosmo"}, func() (any, error) {
			gg := g()
			name := get[string](gg, "cm_model")
			params := get[map[string]float64](gg, "cm_params")
			nu := get[[]float64](gg, "nu")
			mm := get[[]float64](gg, "m")
			prov := get[cosmo.Provider](gg, "cosmo")
			if gg.err != nil {
				return nil, gg.err
			}
			rel, err := concentration.New(name, concentration.Config{
				Nu:       nu,
				M:        mm,
				Redshift: prov.Redshift(),
				Growth:   prov.GrowthFactor(),
			}, params)
			if err != nil {
				return nil, err
			}

			return rel, nil
		}},

		{"concentration", []string{"cm", "m"}, func() (any, error) {
			gg := g()
			rel := get[concentration.Relation](gg, "cm")
			mm := get[[]float64](gg, "m")
			if gg.err != nil {
				return nil, gg.err
			}

			return rel.CM(mm), nil
		}},

		{"profile", []string{"profile_model", "cm", "cosmo"}, func() (any, error) {
			gg := g()
			name := get[string](gg, "profile_model")
			rel := get[concentration.Relation](gg, "cm")
			prov := get[cosmo.Provider](gg, "cosmo")
			if gg.err != nil {
				return nil, gg.err
			}

			return profile.New(name, profile.Config{
				CM:        rel,
				MeanDens:  prov.MeanDensity0(),
				DeltaHalo: prov.DeltaHalo(),
				Redshift:  prov.Redshift(),
			})
		}},

		{"u", []string{"profile", "lnk", "m"}, func() (any, error) {
			gg := g()
			prof := get[profile.Profile](gg, "profile")
			lnk := get[[]float64](gg, "lnk")
			mm := get[[]float64](gg, "m")
			if gg.err != nil {
				return nil, gg.err
			}
			k := make([]float64, len(lnk))
			for i := range k {
				k[i] = math.Exp(lnk[i])
			}

			return prof.U(k, mm), nil
		}},

		{"matter_power", []string{"lnk", "nonlinear", "cosmo"}, func() (any, error) {
			gg := g()
			lnk := get[[]float64](gg, "lnk")
			nl := get[bool](gg, "nonlinear")
			prov := get[cosmo.Provider](gg, "cosmo")
			if gg.err != nil {
				return nil, gg.err
			}
			if nl {
				return prov.NonlinearPower(lnk), nil
			}

			return prov.LinearPower(lnk), nil
		}},

		{"dm_corr", []string{"matter_power", "lnk", "r"}, func() (any, error) {
			gg := g()
			pw := get[[]float64](gg, "matter_power")
			lnk := get[[]float64](gg, "lnk")
			r := get[[]float64](gg, "r")
			if gg.err != nil {
				return nil, gg.err
			}

			return quad.PowerToCorr(lnk, pw, r)
		}},

		{"power_gg_1h_ss",
			[]string{"u", "lnk", "m", "dndm", "n_cen", "n_sat", "hod", "mean_gal_den", "dlog10m"},
			m.computePowerSS},

		{"corr_gg_1h_ss", []string{"power_gg_1h_ss", "lnk", "r"}, func() (any, error) {
			gg := g()
			pw := get[[]float64](gg, "power_gg_1h_ss")
			lnk := get[[]float64](gg, "lnk")
			r := get[[]float64](gg, "r")
			if gg.err != nil {
				return nil, gg.err
			}

			return quad.PowerToCorr(lnk, pw, r)
		}},

		{"corr_gg_1h_cs",
			[]string{"profile", "r", "m", "dndm", "n_cen", "n_sat", "mean_gal_den", "dlog10m", "cosmo"},
			m.computeCorrCS},

		{"power_mm_1h", []string{"u", "lnk", "m", "dndm", "dlog10m", "cosmo"},
			m.computePowerMM1h},

		{"corr_mm_1h",
			[]string{"power_mm_1h", "lnk", "r", "profile", "m", "dndm", "dlog10m", "cosmo"},
			m.computeCorrMM1h},

		{"corr_gal_1h",
			[]string{"profile", "hod", "r", "m", "dndm", "n_cen", "n_sat",
				"mean_gal_den", "dlog10m", "cosmo", "corr_gg_1h_ss", "corr_gg_1h_cs"},
			m.computeCorr1h},

		{"corr_gal_2h",
			[]string{"r", "dm_corr", "m", "bias", "n_tot", "dndm", "lnk", "matter_power",
				"u", "mean_gal_den", "halo_exclusion", "scale_dependent_bias",
				"workers", "dlog10m", "cosmo"},
			m.computeCorr2h},

		{"corr_gal", []string{"corr_gal_1h", "corr_gal_2h"}, func() (any, error) {
			gg := g()
			c1 := get[[]float64](gg, "corr_gal_1h")
			c2 := get[[]float64](gg, "corr_gal_2h")
			if gg.err != nil {
				return nil, gg.err
			}
			out := make([]float64, len(c1))
			for i := range out {
				out[i] = c1[i] + c2[i]
			}

			return out, nil
		}},

		{"bias_effective", []string{"bias", "n_gal", "m", "dlog10m"}, func() (any, error) {
			gg := g()
			b := get[[]float64](gg, "bias")
			ngal := get[[]float64](gg, "n_gal")
			mm := get[[]float64](gg, "m")
			step := get[float64](gg, "dlog10m")
			if gg.err != nil {
				return nil, gg.err
			}

			return weightedMean(b, ngal, mm, step)
		}},

		{"mass_effective", []string{"n_gal", "m", "dlog10m"}, func() (any, error) {
			gg := g()
			ngal := get[[]float64](gg, "n_gal")
			mm := get[[]float64](gg, "m")
			step := get[float64](gg, "dlog10m")
			if gg.err != nil {
				return nil, gg.err
			}

			v, err := weightedMean(mm, ngal, mm, step)
			if err != nil {
				return nil, err
			}

			return math.Log10(v), nil
		}},

		{"satellite_fraction",
			[]string{"dndm", "n_sat", "m", "dlog10m", "mean_gal_den"}, func() (any, error) {
				gg := g()
				dndm := get[[]float64](gg, "dndm")
				nsat := get[[]float64](gg, "n_sat")
				mm := get[[]float64](gg, "m")
				step := get[float64](gg, "dlog10m")
				ng := get[float64](gg, "mean_gal_den")
				if gg.err != nil {
					return nil, gg.err
				}
				sat := make([]float64, len(mm))
				for i := range sat {
					sat[i] = dndm[i] * nsat[i]
				}
				den, err := densityIntegral(sat, mm, step)
				if err != nil {
					return nil, err
				}

				return den / ng, nil
			}},

		{"central_fraction", []string{"satellite_fraction"}, func() (any, error) {
			gg := g()
			sat := get[float64](gg, "satellite_fraction")
			if gg.err != nil {
				return nil, gg.err
			}

			return 1 - sat, nil
		}},
	}

	for _, st := range steps {
		if err := reg(st.name, st.deps, st.fn); err != nil {
			return err
		}
	}

	return nil
}

// massGrid returns 10^x for x in [lo, hi] with the given decade step.
func massGrid(lo, hi, step float64) []float64 {
	n := int((hi-lo)/step) + 1
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Pow(10, lo+float64(i)*step)
	}

	return out
}

// densityIntegral evaluates Int f(m) dm = Int f(m) m dln m on the log
// mass grid, with f sampled per unit mass.
func densityIntegral(f, m []float64, dlog10m float64) (float64, error) {
	integ := make([]float64, len(f))
	for i := range integ {
		integ[i] = f[i] * m[i]
	}

	return quad.TrapzUniform(integ, math.Ln10*dlog10m)
}

// weightedMean is Int q f m dln m / Int f m dln m.
func weightedMean(q, f, m []float64, dlog10m float64) (float64, error) {
	qf := make([]float64, len(q))
	for i := range qf {
		qf[i] = q[i] * f[i]
	}
	num, err := densityIntegral(qf, m, dlog10m)
	if err != nil {
		return 0, err
	}
	den, err := densityIntegral(f, m, dlog10m)
	if err != nil {
		return 0, err
	}

	return num / den, nil
}

// computePowerSS builds the satellite-satellite 1-halo power spectrum:
// pairs of satellites inside one halo, weighted by the squared Fourier
// profile; the central condition multiplies N_cen into the pair count.
func (m *Model) computePowerSS() (any, error) {
	gg := &getter{s: m.store}
	u := get[[][]float64](gg, "u")
	lnk := get[[]float64](gg, "lnk")
	mm := get[[]float64](gg, "m")
	dndm := get[[]float64](gg, "dndm")
	ncen := get[[]float64](gg, "n_cen")
	nsat := get[[]float64](gg, "n_sat")
	h := get[hod.Model](gg, "hod")
	ng := get[float64](gg, "mean_gal_den")
	step := get[float64](gg, "dlog10m")
	if gg.err != nil {
		return nil, gg.err
	}

	dlnm := math.Ln10 * step
	cc := h.CentralCondition()
	integ := make([]float64, len(mm))
	out := make([]float64, len(lnk))
	for ik := range lnk {
		for im := range mm {
			pairs := nsat[im] * nsat[im]
			if cc {
				pairs *= ncen[im]
			}
			integ[im] = u[ik][im] * u[ik][im] * dndm[im] * mm[im] * pairs
		}
		v, err := quad.TrapzUniform(integ, dlnm)
		if err != nil {
			return nil, err
		}
		out[ik] = v / (ng * ng)
	}

	return out, nil
}

// computeCorrCS builds the central-satellite 1-halo correlation directly
// in real space from the halo density profile. Halos too small to hold
// the pair at separation r are masked out.
func (m *Model) computeCorrCS() (any, error) {
	gg := &getter{s: m.store}
	prof := get[profile.Profile](gg, "profile")
	r := get[[]float64](gg, "r")
	mm := get[[]float64](gg, "m")
	dndm := get[[]float64](gg, "dndm")
	ncen := get[[]float64](gg, "n_cen")
	nsat := get[[]float64](gg, "n_sat")
	ng := get[float64](gg, "mean_gal_den")
	step := get[float64](gg, "dlog10m")
	prov := get[cosmo.Provider](gg, "cosmo")
	if gg.err != nil {
		return nil, gg.err
	}

	dlnm := math.Ln10 * step
	rho := prof.Rho(r, mm)
	out := make([]float64, len(r))
	integ := make([]float64, len(mm))
	for ir := range r {
		mlim := quad.ExclusionMass(r[ir]/2, prov.MeanDensity0(), prov.DeltaHalo())
		for im := range mm {
			if mm[im] < mlim {
				integ[im] = 0

				continue
			}
			integ[im] = dndm[im] * 2 * ncen[im] * nsat[im] * rho[ir][im] * mm[im]
		}
		v, err := quad.TrapzUniform(integ, dlnm)
		if err != nil {
			return nil, err
		}
		out[ir] = v / (ng * ng)
	}

	return out, nil
}

// computePowerMM1h builds the 1-halo matter power spectrum, masking, at
// each wavenumber, halos smaller than the half-wavelength scale so the
// term dies off at large scales.
func (m *Model) computePowerMM1h() (any, error) {
	gg := &getter{s: m.store}
	u := get[[][]float64](gg, "u")
	lnk := get[[]float64](gg, "lnk")
	mm := get[[]float64](gg, "m")
	dndm := get[[]float64](gg, "dndm")
	step := get[float64](gg, "dlog10m")
	prov := get[cosmo.Provider](gg, "cosmo")
	if gg.err != nil {
		return nil, gg.err
	}

	dlnm := math.Ln10 * step
	rhobar := prov.MeanDensity0()
	out := make([]float64, len(lnk))
	integ := make([]float64, len(mm))
	for ik := range lnk {
		k := math.Exp(lnk[ik])
		mlim := quad.ExclusionMass(math.Pi/k, rhobar, prov.DeltaHalo())
		for im := range mm {
			if mm[im] < mlim {
				integ[im] = 0

				continue
			}
			integ[im] = dndm[im] * mm[im] * mm[im] * mm[im] * u[ik][im] * u[ik][im]
		}
		v, err := quad.TrapzUniform(integ, dlnm)
		if err != nil {
			return nil, err
		}
		out[ik] = v / (rhobar * rhobar)
	}

	return out, nil
}

// computeCorrMM1h builds the 1-halo matter correlation: the exact
// self-convolution route when the profile has one, the Fourier route
// otherwise.
func (m *Model) computeCorrMM1h() (any, error) {
	gg := &getter{s: m.store}
	prof := get[profile.Profile](gg, "profile")
	if gg.err != nil {
		return nil, gg.err
	}

	if !prof.HasLam() {
		pw := get[[]float64](gg, "power_mm_1h")
		lnk := get[[]float64](gg, "lnk")
		r := get[[]float64](gg, "r")
		if gg.err != nil {
			return nil, gg.err
		}

		return quad.PowerToCorr(lnk, pw, r)
	}

	r := get[[]float64](gg, "r")
	mm := get[[]float64](gg, "m")
	dndm := get[[]float64](gg, "dndm")
	step := get[float64](gg, "dlog10m")
	prov := get[cosmo.Provider](gg, "cosmo")
	if gg.err != nil {
		return nil, gg.err
	}

	lam, err := prof.Lam(r, mm)
	if err != nil {
		return nil, err
	}
	rhobar := prov.MeanDensity0()
	dlnm := math.Ln10 * step
	out := make([]float64, len(r))
	integ := make([]float64, len(mm))
	for ir := range r {
		for im := range mm {
			integ[im] = dndm[im] * mm[im] * mm[im] * mm[im] * lam[ir][im]
		}
		v, terr := quad.TrapzUniform(integ, dlnm)
		if terr != nil {
			return nil, terr
		}
		out[ir] = v / (rhobar * rhobar)
	}

	return out, nil
}

// computeCorr1h builds the total 1-halo galaxy correlation. Profiles with
// a closed-form self-convolution get the satellite-satellite part in real
// space; otherwise it comes from the Fourier route already cached.
func (m *Model) computeCorr1h() (any, error) {
	gg := &getter{s: m.store}
	prof := get[profile.Profile](gg, "profile")
	if gg.err != nil {
		return nil, gg.err
	}

	if !prof.HasLam() {
		ss := get[[]float64](gg, "corr_gg_1h_ss")
		cs := get[[]float64](gg, "corr_gg_1h_cs")
		if gg.err != nil {
			return nil, gg.err
		}
		out := make([]float64, len(ss))
		for i := range out {
			out[i] = ss[i] + cs[i]
		}

		return out, nil
	}

	h := get[hod.Model](gg, "hod")
	r := get[[]float64](gg, "r")
	mm := get[[]float64](gg, "m")
	dndm := get[[]float64](gg, "dndm")
	ncen := get[[]float64](gg, "n_cen")
	nsat := get[[]float64](gg, "n_sat")
	ng := get[float64](gg, "mean_gal_den")
	step := get[float64](gg, "dlog10m")
	prov := get[cosmo.Provider](gg, "cosmo")
	if gg.err != nil {
		return nil, gg.err
	}

	lam, err := prof.Lam(r, mm)
	if err != nil {
		return nil, err
	}
	rho := prof.Rho(r, mm)
	cc := h.CentralCondition()
	dlnm := math.Ln10 * step
	out := make([]float64, len(r))
	integ := make([]float64, len(mm))
	for ir := range r {
		mlim := quad.ExclusionMass(r[ir]/2, prov.MeanDensity0(), prov.DeltaHalo())
		for im := range mm {
			pairs := nsat[im] * nsat[im]
			if cc {
				pairs *= ncen[im]
			}
			v := dndm[im] * pairs * lam[ir][im] * mm[im]
			if mm[im] >= mlim {
				v += dndm[im] * 2 * ncen[im] * nsat[im] * rho[ir][im] * mm[im]
			}
			integ[im] = v
		}
		v, err := quad.TrapzUniform(integ, dlnm)
		if err != nil {
			return nil, err
		}
		out[ir] = v / (ng * ng)
	}

	return out, nil
}

// computeCorr2h delegates to the exclusion kernel.
func (m *Model) computeCorr2h() (any, error) {
	gg := &getter{s: m.store}
	r := get[[]float64](gg, "r")
	dmcorr := get[[]float64](gg, "dm_corr")
	mm := get[[]float64](gg, "m")
	b := get[[]float64](gg, "bias")
	ntot := get[[]float64](gg, "n_tot")
	dndm := get[[]float64](gg, "dndm")
	lnk := get[[]float64](gg, "lnk")
	pw := get[[]float64](gg, "matter_power")
	u := get[[][]float64](gg, "u")
	ng := get[float64](gg, "mean_gal_den")
	label := get[string](gg, "halo_exclusion")
	sdBias := get[bool](gg, "scale_dependent_bias")
	workers := get[int](gg, "workers")
	step := get[float64](gg, "dlog10m")
	prov := get[cosmo.Provider](gg, "cosmo")
	if gg.err != nil {
		return nil, gg.err
	}
	scheme, err := twohalo.ParseScheme(label)
	if err != nil {
		return nil, err
	}

	return twohalo.Corr(twohalo.Params{
		Exclusion:          scheme,
		ScaleDependentBias: sdBias,
		M:                  mm,
		DLog10M:            step,
		Bias:               b,
		NTot:               ntot,
		DnDm:               dndm,
		LnK:                lnk,
		Power:              pw,
		U:                  u,
		R:                  r,
		DMCorr:             dmcorr,
		MeanGalDen:         ng,
		MeanDensity:        prov.MeanDensity0(),
		DeltaHalo:          prov.DeltaHalo(),
		Workers:            workers,
		Logger:             m.log,
	})
}
