package cosmo

// Provider supplies every background quantity the halo-model pipeline
// consumes. Implementations must be pure: repeated calls with the same
// arguments return the same values, and no call mutates provider state.
type Provider interface {
	// DnDm returns the halo mass function dn/dm on the mass grid m.
	DnDm(m []float64) []float64

	// PeakHeight returns nu(m) = delta_c / sigma(m, z) on the mass grid.
	PeakHeight(m []float64) []float64

	// LinearPower returns the linear matter power spectrum P(k) on the
	// log-wavenumber grid lnk.
	LinearPower(lnk []float64) []float64

	// NonlinearPower returns the nonlinear matter power spectrum on lnk.
	NonlinearPower(lnk []float64) []float64

	// GrowthFactor returns the linear growth factor D(z) at the provider's
	// redshift, normalized to D(0) = 1.
	GrowthFactor() float64

	// MeanDensity0 returns the comoving mean matter density at z = 0.
	MeanDensity0() float64

	// DeltaC returns the critical linear collapse overdensity.
	DeltaC() float64

	// DeltaHalo returns the halo-defining mean overdensity threshold.
	DeltaHalo() float64

	// SpectralIndex returns the effective spectral index of the linear
	// power spectrum at the scales of interest.
	SpectralIndex() float64

	// Redshift returns the redshift the provider is evaluated at.
	Redshift() float64
}
