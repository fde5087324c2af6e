// Package profile implements halo density profiles and their Fourier
// transforms, the ingredients of every 1-halo integral.
//
// A Profile exposes three views of the same halo:
//
//   - U(k, m)   — normalized Fourier profile, u -> 1 as k -> 0;
//   - Rho(r, m) — real-space density per unit halo mass (integrates to 1
//     inside the virial radius);
//   - Lam(r, m) — the profile's self-convolution, when available in
//     closed form (HasLam reports availability). With it the 1-halo
//     correlation is computed exactly in real space instead of through
//     the oscillatory Fourier transform.
//
// All grid-valued methods return [i][j] slices indexed wavenumber- or
// separation-major, mass-minor, matching the integration order of the
// pipeline.
//
// Shipped profiles: nfw (Navarro–Frenk–White, analytic U via sine/cosine
// integrals, no closed-form self-convolution) and tophat (uniform
// sphere; exact self-convolution from the sphere-overlap volume).
//
// Errors:
//   - ErrUnknownProfile — name not in the registry.
//   - ErrNoLam          — Lam called on a profile without one.
//   - ErrBadConfig      — unusable Config.
package profile
