// Package concentration implements concentration–mass relations: the
// mapping from halo mass (and redshift) to the shape parameter of the
// halo density profile.
//
// Relations resolve by name through a registry:
//
//	rel, err := concentration.New("duffy08", cfg, nil)
//	c := rel.CM(masses)
//
// Shipped relations: duffy08 (power law in mass with redshift evolution,
// Duffy et al. 2008) and bullock01 (simplified Bullock et al. 2001 form,
// scaling with the nonlinear mass where nu = 1).
//
// Errors mirror the hod package: ErrUnknownModel, ErrUnknownParam,
// ErrBadParam, plus ErrBadConfig for an unusable Config.
package concentration
