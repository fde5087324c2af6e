// Package optimize provides a derivative-free Nelder–Mead simplex
// minimizer for one-dimensional objectives.
//
// It exists for the smooth-cutoff branch of the halo-model M_min solver,
// where the objective |n_g(M_min) − n_g,target| is cheap to evaluate but
// has no usable derivative (every evaluation re-runs a pipeline integral).
//
// On iteration-cap exhaustion the best estimate found so far is still
// returned alongside ErrMaxIterations, so callers can decide whether a
// near-converged answer is acceptable.
package optimize
