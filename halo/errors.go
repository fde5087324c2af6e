package halo

import (
	"errors"
	"fmt"
)

var (
	// ErrNGExceeded indicates a target galaxy density above the maximum the
	// occupation model can reach; use errors.As with *NGExceededError to
	// recover the achievable maximum.
	ErrNGExceeded = errors.New("halo: target galaxy density exceeds occupation maximum")

	// ErrBadConfig indicates an invalid pipeline configuration.
	ErrBadConfig = errors.New("halo: invalid configuration")
)

// NGExceededError reports an infeasible density target together with the
// maximum density the current occupation model can produce.
type NGExceededError struct {
	Target float64
	Max    float64
}

// Error implements error.
func (e *NGExceededError) Error() string {
	return fmt.Sprintf("%v: ng = %g, maximum = %g", ErrNGExceeded, e.Target, e.Max)
}

// Unwrap lets errors.Is match ErrNGExceeded.
func (e *NGExceededError) Unwrap() error { return ErrNGExceeded }
