package rfi

import "errors"

var (
	// ErrConfiguration marks an invalid or unsupported configuration value.
	// It aborts the run for the affected grid.
	ErrConfiguration = errors.New("rfi: invalid configuration")

	// ErrConvergenceExceeded is reported in LoopResult.Err when a loop hit
	// its iteration cap before reaching a fixed point. It is informational:
	// processing continues with the mask reached so far.
	ErrConvergenceExceeded = errors.New("rfi: iteration cap reached before convergence")
)
