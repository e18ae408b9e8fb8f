package sim

import "errors"

// Domain errors for recorded runs. The stepper itself never fails; these
// surface only from the Runner's configuration validation and state checks.
var (
	// ErrInvalidFrameDelta indicates a non-positive frame delta.
	ErrInvalidFrameDelta = errors.New("sim: frame delta must be positive")

	// ErrInvalidTicks indicates a non-positive tick count.
	ErrInvalidTicks = errors.New("sim: tick count must be positive")

	// ErrNoBodies indicates an empty body list.
	ErrNoBodies = errors.New("sim: no bodies to simulate")

	// ErrInvalidState indicates NaN or Inf crept into a body's state.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
)
