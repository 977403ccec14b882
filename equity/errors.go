package equity

import "errors"

var (
	// ErrInvalidTrials is returned when a simulation is asked for zero or fewer trials.
	ErrInvalidTrials = errors.New("trials must be positive")
	// ErrEmptyRange is returned when a range has no holdings to sample from.
	ErrEmptyRange = errors.New("range is empty")
)
