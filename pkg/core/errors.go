package core

import "errors"

var (
	// ErrOutOfRange reports a coordinate outside the grid bounds.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidDimensions reports a negative or oversized grid.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrInvalidInterval reports a non-positive tick interval.
	ErrInvalidInterval = errors.New("invalid tick interval")
	// ErrInvalidState reports an operation disallowed in the current run state.
	ErrInvalidState = errors.New("invalid state")
)
