package mdfs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a Config field is out of range.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrShapeMismatch is returned when the matrix buffers do not match the
	// declared variable, trial and object counts.
	ErrShapeMismatch = errors.New("matrix shape mismatch")

	// ErrCodeOutOfRange is returned when a discretized code is outside [0, Divisions].
	ErrCodeOutOfRange = errors.New("code out of range")

	// ErrInvalidDecision is returned when the decision vector holds a value
	// other than 0 or 1, or only one class is present.
	ErrInvalidDecision = errors.New("invalid decision")

	// ErrUnsupportedLanes is returned for a lane width without a backend.
	ErrUnsupportedLanes = errors.New("unsupported lane width")
)

// ErrInvalidDimension indicates a tuple dimension outside [1, variables].
type ErrInvalidDimension struct {
	Dimension int
	Variables int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d (variables: %d)", e.Dimension, e.Variables)
}

func (e *ErrInvalidDimension) Unwrap() error { return ErrInvalidConfig }
