package optimizer

import "errors"

var (
	// ErrBadConfig indicates an invalid Config field.
	ErrBadConfig = errors.New("optimizer: invalid configuration")

	// ErrDimensionMismatch indicates P, y, gains, or update disagree in shape.
	ErrDimensionMismatch = errors.New("optimizer: dimension mismatch")
)
