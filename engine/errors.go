package engine

import "errors"

var (
	// ErrBadConfig indicates an invalid Config value not caught by a more
	// specific subpackage sentinel (spec.md §7 ConfigurationError).
	ErrBadConfig = errors.New("engine: invalid configuration")

	// ErrUnknownNeighbors indicates Config.Neighbors names neither "exact"
	// nor "approx".
	ErrUnknownNeighbors = errors.New("engine: unknown neighbors kind")

	// ErrUnknownMethod indicates Config.NegativeGradientMethod names
	// neither "bh" nor "fft", or names "bh" for a 1-D embedding.
	ErrUnknownMethod = errors.New("engine: unknown negative gradient method")

	// ErrEmptyInput indicates a zero-row or zero-column input matrix.
	ErrEmptyInput = errors.New("engine: empty input matrix")

	// ErrNotFitted indicates Transform was called on a Result whose Fit
	// call did not complete successfully.
	ErrNotFitted = errors.New("engine: result was not produced by a successful Fit")
)
