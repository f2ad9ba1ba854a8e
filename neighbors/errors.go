package neighbors

import "errors"

var (
	// ErrBadK indicates a neighbor count outside [1, N-1].
	ErrBadK = errors.New("neighbors: k must be in [1, N-1]")

	// ErrEmptyInput indicates a zero-row or zero-column data matrix.
	ErrEmptyInput = errors.New("neighbors: empty input matrix")
)
