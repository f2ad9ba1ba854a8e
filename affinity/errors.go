package affinity

import "errors"

// Sentinel errors surfaced by Build.
var (
	// ErrEmptyInput indicates a zero-row distance table.
	ErrEmptyInput = errors.New("affinity: empty distance table")

	// ErrRaggedRows indicates a row's neighbor and distance slices disagree
	// in length.
	ErrRaggedRows = errors.New("affinity: neighbor and distance counts disagree")

	// ErrPerplexityTooLarge indicates perplexity >= N/3 (spec.md §7
	// InvalidInput), the point past which the calibration has too few
	// neighbors to be meaningful.
	ErrPerplexityTooLarge = errors.New("affinity: perplexity must be < N/3")

	// ErrNonFiniteDistance indicates a NaN, Inf, or negative distance.
	ErrNonFiniteDistance = errors.New("affinity: non-finite or negative distance")

	// ErrBadOptions indicates an invalid Options value (non-positive
	// tolerance or max iterations).
	ErrBadOptions = errors.New("affinity: invalid options")
)
