package quadtree

import "errors"

// Sentinel errors for quadtree construction.
var (
	// ErrEmptyPoints indicates Rebuild was called with zero points.
	ErrEmptyPoints = errors.New("quadtree: at least one point is required")

	// ErrNonFinitePoint indicates a point coordinate is NaN or Inf.
	ErrNonFinitePoint = errors.New("quadtree: non-finite coordinate")
)
