package gradient

import "errors"

// Sentinel errors surfaced by the gradient engines.
var (
	// ErrDimensionMismatch indicates y, out, or P disagree on row or column
	// count. NewBarnesHut also returns it for a non-positive dof.
	ErrDimensionMismatch = errors.New("gradient: dimension mismatch")

	// ErrUnsupportedDim indicates d is not 1 or 2 (spec.md §1: d ∈ {1,2}).
	ErrUnsupportedDim = errors.New("gradient: embedding dimension must be 1 or 2")

	// ErrNonFiniteGradient indicates a NaN or Inf appeared in a computed
	// gradient — fatal per spec.md §7 NumericalFailure.
	ErrNonFiniteGradient = errors.New("gradient: non-finite value in gradient")

	// ErrAllocation marks a recovered allocation failure inside a parallel
	// worker (spec.md §7 ResourceFailure: "allocation failure in a gradient
	// kernel, notably the per-thread scratch buffer").
	ErrAllocation = errors.New("gradient: allocation failure in worker")

	// ErrBadTheta indicates a negative Barnes–Hut threshold.
	ErrBadTheta = errors.New("gradient: theta must be >= 0")

	// ErrBadFFTConfig indicates an FFT interpolation parameter is invalid
	// (n_interp < 2, min_intervals < 1, or ints_per_interval <= 0).
	ErrBadFFTConfig = errors.New("gradient: invalid FFT interpolation configuration")

	// ErrFFTRequiresDof1 indicates an FFT engine was constructed with a
	// Student-t degrees-of-freedom other than 1. The FFT pipeline's closed-
	// form Z/gradient combination (spec.md §4.5 step 10) is derived
	// specifically for the classical Cauchy kernel; a generalized dof needs
	// Barnes-Hut instead.
	ErrFFTRequiresDof1 = errors.New("gradient: FFT engines require dof == 1")
)
