package sparse

import "errors"

// Sentinel errors for sparse.Matrix construction and validation.
var (
	// ErrEmptyMatrix indicates a matrix with zero rows was requested.
	ErrEmptyMatrix = errors.New("sparse: matrix must have at least one row")

	// ErrBadIndptr indicates Indptr is malformed: wrong length, not
	// starting at zero, or not non-decreasing.
	ErrBadIndptr = errors.New("sparse: indptr is malformed")

	// ErrIndicesValuesMismatch indicates len(Indices) != len(Values), or
	// either disagrees with Indptr[N].
	ErrIndicesValuesMismatch = errors.New("sparse: indices/values length mismatch")

	// ErrColumnOutOfRange indicates a stored column index is outside [0,N).
	ErrColumnOutOfRange = errors.New("sparse: column index out of range")

	// ErrSelfEntry indicates a diagonal (i==j) entry was stored.
	ErrSelfEntry = errors.New("sparse: self entry not allowed")

	// ErrAsymmetric indicates P[i][j] and P[j][i] disagree beyond tolerance.
	ErrAsymmetric = errors.New("sparse: matrix is not symmetric within tolerance")

	// ErrRowSumOutOfRange indicates a row's mass does not sum to ~1/N.
	ErrRowSumOutOfRange = errors.New("sparse: row sum outside expected tolerance")

	// ErrNonFinite indicates a NaN or Inf value was stored.
	ErrNonFinite = errors.New("sparse: non-finite value")
)
