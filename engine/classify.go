package engine

import (
	"errors"

	"github.com/dimreduce/tsne/affinity"
	"github.com/dimreduce/tsne/gradient"
	"github.com/dimreduce/tsne/internal/parallel"
	"github.com/dimreduce/tsne/neighbors"
	"github.com/dimreduce/tsne/optimizer"
	"github.com/dimreduce/tsne/quadtree"
	"github.com/dimreduce/tsne/sparse"
)

// Classify maps err to the spec.md §7 error kind its originating sentinel
// belongs to, walking the error chain with errors.Is. Returns Unknown for
// any error not rooted in one of this module's sentinels.
func Classify(err error) Kind {
	if err == nil {
		return Unknown
	}
	for _, c := range invalidInputSentinels {
		if errors.Is(err, c) {
			return InvalidInput
		}
	}
	for _, c := range numericalFailureSentinels {
		if errors.Is(err, c) {
			return NumericalFailure
		}
	}
	for _, c := range resourceFailureSentinels {
		if errors.Is(err, c) {
			return ResourceFailure
		}
	}
	for _, c := range configurationErrorSentinels {
		if errors.Is(err, c) {
			return ConfigurationError
		}
	}
	return Unknown
}

var invalidInputSentinels = []error{
	ErrEmptyInput,
	affinity.ErrEmptyInput,
	affinity.ErrRaggedRows,
	affinity.ErrPerplexityTooLarge,
	affinity.ErrNonFiniteDistance,
	neighbors.ErrEmptyInput,
	neighbors.ErrBadK,
	sparse.ErrEmptyMatrix,
	sparse.ErrBadIndptr,
	sparse.ErrIndicesValuesMismatch,
	sparse.ErrColumnOutOfRange,
	sparse.ErrSelfEntry,
	sparse.ErrAsymmetric,
	sparse.ErrRowSumOutOfRange,
	sparse.ErrNonFinite,
	quadtree.ErrEmptyPoints,
	quadtree.ErrNonFinitePoint,
	gradient.ErrDimensionMismatch,
	gradient.ErrUnsupportedDim,
	optimizer.ErrDimensionMismatch,
}

var numericalFailureSentinels = []error{
	gradient.ErrNonFiniteGradient,
}

var resourceFailureSentinels = []error{
	gradient.ErrAllocation,
	parallel.ErrWorkerPanic,
}

var configurationErrorSentinels = []error{
	ErrBadConfig,
	ErrUnknownNeighbors,
	ErrUnknownMethod,
	ErrNotFitted,
	affinity.ErrBadOptions,
	gradient.ErrBadTheta,
	gradient.ErrBadFFTConfig,
	gradient.ErrFFTRequiresDof1,
	optimizer.ErrBadConfig,
}
