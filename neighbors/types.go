package neighbors

import (
	"github.com/dimreduce/tsne/affinity"
	"gonum.org/v1/gonum/mat"
)

// Index builds a k-nearest-neighbor table over X's rows, excluding each
// point from its own neighbor list, in the shape affinity.Build expects.
type Index interface {
	KNN(X *mat.Dense, k, nJobs int) (affinity.Distances, error)
}
