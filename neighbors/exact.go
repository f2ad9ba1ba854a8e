package neighbors

import (
	"sort"

	"github.com/dimreduce/tsne/affinity"
	"github.com/dimreduce/tsne/internal/parallel"
	"gonum.org/v1/gonum/mat"
)

// Exact is a brute-force Index: every row is compared against every other
// row, O(N²·D) time. Beyond gonum's mat for its input type, it uses only
// the standard library.
type Exact struct{}

// NewExact constructs a brute-force Index.
func NewExact() Index { return Exact{} }

func (Exact) KNN(X *mat.Dense, k, nJobs int) (affinity.Distances, error) {
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return affinity.Distances{}, ErrEmptyInput
	}
	if k < 1 || k > n-1 {
		return affinity.Distances{}, ErrBadK
	}

	idx := make([][]int32, n)
	dist := make([][]float64, n)

	type candidate struct {
		j int32
		d float64
	}

	err := parallel.For(n, nJobs, func(i int) error {
		cands := make([]candidate, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			var sq float64
			for a := 0; a < d; a++ {
				diff := X.At(i, a) - X.At(j, a)
				sq += diff * diff
			}
			cands = append(cands, candidate{int32(j), sq})
		}
		sort.Slice(cands, func(a, b int) bool { return cands[a].d < cands[b].d })
		if len(cands) > k {
			cands = cands[:k]
		}
		rowIdx := make([]int32, len(cands))
		rowDist := make([]float64, len(cands))
		for p, c := range cands {
			rowIdx[p], rowDist[p] = c.j, c.d
		}
		idx[i], dist[i] = rowIdx, rowDist
		return nil
	})
	if err != nil {
		return affinity.Distances{}, err
	}
	return affinity.Distances{Indices: idx, Dist: dist}, nil
}
