package neighbors

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/dimreduce/tsne/affinity"
	"github.com/dimreduce/tsne/internal/parallel"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Approx is a k-d-tree-backed Index, trading exactness for sub-quadratic
// query time on the row count that matters for large N.
type Approx struct{}

// NewApprox constructs a k-d-tree-backed Index.
func NewApprox() Index { return Approx{} }

func (Approx) KNN(X *mat.Dense, k, nJobs int) (affinity.Distances, error) {
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return affinity.Distances{}, ErrEmptyInput
	}
	if k < 1 || k > n-1 {
		return affinity.Distances{}, ErrBadK
	}

	// points is handed to kdtree.New, which reorders it in place while
	// building; queries below always index through the untouched copy
	// (original) and recover a result's row via byKey, never via position
	// in points.
	original := make(kdtree.Points, n)
	byKey := make(map[string]int32, n)
	for i := 0; i < n; i++ {
		p := make(kdtree.Point, d)
		for a := 0; a < d; a++ {
			p[a] = X.At(i, a)
		}
		original[i] = p
		byKey[pointKey(p)] = int32(i)
	}
	points := append(kdtree.Points(nil), original...)
	tree := kdtree.New(points, false)

	idx := make([][]int32, n)
	dist := make([][]float64, n)

	err := parallel.For(n, nJobs, func(i int) error {
		keeper := kdtree.NewNKeeper(k + 1) // +1: the query point matches itself
		tree.NearestSet(keeper, original[i])

		type found struct {
			j int32
			d float64
		}
		results := make([]found, 0, keeper.Heap.Len())
		for _, cd := range keeper.Heap {
			q, ok := cd.Comparable.(kdtree.Point)
			if !ok {
				continue
			}
			j, ok := byKey[pointKey(q)]
			if !ok || j == int32(i) {
				continue // unresolved, or self-match excluded per the Index contract
			}
			results = append(results, found{j, cd.Dist})
		}
		sort.Slice(results, func(a, b int) bool { return results[a].d < results[b].d })
		if len(results) > k {
			results = results[:k]
		}

		rowIdx := make([]int32, len(results))
		rowDist := make([]float64, len(results))
		for p, r := range results {
			rowIdx[p], rowDist[p] = r.j, r.d
		}
		idx[i], dist[i] = rowIdx, rowDist
		return nil
	})
	if err != nil {
		return affinity.Distances{}, err
	}
	return affinity.Distances{Indices: idx, Dist: dist}, nil
}

// pointKey encodes a point's exact bit pattern as a map key so two points
// compare equal only when bit-identical, avoiding float equality pitfalls.
// Exact coordinate duplicates collide onto the same key (and so the same
// resolved row); acceptable for an approximate index, unlike Exact.
func pointKey(p kdtree.Point) string {
	buf := make([]byte, len(p)*8)
	for i, v := range p {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return string(buf)
}
