package neighbors_test

import (
	"testing"

	"github.com/dimreduce/tsne/neighbors"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func gridPoints() *mat.Dense {
	// Five points on a line: 0, 1, 2, 3, 4 (1-D embedded in a 1-column matrix).
	return mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
}

func TestExact_RejectsBadK(t *testing.T) {
	t.Parallel()
	_, err := neighbors.NewExact().KNN(gridPoints(), 0, 1)
	require.ErrorIs(t, err, neighbors.ErrBadK)

	_, err = neighbors.NewExact().KNN(gridPoints(), 10, 1)
	require.ErrorIs(t, err, neighbors.ErrBadK)
}

func TestExact_FindsNearestOnLine(t *testing.T) {
	t.Parallel()
	d, err := neighbors.NewExact().KNN(gridPoints(), 2, 1)
	require.NoError(t, err)
	require.Len(t, d.Indices[2], 2)
	// Point 2's two nearest neighbors are 1 and 3 (distance 1 each).
	require.ElementsMatch(t, []int32{1, 3}, d.Indices[2])
	for _, dist := range d.Dist[2] {
		require.InDelta(t, 1.0, dist, 1e-9)
	}
}

func TestExact_NeverIncludesSelf(t *testing.T) {
	t.Parallel()
	d, err := neighbors.NewExact().KNN(gridPoints(), 4, 1)
	require.NoError(t, err)
	for i, row := range d.Indices {
		for _, j := range row {
			require.NotEqual(t, int32(i), j)
		}
	}
}

func TestApprox_RejectsBadK(t *testing.T) {
	t.Parallel()
	_, err := neighbors.NewApprox().KNN(gridPoints(), 0, 1)
	require.ErrorIs(t, err, neighbors.ErrBadK)
}

func TestApprox_FindsNearestOnLine(t *testing.T) {
	t.Parallel()
	d, err := neighbors.NewApprox().KNN(gridPoints(), 2, 1)
	require.NoError(t, err)
	require.Len(t, d.Indices[2], 2)
	require.ElementsMatch(t, []int32{1, 3}, d.Indices[2])
}

func TestApprox_NeverIncludesSelf(t *testing.T) {
	t.Parallel()
	d, err := neighbors.NewApprox().KNN(gridPoints(), 3, 1)
	require.NoError(t, err)
	for i, row := range d.Indices {
		for _, j := range row {
			require.NotEqual(t, int32(i), j)
		}
	}
}

// TestApprox_DuplicateCoordinatesCollideOnSameRow pins the documented
// limitation of Approx's bit-pattern row lookup (see pointKey in approx.go):
// bit-identical rows resolve to the same row index, so a row with an exact
// duplicate elsewhere in X does not get k distinct neighbors back. Rows 0
// and 1 are bit-identical here.
func TestApprox_DuplicateCoordinatesCollideOnSameRow(t *testing.T) {
	t.Parallel()
	x := mat.NewDense(4, 1, []float64{0, 0, 5, 6})
	d, err := neighbors.NewApprox().KNN(x, 2, 1)
	require.NoError(t, err)

	// Row 0's duplicate (row 1) collides with row 1's own self-match under
	// the same map key, so row 0 comes back with a repeated column entry
	// instead of two distinct neighbors.
	require.Len(t, d.Indices[0], 2)
	require.Equal(t, d.Indices[0][0], d.Indices[0][1])

	// Row 1's genuine nearest neighbor (row 0) resolves to the same key as
	// row 1's own self-match, so it is incorrectly dropped by the self
	// filter, leaving row 1 with fewer than k neighbors.
	require.Len(t, d.Indices[1], 1)
}
