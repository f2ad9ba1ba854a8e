package gradient_test

import (
	"math"
	"testing"

	"github.com/dimreduce/tsne/gradient"
	"github.com/dimreduce/tsne/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func symmetricRing(t *testing.T, n int, w float64) *sparse.Matrix {
	t.Helper()
	rows := make([][]sparse.Entry, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		rows[i] = append(rows[i], sparse.Entry{Col: int32(j), Val: w})
		rows[j] = append(rows[j], sparse.Entry{Col: int32(i), Val: w})
	}
	m, err := sparse.NewFromRows(n, rows)
	require.NoError(t, err)
	return m
}

func TestPositive_RejectsDimMismatch(t *testing.T) {
	t.Parallel()
	P := symmetricRing(t, 4, 0.1)
	y := mat.NewDense(3, 2, nil)
	out := mat.NewDense(3, 2, nil)
	_, _, err := gradient.Positive(P, y, 1, 1, out, false, 1)
	require.ErrorIs(t, err, gradient.ErrDimensionMismatch)
}

func TestPositive_ZeroForCoincidentPoints(t *testing.T) {
	t.Parallel()
	P := symmetricRing(t, 4, 0.25)
	y := mat.NewDense(4, 2, nil) // every point at the origin: diff is always zero
	out := mat.NewDense(4, 2, nil)
	_, _, err := gradient.Positive(P, y, 1, 1, out, false, 1)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.InDelta(t, 0, out.At(i, 0), 1e-12)
		require.InDelta(t, 0, out.At(i, 1), 1e-12)
	}
}

func TestPositive_PullsTowardNeighbor(t *testing.T) {
	t.Parallel()
	rows := [][]sparse.Entry{
		{{Col: 1, Val: 0.5}},
		{{Col: 0, Val: 0.5}},
	}
	P, err := sparse.NewFromRows(2, rows)
	require.NoError(t, err)

	y := mat.NewDense(2, 2, []float64{0, 0, 3, 0})
	out := mat.NewDense(2, 2, nil)
	_, _, err = gradient.Positive(P, y, 1, 1, out, false, 1)
	require.NoError(t, err)

	// Point 0 sits "left" of point 1; its attractive gradient term
	// P·q·(y0−y1) is negative, so a descent step pulls it rightward, and by
	// symmetry point 1's term is positive and it is pulled leftward.
	require.Less(t, out.At(0, 0), 0.0)
	require.Greater(t, out.At(1, 0), 0.0)
}

func TestPositive_EvalErrorMatchesSerialReference(t *testing.T) {
	t.Parallel()
	P := symmetricRing(t, 6, 0.3)
	y := mat.NewDense(6, 2, nil)
	for i := 0; i < 6; i++ {
		angle := 2 * math.Pi * float64(i) / 6
		y.Set(i, 0, math.Cos(angle))
		y.Set(i, 1, math.Sin(angle))
	}

	out := mat.NewDense(6, 2, nil)
	kl, pSum, err := gradient.Positive(P, y, 1, 1, out, true, 1)
	require.NoError(t, err)
	require.Greater(t, pSum, 0.0)
	require.False(t, math.IsNaN(kl))

	outParallel := mat.NewDense(6, 2, nil)
	klParallel, pSumParallel, err := gradient.Positive(P, y, 1, 1, outParallel, true, 4)
	require.NoError(t, err)
	require.InDelta(t, kl, klParallel, 1e-9)
	require.InDelta(t, pSum, pSumParallel, 1e-9)
	require.True(t, mat.EqualApprox(out, outParallel, 1e-9))
}

func TestPositive_ExaggerationScalesGradientLinearly(t *testing.T) {
	t.Parallel()
	rows := [][]sparse.Entry{
		{{Col: 1, Val: 0.5}},
		{{Col: 0, Val: 0.5}},
	}
	P, err := sparse.NewFromRows(2, rows)
	require.NoError(t, err)
	y := mat.NewDense(2, 2, []float64{0, 0, 3, 0})

	out1 := mat.NewDense(2, 2, nil)
	_, _, err = gradient.Positive(P, y, 1, 1, out1, false, 1)
	require.NoError(t, err)

	out12 := mat.NewDense(2, 2, nil)
	_, _, err = gradient.Positive(P, y, 1, 12, out12, false, 1)
	require.NoError(t, err)

	require.InDelta(t, 12*out1.At(0, 0), out12.At(0, 0), 1e-9)
}
