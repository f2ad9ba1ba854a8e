package gradient_test

import (
	"math"
	"testing"

	"github.com/dimreduce/tsne/gradient"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewBarnesHut_RejectsNegativeTheta(t *testing.T) {
	t.Parallel()
	_, err := gradient.NewBarnesHut(-0.1, 1)
	require.ErrorIs(t, err, gradient.ErrBadTheta)
}

func TestBarnesHut_RejectsNon2D(t *testing.T) {
	t.Parallel()
	eng, err := gradient.NewBarnesHut(0.5, 1)
	require.NoError(t, err)
	y := mat.NewDense(3, 1, nil)
	out := mat.NewDense(3, 1, nil)
	_, err = eng.Negative(y, out, 1)
	require.ErrorIs(t, err, gradient.ErrUnsupportedDim)
}

func TestBarnesHut_RepelsDistinctPoints(t *testing.T) {
	t.Parallel()
	eng, err := gradient.NewBarnesHut(0, 1) // theta=0: exact force sum
	require.NoError(t, err)

	y := mat.NewDense(2, 2, []float64{0, 0, 1, 0})
	out := mat.NewDense(2, 2, nil)
	z, err := eng.Negative(y, out, 1)
	require.NoError(t, err)
	require.Greater(t, z, 0.0)

	// The repulsive gradient term of point 0 points toward point 1 (positive
	// x), so a descent step moves it away (negative x); vice versa for point 1.
	require.Greater(t, out.At(0, 0), 0.0)
	require.Less(t, out.At(1, 0), 0.0)
}

func TestBarnesHut_ExactThetaMatchesBruteForce(t *testing.T) {
	t.Parallel()
	pts := []float64{0, 0, 2, 0, 1, 2, -1, 1}
	y := mat.NewDense(4, 2, pts)

	eng, err := gradient.NewBarnesHut(0, 1)
	require.NoError(t, err)
	out := mat.NewDense(4, 2, nil)
	z, err := eng.Negative(y, out, 1)
	require.NoError(t, err)

	// Brute-force reference: same Student-t(dof=1) kernel, O(n^2).
	n, _ := y.Dims()
	want := mat.NewDense(n, 2, nil)
	var wantZ float64
	for i := 0; i < n; i++ {
		var gx, gy float64
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dx := y.At(i, 0) - y.At(j, 0)
			dy := y.At(i, 1) - y.At(j, 1)
			q := 1 / (1 + dx*dx + dy*dy)
			wantZ += q
			gx -= q * q * dx
			gy -= q * q * dy
		}
		want.Set(i, 0, gx)
		want.Set(i, 1, gy)
	}
	want.Scale(1/(wantZ+gradient.Epsilon), want)

	require.InDelta(t, wantZ, z, 1e-6)
	require.True(t, mat.EqualApprox(out, want, 1e-6))
}

func TestBarnesHut_RebuildsAcrossCalls(t *testing.T) {
	t.Parallel()
	eng, err := gradient.NewBarnesHut(0.5, 1)
	require.NoError(t, err)

	y1 := mat.NewDense(3, 2, []float64{0, 0, 1, 0, 0, 1})
	out1 := mat.NewDense(3, 2, nil)
	_, err = eng.Negative(y1, out1, 1)
	require.NoError(t, err)

	y2 := mat.NewDense(5, 2, []float64{0, 0, 1, 0, 0, 1, 2, 2, -1, -1})
	out2 := mat.NewDense(5, 2, nil)
	_, err = eng.Negative(y2, out2, 1)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.False(t, math.IsNaN(out2.At(i, 0)))
		require.False(t, math.IsNaN(out2.At(i, 1)))
	}
}
