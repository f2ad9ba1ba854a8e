package gradient_test

import (
	"math"
	"testing"

	"github.com/dimreduce/tsne/gradient"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewFFT1D_RejectsNonUnitDof(t *testing.T) {
	t.Parallel()
	_, err := gradient.NewFFT1D(gradient.DefaultFFTConfig(), 2)
	require.ErrorIs(t, err, gradient.ErrFFTRequiresDof1)
}

func TestNewFFT1D_RejectsBadConfig(t *testing.T) {
	t.Parallel()
	cfg := gradient.DefaultFFTConfig()
	cfg.NInterpolationPoints = 1
	_, err := gradient.NewFFT1D(cfg, 1)
	require.ErrorIs(t, err, gradient.ErrBadFFTConfig)
}

func TestFFT1D_RejectsNon1D(t *testing.T) {
	t.Parallel()
	eng, err := gradient.NewFFT1D(gradient.DefaultFFTConfig(), 1)
	require.NoError(t, err)
	y := mat.NewDense(3, 2, nil)
	out := mat.NewDense(3, 2, nil)
	_, err = eng.Negative(y, out, 1)
	require.ErrorIs(t, err, gradient.ErrUnsupportedDim)
}

func TestFFT1D_RepelsDistinctPoints(t *testing.T) {
	t.Parallel()
	eng, err := gradient.NewFFT1D(gradient.DefaultFFTConfig(), 1)
	require.NoError(t, err)

	y := mat.NewDense(4, 1, []float64{0, 1, 5, 6})
	out := mat.NewDense(4, 1, nil)
	z, err := eng.Negative(y, out, 1)
	require.NoError(t, err)
	require.False(t, math.IsNaN(z))

	for i := 0; i < 4; i++ {
		require.False(t, math.IsNaN(out.At(i, 0)))
		require.False(t, math.IsInf(out.At(i, 0), 0))
	}
	// The leftmost point's repulsive gradient term is positive, so a descent
	// step moves it further left; the rightmost point's is negative.
	require.Greater(t, out.At(0, 0), 0.0)
	require.Less(t, out.At(3, 0), 0.0)
}

func TestNewFFT2D_RejectsNonUnitDof(t *testing.T) {
	t.Parallel()
	_, err := gradient.NewFFT2D(gradient.DefaultFFTConfig(), 0.5)
	require.ErrorIs(t, err, gradient.ErrFFTRequiresDof1)
}

func TestFFT2D_RejectsNon2D(t *testing.T) {
	t.Parallel()
	eng, err := gradient.NewFFT2D(gradient.DefaultFFTConfig(), 1)
	require.NoError(t, err)
	y := mat.NewDense(3, 1, nil)
	out := mat.NewDense(3, 1, nil)
	_, err = eng.Negative(y, out, 1)
	require.ErrorIs(t, err, gradient.ErrUnsupportedDim)
}

func TestFFT2D_ProducesFiniteGradient(t *testing.T) {
	t.Parallel()
	eng, err := gradient.NewFFT2D(gradient.DefaultFFTConfig(), 1)
	require.NoError(t, err)

	y := mat.NewDense(6, 2, []float64{0, 0, 1, 0, 0, 1, 5, 5, 6, 5, 5, 6})
	out := mat.NewDense(6, 2, nil)
	z, err := eng.Negative(y, out, 1)
	require.NoError(t, err)
	require.False(t, math.IsNaN(z))
	for i := 0; i < 6; i++ {
		for a := 0; a < 2; a++ {
			require.False(t, math.IsNaN(out.At(i, a)))
			require.False(t, math.IsInf(out.At(i, a), 0))
		}
	}
}
