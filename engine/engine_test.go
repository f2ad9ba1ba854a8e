package engine_test

import (
	"math/rand"
	"testing"

	"github.com/dimreduce/tsne/affinity"
	"github.com/dimreduce/tsne/engine"
	"github.com/dimreduce/tsne/gradient"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func twoBlobs(t *testing.T, nPerBlob, dims int) *mat.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	n := nPerBlob * 2
	x := mat.NewDense(n, dims, nil)
	for i := 0; i < n; i++ {
		center := 0.0
		if i >= nPerBlob {
			center = 20.0
		}
		for a := 0; a < dims; a++ {
			x.Set(i, a, center+rng.NormFloat64())
		}
	}
	return x
}

func smallConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.NIter = 15
	cfg.EarlyExaggerationIter = 5
	cfg.CallbacksEveryIters = 0
	cfg.Perplexity = 3 // must stay below N/3 for the 20-30 row inputs below
	return cfg
}

func TestDefaultConfig_ValidatesCleanly(t *testing.T) {
	t.Parallel()
	require.NoError(t, engine.DefaultConfig().Validate())
}

func TestConfig_RejectsBHWithDim1(t *testing.T) {
	t.Parallel()
	cfg := engine.DefaultConfig()
	cfg.Dim = 1
	cfg.NegativeGradientMethod = engine.MethodBH
	require.ErrorIs(t, cfg.Validate(), engine.ErrUnknownMethod)
}

func TestFit_RejectsEmptyInput(t *testing.T) {
	t.Parallel()
	_, err := engine.Fit(&mat.Dense{}, engine.DefaultConfig()) // zero value: 0x0 (mat.NewDense panics on zero dims)
	require.ErrorIs(t, err, engine.ErrEmptyInput)
}

func TestFit_ProducesEmbeddingOfRightShape(t *testing.T) {
	t.Parallel()
	x := twoBlobs(t, 15, 8)
	cfg := smallConfig()
	cfg.K = 5
	result, err := engine.Fit(x, cfg)
	require.NoError(t, err)
	n, d := result.Embedding.Dims()
	require.Equal(t, 30, n)
	require.Equal(t, 2, d)
}

func TestFit_SupportsFFT1D(t *testing.T) {
	t.Parallel()
	x := twoBlobs(t, 10, 6)
	cfg := smallConfig()
	cfg.Dim = 1
	cfg.NegativeGradientMethod = engine.MethodFFT
	cfg.K = 5
	result, err := engine.Fit(x, cfg)
	require.NoError(t, err)
	n, d := result.Embedding.Dims()
	require.Equal(t, 20, n)
	require.Equal(t, 1, d)
}

func TestResult_TransformRejectsColumnMismatch(t *testing.T) {
	t.Parallel()
	x := twoBlobs(t, 10, 5)
	cfg := smallConfig()
	cfg.K = 5
	result, err := engine.Fit(x, cfg)
	require.NoError(t, err)

	_, err = result.Transform(mat.NewDense(3, 9, nil))
	require.Error(t, err)
}

func TestResult_TransformProducesEmbeddingOfRightShape(t *testing.T) {
	t.Parallel()
	x := twoBlobs(t, 15, 6)
	cfg := smallConfig()
	cfg.K = 5
	result, err := engine.Fit(x, cfg)
	require.NoError(t, err)

	xNew := twoBlobs(t, 3, 6)
	yNew, err := result.Transform(xNew)
	require.NoError(t, err)
	n, d := yNew.Dims()
	require.Equal(t, 6, n)
	require.Equal(t, 2, d)
}

func TestClassify_MapsSentinelsToKinds(t *testing.T) {
	t.Parallel()
	require.Equal(t, engine.InvalidInput, engine.Classify(affinity.ErrPerplexityTooLarge))
	require.Equal(t, engine.NumericalFailure, engine.Classify(gradient.ErrNonFiniteGradient))
	require.Equal(t, engine.ConfigurationError, engine.Classify(gradient.ErrBadTheta))
	require.Equal(t, engine.Unknown, engine.Classify(nil))
}
