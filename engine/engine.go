package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/dimreduce/tsne/affinity"
	"github.com/dimreduce/tsne/gradient"
	"github.com/dimreduce/tsne/neighbors"
	"github.com/dimreduce/tsne/optimizer"
	"github.com/dimreduce/tsne/sparse"
	"gonum.org/v1/gonum/mat"
)

// Result is the handle Fit returns: the final embedding plus enough state
// (the reference data, its affinities, the neighbor index, and the Config
// from which Transform rebuilds the negative-gradient engine) to support a
// later Transform call.
type Result struct {
	Embedding *mat.Dense
	P         *sparse.Matrix
	State     optimizer.State
	Config    Config

	x   *mat.Dense
	idx neighbors.Index
}

// Fit wires a neighbor index, affinity calibration, a gradient.Engine, and
// optimizer.Run into the single entry point spec.md §6 names `fit`. X is
// N×D; the returned Result.Embedding is N×cfg.Dim.
func Fit(X *mat.Dense, cfg Config) (*Result, error) {
	n, dIn := X.Dims()
	if n == 0 || dIn == 0 {
		return nil, ErrEmptyInput
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.LearningRate == 0 {
		cfg.LearningRate = math.Max(200, float64(n)/12)
	}
	k := cfg.K
	if k == 0 {
		k = int(3 * cfg.Perplexity)
	}
	if k > n-1 {
		k = n - 1
	}
	if k < 1 {
		return nil, fmt.Errorf("engine: Fit: n=%d too small for perplexity %v: %w", n, cfg.Perplexity, affinity.ErrPerplexityTooLarge)
	}

	idx := resolveIndex(cfg.Neighbors)
	dist, err := idx.KNN(X, k, cfg.NJobs)
	if err != nil {
		return nil, fmt.Errorf("engine: Fit: %w", err)
	}
	P, err := affinity.Build(dist, cfg.Perplexity, cfg.Affinity)
	if err != nil {
		return nil, fmt.Errorf("engine: Fit: %w", err)
	}

	y := cfg.Init
	if y == nil {
		y = randomInit(n, cfg.Dim, cfg.Seed)
	} else {
		yn, yd := y.Dims()
		if yn != n || yd != cfg.Dim {
			return nil, fmt.Errorf("engine: Fit: Init is %dx%d, want %dx%d: %w", yn, yd, n, cfg.Dim, optimizer.ErrDimensionMismatch)
		}
		y = mat.DenseCopyOf(y)
	}

	neg, err := resolveEngine(cfg)
	if err != nil {
		return nil, err
	}

	optCfg := optimizer.Config{
		LearningRate:          cfg.LearningRate,
		NIter:                 cfg.NIter,
		EarlyExaggerationIter: cfg.EarlyExaggerationIter,
		EarlyExaggeration:     cfg.EarlyExaggeration,
		InitialMomentum:       cfg.InitialMomentum,
		FinalMomentum:         cfg.FinalMomentum,
		Dof:                   cfg.Dof,
		NJobs:                 cfg.NJobs,
		CallbacksEveryIters:   cfg.CallbacksEveryIters,
	}
	state, err := optimizer.Run(P, y, neg, optCfg, cfg.Observer)
	if err != nil {
		return nil, fmt.Errorf("engine: Fit: %w", err)
	}

	return &Result{
		Embedding: y,
		P:         P,
		State:     state,
		Config:    cfg,
		x:         mat.DenseCopyOf(X),
		idx:       idx,
	}, nil
}

// Transform optimizes XNew's rows against r's frozen reference embedding
// (spec.md §6 `transform`): the reference positions never move (see
// optimizer.Config.Freeze), they merely continue to act as attractors and
// repulsion mass for the new rows' affinities.
func (r *Result) Transform(xNew *mat.Dense) (*mat.Dense, error) {
	if r == nil || r.x == nil || r.idx == nil {
		return nil, ErrNotFitted
	}
	nNew, dIn := xNew.Dims()
	if nNew == 0 {
		return nil, ErrEmptyInput
	}
	nRef, dRef := r.x.Dims()
	if dIn != dRef {
		return nil, fmt.Errorf("engine: Transform: XNew has %d cols, reference has %d: %w", dIn, dRef, optimizer.ErrDimensionMismatch)
	}

	combined := stackRows(r.x, xNew)

	cfg := r.Config
	k := cfg.K
	if k == 0 {
		k = int(3 * cfg.Perplexity)
	}
	if k > nRef+nNew-1 {
		k = nRef + nNew - 1
	}
	if k < 1 {
		return nil, fmt.Errorf("engine: Transform: too few rows for perplexity %v: %w", cfg.Perplexity, affinity.ErrPerplexityTooLarge)
	}

	dist, err := r.idx.KNN(combined, k, cfg.NJobs)
	if err != nil {
		return nil, fmt.Errorf("engine: Transform: %w", err)
	}
	P, err := affinity.Build(dist, cfg.Perplexity, cfg.Affinity)
	if err != nil {
		return nil, fmt.Errorf("engine: Transform: %w", err)
	}

	y := stackRows(r.Embedding, randomInit(nNew, cfg.Dim, cfg.Seed+1))

	neg, err := resolveEngine(cfg)
	if err != nil {
		return nil, err
	}

	optCfg := optimizer.Config{
		LearningRate:          cfg.LearningRate,
		NIter:                 cfg.NIter,
		EarlyExaggerationIter: cfg.EarlyExaggerationIter,
		EarlyExaggeration:     cfg.EarlyExaggeration,
		InitialMomentum:       cfg.InitialMomentum,
		FinalMomentum:         cfg.FinalMomentum,
		Dof:                   cfg.Dof,
		NJobs:                 cfg.NJobs,
		CallbacksEveryIters:   cfg.CallbacksEveryIters,
		Freeze:                nRef,
	}
	if _, err := optimizer.Run(P, y, neg, optCfg, cfg.Observer); err != nil {
		return nil, fmt.Errorf("engine: Transform: %w", err)
	}

	out := mat.NewDense(nNew, cfg.Dim, nil)
	out.Copy(y.Slice(nRef, nRef+nNew, 0, cfg.Dim))
	return out, nil
}

func resolveIndex(kind NeighborsKind) neighbors.Index {
	if kind == NeighborsExact {
		return neighbors.NewExact()
	}
	return neighbors.NewApprox()
}

func resolveEngine(cfg Config) (gradient.Engine, error) {
	switch cfg.NegativeGradientMethod {
	case MethodBH:
		return gradient.NewBarnesHut(cfg.Theta, cfg.Dof)
	case MethodFFT:
		if cfg.Dim == 1 {
			return gradient.NewFFT1D(cfg.FFT, cfg.Dof)
		}
		return gradient.NewFFT2D(cfg.FFT, cfg.Dof)
	default:
		return nil, ErrUnknownMethod
	}
}

// stackRows vertically concatenates a and b, which must share a column
// count, into a freshly allocated matrix.
func stackRows(a, b *mat.Dense) *mat.Dense {
	na, d := a.Dims()
	nb, _ := b.Dims()
	out := mat.NewDense(na+nb, d, nil)
	for i := 0; i < na; i++ {
		out.SetRow(i, rowOf(a, i, d))
	}
	for i := 0; i < nb; i++ {
		out.SetRow(na+i, rowOf(b, i, d))
	}
	return out
}

func rowOf(m *mat.Dense, i, d int) []float64 {
	row := make([]float64, d)
	for a := 0; a < d; a++ {
		row[a] = m.At(i, a)
	}
	return row
}

// randomInit draws an n×d embedding from a small Gaussian (std 1e-4), the
// classical t-SNE starting point, reproducible for a fixed seed.
func randomInit(n, d int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	y := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for a := 0; a < d; a++ {
			y.Set(i, a, rng.NormFloat64()*1e-4)
		}
	}
	return y
}
