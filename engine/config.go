package engine

import (
	"github.com/dimreduce/tsne/affinity"
	"github.com/dimreduce/tsne/gradient"
	"github.com/dimreduce/tsne/optimizer"
	"gonum.org/v1/gonum/mat"
)

// Config is the full option table of spec.md §6, realized as a struct +
// DefaultConfig + Validate (the teacher's dtw.Options idiom).
type Config struct {
	// Dim is the embedding dimensionality, 1 or 2.
	Dim int

	Perplexity             float64
	LearningRate           float64 // 0 selects max(200, N/12)
	NIter                  int
	EarlyExaggerationIter  int
	EarlyExaggeration      float64
	InitialMomentum        float64
	FinalMomentum          float64
	Neighbors              NeighborsKind
	NegativeGradientMethod NegativeMethod
	Theta                  float64
	FFT                    gradient.FFTConfig
	Dof                    float64
	NJobs                  int
	CallbacksEveryIters    int
	Observer               optimizer.Observer

	// K is the neighbor count the Neighbors index builds per row. 0
	// selects min(N-1, 3*Perplexity), the standard t-SNE heuristic.
	K int

	// Affinity tunes the perplexity binary search (spec.md §4.1).
	Affinity affinity.Options

	// Init supplies the starting embedding. nil selects a small random
	// Gaussian init (scaled 1e-4, the classical t-SNE convention) seeded by
	// Seed — spec.md §1 treats initialization as an external collaborator;
	// this is Fit's concrete default for it, the same way Neighbors needs a
	// concrete default to be callable at all.
	Init *mat.Dense

	// Seed drives the default random initializer. Results are identical
	// for identical input and Seed under a single-thread NJobs (spec.md §8).
	Seed int64
}

// DefaultConfig returns spec.md §6's defaults. LearningRate and K are left
// at their auto-select sentinel (0); Fit resolves them once N is known.
func DefaultConfig() Config {
	return Config{
		Dim:                    2,
		Perplexity:             30,
		LearningRate:           0,
		NIter:                  750,
		EarlyExaggerationIter:  250,
		EarlyExaggeration:      12,
		InitialMomentum:        0.5,
		FinalMomentum:          0.8,
		Neighbors:              NeighborsApprox,
		NegativeGradientMethod: MethodBH,
		Theta:                  0.5,
		FFT:                    gradient.DefaultFFTConfig(),
		Dof:                    1,
		NJobs:                  0,
		CallbacksEveryIters:    50,
		K:                      0,
		Affinity:               affinity.DefaultOptions(),
		Seed:                   1,
	}
}

// Validate checks Config's fields, beyond what the subpackages themselves
// validate once their own inputs are known (N, for instance).
func (c Config) Validate() error {
	if c.Dim != 1 && c.Dim != 2 {
		return ErrBadConfig
	}
	if c.Perplexity <= 0 {
		return ErrBadConfig
	}
	if c.NIter <= 0 {
		return ErrBadConfig
	}
	if c.EarlyExaggerationIter < 0 || c.EarlyExaggerationIter > c.NIter {
		return ErrBadConfig
	}
	if c.EarlyExaggeration <= 0 {
		return ErrBadConfig
	}
	if c.Theta < 0 {
		return ErrBadConfig
	}
	if c.Dof <= 0 {
		return ErrBadConfig
	}
	if c.K < 0 {
		return ErrBadConfig
	}
	switch c.Neighbors {
	case NeighborsExact, NeighborsApprox:
	default:
		return ErrUnknownNeighbors
	}
	switch c.NegativeGradientMethod {
	case MethodBH, MethodFFT:
	default:
		return ErrUnknownMethod
	}
	if c.NegativeGradientMethod == MethodBH && c.Dim != 2 {
		// Barnes-Hut's quadtree is 2-D only (spec.md §4.2); 1-D embeddings
		// must use the FFT engine.
		return ErrUnknownMethod
	}
	return c.Affinity.Validate()
}
