package gradient

import "gonum.org/v1/gonum/mat"

// Engine computes the repulsive (negative) half of the t-SNE gradient. The
// three concrete implementations — barnesHut, fft1D, fft2D — are the only
// types satisfying Engine; negativeEngine is unexported specifically to
// close the set against outside implementations (see doc.go).
type Engine interface {
	// Negative overwrites every row of out with the repulsive term, already
	// normalized by the partition function Z (out need not be pre-zeroed by
	// the caller). It returns Z = Σ_ij q_ij for diagnostics. Positive is
	// called afterward and adds its own term on top.
	Negative(y *mat.Dense, out *mat.Dense, nJobs int) (z float64, err error)

	negativeEngine()
}

// FFTConfig tunes the FFT interpolation pipeline (spec.md §4.5).
//
// Fields:
//
//	NInterpolationPoints — Lagrange nodes per cell, per axis (default 3).
//	MinNumIntervals      — floor on the grid cell count per axis (default 10).
//	IntsPerInterval      — embedding units per grid cell (default 1).
type FFTConfig struct {
	NInterpolationPoints int
	MinNumIntervals      int
	IntsPerInterval      float64
}

// DefaultFFTConfig returns the tuning defaults from spec.md §4.5.
func DefaultFFTConfig() FFTConfig {
	return FFTConfig{
		NInterpolationPoints: 3,
		MinNumIntervals:      10,
		IntsPerInterval:      1,
	}
}

// Validate checks FFTConfig's fields are usable.
func (c FFTConfig) Validate() error {
	if c.NInterpolationPoints < 2 {
		return ErrBadFFTConfig
	}
	if c.MinNumIntervals < 1 {
		return ErrBadFFTConfig
	}
	if c.IntsPerInterval <= 0 {
		return ErrBadFFTConfig
	}
	return nil
}
