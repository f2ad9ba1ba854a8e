package gradient

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

const nTerms1D = 3

// fft1D is the 1-D FFT-interpolation negative-gradient Engine (spec.md
// §4.5). It is restricted to dof == 1 (the classical Cauchy kernel) — the
// closed-form Z/gradient combination in step 10 is derived for that kernel
// specifically.
type fft1D struct {
	cfg FFTConfig
}

// NewFFT1D constructs a 1-D FFT interpolation Engine.
func NewFFT1D(cfg FFTConfig, dof float64) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dof != 1 {
		return nil, ErrFFTRequiresDof1
	}
	return &fft1D{cfg: cfg}, nil
}

func (f *fft1D) negativeEngine() {}

func (f *fft1D) Negative(y *mat.Dense, out *mat.Dense, nJobs int) (float64, error) {
	n, d := y.Dims()
	if d != 1 {
		return 0, ErrUnsupportedDim
	}
	outN, outD := out.Dims()
	if outN != n || outD != d {
		return 0, fmt.Errorf("gradient: fft1D.Negative: out is %dx%d, want %dx%d: %w", outN, outD, n, d, ErrDimensionMismatch)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		v := y.At(i, 0)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrNonFiniteGradient
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	nInterp := f.cfg.NInterpolationPoints
	nBoxes, cellWidth := cellGrid(lo, hi, f.cfg.MinNumIntervals, f.cfg.IntsPerInterval)
	nNodes := nBoxes * nInterp
	nodeSpacing := cellWidth / float64(nInterp)
	localNodes := equispacedNodes(nInterp)

	// box(i), localX(i) and the per-point weights are needed twice (scatter
	// and gather) with the same inputs, so compute them once and reuse.
	box := make([]int, n)
	weights := make([][]float64, n)
	for i := 0; i < n; i++ {
		v := y.At(i, 0)
		b := int((v - lo) / cellWidth)
		if b < 0 {
			b = 0
		}
		if b >= nBoxes {
			b = nBoxes - 1
		}
		localX := (v - (lo + float64(b)*cellWidth)) / cellWidth
		box[i] = b
		weights[i] = lagrangeWeights(localNodes, localX, make([]float64, nInterp))
	}

	// Step 6: scatter charges onto the grid. Every point can touch the same
	// grid node, so this accumulation is serial.
	var grid [nTerms1D][]float64
	for t := range grid {
		grid[t] = make([]float64, nNodes)
	}
	for i := 0; i < n; i++ {
		ch := charges1D(y.At(i, 0))
		b, w := box[i], weights[i]
		for k := 0; k < nInterp; k++ {
			g := b*nInterp + k
			for t := 0; t < nTerms1D; t++ {
				grid[t][g] += w[k] * ch[t]
			}
		}
	}

	// Steps 7-8: circulant-embed at double size, FFT the squared Cauchy
	// kernel 1/(1+r²)² once, then convolve each charge term against it. The
	// inverse transform is unnormalized, so its output is divided by m.
	m := 2 * nNodes
	if m == 0 {
		return 0, ErrNonFiniteGradient
	}
	fft := fourier.NewFFT(m)
	kernel := make([]float64, m)
	kernel[0] = 1
	for k := 1; k < nNodes; k++ {
		r := float64(k) * nodeSpacing
		v := 1 / ((1 + r*r) * (1 + r*r))
		kernel[k] = v
		kernel[m-k] = v
	}
	kernelCoef := fft.Coefficients(nil, kernel)

	potential := make([][]float64, nTerms1D)
	for t := 0; t < nTerms1D; t++ {
		padded := make([]float64, m)
		copy(padded, grid[t])
		coef := fft.Coefficients(nil, padded)

		product := make([]complex128, len(coef))
		for k := range coef {
			product[k] = coef[k] * kernelCoef[k]
		}
		conv := fft.Sequence(nil, product)
		for g := range conv {
			conv[g] /= float64(m)
		}
		potential[t] = conv[:nNodes]
	}

	// Step 9: gather potentials back to points with the same weights, then
	// combine into Z and the per-point gradient (step 10).
	phi := make([][nTerms1D]float64, n)
	var z float64
	for i := 0; i < n; i++ {
		b, w := box[i], weights[i]
		var p [nTerms1D]float64
		for k := 0; k < nInterp; k++ {
			g := b*nInterp + k
			for t := 0; t < nTerms1D; t++ {
				p[t] += w[k] * potential[t][g]
			}
		}
		phi[i] = p
		v := y.At(i, 0)
		z += (1+v*v)*p[0] - 2*v*p[1] + p[2]
	}
	z -= float64(n)
	zDiv := z + Epsilon

	for i := 0; i < n; i++ {
		v := y.At(i, 0)
		p := phi[i]
		g := -(v*p[0] - p[1]) / zDiv
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return 0, ErrNonFiniteGradient
		}
		out.Set(i, 0, g)
	}
	return z, nil
}
