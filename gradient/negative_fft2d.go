package gradient

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

const nTerms2D = 4

// fft2D is the 2-D FFT-interpolation negative-gradient Engine (spec.md
// §4.5). Like fft1D it is restricted to dof == 1.
//
// The 2-D transform is computed as two passes of 1-D complex FFTs (rows,
// then columns) rather than a dedicated 2-D kernel — gonum's fourier
// package only exposes 1-D transforms, and a separable FFT is the standard
// way to build a 2-D one from them.
type fft2D struct {
	cfg FFTConfig
}

// NewFFT2D constructs a 2-D FFT interpolation Engine.
func NewFFT2D(cfg FFTConfig, dof float64) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dof != 1 {
		return nil, ErrFFTRequiresDof1
	}
	return &fft2D{cfg: cfg}, nil
}

func (f *fft2D) negativeEngine() {}

func (f *fft2D) Negative(y *mat.Dense, out *mat.Dense, nJobs int) (float64, error) {
	n, d := y.Dims()
	if d != 2 {
		return 0, ErrUnsupportedDim
	}
	outN, outD := out.Dims()
	if outN != n || outD != d {
		return 0, fmt.Errorf("gradient: fft2D.Negative: out is %dx%d, want %dx%d: %w", outN, outD, n, d, ErrDimensionMismatch)
	}

	lo1, hi1 := math.Inf(1), math.Inf(-1)
	lo2, hi2 := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		v1, v2 := y.At(i, 0), y.At(i, 1)
		if math.IsNaN(v1) || math.IsInf(v1, 0) || math.IsNaN(v2) || math.IsInf(v2, 0) {
			return 0, ErrNonFiniteGradient
		}
		lo1, hi1 = math.Min(lo1, v1), math.Max(hi1, v1)
		lo2, hi2 = math.Min(lo2, v2), math.Max(hi2, v2)
	}

	nInterp := f.cfg.NInterpolationPoints
	nBoxesX, cellWidthX := cellGrid(lo1, hi1, f.cfg.MinNumIntervals, f.cfg.IntsPerInterval)
	nBoxesY, cellWidthY := cellGrid(lo2, hi2, f.cfg.MinNumIntervals, f.cfg.IntsPerInterval)
	nNodesX, nNodesY := nBoxesX*nInterp, nBoxesY*nInterp
	nodeSpacingX, nodeSpacingY := cellWidthX/float64(nInterp), cellWidthY/float64(nInterp)
	localNodes := equispacedNodes(nInterp)

	boxX := make([]int, n)
	boxY := make([]int, n)
	wx := make([][]float64, n)
	wy := make([][]float64, n)
	for i := 0; i < n; i++ {
		v1, v2 := y.At(i, 0), y.At(i, 1)
		bx := clampBox(int((v1-lo1)/cellWidthX), nBoxesX)
		by := clampBox(int((v2-lo2)/cellWidthY), nBoxesY)
		lx := (v1 - (lo1 + float64(bx)*cellWidthX)) / cellWidthX
		ly := (v2 - (lo2 + float64(by)*cellWidthY)) / cellWidthY
		boxX[i], boxY[i] = bx, by
		wx[i] = lagrangeWeights(localNodes, lx, make([]float64, nInterp))
		wy[i] = lagrangeWeights(localNodes, ly, make([]float64, nInterp))
	}

	var grid [nTerms2D][]float64
	for t := range grid {
		grid[t] = make([]float64, nNodesX*nNodesY)
	}
	for i := 0; i < n; i++ {
		ch := charges2D(y.At(i, 0), y.At(i, 1))
		bx, by := boxX[i], boxY[i]
		for l := 0; l < nInterp; l++ {
			gy := by*nInterp + l
			for k := 0; k < nInterp; k++ {
				gx := bx*nInterp + k
				w := wx[i][k] * wy[i][l]
				idx := gy*nNodesX + gx
				for t := 0; t < nTerms2D; t++ {
					grid[t][idx] += w * ch[t]
				}
			}
		}
	}

	mx, my := 2*nNodesX, 2*nNodesY
	if mx == 0 || my == 0 {
		return 0, ErrNonFiniteGradient
	}
	fx, fy := fourier.NewCmplxFFT(mx), fourier.NewCmplxFFT(my)

	kernel := make([]complex128, mx*my)
	for gy := 0; gy < my; gy++ {
		iy := wrapIndex(gy, nNodesY)
		ry := float64(iy) * nodeSpacingY
		for gx := 0; gx < mx; gx++ {
			ix := wrapIndex(gx, nNodesX)
			rx := float64(ix) * nodeSpacingX
			c := 1 / (1 + rx*rx + ry*ry)
			kernel[gy*mx+gx] = complex(c*c, 0)
		}
	}
	fft2DForward(kernel, fx, fy, mx, my)

	potential := make([][]float64, nTerms2D)
	for t := 0; t < nTerms2D; t++ {
		padded := make([]complex128, mx*my)
		for gy := 0; gy < nNodesY; gy++ {
			srcRow := grid[t][gy*nNodesX : (gy+1)*nNodesX]
			dstRow := padded[gy*mx : gy*mx+nNodesX]
			for gx, v := range srcRow {
				dstRow[gx] = complex(v, 0)
			}
		}
		fft2DForward(padded, fx, fy, mx, my)

		product := make([]complex128, mx*my)
		for k := range product {
			product[k] = padded[k] * kernel[k]
		}
		fft2DInverse(product, fx, fy, mx, my)

		// The inverse transform is unnormalized: divide by the grid size.
		pot := make([]float64, nNodesX*nNodesY)
		for gy := 0; gy < nNodesY; gy++ {
			for gx := 0; gx < nNodesX; gx++ {
				pot[gy*nNodesX+gx] = real(product[gy*mx+gx]) / float64(mx*my)
			}
		}
		potential[t] = pot
	}

	phi := make([][nTerms2D]float64, n)
	var z float64
	for i := 0; i < n; i++ {
		bx, by := boxX[i], boxY[i]
		var p [nTerms2D]float64
		for l := 0; l < nInterp; l++ {
			gy := by*nInterp + l
			for k := 0; k < nInterp; k++ {
				gx := bx*nInterp + k
				w := wx[i][k] * wy[i][l]
				idx := gy*nNodesX + gx
				for t := 0; t < nTerms2D; t++ {
					p[t] += w * potential[t][idx]
				}
			}
		}
		phi[i] = p
		v1, v2 := y.At(i, 0), y.At(i, 1)
		z += (1+v1*v1+v2*v2)*p[0] - 2*(v1*p[1]+v2*p[2]) + p[3]
	}
	z -= float64(n)
	zDiv := z + Epsilon

	for i := 0; i < n; i++ {
		v1, v2 := y.At(i, 0), y.At(i, 1)
		p := phi[i]
		g1 := -(v1*p[0] - p[1]) / zDiv
		g2 := -(v2*p[0] - p[2]) / zDiv
		if math.IsNaN(g1) || math.IsInf(g1, 0) || math.IsNaN(g2) || math.IsInf(g2, 0) {
			return 0, ErrNonFiniteGradient
		}
		out.Set(i, 0, g1)
		out.Set(i, 1, g2)
	}
	return z, nil
}

func clampBox(b, nBoxes int) int {
	if b < 0 {
		return 0
	}
	if b >= nBoxes {
		return nBoxes - 1
	}
	return b
}

// wrapIndex maps a circulant-embedding grid coordinate in [0,2*half) to a
// signed offset in (-half,half], so kernel evaluation sees the true
// (possibly negative) grid distance instead of always-positive indices —
// this is the "symmetrized across four quadrants" construction of spec.md
// §4.5 step 7.
func wrapIndex(g, half int) int {
	if g <= half {
		return g
	}
	return g - 2*half
}

// fft2DForward and fft2DInverse apply a 1-D complex FFT along rows then
// columns (or the reverse order on the way back) to build a 2-D transform.
// Every stage below writes into a slice nothing else reads concurrently —
// the pointwise product step in Negative always allocates a fresh `product`
// slice rather than multiplying in place over one of its inputs, which is
// the aliasing mistake this package's FFT pipeline is built to avoid.
func fft2DForward(data []complex128, fx, fy *fourier.CmplxFFT, mx, my int) {
	row := make([]complex128, mx)
	for y := 0; y < my; y++ {
		copy(row, data[y*mx:(y+1)*mx])
		copy(data[y*mx:(y+1)*mx], fx.Coefficients(nil, row))
	}
	col := make([]complex128, my)
	for x := 0; x < mx; x++ {
		for y := 0; y < my; y++ {
			col[y] = data[y*mx+x]
		}
		out := fy.Coefficients(nil, col)
		for y := 0; y < my; y++ {
			data[y*mx+x] = out[y]
		}
	}
}

func fft2DInverse(data []complex128, fx, fy *fourier.CmplxFFT, mx, my int) {
	col := make([]complex128, my)
	for x := 0; x < mx; x++ {
		for y := 0; y < my; y++ {
			col[y] = data[y*mx+x]
		}
		out := fy.Sequence(nil, col)
		for y := 0; y < my; y++ {
			data[y*mx+x] = out[y]
		}
	}
	row := make([]complex128, mx)
	for y := 0; y < my; y++ {
		copy(row, data[y*mx:(y+1)*mx])
		copy(data[y*mx:(y+1)*mx], fx.Sequence(nil, row))
	}
}
