package gradient

import (
	"fmt"
	"math"

	"github.com/dimreduce/tsne/internal/parallel"
	"github.com/dimreduce/tsne/sparse"
	"gonum.org/v1/gonum/mat"
)

// Epsilon guards the log(q_ij+Epsilon) and normalization divisions called
// for throughout spec.md §4.
const Epsilon = 1e-12

// Positive accumulates the attractive term Σⱼ P_ij·q_ij·(yᵢ−yⱼ) into out
// (added to whatever out already holds — the optimizer calls this after the
// negative gradient has populated out, per spec.md §4.6 step 4) for every
// row of y, in parallel over i.
//
// exaggeration scales P_ij at the point of use without mutating the
// (shared, read-only) sparse.Matrix — early exaggeration is purely a
// per-call multiplier, never a structural rebuild of P.
//
// When evalError is true, Positive also returns the unnormalized KL
// contribution Σ P_ij·log(P_ij/(q_ij+Epsilon)) and Σ P_ij (spec.md §4.3);
// the caller finishes the KL estimate once it knows Z from the negative
// gradient (see optimizer.State.KL).
//
// Complexity: O(nnz(P)·d) time, parallel over rows.
func Positive(P *sparse.Matrix, y *mat.Dense, dof, exaggeration float64, out *mat.Dense, evalError bool, nJobs int) (klRaw, pSum float64, err error) {
	n, d := y.Dims()
	if d != 1 && d != 2 {
		return 0, 0, ErrUnsupportedDim
	}
	if P.N != n {
		return 0, 0, fmt.Errorf("gradient: Positive: P has %d rows, y has %d: %w", P.N, n, ErrDimensionMismatch)
	}
	outN, outD := out.Dims()
	if outN != n || outD != d {
		return 0, 0, fmt.Errorf("gradient: Positive: out is %dx%d, want %dx%d: %w", outN, outD, n, d, ErrDimensionMismatch)
	}

	klPartial := make([]float64, n)
	pPartial := make([]float64, n)

	runErr := parallel.For(n, nJobs, func(i int) error {
		cols, vals := P.Row(i)
		if len(cols) == 0 {
			return nil
		}

		var diff [2]float64
		var klRow, pRow float64
		for k, j := range cols {
			p := vals[k] * exaggeration
			var sqDist float64
			for a := 0; a < d; a++ {
				diff[a] = y.At(i, a) - y.At(int(j), a)
				sqDist += diff[a] * diff[a]
			}
			q := studentQ(sqDist, dof)
			for a := 0; a < d; a++ {
				out.Set(i, a, out.At(i, a)+p*q*diff[a])
			}
			if evalError {
				rawP := vals[k]
				klRow += rawP * math.Log(rawP/(q+Epsilon))
				pRow += rawP
			}
		}
		if evalError {
			klPartial[i] = klRow
			pPartial[i] = pRow
		}
		return nil
	})
	if runErr != nil {
		return 0, 0, wrapParallelErr(runErr)
	}

	if !evalError {
		return 0, 0, nil
	}
	for i := 0; i < n; i++ {
		klRaw += klPartial[i]
		pSum += pPartial[i]
	}
	if math.IsNaN(klRaw) || math.IsInf(klRaw, 0) {
		return 0, 0, ErrNonFiniteGradient
	}
	return klRaw, pSum, nil
}
