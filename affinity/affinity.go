package affinity

import (
	"fmt"
	"math"

	"github.com/dimreduce/tsne/internal/parallel"
	"github.com/dimreduce/tsne/sparse"
)

// Epsilon guards the zero-division and log(0) edge cases in the bandwidth
// search and row normalization (spec.md §4.1).
const Epsilon = 1e-12

// Build calibrates one Gaussian bandwidth β per row of dist so that row i's
// conditional distribution has entropy log(perplexity) within opts.Tolerance
// (spec.md §4.1), normalizes each row, then symmetrizes the result into the
// sparse matrix gradient.Positive consumes.
//
// Rows are calibrated independently and in parallel (bounded by
// opts.NJobs); there is no cross-row state.
func Build(dist Distances, perplexity float64, opts Options) (*sparse.Matrix, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	n := dist.N()
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if len(dist.Dist) != n {
		return nil, ErrRaggedRows
	}
	if perplexity >= float64(n)/3 {
		return nil, fmt.Errorf("affinity: Build: perplexity %v, n %d: %w", perplexity, n, ErrPerplexityTooLarge)
	}

	rows := make([][]sparse.Entry, n)
	logTarget := math.Log(perplexity)

	runErr := parallel.For(n, opts.NJobs, func(i int) error {
		neighbors := dist.Indices[i]
		d := dist.Dist[i]
		if len(neighbors) != len(d) {
			return ErrRaggedRows
		}
		k := len(neighbors)
		if k == 0 {
			rows[i] = nil
			return nil
		}

		p := make([]float64, k)
		for _, dv := range d {
			if math.IsNaN(dv) || math.IsInf(dv, 0) || dv < 0 {
				return ErrNonFiniteDistance
			}
		}

		beta := 1.0
		betaMin, betaMax := math.Inf(-1), math.Inf(1)
		for iter := 0; iter < opts.MaxIter; iter++ {
			var sumP, sumDP float64
			for j, dv := range d {
				pv := math.Exp(-dv * beta)
				p[j] = pv
				sumP += pv
				sumDP += dv * pv
			}
			if sumP < Epsilon {
				sumP = Epsilon
			}
			h := math.Log(sumP) + beta*sumDP/sumP
			hDiff := h - logTarget
			if math.Abs(hDiff) < opts.Tolerance {
				break
			}
			if hDiff > 0 {
				betaMin = beta
				if math.IsInf(betaMax, 1) {
					beta *= 2
				} else {
					beta = (beta + betaMax) / 2
				}
			} else {
				betaMax = beta
				if math.IsInf(betaMin, -1) {
					beta /= 2
				} else {
					beta = (beta + betaMin) / 2
				}
			}
		}

		var sumP float64
		for _, pv := range p {
			sumP += pv
		}
		sumP += Epsilon

		row := make([]sparse.Entry, 0, k)
		for j, pv := range p {
			row = append(row, sparse.Entry{Col: neighbors[j], Val: pv / sumP})
		}
		rows[i] = row
		return nil
	})
	if runErr != nil {
		return nil, runErr
	}

	asym, err := sparse.NewFromRows(n, rows)
	if err != nil {
		return nil, fmt.Errorf("affinity: Build: %w", err)
	}
	sym, err := sparse.Symmetrize(asym)
	if err != nil {
		return nil, fmt.Errorf("affinity: Build: %w", err)
	}
	return sym, nil
}
