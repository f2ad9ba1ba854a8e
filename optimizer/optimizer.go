package optimizer

import (
	"fmt"
	"math"

	"github.com/dimreduce/tsne/gradient"
	"github.com/dimreduce/tsne/sparse"
	"gonum.org/v1/gonum/mat"
)

const gainFloor = 0.01

// Run drives the momentum/gain descent loop for cfg.NIter iterations (or
// until an Observer returns Stop), mutating y in place (spec.md §4.6). P is
// read-only; neg computes the repulsive term each iteration.
//
// Per-iteration step order exactly follows spec.md §4.6: negative gradient
// (overwrites), positive gradient on exaggerated P (adds), scale by 4,
// per-coordinate gain update, momentum update, embedding update, recenter,
// dispatch. cfg.Freeze leaves that many leading rows out of the update step,
// and any nonzero Freeze skips recentering altogether (see Config.Freeze).
func Run(P *sparse.Matrix, y *mat.Dense, neg gradient.Engine, cfg Config, obs Observer) (State, error) {
	var state State
	if err := cfg.Validate(); err != nil {
		return state, err
	}
	n, d := y.Dims()
	if P.N != n {
		return state, fmt.Errorf("optimizer: Run: P has %d rows, y has %d: %w", P.N, n, ErrDimensionMismatch)
	}
	if cfg.Freeze < 0 || cfg.Freeze > n {
		return state, fmt.Errorf("optimizer: Run: freeze %d out of range [0,%d]: %w", cfg.Freeze, n, ErrDimensionMismatch)
	}

	gains := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for a := 0; a < d; a++ {
			gains.Set(i, a, 1)
		}
	}
	update := mat.NewDense(n, d, nil)
	grad := mat.NewDense(n, d, nil)

	for iter := 0; iter < cfg.NIter; iter++ {
		state.Iter = iter
		state.Momentum = cfg.InitialMomentum
		state.Exaggeration = cfg.EarlyExaggeration
		if iter >= cfg.EarlyExaggerationIter {
			state.Momentum = cfg.FinalMomentum
			state.Exaggeration = 1
		}

		z, err := neg.Negative(y, grad, cfg.NJobs)
		if err != nil {
			return state, err
		}

		dispatch := obs != nil && cfg.CallbacksEveryIters > 0 && iter%cfg.CallbacksEveryIters == 0
		klRaw, pSum, err := gradient.Positive(P, y, cfg.Dof, state.Exaggeration, grad, dispatch, cfg.NJobs)
		if err != nil {
			return state, err
		}
		if dispatch {
			state.KL = klRaw + pSum*math.Log(z+gradient.Epsilon)
			if math.IsNaN(state.KL) || math.IsInf(state.KL, 0) {
				return state, gradient.ErrNonFiniteGradient
			}
		}

		grad.Scale(4, grad)

		for i := cfg.Freeze; i < n; i++ {
			for a := 0; a < d; a++ {
				g := grad.At(i, a)
				u := update.At(i, a)
				gain := gains.At(i, a)
				if (g > 0) == (u > 0) {
					gain *= 0.8
				} else {
					gain += 0.2
				}
				if gain < gainFloor {
					gain = gainFloor
				}
				gains.Set(i, a, gain)

				newU := state.Momentum*u - cfg.LearningRate*gain*g
				update.Set(i, a, newU)
				y.Set(i, a, y.At(i, a)+newU)
			}
		}

		if cfg.Freeze == 0 {
			recenter(y)
		}

		if dispatch {
			if obs.OnIteration(state, y) == Stop {
				return state, nil
			}
		}
	}
	return state, nil
}

// recenter subtracts each column's mean in place (spec.md §4.6 step 9, §9
// "recentering numerical drift": kills translation drift and keeps the FFT
// bounding box small).
func recenter(y *mat.Dense) {
	n, d := y.Dims()
	if n == 0 {
		return
	}
	for a := 0; a < d; a++ {
		var mean float64
		for i := 0; i < n; i++ {
			mean += y.At(i, a)
		}
		mean /= float64(n)
		for i := 0; i < n; i++ {
			y.Set(i, a, y.At(i, a)-mean)
		}
	}
}
