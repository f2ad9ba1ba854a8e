package optimizer

import "gonum.org/v1/gonum/mat"

// Observer is dispatched every Config.CallbacksEveryIters iterations with
// the current State and the live embedding. The embedding is guaranteed
// consistent (post-step) at the call point; an Observer that wants to keep
// the values must copy them (mat.DenseCopyOf or similar) — Run reuses the
// same *mat.Dense across iterations.
type Observer interface {
	OnIteration(s State, y *mat.Dense) Signal
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(s State, y *mat.Dense) Signal

// OnIteration calls f.
func (f ObserverFunc) OnIteration(s State, y *mat.Dense) Signal { return f(s, y) }

// Chain composes Observers, short-circuiting on the first Stop.
type Chain []Observer

// OnIteration dispatches to every Observer in order, stopping at the first
// that returns Stop.
func (c Chain) OnIteration(s State, y *mat.Dense) Signal {
	for _, o := range c {
		if o.OnIteration(s, y) == Stop {
			return Stop
		}
	}
	return Continue
}

// RecordObserver retains a copy of the embedding at every dispatch, letting
// a caller replay the optimization trajectory after the fact.
type RecordObserver struct {
	States     []State
	Embeddings []*mat.Dense
}

// OnIteration appends a snapshot and always continues.
func (r *RecordObserver) OnIteration(s State, y *mat.Dense) Signal {
	r.States = append(r.States, s)
	r.Embeddings = append(r.Embeddings, mat.DenseCopyOf(y))
	return Continue
}

// StopAtObserver halts Run once State.Iter reaches iter.
func StopAtObserver(iter int) Observer {
	return ObserverFunc(func(s State, _ *mat.Dense) Signal {
		if s.Iter >= iter {
			return Stop
		}
		return Continue
	})
}
