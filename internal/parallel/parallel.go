// Package parallel provides a bounded, n_jobs-aware fan-out helper shared by
// affinity, gradient, and neighbors. It exists so none of those packages has
// to hand-roll its own worker-pool bookkeeping; they all want the same
// contract — split N independent units of work across at most W goroutines,
// where W is derived from the caller's n_jobs setting, and surface the first
// error without leaking goroutines.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerPanic wraps any panic recovered from inside a For worker — most
// notably an allocation failure in a per-worker scratch buffer (spec.md §7:
// ResourceFailure). Callers distinguish it from an ordinary returned error
// with errors.Is.
var ErrWorkerPanic = errors.New("parallel: worker panicked")

// Workers resolves an n_jobs setting to a concrete worker count.
//
//   - n > 0  -> n (explicit worker count)
//   - n == 0 -> runtime.NumCPU() (use every core)
//   - n < 0  -> runtime.NumCPU()+n, floored at 1 ("all but |n| cores")
func Workers(n int) int {
	cpu := runtime.NumCPU()
	switch {
	case n > 0:
		return n
	case n == 0:
		return cpu
	default:
		w := cpu + n // n is negative here
		if w < 1 {
			w = 1
		}
		return w
	}
}

// For runs fn(i) for every i in [0,n), fanning out across at most Workers(nJobs)
// goroutines. It returns the first non-nil error returned by any fn call; the
// remaining in-flight calls are allowed to finish (fn is expected to be a pure
// per-index computation with no shared mutable state beyond index i's own
// slot, per the positive/negative gradient contracts), but no further calls
// are started once an error has been observed.
//
// n <= 0 is a no-op. A single worker runs fn serially in index order, which
// callers rely on for single-thread determinism (spec.md §8: "fit on
// identical input with fixed seed produces identical embedding for
// single-thread").
func For(n, nJobs int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	workers := Workers(nJobs)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := guard(fn, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil // an earlier call failed: do not start fn(i)
			}
			return guard(fn, i)
		})
	}
	return g.Wait()
}

// guard runs fn(i), converting a recovered panic into ErrWorkerPanic so one
// misbehaving worker surfaces as an ordinary error instead of crashing the
// process underneath every other in-flight worker.
func guard(fn func(i int) error, i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: index %d: %v", ErrWorkerPanic, i, r)
		}
	}()
	return fn(i)
}
