// Package gradient computes the two halves of the t-SNE cost gradient each
// optimizer iteration: the attractive (positive) term, summed over P's
// sparse neighbor lists, and the repulsive (negative) term, approximated
// either by Barnes–Hut summarization over a quadtree or by FFT-accelerated
// polynomial interpolation.
//
// 🚀 Engine polymorphism
//
//	spec.md §9 asks for a closed tagged variant over {BarnesHut, FFT1D,
//	FFT2D}. Go has no native sum type, so Engine is an interface with an
//	unexported marker method — only this package's three constructors
//	(NewBarnesHut, NewFFT1D, NewFFT2D) can produce an Engine, which is the
//	idiomatic Go stand-in for a closed set of implementations.
//
// ✨ Division of labor
//
//	Positive is engine-agnostic (it only ever reads P and y) and is called
//	once per iteration regardless of which Engine the caller chose for the
//	negative term. Engine.Negative returns the partition function Z, which
//	the optimizer needs to finish reporting the KL divergence.
package gradient
