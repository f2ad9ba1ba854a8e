// Package tsne (module dimreduce/tsne) is a high-performance t-distributed
// Stochastic Neighbor Embedding core: it projects high-dimensional points into
// a 1-D or 2-D embedding that preserves local neighborhood structure.
//
// 🚀 What is this module?
//
//	A parallel, allocation-conscious engine that brings together:
//
//	  • Affinity construction — per-point perplexity calibration into a sparse,
//	    symmetric probability matrix
//	  • Two interchangeable repulsive-force estimators — Barnes–Hut on a
//	    quadtree, and FFT-accelerated polynomial interpolation
//	  • A momentum + adaptive-gain gradient descent optimizer with an
//	    early-exaggeration schedule and a composable observer chain
//
// ✨ Design goals
//
//   - Deterministic single-thread runs, bounded-parallel multi-thread runs
//   - No hidden global state — every run owns its embedding, gains, and
//     update vectors, discarded when Fit/Transform returns
//   - Replaceable collaborators — neighbor search sits behind the small
//     neighbors.Index interface (engine.Fit chooses Exact or Approx by
//     Config.Neighbors), and a starting embedding can be passed in as
//     Config.Init
//
// Everything is organized under focused subpackages:
//
//	sparse/      — CSR affinity-matrix representation and symmetrization
//	quadtree/    — arena-backed 2-D spatial index for Barnes–Hut
//	affinity/    — perplexity binary search, row-parallel
//	gradient/    — Positive/NegativeBH/NegativeFFT1D/NegativeFFT2D engines
//	optimizer/   — momentum/gain descent loop and the observer chain
//	neighbors/   — the external neighbor-index collaborator contract
//	engine/      — the public façade: Fit and Transform
//
//	go get github.com/dimreduce/tsne/engine
package tsne
