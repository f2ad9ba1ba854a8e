// Package sparse implements the compressed-row affinity matrix P used by
// t-SNE's positive gradient: a symmetric, row-stochastic-adjacent sparse
// matrix built once per Fit/Transform call and read (never mutated) by every
// optimizer iteration thereafter.
//
// 🚀 What is sparse.Matrix?
//
//	A CSR (compressed sparse row) container with three parallel slices:
//
//	  • Indptr  — N+1 row boundaries into Indices/Values
//	  • Indices — column index of each stored entry
//	  • Values  — the entry's probability mass
//
// ✨ Invariants (enforced by Validate, assumed everywhere else)
//
//   - Indptr is non-decreasing, Indptr[0] == 0, len(Indptr) == N+1
//   - no self entries (i == j never stored)
//   - after Symmetrize: P[i][j] == P[j][i] to machine precision, and each
//     row sums to ~1/N
//
// Row iteration is the hot path (consumed once per iteration by the
// positive-gradient engine), so callers get Row(i) back as two slice views —
// no copying, no per-call allocation.
package sparse
