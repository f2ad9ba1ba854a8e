package sparse

import (
	"fmt"
	"math"
	"sort"
)

// Epsilon guards divisions by a possibly-zero row sum during normalization
// and symmetrization, per spec.md §4.1 ("add EPSILON to avoid zero division").
const Epsilon = 1e-12

// NewFromRows compresses per-row entry lists into CSR form. It does not
// symmetrize — rows are taken as given, conditional distributions straight
// out of affinity calibration. Entries within a row may arrive in any column
// order; NewFromRows sorts them.
//
// Stage 1 (Validate): reject n <= 0 and rows with a self entry.
// Stage 2 (Compress): sort each row by column, flatten into Indices/Values.
// Complexity: O(total entries · log(max row width)).
func NewFromRows(n int, rows [][]Entry) (*Matrix, error) {
	if n <= 0 {
		return nil, ErrEmptyMatrix
	}
	if len(rows) != n {
		return nil, fmt.Errorf("sparse: NewFromRows: got %d rows, want %d: %w", len(rows), n, ErrBadIndptr)
	}

	indptr := make([]int32, n+1)
	var indices []int32
	var values []float64
	for i, row := range rows {
		sorted := append([]Entry(nil), row...) // copy: never mutate caller's slice
		sort.Slice(sorted, func(a, b int) bool { return sorted[a].Col < sorted[b].Col })
		for _, e := range sorted {
			if int(e.Col) == i {
				return nil, fmt.Errorf("sparse: NewFromRows: row %d: %w", i, ErrSelfEntry)
			}
			if e.Col < 0 || int(e.Col) >= n {
				return nil, fmt.Errorf("sparse: NewFromRows: row %d col %d: %w", i, e.Col, ErrColumnOutOfRange)
			}
			if math.IsNaN(e.Val) || math.IsInf(e.Val, 0) {
				return nil, fmt.Errorf("sparse: NewFromRows: row %d col %d: %w", i, e.Col, ErrNonFinite)
			}
			indices = append(indices, e.Col)
			values = append(values, e.Val)
		}
		indptr[i+1] = int32(len(indices))
	}

	return &Matrix{N: n, Indptr: indptr, Indices: indices, Values: values}, nil
}

// Symmetrize computes P ← (P + Pᵀ) / (2N) from asymmetric conditional rows,
// per spec.md §4.1. The result stores both triangles explicitly (design note
// §9: cache-friendly row iteration for the positive gradient), so callers
// should build from raw conditional rows and call Symmetrize exactly once.
//
// Stage 1 (Accumulate): for every stored (i,j,v), add v to both (i,j) and
// (j,i) accumulators — this realizes P[i][j]+P[j][i] without needing P[j][i]
// to already exist as a stored entry.
// Stage 2 (Normalize): divide every accumulated mass by 2N (+Epsilon).
// Stage 3 (Compress): rebuild CSR, sorted by column within each row.
//
// Complexity: O(nnz · log(nnz/N)) time, O(nnz) extra memory.
func Symmetrize(asym *Matrix) (*Matrix, error) {
	if asym == nil || asym.N <= 0 {
		return nil, ErrEmptyMatrix
	}
	n := asym.N
	type key struct{ i, j int32 }
	accum := make(map[key]float64, asym.NNZ()*2)
	for i := 0; i < n; i++ {
		cols, vals := asym.Row(i)
		for k, j := range cols {
			v := vals[k]
			accum[key{int32(i), j}] += v
			accum[key{j, int32(i)}] += v
		}
	}

	denom := 2*float64(n) + Epsilon
	rows := make([][]Entry, n)
	for k, v := range accum {
		rows[k.i] = append(rows[k.i], Entry{Col: k.j, Val: v / denom})
	}

	return NewFromRows(n, rows)
}

// Validate checks every invariant spec.md §3 and §8 attach to P: Indptr
// shape and monotonicity, column range, no self entries, symmetry to
// tolerance symTol, and each row summing to 1/N within rowSumTol (absolute).
//
// Pass symTol <= 0 or rowSumTol <= 0 to skip that particular check (useful
// before Symmetrize has run, when only structural invariants hold yet).
func (m *Matrix) Validate(symTol, rowSumTol float64) error {
	if m.N <= 0 {
		return ErrEmptyMatrix
	}
	if len(m.Indptr) != m.N+1 || m.Indptr[0] != 0 {
		return ErrBadIndptr
	}
	for i := 0; i < m.N; i++ {
		if m.Indptr[i+1] < m.Indptr[i] {
			return fmt.Errorf("sparse: Validate: row %d: %w", i, ErrBadIndptr)
		}
	}
	if int(m.Indptr[m.N]) != len(m.Indices) || len(m.Indices) != len(m.Values) {
		return ErrIndicesValuesMismatch
	}

	dense := make(map[[2]int32]float64, len(m.Values))
	for i := 0; i < m.N; i++ {
		cols, vals := m.Row(i)
		var rowSum float64
		for k, j := range cols {
			v := vals[k]
			if int(j) == i {
				return fmt.Errorf("sparse: Validate: row %d: %w", i, ErrSelfEntry)
			}
			if j < 0 || int(j) >= m.N {
				return fmt.Errorf("sparse: Validate: row %d col %d: %w", i, j, ErrColumnOutOfRange)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("sparse: Validate: row %d col %d: %w", i, j, ErrNonFinite)
			}
			rowSum += v
			dense[[2]int32{int32(i), j}] = v
		}
		if rowSumTol > 0 {
			target := 1.0 / float64(m.N)
			if math.Abs(rowSum-target) > rowSumTol {
				return fmt.Errorf("sparse: Validate: row %d sum %.6g want ~%.6g: %w", i, rowSum, target, ErrRowSumOutOfRange)
			}
		}
	}

	if symTol > 0 {
		for k, v := range dense {
			other, ok := dense[[2]int32{k[1], k[0]}]
			if !ok || math.Abs(v-other) > symTol {
				return fmt.Errorf("sparse: Validate: P[%d][%d]=%.9g P[%d][%d]=%.9g: %w", k[0], k[1], v, k[1], k[0], other, ErrAsymmetric)
			}
		}
	}

	return nil
}

// Sum returns the total mass Σ_ij P_ij, used by tests asserting the
// post-symmetrization normalization invariant (spec.md §8).
func (m *Matrix) Sum() float64 {
	var s float64
	for _, v := range m.Values {
		s += v
	}
	return s
}
