package sparse

// Entry is a single (column, value) pair used while assembling a Matrix row
// by row, before it has been compressed into CSR form.
type Entry struct {
	Col int32
	Val float64
}

// Matrix is a symmetric-after-Symmetrize, compressed-row sparse matrix.
//
// Indptr[i]:Indptr[i+1] bounds row i's entries inside Indices/Values.
// N is the row (and column) count; the matrix is always square.
type Matrix struct {
	N       int
	Indptr  []int32
	Indices []int32
	Values  []float64
}

// Row returns views (not copies) into the column indices and values stored
// for row i. The returned slices alias m's backing arrays and must not be
// retained past the next mutation of m (Matrix is otherwise immutable once
// built, so in practice this means: don't retain past the optimizer run).
//
// Complexity: O(1).
func (m *Matrix) Row(i int) (cols []int32, vals []float64) {
	lo, hi := m.Indptr[i], m.Indptr[i+1]
	return m.Indices[lo:hi], m.Values[lo:hi]
}

// NNZ returns the total number of stored entries.
// Complexity: O(1).
func (m *Matrix) NNZ() int {
	return len(m.Values)
}
