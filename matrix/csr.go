package matrix

import "sort"

// CSR is a compressed sparse row matrix of float32 values in canonical
// form: rowPtr has length rows+1 with rowPtr[0]=0 and rowPtr[rows]=nnz,
// and within every row's slice [rowPtr[r], rowPtr[r+1]) the column
// indices are strictly increasing.
//
// A CSR is an independent value: every transformation in this module
// (filter, permute) produces a new instance, so multiple pipeline stages
// can hold distinct versions safely.
type CSR struct {
	rows, cols int
	rowPtr     []int     // length rows+1, monotone non-decreasing
	colIndex   []int     // length nnz, each entry in [0, cols)
	values     []float32 // length nnz, parallel to colIndex
}

// NewCSR constructs a CSR from already-canonical storage.
//
// Validation (in documented priority order):
//  1. rows, cols > 0                       → ErrBadShape
//  2. len(rowPtr) == rows+1 and
//     len(colIndex) == len(values) == rowPtr[rows] → ErrDimensionMismatch
//  3. rowPtr[0] == 0, monotone non-decreasing     → ErrNotCanonical
//  4. every colIndex entry in [0, cols)           → ErrOutOfRange
//  5. strictly increasing columns within each row → ErrNotCanonical
//
// No implicit sorting is performed: producing canonical input is the
// loader's job, not the store's.
// Complexity: O(rows + nnz). The slices are copied; the caller keeps
// ownership of its arguments.
func NewCSR(rows, cols int, rowPtr, colIndex []int, values []float32) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	if len(rowPtr) != rows+1 {
		return nil, ErrDimensionMismatch
	}
	if rowPtr[0] != 0 {
		return nil, ErrNotCanonical
	}
	nnz := rowPtr[rows]
	if len(colIndex) != nnz || len(values) != nnz {
		return nil, ErrDimensionMismatch
	}
	for r := 0; r < rows; r++ {
		if rowPtr[r+1] < rowPtr[r] {
			return nil, ErrNotCanonical
		}
		for idx := rowPtr[r]; idx < rowPtr[r+1]; idx++ {
			c := colIndex[idx]
			if c < 0 || c >= cols {
				return nil, ErrOutOfRange
			}
			if idx > rowPtr[r] && colIndex[idx-1] >= c {
				return nil, ErrNotCanonical
			}
		}
	}

	m := &CSR{
		rows:     rows,
		cols:     cols,
		rowPtr:   append([]int(nil), rowPtr...),
		colIndex: append([]int(nil), colIndex...),
		values:   append([]float32(nil), values...),
	}

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *CSR) Rows() int { return m.rows }

// Cols returns the number of columns. Complexity: O(1).
func (m *CSR) Cols() int { return m.cols }

// NNZ returns the number of stored nonzeros. Complexity: O(1).
func (m *CSR) NNZ() int { return m.rowPtr[m.rows] }

// RowSpan returns the half-open [start, end) span of row r inside
// ColIndex/Values, or ErrOutOfRange for an invalid row.
// Complexity: O(1).
func (m *CSR) RowSpan(r int) (start, end int, err error) {
	if r < 0 || r >= m.rows {
		return 0, 0, ErrOutOfRange
	}

	return m.rowPtr[r], m.rowPtr[r+1], nil
}

// RowPtr exposes the underlying row-pointer slice. It is shared, not
// copied: callers must treat it as read-only. Kernels in sibling
// packages rely on this zero-cost access.
func (m *CSR) RowPtr() []int { return m.rowPtr }

// ColIndex exposes the underlying column-index slice (read-only, shared).
func (m *CSR) ColIndex() []int { return m.colIndex }

// Values exposes the underlying value slice (read-only, shared).
func (m *CSR) Values() []float32 { return m.values }

// At returns the stored value at (r, c), or 0 if the position holds no
// nonzero. Invalid indices return ErrOutOfRange.
// Complexity: O(log k) for a row with k nonzeros (binary search over the
// sorted in-row columns).
func (m *CSR) At(r, c int) (float32, error) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return 0, ErrOutOfRange
	}
	start, end := m.rowPtr[r], m.rowPtr[r+1]
	span := m.colIndex[start:end]
	i := sort.SearchInts(span, c)
	if i < len(span) && span[i] == c {
		return m.values[start+i], nil
	}

	return 0, nil
}

// Clone returns a deep copy. Complexity: O(rows + nnz).
func (m *CSR) Clone() *CSR {
	return &CSR{
		rows:     m.rows,
		cols:     m.cols,
		rowPtr:   append([]int(nil), m.rowPtr...),
		colIndex: append([]int(nil), m.colIndex...),
		values:   append([]float32(nil), m.values...),
	}
}

// ToDense materializes the matrix into a freshly allocated Dense buffer:
// every position defaults to zero, stored nonzeros are written at their
// (row, col). Complexity: O(rows·cols + nnz).
func (m *CSR) ToDense() *Dense {
	d := mustDense(m.rows, m.cols)
	for r := 0; r < m.rows; r++ {
		row := d.Row(r)
		for idx := m.rowPtr[r]; idx < m.rowPtr[r+1]; idx++ {
			row[m.colIndex[idx]] = m.values[idx]
		}
	}

	return d
}

// FromDense builds a canonical CSR from d, storing every entry whose
// value is non-zero. Useful for tests and small fixtures; production
// loaders should construct CSR directly.
// Complexity: O(rows·cols).
func FromDense(d *Dense) (*CSR, error) {
	if d == nil {
		return nil, ErrBadShape
	}
	rows, cols := d.Rows(), d.Cols()
	rowPtr := make([]int, rows+1)
	var colIndex []int
	var values []float32
	for r := 0; r < rows; r++ {
		row := d.Row(r)
		for c := 0; c < cols; c++ {
			if row[c] != 0 {
				colIndex = append(colIndex, c)
				values = append(values, row[c])
			}
		}
		rowPtr[r+1] = len(colIndex)
	}

	return &CSR{rows: rows, cols: cols, rowPtr: rowPtr, colIndex: colIndex, values: values}, nil
}

// FilterValueThreshold returns a new CSR with every entry |v| < threshold
// dropped. Row order and in-row column order are untouched, so the result
// is canonical by construction. This is the concrete form of the optional
// pre-filter a caller may apply to X before tiling.
// Complexity: O(rows + nnz).
func FilterValueThreshold(m *CSR, threshold float32) *CSR {
	rowPtr := make([]int, m.rows+1)
	colIndex := make([]int, 0, m.NNZ())
	values := make([]float32, 0, m.NNZ())
	for r := 0; r < m.rows; r++ {
		for idx := m.rowPtr[r]; idx < m.rowPtr[r+1]; idx++ {
			v := m.values[idx]
			if v < 0 {
				v = -v
			}
			if v >= threshold {
				colIndex = append(colIndex, m.colIndex[idx])
				values = append(values, m.values[idx])
			}
		}
		rowPtr[r+1] = len(colIndex)
	}

	return &CSR{rows: m.rows, cols: m.cols, rowPtr: rowPtr, colIndex: colIndex, values: values}
}

// rawCSR assembles a CSR from pre-validated parts without copying.
// Internal fast path for transformations that build canonical storage
// themselves (permute package and tile extraction).
func rawCSR(rows, cols int, rowPtr, colIndex []int, values []float32) *CSR {
	return &CSR{rows: rows, cols: cols, rowPtr: rowPtr, colIndex: colIndex, values: values}
}

// RawCSR is the no-copy assembly entry for sibling packages that have
// already produced canonical storage (e.g. a row permutation that only
// reorders whole rows).
//
// Sharp edge — use NewCSR unless you are a transformation that just
// built the storage yourself:
//   - Input is NOT validated. Non-canonical input silently corrupts
//     every consumer downstream; the canonicality invariant is entirely
//     the caller's burden.
//   - The slices are adopted, not copied. The caller must hand over
//     ownership and never mutate them afterwards.
func RawCSR(rows, cols int, rowPtr, colIndex []int, values []float32) *CSR {
	return rawCSR(rows, cols, rowPtr, colIndex, values)
}
