package permute

import (
	"sort"

	"github.com/katalvlaran/hybridspmm/matrix"
)

// CSRRows returns a new CSR whose row r contains the original row
// p.new2old[r]. Only row order changes: each row's entries are reused
// as-is, so the canonical in-row column order is preserved for free.
//
// Algorithm (two passes, mirroring the counting-sort structure):
//  1. count: new rowPtr from the lengths of the gathered old rows
//  2. copy:  gather each old row's colIndex/values span verbatim
//
// Complexity: O(rows + nnz).
// Errors: ErrNilMatrix, ErrSizeMismatch (p.Len() != x.Rows()).
func CSRRows(x *matrix.CSR, p *Permutation) (*matrix.CSR, error) {
	if x == nil {
		return nil, ErrNilMatrix
	}
	if p.Len() != x.Rows() {
		return nil, ErrSizeMismatch
	}

	srcPtr, srcCol, srcVal := x.RowPtr(), x.ColIndex(), x.Values()
	rowPtr := make([]int, x.Rows()+1)
	for newRow := 0; newRow < x.Rows(); newRow++ {
		oldRow := p.new2old[newRow]
		rowPtr[newRow+1] = rowPtr[newRow] + (srcPtr[oldRow+1] - srcPtr[oldRow])
	}

	colIndex := make([]int, x.NNZ())
	values := make([]float32, x.NNZ())
	for newRow := 0; newRow < x.Rows(); newRow++ {
		oldRow := p.new2old[newRow]
		n := copy(colIndex[rowPtr[newRow]:rowPtr[newRow+1]], srcCol[srcPtr[oldRow]:srcPtr[oldRow+1]])
		copy(values[rowPtr[newRow]:rowPtr[newRow]+n], srcVal[srcPtr[oldRow]:srcPtr[oldRow+1]])
	}

	return matrix.RawCSR(x.Rows(), x.Cols(), rowPtr, colIndex, values), nil
}

// UnCSRRows reverses CSRRows with the same Permutation value:
// UnCSRRows(CSRRows(x, p), p) == x exactly, since only index bookkeeping
// moves, never arithmetic.
func UnCSRRows(x *matrix.CSR, p *Permutation) (*matrix.CSR, error) {
	return CSRRows(x, p.Inverse())
}

// CSRCols returns a new CSR where every stored entry's column index is
// remapped via old2new. Because remapping scrambles in-row order, each
// affected row is re-sorted by column index to restore the canonical
// CSR invariant before the matrix is handed to another component.
//
// Complexity: O(nnz log k) where k is the widest row.
// Errors: ErrNilMatrix, ErrSizeMismatch (p.Len() != x.Cols()).
func CSRCols(x *matrix.CSR, p *Permutation) (*matrix.CSR, error) {
	if x == nil {
		return nil, ErrNilMatrix
	}
	if p.Len() != x.Cols() {
		return nil, ErrSizeMismatch
	}

	srcPtr := x.RowPtr()
	rowPtr := append([]int(nil), srcPtr...) // row structure is unchanged
	colIndex := make([]int, x.NNZ())
	values := append([]float32(nil), x.Values()...)
	for i, oldCol := range x.ColIndex() {
		colIndex[i] = p.old2new[oldCol]
	}

	// Restore strictly-increasing columns within each row.
	for r := 0; r < x.Rows(); r++ {
		sortRowSpan(colIndex, values, rowPtr[r], rowPtr[r+1])
	}

	return matrix.RawCSR(x.Rows(), x.Cols(), rowPtr, colIndex, values), nil
}

// UnCSRCols reverses CSRCols with the same Permutation value.
func UnCSRCols(x *matrix.CSR, p *Permutation) (*matrix.CSR, error) {
	return CSRCols(x, p.Inverse())
}

// DenseRows returns a new Dense whose row r is the original row
// p.new2old[r] (a row gather).
// Complexity: O(rows·cols).
// Errors: ErrNilMatrix, ErrSizeMismatch (p.Len() != d.Rows()).
func DenseRows(d *matrix.Dense, p *Permutation) (*matrix.Dense, error) {
	if d == nil {
		return nil, ErrNilMatrix
	}
	if p.Len() != d.Rows() {
		return nil, ErrSizeMismatch
	}

	out, err := matrix.NewDense(d.Rows(), d.Cols())
	if err != nil {
		return nil, err
	}
	for newRow := 0; newRow < d.Rows(); newRow++ {
		copy(out.Row(newRow), d.Row(p.new2old[newRow]))
	}

	return out, nil
}

// UnDenseRows reverses DenseRows with the same Permutation value:
// UnDenseRows(DenseRows(d, p), p) == d exactly.
func UnDenseRows(d *matrix.Dense, p *Permutation) (*matrix.Dense, error) {
	return DenseRows(d, p.Inverse())
}

// DenseCols returns a new Dense whose column c is the original column
// p.new2old[c] (a per-row column gather).
// Complexity: O(rows·cols).
// Errors: ErrNilMatrix, ErrSizeMismatch (p.Len() != d.Cols()).
func DenseCols(d *matrix.Dense, p *Permutation) (*matrix.Dense, error) {
	if d == nil {
		return nil, ErrNilMatrix
	}
	if p.Len() != d.Cols() {
		return nil, ErrSizeMismatch
	}

	out, err := matrix.NewDense(d.Rows(), d.Cols())
	if err != nil {
		return nil, err
	}
	for r := 0; r < d.Rows(); r++ {
		src, dst := d.Row(r), out.Row(r)
		for newCol := 0; newCol < d.Cols(); newCol++ {
			dst[newCol] = src[p.new2old[newCol]]
		}
	}

	return out, nil
}

// UnDenseCols reverses DenseCols with the same Permutation value.
func UnDenseCols(d *matrix.Dense, p *Permutation) (*matrix.Dense, error) {
	return DenseCols(d, p.Inverse())
}

// sortRowSpan co-sorts colIndex[start:end] and values[start:end] by
// column index. Within a row columns are unique, so no tie-break is
// needed.
func sortRowSpan(colIndex []int, values []float32, start, end int) {
	if end-start < 2 {
		return
	}
	span := make([]int, end-start)
	for i := range span {
		span[i] = start + i
	}
	sort.Slice(span, func(a, b int) bool {
		return colIndex[span[a]] < colIndex[span[b]]
	})

	sortedCols := make([]int, end-start)
	sortedVals := make([]float32, end-start)
	for i, idx := range span {
		sortedCols[i] = colIndex[idx]
		sortedVals[i] = values[idx]
	}
	copy(colIndex[start:end], sortedCols)
	copy(values[start:end], sortedVals)
}
