package spmm

import (
	"github.com/katalvlaran/hybridspmm/matrix"
	"github.com/katalvlaran/hybridspmm/tiler"
)

// ExtractTile copies the tile's region of x into a standalone CSR with
// column indices rebased to start at 0. Two passes over the tile's rows:
// count per-row nonzeros inside the column range, then copy with
// rebasing. In-row column order is preserved, so the result is canonical.
//
// Complexity: O(rowsInTile + nnzInTileRows).
// Errors: ErrNilInput, ErrTileBounds.
func ExtractTile(x *matrix.CSR, t tiler.Tile) (*matrix.CSR, error) {
	if x == nil {
		return nil, ErrNilInput
	}
	if err := checkTile(x, t); err != nil {
		return nil, err
	}

	srcPtr, srcCol, srcVal := x.RowPtr(), x.ColIndex(), x.Values()
	rows := t.Rows()
	rowPtr := make([]int, rows+1)
	for r := t.RowStart; r < t.RowEnd; r++ {
		count := 0
		for idx := srcPtr[r]; idx < srcPtr[r+1]; idx++ {
			if c := srcCol[idx]; c >= t.ColStart && c < t.ColEnd {
				count++
			}
		}
		local := r - t.RowStart
		rowPtr[local+1] = rowPtr[local] + count
	}

	nnz := rowPtr[rows]
	colIndex := make([]int, nnz)
	values := make([]float32, nnz)
	write := 0
	for r := t.RowStart; r < t.RowEnd; r++ {
		for idx := srcPtr[r]; idx < srcPtr[r+1]; idx++ {
			if c := srcCol[idx]; c >= t.ColStart && c < t.ColEnd {
				colIndex[write] = c - t.ColStart // rebase to tile-local 0
				values[write] = srcVal[idx]
				write++
			}
		}
	}

	return matrix.RawCSR(rows, t.Cols(), rowPtr, colIndex, values), nil
}

// ExtractWSlice copies the contiguous W row range [t.ColStart, t.ColEnd)
// into a standalone dense buffer. Rows past W's extent stay zero, so a
// stale tile never reads out of range.
//
// Complexity: O(tileCols · N).
// Errors: ErrNilInput.
func ExtractWSlice(w *matrix.Dense, t tiler.Tile) (*matrix.Dense, error) {
	if w == nil {
		return nil, ErrNilInput
	}
	if t.Cols() <= 0 {
		return nil, ErrTileBounds
	}

	slice, err := matrix.NewDense(t.Cols(), w.Cols())
	if err != nil {
		return nil, err
	}
	for i := 0; i < t.Cols(); i++ {
		if orig := t.ColStart + i; orig >= 0 && orig < w.Rows() {
			copy(slice.Row(i), w.Row(orig))
		}
	}

	return slice, nil
}

// Materialize expands a (tile-local) CSR into a dense Mtile×Ktile
// buffer: every position defaults to zero, nonzeros land at their
// (row, col).
func Materialize(xt *matrix.CSR) (*matrix.Dense, error) {
	if xt == nil {
		return nil, ErrNilInput
	}

	return xt.ToDense(), nil
}

// checkTile validates tile bounds against the matrix extent.
func checkTile(x *matrix.CSR, t tiler.Tile) error {
	if t.RowStart < 0 || t.RowEnd > x.Rows() || t.RowStart >= t.RowEnd ||
		t.ColStart < 0 || t.ColEnd > x.Cols() || t.ColStart >= t.ColEnd {
		return ErrTileBounds
	}

	return nil
}
