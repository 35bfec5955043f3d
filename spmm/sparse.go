package spmm

import (
	"runtime"
	"sync"

	"github.com/katalvlaran/hybridspmm/matrix"
	"github.com/katalvlaran/hybridspmm/tiler"
)

// SparseTile computes a tile's contribution directly from the original
// matrix's compressed-row data: for each row in the tile's row range and
// each stored nonzero whose column falls in the tile's column range,
// Y[row,:] += v · W[col,:]. No materialization, no permutation — this is
// the whole-matrix baseline algorithm scoped to one tile's index ranges.
//
// The returned block is Mtile×N with rows local to the tile.
// Complexity: O(nnzInTile · N + rowsInTile).
// Errors: ErrNilInput, ErrTileBounds, matrix.ErrDimensionMismatch.
func SparseTile(x *matrix.CSR, w *matrix.Dense, t tiler.Tile) (*matrix.Dense, error) {
	if x == nil || w == nil {
		return nil, ErrNilInput
	}
	if x.Cols() != w.Rows() {
		return nil, matrix.ErrDimensionMismatch
	}
	if err := checkTile(x, t); err != nil {
		return nil, err
	}

	block, err := matrix.NewDense(t.Rows(), w.Cols())
	if err != nil {
		return nil, err
	}

	rowPtr, colIndex, values := x.RowPtr(), x.ColIndex(), x.Values()
	for r := t.RowStart; r < t.RowEnd; r++ {
		out := block.Row(r - t.RowStart)
		for idx := rowPtr[r]; idx < rowPtr[r+1]; idx++ {
			c := colIndex[idx]
			if c < t.ColStart || c >= t.ColEnd {
				continue
			}
			v := values[idx]
			for j, wv := range w.Row(c) {
				out[j] += v * wv
			}
		}
	}

	return block, nil
}

// Baseline computes the full-matrix product Y = X·W by direct
// compressed-row accumulation, parallel across disjoint output-row
// strips. This is the tolerance reference every hybrid configuration is
// tested against.
//
// Complexity: O(nnz · N + rows).
// Errors: ErrNilInput, matrix.ErrDimensionMismatch.
func Baseline(x *matrix.CSR, w *matrix.Dense, workers int) (*matrix.Dense, error) {
	if x == nil || w == nil {
		return nil, ErrNilInput
	}
	if x.Cols() != w.Rows() {
		return nil, matrix.ErrDimensionMismatch
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	y, err := matrix.NewDense(x.Rows(), w.Cols())
	if err != nil {
		return nil, err
	}

	rowPtr, colIndex, values := x.RowPtr(), x.ColIndex(), x.Values()
	spmmRows := func(rowStart, rowEnd int) {
		for r := rowStart; r < rowEnd; r++ {
			out := y.Row(r)
			for idx := rowPtr[r]; idx < rowPtr[r+1]; idx++ {
				v := values[idx]
				for j, wv := range w.Row(colIndex[idx]) {
					out[j] += v * wv
				}
			}
		}
	}

	if workers == 1 || x.Rows() < 2*baselineRowsPerStrip {
		spmmRows(0, x.Rows())

		return y, nil
	}

	numStrips := (x.Rows() + baselineRowsPerStrip - 1) / baselineRowsPerStrip
	work := make(chan int, numStrips)
	for strip := 0; strip < numStrips; strip++ {
		work <- strip
	}
	close(work)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for strip := range work {
				rowStart := strip * baselineRowsPerStrip
				spmmRows(rowStart, min(rowStart+baselineRowsPerStrip, x.Rows()))
			}
		}()
	}
	wg.Wait()

	return y, nil
}

// baselineRowsPerStrip is the row count each baseline worker claims at a
// time; strips write disjoint output rows, so no locking is needed.
const baselineRowsPerStrip = 128
