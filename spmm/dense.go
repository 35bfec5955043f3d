package spmm

import (
	"github.com/katalvlaran/hybridspmm/gemm"
	"github.com/katalvlaran/hybridspmm/matrix"
	"github.com/katalvlaran/hybridspmm/permute"
	"github.com/katalvlaran/hybridspmm/tiler"
)

// DenseTile computes a tile's contribution through materialization and
// the GEMM backend.
//
// Algorithm Outline:
//  1. Extract the tile as a standalone CSR with rebased columns.
//  2. Extract the matching contiguous W row slice (zero-padded past
//     W's extent).
//  3. Materialize the tile CSR to a dense Mtile×Ktile buffer.
//  4. Apply a local row permutation (per-row nonzero degree,
//     descending) to the buffer; then a local column permutation
//     (per-column nonzero degree of the row-permuted buffer,
//     descending) to the buffer AND the W slice. Clustering the work
//     this way improves the backend's effective load distribution.
//  5. Invoke the backend on the permuted operands.
//  6. Reverse only the row permutation on the result — the result's
//     columns are W's output columns and were never permuted.
//
// The returned block is Mtile×N with rows local to the tile.
// A backend failure surfaces wrapped (errors.Is(err,
// gemm.ErrBackendFailure)); the orchestrator decides whether to fall
// back.
func DenseTile(x *matrix.CSR, w *matrix.Dense, t tiler.Tile, backend gemm.Backend) (*matrix.Dense, error) {
	if backend == nil {
		return nil, gemm.ErrNilOperand
	}
	xt, err := ExtractTile(x, t)
	if err != nil {
		return nil, err
	}
	wt, err := ExtractWSlice(w, t)
	if err != nil {
		return nil, err
	}
	xd, err := Materialize(xt)
	if err != nil {
		return nil, err
	}

	// Local row permutation keyed on the tile CSR's row degrees.
	rowDegrees, err := permute.Degrees(xt, permute.Rows)
	if err != nil {
		return nil, err
	}
	rowPerm := permute.ByDegree(rowDegrees, true)
	xd, err = permute.DenseRows(xd, rowPerm)
	if err != nil {
		return nil, err
	}

	// Local column permutation keyed on the row-permuted buffer's
	// per-column nonzero counts; W's rows follow X's columns.
	colPerm := permute.ByDegree(denseColDegrees(xd), true)
	xd, err = permute.DenseCols(xd, colPerm)
	if err != nil {
		return nil, err
	}
	wt, err = permute.DenseRows(wt, colPerm)
	if err != nil {
		return nil, err
	}

	yt, err := backend.Multiply(xd, wt)
	if err != nil {
		return nil, err
	}

	return permute.UnDenseRows(yt, rowPerm)
}

// denseColDegrees counts nonzero entries per column of a dense buffer.
func denseColDegrees(d *matrix.Dense) []int {
	degrees := make([]int, d.Cols())
	for r := 0; r < d.Rows(); r++ {
		for c, v := range d.Row(r) {
			if v != 0 {
				degrees[c]++
			}
		}
	}

	return degrees
}
