package spmm

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hybridspmm/gemm"
	"github.com/katalvlaran/hybridspmm/matrix"
	"github.com/katalvlaran/hybridspmm/permute"
	"github.com/katalvlaran/hybridspmm/tiler"
)

// Compute is the engine's single entry point: Y = X·W via
// density-adaptive tiling.
//
// The run either completes a full tile pass or fails outright; there is
// no partial-result checkpointing and no retry policy beyond the
// per-tile CPU fallback after a backend failure.
//
// Errors: ErrNilInput, matrix.ErrDimensionMismatch (X.Cols() !=
// W.Rows()), tiler config sentinels; backend failures are absorbed by
// the fallback and only reported through Metrics.
func Compute(x *matrix.CSR, w *matrix.Dense, opts Options) (*matrix.Dense, Metrics, error) {
	var metrics Metrics
	if x == nil || w == nil {
		return nil, metrics, ErrNilInput
	}
	if x.Cols() != w.Rows() {
		return nil, metrics, fmt.Errorf("spmm: X cols %d vs W rows %d: %w", x.Cols(), w.Rows(), matrix.ErrDimensionMismatch)
	}
	if err := opts.Tiling.Validate(); err != nil {
		return nil, metrics, err
	}
	backend := opts.Backend
	if backend == nil {
		backend = gemm.NewCPU(opts.Workers)
	}

	// Optional global permutations. Rows only relabel the output; the
	// column permutation must carry W's rows along to keep the product
	// unchanged.
	var rowPerm *permute.Permutation
	var err error
	if opts.PermuteRows {
		degrees, dErr := permute.Degrees(x, permute.Rows)
		if dErr != nil {
			return nil, metrics, dErr
		}
		rowPerm = permute.ByDegree(degrees, true)
		if x, err = permute.CSRRows(x, rowPerm); err != nil {
			return nil, metrics, err
		}
	}
	if opts.PermuteCols {
		degrees, dErr := permute.Degrees(x, permute.Cols)
		if dErr != nil {
			return nil, metrics, dErr
		}
		colPerm := permute.ByDegree(degrees, true)
		if x, err = permute.CSRCols(x, colPerm); err != nil {
			return nil, metrics, err
		}
		if w, err = permute.DenseRows(w, colPerm); err != nil {
			return nil, metrics, err
		}
	}

	tiles, err := tiler.MakeTiles(x, opts.Tiling)
	if err != nil {
		return nil, metrics, err
	}
	dense, sparse, err := tiler.Classify(tiles, opts.Tiling.DenseThreshold)
	if err != nil {
		return nil, metrics, err
	}
	metrics.TileCount = len(tiles)
	metrics.DenseTiles = dense
	metrics.SparseTiles = sparse

	y, err := matrix.NewDense(x.Rows(), w.Cols())
	if err != nil {
		return nil, metrics, err
	}

	// Deterministic row-major tile order; accumulation is a plain add
	// and tile row/column ranges never overlap, so each nonzero's
	// contribution lands exactly once.
	for _, t := range tiles {
		if t.NNZ == 0 {
			continue // an empty tile contributes nothing either way
		}

		var block *matrix.Dense
		if t.Dense {
			block, err = DenseTile(x, w, t, backend)
			if errors.Is(err, gemm.ErrBackendFailure) {
				// Recoverable: one tile's device failure must not
				// invalidate the run. Recompute on the CPU reference.
				block, err = DenseTile(x, w, t, gemm.NewCPU(opts.Workers))
				if err == nil {
					metrics.BackendFallbacks++
				}
			}
		} else {
			block, err = SparseTile(x, w, t)
		}
		if err != nil {
			return nil, metrics, err
		}

		for i := 0; i < t.Rows(); i++ {
			out := y.Row(t.RowStart + i)
			for j, v := range block.Row(i) {
				out[j] += v
			}
		}
		metrics.Merge(tileMetrics(t, x, w))
	}

	if rowPerm != nil {
		if y, err = permute.UnDenseRows(y, rowPerm); err != nil {
			return nil, metrics, err
		}
	}

	return y, metrics, nil
}

// tileMetrics accounts one processed tile: 2·nnz·N FLOPs and the bytes
// touched by its CSR storage, W slice, and output block (read + write).
func tileMetrics(t tiler.Tile, x *matrix.CSR, w *matrix.Dense) Metrics {
	const (
		floatBytes = 4
		intBytes   = 8
	)
	n := int64(w.Cols())
	nnz := int64(t.NNZ)
	bytes := nnz*floatBytes + nnz*intBytes + int64(t.Rows()+1)*intBytes + // tile CSR
		int64(t.Cols())*n*floatBytes + // W slice
		int64(t.Rows())*n*floatBytes*2 // output block read + write

	return Metrics{
		NNZ:        t.NNZ,
		FLOPs:      2 * nnz * n,
		BytesMoved: bytes,
	}
}
