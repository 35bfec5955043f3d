// Package spmm: run options, metrics, tolerances and sentinel errors.
package spmm

import (
	"errors"

	"github.com/katalvlaran/hybridspmm/gemm"
	"github.com/katalvlaran/hybridspmm/tiler"
)

// Production tolerance policy for comparing computation paths:
// two values agree when their difference is within AbsTol absolute or
// RelTol relative to the larger magnitude, whichever is looser.
const (
	AbsTol = 1e-4
	RelTol = 1e-5
)

var (
	// ErrNilInput indicates a nil X or W argument.
	ErrNilInput = errors.New("spmm: nil input matrix")

	// ErrTileBounds indicates a tile whose bounds do not fit inside the
	// matrix it is applied to — a stale Tile used against the wrong
	// CSR snapshot.
	ErrTileBounds = errors.New("spmm: tile bounds outside matrix")
)

// Options configures one Compute run. The zero value is NOT valid; use
// DefaultOptions and override fields.
type Options struct {
	// Tiling supplies tile dimensions and the single density threshold.
	Tiling tiler.Config

	// Backend handles dense-tile GEMM calls; nil selects the CPU
	// reference backend.
	Backend gemm.Backend

	// PermuteRows enables the global row permutation (descending row
	// degree) before tiling; the output is row-unpermuted on return.
	PermuteRows bool

	// PermuteCols enables the global column permutation (descending
	// column degree) before tiling; W's rows are permuted alongside so
	// the product is unchanged.
	PermuteCols bool

	// Workers bounds the CPU backend's parallelism when Backend is nil
	// and when a failed backend call falls back to the CPU reference;
	// <= 0 selects runtime.GOMAXPROCS(0).
	Workers int
}

// DefaultOptions returns the production defaults: 64×64 tiles,
// threshold 0.05, CPU backend, no global permutation.
func DefaultOptions() Options {
	return Options{
		Tiling:  tiler.DefaultConfig(),
		Backend: gemm.NewCPU(0),
	}
}

// Metrics is the in-memory per-run accounting the orchestrator merges
// across stages and returns to the caller. Persisting it anywhere is
// the reporting collaborator's job, not this package's.
type Metrics struct {
	TileCount   int
	DenseTiles  int
	SparseTiles int

	// NNZ is the number of stored nonzeros processed across all tiles;
	// by the coverage invariant it equals X.NNZ().
	NNZ int

	// FLOPs counts 2·nnz·N (one multiply-add per nonzero per output
	// column).
	FLOPs int64

	// BytesMoved tallies tile CSR storage, W slices, and output blocks
	// (read + write), mirroring the operational-intensity accounting.
	BytesMoved int64

	// BackendFallbacks counts dense tiles recomputed on the CPU
	// reference backend after a gemm.ErrBackendFailure.
	BackendFallbacks int
}

// Merge folds other into m field-wise.
func (m *Metrics) Merge(other Metrics) {
	m.TileCount += other.TileCount
	m.DenseTiles += other.DenseTiles
	m.SparseTiles += other.SparseTiles
	m.NNZ += other.NNZ
	m.FLOPs += other.FLOPs
	m.BytesMoved += other.BytesMoved
	m.BackendFallbacks += other.BackendFallbacks
}
