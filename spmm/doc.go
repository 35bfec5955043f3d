// Package spmm is the engine's orchestration layer: it computes
// Y = X·W for a sparse CSR X and dense W by tiling X, classifying each
// tile's density, and routing dense tiles to a GEMM backend and sparse
// tiles to a direct compressed-row kernel.
//
// 🚀 The per-run pipeline (Compute):
//
//	 1. optional global row/column permutation of X (W rows follow X
//	    columns) to cluster dense sub-blocks
//	 2. MakeTiles + Classify against the configured density threshold
//	 3. per tile, in deterministic row-major tile order:
//	      dense  → extract, materialize, locally permute, GEMM,
//	               unpermute result rows            (dense tile path)
//	      sparse → direct CSR accumulation          (sparse tile path)
//	 4. accumulate each tile's Mtile×N block into the global output
//	 5. inverse global row permutation before returning Y
//
// ✨ Guarantees:
//
//   - Tile coverage (tiler invariant) means tile-wise accumulation
//     equals the full-matrix product: no double counting, no omission.
//   - A tile whose backend call fails with gemm.ErrBackendFailure is
//     recomputed on the CPU reference backend; the run survives and the
//     fallback is counted in Metrics.
//   - Every stage returns values; metrics are merged in memory and
//     returned, never written to any log file.
//
// Floating summation order differs between tile layouts and thread
// counts, so results are tolerance-equal (AbsTol/RelTol), not bitwise
// equal, across configurations. Baseline provides the whole-matrix
// reference used by the equivalence tests.
package spmm
