// Package permute computes degree-based row/column reorderings and
// applies (and reverses) them on CSR and Dense operands.
//
// 🚀 Why permute at all?
//
//	Sorting rows/columns by descending nonzero degree clusters work so
//	that dense sub-blocks become contiguous. That makes the tile density
//	classification sharper (fewer "mixed" tiles) and improves locality
//	when a dense sub-block is later materialized for GEMM.
//
// A Permutation is a bijection on [0,n) stored as new2old:
// new_index → old_index. The old2new inverse is derived, never stored by
// callers. Permutations are immutable once built.
//
// ✨ Determinism:
//
//	ByDegree uses a stable sort with ties broken by original index, so
//	two runs over the same matrix always produce the same ordering.
//	This is load-bearing for reproducibility tests, not a nicety.
//
// Row application only reorders whole rows, so in-row column order is
// untouched and the result stays canonical for free. Column application
// remaps stored column indices and therefore re-sorts every affected row
// to restore the canonical CSR invariant before the matrix is handed to
// another component.
package permute
