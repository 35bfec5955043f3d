// Package matrix provides the two storage types the engine computes on:
// CSR, a canonical compressed-row sparse matrix of float32 values, and
// Dense, a flat row-major float32 matrix.
//
// 🚀 What lives here?
//
//	  • CSR     — rowPtr/colIndex/values triplet storage with strict
//	              canonical-form validation on construction
//	  • Dense   — row-major float32 storage for W, materialized tiles and
//	              the output Y
//	  • FilterValueThreshold — the optional pre-filter transform applied
//	              to X before tiling (drops |v| < threshold)
//
// ✨ Guarantees:
//
//   - Canonical CSR: within every row, column indices are strictly
//     increasing; constructors reject anything else up front.
//   - Value semantics: transformations return new instances; a CSR or
//     Dense handed to another pipeline stage is never mutated behind
//     the caller's back.
//   - All user-triggered failures surface as package sentinels
//     (ErrDimensionMismatch, ErrNotCanonical, ErrOutOfRange) matched
//     with errors.Is; nothing panics.
//
// Construction from non-canonical sources (e.g. a column-compressed
// on-disk layout) belongs to the I/O collaborator: convert first, then
// call NewCSR with already-canonical slices.
package matrix
