// Package tiler partitions a CSR matrix into a regular 2D grid of tiles
// and classifies each tile as dense or sparse against a configured
// density threshold.
//
// 🚀 How tiling works:
//
//	MakeTiles lays a TileRows×TileCols grid over [0,rows)×[0,cols); the
//	last band in each dimension may be smaller when the matrix dimensions
//	are not multiples of the tile size. A single pass over all stored
//	nonzeros assigns each to its tile by integer division, incrementing
//	that tile's counter. Complexity: O(nnz + tileCount).
//
// Tiles are produced in row-major grid order — a deterministic iteration
// order the orchestrator relies on for reproducible accumulation.
//
// ✨ The coverage invariant:
//
//	The disjoint union of all tile ranges exactly covers the matrix index
//	space, and every stored nonzero is counted in exactly one tile. This
//	is what guarantees tile-wise partial results sum to the full-matrix
//	product with no double counting and no omission.
//
// A Tile owns no data: it is a view descriptor valid only against the
// specific CSR snapshot it was created from, consumed within one pass.
//
// Classification (Classify) is a pure, stateless predicate: density
// computed over the tile's actual — possibly truncated — dimensions,
// marked dense iff density ≥ threshold (inclusive). The threshold is a
// single explicitly-threaded configuration value; no second constant
// exists anywhere in the module.
package tiler
