package tiler

import "github.com/katalvlaran/hybridspmm/matrix"

// MakeTiles lays a regular grid over x and counts nonzeros per tile.
//
// Algorithm Outline:
//  1. numRowTiles = ceil(rows/TileRows), numColTiles = ceil(cols/TileCols).
//  2. Emit tiles in row-major grid order with bounds clamped to the
//     matrix extent (edge bands may be smaller than the nominal size).
//  3. One pass over all stored nonzeros: the owning tile of entry (r, c)
//     is (r/TileRows, c/TileCols); increment its counter.
//
// The returned slice partitions [0,rows)×[0,cols) exactly; the sum of
// all tile NNZ values equals x.NNZ() (the coverage invariant).
// Classification flags are left false — Classify sets them.
//
// Complexity: O(nnz + tileCount).
// Errors: ErrNilMatrix, ErrBadTileSize (via cfg.Validate; the threshold
// is validated too so a bad Config fails at the first touch point).
func MakeTiles(x *matrix.CSR, cfg Config) ([]Tile, error) {
	if x == nil {
		return nil, ErrNilMatrix
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rows, cols := x.Rows(), x.Cols()
	numRowTiles := (rows + cfg.TileRows - 1) / cfg.TileRows
	numColTiles := (cols + cfg.TileCols - 1) / cfg.TileCols

	tiles := make([]Tile, 0, numRowTiles*numColTiles)
	for rb := 0; rb < numRowTiles; rb++ {
		for cb := 0; cb < numColTiles; cb++ {
			t := Tile{
				RowStart: rb * cfg.TileRows,
				RowEnd:   min(rb*cfg.TileRows+cfg.TileRows, rows),
				ColStart: cb * cfg.TileCols,
				ColEnd:   min(cb*cfg.TileCols+cfg.TileCols, cols),
			}
			tiles = append(tiles, t)
		}
	}

	rowPtr, colIndex := x.RowPtr(), x.ColIndex()
	for r := 0; r < rows; r++ {
		rb := r / cfg.TileRows
		for idx := rowPtr[r]; idx < rowPtr[r+1]; idx++ {
			cb := colIndex[idx] / cfg.TileCols
			tiles[rb*numColTiles+cb].NNZ++
		}
	}

	return tiles, nil
}

// Classify marks each tile Dense iff its density (over actual, possibly
// truncated dimensions) is ≥ threshold — the comparison is inclusive.
// Returns the dense and sparse tile counts. The only side effect is the
// classification flag on each tile; the predicate itself is stateless.
//
// Complexity: O(tileCount).
// Errors: ErrBadThreshold for a threshold outside [0,1].
func Classify(tiles []Tile, threshold float64) (dense, sparse int, err error) {
	if threshold < 0 || threshold > 1 {
		return 0, 0, ErrBadThreshold
	}
	for i := range tiles {
		tiles[i].Dense = tiles[i].Density() >= threshold
		if tiles[i].Dense {
			dense++
		} else {
			sparse++
		}
	}

	return dense, sparse, nil
}
