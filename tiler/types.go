// Package tiler: tile/config types and sentinel errors.
package tiler

import "errors"

var (
	// ErrBadTileSize indicates non-positive tile dimensions.
	ErrBadTileSize = errors.New("tiler: tile dimensions must be > 0")

	// ErrBadThreshold indicates a density threshold outside [0, 1].
	ErrBadThreshold = errors.New("tiler: density threshold must be in [0,1]")

	// ErrNilMatrix indicates a nil CSR argument.
	ErrNilMatrix = errors.New("tiler: nil matrix")
)

// Default configuration values. DefaultDenseThreshold is the single
// source of truth for the dense/sparse cut; it is threaded explicitly
// through Config and never duplicated.
const (
	DefaultTileRows       = 64
	DefaultTileCols       = 64
	DefaultDenseThreshold = 0.05
)

// Tile describes one rectangular region of a matrix: half-open
// row/column bounds in the global index space, the cached nonzero count,
// and the dense/sparse classification flag set by Classify.
//
// A Tile is a view descriptor — it owns no data and is only meaningful
// against the CSR snapshot it was created from.
type Tile struct {
	RowStart, RowEnd int // half-open [RowStart, RowEnd)
	ColStart, ColEnd int // half-open [ColStart, ColEnd)
	NNZ              int
	Dense            bool
}

// Rows returns the tile's actual row extent (truncated at the edge).
func (t Tile) Rows() int { return t.RowEnd - t.RowStart }

// Cols returns the tile's actual column extent (truncated at the edge).
func (t Tile) Cols() int { return t.ColEnd - t.ColStart }

// Density returns NNZ divided by the tile's actual element count, using
// the truncated edge dimensions rather than the nominal config ones.
// An empty extent yields 0.
func (t Tile) Density() float64 {
	rows, cols := t.Rows(), t.Cols()
	if rows <= 0 || cols <= 0 {
		return 0
	}

	return float64(t.NNZ) / (float64(rows) * float64(cols))
}

// Config is the immutable tiling configuration, supplied once per run.
type Config struct {
	TileRows int
	TileCols int
	// DenseThreshold is the inclusive density cut for classification.
	DenseThreshold float64
}

// DefaultConfig returns the production defaults: 64×64 tiles with a
// 0.05 density threshold.
func DefaultConfig() Config {
	return Config{
		TileRows:       DefaultTileRows,
		TileCols:       DefaultTileCols,
		DenseThreshold: DefaultDenseThreshold,
	}
}

// Validate checks the configuration, returning ErrBadTileSize or
// ErrBadThreshold.
func (c Config) Validate() error {
	if c.TileRows <= 0 || c.TileCols <= 0 {
		return ErrBadTileSize
	}
	if c.DenseThreshold < 0 || c.DenseThreshold > 1 {
		return ErrBadThreshold
	}

	return nil
}
