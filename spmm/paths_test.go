package spmm_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/hybridspmm/gemm"
	"github.com/katalvlaran/hybridspmm/matrix"
	"github.com/katalvlaran/hybridspmm/spmm"
	"github.com/katalvlaran/hybridspmm/tiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureCSR is the 4×4 matrix used throughout the engine's tests:
//
//	[1 0 2 0]
//	[0 3 0 0]
//	[4 0 5 0]
//	[0 0 0 6]
func fixtureCSR(t *testing.T) *matrix.CSR {
	t.Helper()
	m, err := matrix.NewCSR(4, 4,
		[]int{0, 2, 3, 5, 6},
		[]int{0, 2, 1, 0, 2, 3},
		[]float32{1, 2, 3, 4, 5, 6},
	)
	require.NoError(t, err)

	return m
}

// fixtureW is the 4×2 companion so that X·W row 0 equals [11, 14].
func fixtureW(t *testing.T) *matrix.Dense {
	t.Helper()
	w, err := matrix.NewDenseFromRows([][]float32{
		{1, 2},
		{3, 4},
		{5, 6},
		{7, 8},
	})
	require.NoError(t, err)

	return w
}

// randomCSR builds a rows×cols matrix with roughly density·rows·cols
// nonzeros, deterministic under the fixed seed.
func randomCSR(tb testing.TB, rows, cols int, density float64, seed int64) *matrix.CSR {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	rowPtr := make([]int, rows+1)
	var colIndex []int
	var values []float32
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < density {
				colIndex = append(colIndex, c)
				values = append(values, rng.Float32()*2-1)
			}
		}
		rowPtr[r+1] = len(colIndex)
	}
	m, err := matrix.NewCSR(rows, cols, rowPtr, colIndex, values)
	if err != nil {
		tb.Fatalf("randomCSR: %v", err)
	}

	return m
}

// randomDense builds a deterministic rows×cols dense matrix.
func randomDense(tb testing.TB, rows, cols int, seed int64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	d, err := matrix.NewDense(rows, cols)
	if err != nil {
		tb.Fatalf("randomDense: %v", err)
	}
	data := d.Data()
	for i := range data {
		data[i] = rng.Float32()*2 - 1
	}

	return d
}

// TestExtractTile_Rebase verifies that the bottom-left quadrant of the
// fixture comes out with tile-local column indices.
func TestExtractTile_Rebase(t *testing.T) {
	x := fixtureCSR(t)
	tile := tiler.Tile{RowStart: 2, RowEnd: 4, ColStart: 2, ColEnd: 4, NNZ: 2}

	xt, err := spmm.ExtractTile(x, tile)
	require.NoError(t, err)

	assert.Equal(t, 2, xt.Rows())
	assert.Equal(t, 2, xt.Cols())
	assert.Equal(t, 2, xt.NNZ())

	// Quadrant is [5 0; 0 6]: X(2,2)=5 lands at (0,0), X(3,3)=6 at (1,1).
	v, err := xt.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(5), v)
	v, err = xt.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(6), v)
}

// TestExtractTile_Bounds rejects tiles outside the matrix extent.
func TestExtractTile_Bounds(t *testing.T) {
	x := fixtureCSR(t)

	for name, tile := range map[string]tiler.Tile{
		"rows past extent": {RowStart: 2, RowEnd: 5, ColStart: 0, ColEnd: 4},
		"negative col":     {RowStart: 0, RowEnd: 2, ColStart: -1, ColEnd: 2},
		"empty row range":  {RowStart: 2, RowEnd: 2, ColStart: 0, ColEnd: 4},
	} {
		_, err := spmm.ExtractTile(x, tile)
		assert.ErrorIs(t, err, spmm.ErrTileBounds, name)
	}

	_, err := spmm.ExtractTile(nil, tiler.Tile{RowEnd: 1, ColEnd: 1})
	assert.ErrorIs(t, err, spmm.ErrNilInput)
}

// TestExtractWSlice copies the tile's W row range and zero-pads any row
// past W's extent.
func TestExtractWSlice(t *testing.T) {
	w := fixtureW(t)
	tile := tiler.Tile{RowStart: 0, RowEnd: 4, ColStart: 2, ColEnd: 4}

	wt, err := spmm.ExtractWSlice(w, tile)
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 6}, wt.Row(0), "W row 2")
	assert.Equal(t, []float32{7, 8}, wt.Row(1), "W row 3")

	// A column range reaching past W's rows yields zero padding.
	over := tiler.Tile{RowStart: 0, RowEnd: 4, ColStart: 3, ColEnd: 5}
	wt, err = spmm.ExtractWSlice(w, over)
	require.NoError(t, err)
	assert.Equal(t, []float32{7, 8}, wt.Row(0))
	assert.Equal(t, []float32{0, 0}, wt.Row(1), "row past W stays zero")
}

// TestSparseTile_Quadrants checks that the four quadrant contributions
// of the fixture sum to the full product.
func TestSparseTile_Quadrants(t *testing.T) {
	x := fixtureCSR(t)
	w := fixtureW(t)

	full, err := spmm.Baseline(x, w, 1)
	require.NoError(t, err)

	sum, err := matrix.NewDense(4, 2)
	require.NoError(t, err)
	for _, tile := range []tiler.Tile{
		{RowStart: 0, RowEnd: 2, ColStart: 0, ColEnd: 2},
		{RowStart: 0, RowEnd: 2, ColStart: 2, ColEnd: 4},
		{RowStart: 2, RowEnd: 4, ColStart: 0, ColEnd: 2},
		{RowStart: 2, RowEnd: 4, ColStart: 2, ColEnd: 4},
	} {
		block, bErr := spmm.SparseTile(x, w, tile)
		require.NoError(t, bErr)
		for i := 0; i < block.Rows(); i++ {
			out := sum.Row(tile.RowStart + i)
			for j, v := range block.Row(i) {
				out[j] += v
			}
		}
	}

	assert.True(t, sum.Equal(full), "quadrant sums must reproduce the full product exactly")
}

// TestDenseTile_MatchesSparseTile runs both per-tile paths on the same
// random tile and requires tolerance agreement: the dense path permutes
// and multiplies through the backend, the sparse path accumulates
// directly, and both must describe the same contribution.
func TestDenseTile_MatchesSparseTile(t *testing.T) {
	x := randomCSR(t, 48, 40, 0.2, 7)
	w := randomDense(t, 40, 8, 8)
	tiles, err := tiler.MakeTiles(x, tiler.Config{TileRows: 16, TileCols: 16, DenseThreshold: 0.05})
	require.NoError(t, err)

	for _, backend := range []gemm.Backend{gemm.NewCPU(1), gemm.NewBlocked(), gemm.NewColMajor()} {
		for _, tile := range tiles {
			if tile.NNZ == 0 {
				continue
			}
			dense, dErr := spmm.DenseTile(x, w, tile, backend)
			require.NoError(t, dErr, backend.Name())
			sparse, sErr := spmm.SparseTile(x, w, tile)
			require.NoError(t, sErr)

			assert.True(t, dense.ApproxEqual(sparse, spmm.AbsTol, spmm.RelTol),
				"backend %s tile (%d,%d): max diff %g",
				backend.Name(), tile.RowStart, tile.ColStart, dense.MaxAbsDiff(sparse))
		}
	}
}

// TestBaseline_WorkedExample pins the reference product of the fixture
// pair.
func TestBaseline_WorkedExample(t *testing.T) {
	y, err := spmm.Baseline(fixtureCSR(t), fixtureW(t), 1)
	require.NoError(t, err)

	expected, err := matrix.NewDenseFromRows([][]float32{
		{11, 14},
		{9, 12},
		{29, 38},
		{42, 48},
	})
	require.NoError(t, err)
	assert.True(t, y.Equal(expected), "baseline must match the hand-computed product")
}

// TestBaseline_ParallelMatchesSerial — strips write disjoint rows with
// identical per-element accumulation order, so the results are bitwise
// equal.
func TestBaseline_ParallelMatchesSerial(t *testing.T) {
	x := randomCSR(t, 400, 300, 0.03, 11)
	w := randomDense(t, 300, 16, 12)

	serial, err := spmm.Baseline(x, w, 1)
	require.NoError(t, err)
	parallel, err := spmm.Baseline(x, w, 4)
	require.NoError(t, err)

	assert.True(t, serial.Equal(parallel))
}

// TestBaseline_Validation covers nil inputs and the inner-dimension
// check.
func TestBaseline_Validation(t *testing.T) {
	x := fixtureCSR(t)
	w := fixtureW(t)

	_, err := spmm.Baseline(nil, w, 1)
	assert.ErrorIs(t, err, spmm.ErrNilInput)
	_, err = spmm.Baseline(x, nil, 1)
	assert.ErrorIs(t, err, spmm.ErrNilInput)

	bad := randomDense(t, 3, 2, 1)
	_, err = spmm.Baseline(x, bad, 1)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
