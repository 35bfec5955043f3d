package matrix_test

import (
	"testing"

	"github.com/katalvlaran/hybridspmm/matrix"
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
	require.NoError(t, err, "canonical fixture must construct")

	return m
}

// TestNewCSR_Valid verifies dimensions, nnz and row spans of a canonical
// construction.
func TestNewCSR_Valid(t *testing.T) {
	m := fixtureCSR(t)

	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, 4, m.Cols())
	assert.Equal(t, 6, m.NNZ())

	start, end, err := m.RowSpan(2)
	require.NoError(t, err)
	assert.Equal(t, 3, start, "row 2 starts at offset 3")
	assert.Equal(t, 5, end, "row 2 ends at offset 5")
}

// TestNewCSR_BadShape rejects non-positive dimensions.
func TestNewCSR_BadShape(t *testing.T) {
	_, err := matrix.NewCSR(0, 4, []int{0}, nil, nil)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewCSR(4, -1, []int{0, 0, 0, 0, 0}, nil, nil)
	assert.ErrorIs(t, err, matrix.ErrBadShape)
}

// TestNewCSR_DimensionMismatch rejects wrong rowPtr length and
// colIndex/values lengths disagreeing with rowPtr[rows].
func TestNewCSR_DimensionMismatch(t *testing.T) {
	// len(rowPtr) != rows+1
	_, err := matrix.NewCSR(4, 4, []int{0, 1, 2}, []int{0}, []float32{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// len(values) != rowPtr[rows]
	_, err = matrix.NewCSR(2, 2, []int{0, 1, 2}, []int{0, 1}, []float32{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestNewCSR_NotCanonical rejects decreasing row pointers and unsorted or
// duplicate in-row columns.
func TestNewCSR_NotCanonical(t *testing.T) {
	// rowPtr not starting at 0
	_, err := matrix.NewCSR(1, 2, []int{1, 1}, nil, nil)
	assert.ErrorIs(t, err, matrix.ErrNotCanonical)

	// decreasing rowPtr; buffer lengths agree with rowPtr[rows] so the
	// monotonicity check is the one that trips, not the length check
	_, err = matrix.NewCSR(3, 2, []int{0, 2, 1, 2}, []int{0, 1}, []float32{1, 2})
	assert.ErrorIs(t, err, matrix.ErrNotCanonical)

	// unsorted columns within a row
	_, err = matrix.NewCSR(1, 3, []int{0, 2}, []int{2, 0}, []float32{1, 2})
	assert.ErrorIs(t, err, matrix.ErrNotCanonical)

	// duplicate columns within a row
	_, err = matrix.NewCSR(1, 3, []int{0, 2}, []int{1, 1}, []float32{1, 2})
	assert.ErrorIs(t, err, matrix.ErrNotCanonical)
}

// TestNewCSR_ColumnOutOfRange rejects stored columns outside [0, cols).
func TestNewCSR_ColumnOutOfRange(t *testing.T) {
	_, err := matrix.NewCSR(1, 2, []int{0, 1}, []int{5}, []float32{1})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestCSR_At checks stored and structural-zero lookups plus bounds errors.
func TestCSR_At(t *testing.T) {
	m := fixtureCSR(t)

	v, err := m.At(2, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(5), v)

	v, err = m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v, "structural zero reads as 0")

	_, err = m.At(4, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, -1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestCSR_CloneIndependence verifies Clone yields a deep copy.
func TestCSR_CloneIndependence(t *testing.T) {
	m := fixtureCSR(t)
	cp := m.Clone()

	// Mutate the clone's shared-view slices; the original must not move.
	cp.Values()[0] = 99
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(1), v, "original untouched after clone mutation")
}

// TestCSR_ToDense_FromDense round-trips through the dense representation.
func TestCSR_ToDense_FromDense(t *testing.T) {
	m := fixtureCSR(t)

	d := m.ToDense()
	assert.Equal(t, 4, d.Rows())
	assert.Equal(t, 4, d.Cols())
	got, err := d.At(3, 3)
	require.NoError(t, err)
	assert.Equal(t, float32(6), got)
	got, err = d.At(3, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(0), got)

	back, err := matrix.FromDense(d)
	require.NoError(t, err)
	assert.Equal(t, m.NNZ(), back.NNZ())
	assert.Equal(t, m.RowPtr(), back.RowPtr())
	assert.Equal(t, m.ColIndex(), back.ColIndex())
	assert.Equal(t, m.Values(), back.Values())
}

// TestFilterValueThreshold drops small-magnitude entries and keeps the
// result canonical.
func TestFilterValueThreshold(t *testing.T) {
	m, err := matrix.NewCSR(2, 3,
		[]int{0, 2, 4},
		[]int{0, 2, 0, 1},
		[]float32{0.4, -2, 1.5, -0.1},
	)
	require.NoError(t, err)

	f := matrix.FilterValueThreshold(m, 0.5)
	assert.Equal(t, 2, f.NNZ(), "entries with |v| < 0.5 dropped")

	v, err := f.At(0, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(-2), v, "negative large-magnitude entry kept")
	v, err = f.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v, "small entry dropped")

	// Re-validating the filtered storage must succeed: canonical output.
	_, err = matrix.NewCSR(f.Rows(), f.Cols(), f.RowPtr(), f.ColIndex(), f.Values())
	assert.NoError(t, err, "filtered CSR stays canonical")
}

// TestFilterValueThreshold_Inclusive keeps entries exactly at threshold.
func TestFilterValueThreshold_Inclusive(t *testing.T) {
	m, err := matrix.NewCSR(1, 2, []int{0, 2}, []int{0, 1}, []float32{0.5, 0.49})
	require.NoError(t, err)

	f := matrix.FilterValueThreshold(m, 0.5)
	assert.Equal(t, 1, f.NNZ(), "|v| == threshold is kept")
}

// TestRawCSR_AdoptsSlices pins the no-copy contract: the assembled CSR
// shares the caller's slices (NewCSR copies; RawCSR must not), so
// ownership transfers to the store.
func TestRawCSR_AdoptsSlices(t *testing.T) {
	values := []float32{1, 2}
	m := matrix.RawCSR(1, 3, []int{0, 2}, []int{0, 2}, values)

	assert.Equal(t, 2, m.NNZ())
	values[0] = 9
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(9), v, "caller slice mutation is visible: storage was adopted, not copied")

	// NewCSR, by contrast, copies.
	values2 := []float32{1, 2}
	c, err := matrix.NewCSR(1, 3, []int{0, 2}, []int{0, 2}, values2)
	require.NoError(t, err)
	values2[0] = 9
	v, err = c.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(1), v, "validated constructor keeps its own copy")
}
