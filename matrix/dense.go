package matrix

import "math"

// Dense is a row-major matrix of float32 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
// It is the owned dense-buffer type carried across the GEMM backend
// boundary, replacing raw pointer + dimension triples.
type Dense struct {
	r, c int
	data []float32 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Returns ErrBadShape when rows or cols are non-positive.
// Complexity: O(r·c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Dense{r: rows, c: cols, data: make([]float32, rows*cols)}, nil
}

// mustDense is the internal constructor for call sites whose dimensions
// are already validated (tile bounds, output allocation).
func mustDense(rows, cols int) *Dense {
	return &Dense{r: rows, c: cols, data: make([]float32, rows*cols)}
}

// NewDenseFromRows builds a Dense from a rectangular [][]float32.
// Ragged input returns ErrDimensionMismatch, empty input ErrBadShape.
// Complexity: O(r·c).
func NewDenseFromRows(rows [][]float32) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	cols := len(rows[0])
	d := mustDense(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, ErrDimensionMismatch
		}
		copy(d.data[i*cols:(i+1)*cols], row)
	}

	return d, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (d *Dense) Rows() int { return d.r }

// Cols returns the number of columns. Complexity: O(1).
func (d *Dense) Cols() int { return d.c }

// At retrieves the element at (row, col), or ErrOutOfRange.
// Complexity: O(1).
func (d *Dense) At(row, col int) (float32, error) {
	if row < 0 || row >= d.r || col < 0 || col >= d.c {
		return 0, ErrOutOfRange
	}

	return d.data[row*d.c+col], nil
}

// Set assigns v at (row, col), or returns ErrOutOfRange.
// Complexity: O(1).
func (d *Dense) Set(row, col int, v float32) error {
	if row < 0 || row >= d.r || col < 0 || col >= d.c {
		return ErrOutOfRange
	}
	d.data[row*d.c+col] = v

	return nil
}

// Row returns the backing slice of row i (shared, not copied) so kernels
// can stream a row without per-element bounds checks. Returns nil for an
// out-of-range index.
func (d *Dense) Row(i int) []float32 {
	if i < 0 || i >= d.r {
		return nil
	}

	return d.data[i*d.c : (i+1)*d.c]
}

// Data exposes the flat row-major backing slice (shared, read-write).
// The GEMM kernels operate on this directly.
func (d *Dense) Data() []float32 { return d.data }

// Clone returns a deep copy. Complexity: O(r·c).
func (d *Dense) Clone() *Dense {
	cp := make([]float32, len(d.data))
	copy(cp, d.data)

	return &Dense{r: d.r, c: d.c, data: cp}
}

// Equal reports exact element-wise equality of shape and values.
func (d *Dense) Equal(other *Dense) bool {
	if other == nil || d.r != other.r || d.c != other.c {
		return false
	}
	for i, v := range d.data {
		if other.data[i] != v {
			return false
		}
	}

	return true
}

// ApproxEqual reports element-wise equality within absTol absolute or
// relTol relative tolerance, whichever is looser per element. This is
// the production tolerance policy for comparing computation paths.
func (d *Dense) ApproxEqual(other *Dense, absTol, relTol float64) bool {
	if other == nil || d.r != other.r || d.c != other.c {
		return false
	}
	for i, v := range d.data {
		if !approxEqual(float64(v), float64(other.data[i]), absTol, relTol) {
			return false
		}
	}

	return true
}

// MaxAbsDiff returns the largest absolute element-wise difference, or -1
// on shape mismatch. Handy for diagnostics and the CLI summary.
func (d *Dense) MaxAbsDiff(other *Dense) float64 {
	if other == nil || d.r != other.r || d.c != other.c {
		return -1
	}
	var maxDiff float64
	for i, v := range d.data {
		diff := float64(v) - float64(other.data[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > maxDiff {
			maxDiff = diff
		}
	}

	return maxDiff
}

// approxEqual mirrors the reference comparison: a and b agree when their
// difference is within absTol, or within relTol of the larger magnitude.
func approxEqual(a, b, absTol, relTol float64) bool {
	diff := math.Abs(a - b)
	if diff <= absTol {
		return true
	}

	return diff <= relTol*math.Max(math.Abs(a), math.Abs(b))
}
