// Package matrix: sentinel error set.
// All validation failures in this package surface as these sentinels and
// tests match them via errors.Is. Wrapping with fmt.Errorf("ctx: %w", ErrX)
// is allowed at outer boundaries; callers still match the sentinel.
package matrix

import "errors"

var (
	// ErrBadShape is returned when requested dimensions are non-positive.
	ErrBadShape = errors.New("matrix: dimensions must be > 0")

	// ErrDimensionMismatch indicates inconsistent buffer lengths or
	// incompatible operand shapes (e.g. len(rowPtr) != rows+1, or
	// X.Cols() != W.Rows() at a multiply boundary).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNotCanonical indicates a CSR construction whose row pointers are
	// not monotone or whose in-row column indices are not strictly
	// increasing. Constructors never sort on the caller's behalf.
	ErrNotCanonical = errors.New("matrix: CSR input is not canonical")

	// ErrOutOfRange indicates a row or column index outside valid bounds,
	// either in an accessor or in a stored CSR column index.
	ErrOutOfRange = errors.New("matrix: index out of range")
)
