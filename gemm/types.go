// Package gemm: Backend contract and sentinel errors.
package gemm

import (
	"errors"

	"github.com/katalvlaran/hybridspmm/matrix"
)

var (
	// ErrBackendFailure indicates a backend-internal failure (the moral
	// equivalent of a device allocation, transfer, or kernel-launch
	// error). It is recoverable: callers may retry the operation on
	// another backend.
	ErrBackendFailure = errors.New("gemm: backend failure")

	// ErrNilOperand indicates a nil X or W argument.
	ErrNilOperand = errors.New("gemm: nil operand")
)

// Backend is a dense matrix-multiply engine. Multiply computes
// Y = X·W with X of shape M×K and W of shape K×N, all row-major, and
// returns a freshly allocated M×N result. Implementations must be safe
// for concurrent use by multiple goroutines.
type Backend interface {
	// Multiply returns X·W, matrix.ErrDimensionMismatch when
	// X.Cols() != W.Rows(), or ErrBackendFailure.
	Multiply(x, w *matrix.Dense) (*matrix.Dense, error)

	// Name identifies the backend in metrics and diagnostics.
	Name() string
}

// checkOperands validates a multiply call and extracts its dimensions.
func checkOperands(x, w *matrix.Dense) (m, k, n int, err error) {
	if x == nil || w == nil {
		return 0, 0, 0, ErrNilOperand
	}
	if x.Cols() != w.Rows() {
		return 0, 0, 0, matrix.ErrDimensionMismatch
	}

	return x.Rows(), x.Cols(), w.Cols(), nil
}
