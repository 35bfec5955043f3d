package gemm

import (
	"fmt"

	"github.com/katalvlaran/hybridspmm/matrix"
)

// Kernel is a BLAS-style column-major sgemm: C = A·B with A m×k, B k×n,
// C m×n, all column-major with the given leading dimensions. A non-nil
// error models a device allocation/transfer/launch failure.
//
// Injecting a Kernel lets tests exercise the failure path and lets a
// real device binding slot in without touching the convention bridge.
type Kernel func(m, n, k int, a []float32, lda int, b []float32, ldb int, c []float32, ldc int) error

// ColMajor adapts a column-major-native Kernel to this module's
// row-major convention without a single transpose copy.
//
// The trick: a row-major M×K buffer is bit-identical in memory to its
// transpose read as a column-major K×M buffer. So instead of computing
// Y = X·W we hand the kernel Yᵗ = Wᵗ·Xᵗ — operand order swapped, leading
// dimensions N/K/N — and the column-major N×M result buffer, reinterpreted
// as row-major M×N, is exactly the desired Y. This equivalence is exact;
// any reimplementation must preserve it.
type ColMajor struct {
	kernel Kernel
}

// NewColMajor returns a ColMajor backend over the built-in pure-Go
// column-major kernel.
func NewColMajor() *ColMajor {
	return &ColMajor{kernel: sgemmColMajor}
}

// NewColMajorKernel returns a ColMajor backend over a caller-supplied
// Kernel (a device binding, or a failure-injecting test double).
func NewColMajorKernel(k Kernel) *ColMajor {
	return &ColMajor{kernel: k}
}

// Name implements Backend.
func (*ColMajor) Name() string { return "colmajor" }

// Multiply implements Backend via the operand-swap bridge.
// The kernel call is synchronous: when it returns without error the
// result buffer is complete and owned by the caller.
func (b *ColMajor) Multiply(x, w *matrix.Dense) (*matrix.Dense, error) {
	m, k, n, err := checkOperands(x, w)
	if err != nil {
		return nil, err
	}
	y, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, err
	}

	// Yᵗ(N×M) = Wᵗ(N×K) · Xᵗ(K×M): the row-major buffers ARE the
	// transposed column-major operands, so they are passed untouched.
	if err = b.kernel(n, m, k, w.Data(), n, x.Data(), k, y.Data(), n); err != nil {
		return nil, fmt.Errorf("gemm: colmajor kernel (m=%d k=%d n=%d): %w: %v", m, k, n, ErrBackendFailure, err)
	}

	return y, nil
}

// sgemmColMajor is the built-in column-major reference kernel:
// C[i + j·ldc] = Σ_p A[i + p·lda] · B[p + j·ldb]. The j/p/i loop order
// walks every buffer down its columns, i.e. sequentially in memory.
func sgemmColMajor(m, n, k int, a []float32, lda int, b []float32, ldb int, c []float32, ldc int) error {
	if m <= 0 || n <= 0 || k <= 0 || lda < m || ldb < k || ldc < m {
		return fmt.Errorf("invalid dimensions m=%d n=%d k=%d lda=%d ldb=%d ldc=%d", m, n, k, lda, ldb, ldc)
	}
	for j := 0; j < n; j++ {
		cCol := c[j*ldc : j*ldc+m]
		for p := 0; p < k; p++ {
			bpj := b[p+j*ldb]
			if bpj == 0 {
				continue
			}
			aCol := a[p*lda : p*lda+m]
			for i, av := range aCol {
				cCol[i] += av * bpj
			}
		}
	}

	return nil
}
