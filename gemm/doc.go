// Package gemm provides interchangeable dense matrix-multiply backends
// behind a single Backend interface: Y[M×N] = X[M×K] · W[K×N], row-major
// convention throughout.
//
// 🚀 Backends:
//
//	  • CPU      — reference triple-loop kernel, parallelized by output
//	               row strips over a worker pool; the correctness anchor
//	               every other backend is tested against.
//	  • Blocked  — cache-blocked variant; block sizes are chosen once at
//	               construction from CPU feature flags (x/sys/cpu).
//	  • ColMajor — models a device/BLAS-style backend whose native
//	               convention is column-major. The row-major↔column-major
//	               bridge costs nothing: a row-major M×K buffer is
//	               bit-identical in memory to its transpose read as a
//	               column-major K×M buffer, so the backend computes
//	               Yᵗ = Wᵗ·Xᵗ with swapped operand order and leading
//	               dimensions, and the column-major result buffer read
//	               back as row-major is exactly Y. Zero copies, zero
//	               transposes — only the call changes. This equivalence
//	               is exact, not approximate, and is pinned by tests.
//
// ✨ Error model:
//
//	Kernel-launch style failures surface as ErrBackendFailure — a
//	recoverable error, never a process abort — so an orchestrator can
//	fall back to the CPU backend for the failed tile.
//
// All backends agree within the module's floating tolerance for
// identical inputs; summation order differs between them, so bitwise
// equality is not guaranteed.
package gemm
