// Package hybridspmm computes Y = X·W for a large sparse X and a small
// dense W using density-adaptive 2D tiling: dense regions of X are
// materialized and routed to a GEMM backend, sparse regions are computed
// directly from compressed-row storage.
//
// 🚀 What is hybridspmm?
//
//	A pure-Go engine for hybrid tiled sparse-dense matrix multiplication,
//	built around gene×cell expression workloads but agnostic to the data:
//	  • CSR sparse storage with strict canonical-form validation
//	  • Degree-based row/column permutations for locality
//	  • Regular 2D tiling with per-tile density classification
//	  • Dense tiles → GEMM backend (parallel CPU, cache-blocked,
//	    or a column-major device-convention backend)
//	  • Sparse tiles → direct compressed-row accumulation
//	  • Exact tile coverage guarantees, tolerance-equal results versus
//	    a naive full-matrix baseline
//
// ✨ Why choose hybridspmm?
//
//   - Deterministic – stable sorts, fixed loop orders, reproducible runs
//   - Recoverable – a failing backend falls back to the CPU path per tile
//   - Observable – every run returns an in-memory Metrics value, no log files
//   - Extensible – plug in your own gemm.Backend implementation
//
// Under the hood, everything is organized in per-concern subpackages:
//
//	matrix/  — CSR and Dense stores + value-threshold pre-filter
//	permute/ — degree-based permutations and their inverses
//	tiler/   — 2D grid tiling and density classification
//	gemm/    — interchangeable dense multiply backends
//	spmm/    — tile paths, orchestrator, baseline, metrics
//
// Quick sketch of a run:
//
//	X (CSR) ──tile──▶ [T00 T01]     dense T  → materialize → GEMM
//	                  [T10 T11] ──▶ sparse T → direct CSR loop
//	                                 └─▶ accumulate into Y
//
// Start with spmm.Compute, the single entry point; every stage is also
// individually addressable for testing and instrumentation.
//
//	go get github.com/katalvlaran/hybridspmm
package hybridspmm
