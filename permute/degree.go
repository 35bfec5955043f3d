package permute

import (
	"sort"

	"github.com/katalvlaran/hybridspmm/matrix"
)

// Degrees returns the per-index nonzero counts of x along the given axis.
// For Rows the result has length x.Rows() and each entry is a rowPtr
// difference; for Cols the result has length x.Cols() and is built by a
// single scan of all stored entries.
// Complexity: O(rows) for Rows, O(nnz + cols) for Cols.
func Degrees(x *matrix.CSR, axis Axis) ([]int, error) {
	if x == nil {
		return nil, ErrNilMatrix
	}
	rowPtr := x.RowPtr()
	if axis == Rows {
		degrees := make([]int, x.Rows())
		for r := range degrees {
			degrees[r] = rowPtr[r+1] - rowPtr[r]
		}

		return degrees, nil
	}

	degrees := make([]int, x.Cols())
	for _, c := range x.ColIndex() {
		degrees[c]++
	}

	return degrees, nil
}

// ByDegree builds a Permutation sorting indices by degree, descending or
// ascending. The sort is stable with ties broken by original index order,
// which keeps the ordering deterministic and reproducible across runs.
// Complexity: O(n log n).
func ByDegree(degrees []int, descending bool) *Permutation {
	n := len(degrees)
	new2old := make([]int, n)
	for i := range new2old {
		new2old[i] = i
	}
	if descending {
		sort.SliceStable(new2old, func(a, b int) bool {
			return degrees[new2old[a]] > degrees[new2old[b]]
		})
	} else {
		sort.SliceStable(new2old, func(a, b int) bool {
			return degrees[new2old[a]] < degrees[new2old[b]]
		})
	}

	old2new := make([]int, n)
	for newIdx, oldIdx := range new2old {
		old2new[oldIdx] = newIdx
	}

	return &Permutation{new2old: new2old, old2new: old2new}
}
