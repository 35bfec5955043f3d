// Package permute: Permutation type and sentinel errors.
package permute

import "errors"

var (
	// ErrSizeMismatch indicates a permutation whose length differs from
	// the target's corresponding dimension.
	ErrSizeMismatch = errors.New("permute: permutation size mismatch")

	// ErrInvalidEntry indicates a mapping value outside [0,n) or a
	// duplicate value (the mapping must be a bijection).
	ErrInvalidEntry = errors.New("permute: invalid permutation entry")

	// ErrNilMatrix indicates a nil CSR or Dense argument.
	ErrNilMatrix = errors.New("permute: nil matrix")
)

// Axis selects the index domain a degree scan runs over.
type Axis int

const (
	// Rows tallies nonzeros per row (a rowPtr difference, O(rows)).
	Rows Axis = iota
	// Cols tallies nonzeros per column (a full entry scan, O(nnz)).
	Cols
)

// Permutation is an immutable bijection on [0,n), stored as
// new2old: new_index → old_index.
type Permutation struct {
	new2old []int
	old2new []int // derived inverse, built once at construction
}

// New validates and adopts a new2old mapping. Every value in [0,n) must
// appear exactly once; violations return ErrInvalidEntry.
// Complexity: O(n).
func New(new2old []int) (*Permutation, error) {
	n := len(new2old)
	old2new := make([]int, n)
	seen := make([]bool, n)
	for newIdx, oldIdx := range new2old {
		if oldIdx < 0 || oldIdx >= n || seen[oldIdx] {
			return nil, ErrInvalidEntry
		}
		seen[oldIdx] = true
		old2new[oldIdx] = newIdx
	}

	return &Permutation{
		new2old: append([]int(nil), new2old...),
		old2new: old2new,
	}, nil
}

// Identity returns the identity permutation on [0,n).
func Identity(n int) *Permutation {
	new2old := make([]int, n)
	old2new := make([]int, n)
	for i := range new2old {
		new2old[i] = i
		old2new[i] = i
	}

	return &Permutation{new2old: new2old, old2new: old2new}
}

// Len returns the size of the index domain. Complexity: O(1).
func (p *Permutation) Len() int { return len(p.new2old) }

// New2Old returns a copy of the new→old mapping.
func (p *Permutation) New2Old() []int { return append([]int(nil), p.new2old...) }

// Old2New returns a copy of the derived old→new inverse mapping.
func (p *Permutation) Old2New() []int { return append([]int(nil), p.old2new...) }

// Inverse returns the permutation with the new/old roles swapped.
// Applying Inverse() after the original permutation restores the
// original index order; only bookkeeping moves, no values change.
// Complexity: O(1) — the two mappings are shared, both are immutable.
func (p *Permutation) Inverse() *Permutation {
	return &Permutation{new2old: p.old2new, old2new: p.new2old}
}
