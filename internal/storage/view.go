package storage

import (
	"fmt"

	"github.com/scatterlab/nddata/internal/elem"
)

// View is a non-owning, strided projection over a parent Backend's
// elements. It supports rebroadcasting (a zero stride replicates the
// same base element across an entire projected Dim) and transposition
// (the strides need not be in the base's own order) transparently:
// callers iterate the View in projected order and never need to know
// which of the two is happening.
type View struct {
	base    Backend
	shape   []int // projected shape, outermost first
	strides []int // per-Dim stride into base's linear index space; 0 = broadcast
	offset  int   // base linear offset of the all-zero projected index
}

// NewView constructs a View over base. shape and strides must have the
// same length (the projected rank); a zero entry in strides marks a
// broadcast dimension.
func NewView(base Backend, shape, strides []int, offset int) *View {
	if len(shape) != len(strides) {
		panic("storage: NewView: shape and strides length mismatch")
	}
	return &View{base: base, shape: shape, strides: strides, offset: offset}
}

// Kind reports the element type of the underlying base storage.
func (v *View) Kind() elem.Kind { return v.base.Kind() }

// Len returns the product of the projected shape (1 for a rank-0 view).
func (v *View) Len() int {
	n := 1
	for _, s := range v.shape {
		n *= s
	}
	return n
}

// baseOffset maps a linear projected index (row-major over v.shape)
// to a linear offset into the base backend.
func (v *View) baseOffset(i int) int {
	off := v.offset
	for d := len(v.shape) - 1; d >= 0; d-- {
		extent := v.shape[d]
		idx := i % extent
		i /= extent
		off += idx * v.strides[d]
	}
	return off
}

// At returns the boxed value at projected linear index i.
func (v *View) At(i int) any {
	return v.base.At(v.baseOffset(i))
}

// SetAt writes through to the base backend at projected linear index i.
// Writing to a broadcast element (stride 0 along some Dim, len(shape)
// dims collapsing onto one base element) writes the same base element
// once per projected index that maps to it — callers doing bulk writes
// through a broadcast View should be aware every alias is touched.
func (v *View) SetAt(i int, val any) error {
	return v.base.SetAt(v.baseOffset(i), val)
}

// Materialize copies the View's elements, in projected order, into a
// freshly allocated owning Buffer of the same Kind and length Len().
// This is how a VariableSlice or a broadcast RHS becomes an owning
// Variable, and how the self-aliasing-write hazard (§4.G) is resolved:
// materialise the RHS before the in-place op proceeds.
func (v *View) Materialize() (elem.Buffer, error) {
	n := v.Len()
	owned, err := elem.NewZeroed(v.base.Kind(), n)
	if err != nil {
		return nil, fmt.Errorf("storage: materialize: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := owned.SetAt(i, v.At(i)); err != nil {
			return nil, fmt.Errorf("storage: materialize: element %d: %w", i, err)
		}
	}
	return owned, nil
}

var _ Backend = (*View)(nil)
