package dataset

import (
	"fmt"

	"github.com/scatterlab/nddata/internal/storage"
)

// SelectorKind identifies what shape of element a DatasetView selector
// yields per iteration step (spec §4.I).
type SelectorKind uint8

const (
	// SelectPlain yields a single boxed element per step.
	SelectPlain SelectorKind = iota
	// SelectBin yields the (left, right) pair of adjacent bin edges
	// along the selector's dimension-coordinate Dim.
	SelectBin
	// SelectSlab yields a sub-view spanning every fixed Dim, at the
	// current non-fixed index.
	SelectSlab
	// SelectNested yields a further DatasetView over its own selector
	// list, restricted to the same source Dataset.
	SelectNested
)

// Selector names one column (and how to iterate it) of a DatasetView.
type Selector struct {
	Kind   SelectorKind
	Tag    TagID
	Name   string
	Nested []Selector
}

// Plain selects tag/name for element-by-element iteration.
func Plain(tag TagID, name string) Selector { return Selector{Kind: SelectPlain, Tag: tag, Name: name} }

// Bin selects a dimension-coordinate tag for pairwise bin-edge iteration.
func Bin(tag TagID) Selector { return Selector{Kind: SelectBin, Tag: tag} }

// Slab selects tag/name for sub-view iteration over the fixed Dims.
func Slab(tag TagID, name string) Selector { return Selector{Kind: SelectSlab, Tag: tag, Name: name} }

// Nested wraps a further selector tuple to be iterated once per outer
// step of the DatasetView it's used in.
func Nested(selectors ...Selector) Selector { return Selector{Kind: SelectNested, Nested: selectors} }

type resolvedSelector struct {
	sel      Selector
	variable *Variable
	dims     Dimensions
	writable bool
}

// DatasetView is a structured iterator over a tuple of selectors drawn
// from a single Dataset, with joint-Dimensions resolution and
// broadcasting (spec §4.I).
type DatasetView struct {
	source   *Dataset
	fixed    map[Dim]bool
	joint    Dimensions
	resolved []resolvedSelector
}

// NewDatasetView resolves selectors against d and computes their joint
// iteration space, erasing any WithFixed Dims from it. Fixed Dims are
// exposed inside Slab sub-views and iterated internally by Nested
// selectors instead of being part of the outer iteration.
func NewDatasetView(d *Dataset, selectors []Selector, opts ...Option) (*DatasetView, error) {
	o := resolveOptions(opts)
	fixedSet := make(map[Dim]bool, len(o.fixed))
	for _, f := range o.fixed {
		fixedSet[f] = true
	}

	resolved := make([]resolvedSelector, len(selectors))
	for i, sel := range selectors {
		if sel.Kind == SelectNested {
			resolved[i] = resolvedSelector{sel: sel}
			continue
		}
		v, err := d.Find(sel.Tag, sel.Name)
		if err != nil {
			return nil, err
		}
		adj := v.dims
		switch sel.Kind {
		case SelectBin:
			if !v.tag.IsDimensionCoordinate() {
				return nil, fmt.Errorf("nddata: Bin<%s>: not a dimension coordinate", sel.Tag)
			}
			dim := v.tag.CoordinateDimension()
			n := adj.MustSize(dim)
			if adj, err = adj.Resize(dim, n-1); err != nil {
				return nil, err
			}
		case SelectSlab:
			for f := range fixedSet {
				if adj.Contains(f) {
					if adj, err = adj.Erase(f); err != nil {
						return nil, err
					}
				}
			}
		}
		resolved[i] = resolvedSelector{sel: sel, variable: v, dims: adj}
	}

	var joint Dimensions
	for _, r := range resolved {
		if r.sel.Kind == SelectNested {
			continue
		}
		if r.dims.Ndim() > joint.Ndim() {
			joint = r.dims
		}
	}
	for i, r := range resolved {
		if r.sel.Kind == SelectNested {
			continue
		}
		if !joint.ContainsDims(r.dims) {
			return nil, fmt.Errorf("%w: hint: wrap bin-edge tags in Bin<> (selector %s)", ErrNoJointIterationSpace, r.sel.Tag)
		}
		resolved[i].writable = r.dims.Equal(joint)
	}

	for f := range fixedSet {
		if joint.Contains(f) {
			var err error
			if joint, err = joint.Erase(f); err != nil {
				return nil, err
			}
		}
	}

	return &DatasetView{source: d, fixed: fixedSet, joint: joint, resolved: resolved}, nil
}

// Dims returns the joint iteration Dimensions (fixed Dims excluded).
func (dv *DatasetView) Dims() Dimensions { return dv.joint }

// Len returns the number of iteration steps.
func (dv *DatasetView) Len() int { return dv.joint.Volume() }

// decomposeRow maps a linear row index (row-major over dv.joint) to a
// per-Dim index.
func (dv *DatasetView) decomposeRow(row int) map[Dim]int {
	idxs := make(map[Dim]int, dv.joint.Ndim())
	i := row
	for d := dv.joint.Ndim() - 1; d >= 0; d-- {
		label := dv.joint.Label(d)
		extent := dv.joint.MustSize(label)
		idxs[label] = i % extent
		i /= extent
	}
	return idxs
}

// Element is one selector's yield at a given iteration step: exactly
// one of Value, BinLeft/BinRight, Slab, or Nested is meaningful,
// depending on the selector's Kind.
type Element struct {
	Kind     SelectorKind
	Value    any
	BinLeft  any
	BinRight any
	Slab     storage.Backend
	Nested   *DatasetView
	writable bool
}

// Row returns the tuple of elements at iteration step row.
func (dv *DatasetView) Row(row int) ([]Element, error) {
	if row < 0 || row >= dv.Len() {
		return nil, ErrIndexOutOfRange
	}
	idxs := dv.decomposeRow(row)
	out := make([]Element, len(dv.resolved))
	for i, r := range dv.resolved {
		switch r.sel.Kind {
		case SelectNested:
			nv, err := NewDatasetView(dv.source, r.sel.Nested)
			if err != nil {
				return nil, err
			}
			out[i] = Element{Kind: SelectNested, Nested: nv}
		case SelectPlain:
			off := dv.baseOffset(idxs, r.dims)
			out[i] = Element{Kind: SelectPlain, Value: r.variable.readBuffer().At(off), writable: r.writable}
		case SelectBin:
			dim := r.sel.Tag.CoordinateDimension()
			buf := r.variable.readBuffer()
			stride, _ := r.variable.dims.Offset(dim)
			other := dv.baseOffsetExcluding(idxs, r.variable.dims, dim)
			k := idxs[dim]
			out[i] = Element{Kind: SelectBin, BinLeft: buf.At(other + k*stride), BinRight: buf.At(other + (k+1)*stride)}
		case SelectSlab:
			out[i] = Element{Kind: SelectSlab, Slab: dv.slabView(idxs, r.variable), writable: r.writable}
		}
	}
	return out, nil
}

// SetPlain writes v through to the underlying storage for the plain
// selector at position sel within row's tuple, failing with
// ErrBroadcastWrite if that selector's Dimensions don't equal the
// joint Dimensions (spec §4.I "yielded elements for a writable
// selector write through").
func (dv *DatasetView) SetPlain(row, sel int, v any) error {
	r := dv.resolved[sel]
	if r.sel.Kind != SelectPlain {
		return fmt.Errorf("nddata: SetPlain: selector %d is not plain", sel)
	}
	if !r.writable {
		return ErrBroadcastWrite
	}
	idxs := dv.decomposeRow(row)
	off := dv.baseOffset(idxs, r.dims)
	return r.variable.writeBuffer().SetAt(off, v)
}

func (dv *DatasetView) baseOffset(idxs map[Dim]int, dims Dimensions) int {
	off := 0
	for i := 0; i < dims.Ndim(); i++ {
		dim := dims.Label(i)
		idx, ok := idxs[dim]
		if !ok {
			continue
		}
		stride, _ := dims.Offset(dim)
		off += idx * stride
	}
	return off
}

func (dv *DatasetView) baseOffsetExcluding(idxs map[Dim]int, dims Dimensions, exclude Dim) int {
	off := 0
	for i := 0; i < dims.Ndim(); i++ {
		dim := dims.Label(i)
		if dim == exclude {
			continue
		}
		idx, ok := idxs[dim]
		if !ok {
			continue
		}
		stride, _ := dims.Offset(dim)
		off += idx * stride
	}
	return off
}

// slabView builds a storage.View over v's fixed Dims at the base offset
// implied by idxs over v's non-fixed Dims.
func (dv *DatasetView) slabView(idxs map[Dim]int, v *Variable) *storage.View {
	base := 0
	var shape, strides []int
	for i := 0; i < v.dims.Ndim(); i++ {
		dim := v.dims.Label(i)
		stride, _ := v.dims.Offset(dim)
		if dv.fixed[dim] {
			shape = append(shape, v.dims.MustSize(dim))
			strides = append(strides, stride)
			continue
		}
		if idx, ok := idxs[dim]; ok {
			base += idx * stride
		}
	}
	return storage.NewView(v.readBuffer(), shape, strides, base)
}
