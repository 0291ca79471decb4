package dataset

import (
	"fmt"

	"github.com/scatterlab/nddata/internal/elem"
)

// LinearView is a tuple-iterator over a strictly 1-D Dataset (spec
// §4.J): every selected Variable must share the same single Dim, and
// every Variable in the Dataset must be selected — otherwise
// construction fails with ErrLinearViewMisconfigured.
type LinearView struct {
	source *Dataset
	dim    Dim
	tags   []TagID
	names  []string
}

// NewLinearView builds a LinearView over every Variable of d, which
// must all share the single Dim dim.
func NewLinearView(d *Dataset, dim Dim) (*LinearView, error) {
	if d.dims.Ndim() > 1 {
		return nil, fmt.Errorf("%w: dataset has %d dims, want 1", ErrLinearViewMisconfigured, d.dims.Ndim())
	}
	lv := &LinearView{source: d, dim: dim}
	for _, v := range d.entries {
		if v.dims.Ndim() != 1 || v.dims.Label(0) != dim {
			return nil, fmt.Errorf("%w: %s %q is not 1-D along %s", ErrLinearViewMisconfigured, v.tag, v.name, dim)
		}
		lv.tags = append(lv.tags, v.tag)
		lv.names = append(lv.names, v.name)
	}
	return lv, nil
}

// Len returns the extent along the LinearView's Dim.
func (lv *LinearView) Len() int {
	n, err := lv.source.dims.Size(lv.dim)
	if err != nil {
		return 0
	}
	return n
}

// At returns the boxed tuple of element values at row i, one per
// selected Variable, in Dataset insertion order.
func (lv *LinearView) At(i int) ([]any, error) {
	if i < 0 || i >= lv.Len() {
		return nil, ErrIndexOutOfRange
	}
	out := make([]any, len(lv.tags))
	for j := range lv.tags {
		v, err := lv.source.Find(lv.tags[j], lv.names[j])
		if err != nil {
			return nil, err
		}
		out[j] = v.readBuffer().At(i)
	}
	return out, nil
}

// Set overwrites row i's tuple in place, one value per selected
// Variable in Dataset insertion order.
func (lv *LinearView) Set(i int, values []any) error {
	if i < 0 || i >= lv.Len() {
		return ErrIndexOutOfRange
	}
	if len(values) != len(lv.tags) {
		return fmt.Errorf("nddata: LinearView.Set: %d values, want %d", len(values), len(lv.tags))
	}
	for j := range lv.tags {
		v, err := lv.source.Find(lv.tags[j], lv.names[j])
		if err != nil {
			return err
		}
		if err := v.writeBuffer().SetAt(i, values[j]); err != nil {
			return err
		}
	}
	return nil
}

// PushBack grows every selected Variable by one along the LinearView's
// Dim, writing values' components in Dataset insertion order (spec
// §4.J "push_back"). len(values) must equal the number of selected
// Variables.
func (lv *LinearView) PushBack(values []any) error {
	if len(values) != len(lv.tags) {
		return fmt.Errorf("nddata: PushBack: %d values, want %d", len(values), len(lv.tags))
	}
	newExtent := lv.Len() + 1
	for j := range lv.tags {
		v, err := lv.source.Find(lv.tags[j], lv.names[j])
		if err != nil {
			return err
		}
		grown, err := growByOne(v, lv.dim)
		if err != nil {
			return err
		}
		if err := grown.writeBuffer().SetAt(newExtent-1, values[j]); err != nil {
			return err
		}
		idx, _ := lv.source.find(grown.tag, grown.name)
		lv.source.entries[idx] = grown
	}
	newDims, err := lv.source.dims.Resize(lv.dim, newExtent)
	if err != nil {
		return err
	}
	lv.source.dims = newDims
	return nil
}

// growByOne returns a copy of v with one extra zero-valued element
// appended along dim.
func growByOne(v *Variable, dim Dim) (*Variable, error) {
	extent := v.dims.MustSize(dim)
	newDims, err := v.dims.Resize(dim, extent+1)
	if err != nil {
		return nil, err
	}
	buf := v.readBuffer()
	extra, err := elem.NewZeroed(buf.Kind(), 1)
	if err != nil {
		return nil, err
	}
	joined, err := buf.Append(extra)
	if err != nil {
		return nil, err
	}
	return newVariable(v.tag, v.name, v.unit, newDims, joined)
}
