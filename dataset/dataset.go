package dataset

import (
	"fmt"
	"log/slog"

	"github.com/scatterlab/nddata/internal/elem"
)

// Dataset is an ordered collection of Variables sharing a common
// Dimensions registry (spec §3 "Dataset"). Coordinates are keyed by
// tag id alone (at most one coordinate per tag); data and attribute
// Variables are keyed by (tag id, name).
type Dataset struct {
	entries []*Variable
	dims    Dimensions
	logger  *slog.Logger
}

// New returns an empty Dataset, configured by opts (WithLogger).
func New(opts ...Option) *Dataset {
	o := resolveOptions(opts)
	return &Dataset{logger: o.logger}
}

// WithLogger returns a shallow copy of d that logs through logger.
// Existing entries are unaffected; new inserts propagate logger to
// their Variables' copy-on-write cells.
func (d *Dataset) WithLogger(logger *slog.Logger) *Dataset {
	cp := *d
	cp.logger = logger
	return &cp
}

func key(v *Variable) (TagID, string) { return v.tag, v.name }

func (d *Dataset) find(tag TagID, name string) (int, bool) {
	for i, e := range d.entries {
		if e.tag == tag && e.name == name {
			return i, true
		}
	}
	return 0, false
}

// mergeDims reconciles v's Dimensions into the dataset's shared
// registry: every Dim v carries must either be new to the dataset or
// agree with the existing extent, with one exception (spec §3 "shared
// Dimensions registry, with a bin-edge exception"): a dimension
// coordinate for dim may have extent dims.Size(dim)+1. When that
// coordinate was inserted first, a later Variable one element shorter
// along dim is accepted and the registry is reduced to its extent.
func (d *Dataset) mergeDims(v *Variable) (Dimensions, error) {
	out := d.dims
	for i := 0; i < v.dims.Ndim(); i++ {
		dim := v.dims.Label(i)
		extent := v.dims.MustSize(dim)
		existing, sizeErr := out.Size(dim)
		if sizeErr != nil {
			var err error
			out, err = out.Add(dim, extent)
			if err != nil {
				return Dimensions{}, err
			}
			continue
		}
		if existing == extent {
			continue
		}
		if v.tag.IsDimensionCoordinate() && v.tag.CoordinateDimension() == dim && extent == existing+1 {
			continue
		}
		if existing == extent+1 && d.hasBinEdgeCoordinate(dim) {
			var err error
			if out, err = out.Resize(dim, extent); err != nil {
				return Dimensions{}, err
			}
			continue
		}
		return Dimensions{}, &DimensionMismatchError{Op: "insert", LHS: out, RHS: v.dims}
	}
	return out, nil
}

// hasBinEdgeCoordinate reports whether the dataset already holds a
// dimension-coordinate for dim whose extent still equals dim's
// registered extent, i.e. the coordinate fixed that extent itself
// (used when a later insert has the "short", one-less extent).
func (d *Dataset) hasBinEdgeCoordinate(dim Dim) bool {
	for _, e := range d.entries {
		if e.tag.IsDimensionCoordinate() && e.tag.CoordinateDimension() == dim {
			sz, _ := d.dims.Size(dim)
			return e.dims.MustSize(dim) == sz
		}
	}
	return false
}

// Insert adds v to the dataset, failing with ErrDuplicateTag if
// (tag, name) is already present or with a *DimensionMismatchError if
// v's Dimensions conflict with the dataset's shared registry.
func (d *Dataset) Insert(v *Variable) error {
	tag, name := key(v)
	if _, ok := d.find(tag, name); ok {
		return fmt.Errorf("nddata: %w: %s %q", ErrDuplicateTag, tag, name)
	}
	newDims, err := d.mergeDims(v)
	if err != nil {
		return err
	}
	d.dims = newDims
	d.entries = append(d.entries, v.WithLogger(d.logger))
	return nil
}

// Find returns the Variable stored under (tag, name), or ErrNotFound.
func (d *Dataset) Find(tag TagID, name string) (*Variable, error) {
	i, ok := d.find(tag, name)
	if !ok {
		return nil, fmt.Errorf("nddata: %w: %s %q", ErrNotFound, tag, name)
	}
	return d.entries[i], nil
}

// FindUnique returns the single Variable stored under tag regardless
// of name, failing with ErrNotFound if none exists or ErrNotUnique if
// more than one Variable carries tag (spec §3 "coordinates are unique
// per tag; data/attrs may repeat under distinct names").
func (d *Dataset) FindUnique(tag TagID) (*Variable, error) {
	var found *Variable
	for _, e := range d.entries {
		if e.tag != tag {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("nddata: %w: %s", ErrNotUnique, tag)
		}
		found = e
	}
	if found == nil {
		return nil, fmt.Errorf("nddata: %w: %s", ErrNotFound, tag)
	}
	return found, nil
}

// Erase removes the Variable stored under (tag, name), then recomputes
// the shared Dimensions registry so Dims no longer referenced by any
// remaining Variable are dropped (spec.md:138).
func (d *Dataset) Erase(tag TagID, name string) error {
	i, ok := d.find(tag, name)
	if !ok {
		return fmt.Errorf("nddata: %w: %s %q", ErrNotFound, tag, name)
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	newDims, err := recomputeDims(d.entries)
	if err != nil {
		return err
	}
	d.dims = newDims
	return nil
}

// Extract removes every data/attribute Variable named name (coordinates
// are never extracted; spec.md:138 "extract returns a new Dataset
// containing the removed data Variables plus all coordinates of the
// original, as a named subset"). The receiver's Dimensions registry is
// recomputed to drop any Dim the removal left unreferenced; the
// returned Dataset gets its own registry built from what it retains.
func (d *Dataset) Extract(name string) (*Dataset, error) {
	var removed []*Variable
	kept := d.entries[:0:0]
	for _, e := range d.entries {
		if e.name == name && e.tag.Category() != CategoryCoord {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	if len(removed) == 0 {
		return nil, fmt.Errorf("nddata: %w: %q", ErrNotFound, name)
	}
	d.entries = kept
	newDims, err := recomputeDims(d.entries)
	if err != nil {
		return nil, err
	}
	d.dims = newDims

	out := New()
	out.logger = d.logger
	for _, e := range d.entries {
		if e.tag.Category() != CategoryCoord {
			continue
		}
		if err := out.Insert(e.shallowCopy()); err != nil {
			return nil, err
		}
	}
	for _, e := range removed {
		if err := out.Insert(e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// recomputeDims rebuilds a Dimensions registry from scratch by
// replaying entries through mergeDims on a scratch Dataset, so Dims no
// longer referenced by any entry are dropped (spec.md:138).
func recomputeDims(entries []*Variable) (Dimensions, error) {
	scratch := &Dataset{}
	for _, e := range entries {
		newDims, err := scratch.mergeDims(e)
		if err != nil {
			return Dimensions{}, err
		}
		scratch.dims = newDims
		scratch.entries = append(scratch.entries, e)
	}
	return scratch.dims, nil
}

// Dims returns the dataset's shared Dimensions registry.
func (d *Dataset) Dims() Dimensions { return d.dims }

// Len returns the number of Variables stored in the dataset.
func (d *Dataset) Len() int { return len(d.entries) }

// Variables returns the dataset's Variables in insertion order. The
// returned slice is a copy; mutating it does not affect the dataset.
func (d *Dataset) Variables() []*Variable {
	out := make([]*Variable, len(d.entries))
	copy(out, d.entries)
	return out
}

// Clone returns an independent deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	cp := &Dataset{dims: d.dims, logger: d.logger}
	cp.entries = make([]*Variable, len(d.entries))
	for i, e := range d.entries {
		cp.entries[i] = e.Clone()
	}
	return cp
}

// EqualDataset implements elem.NestedDataset so a Dataset can back a
// Data::Events/Table/AttrExperimentLog Variable's elements.
func (d *Dataset) EqualDataset(other elem.NestedDataset) bool {
	o, ok := other.(*Dataset)
	if !ok {
		return false
	}
	return d.Equal(o)
}

// Equal reports whether d and other hold the same Variables (by
// (tag, name) identity and Variable.Equal) and the same Dimensions
// registry.
func (d *Dataset) Equal(other *Dataset) bool {
	if d == other {
		return true
	}
	if !d.dims.Equal(other.dims) || len(d.entries) != len(other.entries) {
		return false
	}
	for _, e := range d.entries {
		peer, err := other.Find(e.tag, e.name)
		if err != nil || !e.Equal(peer) {
			return false
		}
	}
	return true
}

var _ elem.NestedDataset = (*Dataset)(nil)
