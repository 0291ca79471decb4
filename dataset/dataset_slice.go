package dataset

// DatasetSlice is a non-owning, possibly-restricted borrow of a
// Dataset (spec §3 "Slice", spec.md:141 "Slicing"). It records a set of
// per-Dim `[begin, end)` restrictions plus the Variable indices of the
// source Dataset that are part of the selection. Its lifetime is
// bounded by the source Dataset, matching VariableSlice's own
// non-owning contract.
type DatasetSlice struct {
	source   *Dataset
	restrict map[Dim]dimRestriction
	indices  []int
}

type dimRestriction struct{ begin, end int }

type dimRange struct{ offset, extent int }

// Slice returns a DatasetSlice over d restricted to [begin, end) along
// dim. end == -1 requests a point slice at begin: dimension
// coordinates whose coordinate dimension is dim are dropped from the
// selection, since a single row no longer has a meaningful coordinate
// value along dim (spec.md:141).
func (d *Dataset) Slice(dim Dim, begin, end int) (*DatasetSlice, error) {
	indices := make([]int, len(d.entries))
	for i := range d.entries {
		indices[i] = i
	}
	return (&DatasetSlice{source: d, indices: indices}).Slice(dim, begin, end)
}

// SliceName returns a DatasetSlice over d selecting every coordinate
// plus every data/attribute Variable named name (spec.md:141
// "dataset[name]").
func (d *Dataset) SliceName(name string) *DatasetSlice {
	indices := make([]int, 0, len(d.entries))
	for i, v := range d.entries {
		if v.tag.Category() == CategoryCoord || v.name == name {
			indices = append(indices, i)
		}
	}
	return &DatasetSlice{source: d, indices: indices}
}

// Slice further restricts s along dim, composing with any existing
// restriction on the same dim rather than nesting a new borrow layer.
func (s *DatasetSlice) Slice(dim Dim, begin, end int) (*DatasetSlice, error) {
	rng, err := s.dimExtent(dim)
	if err != nil {
		return nil, err
	}
	point := end == -1
	if point {
		end = begin + 1
	}
	if begin < 0 || end > rng.extent || begin > end {
		return nil, ErrIndexOutOfRange
	}
	restrict := make(map[Dim]dimRestriction, len(s.restrict)+1)
	for k, v := range s.restrict {
		restrict[k] = v
	}
	restrict[dim] = dimRestriction{begin: rng.offset + begin, end: rng.offset + end}

	indices := s.indices
	if point {
		indices = dropDimensionCoordinates(s.source, indices, dim)
	}
	return &DatasetSlice{source: s.source, restrict: restrict, indices: indices}, nil
}

// SliceName further restricts s's selection to Variables named name,
// keeping every coordinate regardless of name.
func (s *DatasetSlice) SliceName(name string) *DatasetSlice {
	indices := make([]int, 0, len(s.indices))
	for _, i := range s.indices {
		v := s.source.entries[i]
		if v.tag.Category() == CategoryCoord || v.name == name {
			indices = append(indices, i)
		}
	}
	return &DatasetSlice{source: s.source, restrict: s.restrict, indices: indices}
}

func (s *DatasetSlice) dimExtent(dim Dim) (dimRange, error) {
	if r, ok := s.restrict[dim]; ok {
		return dimRange{offset: r.begin, extent: r.end - r.begin}, nil
	}
	extent, err := s.source.dims.Size(dim)
	if err != nil {
		return dimRange{}, err
	}
	return dimRange{offset: 0, extent: extent}, nil
}

func dropDimensionCoordinates(d *Dataset, indices []int, dim Dim) []int {
	out := indices[:0:0]
	for _, i := range indices {
		v := d.entries[i]
		if v.tag.IsDimensionCoordinate() && v.tag.CoordinateDimension() == dim {
			continue
		}
		out = append(out, i)
	}
	return out
}

// wholeSlice wraps v in a VariableSlice covering its full Dimensions,
// for Variables a DatasetSlice's restrictions don't touch.
func wholeSlice(v *Variable) *VariableSlice {
	return &VariableSlice{parent: v, dims: v.dims, strides: fullStrides(v.dims), offset: 0}
}

// Dims returns the Dimensions s would produce on Materialize, without
// copying any Variable storage.
func (s *DatasetSlice) Dims() (Dimensions, error) {
	out := s.source.dims
	for dim, r := range s.restrict {
		var err error
		out, err = out.Resize(dim, r.end-r.begin)
		if err != nil {
			return Dimensions{}, err
		}
	}
	return out, nil
}

// Materialize copies every selected Variable's restricted region into a
// freshly owned Dataset (spec §3 "materializes an owning ... Dataset
// with the Slice's effective Dimensions").
func (s *DatasetSlice) Materialize() (*Dataset, error) {
	out := New()
	out.logger = s.source.logger
	for _, i := range s.indices {
		restricted, err := s.materializeVariable(s.source.entries[i])
		if err != nil {
			return nil, err
		}
		if err := out.Insert(restricted); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *DatasetSlice) materializeVariable(v *Variable) (*Variable, error) {
	vs := wholeSlice(v)
	for dim, r := range s.restrict {
		if !v.dims.Contains(dim) {
			continue
		}
		var err error
		vs, err = vs.Slice(dim, r.begin, r.end)
		if err != nil {
			return nil, err
		}
	}
	return vs.Materialize()
}

// AddAssignSlice implements d += slice (Dataset op= Slice<Dataset>,
// spec.md:144), materializing slice into an owning Dataset first.
func (d *Dataset) AddAssignSlice(slice *DatasetSlice) error {
	rhs, err := slice.Materialize()
	if err != nil {
		return err
	}
	return d.AddAssign(rhs)
}

// SubAssignSlice implements d -= slice, mirroring AddAssignSlice.
func (d *Dataset) SubAssignSlice(slice *DatasetSlice) error {
	rhs, err := slice.Materialize()
	if err != nil {
		return err
	}
	return d.SubAssign(rhs)
}

// MulAssignSlice implements d *= slice, mirroring AddAssignSlice.
func (d *Dataset) MulAssignSlice(slice *DatasetSlice) error {
	rhs, err := slice.Materialize()
	if err != nil {
		return err
	}
	return d.MulAssign(rhs)
}
