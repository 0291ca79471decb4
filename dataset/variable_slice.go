package dataset

import (
	"github.com/scatterlab/nddata/internal/elem"
	"github.com/scatterlab/nddata/internal/storage"
)

// VariableSlice is a non-owning, strided restriction of a Variable
// (spec §3 "VariableSlice"). It shares the parent's storage: reads see
// the parent's current contents, and mutating accessors write through
// to the parent without ever reshaping or reallocating it. Composing a
// further Slice/SliceAt on a VariableSlice narrows the same underlying
// stride table rather than nesting views.
type VariableSlice struct {
	parent  *Variable
	dims    Dimensions
	strides []int
	offset  int
}

// fullStrides returns, for each label of dims in order, the row-major
// stride of that label within dims itself (spec §3 "Offset").
func fullStrides(dims Dimensions) []int {
	strides := make([]int, dims.Ndim())
	for i := 0; i < dims.Ndim(); i++ {
		strides[i], _ = dims.Offset(dims.Label(i))
	}
	return strides
}

// Slice returns a VariableSlice restricted to [begin, end) along dim,
// keeping dim in the resulting Dimensions with the narrowed extent.
func (v *Variable) Slice(dim Dim, begin, end int) (*VariableSlice, error) {
	strides := fullStrides(v.dims)
	return sliceRange(v, v.dims, strides, 0, dim, begin, end)
}

// SliceAt returns a VariableSlice fixed at index idx along dim, which
// is removed from the resulting Dimensions (spec §3 "slice(var, dim,
// idx)").
func (v *Variable) SliceAt(dim Dim, idx int) (*VariableSlice, error) {
	strides := fullStrides(v.dims)
	return sliceIndex(v, v.dims, strides, 0, dim, idx)
}

// Slice further restricts an existing VariableSlice along dim.
func (s *VariableSlice) Slice(dim Dim, begin, end int) (*VariableSlice, error) {
	return sliceRange(s.parent, s.dims, s.strides, s.offset, dim, begin, end)
}

// SliceAt further restricts an existing VariableSlice, dropping dim.
func (s *VariableSlice) SliceAt(dim Dim, idx int) (*VariableSlice, error) {
	return sliceIndex(s.parent, s.dims, s.strides, s.offset, dim, idx)
}

func sliceRange(parent *Variable, dims Dimensions, strides []int, offset int, dim Dim, begin, end int) (*VariableSlice, error) {
	i, ok := indexOfLabel(dims, dim)
	if !ok {
		return nil, &DimensionNotFoundError{Dim: dim, Dims: dims}
	}
	extent := dims.MustSize(dim)
	if begin < 0 || end > extent || begin > end {
		return nil, ErrIndexOutOfRange
	}
	newDims, err := dims.Resize(dim, end-begin)
	if err != nil {
		return nil, err
	}
	newOffset := offset + begin*strides[i]
	newStrides := append([]int(nil), strides...)
	return &VariableSlice{parent: parent, dims: newDims, strides: newStrides, offset: newOffset}, nil
}

func sliceIndex(parent *Variable, dims Dimensions, strides []int, offset int, dim Dim, idx int) (*VariableSlice, error) {
	i, ok := indexOfLabel(dims, dim)
	if !ok {
		return nil, &DimensionNotFoundError{Dim: dim, Dims: dims}
	}
	extent := dims.MustSize(dim)
	if idx < 0 || idx >= extent {
		return nil, ErrIndexOutOfRange
	}
	newOffset := offset + idx*strides[i]
	newDims, err := dims.Erase(dim)
	if err != nil {
		return nil, err
	}
	newStrides := make([]int, 0, len(strides)-1)
	for j := 0; j < len(strides); j++ {
		if j == i {
			continue
		}
		newStrides = append(newStrides, strides[j])
	}
	return &VariableSlice{parent: parent, dims: newDims, strides: newStrides, offset: newOffset}, nil
}

func indexOfLabel(dims Dimensions, dim Dim) (int, bool) {
	for i := 0; i < dims.Ndim(); i++ {
		if dims.Label(i) == dim {
			return i, true
		}
	}
	return 0, false
}

// Dims returns the VariableSlice's (possibly narrowed) Dimensions.
func (s *VariableSlice) Dims() Dimensions { return s.dims }

// Tag returns the underlying Variable's tag id.
func (s *VariableSlice) Tag() TagID { return s.parent.tag }

// Unit returns the underlying Variable's unit.
func (s *VariableSlice) Unit() Unit { return s.parent.unit }

// readView builds a read-only storage.View over the parent's current
// storage using this slice's stride table.
func (s *VariableSlice) readView() *storage.View {
	return storage.NewView(s.parent.readBuffer(), s.dims.Shape(), s.strides, s.offset)
}

// writeView ensures the parent's storage is uniquely owned, then builds
// a storage.View over it for in-place mutation.
func (s *VariableSlice) writeView() *storage.View {
	return storage.NewView(s.parent.writeBuffer(), s.dims.Shape(), s.strides, s.offset)
}

// Get returns a Backend over this slice's elements, failing with
// ErrTagMismatch if tag does not match the parent's tag.
func (s *VariableSlice) Get(tag TagID) (storage.Backend, error) {
	if tag != s.parent.tag {
		return nil, &TagMismatchError{Want: tag, Got: s.parent.tag}
	}
	return s.readView(), nil
}

// Materialize copies this slice's elements into a freshly owned
// Variable with the slice's own Dimensions.
func (s *VariableSlice) Materialize() (*Variable, error) {
	buf, err := s.readView().Materialize()
	if err != nil {
		return nil, err
	}
	return newVariable(s.parent.tag, s.parent.name, s.parent.unit, s.dims, buf)
}

// CopyFrom overwrites this slice's elements, in the slice's own
// Dimensions order, with other's elements (broadcasting other's
// Dimensions against the slice's, spec §3 "copy_from"). other's shape
// must be contained by the slice's shape.
func (s *VariableSlice) CopyFrom(other *Variable) error {
	if !s.dims.ContainsDims(other.dims) {
		return &DimensionMismatchError{Op: "copy_from", LHS: s.dims, RHS: other.dims}
	}
	rhsView, err := broadcastView(other.readBuffer(), other.dims, s.dims)
	if err != nil {
		return err
	}
	dst := s.writeView()
	for i := 0; i < dst.Len(); i++ {
		if err := dst.SetAt(i, rhsView.At(i)); err != nil {
			return err
		}
	}
	return nil
}

// AddAssign implements slice += other in place, writing through to the
// parent Variable's storage without reshaping it.
func (s *VariableSlice) AddAssign(other *Variable) error {
	return s.assignOp("+=", other, func(dst elem.Arithmetic, i int, rhs elem.Buffer, j int) error {
		return dst.AddAt(i, rhs, j)
	})
}

// SubAssign implements slice -= other in place.
func (s *VariableSlice) SubAssign(other *Variable) error {
	return s.assignOp("-=", other, func(dst elem.Arithmetic, i int, rhs elem.Buffer, j int) error {
		return dst.SubAt(i, rhs, j)
	})
}

// MulAssign implements slice *= other in place. Unlike Variable.MulAssign,
// this fails with ErrPartialUnitChange if the product would change the
// parent's unit: a partial view cannot carry a unit different from the
// Variable it restricts (spec §7 "cannot change unit through a partial
// view").
func (s *VariableSlice) MulAssign(other *Variable) error {
	newUnit, err := s.parent.unit.Mul(other.unit)
	if err != nil {
		return err
	}
	if newUnit != s.parent.unit {
		return ErrPartialUnitChange
	}
	return s.assignOp("*=", other, func(dst elem.Arithmetic, i int, rhs elem.Buffer, j int) error {
		return dst.MulAt(i, rhs, j)
	})
}

// assignOp does not require other's tag to match the parent's: tag ids
// may legitimately differ in general arithmetic (spec §4.F contract 2,
// e.g. Value += Variance), and Kind compatibility is already enforced
// by NumericBuffer's AddAt/SubAt/MulAt below.
func (s *VariableSlice) assignOp(op string, other *Variable, apply func(dst elem.Arithmetic, i int, rhs elem.Buffer, j int) error) error {
	k := s.parent.Kind()
	if !k.IsArithmetic() {
		return &NonArithmeticTypeError{Kind: k.String()}
	}
	if op != "*=" && s.parent.unit != other.unit {
		return &UnitMismatchError{Op: op, LHS: s.parent.unit, RHS: other.unit}
	}
	if !s.dims.ContainsDims(other.dims) {
		return &DimensionMismatchError{Op: op, LHS: s.dims, RHS: other.dims}
	}
	rhsView, err := broadcastView(other.readBuffer(), other.dims, s.dims)
	if err != nil {
		return err
	}
	// Always materialise: the view may alias the parent's own storage
	// (self-aliasing hazard, spec §4.G), and even when it doesn't, the
	// view's boxed At() is cheap enough that a snapshot buffer is
	// simpler than special-casing the non-aliased path.
	rhs, err := rhsView.Materialize()
	if err != nil {
		return err
	}
	dstView := s.writeView()
	for i := 0; i < dstView.Len(); i++ {
		cur := dstView.At(i)
		tmp, terr := elem.NewZeroed(k, 1)
		if terr != nil {
			return terr
		}
		if err := tmp.SetAt(0, cur); err != nil {
			return err
		}
		arith := tmp.(elem.Arithmetic)
		if err := apply(arith, 0, rhs, i); err != nil {
			return err
		}
		if err := dstView.SetAt(i, arith.At(0)); err != nil {
			return err
		}
	}
	return nil
}
