package dataset

import (
	"fmt"

	"github.com/scatterlab/nddata/internal/elem"
	"github.com/scatterlab/nddata/internal/storage"
)

// broadcastView builds a storage.View over otherBuf (whose own shape is
// otherDims) that iterates in targetDims' order, replicating otherBuf's
// elements along every Dim targetDims has that otherDims lacks (spec
// §4.A "broadcast": a Dim absent from an operand acts as if it had
// extent 1, repeated). Fails if targetDims and otherDims disagree on
// the extent of a Dim they share.
func broadcastView(otherBuf elem.Buffer, otherDims, targetDims Dimensions) (*storage.View, error) {
	shape := make([]int, targetDims.Ndim())
	strides := make([]int, targetDims.Ndim())
	for i := 0; i < targetDims.Ndim(); i++ {
		dim := targetDims.Label(i)
		shape[i] = targetDims.MustSize(dim)
		if otherDims.Contains(dim) {
			sz, _ := otherDims.Size(dim)
			if sz != shape[i] {
				return nil, &DimensionMismatchError{Op: "broadcast", LHS: targetDims, RHS: otherDims}
			}
			off, err := otherDims.Offset(dim)
			if err != nil {
				return nil, err
			}
			strides[i] = off
		} else {
			strides[i] = 0
		}
	}
	return storage.NewView(otherBuf, shape, strides, 0), nil
}

// resolveOperand returns a Backend over other's elements in v's own
// Dimensions order, broadcasting/permuting as needed, and materialises
// it first if v and other alias the same storage cell (self-aliasing
// hazard, spec §4.G: "materialise on alias").
func (v *Variable) resolveOperand(other *Variable) (elem.Buffer, error) {
	if !v.dims.ContainsDims(other.dims) {
		return nil, &DimensionMismatchError{Op: "arithmetic", LHS: v.dims, RHS: other.dims}
	}
	view, err := broadcastView(other.readBuffer(), other.dims, v.dims)
	if err != nil {
		return nil, err
	}
	if v.cell.ID() == other.cell.ID() {
		return view.Materialize()
	}
	if other.dims.Equal(v.dims) {
		return other.readBuffer(), nil
	}
	return view.Materialize()
}

// resolveOperandSlice mirrors resolveOperand for a VariableSlice rhs,
// checking aliasing against the slice's parent Variable's storage cell
// rather than a whole Variable's own cell (spec §4.G "materialise on
// alias", spec.md:123 "var -= var(Dim, 0)"). other's restricted region
// is first copied, in other's own Dimensions order, into an owning
// buffer, which then stands in for a Variable's readBuffer() below.
func (v *Variable) resolveOperandSlice(other *VariableSlice) (elem.Buffer, error) {
	if !v.dims.ContainsDims(other.dims) {
		return nil, &DimensionMismatchError{Op: "arithmetic", LHS: v.dims, RHS: other.dims}
	}
	otherBuf, err := other.readView().Materialize()
	if err != nil {
		return nil, err
	}
	view, err := broadcastView(otherBuf, other.dims, v.dims)
	if err != nil {
		return nil, err
	}
	if v.cell.ID() == other.parent.cell.ID() {
		return view.Materialize()
	}
	if other.dims.Equal(v.dims) {
		return otherBuf, nil
	}
	return view.Materialize()
}

// AddAssignSlice implements Variable += VariableSlice in place, routing
// through the same alias-detecting resolveOperandSlice a plain
// Variable rhs uses (spec.md:237 scenario 3: "copy = var; var -=
// copy(Y,0)").
func (v *Variable) AddAssignSlice(other *VariableSlice) error {
	if v.unit != other.Unit() {
		return &UnitMismatchError{Op: "+=", LHS: v.unit, RHS: other.Unit()}
	}
	rhs, err := v.resolveOperandSlice(other)
	if err != nil {
		return err
	}
	lhs, ok := v.writeBuffer().(elem.Arithmetic)
	if !ok {
		return &NonArithmeticTypeError{Kind: v.Kind().String()}
	}
	for i := 0; i < lhs.Len(); i++ {
		if err := lhs.AddAt(i, rhs, i); err != nil {
			return err
		}
	}
	return nil
}

// SubAssignSlice implements Variable -= VariableSlice in place.
func (v *Variable) SubAssignSlice(other *VariableSlice) error {
	if v.unit != other.Unit() {
		return &UnitMismatchError{Op: "-=", LHS: v.unit, RHS: other.Unit()}
	}
	rhs, err := v.resolveOperandSlice(other)
	if err != nil {
		return err
	}
	lhs, ok := v.writeBuffer().(elem.Arithmetic)
	if !ok {
		return &NonArithmeticTypeError{Kind: v.Kind().String()}
	}
	for i := 0; i < lhs.Len(); i++ {
		if err := lhs.SubAt(i, rhs, i); err != nil {
			return err
		}
	}
	return nil
}

// MulAssignSlice implements Variable *= VariableSlice in place.
func (v *Variable) MulAssignSlice(other *VariableSlice) error {
	newUnit, err := v.unit.Mul(other.Unit())
	if err != nil {
		return err
	}
	rhs, err := v.resolveOperandSlice(other)
	if err != nil {
		return err
	}
	lhs, ok := v.writeBuffer().(elem.Arithmetic)
	if !ok {
		return &NonArithmeticTypeError{Kind: v.Kind().String()}
	}
	for i := 0; i < lhs.Len(); i++ {
		if err := lhs.MulAt(i, rhs, i); err != nil {
			return err
		}
	}
	v.unit = newUnit
	return nil
}

// checkArithmeticCompatible gates in-place arithmetic between v and
// other. Tag ids may legitimately differ (spec §4.F contract 2: e.g.
// Value += Variance is allowed because both hold double); only
// Data::Events concatenation requires the tags to match, since merging
// requires both sides to be the same nested-Dataset-bearing tag. Kind
// compatibility is enforced separately, in NumericBuffer's own
// AddAt/SubAt/MulAt.
func (v *Variable) checkArithmeticCompatible(op string, other *Variable) error {
	if v.tag == DataEvents {
		if other.tag != DataEvents {
			return &TagMismatchError{Want: v.tag, Got: other.tag}
		}
		if op != "+=" {
			return fmt.Errorf("%w: %s", ErrEventsArithmeticUnsupported, op)
		}
		return nil
	}
	k := v.Kind()
	if k == elem.KindString {
		return &NonArithmeticTypeError{Kind: "string"}
	}
	if !k.IsArithmetic() {
		return &NonArithmeticTypeError{Kind: k.String()}
	}
	return nil
}

// AddAssign implements Variable += other in place: unit-checked,
// tag-checked, shape-broadcast element-wise addition (spec §4.F
// "Arithmetic"). Data::Events is special-cased as concatenation.
func (v *Variable) AddAssign(other *Variable) error {
	if err := v.checkArithmeticCompatible("+=", other); err != nil {
		return err
	}
	if v.tag == DataEvents {
		return v.concatenateEvents(other)
	}
	if v.unit != other.unit {
		return &UnitMismatchError{Op: "+=", LHS: v.unit, RHS: other.unit}
	}
	rhs, err := v.resolveOperand(other)
	if err != nil {
		return err
	}
	lhs, ok := v.writeBuffer().(elem.Arithmetic)
	if !ok {
		return &NonArithmeticTypeError{Kind: v.Kind().String()}
	}
	for i := 0; i < lhs.Len(); i++ {
		if err := lhs.AddAt(i, rhs, i); err != nil {
			return err
		}
	}
	return nil
}

// SubAssign implements Variable -= other in place.
func (v *Variable) SubAssign(other *Variable) error {
	if err := v.checkArithmeticCompatible("-=", other); err != nil {
		return err
	}
	if v.unit != other.unit {
		return &UnitMismatchError{Op: "-=", LHS: v.unit, RHS: other.unit}
	}
	rhs, err := v.resolveOperand(other)
	if err != nil {
		return err
	}
	lhs, ok := v.writeBuffer().(elem.Arithmetic)
	if !ok {
		return &NonArithmeticTypeError{Kind: v.Kind().String()}
	}
	for i := 0; i < lhs.Len(); i++ {
		if err := lhs.SubAt(i, rhs, i); err != nil {
			return err
		}
	}
	return nil
}

// MulAssign implements Variable *= other in place. The result unit is
// v.Unit() * other.Unit() via the closed unit table (spec §4.B).
func (v *Variable) MulAssign(other *Variable) error {
	if err := v.checkArithmeticCompatible("*=", other); err != nil {
		return err
	}
	newUnit, err := v.unit.Mul(other.unit)
	if err != nil {
		return err
	}
	rhs, err := v.resolveOperand(other)
	if err != nil {
		return err
	}
	lhs, ok := v.writeBuffer().(elem.Arithmetic)
	if !ok {
		return &NonArithmeticTypeError{Kind: v.Kind().String()}
	}
	for i := 0; i < lhs.Len(); i++ {
		if err := lhs.MulAt(i, rhs, i); err != nil {
			return err
		}
	}
	v.unit = newUnit
	return nil
}

// concatenateEvents implements Data::Events += other:
// element-wise, each row's nested Dataset grows by concatenating the
// peer row's nested Dataset along Dim::Event, rather than the outer
// (e.g. per-spectrum) Dim changing extent.
func (v *Variable) concatenateEvents(other *Variable) error {
	lhs := v.writeBuffer()
	rhs := other.readBuffer()
	if lhs.Len() != rhs.Len() {
		return &ShapeMismatchError{Volume: lhs.Len(), Given: rhs.Len()}
	}
	for i := 0; i < lhs.Len(); i++ {
		lhsDS, _ := lhs.At(i).(*Dataset)
		rhsDS, _ := rhs.At(i).(*Dataset)
		var merged *Dataset
		switch {
		case lhsDS == nil && rhsDS == nil:
			continue
		case lhsDS == nil:
			merged = rhsDS.Clone()
		case rhsDS == nil:
			continue
		default:
			var err error
			merged, err = Concatenate(Event, lhsDS, rhsDS)
			if err != nil {
				return err
			}
		}
		if err := lhs.SetAt(i, merged); err != nil {
			return err
		}
	}
	return nil
}
