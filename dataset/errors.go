package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per bare error kind from spec §7. Kinds that
// carry diagnostic parameters are also exposed as a struct type
// wrapping the matching sentinel via Unwrap, so callers can either
// errors.Is the kind or errors.As to recover details.
var (
	ErrDimensionMismatch  = errors.New("nddata: dimension mismatch")
	ErrDimensionNotFound  = errors.New("nddata: dimension not found")
	ErrDuplicateDimension = errors.New("nddata: duplicate dimension")
	ErrTooManyDimensions  = errors.New("nddata: too many dimensions (max 6)")
	ErrNegativeExtent     = errors.New("nddata: negative dimension extent")

	ErrUnitMismatch    = errors.New("nddata: unit mismatch")
	ErrUnitArithmetic  = errors.New("nddata: no unit for this product/quotient")
	ErrPartialUnitChange = errors.New("nddata: cannot change unit through a partial view")

	ErrTagMismatch            = errors.New("nddata: tag mismatch")
	ErrNotFound               = errors.New("nddata: not found")
	ErrNotUnique              = errors.New("nddata: not unique")
	ErrDuplicateTag           = errors.New("nddata: duplicate tag")
	ErrComputedTagNotStorable = errors.New("nddata: computed tag cannot be stored")

	ErrShapeMismatch     = errors.New("nddata: initializer length does not match volume")
	ErrNonMonotonicEdges = errors.New("nddata: bin edges are not monotonically non-decreasing")
	ErrEdgeCountMismatch = errors.New("nddata: edge coordinate does not have dims+1 entries")

	ErrNonArithmeticType         = errors.New("nddata: element type does not support arithmetic")
	ErrEventsArithmeticUnsupported = errors.New("nddata: only += (concatenation) is defined for events")
	ErrStringsNotAddable         = errors.New("nddata: strings are not addable; use append")

	ErrBroadcastWrite         = errors.New("nddata: cannot write through a broadcast selector")
	ErrNoJointIterationSpace  = errors.New("nddata: selectors have no joint iteration space")
	ErrLinearViewMisconfigured = errors.New("nddata: dataset is not 1-D or tags are not all selected")

	ErrCoordinateMismatch = errors.New("nddata: coordinate values differ between operands")
	ErrMissingPartner     = errors.New("nddata: variable has no partner on the other operand")

	ErrIndexOutOfRange = errors.New("nddata: index out of range")

	// ErrNotImplemented is returned by Convert, which spec.md §6 lists
	// as reserved rather than implemented.
	ErrNotImplemented = errors.New("nddata: not implemented")
)

// DimensionMismatchError carries the two Dimensions involved in a
// failed shape-compatibility check (spec §7: "numeric parameters ...
// included where diagnostic").
type DimensionMismatchError struct {
	Op       string
	LHS, RHS Dimensions
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("nddata: %s: dimensions %v do not contain %v", e.Op, e.LHS, e.RHS)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// DimensionNotFoundError names the Dim that was missing and the
// Dimensions it was looked up in.
type DimensionNotFoundError struct {
	Dim  Dim
	Dims Dimensions
}

func (e *DimensionNotFoundError) Error() string {
	return fmt.Sprintf("nddata: dimension %s not found in %v", e.Dim, e.Dims)
}

func (e *DimensionNotFoundError) Unwrap() error { return ErrDimensionNotFound }

// UnitMismatchError names the two units that failed to combine.
type UnitMismatchError struct {
	Op       string
	LHS, RHS Unit
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("nddata: %s: unit mismatch %s vs %s", e.Op, e.LHS, e.RHS)
}

func (e *UnitMismatchError) Unwrap() error { return ErrUnitMismatch }

// UnitArithmeticError names the two units passed to Mul/Div that have
// no defined product/quotient in the closed table, distinct from
// UnitMismatchError's "these two operand units must be equal" check
// used elsewhere in arithmetic.
type UnitArithmeticError struct {
	Op       string
	LHS, RHS Unit
}

func (e *UnitArithmeticError) Error() string {
	return fmt.Sprintf("nddata: no unit defined for %s %s %s", e.LHS, e.Op, e.RHS)
}

func (e *UnitArithmeticError) Unwrap() error { return ErrUnitArithmetic }

// TagMismatchError names the expected and actual tag.
type TagMismatchError struct {
	Want, Got TagID
}

func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("nddata: tag mismatch: want %s, got %s", e.Want, e.Got)
}

func (e *TagMismatchError) Unwrap() error { return ErrTagMismatch }

// ShapeMismatchError names the expected volume and the supplied length.
type ShapeMismatchError struct {
	Volume, Given int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("nddata: initializer has %d elements, dims volume is %d", e.Given, e.Volume)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// NonArithmeticTypeError names the offending Kind and, for strings,
// recommends the append-based alternative (spec §4.F point 4).
type NonArithmeticTypeError struct {
	Kind string
}

func (e *NonArithmeticTypeError) Error() string {
	if e.Kind == "string" {
		return "nddata: strings do not support arithmetic; use append"
	}
	return fmt.Sprintf("nddata: %s does not support arithmetic", e.Kind)
}

func (e *NonArithmeticTypeError) Unwrap() error { return ErrNonArithmeticType }
