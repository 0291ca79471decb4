// Package elem implements the closed sum of element-type variants that
// back every Variable's storage. Each Kind maps to exactly one Go type
// and one Buffer implementation; arithmetic, cloning, and equality are
// all dispatched through the Buffer interface rather than through type
// switches scattered across the caller, so adding a caller never needs
// to know which concrete Go type backs a given tag.
package elem

import "fmt"

// Kind identifies the concrete element type stored in a Buffer.
type Kind uint8

const (
	// KindInvalid represents an unset or unrecognised kind.
	KindInvalid Kind = iota
	// KindFloat64 backs Coord::X/Y/Z/Tof, Data::Value/Variance/StdDev, etc.
	KindFloat64
	// KindInt32 backs Coord::DetectorID/SpectrumNumber.
	KindInt32
	// KindInt64 backs Data::Int/DimensionSize and index-like scalars.
	KindInt64
	// KindString backs Coord::RowLabel/Polarization, Data::String.
	KindString
	// KindIndexPair backs Coord::TimeInterval and similar (a, b) pairs.
	KindIndexPair
	// KindValueWithDelta backs Coord::FuzzyTemperature.
	KindValueWithDelta
	// KindDataset backs Data::Events/Table and Attr::ExperimentLog (nested datasets).
	KindDataset
	// KindFixedArray backs fixed-size blobs such as Coord::ComponentRotation.
	KindFixedArray
	// KindSharedFixedArray backs the shared-handle variant of a fixed blob
	// (Coord::ComponentShape/DetectorShape).
	KindSharedFixedArray
	// KindSmallIndexVector backs Coord::DetectorGrouping-like small index lists.
	KindSmallIndexVector
	// KindStringVector backs Data::History.
	KindStringVector
	// KindIndexVector backs Coord::ComponentChildren/ComponentSubtree.
	KindIndexVector
)

// FixedArrayLen is the element count of the fixed-size blob variants
// (Coord::ComponentShape / Coord::DetectorShape in the tag catalogue).
const FixedArrayLen = 100

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindFloat64:
		return "float64"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindString:
		return "string"
	case KindIndexPair:
		return "index-pair"
	case KindValueWithDelta:
		return "value-with-delta"
	case KindDataset:
		return "dataset"
	case KindFixedArray:
		return "fixed-array"
	case KindSharedFixedArray:
		return "shared-fixed-array"
	case KindSmallIndexVector:
		return "small-index-vector"
	case KindStringVector:
		return "string-vector"
	case KindIndexVector:
		return "index-vector"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsArithmetic reports whether values of this Kind support Add/Sub/Mul.
// Per the element-type policy, numeric kinds do; strings, vectors,
// pairs, shared handles, fixed-size arrays, nested datasets, and
// ValueWithDelta do not.
func (k Kind) IsArithmetic() bool {
	switch k {
	case KindFloat64, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}
