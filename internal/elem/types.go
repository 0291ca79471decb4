package elem

import "math"

// IndexPair backs Coord::TimeInterval and similarly-shaped pair tags.
type IndexPair struct {
	A, B int64
}

// ValueWithDelta backs Coord::FuzzyTemperature. Equality is fuzzy: two
// values compare equal if their absolute difference is smaller than
// the larger of the two deltas, matching the source prototype's
// ValueWithDelta::operator==.
type ValueWithDelta struct {
	Value, Delta float64
}

// Equal implements the fuzzy comparison described above.
func (v ValueWithDelta) Equal(other ValueWithDelta) bool {
	delta := v.Delta
	if other.Delta > delta {
		delta = other.Delta
	}
	return math.Abs(v.Value-other.Value) < delta
}

// FixedArray is a fixed-length blob of doubles, always FixedArrayLen
// long: the element of Coord::ComponentRotation and similar tags, and
// the pointee of Coord::ComponentShape/DetectorShape.
type FixedArray = [FixedArrayLen]float64

// SharedFixedArray is the shared-handle variant of FixedArray: several
// Variables (or several rows of the same Variable) may point at the
// same backing array. Buffer.Clone deliberately does NOT deep-copy the
// pointee — cloning the pointer preserves sharing, mirroring the
// source's std::shared_ptr<std::array<double,100>> element type.
type SharedFixedArray = *FixedArray

// NestedDataset is the interface a nested Dataset (Data::Events,
// Data::Table, Attr::ExperimentLog) must satisfy to be stored in a
// KindDataset Buffer. Defined here rather than importing the dataset
// package to avoid an import cycle (dataset depends on elem, not vice
// versa); the dataset package's *Dataset type implements this.
type NestedDataset interface {
	Clone() NestedDataset
	EqualDataset(other NestedDataset) bool
}

// NewStringBuffer builds a Buffer for Coord::RowLabel/Polarization,
// Data::String, and similar plain-string tags.
func NewStringBuffer(data []string) Buffer {
	return NewGenericBuffer(KindString, data,
		func(a, b string) bool { return a == b },
		func(v string) string { return v },
	)
}

// NewIndexPairBuffer builds a Buffer for Coord::TimeInterval-shaped tags.
func NewIndexPairBuffer(data []IndexPair) Buffer {
	return NewGenericBuffer(KindIndexPair, data,
		func(a, b IndexPair) bool { return a == b },
		func(v IndexPair) IndexPair { return v },
	)
}

// NewValueWithDeltaBuffer builds a Buffer for Coord::FuzzyTemperature.
func NewValueWithDeltaBuffer(data []ValueWithDelta) Buffer {
	return NewGenericBuffer(KindValueWithDelta, data,
		func(a, b ValueWithDelta) bool { return a.Equal(b) },
		func(v ValueWithDelta) ValueWithDelta { return v },
	)
}

// NewDatasetBuffer builds a Buffer for Data::Events/Table and
// Attr::ExperimentLog.
func NewDatasetBuffer(data []NestedDataset) Buffer {
	return NewGenericBuffer(KindDataset, data,
		func(a, b NestedDataset) bool {
			if a == nil || b == nil {
				return a == b
			}
			return a.EqualDataset(b)
		},
		func(v NestedDataset) NestedDataset {
			if v == nil {
				return nil
			}
			return v.Clone()
		},
	)
}

// NewFixedArrayBuffer builds a Buffer for fixed-size blob tags such as
// Coord::ComponentRotation/ComponentPosition.
func NewFixedArrayBuffer(data []FixedArray) Buffer {
	return NewGenericBuffer(KindFixedArray, data,
		func(a, b FixedArray) bool { return a == b },
		func(v FixedArray) FixedArray { return v },
	)
}

// NewSharedFixedArrayBuffer builds a Buffer for the shared-handle
// variant of a fixed-size blob.
func NewSharedFixedArrayBuffer(data []SharedFixedArray) Buffer {
	return NewGenericBuffer(KindSharedFixedArray, data,
		func(a, b SharedFixedArray) bool {
			if a == nil || b == nil {
				return a == b
			}
			return *a == *b
		},
		func(v SharedFixedArray) SharedFixedArray { return v },
	)
}

func equalInt64Slice(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneInt64Slice(v []int64) []int64 {
	if v == nil {
		return nil
	}
	cp := make([]int64, len(v))
	copy(cp, v)
	return cp
}

// NewSmallIndexVectorBuffer builds a Buffer for Coord::DetectorGrouping,
// a per-row small vector of indices.
func NewSmallIndexVectorBuffer(data [][]int64) Buffer {
	return NewGenericBuffer(KindSmallIndexVector, data, equalInt64Slice, cloneInt64Slice)
}

// NewIndexVectorBuffer builds a Buffer for Coord::ComponentChildren,
// Coord::ComponentSubtree, Coord::DetectorSubtree, and similar
// unbounded index lists.
func NewIndexVectorBuffer(data [][]int64) Buffer {
	return NewGenericBuffer(KindIndexVector, data, equalInt64Slice, cloneInt64Slice)
}

// NewStringVectorBuffer builds a Buffer for Data::History.
func NewStringVectorBuffer(data [][]string) Buffer {
	return NewGenericBuffer(KindStringVector, data,
		func(a, b []string) bool {
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		func(v []string) []string {
			if v == nil {
				return nil
			}
			cp := make([]string, len(v))
			copy(cp, v)
			return cp
		},
	)
}
