package elem

import "fmt"

// NewZeroed returns a length-n Buffer of the given Kind with every
// element set to its Go zero value. Used for make_variable(dims,
// count) construction (§4.F "count + default").
func NewZeroed(kind Kind, n int) (Buffer, error) {
	switch kind {
	case KindFloat64:
		return NewNumericBuffer(kind, make([]float64, n)), nil
	case KindInt32:
		return NewNumericBuffer(kind, make([]int32, n)), nil
	case KindInt64:
		return NewNumericBuffer(kind, make([]int64, n)), nil
	case KindString:
		return NewStringBuffer(make([]string, n)), nil
	case KindIndexPair:
		return NewIndexPairBuffer(make([]IndexPair, n)), nil
	case KindValueWithDelta:
		return NewValueWithDeltaBuffer(make([]ValueWithDelta, n)), nil
	case KindDataset:
		return NewDatasetBuffer(make([]NestedDataset, n)), nil
	case KindFixedArray:
		return NewFixedArrayBuffer(make([]FixedArray, n)), nil
	case KindSharedFixedArray:
		return NewSharedFixedArrayBuffer(make([]SharedFixedArray, n)), nil
	case KindSmallIndexVector:
		return NewSmallIndexVectorBuffer(make([][]int64, n)), nil
	case KindStringVector:
		return NewStringVectorBuffer(make([][]string, n)), nil
	case KindIndexVector:
		return NewIndexVectorBuffer(make([][]int64, n)), nil
	default:
		return nil, fmt.Errorf("elem: unsupported kind %s", kind)
	}
}
