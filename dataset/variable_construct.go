package dataset

import "github.com/scatterlab/nddata/internal/elem"

// NewFloat64Variable creates a Variable backed by values (which must
// be exactly dims.Volume() long, else ErrShapeMismatch). unit
// overrides tag's default; pass tag.DefaultUnit() to use it.
func NewFloat64Variable(tag TagID, name string, dims Dimensions, unit Unit, values []float64) (*Variable, error) {
	buf := elem.NewNumericBuffer(elem.KindFloat64, append([]float64(nil), values...))
	return newVariable(tag, name, unit, dims, buf)
}

// NewInt32Variable creates an int32-backed Variable.
func NewInt32Variable(tag TagID, name string, dims Dimensions, unit Unit, values []int32) (*Variable, error) {
	buf := elem.NewNumericBuffer(elem.KindInt32, append([]int32(nil), values...))
	return newVariable(tag, name, unit, dims, buf)
}

// NewInt64Variable creates an int64-backed Variable.
func NewInt64Variable(tag TagID, name string, dims Dimensions, unit Unit, values []int64) (*Variable, error) {
	buf := elem.NewNumericBuffer(elem.KindInt64, append([]int64(nil), values...))
	return newVariable(tag, name, unit, dims, buf)
}

// NewStringVariable creates a string-backed Variable.
func NewStringVariable(tag TagID, name string, dims Dimensions, unit Unit, values []string) (*Variable, error) {
	buf := elem.NewStringBuffer(append([]string(nil), values...))
	return newVariable(tag, name, unit, dims, buf)
}

// NewIndexPairVariable creates an elem.IndexPair-backed Variable
// (e.g. Coord::TimeInterval).
func NewIndexPairVariable(tag TagID, name string, dims Dimensions, unit Unit, values []elem.IndexPair) (*Variable, error) {
	buf := elem.NewIndexPairBuffer(append([]elem.IndexPair(nil), values...))
	return newVariable(tag, name, unit, dims, buf)
}

// NewValueWithDeltaVariable creates an elem.ValueWithDelta-backed
// Variable (Coord::FuzzyTemperature).
func NewValueWithDeltaVariable(tag TagID, name string, dims Dimensions, unit Unit, values []elem.ValueWithDelta) (*Variable, error) {
	buf := elem.NewValueWithDeltaBuffer(append([]elem.ValueWithDelta(nil), values...))
	return newVariable(tag, name, unit, dims, buf)
}

// NewDatasetVariable creates a nested-Dataset-backed Variable
// (Data::Events, Data::Table, Attr::ExperimentLog).
func NewDatasetVariable(tag TagID, name string, dims Dimensions, values []*Dataset) (*Variable, error) {
	nested := make([]elem.NestedDataset, len(values))
	for i, d := range values {
		if d == nil {
			continue
		}
		nested[i] = d
	}
	buf := elem.NewDatasetBuffer(nested)
	return newVariable(tag, name, Dimensionless, dims, buf)
}

// NewFixedArrayVariable creates a fixed-size-blob-backed Variable.
func NewFixedArrayVariable(tag TagID, name string, dims Dimensions, unit Unit, values []elem.FixedArray) (*Variable, error) {
	buf := elem.NewFixedArrayBuffer(append([]elem.FixedArray(nil), values...))
	return newVariable(tag, name, unit, dims, buf)
}

// NewSharedFixedArrayVariable creates a Variable over the shared-handle
// fixed-blob variant. Pointers are stored as given (not deep-copied);
// see elem.SharedFixedArray.
func NewSharedFixedArrayVariable(tag TagID, name string, dims Dimensions, unit Unit, values []elem.SharedFixedArray) (*Variable, error) {
	buf := elem.NewSharedFixedArrayBuffer(append([]elem.SharedFixedArray(nil), values...))
	return newVariable(tag, name, unit, dims, buf)
}

// NewSmallIndexVectorVariable creates a Variable over per-element small
// index vectors (Coord::DetectorGrouping).
func NewSmallIndexVectorVariable(tag TagID, name string, dims Dimensions, values [][]int64) (*Variable, error) {
	buf := elem.NewSmallIndexVectorBuffer(append([][]int64(nil), values...))
	return newVariable(tag, name, Dimensionless, dims, buf)
}

// NewIndexVectorVariable creates a Variable over per-element index
// vectors (Coord::ComponentChildren and similar).
func NewIndexVectorVariable(tag TagID, name string, dims Dimensions, values [][]int64) (*Variable, error) {
	buf := elem.NewIndexVectorBuffer(append([][]int64(nil), values...))
	return newVariable(tag, name, Dimensionless, dims, buf)
}

// NewStringVectorVariable creates a Variable over per-element string
// vectors (Data::History).
func NewStringVectorVariable(tag TagID, name string, dims Dimensions, values [][]string) (*Variable, error) {
	buf := elem.NewStringVectorBuffer(append([][]string(nil), values...))
	return newVariable(tag, name, Dimensionless, dims, buf)
}

// NewZeroVariable creates a Variable of tag's element kind, filled
// with the Go zero value of that kind ("count + default" construction,
// spec §4.F).
func NewZeroVariable(tag TagID, name string, dims Dimensions) (*Variable, error) {
	buf, err := elem.NewZeroed(tag.ElementKind(), dims.Volume())
	if err != nil {
		return nil, err
	}
	return newVariable(tag, name, tag.DefaultUnit(), dims, buf)
}

// NewFilledVariable creates a Variable of tag's element kind, with
// every element set to fill ("count + fill" construction, spec §4.F).
// fill must be assignable to tag's element kind.
func NewFilledVariable(tag TagID, name string, dims Dimensions, fill any) (*Variable, error) {
	v, err := NewZeroVariable(tag, name, dims)
	if err != nil {
		return nil, err
	}
	buf := v.writeBuffer()
	for i := 0; i < buf.Len(); i++ {
		if err := buf.SetAt(i, fill); err != nil {
			return nil, err
		}
	}
	return v, nil
}
