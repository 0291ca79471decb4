package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/dataset"
)

func buildSpectrumDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	shape := dims(t, dataset.D(dataset.Spectrum, 3))
	spectrumNumber, err := dataset.NewInt32Variable(dataset.CoordSpectrumNumber, "", shape, dataset.Dimensionless, []int32{10, 20, 30})
	require.NoError(t, err)
	value, err := dataset.NewFloat64Variable(dataset.DataValue, "value", shape, dataset.Dimensionless, []float64{1, 2, 3})
	require.NoError(t, err)

	d := dataset.New()
	require.NoError(t, d.Insert(spectrumNumber))
	require.NoError(t, d.Insert(value))
	return d
}

func TestDatasetSliceRangeMaterialize(t *testing.T) {
	d := buildSpectrumDataset(t)

	s, err := d.Slice(dataset.Spectrum, 1, 3)
	require.NoError(t, err)
	out, err := s.Materialize()
	require.NoError(t, err)

	assert.Equal(t, 2, out.Dims().MustSize(dataset.Spectrum))
	sn, err := out.Find(dataset.CoordSpectrumNumber, "")
	require.NoError(t, err)
	snVals, err := sn.Get(dataset.CoordSpectrumNumber)
	require.NoError(t, err)
	assert.Equal(t, int32(20), snVals.At(0))
	assert.Equal(t, int32(30), snVals.At(1))
}

func TestDatasetSlicePointDropsDimensionCoordinate(t *testing.T) {
	d := buildSpectrumDataset(t)

	s, err := d.Slice(dataset.Spectrum, 1, -1)
	require.NoError(t, err)
	out, err := s.Materialize()
	require.NoError(t, err)

	_, err = out.Find(dataset.CoordSpectrumNumber, "")
	assert.Error(t, err)
	v, err := out.Find(dataset.DataValue, "value")
	require.NoError(t, err)
	got, err := v.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, got)
}

func TestDatasetSliceNameSelectsCoordsPlusNamed(t *testing.T) {
	d := buildSpectrumDataset(t)
	extra, err := dataset.NewFloat64Variable(dataset.DataValue, "other", d.Dims(), dataset.Dimensionless, []float64{9, 9, 9})
	require.NoError(t, err)
	require.NoError(t, d.Insert(extra))

	s := d.SliceName("value")
	out, err := s.Materialize()
	require.NoError(t, err)

	assert.Equal(t, 2, out.Len())
	_, err = out.Find(dataset.CoordSpectrumNumber, "")
	require.NoError(t, err)
	_, err = out.Find(dataset.DataValue, "value")
	require.NoError(t, err)
	_, err = out.Find(dataset.DataValue, "other")
	assert.Error(t, err)
}

func TestDatasetAddAssignSlice(t *testing.T) {
	d := buildSpectrumDataset(t)

	whole, err := d.Slice(dataset.Spectrum, 0, 3)
	require.NoError(t, err)
	require.NoError(t, d.AddAssignSlice(whole))

	v, err := d.Find(dataset.DataValue, "value")
	require.NoError(t, err)
	got, err := v.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, got)
}

func TestDatasetSliceComposesRestrictionsOnSameDim(t *testing.T) {
	d := buildSpectrumDataset(t)

	s, err := d.Slice(dataset.Spectrum, 1, 3)
	require.NoError(t, err)
	s, err = s.Slice(dataset.Spectrum, 0, 1)
	require.NoError(t, err)
	out, err := s.Materialize()
	require.NoError(t, err)

	v, err := out.Find(dataset.DataValue, "value")
	require.NoError(t, err)
	got, err := v.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, got)
}
