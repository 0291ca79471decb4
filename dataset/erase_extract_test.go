package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/dataset"
)

func TestEraseDropsUnreferencedDim(t *testing.T) {
	rowDims := dims(t, dataset.D(dataset.Row, 2))
	extraDims := dims(t, dataset.D(dataset.Component, 3))

	row, err := dataset.NewFloat64Variable(dataset.DataValue, "row", rowDims, dataset.Dimensionless, []float64{1, 2})
	require.NoError(t, err)
	comp, err := dataset.NewFloat64Variable(dataset.DataValue, "comp", extraDims, dataset.Dimensionless, []float64{1, 2, 3})
	require.NoError(t, err)

	d := dataset.New()
	require.NoError(t, d.Insert(row))
	require.NoError(t, d.Insert(comp))
	assert.True(t, d.Dims().Contains(dataset.Component))

	require.NoError(t, d.Erase(dataset.DataValue, "comp"))
	assert.False(t, d.Dims().Contains(dataset.Component))
	assert.True(t, d.Dims().Contains(dataset.Row))
}

func TestExtractReturnsDataPlusCoordinates(t *testing.T) {
	rowDims := dims(t, dataset.D(dataset.Row, 2))
	x, err := dataset.NewFloat64Variable(dataset.CoordX, "", rowDims, dataset.Length, []float64{0, 1})
	require.NoError(t, err)
	value, err := dataset.NewFloat64Variable(dataset.DataValue, "value", rowDims, dataset.Dimensionless, []float64{10, 20})
	require.NoError(t, err)
	other, err := dataset.NewFloat64Variable(dataset.DataValue, "other", rowDims, dataset.Dimensionless, []float64{30, 40})
	require.NoError(t, err)

	d := dataset.New()
	require.NoError(t, d.Insert(x))
	require.NoError(t, d.Insert(value))
	require.NoError(t, d.Insert(other))

	extracted, err := d.Extract("value")
	require.NoError(t, err)

	_, err = extracted.Find(dataset.CoordX, "")
	require.NoError(t, err, "extracted dataset should retain the original's coordinates")
	ev, err := extracted.Find(dataset.DataValue, "value")
	require.NoError(t, err)
	got, err := ev.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, got)

	_, err = d.Find(dataset.DataValue, "value")
	assert.Error(t, err, "value should be removed from the source dataset")
	_, err = d.Find(dataset.CoordX, "")
	require.NoError(t, err, "coordinates stay on the source dataset too")
	_, err = extracted.Find(dataset.DataValue, "other")
	assert.Error(t, err, "extract should not pull unrelated names")
}

func TestExtractFailsWhenNameNotFound(t *testing.T) {
	d := dataset.New()
	_, err := d.Extract("missing")
	assert.ErrorIs(t, err, dataset.ErrNotFound)
}
