package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/dataset"
)

func TestDatasetViewJointIterationBinAndBroadcast(t *testing.T) {
	spectrumTof := dims(t, dataset.D(dataset.Spectrum, 2), dataset.D(dataset.Tof, 3))
	value, err := dataset.NewFloat64Variable(dataset.DataValue, "value", spectrumTof, dataset.Dimensionless,
		[]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	edges, err := dataset.NewFloat64Variable(dataset.CoordTof, "", dims(t, dataset.D(dataset.Tof, 4)), dataset.Dimensionless,
		[]float64{0, 1, 2, 3})
	require.NoError(t, err)

	x, err := dataset.NewFloat64Variable(dataset.CoordX, "", dims(t, dataset.D(dataset.Spectrum, 2)), dataset.Length,
		[]float64{10, 20})
	require.NoError(t, err)

	d := dataset.New()
	require.NoError(t, d.Insert(value))
	require.NoError(t, d.Insert(edges))
	require.NoError(t, d.Insert(x))

	dv, err := dataset.NewDatasetView(d, []dataset.Selector{
		dataset.Plain(dataset.DataValue, "value"),
		dataset.Bin(dataset.CoordTof),
		dataset.Plain(dataset.CoordX, ""),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, dv.Len())

	row, err := dv.Row(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, row[0].Value)
	assert.Equal(t, 0.0, row[1].BinLeft)
	assert.Equal(t, 1.0, row[1].BinRight)
	assert.Equal(t, 10.0, row[2].Value)

	row, err = dv.Row(4)
	require.NoError(t, err)
	assert.Equal(t, 5.0, row[0].Value)
	assert.Equal(t, 20.0, row[2].Value)

	require.NoError(t, dv.SetPlain(0, 0, 99.0))
	row, err = dv.Row(0)
	require.NoError(t, err)
	assert.Equal(t, 99.0, row[0].Value)

	assert.ErrorIs(t, dv.SetPlain(0, 2, 0.0), dataset.ErrBroadcastWrite)
}

func TestDatasetViewNoJointIterationSpace(t *testing.T) {
	spectrumTof := dims(t, dataset.D(dataset.Spectrum, 2), dataset.D(dataset.Tof, 3))
	value, err := dataset.NewFloat64Variable(dataset.DataValue, "value", spectrumTof, dataset.Dimensionless,
		[]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	edges, err := dataset.NewFloat64Variable(dataset.CoordTof, "", dims(t, dataset.D(dataset.Tof, 4)), dataset.Dimensionless,
		[]float64{0, 1, 2, 3})
	require.NoError(t, err)

	d := dataset.New()
	require.NoError(t, d.Insert(value))
	require.NoError(t, d.Insert(edges))

	_, err = dataset.NewDatasetView(d, []dataset.Selector{
		dataset.Plain(dataset.DataValue, "value"),
		dataset.Plain(dataset.CoordTof, ""),
	})
	assert.ErrorIs(t, err, dataset.ErrNoJointIterationSpace)
}

func TestDatasetViewSlabOverFixedDim(t *testing.T) {
	spectrumTof := dims(t, dataset.D(dataset.Spectrum, 2), dataset.D(dataset.Tof, 3))
	value, err := dataset.NewFloat64Variable(dataset.DataValue, "value", spectrumTof, dataset.Dimensionless,
		[]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	d := dataset.New()
	require.NoError(t, d.Insert(value))

	dv, err := dataset.NewDatasetView(d, []dataset.Selector{dataset.Slab(dataset.DataValue, "value")}, dataset.WithFixed(dataset.Tof))
	require.NoError(t, err)
	assert.Equal(t, 2, dv.Len())

	row, err := dv.Row(0)
	require.NoError(t, err)
	slab := row[0].Slab
	require.Equal(t, 3, slab.Len())
	assert.Equal(t, []any{1.0, 2.0, 3.0}, []any{slab.At(0), slab.At(1), slab.At(2)})

	row, err = dv.Row(1)
	require.NoError(t, err)
	slab = row[0].Slab
	assert.Equal(t, []any{4.0, 5.0, 6.0}, []any{slab.At(0), slab.At(1), slab.At(2)})
}

func TestDatasetViewNestedIsRebuiltPerOuterRow(t *testing.T) {
	spectrum := dims(t, dataset.D(dataset.Spectrum, 2))
	x, err := dataset.NewFloat64Variable(dataset.CoordX, "", spectrum, dataset.Length, []float64{10, 20})
	require.NoError(t, err)

	events := dims(t, dataset.D(dataset.Event, 3))
	tof, err := dataset.NewFloat64Variable(dataset.DataTof, "tof", events, dataset.Dimensionless, []float64{1, 2, 3})
	require.NoError(t, err)

	d := dataset.New()
	require.NoError(t, d.Insert(x))
	require.NoError(t, d.Insert(tof))

	dv, err := dataset.NewDatasetView(d, []dataset.Selector{
		dataset.Plain(dataset.CoordX, ""),
		dataset.Nested(dataset.Plain(dataset.DataTof, "tof")),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, dv.Len())

	row0, err := dv.Row(0)
	require.NoError(t, err)
	row1, err := dv.Row(1)
	require.NoError(t, err)

	// SelectNested rebuilds a fresh DatasetView per outer row rather
	// than a row-restricted sub-view, so unrelated outer rows see the
	// same unrestricted nested iteration space.
	assert.Equal(t, 3, row0[1].Nested.Len())
	assert.Equal(t, 3, row1[1].Nested.Len())
	nestedRow, err := row0[1].Nested.Row(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, nestedRow[0].Value)
}
