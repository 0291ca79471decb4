package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/dataset"
)

func TestDatasetAddAssignInsertsRHSOnlyCoordinateAndData(t *testing.T) {
	shape := dims(t, dataset.D(dataset.Row, 2))

	lhsValue, err := dataset.NewFloat64Variable(dataset.DataValue, "value", shape, dataset.Dimensionless, []float64{1, 2})
	require.NoError(t, err)
	lhs := dataset.New()
	require.NoError(t, lhs.Insert(lhsValue))

	rhsValue, err := dataset.NewFloat64Variable(dataset.DataValue, "value", shape, dataset.Dimensionless, []float64{10, 20})
	require.NoError(t, err)
	rhsExtra, err := dataset.NewFloat64Variable(dataset.DataValue, "extra", shape, dataset.Dimensionless, []float64{100, 200})
	require.NoError(t, err)
	rhsX, err := dataset.NewFloat64Variable(dataset.CoordX, "", shape, dataset.Length, []float64{0, 1})
	require.NoError(t, err)
	rhs := dataset.New()
	require.NoError(t, rhs.Insert(rhsValue))
	require.NoError(t, rhs.Insert(rhsExtra))
	require.NoError(t, rhs.Insert(rhsX))

	require.NoError(t, lhs.AddAssign(rhs))

	v, err := lhs.Find(dataset.DataValue, "value")
	require.NoError(t, err)
	got, err := v.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22}, got)

	extra, err := lhs.Find(dataset.DataValue, "extra")
	require.NoError(t, err, "rhs-only data variable should be inserted rather than fail MissingPartner")
	extraGot, err := extra.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200}, extraGot)

	x, err := lhs.Find(dataset.CoordX, "")
	require.NoError(t, err, "rhs-only coordinate should be inserted into lhs")
	xGot, err := x.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, xGot)
}

func TestDatasetMulAssignFailsMissingPartnerOnRHSOnlyData(t *testing.T) {
	shape := dims(t, dataset.D(dataset.Row, 2))

	lhsValue, err := dataset.NewFloat64Variable(dataset.DataValue, "value", shape, dataset.Dimensionless, []float64{1, 2})
	require.NoError(t, err)
	lhs := dataset.New()
	require.NoError(t, lhs.Insert(lhsValue))

	rhsValue, err := dataset.NewFloat64Variable(dataset.DataValue, "value", shape, dataset.Dimensionless, []float64{3, 4})
	require.NoError(t, err)
	rhsExtra, err := dataset.NewFloat64Variable(dataset.DataValue, "extra", shape, dataset.Dimensionless, []float64{5, 6})
	require.NoError(t, err)
	rhs := dataset.New()
	require.NoError(t, rhs.Insert(rhsValue))
	require.NoError(t, rhs.Insert(rhsExtra))

	err = lhs.MulAssign(rhs)
	assert.ErrorIs(t, err, dataset.ErrMissingPartner)
}

func TestDatasetMulAssignPropagatesVariance(t *testing.T) {
	shape := dims(t, dataset.D(dataset.Row, 1))

	buildOperand := func(value, variance []float64) *dataset.Dataset {
		v, err := dataset.NewFloat64Variable(dataset.DataValue, "v", shape, dataset.Dimensionless, value)
		require.NoError(t, err)
		vr, err := dataset.NewFloat64Variable(dataset.DataVariance, "v", shape, dataset.Dimensionless, variance)
		require.NoError(t, err)
		d := dataset.New()
		require.NoError(t, d.Insert(v))
		require.NoError(t, d.Insert(vr))
		return d
	}

	x, y := 2.0, 3.0
	vx, vy := 0.1, 0.2
	lhs := buildOperand([]float64{x}, []float64{vx})
	rhs := buildOperand([]float64{y}, []float64{vy})

	require.NoError(t, lhs.MulAssign(rhs))

	value, err := lhs.Find(dataset.DataValue, "v")
	require.NoError(t, err)
	got, err := value.Values()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{x * y}, got, 1e-9)

	variance, err := lhs.Find(dataset.DataVariance, "v")
	require.NoError(t, err)
	gotVar, err := variance.Values()
	require.NoError(t, err)
	want := vx*y*y + vy*x*x
	assert.InDeltaSlice(t, []float64{want}, gotVar, 1e-9)
}

func TestDatasetMulAssignSlice(t *testing.T) {
	shape := dims(t, dataset.D(dataset.Row, 2))
	value, err := dataset.NewFloat64Variable(dataset.DataValue, "value", shape, dataset.Dimensionless, []float64{2, 3})
	require.NoError(t, err)
	d := dataset.New()
	require.NoError(t, d.Insert(value))

	whole, err := d.Slice(dataset.Row, 0, 2)
	require.NoError(t, err)
	require.NoError(t, d.MulAssignSlice(whole))

	v, err := d.Find(dataset.DataValue, "value")
	require.NoError(t, err)
	got, err := v.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 9}, got)
}
