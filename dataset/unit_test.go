package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/dataset"
)

func TestUnitMulIdentityAndClosedTable(t *testing.T) {
	got, err := dataset.Length.Mul(dataset.Dimensionless)
	require.NoError(t, err)
	assert.Equal(t, dataset.Length, got)

	got, err = dataset.Length.Mul(dataset.Length)
	require.NoError(t, err)
	assert.Equal(t, dataset.Area, got)

	got, err = dataset.Area.Mul(dataset.Length)
	require.NoError(t, err)
	assert.Equal(t, dataset.Volume, got)
}

func TestUnitMulRejectsUndefinedProduct(t *testing.T) {
	_, err := dataset.Mass.Mul(dataset.Energy)
	assert.ErrorIs(t, err, dataset.ErrUnitArithmetic)
}

func TestUnitDivInverseAndClosedTable(t *testing.T) {
	got, err := dataset.Counts.Div(dataset.Area)
	require.NoError(t, err)
	assert.Equal(t, dataset.CountsPerArea, got)

	got, err = dataset.Dimensionless.Div(dataset.Time)
	require.NoError(t, err)
	assert.Equal(t, dataset.InverseTime, got)

	got, err = dataset.Length.Div(dataset.Length)
	require.NoError(t, err)
	assert.Equal(t, dataset.Dimensionless, got)
}

func TestUnitDivRejectsUndefinedQuotient(t *testing.T) {
	_, err := dataset.Mass.Div(dataset.Time)
	assert.ErrorIs(t, err, dataset.ErrUnitArithmetic)
}

func TestConvertIsReserved(t *testing.T) {
	v, err := dataset.NewFloat64Variable(dataset.DataValue, "v", dataset.Dimensions{}, dataset.Dimensionless, []float64{1})
	require.NoError(t, err)
	_, err = dataset.Convert(v, dataset.Length)
	assert.ErrorIs(t, err, dataset.ErrNotImplemented)
}
