package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scatterlab/nddata/dataset"
	"github.com/scatterlab/nddata/internal/elem"
)

func TestTagRegistryDimensionCoordinates(t *testing.T) {
	assert.True(t, dataset.CoordTof.IsDimensionCoordinate())
	assert.Equal(t, dataset.Tof, dataset.CoordTof.CoordinateDimension())
	assert.False(t, dataset.CoordMonitorTof.IsDimensionCoordinate())

	assert.True(t, dataset.CoordSpectrumNumber.IsDimensionCoordinate())
	assert.Equal(t, dataset.Spectrum, dataset.CoordSpectrumNumber.CoordinateDimension())
	assert.True(t, dataset.CoordRowLabel.IsDimensionCoordinate())
	assert.Equal(t, dataset.Row, dataset.CoordRowLabel.CoordinateDimension())
}

func TestTagRegistryElementKindAndCategory(t *testing.T) {
	assert.Equal(t, elem.KindFloat64, dataset.DataValue.ElementKind())
	assert.Equal(t, dataset.CategoryData, dataset.DataValue.Category())
	assert.Equal(t, dataset.CategoryCoord, dataset.CoordX.Category())
	assert.Equal(t, dataset.CategoryAttr, dataset.AttrExperimentLog.Category())
}

func TestTagRegistryComputedTagsCannotBeStored(t *testing.T) {
	assert.True(t, dataset.DataStdDev.IsComputed())
	assert.True(t, dataset.CoordSpectrumPosition.IsComputed())
	assert.False(t, dataset.DataValue.IsComputed())

	_, err := dataset.NewFloat64Variable(dataset.DataStdDev, "s", dataset.Dimensions{}, dataset.Dimensionless, []float64{1})
	assert.ErrorIs(t, err, dataset.ErrComputedTagNotStorable)
}

func TestTagRequiresName(t *testing.T) {
	assert.False(t, dataset.CoordX.RequiresName())
	assert.True(t, dataset.DataValue.RequiresName())
	assert.True(t, dataset.AttrExperimentLog.RequiresName())
}
