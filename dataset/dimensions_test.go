package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/dataset"
)

func TestDimensionsRejectsDuplicateAndInvalid(t *testing.T) {
	_, err := dataset.NewDimensions(dataset.D(dataset.X, 2), dataset.D(dataset.X, 3))
	assert.ErrorIs(t, err, dataset.ErrDuplicateDimension)

	_, err = dataset.NewDimensions(dataset.D(dataset.Invalid, 2))
	assert.ErrorIs(t, err, dataset.ErrDimensionNotFound)

	_, err = dataset.NewDimensions(dataset.D(dataset.X, -1))
	assert.ErrorIs(t, err, dataset.ErrNegativeExtent)
}

func TestDimensionsOffsetAndVolume(t *testing.T) {
	d, err := dataset.NewDimensions(dataset.D(dataset.Y, 3), dataset.D(dataset.X, 4))
	require.NoError(t, err)
	assert.Equal(t, 12, d.Volume())

	yOff, err := d.Offset(dataset.Y)
	require.NoError(t, err)
	assert.Equal(t, 4, yOff)

	xOff, err := d.Offset(dataset.X)
	require.NoError(t, err)
	assert.Equal(t, 1, xOff)
}

func TestDimensionsContainsAndEqual(t *testing.T) {
	full, err := dataset.NewDimensions(dataset.D(dataset.Y, 2), dataset.D(dataset.X, 3))
	require.NoError(t, err)
	partial, err := dataset.NewDimensions(dataset.D(dataset.X, 3))
	require.NoError(t, err)

	assert.True(t, full.ContainsDims(partial))
	assert.False(t, partial.ContainsDims(full))
	assert.True(t, full.Equal(full))
	assert.False(t, full.Equal(partial))
}

func TestConcatenateDimsTreatsAbsenceAsOne(t *testing.T) {
	a, err := dataset.NewDimensions(dataset.D(dataset.Spectrum, 3))
	require.NoError(t, err)
	b, err := dataset.NewDimensions(dataset.D(dataset.Spectrum, 3))
	require.NoError(t, err)

	out, err := dataset.ConcatenateDims(dataset.Tof, a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, out.MustSize(dataset.Tof))
	assert.Equal(t, 3, out.MustSize(dataset.Spectrum))
}
