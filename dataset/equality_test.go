package dataset_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/dataset"
)

// cmp.Diff gives a readable diff on mismatch for the wide numeric
// slices these operations produce, where testify's assert.Equal only
// reports "not equal" without pointing at which element moved.
func TestConcatenateVariablesValuesDiff(t *testing.T) {
	a, err := dataset.NewFloat64Variable(dataset.DataValue, "v", dims(t, dataset.D(dataset.Tof, 2)), dataset.Dimensionless, []float64{1, 2})
	require.NoError(t, err)
	b, err := dataset.NewFloat64Variable(dataset.DataValue, "v", dims(t, dataset.D(dataset.Tof, 2)), dataset.Dimensionless, []float64{3, 4})
	require.NoError(t, err)

	joined, err := dataset.ConcatenateVariables(dataset.Tof, a, b)
	require.NoError(t, err)
	got, err := joined.Values()
	require.NoError(t, err)

	want := []float64{1, 2, 3, 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConcatenateVariables values mismatch (-want +got):\n%s", diff)
	}
}

func TestDimensionsEqualViaCmp(t *testing.T) {
	a, err := dataset.NewDimensions(dataset.D(dataset.Y, 2), dataset.D(dataset.X, 3))
	require.NoError(t, err)
	b, err := dataset.NewDimensions(dataset.D(dataset.Y, 2), dataset.D(dataset.X, 3))
	require.NoError(t, err)

	// Dimensions.Equal is picked up automatically by cmp since it
	// satisfies the Equal(T) bool shape; unexported fields never need
	// an Exporter option here.
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Dimensions mismatch (-a +b):\n%s", diff)
	}
}
