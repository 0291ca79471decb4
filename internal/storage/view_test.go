package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/internal/elem"
	"github.com/scatterlab/nddata/internal/storage"
)

func TestViewTransposeReordersElements(t *testing.T) {
	base := elem.NewNumericBuffer(elem.KindFloat64, []float64{1, 2, 3, 4, 5, 6})
	// base is row-major {Y:2, X:3}; a transposed view swaps to {X:3, Y:2}.
	v := storage.NewView(base, []int{3, 2}, []int{1, 3}, 0)
	require.Equal(t, 6, v.Len())
	assert.Equal(t, 1.0, v.At(0))
	assert.Equal(t, 4.0, v.At(1))
	assert.Equal(t, 2.0, v.At(2))
	assert.Equal(t, 5.0, v.At(3))
}

func TestViewBroadcastRepeatsElement(t *testing.T) {
	base := elem.NewNumericBuffer(elem.KindFloat64, []float64{10, 20})
	// broadcast the length-2 base across a new leading Dim of extent 3.
	v := storage.NewView(base, []int{3, 2}, []int{0, 1}, 0)
	assert.Equal(t, 6, v.Len())
	for row := 0; row < 3; row++ {
		assert.Equal(t, 10.0, v.At(row*2))
		assert.Equal(t, 20.0, v.At(row*2+1))
	}
}

func TestViewMaterializeCopiesInProjectedOrder(t *testing.T) {
	base := elem.NewNumericBuffer(elem.KindFloat64, []float64{1, 2, 3, 4})
	v := storage.NewView(base, []int{2, 2}, []int{1, 2}, 0)
	mat, err := v.Materialize()
	require.NoError(t, err)
	assert.Equal(t, 1.0, mat.At(0))
	assert.Equal(t, 3.0, mat.At(1))
	assert.Equal(t, 2.0, mat.At(2))
	assert.Equal(t, 4.0, mat.At(3))

	require.NoError(t, mat.SetAt(0, 999.0))
	assert.Equal(t, 1.0, base.At(0))
}

func TestViewSetAtWritesThroughToBase(t *testing.T) {
	base := elem.NewNumericBuffer(elem.KindFloat64, []float64{0, 0})
	v := storage.NewView(base, []int{2}, []int{1}, 0)
	require.NoError(t, v.SetAt(1, 5.0))
	assert.Equal(t, 5.0, base.At(1))
}
