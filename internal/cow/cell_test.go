package cow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/internal/cow"
	"github.com/scatterlab/nddata/internal/elem"
)

func TestWriteClonesOnSharedAccess(t *testing.T) {
	a := cow.New(elem.NewNumericBuffer(elem.KindFloat64, []float64{1, 2, 3}))
	b := a.Clone()
	require.False(t, a.Unique())

	buf := b.Write(nil)
	require.NoError(t, buf.SetAt(0, 99.0))

	assert.Equal(t, 1.0, a.Read().At(0))
	assert.Equal(t, 99.0, b.Read().At(0))
	assert.True(t, a.Unique())
	assert.True(t, b.Unique())
}

func TestWriteIsNoopWhenUnique(t *testing.T) {
	a := cow.New(elem.NewNumericBuffer(elem.KindFloat64, []float64{1, 2, 3}))
	before := a.ID()
	_ = a.Write(nil)
	assert.Equal(t, before, a.ID())
}
