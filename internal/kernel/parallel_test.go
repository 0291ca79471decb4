package kernel_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatterlab/nddata/internal/kernel"
)

func TestParallelForCoversEveryIndexExactlyOnce(t *testing.T) {
	n := 1000
	seen := make([]int32, n)
	err := kernel.ParallelFor(context.Background(), n, func(begin, end int) error {
		for i := begin; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
		return nil
	}, kernel.WithWorkers(4), kernel.WithMinChunkSize(10))
	require.NoError(t, err)
	for i, v := range seen {
		assert.Equalf(t, int32(1), v, "index %d visited %d times", i, v)
	}
}

func TestParallelForRunsSequentiallyBelowChunkSize(t *testing.T) {
	var calls int32
	err := kernel.ParallelFor(context.Background(), 5, func(begin, end int) error {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, begin)
		assert.Equal(t, 5, end)
		return nil
	}, kernel.WithMinChunkSize(64))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls)
}

func TestParallelForPropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := kernel.ParallelFor(context.Background(), 1000, func(begin, end int) error {
		return boom
	}, kernel.WithWorkers(4), kernel.WithMinChunkSize(10))
	assert.ErrorIs(t, err, boom)
}

func TestParallelForNoopOnEmptyRange(t *testing.T) {
	called := false
	err := kernel.ParallelFor(context.Background(), 0, func(begin, end int) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}
