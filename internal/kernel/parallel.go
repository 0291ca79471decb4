// Package kernel provides the parallel-for primitive that the rebin
// kernel partitions its outer iterated Dims across
// (spec §5, §9 "Concurrency in kernels"). Every chunk a caller
// receives owns a disjoint index range, so kernels built on top of
// ParallelFor never need locking.
package kernel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options configures ParallelFor.
type Options struct {
	workers   int
	chunkSize int
}

// Option mutates Options.
type Option func(*Options)

// WithWorkers caps the number of concurrent chunks. n <= 0 leaves the
// default (runtime.GOMAXPROCS(0)) in place.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithMinChunkSize sets the outer-index count at or below which
// ParallelFor runs fn once, sequentially, to avoid paying scheduling
// overhead on tiny Variables. Above it, chunks are sized by the worker
// count alone and may be smaller than n.
func WithMinChunkSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

func defaultOptions() Options {
	return Options{workers: runtime.GOMAXPROCS(0), chunkSize: 64}
}

// ParallelFor partitions [0, n) into contiguous, disjoint chunks and
// invokes fn(begin, end) once per chunk, running chunks concurrently.
// It returns the first error any chunk reports, after all chunks have
// finished (errgroup semantics) — partial results are never left
// mid-mutation from the caller's point of view because kernels built
// on top of this validate before calling ParallelFor.
func ParallelFor(ctx context.Context, n int, fn func(begin, end int) error, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if n <= 0 {
		return nil
	}
	if n <= o.chunkSize || o.workers <= 1 {
		return fn(0, n)
	}

	workers := o.workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for begin := 0; begin < n; begin += chunk {
		begin := begin
		end := begin + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return fn(begin, end)
		})
	}
	return g.Wait()
}
