// Package storage implements the two storage backend variants
// described in the spec's component D: an owning buffer (simply an
// internal/elem.Buffer, which already provides random access,
// iteration, and copy_from-style assignment) and a non-owning strided
// View over another buffer's elements. Both satisfy Backend, the
// common element-iteration contract used everywhere above this layer
// (copy-on-write cells, Variable arithmetic, DatasetView iteration).
//
// This package intentionally knows nothing about Dim labels: shapes
// and strides are plain integer slices computed by the caller (the
// dataset package, which does know about Dimensions). That keeps
// broadcasting and transposition — both purely arithmetic once the
// stride table is built — decoupled from dimension-label bookkeeping.
package storage

import "github.com/scatterlab/nddata/internal/elem"

// Backend is the common element-iteration contract: length, boxed
// random access, and boxed assignment. Both an owning elem.Buffer and
// a strided View satisfy it.
type Backend interface {
	Len() int
	Kind() elem.Kind
	At(i int) any
	SetAt(i int, v any) error
}

var _ Backend = elem.Buffer(nil)
