// Package cow implements the copy-on-write handle that backs every
// Variable's storage (spec §4.E, §9). A Cell is shared by value across
// Variable copies; Read is always safe, Write deep-clones the
// underlying Buffer the moment more than one Variable can see it, and
// leaves prior readers observing the old contents unchanged (strong
// snapshot isolation, §5).
package cow

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/scatterlab/nddata/internal/elem"
)

// Cell is a reference-counted handle owning a single Buffer. The zero
// value is not usable; construct with New.
type Cell struct {
	refs   *atomic.Int32
	id     uuid.UUID
	buffer elem.Buffer
}

// New wraps buf in a fresh Cell with a reference count of one.
func New(buf elem.Buffer) *Cell {
	refs := new(atomic.Int32)
	refs.Store(1)
	return &Cell{refs: refs, id: uuid.New(), buffer: buf}
}

// Clone returns a new Cell value sharing the same underlying Buffer
// and bumping the shared refcount — the O(1) shallow copy described in
// §3 ("copy is O(1) shallow (increments ref count)").
func (c *Cell) Clone() *Cell {
	c.refs.Add(1)
	return &Cell{refs: c.refs, id: c.id, buffer: c.buffer}
}

// Read returns the current Buffer for const access. Never triggers a
// clone; safe to call concurrently with other Reads.
func (c *Cell) Read() elem.Buffer {
	return c.buffer
}

// Write returns a Buffer safe to mutate, deep-cloning it first if the
// Cell is currently shared (refcount > 1). After Write returns, this
// Cell holds its own private copy with refcount reset to one; any
// sibling Cell created by a prior Clone keeps pointing at the
// original, unmodified Buffer.
func (c *Cell) Write(logger *slog.Logger) elem.Buffer {
	if c.refs.Load() > 1 {
		c.refs.Add(-1)
		c.refs = new(atomic.Int32)
		c.refs.Store(1)
		cloned := c.buffer.Clone()
		if logger != nil {
			logger.Debug("copy-on-write clone", "cell", c.id, "kind", c.buffer.Kind().String(), "len", c.buffer.Len())
		}
		c.buffer = cloned
		c.id = uuid.New()
	}
	return c.buffer
}

// Unique reports whether this Cell is the sole owner of its Buffer.
func (c *Cell) Unique() bool { return c.refs.Load() == 1 }

// ID returns the Cell's debug identity. Stable across Clone, reset by
// Write when a deep copy actually occurs (the clone is a distinct
// storage object and gets a fresh identity).
func (c *Cell) ID() uuid.UUID { return c.id }
