package dataset

import (
	"fmt"
	"log/slog"

	"github.com/scatterlab/nddata/internal/cow"
	"github.com/scatterlab/nddata/internal/elem"
	"github.com/scatterlab/nddata/internal/storage"
)

// Variable is a type-erased, unit-carrying, dimension-labelled array
// (spec §3 "Variable"). It is a value type: copying a Variable is O(1)
// (the backing cow.Cell's refcount is incremented); any mutating
// access deep-clones the storage first if it is shared.
type Variable struct {
	tag    TagID
	name   string
	unit   Unit
	dims   Dimensions
	cell   *cow.Cell
	logger *slog.Logger
}

// newVariable validates and constructs a Variable owning buf.
func newVariable(tag TagID, name string, unit Unit, dims Dimensions, buf elem.Buffer) (*Variable, error) {
	if tag == tagInvalid || tag >= tagCount {
		return nil, fmt.Errorf("nddata: unknown tag id %d", tag)
	}
	if tag.IsComputed() {
		return nil, fmt.Errorf("%w: %s", ErrComputedTagNotStorable, tag)
	}
	if buf.Kind() != tag.ElementKind() {
		return nil, fmt.Errorf("nddata: %s expects element kind %s, got %s", tag, tag.ElementKind(), buf.Kind())
	}
	if tag.RequiresName() && name == "" {
		return nil, fmt.Errorf("nddata: %s requires a name", tag)
	}
	if !tag.RequiresName() && name != "" {
		return nil, fmt.Errorf("nddata: coordinate %s must not carry a name", tag)
	}
	if buf.Len() != dims.Volume() {
		return nil, &ShapeMismatchError{Volume: dims.Volume(), Given: buf.Len()}
	}
	return &Variable{tag: tag, name: name, unit: unit, dims: dims, cell: cow.New(buf)}, nil
}

// Tag returns the Variable's tag id.
func (v *Variable) Tag() TagID { return v.tag }

// Name returns the Variable's name (empty for coordinates).
func (v *Variable) Name() string { return v.name }

// Unit returns the Variable's unit.
func (v *Variable) Unit() Unit { return v.unit }

// Dims returns the Variable's Dimensions.
func (v *Variable) Dims() Dimensions { return v.dims }

// Kind returns the element-type variant backing this Variable.
func (v *Variable) Kind() elem.Kind { return v.cell.Read().Kind() }

// WithLogger returns a copy of v that logs copy-on-write clone events
// to logger. The storage cell (and its sharing) is unaffected.
func (v *Variable) WithLogger(logger *slog.Logger) *Variable {
	cp := *v
	cp.logger = logger
	return &cp
}

// Clone returns an independent Variable with its own private storage,
// regardless of current sharing.
func (v *Variable) Clone() *Variable {
	cp := *v
	cp.cell = cow.New(v.cell.Read().Clone())
	return &cp
}

// Share returns a shallow O(1) copy of v sharing the same storage cell
// (spec §3: "copy is O(1) shallow (increments ref count)"). The result
// aliases v's storage until either is written through writeBuffer, at
// which point the cell deep-clones for the writer and the two Variables
// become independent. This is the public equivalent of `copy = var` in
// spec.md's scenario walkthroughs, and of the aliasing that
// self-assignment hazard checks (e.g. the cell.ID() comparison in
// resolveOperand, used by AddAssign/SubAssign) exist to detect.
func (v *Variable) Share() *Variable {
	return v.shallowCopy()
}

// shallowCopy returns a shallow O(1) copy sharing the same storage cell
// (used internally wherever a Variable value is copied, matching
// "copy is O(1) shallow" from spec §3).
func (v *Variable) shallowCopy() *Variable {
	cp := *v
	cp.cell = v.cell.Clone()
	return &cp
}

// readBuffer returns the current storage for const access.
func (v *Variable) readBuffer() elem.Buffer { return v.cell.Read() }

// writeBuffer ensures unique ownership of the storage and returns it
// for mutation, deep-cloning first if the cell is shared.
func (v *Variable) writeBuffer() elem.Buffer { return v.cell.Write(v.logger) }

// backend exposes the Variable's storage through the narrow
// storage.Backend contract, used by arithmetic/broadcast code that
// doesn't need the full elem.Buffer surface.
func (v *Variable) backend() storage.Backend { return v.readBuffer() }

// Get returns a Backend over the Variable's raw element sequence in
// the Variable's own Dimensions order, failing with ErrTagMismatch if
// tag does not match this Variable's tag id (spec §4.F "Accessors").
func (v *Variable) Get(tag TagID) (storage.Backend, error) {
	if tag != v.tag {
		return nil, &TagMismatchError{Want: tag, Got: v.tag}
	}
	return v.readBuffer(), nil
}

// Values returns the raw []float64 slice for a KindFloat64 Variable,
// intended for callers (kernels, tests) that need direct numeric
// access rather than boxed At/SetAt. Fails if the Variable isn't
// backed by a float64 buffer.
func (v *Variable) Values() ([]float64, error) {
	nb, ok := v.readBuffer().(*elem.NumericBuffer[float64])
	if !ok {
		return nil, fmt.Errorf("nddata: %s is not a float64 variable", v.tag)
	}
	return nb.Raw(), nil
}

// Equal reports whether v and other have identical name, unit, tag id,
// Dimensions, and element-wise-equal storage (spec §4.F "Equality").
// Comparison logically iterates both in v's own Dimensions order.
func (v *Variable) Equal(other *Variable) bool {
	if v == other {
		return true
	}
	if v.cell.ID() == other.cell.ID() {
		return true // short-circuit: cells currently share the same buffer
	}
	if v.tag != other.tag || v.name != other.name || v.unit != other.unit || !v.dims.Equal(other.dims) {
		return false
	}
	a, b := v.readBuffer(), other.readBuffer()
	n := a.Len()
	if n != b.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		if !a.EqualAt(i, b, i) {
			return false
		}
	}
	return true
}
