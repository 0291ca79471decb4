package dataset

import "fmt"

// MaxDims is the maximum number of distinct Dims a Dimensions value
// may hold (spec §3: "at most 6 (Dim, extent) pairs").
const MaxDims = 6

// Dimensions is an ordered sequence of at most MaxDims (Dim, extent)
// pairs with distinct Dims and non-negative extents. Order is
// significant: index 0 is outermost, the last populated index is
// innermost. It is a plain value type — packed into a fixed array
// rather than a slice, mirroring the source prototype's "should fit in
// a single cacheline" design note (§4.A) and the teacher's own
// preference for small fixed-size shape descriptors over
// heap-allocated ones.
type Dimensions struct {
	labels [MaxDims]Dim
	extent [MaxDims]int
	n      int
}

// NewDimensions builds a Dimensions from an ordered list of (Dim,
// extent) pairs, outermost first. It fails with ErrTooManyDimensions,
// ErrDuplicateDimension, ErrNegativeExtent, or (for the Invalid Dim)
// ErrDimensionNotFound, exactly as spec §3/§4.A require.
func NewDimensions(pairs ...DimExtent) (Dimensions, error) {
	var d Dimensions
	for _, p := range pairs {
		if err := d.add(p.Dim, p.Extent); err != nil {
			return Dimensions{}, err
		}
	}
	return d, nil
}

// DimExtent is one (Dim, extent) pair, used to build a Dimensions.
type DimExtent struct {
	Dim    Dim
	Extent int
}

// D is shorthand for constructing a DimExtent pair.
func D(dim Dim, extent int) DimExtent { return DimExtent{Dim: dim, Extent: extent} }

func (d *Dimensions) add(dim Dim, extent int) error {
	if dim == Invalid {
		return fmt.Errorf("nddata: %w: Dim::Invalid is not a valid dimension", ErrDimensionNotFound)
	}
	if extent < 0 {
		return fmt.Errorf("nddata: %w: %d for %s", ErrNegativeExtent, extent, dim)
	}
	if d.n >= MaxDims {
		return ErrTooManyDimensions
	}
	for i := 0; i < d.n; i++ {
		if d.labels[i] == dim {
			return fmt.Errorf("nddata: %w: %s", ErrDuplicateDimension, dim)
		}
	}
	d.labels[d.n] = dim
	d.extent[d.n] = extent
	d.n++
	return nil
}

// Add appends a new (Dim, extent) pair as the new innermost dimension,
// returning the extended Dimensions. The receiver is unchanged.
func (d Dimensions) Add(dim Dim, extent int) (Dimensions, error) {
	out := d
	if err := out.add(dim, extent); err != nil {
		return Dimensions{}, err
	}
	return out, nil
}

// Ndim returns the number of populated (Dim, extent) entries.
func (d Dimensions) Ndim() int { return d.n }

// Empty reports whether Ndim() == 0 (a scalar/rank-0 shape).
func (d Dimensions) Empty() bool { return d.n == 0 }

// Volume returns the product of all extents, or 1 for a rank-0 shape.
func (d Dimensions) Volume() int {
	v := 1
	for i := 0; i < d.n; i++ {
		v *= d.extent[i]
	}
	return v
}

// Contains reports whether dim appears anywhere in d.
func (d Dimensions) Contains(dim Dim) bool {
	_, ok := d.indexOf(dim)
	return ok
}

func (d Dimensions) indexOf(dim Dim) (int, bool) {
	for i := 0; i < d.n; i++ {
		if d.labels[i] == dim {
			return i, true
		}
	}
	return 0, false
}

// Size returns the extent along dim, or an error wrapping
// ErrDimensionNotFound if dim is absent.
func (d Dimensions) Size(dim Dim) (int, error) {
	i, ok := d.indexOf(dim)
	if !ok {
		return 0, &DimensionNotFoundError{Dim: dim, Dims: d}
	}
	return d.extent[i], nil
}

// MustSize is Size without the error return, for call sites that have
// already validated dim is present.
func (d Dimensions) MustSize(dim Dim) int {
	n, err := d.Size(dim)
	if err != nil {
		panic(err)
	}
	return n
}

// Offset returns the row-major stride of dim: the product of the
// extents of every dimension strictly after dim (spec §3). Dims after
// the last populated index don't exist, so the innermost dim always
// has offset 1.
func (d Dimensions) Offset(dim Dim) (int, error) {
	i, ok := d.indexOf(dim)
	if !ok {
		return 0, &DimensionNotFoundError{Dim: dim, Dims: d}
	}
	stride := 1
	for j := i + 1; j < d.n; j++ {
		stride *= d.extent[j]
	}
	return stride, nil
}

// Label returns the Dim at position i (0 = outermost).
func (d Dimensions) Label(i int) Dim {
	if i < 0 || i >= d.n {
		return Invalid
	}
	return d.labels[i]
}

// Labels returns the ordered Dims, outermost first.
func (d Dimensions) Labels() []Dim {
	out := make([]Dim, d.n)
	copy(out, d.labels[:d.n])
	return out
}

// Shape returns the ordered extents, outermost first.
func (d Dimensions) Shape() []int {
	out := make([]int, d.n)
	copy(out, d.extent[:d.n])
	return out
}

// Relabel renames the Dim at position i.
func (d Dimensions) Relabel(i int, label Dim) (Dimensions, error) {
	if i < 0 || i >= d.n {
		return Dimensions{}, ErrIndexOutOfRange
	}
	out := d
	out.labels[i] = label
	return out, nil
}

// Resize returns a copy of d with dim's extent set to size, keeping
// dim's position. Fails if dim is absent.
func (d Dimensions) Resize(dim Dim, size int) (Dimensions, error) {
	i, ok := d.indexOf(dim)
	if !ok {
		return Dimensions{}, &DimensionNotFoundError{Dim: dim, Dims: d}
	}
	if size < 0 {
		return Dimensions{}, fmt.Errorf("nddata: %w: %d for %s", ErrNegativeExtent, size, dim)
	}
	out := d
	out.extent[i] = size
	return out, nil
}

// Erase returns a copy of d with dim removed, shifting later Dims left.
func (d Dimensions) Erase(dim Dim) (Dimensions, error) {
	i, ok := d.indexOf(dim)
	if !ok {
		return Dimensions{}, &DimensionNotFoundError{Dim: dim, Dims: d}
	}
	var out Dimensions
	for j := 0; j < d.n; j++ {
		if j == i {
			continue
		}
		_ = out.add(d.labels[j], d.extent[j])
	}
	return out, nil
}

// ContainsDims reports whether every (Dim, extent) pair of other
// appears in d with an identical extent (spec §3).
func (d Dimensions) ContainsDims(other Dimensions) bool {
	for i := 0; i < other.n; i++ {
		sz, ok := d.indexOf(other.labels[i])
		if !ok || d.extent[sz] != other.extent[i] {
			return false
		}
	}
	return true
}

// Equal is order-preserving equality: same Dims, same extents, same
// order.
func (d Dimensions) Equal(other Dimensions) bool {
	if d.n != other.n {
		return false
	}
	for i := 0; i < d.n; i++ {
		if d.labels[i] != other.labels[i] || d.extent[i] != other.extent[i] {
			return false
		}
	}
	return true
}

// IsContiguousIn reports whether d's Dims are a contiguous suffix of
// parent's Dims with matching extents, or d is empty (spec §3).
func (d Dimensions) IsContiguousIn(parent Dimensions) bool {
	if d.n == 0 {
		return true
	}
	if d.n > parent.n {
		return false
	}
	start := parent.n - d.n
	for i := 0; i < d.n; i++ {
		if d.labels[i] != parent.labels[start+i] || d.extent[i] != parent.extent[start+i] {
			return false
		}
	}
	return true
}

// String renders Dimensions as e.g. "{X: 2, Y: 3}".
func (d Dimensions) String() string {
	s := "{"
	for i := 0; i < d.n; i++ {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %d", d.labels[i], d.extent[i])
	}
	return s + "}"
}

// ConcatenateDims returns Dimensions whose extent along dim equals
// extentOr1(a, dim) + extentOr1(b, dim), treating a Dim absent from
// one operand as extent 1 (spec §4.A). Every other Dim present in
// either operand keeps its extent (both operands must agree on it,
// which callers validate before calling this).
func ConcatenateDims(dim Dim, a, b Dimensions) (Dimensions, error) {
	var out Dimensions
	seen := map[Dim]bool{}
	// Preserve a's order first, so the join Dim ends up wherever it
	// already sits in a (or becomes the outermost Dim if new to both,
	// matching b's elements following a's in storage).
	for i := 0; i < a.n; i++ {
		l, e := a.labels[i], a.extent[i]
		if l == dim {
			e = extentOr1(a, dim) + extentOr1(b, dim)
		}
		if err := out.add(l, e); err != nil {
			return Dimensions{}, err
		}
		seen[l] = true
	}
	for i := 0; i < b.n; i++ {
		l := b.labels[i]
		if seen[l] {
			continue
		}
		e := b.extent[i]
		if l == dim {
			e = extentOr1(a, dim) + extentOr1(b, dim)
		}
		if err := out.add(l, e); err != nil {
			return Dimensions{}, err
		}
		seen[l] = true
	}
	if !seen[dim] {
		var front Dimensions
		if err := front.add(dim, 2); err != nil {
			return Dimensions{}, err
		}
		for i := 0; i < out.n; i++ {
			if err := front.add(out.labels[i], out.extent[i]); err != nil {
				return Dimensions{}, err
			}
		}
		out = front
	}
	return out, nil
}

func extentOr1(d Dimensions, dim Dim) int {
	if n, err := d.Size(dim); err == nil {
		return n
	}
	return 1
}
