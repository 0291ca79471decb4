package elem

// Numeric is the type constraint for element types with an Arithmetic
// Buffer implementation.
type Numeric interface {
	~float64 | ~int32 | ~int64
}

// NumericBuffer implements Buffer and Arithmetic for a single numeric
// Go type. One instantiation per Kind (float64, int32, int64) covers
// every arithmetic tag in the registry.
type NumericBuffer[T Numeric] struct {
	kind Kind
	data []T
}

// NewNumericBuffer wraps data (taking ownership of the slice) as a
// Buffer of the given Kind.
func NewNumericBuffer[T Numeric](kind Kind, data []T) *NumericBuffer[T] {
	return &NumericBuffer[T]{kind: kind, data: data}
}

// Raw returns the underlying slice. Callers that need direct numeric
// access (kernels, tests) use this instead of boxing through At/SetAt.
func (b *NumericBuffer[T]) Raw() []T { return b.data }

func (b *NumericBuffer[T]) Kind() Kind { return b.kind }
func (b *NumericBuffer[T]) Len() int   { return len(b.data) }

func (b *NumericBuffer[T]) At(i int) any { return b.data[i] }

func (b *NumericBuffer[T]) SetAt(i int, v any) error {
	tv, ok := v.(T)
	if !ok {
		return typeMismatchError("SetAt", b.kind, v)
	}
	b.data[i] = tv
	return nil
}

func (b *NumericBuffer[T]) Clone() Buffer {
	cp := make([]T, len(b.data))
	copy(cp, b.data)
	return &NumericBuffer[T]{kind: b.kind, data: cp}
}

func (b *NumericBuffer[T]) EqualAt(i int, other Buffer, j int) bool {
	ob, ok := other.(*NumericBuffer[T])
	if !ok {
		return false
	}
	return b.data[i] == ob.data[j]
}

func (b *NumericBuffer[T]) Slice(begin, end int) Buffer {
	cp := make([]T, end-begin)
	copy(cp, b.data[begin:end])
	return &NumericBuffer[T]{kind: b.kind, data: cp}
}

func (b *NumericBuffer[T]) Append(other Buffer) (Buffer, error) {
	ob, ok := other.(*NumericBuffer[T])
	if !ok {
		return nil, typeMismatchError("Append", b.kind, other)
	}
	cp := make([]T, 0, len(b.data)+len(ob.data))
	cp = append(cp, b.data...)
	cp = append(cp, ob.data...)
	return &NumericBuffer[T]{kind: b.kind, data: cp}, nil
}

func (b *NumericBuffer[T]) AddAt(i int, other Buffer, j int) error {
	ob, ok := other.(*NumericBuffer[T])
	if !ok {
		return typeMismatchError("AddAt", b.kind, other)
	}
	b.data[i] += ob.data[j]
	return nil
}

func (b *NumericBuffer[T]) SubAt(i int, other Buffer, j int) error {
	ob, ok := other.(*NumericBuffer[T])
	if !ok {
		return typeMismatchError("SubAt", b.kind, other)
	}
	b.data[i] -= ob.data[j]
	return nil
}

func (b *NumericBuffer[T]) MulAt(i int, other Buffer, j int) error {
	ob, ok := other.(*NumericBuffer[T])
	if !ok {
		return typeMismatchError("MulAt", b.kind, other)
	}
	b.data[i] *= ob.data[j]
	return nil
}

var (
	_ Arithmetic = (*NumericBuffer[float64])(nil)
	_ Arithmetic = (*NumericBuffer[int32])(nil)
	_ Arithmetic = (*NumericBuffer[int64])(nil)
)
