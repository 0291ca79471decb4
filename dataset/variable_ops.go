package dataset

import (
	"context"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/scatterlab/nddata/internal/elem"
	"github.com/scatterlab/nddata/internal/kernel"
)

// ConcatenateVariables joins a and b along dim into a new owning
// Variable (spec §3 "concatenate"). Both must share tag, name, and
// unit; their Dimensions must agree on every Dim other than dim.
func ConcatenateVariables(dim Dim, a, b *Variable) (*Variable, error) {
	if a.tag != b.tag {
		return nil, &TagMismatchError{Want: a.tag, Got: b.tag}
	}
	if a.name != b.name {
		return nil, fmt.Errorf("nddata: concatenate: name mismatch %q vs %q", a.name, b.name)
	}
	if a.unit != b.unit {
		return nil, &UnitMismatchError{Op: "concatenate", LHS: a.unit, RHS: b.unit}
	}
	for i := 0; i < a.dims.Ndim(); i++ {
		l := a.dims.Label(i)
		if l == dim {
			continue
		}
		if n, err := b.dims.Size(l); err != nil || n != a.dims.MustSize(l) {
			return nil, &DimensionMismatchError{Op: "concatenate", LHS: a.dims, RHS: b.dims}
		}
	}
	newDims, err := ConcatenateDims(dim, a.dims, b.dims)
	if err != nil {
		return nil, err
	}
	abuf, bbuf := a.readBuffer(), b.readBuffer()
	joined, err := abuf.Append(bbuf)
	if err != nil {
		return nil, err
	}
	return newVariable(a.tag, a.name, a.unit, newDims, joined)
}

// Split partitions v into n equal-length pieces along dim (spec §3
// "split", the inverse of concatenate). dim's extent must be evenly
// divisible by n.
func Split(v *Variable, dim Dim, n int) ([]*Variable, error) {
	extent, err := v.dims.Size(dim)
	if err != nil {
		return nil, err
	}
	if n <= 0 || extent%n != 0 {
		return nil, fmt.Errorf("nddata: split: extent %d not divisible by %d", extent, n)
	}
	step := extent / n
	out := make([]*Variable, n)
	for i := 0; i < n; i++ {
		s, err := v.Slice(dim, i*step, (i+1)*step)
		if err != nil {
			return nil, err
		}
		mat, err := s.Materialize()
		if err != nil {
			return nil, err
		}
		out[i] = mat
	}
	return out, nil
}

// Permute reorders v's elements along dim according to index (spec §3
// "permute", used by Sort to physically reorder a Variable once the
// permutation has been computed from a key column).
func Permute(v *Variable, dim Dim, index []int) (*Variable, error) {
	extent, err := v.dims.Size(dim)
	if err != nil {
		return nil, err
	}
	if len(index) != extent {
		return nil, fmt.Errorf("nddata: permute: index length %d does not match extent %d", len(index), extent)
	}
	buf := v.readBuffer()
	out, err := elem.NewZeroed(buf.Kind(), buf.Len())
	if err != nil {
		return nil, err
	}
	stride, err := v.dims.Offset(dim)
	if err != nil {
		return nil, err
	}
	outer := buf.Len() / extent / stride
	for o := 0; o < outer; o++ {
		for newPos, oldPos := range index {
			for s := 0; s < stride; s++ {
				srcIdx := o*extent*stride + oldPos*stride + s
				dstIdx := o*extent*stride + newPos*stride + s
				if err := out.SetAt(dstIdx, buf.At(srcIdx)); err != nil {
					return nil, err
				}
			}
		}
	}
	return newVariable(v.tag, v.name, v.unit, v.dims, out)
}

// SortIndex computes the permutation that would stable-sort key's
// values ascending along dim (spec §8 "sort by column"; only
// KindFloat64/KindInt32/KindInt64 keys are supported).
func SortIndex(key *Variable, dim Dim) ([]int, error) {
	extent, err := key.dims.Size(dim)
	if err != nil {
		return nil, err
	}
	buf := key.readBuffer()
	index := make([]int, extent)
	for i := range index {
		index[i] = i
	}
	less, err := lessFunc(buf)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(index, func(i, j int) bool { return less(index[i], index[j]) })
	return index, nil
}

func lessFunc(buf elem.Buffer) (func(i, j int) bool, error) {
	switch b := buf.(type) {
	case *elem.NumericBuffer[float64]:
		raw := b.Raw()
		return func(i, j int) bool { return raw[i] < raw[j] }, nil
	case *elem.NumericBuffer[int32]:
		raw := b.Raw()
		return func(i, j int) bool { return raw[i] < raw[j] }, nil
	case *elem.NumericBuffer[int64]:
		raw := b.Raw()
		return func(i, j int) bool { return raw[i] < raw[j] }, nil
	default:
		return nil, &NonArithmeticTypeError{Kind: buf.Kind().String()}
	}
}

// maskBitmap validates that mask is a 1-D int32 Variable (a
// Coord::Mask or Coord::DetectorMask, spec §4.F/H "filter(var, mask)")
// and converts its nonzero entries into a compact roaring.Bitmap of
// kept indices, along with the single Dim the mask restricts.
func maskBitmap(mask *Variable) (*roaring.Bitmap, Dim, error) {
	if mask.dims.Ndim() != 1 {
		return nil, 0, fmt.Errorf("nddata: mask must be 1-D, got %d dims", mask.dims.Ndim())
	}
	dim := mask.dims.Label(0)
	nb, ok := mask.readBuffer().(*elem.NumericBuffer[int32])
	if !ok {
		return nil, 0, fmt.Errorf("nddata: mask must be int32-backed, got %s", mask.Kind())
	}
	bm := roaring.New()
	raw := nb.Raw()
	for i, v := range raw {
		if v != 0 {
			bm.Add(uint32(i))
		}
	}
	return bm, dim, nil
}

// Filter selects the elements of v along mask's Dim whose entry in mask
// is nonzero, preserving relative order (spec §3 "filter", backing
// Coord::Mask/Coord::DetectorMask). mask must be a 1-D int32 Variable.
func Filter(v *Variable, mask *Variable) (*Variable, error) {
	bm, dim, err := maskBitmap(mask)
	if err != nil {
		return nil, err
	}
	return filterWithBitmap(v, dim, bm)
}

// filterWithBitmap is the index-set-driven core of Filter, taking an
// already-validated roaring.Bitmap of indices to keep along dim.
func filterWithBitmap(v *Variable, dim Dim, mask *roaring.Bitmap) (*Variable, error) {
	extent, err := v.dims.Size(dim)
	if err != nil {
		return nil, err
	}
	kept := make([]int, 0, mask.GetCardinality())
	it := mask.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i < extent {
			kept = append(kept, i)
		}
	}
	newDims, err := v.dims.Resize(dim, len(kept))
	if err != nil {
		return nil, err
	}
	buf := v.readBuffer()
	stride, err := v.dims.Offset(dim)
	if err != nil {
		return nil, err
	}
	outer := buf.Len() / extent / stride
	out, err := elem.NewZeroed(buf.Kind(), outer*len(kept)*stride)
	if err != nil {
		return nil, err
	}
	for o := 0; o < outer; o++ {
		for newPos, oldPos := range kept {
			for s := 0; s < stride; s++ {
				srcIdx := o*extent*stride + oldPos*stride + s
				dstIdx := o*len(kept)*stride + newPos*stride + s
				if err := out.SetAt(dstIdx, buf.At(srcIdx)); err != nil {
					return nil, err
				}
			}
		}
	}
	return newVariable(v.tag, v.name, v.unit, newDims, out)
}

// Rebin redistributes v (a histogram along dim, sharing dim with
// oldEdges) onto newEdges via overlap-weighted linear redistribution
// (spec §3 "rebin"). oldEdges and newEdges must both have
// v.dims.Size(dim)+1 and the target extent+1 entries respectively, and
// both must be monotonically non-decreasing. Non-innermost Dims are
// processed in parallel chunks via internal/kernel.
func Rebin(v *Variable, dim Dim, oldEdges, newEdges []float64) (*Variable, error) {
	if err := checkMonotonic(oldEdges); err != nil {
		return nil, err
	}
	if err := checkMonotonic(newEdges); err != nil {
		return nil, err
	}
	oldExtent, err := v.dims.Size(dim)
	if err != nil {
		return nil, err
	}
	if len(oldEdges) != oldExtent+1 {
		return nil, ErrEdgeCountMismatch
	}
	newExtent := len(newEdges) - 1
	newDims, err := v.dims.Resize(dim, newExtent)
	if err != nil {
		return nil, err
	}
	src, ok := v.readBuffer().(*elem.NumericBuffer[float64])
	if !ok {
		return nil, &NonArithmeticTypeError{Kind: v.Kind().String()}
	}
	stride, err := v.dims.Offset(dim)
	if err != nil {
		return nil, err
	}
	outer := src.Len() / oldExtent / stride
	dstData := make([]float64, outer*newExtent*stride)

	err = kernel.ParallelFor(context.Background(), outer, func(begin, end int) error {
		for o := begin; o < end; o++ {
			for s := 0; s < stride; s++ {
				rebinColumn(src.Raw(), oldEdges, dstData, newEdges, o, s, stride, oldExtent, newExtent)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	buf := elem.NewNumericBuffer(elem.KindFloat64, dstData)
	return newVariable(v.tag, v.name, v.unit, newDims, buf)
}

// rebinColumn redistributes one (outer, s) column of src (indexed as
// o*oldExtent*stride + k*stride + s) onto dst using overlap-weighted
// conservation of the summed quantity across bin edges.
func rebinColumn(src, oldEdges []float64, dst, newEdges []float64, o, s, stride, oldExtent, newExtent int) {
	j := 0
	for i := 0; i < newExtent; i++ {
		lo, hi := newEdges[i], newEdges[i+1]
		var acc float64
		for j < oldExtent && oldEdges[j+1] <= lo {
			j++
		}
		k := j
		for k < oldExtent && oldEdges[k] < hi {
			overlap := overlapWidth(oldEdges[k], oldEdges[k+1], lo, hi)
			if overlap > 0 {
				width := oldEdges[k+1] - oldEdges[k]
				frac := 1.0
				if width > 0 {
					frac = overlap / width
				}
				acc += src[o*oldExtent*stride+k*stride+s] * frac
			}
			k++
		}
		dst[o*newExtent*stride+i*stride+s] = acc
	}
}

func overlapWidth(aLo, aHi, bLo, bHi float64) float64 {
	lo := aLo
	if bLo > lo {
		lo = bLo
	}
	hi := aHi
	if bHi < hi {
		hi = bHi
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func checkMonotonic(edges []float64) error {
	for i := 1; i < len(edges); i++ {
		if edges[i] < edges[i-1] {
			return ErrNonMonotonicEdges
		}
	}
	return nil
}
