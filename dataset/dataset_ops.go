package dataset

import "fmt"

// datasetVarianceTag maps a value tag to its companion variance tag,
// for the error-propagation rules dataset arithmetic applies when both
// operands carry variances (spec §4.H "Dataset arithmetic").
var datasetVarianceTag = map[TagID]TagID{
	DataValue: DataVariance,
}

// AddAssign implements d += other: every Variable of other is matched
// against d by (tag, name) and added in place (spec §4.H). Coordinates
// present in both operands must compare equal (ErrCoordinateMismatch);
// a coordinate or data Variable of other with no match in d is inserted
// into d rather than failing (spec.md:145-146: MissingPartner-on-absence
// is reserved for `*`). Variance companions are added to each other:
// variances sum under linear error propagation for uncorrelated
// operands.
func (d *Dataset) AddAssign(other *Dataset) error {
	return d.combine(other, false,
		func(lhs, rhs *Variable) error { return lhs.AddAssign(rhs) },
		func(_, _, lhsVar, rhsVar *Variable) error { return lhsVar.AddAssign(rhsVar) })
}

// SubAssign implements d -= other, mirroring AddAssign.
func (d *Dataset) SubAssign(other *Dataset) error {
	return d.combine(other, false,
		func(lhs, rhs *Variable) error { return lhs.SubAssign(rhs) },
		func(_, _, lhsVar, rhsVar *Variable) error { return lhsVar.AddAssign(rhsVar) })
}

// MulAssign implements d *= other. Unlike AddAssign/SubAssign, a data
// Variable of other with no (tag, name) match in d fails with
// ErrMissingPartner instead of being inserted, since silently
// multiplying by an implicit identity would change results
// unexpectedly (spec.md:146). Variance companions propagate via
// Var(xy) = Vx*y^2 + Vy*x^2 (spec.md:147) rather than a sum.
func (d *Dataset) MulAssign(other *Dataset) error {
	return d.combine(other, true,
		func(lhs, rhs *Variable) error { return lhs.MulAssign(rhs) },
		mulAssignVariance)
}

// mulAssignVariance propagates Var(xy) = Vx*y^2 + Vy*x^2 into lhsVar in
// place, given x (lhsVal, the value operand's state before the
// multiply), y (rhsVal), and the two variance companions.
func mulAssignVariance(lhsVal, rhsVal, lhsVar, rhsVar *Variable) error {
	ySquared := rhsVal.Clone()
	if err := ySquared.MulAssign(rhsVal); err != nil {
		return err
	}
	if err := lhsVar.MulAssign(ySquared); err != nil {
		return err
	}
	xSquared := lhsVal.Clone()
	if err := xSquared.MulAssign(lhsVal); err != nil {
		return err
	}
	term := rhsVar.Clone()
	if err := term.MulAssign(xSquared); err != nil {
		return err
	}
	return lhsVar.AddAssign(term)
}

// combine implements the shared matching/pairing logic behind
// AddAssign/SubAssign/MulAssign (spec §4.H "Arithmetic"). Coordinates
// present in both operands must compare equal; a coordinate present
// only in other is always inserted into d. Data/attribute Variables are
// paired by (tag, name); a name present only in other is inserted
// unless failOnMissing (reserved for `*`), in which case it fails
// ErrMissingPartner. varianceOp is invoked, alongside apply, whenever
// both operands carry a value/variance pair for the same name.
func (d *Dataset) combine(other *Dataset, failOnMissing bool, apply func(lhs, rhs *Variable) error, varianceOp func(lhsVal, rhsVal, lhsVar, rhsVar *Variable) error) error {
	varianceTargets := map[TagID]bool{}
	for _, varTag := range datasetVarianceTag {
		varianceTargets[varTag] = true
	}
	for _, rhs := range other.entries {
		if rhs.Category() == CategoryCoord {
			lhs, err := d.Find(rhs.tag, rhs.name)
			if err != nil {
				if err := d.Insert(rhs.shallowCopy()); err != nil {
					return err
				}
				continue
			}
			if !lhs.Equal(rhs) {
				return fmt.Errorf("%w: %s", ErrCoordinateMismatch, rhs.tag)
			}
			continue
		}
		if varianceTargets[rhs.tag] {
			continue // handled alongside its value tag below
		}
		lhs, err := d.Find(rhs.tag, rhs.name)
		if err != nil {
			if failOnMissing {
				return fmt.Errorf("%w: %s %q", ErrMissingPartner, rhs.tag, rhs.name)
			}
			if err := d.insertMissing(other, rhs); err != nil {
				return err
			}
			continue
		}
		varTag, hasVariance := datasetVarianceTag[rhs.tag]
		var rhsVar *Variable
		if hasVariance {
			if rv, err := other.Find(varTag, rhs.name); err == nil {
				rhsVar = rv
			} else {
				hasVariance = false // variance is optional
			}
		}
		lhsVal := lhs
		if hasVariance {
			lhsVal = lhs.Clone()
		}
		if err := apply(lhs, rhs); err != nil {
			return err
		}
		if !hasVariance {
			continue
		}
		lhsVar, err := d.Find(varTag, rhs.name)
		if err != nil {
			return fmt.Errorf("%w: %s %q", ErrMissingPartner, varTag, rhs.name)
		}
		if err := varianceOp(lhsVal, rhs, lhsVar, rhsVar); err != nil {
			return err
		}
	}
	return nil
}

// insertMissing inserts a shallow copy of a data/attribute Variable
// that has no match in d, along with its variance companion (if other
// carries one and d doesn't already), since the pair should move
// together (spec.md:145-146 "it is inserted").
func (d *Dataset) insertMissing(other *Dataset, rhs *Variable) error {
	if err := d.Insert(rhs.shallowCopy()); err != nil {
		return err
	}
	varTag, hasVariance := datasetVarianceTag[rhs.tag]
	if !hasVariance {
		return nil
	}
	rhsVar, err := other.Find(varTag, rhs.name)
	if err != nil {
		return nil // variance is optional
	}
	if _, err := d.Find(varTag, rhs.name); err == nil {
		return nil // already present
	}
	return d.Insert(rhsVar.shallowCopy())
}

// Category exposes the Variable's tag category for dataset-level pairing.
func (v *Variable) Category() Category { return v.tag.Category() }

// Sort reorders every Variable in d along dim according to the
// ascending order of key's values (spec §8 "sort by column"). key must
// itself be a Variable of d.
func (d *Dataset) Sort(key TagID, keyName string, dim Dim) (*Dataset, error) {
	keyVar, err := d.Find(key, keyName)
	if err != nil {
		return nil, err
	}
	index, err := SortIndex(keyVar, dim)
	if err != nil {
		return nil, err
	}
	out := &Dataset{dims: d.dims, logger: d.logger}
	for _, v := range d.entries {
		if !v.dims.Contains(dim) {
			out.entries = append(out.entries, v.shallowCopy())
			continue
		}
		permuted, err := Permute(v, dim, index)
		if err != nil {
			return nil, err
		}
		out.entries = append(out.entries, permuted)
	}
	return out, nil
}

// Filter selects the rows of d along mask's Dim whose entry in mask is
// nonzero (spec §3 "filter" at the Dataset level: every Variable
// sharing that Dim is filtered together so the dataset stays internally
// consistent). mask must be a 1-D int32 Coord::Mask/Coord::DetectorMask
// Variable.
func (d *Dataset) Filter(mask *Variable) (*Dataset, error) {
	bm, dim, err := maskBitmap(mask)
	if err != nil {
		return nil, err
	}
	out := &Dataset{logger: d.logger}
	for _, v := range d.entries {
		if !v.dims.Contains(dim) {
			if err := out.Insert(v.shallowCopy()); err != nil {
				return nil, err
			}
			continue
		}
		filtered, err := filterWithBitmap(v, dim, bm)
		if err != nil {
			return nil, err
		}
		if err := out.Insert(filtered); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Split partitions d into n Datasets along dim, splitting every
// Variable that carries dim and copying every Variable that doesn't
// (spec §3 "split" at the Dataset level).
func (d *Dataset) Split(dim Dim, n int) ([]*Dataset, error) {
	out := make([]*Dataset, n)
	for i := range out {
		out[i] = &Dataset{logger: d.logger}
	}
	for _, v := range d.entries {
		if !v.dims.Contains(dim) {
			for i := range out {
				if err := out[i].Insert(v.shallowCopy()); err != nil {
					return nil, err
				}
			}
			continue
		}
		pieces, err := Split(v, dim, n)
		if err != nil {
			return nil, err
		}
		for i, p := range pieces {
			if err := out[i].Insert(p); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Concatenate joins a and b along dim: every (tag, name) pair present
// in a must also be present in b (and vice versa), and each pair is
// joined with ConcatenateVariables (spec §3/§8 "concatenate along a
// new Dim").
func Concatenate(dim Dim, a, b *Dataset) (*Dataset, error) {
	out := &Dataset{logger: a.logger}
	seen := map[TagID]map[string]bool{}
	mark := func(tag TagID, name string) {
		if seen[tag] == nil {
			seen[tag] = map[string]bool{}
		}
		seen[tag][name] = true
	}
	for _, av := range a.entries {
		bv, err := b.Find(av.tag, av.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q", ErrMissingPartner, av.tag, av.name)
		}
		mark(av.tag, av.name)
		var joined *Variable
		if !av.dims.Contains(dim) && !bv.dims.Contains(dim) && av.Equal(bv) {
			// Shared, unchanged across both halves (e.g. a detector
			// coordinate that doesn't vary along dim): keep once.
			joined = av.shallowCopy()
		} else {
			joined, err = ConcatenateVariables(dim, av, bv)
			if err != nil {
				return nil, err
			}
		}
		if err := out.Insert(joined); err != nil {
			return nil, err
		}
	}
	for _, bv := range b.entries {
		if seen[bv.tag] != nil && seen[bv.tag][bv.name] {
			continue
		}
		return nil, fmt.Errorf("%w: %s %q", ErrMissingPartner, bv.tag, bv.name)
	}
	return out, nil
}

// Rebin rebins every Variable of d that shares dim with the coordinate
// stored under (coordTag, "") onto newEdges (spec §3/§8 "rebin join").
func (d *Dataset) Rebin(dim Dim, coordTag TagID, newEdges []float64) (*Dataset, error) {
	oldCoord, err := d.FindUnique(coordTag)
	if err != nil {
		return nil, err
	}
	oldEdges, err := oldCoord.Values()
	if err != nil {
		return nil, err
	}
	out := &Dataset{logger: d.logger}
	newCoord, err := NewFloat64Variable(coordTag, "", mustDims(D(dim, len(newEdges))), oldCoord.unit, newEdges)
	if err != nil {
		return nil, err
	}
	if err := out.Insert(newCoord); err != nil {
		return nil, err
	}
	for _, v := range d.entries {
		if v.tag == coordTag {
			continue
		}
		if !v.dims.Contains(dim) {
			if err := out.Insert(v.shallowCopy()); err != nil {
				return nil, err
			}
			continue
		}
		rebinned, err := Rebin(v, dim, oldEdges, newEdges)
		if err != nil {
			return nil, err
		}
		if err := out.Insert(rebinned); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func mustDims(pairs ...DimExtent) Dimensions {
	d, err := NewDimensions(pairs...)
	if err != nil {
		panic(err)
	}
	return d
}
