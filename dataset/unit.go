package dataset

import "fmt"

// Unit is a finite identifier set closed under multiplication and
// division via the static tables below (spec §3/§4.B). Equality is
// identifier equality.
type Unit uint8

const (
	Dimensionless Unit = iota
	Length
	Time
	InverseLength
	InverseTime
	Area
	Volume
	Mass
	Energy
	Counts
	CountsPerArea
)

var unitNames = [...]string{
	Dimensionless: "Dimensionless",
	Length:        "Length",
	Time:          "Time",
	InverseLength: "InverseLength",
	InverseTime:   "InverseTime",
	Area:          "Area",
	Volume:        "Volume",
	Mass:          "Mass",
	Energy:        "Energy",
	Counts:        "Counts",
	CountsPerArea: "CountsPerArea",
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", uint8(u))
}

type unitPair struct{ a, b Unit }

// mulTable is the closed multiplication table. Entries are looked up
// in both operand orders (multiplication is commutative here), so each
// non-identity product is listed once.
var mulTable = map[unitPair]Unit{
	{Length, Length}:        Area,
	{Length, Area}:          Volume,
	{Length, InverseLength}: Dimensionless,
	{Time, InverseTime}:     Dimensionless,
	{CountsPerArea, Area}:   Counts,
}

// Mul returns u*other or fails with ErrUnitArithmetic if the product
// is not in the closed table.
func (u Unit) Mul(other Unit) (Unit, error) {
	if u == Dimensionless {
		return other, nil
	}
	if other == Dimensionless {
		return u, nil
	}
	if r, ok := mulTable[unitPair{u, other}]; ok {
		return r, nil
	}
	if r, ok := mulTable[unitPair{other, u}]; ok {
		return r, nil
	}
	return 0, &UnitArithmeticError{Op: "*", LHS: u, RHS: other}
}

// divTable lists divisions Div looks up directly before falling back to
// inverse-then-multiply. Some entries (e.g. Counts/Area) cannot come from
// that fallback, because Area has no inverse in this closed set.
var divTable = map[unitPair]Unit{
	{Length, InverseLength}: Area, // Length / InverseLength == Length * Length
	{Volume, Length}:        Area,
	{Area, Length}:          Length,
	{Counts, Area}:          CountsPerArea,
	{Dimensionless, Time}:   InverseTime,
	{Dimensionless, Length}: InverseLength,
}

// Div returns u/other or fails with ErrUnitArithmetic.
func (u Unit) Div(other Unit) (Unit, error) {
	if other == Dimensionless {
		return u, nil
	}
	if u == other {
		return Dimensionless, nil
	}
	if r, ok := divTable[unitPair{u, other}]; ok {
		return r, nil
	}
	// Fall back to inverse-then-multiply for the pairs that already
	// have a defined inverse (Length<->InverseLength, Time<->InverseTime).
	if inv, ok := inverse(other); ok {
		return u.Mul(inv)
	}
	return 0, &UnitArithmeticError{Op: "/", LHS: u, RHS: other}
}

func inverse(u Unit) (Unit, bool) {
	switch u {
	case Length:
		return InverseLength, true
	case InverseLength:
		return Length, true
	case Time:
		return InverseTime, true
	case InverseTime:
		return Time, true
	case Dimensionless:
		return Dimensionless, true
	default:
		return 0, false
	}
}
