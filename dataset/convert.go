package dataset

// Convert is reserved for unit/coordinate conversion beyond the closed
// multiplication/division table in Unit.Mul/Unit.Div (spec §6, §9 open
// question 3). It is not implemented: the source prototype's conversion
// engine depends on a third-party unit/range library the corpus has no
// equivalent for, so this always reports ErrNotImplemented rather than
// silently no-op.
func Convert(v *Variable, target Unit) (*Variable, error) {
	return nil, ErrNotImplemented
}
