package risk

// ShouldFilter reports whether a validated token should be hidden from a
// user whose tolerance is the given level: true when the token's level is
// strictly more severe than the tolerance. Pure comparison, no I/O.
func ShouldFilter(v *Validation, tolerance Level) bool {
	if v == nil {
		return false
	}
	return v.Level.MoreSevereThan(tolerance)
}
