package scheduling

// NextOrder computes the ordering key for an entity appended to a scope
// without an explicit position: one past the highest existing key, starting
// at 1 for an empty scope. Gaps in the existing keys are preserved, never
// compacted.
func NextOrder(existing []int) int {
	next := 1
	for _, order := range existing {
		if order >= next {
			next = order + 1
		}
	}
	return next
}

// ValidExplicitOrder reports whether a caller-supplied ordering key is
// acceptable for a reorder operation. Only non-negative keys are allowed;
// duplicates and gaps are the caller's business.
func ValidExplicitOrder(order int) bool {
	return order >= 0
}
