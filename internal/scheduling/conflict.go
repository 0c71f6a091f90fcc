package scheduling

// Slot pairs an entity with the time it occupies inside some scope, either a
// session inside a venue or a timed presentation inside a session.
type Slot struct {
	ID       string
	Interval Interval
}

// PresentationBufferMinutes is the mandatory transition gap between two
// sibling presentations in the same session.
const PresentationBufferMinutes = 5

// FindConflicts returns the ids of every sibling slot whose interval overlaps
// the candidate, skipping excludeID (the entity being updated). When
// bufferMinutes is positive the candidate is inflated by that amount on each
// side before testing, so slots closer than the buffer also conflict.
//
// The scan is O(n) over the siblings; scopes are expected to hold tens of
// entries at most.
func FindConflicts(candidate Interval, siblings []Slot, excludeID string, bufferMinutes int) []string {
	probe := candidate.Inflate(bufferMinutes)

	var conflicts []string
	for _, sibling := range siblings {
		if excludeID != "" && sibling.ID == excludeID {
			continue
		}
		if probe.Overlaps(sibling.Interval) {
			conflicts = append(conflicts, sibling.ID)
		}
	}
	return conflicts
}
