package scheduling

// Code identifies a business-rule violation class. Every code is a
// recoverable, user-facing validation failure; infrastructure problems are
// reported as errors instead.
type Code string

const (
	// CodeInvalidInterval flags an interval whose end does not come after its
	// start, or a session duration outside the allowed bounds.
	CodeInvalidInterval Code = "invalid_interval"
	// CodeOutOfBounds flags a child interval not contained in its parent.
	CodeOutOfBounds Code = "out_of_bounds"
	// CodeVenueTimeConflict flags overlapping sessions in one venue.
	CodeVenueTimeConflict Code = "venue_time_conflict"
	// CodePresentationTimeConflict flags overlapping or insufficiently
	// buffered presentations in one session.
	CodePresentationTimeConflict Code = "presentation_time_conflict"
	// CodeCapacityExceeded flags a presentation count or per-presentation
	// duration limit breach.
	CodeCapacityExceeded Code = "capacity_exceeded"
	// CodeDurationBudgetExceeded flags an aggregate presentation duration
	// breach of the session's headroom budget.
	CodeDurationBudgetExceeded Code = "duration_budget_exceeded"
	// CodeParticipantDoubleBooking flags a participant committed to two
	// overlapping slots anywhere in the same event.
	CodeParticipantDoubleBooking Code = "participant_double_booking"
	// CodeInvalidSortOrder flags a negative explicit ordering key.
	CodeInvalidSortOrder Code = "invalid_sort_order"
)

// Violation describes one rule breach attributable to one entity.
type Violation struct {
	EntityID string `json:"entity_id,omitempty"`
	Code     Code   `json:"code"`
	Message  string `json:"message"`
	// ConflictsWith carries the id of the sibling slot or commitment that
	// collided with the candidate, when one exists.
	ConflictsWith string `json:"conflicts_with,omitempty"`
	// Role is set on double-booking violations: the role the participant
	// holds in the conflicting commitment.
	Role ParticipantRole `json:"role,omitempty"`
	// ParticipantID is set on double-booking violations.
	ParticipantID string `json:"participant_id,omitempty"`
}

// Result collects the violations produced by one validation pass. An empty
// result means the mutation may be persisted.
type Result struct {
	Violations []Violation `json:"violations"`
}

// OK reports whether the validated mutation passed every check.
func (r Result) OK() bool {
	return len(r.Violations) == 0
}

func (r *Result) add(violations ...Violation) {
	r.Violations = append(r.Violations, violations...)
}
