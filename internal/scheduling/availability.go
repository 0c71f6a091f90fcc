package scheduling

// ParticipantRole is the capacity in which a participant is committed to a
// slot.
type ParticipantRole string

const (
	RoleSpeaker   ParticipantRole = "speaker"
	RoleModerator ParticipantRole = "moderator"
)

// CommitmentSource tells which entity kind produced a commitment.
type CommitmentSource string

const (
	CommitmentSourceSession      CommitmentSource = "session"
	CommitmentSourcePresentation CommitmentSource = "presentation"
)

// Commitment is one existing claim on a participant's time: a session they
// moderate or a presentation they speak in. Untimed presentations are
// reported with their parent session's interval.
type Commitment struct {
	ID       string
	Source   CommitmentSource
	Role     ParticipantRole
	Interval Interval
}

// FindUnavailable returns every commitment overlapping the candidate
// interval, skipping excludeID (the session or presentation under edit).
// Overlap uses the same half-open semantics as sibling conflict checks; a
// participant may leave one commitment exactly when the next begins.
func FindUnavailable(candidate Interval, commitments []Commitment, excludeID string) []Commitment {
	var conflicting []Commitment
	for _, commitment := range commitments {
		if excludeID != "" && commitment.ID == excludeID {
			continue
		}
		if candidate.Overlaps(commitment.Interval) {
			conflicting = append(conflicting, commitment)
		}
	}
	return conflicting
}
