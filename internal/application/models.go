package application

import (
	"time"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

// EventInput captures caller provided event fields.
type EventInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// Event represents a persisted event.
type Event struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventDayInput captures caller provided day fields.
type EventDayInput struct {
	EventID   string
	Date      time.Time
	SortOrder *int
}

// EventDay represents one calendar day of an event.
type EventDay struct {
	ID        string
	EventID   string
	Date      time.Time
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VenueInput captures caller provided venue fields.
type VenueInput struct {
	EventDayID string
	Name       string
	Capacity   *int
	SortOrder  *int
}

// Venue represents a room hosting sessions on one event day.
type Venue struct {
	ID         string
	EventDayID string
	Name       string
	Capacity   *int
	SortOrder  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SessionInput captures caller provided session fields. Start and end are
// minutes since midnight on the venue's day.
type SessionInput struct {
	VenueID      string
	Title        string
	SessionType  string
	StartMinutes int
	EndMinutes   int
	IsBreak      bool
	SponsorID    *string
	CategoryIDs  []string
	ModeratorIDs []string
	SortOrder    *int
}

// ProgramSession represents a persisted session.
type ProgramSession struct {
	ID           string
	VenueID      string
	Title        string
	SessionType  string
	StartMinutes int
	EndMinutes   int
	IsBreak      bool
	SponsorID    *string
	CategoryIDs  []string
	ModeratorIDs []string
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SpeakerInput binds a participant to a presentation in a given role.
type SpeakerInput struct {
	ParticipantID string
	Role          string
}

// PresentationInput captures caller provided presentation fields. Start and
// end are optional as a pair; absent they inherit the session's interval.
type PresentationInput struct {
	SessionID        string
	Title            string
	PresentationType string
	StartMinutes     *int
	EndMinutes       *int
	DurationMinutes  int
	Speakers         []SpeakerInput
	SortOrder        *int
}

// Presentation represents a persisted presentation.
type Presentation struct {
	ID               string
	SessionID        string
	Title            string
	PresentationType string
	StartMinutes     *int
	EndMinutes       *int
	DurationMinutes  int
	SortOrder        int
	Speakers         []Speaker
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Speaker is one speaker assignment on a presentation.
type Speaker struct {
	ParticipantID string
	Role          string
	SortOrder     int
}

// ParticipantInput captures caller provided participant fields.
type ParticipantInput struct {
	FullName    string
	Email       *string
	CanSpeak    bool
	CanModerate bool
}

// Participant represents a person who may speak and/or moderate.
type Participant struct {
	ID          string
	FullName    string
	Email       *string
	CanSpeak    bool
	CanModerate bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReorderItemInput is one entry of a bulk drag-and-drop request. Unset
// optional fields keep the entity's stored value.
type ReorderItemInput struct {
	Kind         string
	EntityID     string
	VenueID      string
	SessionID    string
	StartMinutes *int
	EndMinutes   *int
	SortOrder    *int
}

// ConflictReport summarizes every scheduling violation found across an
// event's current program.
type ConflictReport struct {
	EventID     string
	GeneratedAt time.Time
	Violations  []scheduling.Violation
}
