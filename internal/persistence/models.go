package persistence

import "time"

// Event represents a conference gathering spanning one or more calendar days.
type Event struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventDay represents one calendar day of an event. Its date must fall within
// the event's date range and is unique per event.
type EventDay struct {
	ID        string
	EventID   string
	Date      time.Time
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Venue represents a room hosting sessions on one event day. Names are unique
// within a day.
type Venue struct {
	ID         string
	EventDayID string
	Name       string
	Capacity   *int
	SortOrder  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProgramSession represents a time-boxed block inside a venue. Start and end
// are minutes since midnight on the venue's day.
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

// Presentation represents a talk inside a session. StartMinutes/EndMinutes
// are optional as a pair; absent they inherit the session's interval.
type Presentation struct {
	ID               string
	SessionID        string
	Title            string
	PresentationType string
	StartMinutes     *int
	EndMinutes       *int
	DurationMinutes  int
	SortOrder        int
	Speakers         []SpeakerAssignment
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SpeakerAssignment binds a participant to a presentation in a given role.
type SpeakerAssignment struct {
	ParticipantID string
	Role          string
	SortOrder     int
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

// Commitment is one claim on a participant's time inside an event, resolved
// to a concrete interval (untimed presentations inherit their session's).
type Commitment struct {
	ID           string
	Source       string
	Role         string
	StartMinutes int
	EndMinutes   int
}
