package persistence

import "context"

// EventRepository exposes CRUD operations for events and their days.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) error
	UpdateEvent(ctx context.Context, event Event) error
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	DeleteEvent(ctx context.Context, id string) error

	CreateEventDay(ctx context.Context, day EventDay) error
	GetEventDay(ctx context.Context, id string) (EventDay, error)
	ListEventDays(ctx context.Context, eventID string) ([]EventDay, error)
	DeleteEventDay(ctx context.Context, id string) error
}

// VenueRepository exposes CRUD operations for venues.
type VenueRepository interface {
	CreateVenue(ctx context.Context, venue Venue) error
	UpdateVenue(ctx context.Context, venue Venue) error
	GetVenue(ctx context.Context, id string) (Venue, error)
	ListVenuesForDay(ctx context.Context, eventDayID string) ([]Venue, error)
	DeleteVenue(ctx context.Context, id string) error
}

// SessionRepository stores program sessions with their moderators and
// category references.
type SessionRepository interface {
	CreateSession(ctx context.Context, session ProgramSession) error
	UpdateSession(ctx context.Context, session ProgramSession) error
	GetSession(ctx context.Context, id string) (ProgramSession, error)
	ListSessionsInVenue(ctx context.Context, venueID string) ([]ProgramSession, error)
	ListSessionsForEvent(ctx context.Context, eventID string) ([]ProgramSession, error)
	DeleteSession(ctx context.Context, id string) error
}

// PresentationRepository stores presentations and their speaker assignments.
type PresentationRepository interface {
	CreatePresentation(ctx context.Context, presentation Presentation) error
	UpdatePresentation(ctx context.Context, presentation Presentation) error
	GetPresentation(ctx context.Context, id string) (Presentation, error)
	ListPresentationsInSession(ctx context.Context, sessionID string) ([]Presentation, error)
	DeletePresentation(ctx context.Context, id string) error
}

// ParticipantRepository stores participants and answers availability queries.
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, participant Participant) error
	UpdateParticipant(ctx context.Context, participant Participant) error
	GetParticipant(ctx context.Context, id string) (Participant, error)
	ListParticipants(ctx context.Context) ([]Participant, error)
	DeleteParticipant(ctx context.Context, id string) error

	// CommitmentsForParticipant gathers every session the participant
	// moderates and every presentation they speak in across the whole event.
	CommitmentsForParticipant(ctx context.Context, participantID, eventID string) ([]Commitment, error)
}

// Transactor runs a function inside one storage transaction. The derived
// context must be passed to every repository call that should share the
// transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
