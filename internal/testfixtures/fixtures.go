package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/application"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

var (
	eventCounter        uint64
	dayCounter          uint64
	venueCounter        uint64
	sessionCounter      uint64
	presentationCounter uint64
	participantCounter  uint64
)

var referenceTime = time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ---------------------------- Event fixtures ----------------------------

// EventFixture represents a deterministic event record that can be
// materialised for application or persistence tests.
type EventFixture struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns a deterministic three-day event with optional
// overrides.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	id := fmt.Sprintf("event-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	fixture := EventFixture{
		ID:        id,
		Name:      fmt.Sprintf("Event %03d", idx),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventID overrides the generated event ID.
func WithEventID(id string) EventOption {
	return func(f *EventFixture) {
		f.ID = id
	}
}

// WithEventName overrides the generated event name.
func WithEventName(name string) EventOption {
	return func(f *EventFixture) {
		f.Name = name
	}
}

// WithEventDates sets the event's date range.
func WithEventDates(start, end time.Time) EventOption {
	return func(f *EventFixture) {
		f.StartDate = start
		f.EndDate = end
	}
}

// Persistence returns the fixture as a persistence.Event value.
func (f EventFixture) Persistence() persistence.Event {
	return persistence.Event{
		ID:        f.ID,
		Name:      f.Name,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Input returns the fixture as an application.EventInput.
func (f EventFixture) Input() application.EventInput {
	return application.EventInput{
		Name:      f.Name,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
}

// -------------------------- Event day fixtures --------------------------

// EventDayFixture represents a deterministic event day record.
type EventDayFixture struct {
	ID        string
	EventID   string
	Date      time.Time
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventDayOption configures the generated event day fixture.
type EventDayOption func(*EventDayFixture)

// NewEventDayFixture returns a deterministic event day fixture. Each fixture
// lands on a distinct date so siblings never collide on the per-event
// uniqueness rule.
func NewEventDayFixture(eventID string, opts ...EventDayOption) EventDayFixture {
	idx := atomic.AddUint64(&dayCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := EventDayFixture{
		ID:        fmt.Sprintf("day-%03d", idx),
		EventID:   eventID,
		Date:      time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(idx%3)),
		SortOrder: int(idx),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventDayID overrides the generated day ID.
func WithEventDayID(id string) EventDayOption {
	return func(f *EventDayFixture) {
		f.ID = id
	}
}

// WithEventDayDate sets the day's calendar date.
func WithEventDayDate(date time.Time) EventDayOption {
	return func(f *EventDayFixture) {
		f.Date = date
	}
}

// WithEventDaySortOrder sets the day's position within the event.
func WithEventDaySortOrder(order int) EventDayOption {
	return func(f *EventDayFixture) {
		f.SortOrder = order
	}
}

// Persistence returns the fixture as a persistence.EventDay value.
func (f EventDayFixture) Persistence() persistence.EventDay {
	return persistence.EventDay{
		ID:        f.ID,
		EventID:   f.EventID,
		Date:      f.Date,
		SortOrder: f.SortOrder,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ---------------------------- Venue fixtures ----------------------------

// VenueFixture represents a deterministic venue record.
type VenueFixture struct {
	ID         string
	EventDayID string
	Name       string
	Capacity   *int
	SortOrder  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VenueOption configures the generated venue fixture.
type VenueOption func(*VenueFixture)

// NewVenueFixture returns a deterministic venue fixture with optional
// overrides.
func NewVenueFixture(eventDayID string, opts ...VenueOption) VenueFixture {
	idx := atomic.AddUint64(&venueCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	capacity := 100 + int(idx)
	fixture := VenueFixture{
		ID:         fmt.Sprintf("venue-%03d", idx),
		EventDayID: eventDayID,
		Name:       fmt.Sprintf("Hall %03d", idx),
		Capacity:   &capacity,
		SortOrder:  int(idx),
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithVenueID overrides the generated venue ID.
func WithVenueID(id string) VenueOption {
	return func(f *VenueFixture) {
		f.ID = id
	}
}

// WithVenueName overrides the generated venue name.
func WithVenueName(name string) VenueOption {
	return func(f *VenueFixture) {
		f.Name = name
	}
}

// WithVenueCapacity sets the venue's seat count. Nil means unknown.
func WithVenueCapacity(capacity *int) VenueOption {
	return func(f *VenueFixture) {
		f.Capacity = capacity
	}
}

// Persistence returns the fixture as a persistence.Venue value.
func (f VenueFixture) Persistence() persistence.Venue {
	return persistence.Venue{
		ID:         f.ID,
		EventDayID: f.EventDayID,
		Name:       f.Name,
		Capacity:   f.Capacity,
		SortOrder:  f.SortOrder,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// Input returns the fixture as an application.VenueInput.
func (f VenueFixture) Input() application.VenueInput {
	order := f.SortOrder
	return application.VenueInput{
		EventDayID: f.EventDayID,
		Name:       f.Name,
		Capacity:   f.Capacity,
		SortOrder:  &order,
	}
}

// --------------------------- Session fixtures ---------------------------

// SessionFixture represents a deterministic session record. Each fixture
// occupies its own one-hour slot so independently generated sessions never
// conflict unless a test arranges them to.
type SessionFixture struct {
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

// SessionOption configures the generated session fixture.
type SessionOption func(*SessionFixture)

// NewSessionFixture returns a deterministic session fixture with optional
// overrides.
func NewSessionFixture(venueID string, opts ...SessionOption) SessionFixture {
	idx := atomic.AddUint64(&sessionCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	start := 9*60 + int(idx%8)*60
	fixture := SessionFixture{
		ID:           fmt.Sprintf("session-%03d", idx),
		VenueID:      venueID,
		Title:        fmt.Sprintf("Session %03d", idx),
		SessionType:  "oral_presentation",
		StartMinutes: start,
		EndMinutes:   start + 60,
		SortOrder:    int(idx),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(f *SessionFixture) {
		f.ID = id
	}
}

// WithSessionTitle overrides the generated title.
func WithSessionTitle(title string) SessionOption {
	return func(f *SessionFixture) {
		f.Title = title
	}
}

// WithSessionType sets the session type.
func WithSessionType(sessionType string) SessionOption {
	return func(f *SessionFixture) {
		f.SessionType = sessionType
	}
}

// WithSessionInterval sets the session's minute interval on its day.
func WithSessionInterval(start, end int) SessionOption {
	return func(f *SessionFixture) {
		f.StartMinutes = start
		f.EndMinutes = end
	}
}

// WithSessionBreak marks the session as a break block.
func WithSessionBreak() SessionOption {
	return func(f *SessionFixture) {
		f.IsBreak = true
		f.SessionType = "break"
	}
}

// WithSessionModerators sets the moderator assignments.
func WithSessionModerators(ids ...string) SessionOption {
	return func(f *SessionFixture) {
		f.ModeratorIDs = ids
	}
}

// Persistence returns the fixture as a persistence.ProgramSession value.
func (f SessionFixture) Persistence() persistence.ProgramSession {
	return persistence.ProgramSession{
		ID:           f.ID,
		VenueID:      f.VenueID,
		Title:        f.Title,
		SessionType:  f.SessionType,
		StartMinutes: f.StartMinutes,
		EndMinutes:   f.EndMinutes,
		IsBreak:      f.IsBreak,
		SponsorID:    f.SponsorID,
		CategoryIDs:  f.CategoryIDs,
		ModeratorIDs: f.ModeratorIDs,
		SortOrder:    f.SortOrder,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// Input returns the fixture as an application.SessionInput.
func (f SessionFixture) Input() application.SessionInput {
	order := f.SortOrder
	return application.SessionInput{
		VenueID:      f.VenueID,
		Title:        f.Title,
		SessionType:  f.SessionType,
		StartMinutes: f.StartMinutes,
		EndMinutes:   f.EndMinutes,
		IsBreak:      f.IsBreak,
		SponsorID:    f.SponsorID,
		CategoryIDs:  f.CategoryIDs,
		ModeratorIDs: f.ModeratorIDs,
		SortOrder:    &order,
	}
}

// ------------------------ Presentation fixtures -------------------------

// PresentationFixture represents a deterministic presentation record. It is
// generated untimed so it inherits its session's interval unless a test pins
// an explicit slot.
type PresentationFixture struct {
	ID               string
	SessionID        string
	Title            string
	PresentationType string
	StartMinutes     *int
	EndMinutes       *int
	DurationMinutes  int
	SortOrder        int
	Speakers         []persistence.SpeakerAssignment
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PresentationOption configures the generated presentation fixture.
type PresentationOption func(*PresentationFixture)

// NewPresentationFixture returns a deterministic presentation fixture with
// optional overrides.
func NewPresentationFixture(sessionID string, opts ...PresentationOption) PresentationFixture {
	idx := atomic.AddUint64(&presentationCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := PresentationFixture{
		ID:              fmt.Sprintf("presentation-%03d", idx),
		SessionID:       sessionID,
		Title:           fmt.Sprintf("Presentation %03d", idx),
		DurationMinutes: 20,
		SortOrder:       int(idx),
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithPresentationID overrides the generated presentation ID.
func WithPresentationID(id string) PresentationOption {
	return func(f *PresentationFixture) {
		f.ID = id
	}
}

// WithPresentationTitle overrides the generated title.
func WithPresentationTitle(title string) PresentationOption {
	return func(f *PresentationFixture) {
		f.Title = title
	}
}

// WithPresentationInterval pins the presentation to an explicit minute slot.
func WithPresentationInterval(start, end int) PresentationOption {
	return func(f *PresentationFixture) {
		f.StartMinutes = &start
		f.EndMinutes = &end
		f.DurationMinutes = end - start
	}
}

// WithPresentationDuration sets the duration of an untimed presentation.
func WithPresentationDuration(minutes int) PresentationOption {
	return func(f *PresentationFixture) {
		f.DurationMinutes = minutes
	}
}

// WithPresentationSpeakers sets the speaker assignments. The first entry is
// assigned the primary speaker role, the rest co-speaker.
func WithPresentationSpeakers(participantIDs ...string) PresentationOption {
	return func(f *PresentationFixture) {
		f.Speakers = f.Speakers[:0]
		for i, id := range participantIDs {
			role := application.RolePrimarySpeaker
			if i > 0 {
				role = application.RoleCoSpeaker
			}
			f.Speakers = append(f.Speakers, persistence.SpeakerAssignment{
				ParticipantID: id,
				Role:          role,
				SortOrder:     i + 1,
			})
		}
	}
}

// Persistence returns the fixture as a persistence.Presentation value.
func (f PresentationFixture) Persistence() persistence.Presentation {
	return persistence.Presentation{
		ID:               f.ID,
		SessionID:        f.SessionID,
		Title:            f.Title,
		PresentationType: f.PresentationType,
		StartMinutes:     f.StartMinutes,
		EndMinutes:       f.EndMinutes,
		DurationMinutes:  f.DurationMinutes,
		SortOrder:        f.SortOrder,
		Speakers:         f.Speakers,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

// Input returns the fixture as an application.PresentationInput.
func (f PresentationFixture) Input() application.PresentationInput {
	order := f.SortOrder
	speakers := make([]application.SpeakerInput, 0, len(f.Speakers))
	for _, speaker := range f.Speakers {
		speakers = append(speakers, application.SpeakerInput{
			ParticipantID: speaker.ParticipantID,
			Role:          speaker.Role,
		})
	}
	return application.PresentationInput{
		SessionID:        f.SessionID,
		Title:            f.Title,
		PresentationType: f.PresentationType,
		StartMinutes:     f.StartMinutes,
		EndMinutes:       f.EndMinutes,
		DurationMinutes:  f.DurationMinutes,
		Speakers:         speakers,
		SortOrder:        &order,
	}
}

// ------------------------- Participant fixtures -------------------------

// ParticipantFixture represents a deterministic participant record.
type ParticipantFixture struct {
	ID          string
	FullName    string
	Email       *string
	CanSpeak    bool
	CanModerate bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ParticipantOption configures the generated participant fixture.
type ParticipantOption func(*ParticipantFixture)

// NewParticipantFixture returns a deterministic participant who can both
// speak and moderate, with optional overrides.
func NewParticipantFixture(opts ...ParticipantOption) ParticipantFixture {
	idx := atomic.AddUint64(&participantCounter, 1)
	id := fmt.Sprintf("participant-%03d", idx)
	email := fmt.Sprintf("%s@example.org", id)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := ParticipantFixture{
		ID:          id,
		FullName:    fmt.Sprintf("Participant %03d", idx),
		Email:       &email,
		CanSpeak:    true,
		CanModerate: true,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithParticipantID overrides the generated participant ID.
func WithParticipantID(id string) ParticipantOption {
	return func(f *ParticipantFixture) {
		f.ID = id
	}
}

// WithParticipantName overrides the generated full name.
func WithParticipantName(name string) ParticipantOption {
	return func(f *ParticipantFixture) {
		f.FullName = name
	}
}

// WithParticipantCapabilities sets the speaking and moderating flags.
func WithParticipantCapabilities(canSpeak, canModerate bool) ParticipantOption {
	return func(f *ParticipantFixture) {
		f.CanSpeak = canSpeak
		f.CanModerate = canModerate
	}
}

// Persistence returns the fixture as a persistence.Participant value.
func (f ParticipantFixture) Persistence() persistence.Participant {
	return persistence.Participant{
		ID:          f.ID,
		FullName:    f.FullName,
		Email:       f.Email,
		CanSpeak:    f.CanSpeak,
		CanModerate: f.CanModerate,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Input returns the fixture as an application.ParticipantInput.
func (f ParticipantFixture) Input() application.ParticipantInput {
	return application.ParticipantInput{
		FullName:    f.FullName,
		Email:       f.Email,
		CanSpeak:    f.CanSpeak,
		CanModerate: f.CanModerate,
	}
}
