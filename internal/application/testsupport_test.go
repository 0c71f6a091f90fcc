package application

import (
	"context"
	"fmt"
	"time"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

// memStore is an in-memory stand-in for the SQLite layer. It implements the
// persistence repositories, the Transactor, and the scheduling reader over
// the same maps so services and validator see one consistent program.
type memStore struct {
	events        map[string]persistence.Event
	days          map[string]persistence.EventDay
	venues        map[string]persistence.Venue
	sessions      map[string]persistence.ProgramSession
	presentations map[string]persistence.Presentation
	participants  map[string]persistence.Participant
}

func newMemStore() *memStore {
	return &memStore{
		events:        make(map[string]persistence.Event),
		days:          make(map[string]persistence.EventDay),
		venues:        make(map[string]persistence.Venue),
		sessions:      make(map[string]persistence.ProgramSession),
		presentations: make(map[string]persistence.Presentation),
		participants:  make(map[string]persistence.Participant),
	}
}

func (m *memStore) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *memStore) CreateEvent(_ context.Context, event persistence.Event) error {
	m.events[event.ID] = event
	return nil
}

func (m *memStore) UpdateEvent(_ context.Context, event persistence.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.events[event.ID] = event
	return nil
}

func (m *memStore) GetEvent(_ context.Context, id string) (persistence.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return persistence.Event{}, persistence.ErrNotFound
	}
	return event, nil
}

func (m *memStore) ListEvents(context.Context) ([]persistence.Event, error) {
	out := make([]persistence.Event, 0, len(m.events))
	for _, event := range m.events {
		out = append(out, event)
	}
	return out, nil
}

func (m *memStore) DeleteEvent(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memStore) CreateEventDay(_ context.Context, day persistence.EventDay) error {
	for _, existing := range m.days {
		if existing.EventID == day.EventID && existing.Date.Equal(day.Date) {
			return persistence.ErrDuplicate
		}
	}
	m.days[day.ID] = day
	return nil
}

func (m *memStore) GetEventDay(_ context.Context, id string) (persistence.EventDay, error) {
	day, ok := m.days[id]
	if !ok {
		return persistence.EventDay{}, persistence.ErrNotFound
	}
	return day, nil
}

func (m *memStore) ListEventDays(_ context.Context, eventID string) ([]persistence.EventDay, error) {
	var out []persistence.EventDay
	for _, day := range m.days {
		if day.EventID == eventID {
			out = append(out, day)
		}
	}
	return out, nil
}

func (m *memStore) DeleteEventDay(_ context.Context, id string) error {
	if _, ok := m.days[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.days, id)
	return nil
}

func (m *memStore) CreateVenue(_ context.Context, venue persistence.Venue) error {
	for _, existing := range m.venues {
		if existing.EventDayID == venue.EventDayID && existing.Name == venue.Name {
			return persistence.ErrDuplicate
		}
	}
	m.venues[venue.ID] = venue
	return nil
}

func (m *memStore) UpdateVenue(_ context.Context, venue persistence.Venue) error {
	if _, ok := m.venues[venue.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.venues[venue.ID] = venue
	return nil
}

func (m *memStore) GetVenue(_ context.Context, id string) (persistence.Venue, error) {
	venue, ok := m.venues[id]
	if !ok {
		return persistence.Venue{}, persistence.ErrNotFound
	}
	return venue, nil
}

func (m *memStore) ListVenuesForDay(_ context.Context, dayID string) ([]persistence.Venue, error) {
	var out []persistence.Venue
	for _, venue := range m.venues {
		if venue.EventDayID == dayID {
			out = append(out, venue)
		}
	}
	return out, nil
}

func (m *memStore) DeleteVenue(_ context.Context, id string) error {
	if _, ok := m.venues[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.venues, id)
	return nil
}

func (m *memStore) CreateSession(_ context.Context, session persistence.ProgramSession) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *memStore) UpdateSession(_ context.Context, session persistence.ProgramSession) error {
	if _, ok := m.sessions[session.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *memStore) GetSession(_ context.Context, id string) (persistence.ProgramSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return persistence.ProgramSession{}, persistence.ErrNotFound
	}
	return session, nil
}

func (m *memStore) ListSessionsInVenue(_ context.Context, venueID string) ([]persistence.ProgramSession, error) {
	var out []persistence.ProgramSession
	for _, session := range m.sessions {
		if session.VenueID == venueID {
			out = append(out, session)
		}
	}
	return out, nil
}

func (m *memStore) ListSessionsForEvent(_ context.Context, eventID string) ([]persistence.ProgramSession, error) {
	var out []persistence.ProgramSession
	for _, session := range m.sessions {
		if m.eventIDForVenue(session.VenueID) == eventID {
			out = append(out, session)
		}
	}
	return out, nil
}

func (m *memStore) DeleteSession(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memStore) CreatePresentation(_ context.Context, presentation persistence.Presentation) error {
	m.presentations[presentation.ID] = presentation
	return nil
}

func (m *memStore) UpdatePresentation(_ context.Context, presentation persistence.Presentation) error {
	if _, ok := m.presentations[presentation.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.presentations[presentation.ID] = presentation
	return nil
}

func (m *memStore) GetPresentation(_ context.Context, id string) (persistence.Presentation, error) {
	presentation, ok := m.presentations[id]
	if !ok {
		return persistence.Presentation{}, persistence.ErrNotFound
	}
	return presentation, nil
}

func (m *memStore) ListPresentationsInSession(_ context.Context, sessionID string) ([]persistence.Presentation, error) {
	var out []persistence.Presentation
	for _, presentation := range m.presentations {
		if presentation.SessionID == sessionID {
			out = append(out, presentation)
		}
	}
	return out, nil
}

func (m *memStore) DeletePresentation(_ context.Context, id string) error {
	if _, ok := m.presentations[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.presentations, id)
	return nil
}

func (m *memStore) CreateParticipant(_ context.Context, participant persistence.Participant) error {
	m.participants[participant.ID] = participant
	return nil
}

func (m *memStore) UpdateParticipant(_ context.Context, participant persistence.Participant) error {
	if _, ok := m.participants[participant.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.participants[participant.ID] = participant
	return nil
}

func (m *memStore) GetParticipant(_ context.Context, id string) (persistence.Participant, error) {
	participant, ok := m.participants[id]
	if !ok {
		return persistence.Participant{}, persistence.ErrNotFound
	}
	return participant, nil
}

func (m *memStore) ListParticipants(context.Context) ([]persistence.Participant, error) {
	out := make([]persistence.Participant, 0, len(m.participants))
	for _, participant := range m.participants {
		out = append(out, participant)
	}
	return out, nil
}

func (m *memStore) DeleteParticipant(_ context.Context, id string) error {
	if _, ok := m.participants[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.participants, id)
	return nil
}

func (m *memStore) CommitmentsForParticipant(_ context.Context, participantID, eventID string) ([]persistence.Commitment, error) {
	var out []persistence.Commitment
	for _, session := range m.sessions {
		if m.eventIDForVenue(session.VenueID) != eventID {
			continue
		}
		for _, moderatorID := range session.ModeratorIDs {
			if moderatorID == participantID {
				out = append(out, persistence.Commitment{
					ID: session.ID, Source: "session", Role: "moderator",
					StartMinutes: session.StartMinutes, EndMinutes: session.EndMinutes,
				})
			}
		}
	}
	for _, presentation := range m.presentations {
		session, ok := m.sessions[presentation.SessionID]
		if !ok || m.eventIDForVenue(session.VenueID) != eventID {
			continue
		}
		for _, speaker := range presentation.Speakers {
			if speaker.ParticipantID != participantID {
				continue
			}
			start, end := session.StartMinutes, session.EndMinutes
			if presentation.StartMinutes != nil && presentation.EndMinutes != nil {
				start, end = *presentation.StartMinutes, *presentation.EndMinutes
			}
			out = append(out, persistence.Commitment{
				ID: presentation.ID, Source: "presentation", Role: "speaker",
				StartMinutes: start, EndMinutes: end,
			})
		}
	}
	return out, nil
}

func (m *memStore) eventIDForVenue(venueID string) string {
	venue, ok := m.venues[venueID]
	if !ok {
		return ""
	}
	day, ok := m.days[venue.EventDayID]
	if !ok {
		return ""
	}
	return day.EventID
}

// memReader adapts memStore to the scheduling validator's reader.
type memReader struct {
	store *memStore
}

func (r memReader) Session(ctx context.Context, sessionID string) (scheduling.SessionRecord, error) {
	session, err := r.store.GetSession(ctx, sessionID)
	if err != nil {
		return scheduling.SessionRecord{}, err
	}
	sessionType := scheduling.SessionType(session.SessionType)
	if session.IsBreak {
		sessionType = scheduling.SessionTypeBreak
	}
	return scheduling.SessionRecord{
		ID:           session.ID,
		EventID:      r.store.eventIDForVenue(session.VenueID),
		VenueID:      session.VenueID,
		Type:         sessionType,
		Interval:     scheduling.Interval{Start: session.StartMinutes, End: session.EndMinutes},
		IsBreak:      session.IsBreak,
		ModeratorIDs: session.ModeratorIDs,
	}, nil
}

func (r memReader) SessionsInVenue(ctx context.Context, venueID string) ([]scheduling.SessionRecord, error) {
	sessions, err := r.store.ListSessionsInVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	records := make([]scheduling.SessionRecord, 0, len(sessions))
	for _, session := range sessions {
		record, err := r.Session(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r memReader) Presentation(ctx context.Context, presentationID string) (scheduling.PresentationRecord, error) {
	presentation, err := r.store.GetPresentation(ctx, presentationID)
	if err != nil {
		return scheduling.PresentationRecord{}, err
	}
	return toMemRecord(presentation), nil
}

func (r memReader) PresentationsInSession(ctx context.Context, sessionID string) ([]scheduling.PresentationRecord, error) {
	presentations, err := r.store.ListPresentationsInSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	records := make([]scheduling.PresentationRecord, 0, len(presentations))
	for _, presentation := range presentations {
		records = append(records, toMemRecord(presentation))
	}
	return records, nil
}

func (r memReader) CommitmentsForParticipant(ctx context.Context, participantID, eventID string) ([]scheduling.Commitment, error) {
	stored, err := r.store.CommitmentsForParticipant(ctx, participantID, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]scheduling.Commitment, 0, len(stored))
	for _, commitment := range stored {
		out = append(out, scheduling.Commitment{
			ID:       commitment.ID,
			Source:   scheduling.CommitmentSource(commitment.Source),
			Role:     scheduling.ParticipantRole(commitment.Role),
			Interval: scheduling.Interval{Start: commitment.StartMinutes, End: commitment.EndMinutes},
		})
	}
	return out, nil
}

func toMemRecord(presentation persistence.Presentation) scheduling.PresentationRecord {
	record := scheduling.PresentationRecord{
		ID:              presentation.ID,
		SessionID:       presentation.SessionID,
		DurationMinutes: presentation.DurationMinutes,
	}
	for _, speaker := range presentation.Speakers {
		record.SpeakerIDs = append(record.SpeakerIDs, speaker.ParticipantID)
	}
	if presentation.StartMinutes != nil && presentation.EndMinutes != nil {
		interval := scheduling.Interval{Start: *presentation.StartMinutes, End: *presentation.EndMinutes}
		record.Interval = &interval
	}
	return record
}

func sequentialIDs(prefix string) func() string {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("%s-%d", prefix, counter)
	}
}

func fixedNow() time.Time {
	return time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
}

// seedStructure wires event-1 -> day-1 -> venue-1 (and venue-2) into the
// store.
func seedStructure(store *memStore) {
	now := fixedNow()
	store.events["event-1"] = persistence.Event{
		ID: "event-1", Name: "Annual Congress",
		StartDate: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
		CreatedAt: now, UpdatedAt: now,
	}
	store.days["day-1"] = persistence.EventDay{
		ID: "day-1", EventID: "event-1",
		Date:      time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		SortOrder: 1, CreatedAt: now, UpdatedAt: now,
	}
	store.venues["venue-1"] = persistence.Venue{
		ID: "venue-1", EventDayID: "day-1", Name: "Hall A", SortOrder: 1, CreatedAt: now, UpdatedAt: now,
	}
	store.venues["venue-2"] = persistence.Venue{
		ID: "venue-2", EventDayID: "day-1", Name: "Hall B", SortOrder: 2, CreatedAt: now, UpdatedAt: now,
	}
}

func newTestProgramService(store *memStore) *ProgramService {
	validator := scheduling.NewValidator(memReader{store: store}, nil)
	return NewProgramService(ProgramServiceDeps{
		Sessions:      store,
		Presentations: store,
		Venues:        store,
		Events:        store,
		Participants:  store,
		Validator:     validator,
		Transactor:    store,
		IDGenerator:   sequentialIDs("id"),
		Now:           fixedNow,
	})
}
