package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

func addSession(store *memStore, id, venueID, sessionType string, start, end int, moderatorIDs ...string) {
	now := fixedNow()
	store.sessions[id] = persistence.ProgramSession{
		ID: id, VenueID: venueID, Title: id, SessionType: sessionType,
		StartMinutes: start, EndMinutes: end, ModeratorIDs: moderatorIDs,
		SortOrder: len(store.sessions) + 1, CreatedAt: now, UpdatedAt: now,
	}
}

func addParticipant(store *memStore, id string, canSpeak, canModerate bool) {
	now := fixedNow()
	store.participants[id] = persistence.Participant{
		ID: id, FullName: id, CanSpeak: canSpeak, CanModerate: canModerate,
		CreatedAt: now, UpdatedAt: now,
	}
}

func schedulingCodes(t *testing.T, err error) []scheduling.Code {
	t.Helper()
	var sErr *SchedulingError
	require.ErrorAs(t, err, &sErr)
	codes := make([]scheduling.Code, 0, len(sErr.Violations))
	for _, violation := range sErr.Violations {
		codes = append(codes, violation.Code)
	}
	return codes
}

func TestCreateSessionSuccess(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	service := newTestProgramService(store)

	session, err := service.CreateSession(context.Background(), SessionInput{
		VenueID:      "venue-1",
		Title:        "Opening",
		SessionType:  "main",
		StartMinutes: 9 * 60,
		EndMinutes:   10 * 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, session.SortOrder)

	stored, ok := store.sessions[session.ID]
	require.True(t, ok)
	assert.Equal(t, "Opening", stored.Title)
}

func TestCreateSessionVenueConflict(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addSession(store, "existing", "venue-1", "main", 9*60, 10*60)
	service := newTestProgramService(store)

	_, err := service.CreateSession(context.Background(), SessionInput{
		VenueID:      "venue-1",
		Title:        "Overlap",
		SessionType:  "main",
		StartMinutes: 9*60 + 30,
		EndMinutes:   10*60 + 30,
	})
	assert.Contains(t, schedulingCodes(t, err), scheduling.CodeVenueTimeConflict)
	assert.Empty(t, store.sessions["Overlap"].ID)
}

func TestCreateSessionAdjacentAllowed(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addSession(store, "existing", "venue-1", "main", 9*60, 10*60)
	service := newTestProgramService(store)

	_, err := service.CreateSession(context.Background(), SessionInput{
		VenueID:      "venue-1",
		Title:        "Back to back",
		SessionType:  "main",
		StartMinutes: 10 * 60,
		EndMinutes:   11 * 60,
	})
	assert.NoError(t, err)
}

func TestCreateSessionUnknownVenue(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	service := newTestProgramService(store)

	_, err := service.CreateSession(context.Background(), SessionInput{
		VenueID:      "missing",
		Title:        "Ghost",
		SessionType:  "main",
		StartMinutes: 9 * 60,
		EndMinutes:   10 * 60,
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors, "venue_id")
}

func TestCreateSessionModeratorMustBeAbleToModerate(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addParticipant(store, "speaker-only", true, false)
	service := newTestProgramService(store)

	_, err := service.CreateSession(context.Background(), SessionInput{
		VenueID:      "venue-1",
		Title:        "Panel",
		SessionType:  "panel",
		StartMinutes: 9 * 60,
		EndMinutes:   10 * 60,
		ModeratorIDs: []string{"speaker-only"},
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors, "moderators")
}

func TestCreateSessionModeratorDoubleBooking(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addParticipant(store, "mod-1", false, true)
	addSession(store, "busy", "venue-2", "main", 9*60, 10*60, "mod-1")
	service := newTestProgramService(store)

	_, err := service.CreateSession(context.Background(), SessionInput{
		VenueID:      "venue-1",
		Title:        "Same time",
		SessionType:  "main",
		StartMinutes: 9*60 + 30,
		EndMinutes:   10*60 + 30,
		ModeratorIDs: []string{"mod-1"},
	})
	assert.Contains(t, schedulingCodes(t, err), scheduling.CodeParticipantDoubleBooking)
}

func TestUpdateSessionMoveAcrossVenues(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addSession(store, "mover", "venue-1", "main", 9*60, 10*60)
	addSession(store, "blocker", "venue-2", "main", 9*60, 10*60)
	service := newTestProgramService(store)

	// Moving into the occupied slot of venue-2 fails.
	_, err := service.UpdateSession(context.Background(), "mover", SessionInput{
		VenueID:      "venue-2",
		Title:        "mover",
		SessionType:  "main",
		StartMinutes: 9 * 60,
		EndMinutes:   10 * 60,
	})
	assert.Contains(t, schedulingCodes(t, err), scheduling.CodeVenueTimeConflict)

	// A free slot in venue-2 works.
	updated, err := service.UpdateSession(context.Background(), "mover", SessionInput{
		VenueID:      "venue-2",
		Title:        "mover",
		SessionType:  "main",
		StartMinutes: 10 * 60,
		EndMinutes:   11 * 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "venue-2", updated.VenueID)
	assert.Equal(t, "venue-2", store.sessions["mover"].VenueID)
}

func TestCreatePresentationSuccess(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addParticipant(store, "spk-1", true, false)
	addSession(store, "host", "venue-1", "oral_presentation", 9*60, 11*60)
	service := newTestProgramService(store)

	start, end := 9*60, 9*60+20
	presentation, err := service.CreatePresentation(context.Background(), PresentationInput{
		SessionID:    "host",
		Title:        "Case Report",
		StartMinutes: &start,
		EndMinutes:   &end,
		Speakers:     []SpeakerInput{{ParticipantID: "spk-1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, presentation.DurationMinutes)
	assert.Equal(t, 1, presentation.SortOrder)
	require.Len(t, presentation.Speakers, 1)
	assert.Equal(t, RolePrimarySpeaker, presentation.Speakers[0].Role)
}

func TestCreatePresentationSpeakerBounds(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addSession(store, "host", "venue-1", "oral_presentation", 9*60, 11*60)
	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		addParticipant(store, id, true, false)
	}
	service := newTestProgramService(store)

	// No speakers at all.
	_, err := service.CreatePresentation(context.Background(), PresentationInput{
		SessionID:       "host",
		Title:           "No speakers",
		DurationMinutes: 20,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors, "speakers")

	// Four primary speakers exceed the cap.
	_, err = service.CreatePresentation(context.Background(), PresentationInput{
		SessionID:       "host",
		Title:           "Crowded",
		DurationMinutes: 20,
		Speakers: []SpeakerInput{
			{ParticipantID: "s1"}, {ParticipantID: "s2"},
			{ParticipantID: "s3"}, {ParticipantID: "s4"},
		},
	})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors, "speakers")

	// Co-speakers do not count against the primary cap.
	_, err = service.CreatePresentation(context.Background(), PresentationInput{
		SessionID:       "host",
		Title:           "Shared",
		DurationMinutes: 20,
		Speakers: []SpeakerInput{
			{ParticipantID: "s1"},
			{ParticipantID: "s2", Role: RoleCoSpeaker},
			{ParticipantID: "s3", Role: RoleCoSpeaker},
			{ParticipantID: "s4", Role: RoleDiscussant},
		},
	})
	assert.NoError(t, err)

	// Unknown roles are rejected.
	_, err = service.CreatePresentation(context.Background(), PresentationInput{
		SessionID:       "host",
		Title:           "Odd role",
		DurationMinutes: 20,
		Speakers: []SpeakerInput{
			{ParticipantID: "s1"},
			{ParticipantID: "s2", Role: "translator"},
		},
	})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors, "speakers[1].role")
}

func TestCreatePresentationSpeakerDoubleBooking(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addParticipant(store, "busy-spk", true, true)
	addSession(store, "panel", "venue-2", "panel", 9*60, 10*60, "busy-spk")
	addSession(store, "host", "venue-1", "oral_presentation", 9*60, 11*60)
	service := newTestProgramService(store)

	start, end := 9*60+30, 9*60+50
	_, err := service.CreatePresentation(context.Background(), PresentationInput{
		SessionID:    "host",
		Title:        "Conflicted",
		StartMinutes: &start,
		EndMinutes:   &end,
		Speakers:     []SpeakerInput{{ParticipantID: "busy-spk"}},
	})
	assert.Contains(t, schedulingCodes(t, err), scheduling.CodeParticipantDoubleBooking)
}

func TestCreatePresentationOutsideSessionBounds(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addParticipant(store, "spk-1", true, false)
	addSession(store, "host", "venue-1", "oral_presentation", 9*60, 10*60)
	service := newTestProgramService(store)

	start, end := 10*60, 10*60+20
	_, err := service.CreatePresentation(context.Background(), PresentationInput{
		SessionID:    "host",
		Title:        "Spills over",
		StartMinutes: &start,
		EndMinutes:   &end,
		Speakers:     []SpeakerInput{{ParticipantID: "spk-1"}},
	})
	assert.Contains(t, schedulingCodes(t, err), scheduling.CodeOutOfBounds)
}

func TestReorderSwapsSessionSlots(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addSession(store, "a", "venue-1", "main", 9*60, 10*60)
	addSession(store, "b", "venue-1", "main", 10*60, 11*60)
	service := newTestProgramService(store)

	aStart, aEnd := 10*60, 11*60
	bStart, bEnd := 9*60, 10*60
	err := service.Reorder(context.Background(), []ReorderItemInput{
		{Kind: "session", EntityID: "a", StartMinutes: &aStart, EndMinutes: &aEnd},
		{Kind: "session", EntityID: "b", StartMinutes: &bStart, EndMinutes: &bEnd},
	})
	require.NoError(t, err)

	assert.Equal(t, 10*60, store.sessions["a"].StartMinutes)
	assert.Equal(t, 9*60, store.sessions["b"].StartMinutes)
}

func TestReorderRejectsWholeBatchOnViolation(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addSession(store, "a", "venue-1", "main", 9*60, 10*60)
	addSession(store, "b", "venue-1", "main", 10*60, 11*60)
	addSession(store, "c", "venue-1", "main", 11*60, 12*60)
	service := newTestProgramService(store)

	aStart, aEnd := 11*60, 12*60
	bStart, bEnd := 9*60, 10*60
	err := service.Reorder(context.Background(), []ReorderItemInput{
		{Kind: "session", EntityID: "a", StartMinutes: &aStart, EndMinutes: &aEnd},
		{Kind: "session", EntityID: "b", StartMinutes: &bStart, EndMinutes: &bEnd},
	})
	assert.Contains(t, schedulingCodes(t, err), scheduling.CodeVenueTimeConflict)

	// Nothing moved, including the item that validated cleanly on its own.
	assert.Equal(t, 9*60, store.sessions["a"].StartMinutes)
	assert.Equal(t, 10*60, store.sessions["b"].StartMinutes)
}

func TestReorderRejectsUnknownKind(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	service := newTestProgramService(store)

	err := service.Reorder(context.Background(), []ReorderItemInput{
		{Kind: "track", EntityID: "a"},
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors, "items[0].kind")
}

func TestReorderNegativeSortOrderRejected(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	addSession(store, "a", "venue-1", "main", 9*60, 10*60)
	service := newTestProgramService(store)

	order := -1
	err := service.Reorder(context.Background(), []ReorderItemInput{
		{Kind: "session", EntityID: "a", SortOrder: &order},
	})
	assert.Contains(t, schedulingCodes(t, err), scheduling.CodeInvalidSortOrder)
}

func TestDeleteSessionNotFound(t *testing.T) {
	store := newMemStore()
	seedStructure(store)
	service := newTestProgramService(store)

	err := service.DeleteSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
