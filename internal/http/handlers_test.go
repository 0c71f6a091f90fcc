package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/metrics"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/testfixtures"
	"github.com/prometheus/client_golang/prometheus"
)

type testServer struct {
	server *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	harness := testfixtures.NewSQLiteHarness(t)
	factory := testfixtures.NewServiceFactory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	validator := scheduling.NewValidator(harness.Reader, scheduling.DefaultPolicies())

	eventService := factory.NewEventService(testfixtures.EventServiceDeps{
		Events: harness.Events,
		Venues: harness.Venues,
		Logger: logger,
	})
	participantService := factory.NewParticipantService(testfixtures.ParticipantServiceDeps{
		Participants: harness.Participants,
		Logger:       logger,
	})
	reportService := factory.NewConflictReportService(testfixtures.ConflictReportServiceDeps{
		Events:        harness.Events,
		Sessions:      harness.Sessions,
		Presentations: harness.Presentations,
		Validator:     validator,
		CacheTTL:      time.Minute,
		Logger:        logger,
	})
	programService := factory.NewProgramService(testfixtures.ProgramServiceDeps{
		Sessions:      harness.Sessions,
		Presentations: harness.Presentations,
		Venues:        harness.Venues,
		Events:        harness.Events,
		Participants:  harness.Participants,
		Validator:     validator,
		Transactor:    harness.Transactor,
		Reports:       reportService,
		Logger:        logger,
	})

	e := NewRouter(RouterConfig{
		Events:       eventService,
		Program:      programService,
		Participants: participantService,
		Reports:      reportService,
		Store:        harness.Storage,
		Metrics:      m,
		Logger:       logger,
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return &testServer{server: server}
}

func (ts *testServer) do(t *testing.T, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.server.Client().Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// createProgramStructure builds an event with one day and one venue and
// returns the venue ID.
func (ts *testServer) createProgramStructure(t *testing.T) (eventID, venueID string) {
	t.Helper()

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/events", EventRequest{
		Name:      "Annual Congress",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	event := decode[EventResponse](t, raw)

	resp, raw = ts.do(t, http.MethodPost, "/api/v1/events/"+event.ID+"/days", EventDayRequest{Date: "2026-09-01"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	day := decode[EventDayResponse](t, raw)

	resp, raw = ts.do(t, http.MethodPost, "/api/v1/days/"+day.ID+"/venues", VenueRequest{Name: "Hall A"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	venue := decode[VenueResponse](t, raw)

	return event.ID, venue.ID
}

func (ts *testServer) createParticipant(t *testing.T, name string, canSpeak, canModerate bool) string {
	t.Helper()

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/participants", ParticipantRequest{
		FullName:    name,
		CanSpeak:    canSpeak,
		CanModerate: canModerate,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[ParticipantResponse](t, raw).ID
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}

func TestEventValidationFailure(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/v1/events", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEventDateRangeRejected(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/events", EventRequest{
		Name:      "Backwards",
		StartDate: "2026-09-03",
		EndDate:   "2026-09-01",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[ErrorResponse](t, raw)
	assert.Contains(t, body.FieldErrors, "dates")
}

func TestEventNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodGet, "/api/v1/events/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDuplicateEventDayConflicts(t *testing.T) {
	ts := newTestServer(t)
	eventID, _ := ts.createProgramStructure(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/v1/events/"+eventID+"/days", EventDayRequest{Date: "2026-09-01"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t)
	_, venueID := ts.createProgramStructure(t)

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
		Title:       "Opening Keynote",
		SessionType: "keynote",
		Start:       "09:00",
		End:         "10:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	session := decode[SessionResponse](t, raw)
	assert.Equal(t, "09:00", session.Start)
	assert.Equal(t, "10:00", session.End)
	assert.Equal(t, venueID, session.VenueID)

	resp, raw = ts.do(t, http.MethodGet, "/api/v1/sessions/"+session.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, session.ID, decode[SessionResponse](t, raw).ID)

	resp, raw = ts.do(t, http.MethodGet, "/api/v1/venues/"+venueID+"/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]SessionResponse](t, raw), 1)

	resp, _ = ts.do(t, http.MethodDelete, "/api/v1/sessions/"+session.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/v1/sessions/"+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOverlappingSessionRejectedWithViolations(t *testing.T) {
	ts := newTestServer(t)
	_, venueID := ts.createProgramStructure(t)

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
		Title: "Morning Block", SessionType: "main", Start: "09:00", End: "11:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
		Title: "Overlapping Block", SessionType: "main", Start: "10:00", End: "12:00",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(raw))
	body := decode[ErrorResponse](t, raw)
	require.NotEmpty(t, body.Violations)
	assert.Equal(t, scheduling.CodeVenueTimeConflict, body.Violations[0].Code)
}

func TestSessionInvalidClockString(t *testing.T) {
	ts := newTestServer(t)
	_, venueID := ts.createProgramStructure(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
		Title: "Bad Time", SessionType: "main", Start: "9am", End: "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPresentationLifecycle(t *testing.T) {
	ts := newTestServer(t)
	_, venueID := ts.createProgramStructure(t)
	speakerID := ts.createParticipant(t, "Dr. Vela", true, false)

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
		Title: "Oral Session", SessionType: "oral_presentation", Start: "09:00", End: "11:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	session := decode[SessionResponse](t, raw)

	start, end := "09:00", "09:20"
	resp, raw = ts.do(t, http.MethodPost, "/api/v1/sessions/"+session.ID+"/presentations", PresentationRequest{
		Title:    "Resultados preliminares",
		Start:    &start,
		End:      &end,
		Speakers: []SpeakerRequest{{ParticipantID: speakerID}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	presentation := decode[PresentationResponse](t, raw)
	assert.Equal(t, 20, presentation.DurationMinutes)
	require.Len(t, presentation.Speakers, 1)
	assert.Equal(t, "speaker", presentation.Speakers[0].Role)

	resp, raw = ts.do(t, http.MethodGet, "/api/v1/sessions/"+session.ID+"/presentations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]PresentationResponse](t, raw), 1)

	resp, _ = ts.do(t, http.MethodDelete, "/api/v1/presentations/"+presentation.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestPresentationRequiresPrimarySpeaker(t *testing.T) {
	ts := newTestServer(t)
	_, venueID := ts.createProgramStructure(t)

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
		Title: "Oral Session", SessionType: "oral_presentation", Start: "09:00", End: "11:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	session := decode[SessionResponse](t, raw)

	resp, raw = ts.do(t, http.MethodPost, "/api/v1/sessions/"+session.ID+"/presentations", PresentationRequest{
		Title:           "Sin ponente",
		DurationMinutes: 20,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	body := decode[ErrorResponse](t, raw)
	assert.Contains(t, body.FieldErrors, "speakers")
}

func TestSpeakerDoubleBookingAcrossVenues(t *testing.T) {
	ts := newTestServer(t)
	eventID, venueID := ts.createProgramStructure(t)

	resp, raw := ts.do(t, http.MethodGet, "/api/v1/events/"+eventID+"/days", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	days := decode[[]EventDayResponse](t, raw)
	require.Len(t, days, 1)

	resp, raw = ts.do(t, http.MethodPost, "/api/v1/days/"+days[0].ID+"/venues", VenueRequest{Name: "Hall B"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	otherVenueID := decode[VenueResponse](t, raw).ID

	speakerID := ts.createParticipant(t, "Dr. Arslan", true, false)

	makeSession := func(venue, title string) SessionResponse {
		resp, raw := ts.do(t, http.MethodPost, "/api/v1/venues/"+venue+"/sessions", SessionRequest{
			Title: title, SessionType: "oral_presentation", Start: "09:00", End: "11:00",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
		return decode[SessionResponse](t, raw)
	}
	first := makeSession(venueID, "Track One")
	second := makeSession(otherVenueID, "Track Two")

	start, end := "09:00", "09:30"
	resp, raw = ts.do(t, http.MethodPost, "/api/v1/sessions/"+first.ID+"/presentations", PresentationRequest{
		Title: "First Talk", Start: &start, End: &end,
		Speakers: []SpeakerRequest{{ParticipantID: speakerID}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	otherStart, otherEnd := "09:15", "09:45"
	resp, raw = ts.do(t, http.MethodPost, "/api/v1/sessions/"+second.ID+"/presentations", PresentationRequest{
		Title: "Same Speaker, Same Time", Start: &otherStart, End: &otherEnd,
		Speakers: []SpeakerRequest{{ParticipantID: speakerID}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(raw))
	body := decode[ErrorResponse](t, raw)
	require.NotEmpty(t, body.Violations)
	assert.Equal(t, scheduling.CodeParticipantDoubleBooking, body.Violations[0].Code)
	assert.Equal(t, speakerID, body.Violations[0].ParticipantID)
}

func TestReorderBatchAllOrNothing(t *testing.T) {
	ts := newTestServer(t)
	_, venueID := ts.createProgramStructure(t)

	makeSession := func(title, start, end string) SessionResponse {
		resp, raw := ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
			Title: title, SessionType: "main", Start: start, End: end,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
		return decode[SessionResponse](t, raw)
	}
	first := makeSession("First", "09:00", "10:00")
	second := makeSession("Second", "10:00", "11:00")

	// Swapping two adjacent slots only validates when the batch is applied
	// as a whole.
	firstStart, firstEnd := "10:00", "11:00"
	secondStart, secondEnd := "09:00", "10:00"
	resp, raw := ts.do(t, http.MethodPost, "/api/v1/program/reorder", ReorderRequest{
		Items: []ReorderItemRequest{
			{Kind: "session", EntityID: first.ID, Start: &firstStart, End: &firstEnd},
			{Kind: "session", EntityID: second.ID, Start: &secondStart, End: &secondEnd},
		},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, string(raw))

	resp, raw = ts.do(t, http.MethodGet, "/api/v1/sessions/"+first.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "10:00", decode[SessionResponse](t, raw).Start)

	// A batch landing both sessions on the same slot must leave everything
	// untouched.
	collidingStart, collidingEnd := "09:00", "10:00"
	resp, raw = ts.do(t, http.MethodPost, "/api/v1/program/reorder", ReorderRequest{
		Items: []ReorderItemRequest{
			{Kind: "session", EntityID: first.ID, Start: &collidingStart, End: &collidingEnd},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(raw))

	resp, raw = ts.do(t, http.MethodGet, "/api/v1/sessions/"+first.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "10:00", decode[SessionResponse](t, raw).Start)
}

func TestReorderRejectsUnknownKind(t *testing.T) {
	ts := newTestServer(t)

	order := 1
	resp, _ := ts.do(t, http.MethodPost, "/api/v1/program/reorder", ReorderRequest{
		Items: []ReorderItemRequest{{Kind: "track", EntityID: "x", SortOrder: &order}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConflictReportEndpoint(t *testing.T) {
	ts := newTestServer(t)
	eventID, venueID := ts.createProgramStructure(t)

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
		Title: "Clean Session", SessionType: "main", Start: "09:00", End: "10:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = ts.do(t, http.MethodGet, "/api/v1/events/"+eventID+"/conflicts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	report := decode[ConflictReportResponse](t, raw)
	assert.Equal(t, eventID, report.EventID)
	assert.Empty(t, report.Violations)

	resp, _ = ts.do(t, http.MethodGet, "/api/v1/events/missing/conflicts", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestParticipantLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/participants", ParticipantRequest{
		FullName: "Prof. Demir",
		CanSpeak: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	participant := decode[ParticipantResponse](t, raw)

	resp, raw = ts.do(t, http.MethodPut, "/api/v1/participants/"+participant.ID, ParticipantRequest{
		FullName:    "Prof. Demir",
		CanSpeak:    true,
		CanModerate: true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, decode[ParticipantResponse](t, raw).CanModerate)

	resp, raw = ts.do(t, http.MethodGet, "/api/v1/participants", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]ParticipantResponse](t, raw), 1)

	resp, _ = ts.do(t, http.MethodDelete, "/api/v1/participants/"+participant.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestParticipantEmailValidated(t *testing.T) {
	ts := newTestServer(t)

	email := "not-an-email"
	resp, _ := ts.do(t, http.MethodPost, "/api/v1/participants", ParticipantRequest{
		FullName: "Bad Email",
		Email:    &email,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpointExposed(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, raw)
}

func TestRequestIDHeaderSet(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestMovePresentationBetweenSessions(t *testing.T) {
	ts := newTestServer(t)
	_, venueID := ts.createProgramStructure(t)
	speakerID := ts.createParticipant(t, "Dr. Yilmaz", true, false)

	makeSession := func(title, start, end string) SessionResponse {
		resp, raw := ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
			Title: title, SessionType: "oral_presentation", Start: start, End: end,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
		return decode[SessionResponse](t, raw)
	}
	origin := makeSession("Origin", "09:00", "10:00")
	target := makeSession("Target", "10:00", "11:00")

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/sessions/"+origin.ID+"/presentations", PresentationRequest{
		Title:           "Moving Talk",
		DurationMinutes: 20,
		Speakers:        []SpeakerRequest{{ParticipantID: speakerID}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	presentation := decode[PresentationResponse](t, raw)

	resp, raw = ts.do(t, http.MethodPut, "/api/v1/presentations/"+presentation.ID, PresentationRequest{
		Title:           "Moving Talk",
		DurationMinutes: 20,
		Speakers:        []SpeakerRequest{{ParticipantID: speakerID}},
		SessionID:       target.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, target.ID, decode[PresentationResponse](t, raw).SessionID)
}

func TestBreakSessionRejectsPresentations(t *testing.T) {
	ts := newTestServer(t)
	_, venueID := ts.createProgramStructure(t)
	speakerID := ts.createParticipant(t, "Dr. Kaya", true, false)

	resp, raw := ts.do(t, http.MethodPost, "/api/v1/venues/"+venueID+"/sessions", SessionRequest{
		Title: "Coffee Break", Start: "10:00", End: "10:30", IsBreak: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	session := decode[SessionResponse](t, raw)

	resp, raw = ts.do(t, http.MethodPost, "/api/v1/sessions/"+session.ID+"/presentations", PresentationRequest{
		Title:           "Talk During Break",
		DurationMinutes: 15,
		Speakers:        []SpeakerRequest{{ParticipantID: speakerID}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(raw))
	body := decode[ErrorResponse](t, raw)
	require.NotEmpty(t, body.Violations)
	assert.Equal(t, scheduling.CodeCapacityExceeded, body.Violations[0].Code)
}

func TestVenueCapacityValidated(t *testing.T) {
	ts := newTestServer(t)
	eventID, _ := ts.createProgramStructure(t)

	resp, raw := ts.do(t, http.MethodGet, "/api/v1/events/"+eventID+"/days", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	days := decode[[]EventDayResponse](t, raw)
	require.Len(t, days, 1)

	zero := 0
	resp, _ = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/days/%s/venues", days[0].ID), VenueRequest{
		Name:     "Broom Closet",
		Capacity: &zero,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
