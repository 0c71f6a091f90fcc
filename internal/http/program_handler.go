package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/application"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/metrics"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

// ProgramHandler serves the session, presentation, reorder, and conflict
// report endpoints. Times cross the wire as HH:MM clock strings on the
// session's day.
type ProgramHandler struct {
	program *application.ProgramService
	reports *application.ConflictReportService
	metrics *metrics.Metrics
}

// NewProgramHandler binds the handler to its services.
func NewProgramHandler(program *application.ProgramService, reports *application.ConflictReportService, m *metrics.Metrics) *ProgramHandler {
	return &ProgramHandler{program: program, reports: reports, metrics: m}
}

// SessionRequest is the create/update payload for sessions.
type SessionRequest struct {
	Title        string   `json:"title" validate:"required"`
	SessionType  string   `json:"session_type"`
	Start        string   `json:"start" validate:"required"`
	End          string   `json:"end" validate:"required"`
	IsBreak      bool     `json:"is_break"`
	SponsorID    *string  `json:"sponsor_id"`
	CategoryIDs  []string `json:"category_ids"`
	ModeratorIDs []string `json:"moderator_ids"`
	SortOrder    *int     `json:"sort_order" validate:"omitempty,gte=0"`
	VenueID      string   `json:"venue_id"`
}

// SessionResponse is the wire shape of a session.
type SessionResponse struct {
	ID           string   `json:"id"`
	VenueID      string   `json:"venue_id"`
	Title        string   `json:"title"`
	SessionType  string   `json:"session_type"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	IsBreak      bool     `json:"is_break"`
	SponsorID    *string  `json:"sponsor_id,omitempty"`
	CategoryIDs  []string `json:"category_ids,omitempty"`
	ModeratorIDs []string `json:"moderator_ids,omitempty"`
	SortOrder    int      `json:"sort_order"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// SpeakerRequest is one speaker assignment in a presentation payload.
type SpeakerRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
	Role          string `json:"role" validate:"omitempty,oneof=speaker co_speaker discussant"`
}

// PresentationRequest is the create/update payload for presentations. Start
// and end are optional as a pair; absent they inherit the session interval.
type PresentationRequest struct {
	Title            string           `json:"title" validate:"required"`
	PresentationType string           `json:"presentation_type"`
	Start            *string          `json:"start"`
	End              *string          `json:"end"`
	DurationMinutes  int              `json:"duration_minutes" validate:"omitempty,gt=0"`
	Speakers         []SpeakerRequest `json:"speakers" validate:"dive"`
	SortOrder        *int             `json:"sort_order" validate:"omitempty,gte=0"`
	SessionID        string           `json:"session_id"`
}

// PresentationResponse is the wire shape of a presentation.
type PresentationResponse struct {
	ID               string            `json:"id"`
	SessionID        string            `json:"session_id"`
	Title            string            `json:"title"`
	PresentationType string            `json:"presentation_type,omitempty"`
	Start            *string           `json:"start,omitempty"`
	End              *string           `json:"end,omitempty"`
	DurationMinutes  int               `json:"duration_minutes"`
	SortOrder        int               `json:"sort_order"`
	Speakers         []SpeakerResponse `json:"speakers"`
}

// SpeakerResponse is one speaker assignment in a presentation response.
type SpeakerResponse struct {
	ParticipantID string `json:"participant_id"`
	Role          string `json:"role"`
}

// ReorderItemRequest is one entry of a bulk reorder payload.
type ReorderItemRequest struct {
	Kind      string  `json:"kind" validate:"required,oneof=session presentation"`
	EntityID  string  `json:"entity_id" validate:"required"`
	VenueID   string  `json:"venue_id"`
	SessionID string  `json:"session_id"`
	Start     *string `json:"start"`
	End       *string `json:"end"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

// ReorderRequest is the bulk reorder payload. The batch commits entirely or
// not at all.
type ReorderRequest struct {
	Items []ReorderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ConflictReportResponse is the wire shape of an event audit.
type ConflictReportResponse struct {
	EventID     string                 `json:"event_id"`
	GeneratedAt string                 `json:"generated_at"`
	Violations  []scheduling.Violation `json:"violations"`
}

func toSessionResponse(session application.ProgramSession) SessionResponse {
	return SessionResponse{
		ID:           session.ID,
		VenueID:      session.VenueID,
		Title:        session.Title,
		SessionType:  session.SessionType,
		Start:        scheduling.FormatClock(session.StartMinutes),
		End:          scheduling.FormatClock(session.EndMinutes),
		IsBreak:      session.IsBreak,
		SponsorID:    session.SponsorID,
		CategoryIDs:  session.CategoryIDs,
		ModeratorIDs: session.ModeratorIDs,
		SortOrder:    session.SortOrder,
		CreatedAt:    session.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    session.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toPresentationResponse(presentation application.Presentation) PresentationResponse {
	speakers := make([]SpeakerResponse, 0, len(presentation.Speakers))
	for _, speaker := range presentation.Speakers {
		speakers = append(speakers, SpeakerResponse{
			ParticipantID: speaker.ParticipantID,
			Role:          speaker.Role,
		})
	}
	response := PresentationResponse{
		ID:               presentation.ID,
		SessionID:        presentation.SessionID,
		Title:            presentation.Title,
		PresentationType: presentation.PresentationType,
		DurationMinutes:  presentation.DurationMinutes,
		SortOrder:        presentation.SortOrder,
		Speakers:         speakers,
	}
	if presentation.StartMinutes != nil && presentation.EndMinutes != nil {
		start := scheduling.FormatClock(*presentation.StartMinutes)
		end := scheduling.FormatClock(*presentation.EndMinutes)
		response.Start = &start
		response.End = &end
	}
	return response
}

func parseClock(value, field string) (int, error) {
	minutes, err := scheduling.ParseClock(value)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, field+" must be a HH:MM clock time")
	}
	return minutes, nil
}

func parseOptionalClock(value *string, field string) (*int, error) {
	if value == nil {
		return nil, nil
	}
	minutes, err := parseClock(*value, field)
	if err != nil {
		return nil, err
	}
	return &minutes, nil
}

func (h *ProgramHandler) sessionInput(c echo.Context, venueID string) (application.SessionInput, error) {
	var req SessionRequest
	if err := c.Bind(&req); err != nil {
		return application.SessionInput{}, echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return application.SessionInput{}, err
	}
	start, err := parseClock(req.Start, "start")
	if err != nil {
		return application.SessionInput{}, err
	}
	end, err := parseClock(req.End, "end")
	if err != nil {
		return application.SessionInput{}, err
	}
	if venueID == "" {
		venueID = req.VenueID
	}
	return application.SessionInput{
		VenueID:      venueID,
		Title:        req.Title,
		SessionType:  req.SessionType,
		StartMinutes: start,
		EndMinutes:   end,
		IsBreak:      req.IsBreak,
		SponsorID:    req.SponsorID,
		CategoryIDs:  req.CategoryIDs,
		ModeratorIDs: req.ModeratorIDs,
		SortOrder:    req.SortOrder,
	}, nil
}

// CreateSession handles POST /api/v1/venues/:id/sessions.
func (h *ProgramHandler) CreateSession(c echo.Context) error {
	input, err := h.sessionInput(c, c.Param("id"))
	if err != nil {
		return err
	}
	session, err := h.program.CreateSession(c.Request().Context(), input)
	if err != nil {
		return err
	}
	h.metrics.RecordValidation("accepted")
	return c.JSON(http.StatusCreated, toSessionResponse(session))
}

// UpdateSession handles PUT /api/v1/sessions/:id. Supplying venue_id moves
// the session across venues.
func (h *ProgramHandler) UpdateSession(c echo.Context) error {
	input, err := h.sessionInput(c, "")
	if err != nil {
		return err
	}
	session, err := h.program.UpdateSession(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	h.metrics.RecordValidation("accepted")
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// GetSession handles GET /api/v1/sessions/:id.
func (h *ProgramHandler) GetSession(c echo.Context) error {
	session, err := h.program.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// ListSessions handles GET /api/v1/venues/:id/sessions.
func (h *ProgramHandler) ListSessions(c echo.Context) error {
	sessions, err := h.program.ListSessionsInVenue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionResponse(session))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteSession handles DELETE /api/v1/sessions/:id.
func (h *ProgramHandler) DeleteSession(c echo.Context) error {
	if err := h.program.DeleteSession(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProgramHandler) presentationInput(c echo.Context, sessionID string) (application.PresentationInput, error) {
	var req PresentationRequest
	if err := c.Bind(&req); err != nil {
		return application.PresentationInput{}, echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return application.PresentationInput{}, err
	}
	start, err := parseOptionalClock(req.Start, "start")
	if err != nil {
		return application.PresentationInput{}, err
	}
	end, err := parseOptionalClock(req.End, "end")
	if err != nil {
		return application.PresentationInput{}, err
	}
	if sessionID == "" {
		sessionID = req.SessionID
	}
	speakers := make([]application.SpeakerInput, 0, len(req.Speakers))
	for _, speaker := range req.Speakers {
		speakers = append(speakers, application.SpeakerInput{
			ParticipantID: speaker.ParticipantID,
			Role:          speaker.Role,
		})
	}
	return application.PresentationInput{
		SessionID:        sessionID,
		Title:            req.Title,
		PresentationType: req.PresentationType,
		StartMinutes:     start,
		EndMinutes:       end,
		DurationMinutes:  req.DurationMinutes,
		Speakers:         speakers,
		SortOrder:        req.SortOrder,
	}, nil
}

// CreatePresentation handles POST /api/v1/sessions/:id/presentations.
func (h *ProgramHandler) CreatePresentation(c echo.Context) error {
	input, err := h.presentationInput(c, c.Param("id"))
	if err != nil {
		return err
	}
	presentation, err := h.program.CreatePresentation(c.Request().Context(), input)
	if err != nil {
		return err
	}
	h.metrics.RecordValidation("accepted")
	return c.JSON(http.StatusCreated, toPresentationResponse(presentation))
}

// UpdatePresentation handles PUT /api/v1/presentations/:id. Supplying
// session_id moves the presentation across sessions.
func (h *ProgramHandler) UpdatePresentation(c echo.Context) error {
	input, err := h.presentationInput(c, "")
	if err != nil {
		return err
	}
	presentation, err := h.program.UpdatePresentation(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	h.metrics.RecordValidation("accepted")
	return c.JSON(http.StatusOK, toPresentationResponse(presentation))
}

// GetPresentation handles GET /api/v1/presentations/:id.
func (h *ProgramHandler) GetPresentation(c echo.Context) error {
	presentation, err := h.program.GetPresentation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPresentationResponse(presentation))
}

// ListPresentations handles GET /api/v1/sessions/:id/presentations.
func (h *ProgramHandler) ListPresentations(c echo.Context) error {
	presentations, err := h.program.ListPresentationsInSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out := make([]PresentationResponse, 0, len(presentations))
	for _, presentation := range presentations {
		out = append(out, toPresentationResponse(presentation))
	}
	return c.JSON(http.StatusOK, out)
}

// DeletePresentation handles DELETE /api/v1/presentations/:id.
func (h *ProgramHandler) DeletePresentation(c echo.Context) error {
	if err := h.program.DeletePresentation(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reorder handles POST /api/v1/program/reorder.
func (h *ProgramHandler) Reorder(c echo.Context) error {
	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]application.ReorderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		start, err := parseOptionalClock(item.Start, "start")
		if err != nil {
			return err
		}
		end, err := parseOptionalClock(item.End, "end")
		if err != nil {
			return err
		}
		items = append(items, application.ReorderItemInput{
			Kind:         item.Kind,
			EntityID:     item.EntityID,
			VenueID:      item.VenueID,
			SessionID:    item.SessionID,
			StartMinutes: start,
			EndMinutes:   end,
			SortOrder:    item.SortOrder,
		})
	}

	if err := h.program.Reorder(c.Request().Context(), items); err != nil {
		return err
	}
	h.metrics.RecordValidation("accepted")
	return c.NoContent(http.StatusNoContent)
}

// ConflictReport handles GET /api/v1/events/:id/conflicts.
func (h *ProgramHandler) ConflictReport(c echo.Context) error {
	report, err := h.reports.AuditEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	violations := report.Violations
	if violations == nil {
		violations = []scheduling.Violation{}
	}
	return c.JSON(http.StatusOK, ConflictReportResponse{
		EventID:     report.EventID,
		GeneratedAt: report.GeneratedAt.UTC().Format(time.RFC3339),
		Violations:  violations,
	})
}
