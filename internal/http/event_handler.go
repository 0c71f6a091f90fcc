package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/application"
)

const dateLayout = "2006-01-02"

// EventHandler serves the event, day, and venue endpoints.
type EventHandler struct {
	events *application.EventService
}

// NewEventHandler binds the handler to its service.
func NewEventHandler(events *application.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// EventRequest is the create/update payload for events.
type EventRequest struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// EventResponse is the wire shape of an event.
type EventResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// EventDayRequest is the create payload for event days.
type EventDayRequest struct {
	Date      string `json:"date" validate:"required"`
	SortOrder *int   `json:"sort_order" validate:"omitempty,gte=0"`
}

// EventDayResponse is the wire shape of an event day.
type EventDayResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	Date      string `json:"date"`
	SortOrder int    `json:"sort_order"`
}

// VenueRequest is the create/update payload for venues.
type VenueRequest struct {
	Name      string `json:"name" validate:"required"`
	Capacity  *int   `json:"capacity" validate:"omitempty,gt=0"`
	SortOrder *int   `json:"sort_order" validate:"omitempty,gte=0"`
}

// VenueResponse is the wire shape of a venue.
type VenueResponse struct {
	ID         string `json:"id"`
	EventDayID string `json:"event_day_id"`
	Name       string `json:"name"`
	Capacity   *int   `json:"capacity,omitempty"`
	SortOrder  int    `json:"sort_order"`
}

func toEventResponse(event application.Event) EventResponse {
	return EventResponse{
		ID:        event.ID,
		Name:      event.Name,
		StartDate: event.StartDate.Format(dateLayout),
		EndDate:   event.EndDate.Format(dateLayout),
		CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: event.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toEventDayResponse(day application.EventDay) EventDayResponse {
	return EventDayResponse{
		ID:        day.ID,
		EventID:   day.EventID,
		Date:      day.Date.Format(dateLayout),
		SortOrder: day.SortOrder,
	}
}

func toVenueResponse(venue application.Venue) VenueResponse {
	return VenueResponse{
		ID:         venue.ID,
		EventDayID: venue.EventDayID,
		Name:       venue.Name,
		Capacity:   venue.Capacity,
		SortOrder:  venue.SortOrder,
	}
}

func (h *EventHandler) eventInput(c echo.Context) (application.EventInput, error) {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return application.EventInput{}, echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return application.EventInput{}, err
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return application.EventInput{}, echo.NewHTTPError(http.StatusBadRequest, "start_date must be formatted YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return application.EventInput{}, echo.NewHTTPError(http.StatusBadRequest, "end_date must be formatted YYYY-MM-DD")
	}
	return application.EventInput{Name: req.Name, StartDate: startDate, EndDate: endDate}, nil
}

// CreateEvent handles POST /api/v1/events.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	input, err := h.eventInput(c)
	if err != nil {
		return err
	}
	event, err := h.events.CreateEvent(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventResponse(event))
}

// UpdateEvent handles PUT /api/v1/events/:id.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	input, err := h.eventInput(c)
	if err != nil {
		return err
	}
	event, err := h.events.UpdateEvent(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// GetEvent handles GET /api/v1/events/:id.
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.events.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// ListEvents handles GET /api/v1/events.
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.events.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, toEventResponse(event))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteEvent handles DELETE /api/v1/events/:id.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	if err := h.events.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateEventDay handles POST /api/v1/events/:id/days.
func (h *EventHandler) CreateEventDay(c echo.Context) error {
	var req EventDayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
	}
	day, err := h.events.CreateEventDay(c.Request().Context(), application.EventDayInput{
		EventID:   c.Param("id"),
		Date:      date,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventDayResponse(day))
}

// ListEventDays handles GET /api/v1/events/:id/days.
func (h *EventHandler) ListEventDays(c echo.Context) error {
	days, err := h.events.ListEventDays(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out := make([]EventDayResponse, 0, len(days))
	for _, day := range days {
		out = append(out, toEventDayResponse(day))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteEventDay handles DELETE /api/v1/days/:id.
func (h *EventHandler) DeleteEventDay(c echo.Context) error {
	if err := h.events.DeleteEventDay(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) venueInput(c echo.Context, dayID string) (application.VenueInput, error) {
	var req VenueRequest
	if err := c.Bind(&req); err != nil {
		return application.VenueInput{}, echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return application.VenueInput{}, err
	}
	return application.VenueInput{
		EventDayID: dayID,
		Name:       req.Name,
		Capacity:   req.Capacity,
		SortOrder:  req.SortOrder,
	}, nil
}

// CreateVenue handles POST /api/v1/days/:id/venues.
func (h *EventHandler) CreateVenue(c echo.Context) error {
	input, err := h.venueInput(c, c.Param("id"))
	if err != nil {
		return err
	}
	venue, err := h.events.CreateVenue(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toVenueResponse(venue))
}

// UpdateVenue handles PUT /api/v1/venues/:id.
func (h *EventHandler) UpdateVenue(c echo.Context) error {
	input, err := h.venueInput(c, "")
	if err != nil {
		return err
	}
	venue, err := h.events.UpdateVenue(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVenueResponse(venue))
}

// GetVenue handles GET /api/v1/venues/:id.
func (h *EventHandler) GetVenue(c echo.Context) error {
	venue, err := h.events.GetVenue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVenueResponse(venue))
}

// ListVenues handles GET /api/v1/days/:id/venues.
func (h *EventHandler) ListVenues(c echo.Context) error {
	venues, err := h.events.ListVenuesForDay(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out := make([]VenueResponse, 0, len(venues))
	for _, venue := range venues {
		out = append(out, toVenueResponse(venue))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteVenue handles DELETE /api/v1/venues/:id.
func (h *EventHandler) DeleteVenue(c echo.Context) error {
	if err := h.events.DeleteVenue(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
