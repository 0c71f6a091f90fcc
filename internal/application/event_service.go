package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

// EventService orchestrates validation and persistence for events, their
// days, and their venues.
type EventService struct {
	events      persistence.EventRepository
	venues      persistence.VenueRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEventService wires dependencies for event structure operations.
func NewEventService(events persistence.EventRepository, venues persistence.VenueRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EventService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EventService{
		events:      events,
		venues:      venues,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}
}

// CreateEvent validates the request before delegating to persistence.
func (s *EventService) CreateEvent(ctx context.Context, input EventInput) (Event, error) {
	if s == nil || s.events == nil {
		return Event{}, fmt.Errorf("event repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "event", "create")

	vErr := &ValidationError{}
	validateEventCore(input, vErr)
	if vErr.HasErrors() {
		return Event{}, vErr
	}

	now := s.now()
	event := persistence.Event{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		StartDate: dateOnly(input.StartDate),
		EndDate:   dateOnly(input.EndDate),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.events.CreateEvent(ctx, event); err != nil {
		return Event{}, mapRepoError(err)
	}

	logger.InfoContext(ctx, "event created", "event_id", event.ID)
	return toEvent(event), nil
}

// UpdateEvent applies validation before updating persistence state. Narrowing
// the date range is rejected while days fall outside the new bounds.
func (s *EventService) UpdateEvent(ctx context.Context, eventID string, input EventInput) (Event, error) {
	if s == nil || s.events == nil {
		return Event{}, fmt.Errorf("event repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "event", "update", "event_id", eventID)

	existing, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return Event{}, mapRepoError(err)
	}

	vErr := &ValidationError{}
	validateEventCore(input, vErr)
	if vErr.HasErrors() {
		return Event{}, vErr
	}

	days, err := s.events.ListEventDays(ctx, eventID)
	if err != nil && !isNotFoundError(err) {
		return Event{}, err
	}
	for _, day := range days {
		if !dateWithin(day.Date, input.StartDate, input.EndDate) {
			vErr.add("dates", fmt.Sprintf("day %s falls outside the new date range", day.Date.Format("2006-01-02")))
		}
	}
	if vErr.HasErrors() {
		return Event{}, vErr
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.StartDate = dateOnly(input.StartDate)
	updated.EndDate = dateOnly(input.EndDate)
	updated.UpdatedAt = s.now()
	if err := s.events.UpdateEvent(ctx, updated); err != nil {
		return Event{}, mapRepoError(err)
	}

	logger.InfoContext(ctx, "event updated")
	return toEvent(updated), nil
}

// GetEvent retrieves one event.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (Event, error) {
	if s == nil || s.events == nil {
		return Event{}, fmt.Errorf("event repository not configured")
	}
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return Event{}, mapRepoError(err)
	}
	return toEvent(event), nil
}

// ListEvents enumerates all events.
func (s *EventService) ListEvents(ctx context.Context) ([]Event, error) {
	if s == nil || s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	out := make([]Event, 0, len(events))
	for _, event := range events {
		out = append(out, toEvent(event))
	}
	return out, nil
}

// DeleteEvent removes an event and, through the storage schema, everything
// scheduled under it.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	if s == nil || s.events == nil {
		return fmt.Errorf("event repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "event", "delete", "event_id", eventID)
	if err := s.events.DeleteEvent(ctx, eventID); err != nil {
		return mapRepoError(err)
	}
	logger.InfoContext(ctx, "event deleted")
	return nil
}

// CreateEventDay adds a calendar day to an event. The date must fall within
// the event's range and be unique per event.
func (s *EventService) CreateEventDay(ctx context.Context, input EventDayInput) (EventDay, error) {
	if s == nil || s.events == nil {
		return EventDay{}, fmt.Errorf("event repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "event", "create_day", "event_id", input.EventID)

	event, err := s.events.GetEvent(ctx, input.EventID)
	if err != nil {
		return EventDay{}, mapRepoError(err)
	}

	vErr := &ValidationError{}
	if input.Date.IsZero() {
		vErr.add("date", "date is required")
	} else if !dateWithin(input.Date, event.StartDate, event.EndDate) {
		vErr.add("date", "date must fall within the event's date range")
	}
	if input.SortOrder != nil && !scheduling.ValidExplicitOrder(*input.SortOrder) {
		vErr.add("sort_order", "sort order must be a non-negative integer")
	}
	if vErr.HasErrors() {
		return EventDay{}, vErr
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		existing, err := s.events.ListEventDays(ctx, input.EventID)
		if err != nil && !isNotFoundError(err) {
			return EventDay{}, err
		}
		orders := make([]int, 0, len(existing))
		for _, day := range existing {
			orders = append(orders, day.SortOrder)
		}
		sortOrder = scheduling.NextOrder(orders)
	}

	now := s.now()
	day := persistence.EventDay{
		ID:        s.idGenerator(),
		EventID:   input.EventID,
		Date:      dateOnly(input.Date),
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.events.CreateEventDay(ctx, day); err != nil {
		return EventDay{}, mapRepoError(err)
	}

	logger.InfoContext(ctx, "event day created", "day_id", day.ID)
	return toEventDay(day), nil
}

// ListEventDays enumerates an event's days.
func (s *EventService) ListEventDays(ctx context.Context, eventID string) ([]EventDay, error) {
	if s == nil || s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}
	if _, err := s.events.GetEvent(ctx, eventID); err != nil {
		return nil, mapRepoError(err)
	}
	days, err := s.events.ListEventDays(ctx, eventID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	out := make([]EventDay, 0, len(days))
	for _, day := range days {
		out = append(out, toEventDay(day))
	}
	return out, nil
}

// DeleteEventDay removes one day and its venues.
func (s *EventService) DeleteEventDay(ctx context.Context, dayID string) error {
	if s == nil || s.events == nil {
		return fmt.Errorf("event repository not configured")
	}
	if err := s.events.DeleteEventDay(ctx, dayID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// CreateVenue adds a venue to an event day. Venue names are unique per day.
func (s *EventService) CreateVenue(ctx context.Context, input VenueInput) (Venue, error) {
	if s == nil || s.venues == nil {
		return Venue{}, fmt.Errorf("venue repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "event", "create_venue", "day_id", input.EventDayID)

	if _, err := s.events.GetEventDay(ctx, input.EventDayID); err != nil {
		return Venue{}, mapRepoError(err)
	}

	vErr := &ValidationError{}
	validateVenueCore(input, vErr)
	if vErr.HasErrors() {
		return Venue{}, vErr
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		existing, err := s.venues.ListVenuesForDay(ctx, input.EventDayID)
		if err != nil && !isNotFoundError(err) {
			return Venue{}, err
		}
		orders := make([]int, 0, len(existing))
		for _, venue := range existing {
			orders = append(orders, venue.SortOrder)
		}
		sortOrder = scheduling.NextOrder(orders)
	}

	now := s.now()
	venue := persistence.Venue{
		ID:         s.idGenerator(),
		EventDayID: input.EventDayID,
		Name:       strings.TrimSpace(input.Name),
		Capacity:   input.Capacity,
		SortOrder:  sortOrder,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.venues.CreateVenue(ctx, venue); err != nil {
		return Venue{}, mapRepoError(err)
	}

	logger.InfoContext(ctx, "venue created", "venue_id", venue.ID)
	return toVenue(venue), nil
}

// UpdateVenue applies validation before updating persistence state.
func (s *EventService) UpdateVenue(ctx context.Context, venueID string, input VenueInput) (Venue, error) {
	if s == nil || s.venues == nil {
		return Venue{}, fmt.Errorf("venue repository not configured")
	}

	existing, err := s.venues.GetVenue(ctx, venueID)
	if err != nil {
		return Venue{}, mapRepoError(err)
	}

	vErr := &ValidationError{}
	validateVenueCore(input, vErr)
	if vErr.HasErrors() {
		return Venue{}, vErr
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Capacity = input.Capacity
	if input.SortOrder != nil {
		updated.SortOrder = *input.SortOrder
	}
	updated.UpdatedAt = s.now()
	if err := s.venues.UpdateVenue(ctx, updated); err != nil {
		return Venue{}, mapRepoError(err)
	}
	return toVenue(updated), nil
}

// GetVenue retrieves one venue.
func (s *EventService) GetVenue(ctx context.Context, venueID string) (Venue, error) {
	if s == nil || s.venues == nil {
		return Venue{}, fmt.Errorf("venue repository not configured")
	}
	venue, err := s.venues.GetVenue(ctx, venueID)
	if err != nil {
		return Venue{}, mapRepoError(err)
	}
	return toVenue(venue), nil
}

// ListVenuesForDay enumerates the venues of one event day.
func (s *EventService) ListVenuesForDay(ctx context.Context, dayID string) ([]Venue, error) {
	if s == nil || s.venues == nil {
		return nil, fmt.Errorf("venue repository not configured")
	}
	if _, err := s.events.GetEventDay(ctx, dayID); err != nil {
		return nil, mapRepoError(err)
	}
	venues, err := s.venues.ListVenuesForDay(ctx, dayID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	out := make([]Venue, 0, len(venues))
	for _, venue := range venues {
		out = append(out, toVenue(venue))
	}
	return out, nil
}

// DeleteVenue removes a venue and its sessions.
func (s *EventService) DeleteVenue(ctx context.Context, venueID string) error {
	if s == nil || s.venues == nil {
		return fmt.Errorf("venue repository not configured")
	}
	if err := s.venues.DeleteVenue(ctx, venueID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func validateEventCore(input EventInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.StartDate.IsZero() {
		vErr.add("start_date", "start date is required")
	}
	if input.EndDate.IsZero() {
		vErr.add("end_date", "end date is required")
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && dateOnly(input.EndDate).Before(dateOnly(input.StartDate)) {
		vErr.add("dates", "end date must not precede start date")
	}
}

func validateVenueCore(input VenueInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Capacity != nil && *input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be a positive integer")
	}
	if input.SortOrder != nil && !scheduling.ValidExplicitOrder(*input.SortOrder) {
		vErr.add("sort_order", "sort order must be a non-negative integer")
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateWithin(date, start, end time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(start)) && !d.After(dateOnly(end))
}
