package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

// EventRepository implements persistence.EventRepository over SQLite.
type EventRepository struct {
	storage *Storage
}

// NewEventRepository binds an event repository to the storage handle.
func NewEventRepository(storage *Storage) *EventRepository {
	return &EventRepository{storage: storage}
}

type eventRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
	timestamps
}

func (r eventRow) toModel() (persistence.Event, error) {
	created, updated, err := r.parse()
	if err != nil {
		return persistence.Event{}, err
	}
	start, err := parseDate(r.StartDate)
	if err != nil {
		return persistence.Event{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return persistence.Event{}, err
	}
	return persistence.Event{
		ID:        r.ID,
		Name:      r.Name,
		StartDate: start,
		EndDate:   end,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

type eventDayRow struct {
	ID        string `db:"id"`
	EventID   string `db:"event_id"`
	Date      string `db:"date"`
	SortOrder int    `db:"sort_order"`
	timestamps
}

func (r eventDayRow) toModel() (persistence.EventDay, error) {
	created, updated, err := r.parse()
	if err != nil {
		return persistence.EventDay{}, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return persistence.EventDay{}, err
	}
	return persistence.EventDay{
		ID:        r.ID,
		EventID:   r.EventID,
		Date:      date,
		SortOrder: r.SortOrder,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// CreateEvent inserts a new event.
func (r *EventRepository) CreateEvent(ctx context.Context, event persistence.Event) error {
	_, err := r.storage.execer(ctx).ExecContext(ctx,
		`INSERT INTO events (id, name, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.Name, formatDate(event.StartDate), formatDate(event.EndDate),
		formatTime(event.CreatedAt), formatTime(event.UpdatedAt))
	return mapError(err)
}

// UpdateEvent updates the mutable fields of an event.
func (r *EventRepository) UpdateEvent(ctx context.Context, event persistence.Event) error {
	result, err := r.storage.execer(ctx).ExecContext(ctx,
		`UPDATE events SET name = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`,
		event.Name, formatDate(event.StartDate), formatDate(event.EndDate),
		formatTime(event.UpdatedAt), event.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

// GetEvent retrieves one event by id.
func (r *EventRepository) GetEvent(ctx context.Context, id string) (persistence.Event, error) {
	var row eventRow
	if err := sqlx.GetContext(ctx, r.storage.execer(ctx), &row,
		`SELECT id, name, start_date, end_date, created_at, updated_at FROM events WHERE id = ?`, id); err != nil {
		return persistence.Event{}, mapError(err)
	}
	return row.toModel()
}

// ListEvents returns every event ordered by start date.
func (r *EventRepository) ListEvents(ctx context.Context) ([]persistence.Event, error) {
	var rows []eventRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows,
		`SELECT id, name, start_date, end_date, created_at, updated_at FROM events ORDER BY start_date, id`); err != nil {
		return nil, mapError(err)
	}
	events := make([]persistence.Event, 0, len(rows))
	for _, row := range rows {
		event, err := row.toModel()
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// DeleteEvent removes an event and, via cascades, its whole program.
func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.storage.execer(ctx).ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

// CreateEventDay inserts a day into an event's calendar.
func (r *EventRepository) CreateEventDay(ctx context.Context, day persistence.EventDay) error {
	_, err := r.storage.execer(ctx).ExecContext(ctx,
		`INSERT INTO event_days (id, event_id, date, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		day.ID, day.EventID, formatDate(day.Date), day.SortOrder,
		formatTime(day.CreatedAt), formatTime(day.UpdatedAt))
	return mapError(err)
}

// GetEventDay retrieves one event day by id.
func (r *EventRepository) GetEventDay(ctx context.Context, id string) (persistence.EventDay, error) {
	var row eventDayRow
	if err := sqlx.GetContext(ctx, r.storage.execer(ctx), &row,
		`SELECT id, event_id, date, sort_order, created_at, updated_at FROM event_days WHERE id = ?`, id); err != nil {
		return persistence.EventDay{}, mapError(err)
	}
	return row.toModel()
}

// ListEventDays returns an event's days ordered by date.
func (r *EventRepository) ListEventDays(ctx context.Context, eventID string) ([]persistence.EventDay, error) {
	var rows []eventDayRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows,
		`SELECT id, event_id, date, sort_order, created_at, updated_at
		 FROM event_days WHERE event_id = ? ORDER BY date`, eventID); err != nil {
		return nil, mapError(err)
	}
	days := make([]persistence.EventDay, 0, len(rows))
	for _, row := range rows {
		day, err := row.toModel()
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// DeleteEventDay removes one day and its venues.
func (r *EventRepository) DeleteEventDay(ctx context.Context, id string) error {
	result, err := r.storage.execer(ctx).ExecContext(ctx, `DELETE FROM event_days WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}
