package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

// VenueRepository implements persistence.VenueRepository over SQLite.
type VenueRepository struct {
	storage *Storage
}

// NewVenueRepository binds a venue repository to the storage handle.
func NewVenueRepository(storage *Storage) *VenueRepository {
	return &VenueRepository{storage: storage}
}

type venueRow struct {
	ID         string `db:"id"`
	EventDayID string `db:"event_day_id"`
	Name       string `db:"name"`
	Capacity   *int   `db:"capacity"`
	SortOrder  int    `db:"sort_order"`
	timestamps
}

func (r venueRow) toModel() (persistence.Venue, error) {
	created, updated, err := r.parse()
	if err != nil {
		return persistence.Venue{}, err
	}
	return persistence.Venue{
		ID:         r.ID,
		EventDayID: r.EventDayID,
		Name:       r.Name,
		Capacity:   r.Capacity,
		SortOrder:  r.SortOrder,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}

// CreateVenue inserts a venue into an event day.
func (r *VenueRepository) CreateVenue(ctx context.Context, venue persistence.Venue) error {
	_, err := r.storage.execer(ctx).ExecContext(ctx,
		`INSERT INTO venues (id, event_day_id, name, capacity, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		venue.ID, venue.EventDayID, venue.Name, venue.Capacity, venue.SortOrder,
		formatTime(venue.CreatedAt), formatTime(venue.UpdatedAt))
	return mapError(err)
}

// UpdateVenue updates the mutable fields of a venue.
func (r *VenueRepository) UpdateVenue(ctx context.Context, venue persistence.Venue) error {
	result, err := r.storage.execer(ctx).ExecContext(ctx,
		`UPDATE venues SET name = ?, capacity = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
		venue.Name, venue.Capacity, venue.SortOrder, formatTime(venue.UpdatedAt), venue.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

// GetVenue retrieves one venue by id.
func (r *VenueRepository) GetVenue(ctx context.Context, id string) (persistence.Venue, error) {
	var row venueRow
	if err := sqlx.GetContext(ctx, r.storage.execer(ctx), &row,
		`SELECT id, event_day_id, name, capacity, sort_order, created_at, updated_at
		 FROM venues WHERE id = ?`, id); err != nil {
		return persistence.Venue{}, mapError(err)
	}
	return row.toModel()
}

// ListVenuesForDay returns a day's venues in display order.
func (r *VenueRepository) ListVenuesForDay(ctx context.Context, eventDayID string) ([]persistence.Venue, error) {
	var rows []venueRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows,
		`SELECT id, event_day_id, name, capacity, sort_order, created_at, updated_at
		 FROM venues WHERE event_day_id = ? ORDER BY sort_order, name`, eventDayID); err != nil {
		return nil, mapError(err)
	}
	venues := make([]persistence.Venue, 0, len(rows))
	for _, row := range rows {
		venue, err := row.toModel()
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}
	return venues, nil
}

// DeleteVenue removes a venue and its sessions.
func (r *VenueRepository) DeleteVenue(ctx context.Context, id string) error {
	result, err := r.storage.execer(ctx).ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}
