package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository over SQLite.
type SessionRepository struct {
	storage *Storage
}

// NewSessionRepository binds a session repository to the storage handle.
func NewSessionRepository(storage *Storage) *SessionRepository {
	return &SessionRepository{storage: storage}
}

type sessionRow struct {
	ID           string  `db:"id"`
	VenueID      string  `db:"venue_id"`
	Title        string  `db:"title"`
	SessionType  string  `db:"session_type"`
	StartMinutes int     `db:"start_minutes"`
	EndMinutes   int     `db:"end_minutes"`
	IsBreak      bool    `db:"is_break"`
	SponsorID    *string `db:"sponsor_id"`
	SortOrder    int     `db:"sort_order"`
	timestamps
}

func (r sessionRow) toModel() (persistence.ProgramSession, error) {
	created, updated, err := r.parse()
	if err != nil {
		return persistence.ProgramSession{}, err
	}
	return persistence.ProgramSession{
		ID:           r.ID,
		VenueID:      r.VenueID,
		Title:        r.Title,
		SessionType:  r.SessionType,
		StartMinutes: r.StartMinutes,
		EndMinutes:   r.EndMinutes,
		IsBreak:      r.IsBreak,
		SponsorID:    r.SponsorID,
		SortOrder:    r.SortOrder,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}, nil
}

const sessionColumns = `id, venue_id, title, session_type, start_minutes, end_minutes, is_break, sponsor_id, sort_order, created_at, updated_at`

// CreateSession inserts a session together with its moderator and category
// references.
func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.ProgramSession) error {
	return r.storage.InTransaction(ctx, func(ctx context.Context) error {
		_, err := r.storage.execer(ctx).ExecContext(ctx,
			`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID, session.VenueID, session.Title, session.SessionType,
			session.StartMinutes, session.EndMinutes, session.IsBreak, session.SponsorID,
			session.SortOrder, formatTime(session.CreatedAt), formatTime(session.UpdatedAt))
		if err != nil {
			return mapError(err)
		}
		if err := r.replaceModerators(ctx, session.ID, session.ModeratorIDs); err != nil {
			return err
		}
		return r.replaceCategories(ctx, session.ID, session.CategoryIDs)
	})
}

// UpdateSession rewrites a session and its reference rows.
func (r *SessionRepository) UpdateSession(ctx context.Context, session persistence.ProgramSession) error {
	return r.storage.InTransaction(ctx, func(ctx context.Context) error {
		result, err := r.storage.execer(ctx).ExecContext(ctx,
			`UPDATE sessions SET venue_id = ?, title = ?, session_type = ?, start_minutes = ?,
			        end_minutes = ?, is_break = ?, sponsor_id = ?, sort_order = ?, updated_at = ?
			 WHERE id = ?`,
			session.VenueID, session.Title, session.SessionType, session.StartMinutes,
			session.EndMinutes, session.IsBreak, session.SponsorID, session.SortOrder,
			formatTime(session.UpdatedAt), session.ID)
		if err != nil {
			return mapError(err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
		if err := r.replaceModerators(ctx, session.ID, session.ModeratorIDs); err != nil {
			return err
		}
		return r.replaceCategories(ctx, session.ID, session.CategoryIDs)
	})
}

// GetSession retrieves one session with its moderators and categories.
func (r *SessionRepository) GetSession(ctx context.Context, id string) (persistence.ProgramSession, error) {
	var row sessionRow
	if err := sqlx.GetContext(ctx, r.storage.execer(ctx), &row,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id); err != nil {
		return persistence.ProgramSession{}, mapError(err)
	}
	session, err := row.toModel()
	if err != nil {
		return persistence.ProgramSession{}, err
	}
	return r.attachReferences(ctx, session)
}

// ListSessionsInVenue returns a venue's sessions ordered by start time.
func (r *SessionRepository) ListSessionsInVenue(ctx context.Context, venueID string) ([]persistence.ProgramSession, error) {
	return r.list(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE venue_id = ? ORDER BY start_minutes, sort_order, id`, venueID)
}

// ListSessionsForEvent returns every session of an event across all days and
// venues.
func (r *SessionRepository) ListSessionsForEvent(ctx context.Context, eventID string) ([]persistence.ProgramSession, error) {
	return r.list(ctx,
		`SELECT s.id, s.venue_id, s.title, s.session_type, s.start_minutes, s.end_minutes,
		        s.is_break, s.sponsor_id, s.sort_order, s.created_at, s.updated_at
		 FROM sessions s
		 JOIN venues v ON v.id = s.venue_id
		 JOIN event_days d ON d.id = v.event_day_id
		 WHERE d.event_id = ?
		 ORDER BY d.date, v.sort_order, s.start_minutes, s.id`, eventID)
}

// DeleteSession removes a session; reference rows cascade.
func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	result, err := r.storage.execer(ctx).ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...any) ([]persistence.ProgramSession, error) {
	var rows []sessionRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows, query, args...); err != nil {
		return nil, mapError(err)
	}
	sessions := make([]persistence.ProgramSession, 0, len(rows))
	for _, row := range rows {
		session, err := row.toModel()
		if err != nil {
			return nil, err
		}
		session, err = r.attachReferences(ctx, session)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *SessionRepository) attachReferences(ctx context.Context, session persistence.ProgramSession) (persistence.ProgramSession, error) {
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &session.ModeratorIDs,
		`SELECT participant_id FROM session_moderators WHERE session_id = ? ORDER BY participant_id`, session.ID); err != nil {
		return persistence.ProgramSession{}, mapError(err)
	}
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &session.CategoryIDs,
		`SELECT category_id FROM session_categories WHERE session_id = ? ORDER BY category_id`, session.ID); err != nil {
		return persistence.ProgramSession{}, mapError(err)
	}
	return session, nil
}

func (r *SessionRepository) replaceModerators(ctx context.Context, sessionID string, moderatorIDs []string) error {
	if _, err := r.storage.execer(ctx).ExecContext(ctx,
		`DELETE FROM session_moderators WHERE session_id = ?`, sessionID); err != nil {
		return mapError(err)
	}
	for _, participantID := range moderatorIDs {
		if _, err := r.storage.execer(ctx).ExecContext(ctx,
			`INSERT INTO session_moderators (session_id, participant_id) VALUES (?, ?)`,
			sessionID, participantID); err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (r *SessionRepository) replaceCategories(ctx context.Context, sessionID string, categoryIDs []string) error {
	if _, err := r.storage.execer(ctx).ExecContext(ctx,
		`DELETE FROM session_categories WHERE session_id = ?`, sessionID); err != nil {
		return mapError(err)
	}
	for _, categoryID := range categoryIDs {
		if _, err := r.storage.execer(ctx).ExecContext(ctx,
			`INSERT INTO session_categories (session_id, category_id) VALUES (?, ?)`,
			sessionID, categoryID); err != nil {
			return mapError(err)
		}
	}
	return nil
}
