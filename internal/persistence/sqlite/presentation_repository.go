package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

// PresentationRepository implements persistence.PresentationRepository over
// SQLite.
type PresentationRepository struct {
	storage *Storage
}

// NewPresentationRepository binds a presentation repository to the storage
// handle.
func NewPresentationRepository(storage *Storage) *PresentationRepository {
	return &PresentationRepository{storage: storage}
}

type presentationRow struct {
	ID               string `db:"id"`
	SessionID        string `db:"session_id"`
	Title            string `db:"title"`
	PresentationType string `db:"presentation_type"`
	StartMinutes     *int   `db:"start_minutes"`
	EndMinutes       *int   `db:"end_minutes"`
	DurationMinutes  int    `db:"duration_minutes"`
	SortOrder        int    `db:"sort_order"`
	timestamps
}

func (r presentationRow) toModel() (persistence.Presentation, error) {
	created, updated, err := r.parse()
	if err != nil {
		return persistence.Presentation{}, err
	}
	return persistence.Presentation{
		ID:               r.ID,
		SessionID:        r.SessionID,
		Title:            r.Title,
		PresentationType: r.PresentationType,
		StartMinutes:     r.StartMinutes,
		EndMinutes:       r.EndMinutes,
		DurationMinutes:  r.DurationMinutes,
		SortOrder:        r.SortOrder,
		CreatedAt:        created,
		UpdatedAt:        updated,
	}, nil
}

type speakerRow struct {
	ParticipantID string `db:"participant_id"`
	Role          string `db:"role"`
	SortOrder     int    `db:"sort_order"`
}

const presentationColumns = `id, session_id, title, presentation_type, start_minutes, end_minutes, duration_minutes, sort_order, created_at, updated_at`

// CreatePresentation inserts a presentation with its speaker assignments.
func (r *PresentationRepository) CreatePresentation(ctx context.Context, presentation persistence.Presentation) error {
	return r.storage.InTransaction(ctx, func(ctx context.Context) error {
		_, err := r.storage.execer(ctx).ExecContext(ctx,
			`INSERT INTO presentations (`+presentationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			presentation.ID, presentation.SessionID, presentation.Title, presentation.PresentationType,
			presentation.StartMinutes, presentation.EndMinutes, presentation.DurationMinutes,
			presentation.SortOrder, formatTime(presentation.CreatedAt), formatTime(presentation.UpdatedAt))
		if err != nil {
			return mapError(err)
		}
		return r.replaceSpeakers(ctx, presentation.ID, presentation.Speakers)
	})
}

// UpdatePresentation rewrites a presentation and its speaker assignments.
func (r *PresentationRepository) UpdatePresentation(ctx context.Context, presentation persistence.Presentation) error {
	return r.storage.InTransaction(ctx, func(ctx context.Context) error {
		result, err := r.storage.execer(ctx).ExecContext(ctx,
			`UPDATE presentations SET session_id = ?, title = ?, presentation_type = ?,
			        start_minutes = ?, end_minutes = ?, duration_minutes = ?, sort_order = ?, updated_at = ?
			 WHERE id = ?`,
			presentation.SessionID, presentation.Title, presentation.PresentationType,
			presentation.StartMinutes, presentation.EndMinutes, presentation.DurationMinutes,
			presentation.SortOrder, formatTime(presentation.UpdatedAt), presentation.ID)
		if err != nil {
			return mapError(err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
		return r.replaceSpeakers(ctx, presentation.ID, presentation.Speakers)
	})
}

// GetPresentation retrieves one presentation with its speakers.
func (r *PresentationRepository) GetPresentation(ctx context.Context, id string) (persistence.Presentation, error) {
	var row presentationRow
	if err := sqlx.GetContext(ctx, r.storage.execer(ctx), &row,
		`SELECT `+presentationColumns+` FROM presentations WHERE id = ?`, id); err != nil {
		return persistence.Presentation{}, mapError(err)
	}
	presentation, err := row.toModel()
	if err != nil {
		return persistence.Presentation{}, err
	}
	return r.attachSpeakers(ctx, presentation)
}

// ListPresentationsInSession returns a session's presentations in program
// order.
func (r *PresentationRepository) ListPresentationsInSession(ctx context.Context, sessionID string) ([]persistence.Presentation, error) {
	var rows []presentationRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows,
		`SELECT `+presentationColumns+` FROM presentations WHERE session_id = ? ORDER BY sort_order, id`,
		sessionID); err != nil {
		return nil, mapError(err)
	}
	presentations := make([]persistence.Presentation, 0, len(rows))
	for _, row := range rows {
		presentation, err := row.toModel()
		if err != nil {
			return nil, err
		}
		presentation, err = r.attachSpeakers(ctx, presentation)
		if err != nil {
			return nil, err
		}
		presentations = append(presentations, presentation)
	}
	return presentations, nil
}

// DeletePresentation removes a presentation; speaker rows cascade.
func (r *PresentationRepository) DeletePresentation(ctx context.Context, id string) error {
	result, err := r.storage.execer(ctx).ExecContext(ctx, `DELETE FROM presentations WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

func (r *PresentationRepository) attachSpeakers(ctx context.Context, presentation persistence.Presentation) (persistence.Presentation, error) {
	var rows []speakerRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows,
		`SELECT participant_id, role, sort_order FROM presentation_speakers
		 WHERE presentation_id = ? ORDER BY sort_order, participant_id`, presentation.ID); err != nil {
		return persistence.Presentation{}, mapError(err)
	}
	presentation.Speakers = make([]persistence.SpeakerAssignment, 0, len(rows))
	for _, row := range rows {
		presentation.Speakers = append(presentation.Speakers, persistence.SpeakerAssignment{
			ParticipantID: row.ParticipantID,
			Role:          row.Role,
			SortOrder:     row.SortOrder,
		})
	}
	return presentation, nil
}

func (r *PresentationRepository) replaceSpeakers(ctx context.Context, presentationID string, speakers []persistence.SpeakerAssignment) error {
	if _, err := r.storage.execer(ctx).ExecContext(ctx,
		`DELETE FROM presentation_speakers WHERE presentation_id = ?`, presentationID); err != nil {
		return mapError(err)
	}
	for _, speaker := range speakers {
		if _, err := r.storage.execer(ctx).ExecContext(ctx,
			`INSERT INTO presentation_speakers (presentation_id, participant_id, role, sort_order) VALUES (?, ?, ?, ?)`,
			presentationID, speaker.ParticipantID, speaker.Role, speaker.SortOrder); err != nil {
			return mapError(err)
		}
	}
	return nil
}
