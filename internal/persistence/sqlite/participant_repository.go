package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

// ParticipantRepository implements persistence.ParticipantRepository over
// SQLite.
type ParticipantRepository struct {
	storage *Storage
}

// NewParticipantRepository binds a participant repository to the storage
// handle.
func NewParticipantRepository(storage *Storage) *ParticipantRepository {
	return &ParticipantRepository{storage: storage}
}

type participantRow struct {
	ID          string  `db:"id"`
	FullName    string  `db:"full_name"`
	Email       *string `db:"email"`
	CanSpeak    bool    `db:"can_speak"`
	CanModerate bool    `db:"can_moderate"`
	timestamps
}

func (r participantRow) toModel() (persistence.Participant, error) {
	created, updated, err := r.parse()
	if err != nil {
		return persistence.Participant{}, err
	}
	return persistence.Participant{
		ID:          r.ID,
		FullName:    r.FullName,
		Email:       r.Email,
		CanSpeak:    r.CanSpeak,
		CanModerate: r.CanModerate,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

const participantColumns = `id, full_name, email, can_speak, can_moderate, created_at, updated_at`

// CreateParticipant inserts a participant.
func (r *ParticipantRepository) CreateParticipant(ctx context.Context, participant persistence.Participant) error {
	_, err := r.storage.execer(ctx).ExecContext(ctx,
		`INSERT INTO participants (`+participantColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		participant.ID, participant.FullName, participant.Email,
		participant.CanSpeak, participant.CanModerate,
		formatTime(participant.CreatedAt), formatTime(participant.UpdatedAt))
	return mapError(err)
}

// UpdateParticipant rewrites a participant.
func (r *ParticipantRepository) UpdateParticipant(ctx context.Context, participant persistence.Participant) error {
	result, err := r.storage.execer(ctx).ExecContext(ctx,
		`UPDATE participants SET full_name = ?, email = ?, can_speak = ?, can_moderate = ?, updated_at = ?
		 WHERE id = ?`,
		participant.FullName, participant.Email, participant.CanSpeak, participant.CanModerate,
		formatTime(participant.UpdatedAt), participant.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

// GetParticipant retrieves one participant.
func (r *ParticipantRepository) GetParticipant(ctx context.Context, id string) (persistence.Participant, error) {
	var row participantRow
	if err := sqlx.GetContext(ctx, r.storage.execer(ctx), &row,
		`SELECT `+participantColumns+` FROM participants WHERE id = ?`, id); err != nil {
		return persistence.Participant{}, mapError(err)
	}
	return row.toModel()
}

// ListParticipants returns all participants ordered by name.
func (r *ParticipantRepository) ListParticipants(ctx context.Context) ([]persistence.Participant, error) {
	var rows []participantRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows,
		`SELECT `+participantColumns+` FROM participants ORDER BY full_name, id`); err != nil {
		return nil, mapError(err)
	}
	participants := make([]persistence.Participant, 0, len(rows))
	for _, row := range rows {
		participant, err := row.toModel()
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, nil
}

// DeleteParticipant removes a participant.
func (r *ParticipantRepository) DeleteParticipant(ctx context.Context, id string) error {
	result, err := r.storage.execer(ctx).ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

type commitmentRow struct {
	ID           string `db:"id"`
	Source       string `db:"source"`
	Role         string `db:"role"`
	StartMinutes int    `db:"start_minutes"`
	EndMinutes   int    `db:"end_minutes"`
}

// CommitmentsForParticipant resolves every claim on the participant's time
// within one event: sessions they moderate and presentations they speak in.
// Untimed presentations inherit their session's interval.
func (r *ParticipantRepository) CommitmentsForParticipant(ctx context.Context, participantID, eventID string) ([]persistence.Commitment, error) {
	var rows []commitmentRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows,
		`SELECT s.id AS id, 'session' AS source, 'moderator' AS role,
		        s.start_minutes AS start_minutes, s.end_minutes AS end_minutes
		 FROM session_moderators m
		 JOIN sessions s ON s.id = m.session_id
		 JOIN venues v ON v.id = s.venue_id
		 JOIN event_days d ON d.id = v.event_day_id
		 WHERE m.participant_id = ? AND d.event_id = ?
		 UNION ALL
		 SELECT p.id AS id, 'presentation' AS source, 'speaker' AS role,
		        COALESCE(p.start_minutes, s.start_minutes) AS start_minutes,
		        COALESCE(p.end_minutes, s.end_minutes) AS end_minutes
		 FROM presentation_speakers ps
		 JOIN presentations p ON p.id = ps.presentation_id
		 JOIN sessions s ON s.id = p.session_id
		 JOIN venues v ON v.id = s.venue_id
		 JOIN event_days d ON d.id = v.event_day_id
		 WHERE ps.participant_id = ? AND d.event_id = ?
		 ORDER BY start_minutes, id`,
		participantID, eventID, participantID, eventID); err != nil {
		return nil, mapError(err)
	}
	commitments := make([]persistence.Commitment, 0, len(rows))
	for _, row := range rows {
		commitments = append(commitments, persistence.Commitment{
			ID:           row.ID,
			Source:       row.Source,
			Role:         row.Role,
			StartMinutes: row.StartMinutes,
			EndMinutes:   row.EndMinutes,
		})
	}
	return commitments, nil
}
