package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

// ProgramReader answers the scheduling validator's read queries directly from
// SQLite, sharing any transaction carried in the context.
type ProgramReader struct {
	storage      *Storage
	participants *ParticipantRepository
}

// NewProgramReader builds a validator reader over the storage handle.
func NewProgramReader(storage *Storage) *ProgramReader {
	return &ProgramReader{
		storage:      storage,
		participants: NewParticipantRepository(storage),
	}
}

type sessionRecordRow struct {
	ID           string `db:"id"`
	EventID      string `db:"event_id"`
	VenueID      string `db:"venue_id"`
	SessionType  string `db:"session_type"`
	StartMinutes int    `db:"start_minutes"`
	EndMinutes   int    `db:"end_minutes"`
	IsBreak      bool   `db:"is_break"`
}

const sessionRecordQuery = `
	SELECT s.id, d.event_id, s.venue_id, s.session_type, s.start_minutes, s.end_minutes, s.is_break
	FROM sessions s
	JOIN venues v ON v.id = s.venue_id
	JOIN event_days d ON d.id = v.event_day_id`

// Session loads one session in the validator's shape, including the event it
// belongs to.
func (r *ProgramReader) Session(ctx context.Context, sessionID string) (scheduling.SessionRecord, error) {
	var row sessionRecordRow
	if err := sqlx.GetContext(ctx, r.storage.execer(ctx), &row,
		sessionRecordQuery+` WHERE s.id = ?`, sessionID); err != nil {
		return scheduling.SessionRecord{}, mapError(err)
	}
	return r.toSessionRecord(ctx, row)
}

// SessionsInVenue lists a venue's sessions in the validator's shape.
func (r *ProgramReader) SessionsInVenue(ctx context.Context, venueID string) ([]scheduling.SessionRecord, error) {
	var rows []sessionRecordRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows,
		sessionRecordQuery+` WHERE s.venue_id = ? ORDER BY s.start_minutes, s.id`, venueID); err != nil {
		return nil, mapError(err)
	}
	records := make([]scheduling.SessionRecord, 0, len(rows))
	for _, row := range rows {
		record, err := r.toSessionRecord(ctx, row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

type presentationRecordRow struct {
	ID              string `db:"id"`
	SessionID       string `db:"session_id"`
	StartMinutes    *int   `db:"start_minutes"`
	EndMinutes      *int   `db:"end_minutes"`
	DurationMinutes int    `db:"duration_minutes"`
}

// Presentation loads one presentation in the validator's shape.
func (r *ProgramReader) Presentation(ctx context.Context, presentationID string) (scheduling.PresentationRecord, error) {
	var row presentationRecordRow
	if err := sqlx.GetContext(ctx, r.storage.execer(ctx), &row,
		`SELECT id, session_id, start_minutes, end_minutes, duration_minutes
		 FROM presentations WHERE id = ?`, presentationID); err != nil {
		return scheduling.PresentationRecord{}, mapError(err)
	}
	return r.toPresentationRecord(ctx, row)
}

// PresentationsInSession lists a session's presentations in the validator's
// shape.
func (r *ProgramReader) PresentationsInSession(ctx context.Context, sessionID string) ([]scheduling.PresentationRecord, error) {
	var rows []presentationRecordRow
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &rows,
		`SELECT id, session_id, start_minutes, end_minutes, duration_minutes
		 FROM presentations WHERE session_id = ? ORDER BY sort_order, id`, sessionID); err != nil {
		return nil, mapError(err)
	}
	records := make([]scheduling.PresentationRecord, 0, len(rows))
	for _, row := range rows {
		record, err := r.toPresentationRecord(ctx, row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// CommitmentsForParticipant resolves the participant's booked intervals in
// the event.
func (r *ProgramReader) CommitmentsForParticipant(ctx context.Context, participantID, eventID string) ([]scheduling.Commitment, error) {
	stored, err := r.participants.CommitmentsForParticipant(ctx, participantID, eventID)
	if err != nil {
		return nil, err
	}
	commitments := make([]scheduling.Commitment, 0, len(stored))
	for _, commitment := range stored {
		commitments = append(commitments, scheduling.Commitment{
			ID:     commitment.ID,
			Source: scheduling.CommitmentSource(commitment.Source),
			Role:   scheduling.ParticipantRole(commitment.Role),
			Interval: scheduling.Interval{
				Start: commitment.StartMinutes,
				End:   commitment.EndMinutes,
			},
		})
	}
	return commitments, nil
}

func (r *ProgramReader) toSessionRecord(ctx context.Context, row sessionRecordRow) (scheduling.SessionRecord, error) {
	var moderatorIDs []string
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &moderatorIDs,
		`SELECT participant_id FROM session_moderators WHERE session_id = ? ORDER BY participant_id`, row.ID); err != nil {
		return scheduling.SessionRecord{}, mapError(err)
	}
	return scheduling.SessionRecord{
		ID:           row.ID,
		EventID:      row.EventID,
		VenueID:      row.VenueID,
		Type:         scheduling.SessionType(row.SessionType),
		Interval:     scheduling.Interval{Start: row.StartMinutes, End: row.EndMinutes},
		IsBreak:      row.IsBreak,
		ModeratorIDs: moderatorIDs,
	}, nil
}

func (r *ProgramReader) toPresentationRecord(ctx context.Context, row presentationRecordRow) (scheduling.PresentationRecord, error) {
	var speakerIDs []string
	if err := sqlx.SelectContext(ctx, r.storage.execer(ctx), &speakerIDs,
		`SELECT participant_id FROM presentation_speakers WHERE presentation_id = ? ORDER BY sort_order, participant_id`, row.ID); err != nil {
		return scheduling.PresentationRecord{}, mapError(err)
	}
	record := scheduling.PresentationRecord{
		ID:              row.ID,
		SessionID:       row.SessionID,
		DurationMinutes: row.DurationMinutes,
		SpeakerIDs:      speakerIDs,
	}
	if row.StartMinutes != nil && row.EndMinutes != nil {
		interval := scheduling.Interval{Start: *row.StartMinutes, End: *row.EndMinutes}
		record.Interval = &interval
	}
	return record, nil
}

var _ scheduling.Reader = (*ProgramReader)(nil)
var _ persistence.SessionRepository = (*SessionRepository)(nil)
var _ persistence.PresentationRepository = (*PresentationRepository)(nil)
var _ persistence.ParticipantRepository = (*ParticipantRepository)(nil)
var _ persistence.EventRepository = (*EventRepository)(nil)
var _ persistence.VenueRepository = (*VenueRepository)(nil)
var _ persistence.Transactor = (*Storage)(nil)
