package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

// ParticipantService orchestrates validation and persistence for
// participants.
type ParticipantService struct {
	participants persistence.ParticipantRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewParticipantService wires dependencies for participant operations.
func NewParticipantService(participants persistence.ParticipantRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ParticipantService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ParticipantService{
		participants: participants,
		idGenerator:  idGenerator,
		now:          now,
		logger:       logger,
	}
}

// CreateParticipant validates the request before delegating to persistence.
func (s *ParticipantService) CreateParticipant(ctx context.Context, input ParticipantInput) (Participant, error) {
	if s == nil || s.participants == nil {
		return Participant{}, fmt.Errorf("participant repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "participant", "create")

	vErr := &ValidationError{}
	validateParticipantCore(input, vErr)
	if vErr.HasErrors() {
		return Participant{}, vErr
	}

	now := s.now()
	participant := persistence.Participant{
		ID:          s.idGenerator(),
		FullName:    strings.TrimSpace(input.FullName),
		Email:       input.Email,
		CanSpeak:    input.CanSpeak,
		CanModerate: input.CanModerate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.participants.CreateParticipant(ctx, participant); err != nil {
		return Participant{}, mapRepoError(err)
	}

	logger.InfoContext(ctx, "participant created", "participant_id", participant.ID)
	return toParticipant(participant), nil
}

// UpdateParticipant applies validation before updating persistence state.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, participantID string, input ParticipantInput) (Participant, error) {
	if s == nil || s.participants == nil {
		return Participant{}, fmt.Errorf("participant repository not configured")
	}

	existing, err := s.participants.GetParticipant(ctx, participantID)
	if err != nil {
		return Participant{}, mapRepoError(err)
	}

	vErr := &ValidationError{}
	validateParticipantCore(input, vErr)
	if vErr.HasErrors() {
		return Participant{}, vErr
	}

	updated := existing
	updated.FullName = strings.TrimSpace(input.FullName)
	updated.Email = input.Email
	updated.CanSpeak = input.CanSpeak
	updated.CanModerate = input.CanModerate
	updated.UpdatedAt = s.now()
	if err := s.participants.UpdateParticipant(ctx, updated); err != nil {
		return Participant{}, mapRepoError(err)
	}
	return toParticipant(updated), nil
}

// GetParticipant retrieves one participant.
func (s *ParticipantService) GetParticipant(ctx context.Context, participantID string) (Participant, error) {
	if s == nil || s.participants == nil {
		return Participant{}, fmt.Errorf("participant repository not configured")
	}
	participant, err := s.participants.GetParticipant(ctx, participantID)
	if err != nil {
		return Participant{}, mapRepoError(err)
	}
	return toParticipant(participant), nil
}

// ListParticipants enumerates all participants.
func (s *ParticipantService) ListParticipants(ctx context.Context) ([]Participant, error) {
	if s == nil || s.participants == nil {
		return nil, fmt.Errorf("participant repository not configured")
	}
	participants, err := s.participants.ListParticipants(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	out := make([]Participant, 0, len(participants))
	for _, participant := range participants {
		out = append(out, toParticipant(participant))
	}
	return out, nil
}

// DeleteParticipant removes a participant together with their moderator and
// speaker assignments.
func (s *ParticipantService) DeleteParticipant(ctx context.Context, participantID string) error {
	if s == nil || s.participants == nil {
		return fmt.Errorf("participant repository not configured")
	}
	if err := s.participants.DeleteParticipant(ctx, participantID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func validateParticipantCore(input ParticipantInput, vErr *ValidationError) {
	if strings.TrimSpace(input.FullName) == "" {
		vErr.add("full_name", "full name is required")
	}
	if input.Email != nil && *input.Email != "" {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			vErr.add("email", "must be a valid email address")
		}
	}
}
