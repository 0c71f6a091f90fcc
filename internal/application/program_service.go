package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

const (
	// MinPrimarySpeakers and MaxPrimarySpeakers bound the number of primary
	// speakers on a presentation.
	MinPrimarySpeakers = 1
	MaxPrimarySpeakers = 3

	// Accepted speaker roles. An empty role defaults to the primary role.
	RolePrimarySpeaker = "speaker"
	RoleCoSpeaker      = "co_speaker"
	RoleDiscussant     = "discussant"
)

// ReportInvalidator drops cached conflict reports after a program mutation.
type ReportInvalidator interface {
	Invalidate()
}

// ProgramService orchestrates scheduling validation and persistence for
// sessions, presentations, and bulk reorders. Every write runs inside one
// storage transaction so validation and commit see the same program state.
type ProgramService struct {
	sessions      persistence.SessionRepository
	presentations persistence.PresentationRepository
	venues        persistence.VenueRepository
	events        persistence.EventRepository
	participants  persistence.ParticipantRepository
	validator     *scheduling.Validator
	tx            persistence.Transactor
	reports       ReportInvalidator
	idGenerator   func() string
	now           func() time.Time
	logger        *slog.Logger
}

// ProgramServiceDeps groups the collaborators of a ProgramService.
type ProgramServiceDeps struct {
	Sessions      persistence.SessionRepository
	Presentations persistence.PresentationRepository
	Venues        persistence.VenueRepository
	Events        persistence.EventRepository
	Participants  persistence.ParticipantRepository
	Validator     *scheduling.Validator
	Transactor    persistence.Transactor
	Reports       ReportInvalidator
	IDGenerator   func() string
	Now           func() time.Time
	Logger        *slog.Logger
}

// NewProgramService wires dependencies for program operations.
func NewProgramService(deps ProgramServiceDeps) *ProgramService {
	idGenerator := deps.IDGenerator
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ProgramService{
		sessions:      deps.Sessions,
		presentations: deps.Presentations,
		venues:        deps.Venues,
		events:        deps.Events,
		participants:  deps.Participants,
		validator:     deps.Validator,
		tx:            deps.Transactor,
		reports:       deps.Reports,
		idGenerator:   idGenerator,
		now:           now,
		logger:        deps.Logger,
	}
}

// CreateSession validates a proposed session against the venue timeline and
// participant availability before persisting it.
func (s *ProgramService) CreateSession(ctx context.Context, input SessionInput) (ProgramSession, error) {
	if s == nil || s.sessions == nil {
		return ProgramSession{}, fmt.Errorf("session repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "program", "create_session", "venue_id", input.VenueID)

	eventID, err := s.eventIDForVenue(ctx, input.VenueID)
	if err != nil {
		return ProgramSession{}, err
	}

	vErr := &ValidationError{}
	validateSessionCore(input, vErr)
	if vErr.HasErrors() {
		return ProgramSession{}, vErr
	}
	if err := s.ensureModerators(ctx, input.ModeratorIDs); err != nil {
		return ProgramSession{}, err
	}

	now := s.now()
	session := persistence.ProgramSession{
		ID:           s.idGenerator(),
		VenueID:      input.VenueID,
		Title:        strings.TrimSpace(input.Title),
		SessionType:  effectiveSessionType(input),
		StartMinutes: input.StartMinutes,
		EndMinutes:   input.EndMinutes,
		IsBreak:      input.IsBreak,
		SponsorID:    input.SponsorID,
		CategoryIDs:  input.CategoryIDs,
		ModeratorIDs: input.ModeratorIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		result, err := s.validator.ValidateSession(ctx, scheduling.SessionMutation{
			EventID:      eventID,
			VenueID:      session.VenueID,
			Type:         scheduling.SessionType(session.SessionType),
			StartMinutes: session.StartMinutes,
			EndMinutes:   session.EndMinutes,
			ModeratorIDs: session.ModeratorIDs,
		})
		if err != nil {
			return err
		}
		if !result.OK() {
			return &SchedulingError{Violations: result.Violations}
		}

		session.SortOrder, err = s.sessionSortOrder(ctx, session.VenueID, input.SortOrder)
		if err != nil {
			return err
		}
		return s.sessions.CreateSession(ctx, session)
	})
	if err != nil {
		return ProgramSession{}, mapRepoError(err)
	}

	s.invalidateReports()
	logger.InfoContext(ctx, "session created", "session_id", session.ID)
	return toProgramSession(session), nil
}

// UpdateSession validates a move, resize, or edit of an existing session.
// Shrinking a session that would orphan its presentations is rejected.
func (s *ProgramService) UpdateSession(ctx context.Context, sessionID string, input SessionInput) (ProgramSession, error) {
	if s == nil || s.sessions == nil {
		return ProgramSession{}, fmt.Errorf("session repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "program", "update_session", "session_id", sessionID)

	existing, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return ProgramSession{}, mapRepoError(err)
	}

	venueID := existing.VenueID
	if input.VenueID != "" {
		venueID = input.VenueID
	}
	eventID, err := s.eventIDForVenue(ctx, venueID)
	if err != nil {
		return ProgramSession{}, err
	}

	vErr := &ValidationError{}
	validateSessionCore(input, vErr)
	if vErr.HasErrors() {
		return ProgramSession{}, vErr
	}
	if err := s.ensureModerators(ctx, input.ModeratorIDs); err != nil {
		return ProgramSession{}, err
	}

	updated := existing
	updated.VenueID = venueID
	updated.Title = strings.TrimSpace(input.Title)
	updated.SessionType = effectiveSessionType(input)
	updated.StartMinutes = input.StartMinutes
	updated.EndMinutes = input.EndMinutes
	updated.IsBreak = input.IsBreak
	updated.SponsorID = input.SponsorID
	updated.CategoryIDs = input.CategoryIDs
	updated.ModeratorIDs = input.ModeratorIDs
	if input.SortOrder != nil {
		updated.SortOrder = *input.SortOrder
	}
	updated.UpdatedAt = s.now()

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		result, err := s.validator.ValidateSession(ctx, scheduling.SessionMutation{
			SessionID:    updated.ID,
			EventID:      eventID,
			VenueID:      updated.VenueID,
			Type:         scheduling.SessionType(updated.SessionType),
			StartMinutes: updated.StartMinutes,
			EndMinutes:   updated.EndMinutes,
			ModeratorIDs: updated.ModeratorIDs,
		})
		if err != nil {
			return err
		}
		if !result.OK() {
			return &SchedulingError{Violations: result.Violations}
		}
		return s.sessions.UpdateSession(ctx, updated)
	})
	if err != nil {
		return ProgramSession{}, mapRepoError(err)
	}

	s.invalidateReports()
	logger.InfoContext(ctx, "session updated")
	return toProgramSession(updated), nil
}

// GetSession retrieves one session.
func (s *ProgramService) GetSession(ctx context.Context, sessionID string) (ProgramSession, error) {
	if s == nil || s.sessions == nil {
		return ProgramSession{}, fmt.Errorf("session repository not configured")
	}
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return ProgramSession{}, mapRepoError(err)
	}
	return toProgramSession(session), nil
}

// ListSessionsInVenue enumerates a venue's sessions ordered by start time.
func (s *ProgramService) ListSessionsInVenue(ctx context.Context, venueID string) ([]ProgramSession, error) {
	if s == nil || s.sessions == nil {
		return nil, fmt.Errorf("session repository not configured")
	}
	sessions, err := s.sessions.ListSessionsInVenue(ctx, venueID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	out := make([]ProgramSession, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toProgramSession(session))
	}
	return out, nil
}

// DeleteSession removes a session and its presentations.
func (s *ProgramService) DeleteSession(ctx context.Context, sessionID string) error {
	if s == nil || s.sessions == nil {
		return fmt.Errorf("session repository not configured")
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return mapRepoError(err)
	}
	s.invalidateReports()
	return nil
}

// CreatePresentation validates a proposed presentation against its session's
// bounds, siblings, capacity, and speaker availability before persisting it.
func (s *ProgramService) CreatePresentation(ctx context.Context, input PresentationInput) (Presentation, error) {
	if s == nil || s.presentations == nil {
		return Presentation{}, fmt.Errorf("presentation repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "program", "create_presentation", "session_id", input.SessionID)

	parent, err := s.sessions.GetSession(ctx, input.SessionID)
	if err != nil {
		if isNotFoundError(err) {
			vErr := &ValidationError{}
			vErr.add("session_id", "session does not exist")
			return Presentation{}, vErr
		}
		return Presentation{}, err
	}
	eventID, err := s.eventIDForVenue(ctx, parent.VenueID)
	if err != nil {
		return Presentation{}, err
	}

	vErr := &ValidationError{}
	validatePresentationCore(input, vErr)
	if vErr.HasErrors() {
		return Presentation{}, vErr
	}
	if err := s.ensureSpeakers(ctx, input.Speakers); err != nil {
		return Presentation{}, err
	}

	now := s.now()
	presentation := persistence.Presentation{
		ID:               s.idGenerator(),
		SessionID:        input.SessionID,
		Title:            strings.TrimSpace(input.Title),
		PresentationType: input.PresentationType,
		StartMinutes:     input.StartMinutes,
		EndMinutes:       input.EndMinutes,
		DurationMinutes:  presentationDuration(input),
		Speakers:         toSpeakerAssignments(input.Speakers),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		result, err := s.validator.ValidatePresentation(ctx, scheduling.PresentationMutation{
			EventID:         eventID,
			SessionID:       presentation.SessionID,
			StartMinutes:    presentation.StartMinutes,
			EndMinutes:      presentation.EndMinutes,
			DurationMinutes: presentation.DurationMinutes,
			SpeakerIDs:      speakerIDs(input.Speakers),
		})
		if err != nil {
			return err
		}
		if !result.OK() {
			return &SchedulingError{Violations: result.Violations}
		}

		presentation.SortOrder, err = s.presentationSortOrder(ctx, presentation.SessionID, input.SortOrder)
		if err != nil {
			return err
		}
		return s.presentations.CreatePresentation(ctx, presentation)
	})
	if err != nil {
		return Presentation{}, mapRepoError(err)
	}

	s.invalidateReports()
	logger.InfoContext(ctx, "presentation created", "presentation_id", presentation.ID)
	return toPresentation(presentation), nil
}

// UpdatePresentation validates a retiming, move, or edit of an existing
// presentation.
func (s *ProgramService) UpdatePresentation(ctx context.Context, presentationID string, input PresentationInput) (Presentation, error) {
	if s == nil || s.presentations == nil {
		return Presentation{}, fmt.Errorf("presentation repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "program", "update_presentation", "presentation_id", presentationID)

	existing, err := s.presentations.GetPresentation(ctx, presentationID)
	if err != nil {
		return Presentation{}, mapRepoError(err)
	}

	sessionID := existing.SessionID
	if input.SessionID != "" {
		sessionID = input.SessionID
	}
	parent, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if isNotFoundError(err) {
			vErr := &ValidationError{}
			vErr.add("session_id", "session does not exist")
			return Presentation{}, vErr
		}
		return Presentation{}, err
	}
	eventID, err := s.eventIDForVenue(ctx, parent.VenueID)
	if err != nil {
		return Presentation{}, err
	}

	vErr := &ValidationError{}
	validatePresentationCore(input, vErr)
	if vErr.HasErrors() {
		return Presentation{}, vErr
	}
	if err := s.ensureSpeakers(ctx, input.Speakers); err != nil {
		return Presentation{}, err
	}

	updated := existing
	updated.SessionID = sessionID
	updated.Title = strings.TrimSpace(input.Title)
	updated.PresentationType = input.PresentationType
	updated.StartMinutes = input.StartMinutes
	updated.EndMinutes = input.EndMinutes
	updated.DurationMinutes = presentationDuration(input)
	updated.Speakers = toSpeakerAssignments(input.Speakers)
	if input.SortOrder != nil {
		updated.SortOrder = *input.SortOrder
	}
	updated.UpdatedAt = s.now()

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		result, err := s.validator.ValidatePresentation(ctx, scheduling.PresentationMutation{
			PresentationID:  updated.ID,
			EventID:         eventID,
			SessionID:       updated.SessionID,
			StartMinutes:    updated.StartMinutes,
			EndMinutes:      updated.EndMinutes,
			DurationMinutes: updated.DurationMinutes,
			SpeakerIDs:      speakerIDs(input.Speakers),
		})
		if err != nil {
			return err
		}
		if !result.OK() {
			return &SchedulingError{Violations: result.Violations}
		}
		return s.presentations.UpdatePresentation(ctx, updated)
	})
	if err != nil {
		return Presentation{}, mapRepoError(err)
	}

	s.invalidateReports()
	logger.InfoContext(ctx, "presentation updated")
	return toPresentation(updated), nil
}

// GetPresentation retrieves one presentation.
func (s *ProgramService) GetPresentation(ctx context.Context, presentationID string) (Presentation, error) {
	if s == nil || s.presentations == nil {
		return Presentation{}, fmt.Errorf("presentation repository not configured")
	}
	presentation, err := s.presentations.GetPresentation(ctx, presentationID)
	if err != nil {
		return Presentation{}, mapRepoError(err)
	}
	return toPresentation(presentation), nil
}

// ListPresentationsInSession enumerates a session's presentations in program
// order.
func (s *ProgramService) ListPresentationsInSession(ctx context.Context, sessionID string) ([]Presentation, error) {
	if s == nil || s.presentations == nil {
		return nil, fmt.Errorf("presentation repository not configured")
	}
	presentations, err := s.presentations.ListPresentationsInSession(ctx, sessionID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	out := make([]Presentation, 0, len(presentations))
	for _, presentation := range presentations {
		out = append(out, toPresentation(presentation))
	}
	return out, nil
}

// DeletePresentation removes a presentation.
func (s *ProgramService) DeletePresentation(ctx context.Context, presentationID string) error {
	if s == nil || s.presentations == nil {
		return fmt.Errorf("presentation repository not configured")
	}
	if err := s.presentations.DeletePresentation(ctx, presentationID); err != nil {
		return mapRepoError(err)
	}
	s.invalidateReports()
	return nil
}

// Reorder applies a bulk drag-and-drop batch. The whole batch is validated
// against the post-batch picture first; any violation rejects every item and
// nothing is persisted.
func (s *ProgramService) Reorder(ctx context.Context, items []ReorderItemInput) error {
	if s == nil || s.sessions == nil || s.presentations == nil {
		return fmt.Errorf("program repositories not configured")
	}
	logger := serviceLogger(ctx, s.logger, "program", "reorder", "item_count", len(items))

	vErr := &ValidationError{}
	if len(items) == 0 {
		vErr.add("items", "at least one item is required")
	}
	batch := make([]scheduling.ReorderItem, 0, len(items))
	for i, item := range items {
		if item.EntityID == "" {
			vErr.add(fmt.Sprintf("items[%d].entity_id", i), "entity id is required")
		}
		kind := scheduling.ReorderItemKind(item.Kind)
		if kind != scheduling.ReorderSession && kind != scheduling.ReorderPresentation {
			vErr.add(fmt.Sprintf("items[%d].kind", i), "kind must be session or presentation")
		}
		batch = append(batch, scheduling.ReorderItem{
			Kind:         kind,
			EntityID:     item.EntityID,
			VenueID:      item.VenueID,
			SessionID:    item.SessionID,
			StartMinutes: item.StartMinutes,
			EndMinutes:   item.EndMinutes,
			SortOrder:    item.SortOrder,
		})
	}
	if vErr.HasErrors() {
		return vErr
	}

	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		result, err := s.validator.ValidateBatch(ctx, batch)
		if err != nil {
			return err
		}
		if !result.OK() {
			return &SchedulingError{Violations: result.Violations}
		}

		now := s.now()
		for _, item := range batch {
			switch item.Kind {
			case scheduling.ReorderSession:
				if err := s.applySessionItem(ctx, item, now); err != nil {
					return err
				}
			case scheduling.ReorderPresentation:
				if err := s.applyPresentationItem(ctx, item, now); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return mapRepoError(err)
	}

	s.invalidateReports()
	logger.InfoContext(ctx, "reorder applied")
	return nil
}

func (s *ProgramService) applySessionItem(ctx context.Context, item scheduling.ReorderItem, now time.Time) error {
	session, err := s.sessions.GetSession(ctx, item.EntityID)
	if err != nil {
		return err
	}
	if item.VenueID != "" {
		session.VenueID = item.VenueID
	}
	if item.StartMinutes != nil {
		session.StartMinutes = *item.StartMinutes
	}
	if item.EndMinutes != nil {
		session.EndMinutes = *item.EndMinutes
	}
	if item.SortOrder != nil {
		session.SortOrder = *item.SortOrder
	}
	session.UpdatedAt = now
	return s.sessions.UpdateSession(ctx, session)
}

func (s *ProgramService) applyPresentationItem(ctx context.Context, item scheduling.ReorderItem, now time.Time) error {
	presentation, err := s.presentations.GetPresentation(ctx, item.EntityID)
	if err != nil {
		return err
	}
	if item.SessionID != "" {
		presentation.SessionID = item.SessionID
	}
	if item.StartMinutes != nil {
		presentation.StartMinutes = item.StartMinutes
	}
	if item.EndMinutes != nil {
		presentation.EndMinutes = item.EndMinutes
	}
	if item.SortOrder != nil {
		presentation.SortOrder = *item.SortOrder
	}
	presentation.UpdatedAt = now
	return s.presentations.UpdatePresentation(ctx, presentation)
}

// eventIDForVenue resolves the event a venue belongs to through its day. A
// missing venue surfaces as a field level validation error.
func (s *ProgramService) eventIDForVenue(ctx context.Context, venueID string) (string, error) {
	if venueID == "" {
		vErr := &ValidationError{}
		vErr.add("venue_id", "venue id is required")
		return "", vErr
	}
	venue, err := s.venues.GetVenue(ctx, venueID)
	if err != nil {
		if isNotFoundError(err) {
			vErr := &ValidationError{}
			vErr.add("venue_id", "venue does not exist")
			return "", vErr
		}
		return "", err
	}
	day, err := s.events.GetEventDay(ctx, venue.EventDayID)
	if err != nil {
		return "", mapRepoError(err)
	}
	return day.EventID, nil
}

func (s *ProgramService) ensureModerators(ctx context.Context, moderatorIDs []string) error {
	if s.participants == nil {
		return nil
	}
	vErr := &ValidationError{}
	for _, id := range moderatorIDs {
		participant, err := s.participants.GetParticipant(ctx, id)
		if err != nil {
			if isNotFoundError(err) {
				vErr.add("moderators", fmt.Sprintf("unknown participant id: %s", id))
				continue
			}
			return err
		}
		if !participant.CanModerate {
			vErr.add("moderators", fmt.Sprintf("participant %s cannot moderate", id))
		}
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

func (s *ProgramService) ensureSpeakers(ctx context.Context, speakers []SpeakerInput) error {
	if s.participants == nil {
		return nil
	}
	vErr := &ValidationError{}
	for _, speaker := range speakers {
		participant, err := s.participants.GetParticipant(ctx, speaker.ParticipantID)
		if err != nil {
			if isNotFoundError(err) {
				vErr.add("speakers", fmt.Sprintf("unknown participant id: %s", speaker.ParticipantID))
				continue
			}
			return err
		}
		if !participant.CanSpeak {
			vErr.add("speakers", fmt.Sprintf("participant %s cannot speak", speaker.ParticipantID))
		}
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

func (s *ProgramService) sessionSortOrder(ctx context.Context, venueID string, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	siblings, err := s.sessions.ListSessionsInVenue(ctx, venueID)
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		return 0, err
	}
	orders := make([]int, 0, len(siblings))
	for _, sibling := range siblings {
		orders = append(orders, sibling.SortOrder)
	}
	return scheduling.NextOrder(orders), nil
}

func (s *ProgramService) presentationSortOrder(ctx context.Context, sessionID string, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	siblings, err := s.presentations.ListPresentationsInSession(ctx, sessionID)
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		return 0, err
	}
	orders := make([]int, 0, len(siblings))
	for _, sibling := range siblings {
		orders = append(orders, sibling.SortOrder)
	}
	return scheduling.NextOrder(orders), nil
}

func (s *ProgramService) invalidateReports() {
	if s != nil && s.reports != nil {
		s.reports.Invalidate()
	}
}

func validateSessionCore(input SessionInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if !input.IsBreak && strings.TrimSpace(input.SessionType) == "" {
		vErr.add("session_type", "session type is required")
	}
	if input.SortOrder != nil && !scheduling.ValidExplicitOrder(*input.SortOrder) {
		vErr.add("sort_order", "sort order must be a non-negative integer")
	}
}

func validatePresentationCore(input PresentationInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.DurationMinutes <= 0 && (input.StartMinutes == nil || input.EndMinutes == nil) {
		vErr.add("duration_minutes", "duration is required for untimed presentations")
	}
	if input.SortOrder != nil && !scheduling.ValidExplicitOrder(*input.SortOrder) {
		vErr.add("sort_order", "sort order must be a non-negative integer")
	}

	primary := 0
	for i, speaker := range input.Speakers {
		if speaker.ParticipantID == "" {
			vErr.add(fmt.Sprintf("speakers[%d]", i), "participant id is required")
		}
		switch speaker.Role {
		case RolePrimarySpeaker, "":
			primary++
		case RoleCoSpeaker, RoleDiscussant:
		default:
			vErr.add(fmt.Sprintf("speakers[%d].role", i), "role must be speaker, co_speaker, or discussant")
		}
	}
	if primary < MinPrimarySpeakers || primary > MaxPrimarySpeakers {
		vErr.add("speakers", fmt.Sprintf("presentations require between %d and %d primary speakers", MinPrimarySpeakers, MaxPrimarySpeakers))
	}
}

// effectiveSessionType returns the capacity policy key for the session.
// Breaks always use the break policy regardless of the declared type.
func effectiveSessionType(input SessionInput) string {
	if input.IsBreak {
		return string(scheduling.SessionTypeBreak)
	}
	return strings.TrimSpace(input.SessionType)
}

// presentationDuration picks the explicit duration, or derives it from the
// supplied interval.
func presentationDuration(input PresentationInput) int {
	if input.DurationMinutes > 0 {
		return input.DurationMinutes
	}
	if input.StartMinutes != nil && input.EndMinutes != nil {
		return *input.EndMinutes - *input.StartMinutes
	}
	return 0
}

func toSpeakerAssignments(speakers []SpeakerInput) []persistence.SpeakerAssignment {
	out := make([]persistence.SpeakerAssignment, 0, len(speakers))
	for i, speaker := range speakers {
		role := speaker.Role
		if role == "" {
			role = RolePrimarySpeaker
		}
		out = append(out, persistence.SpeakerAssignment{
			ParticipantID: speaker.ParticipantID,
			Role:          role,
			SortOrder:     i + 1,
		})
	}
	return out
}

func speakerIDs(speakers []SpeakerInput) []string {
	ids := make([]string, 0, len(speakers))
	for _, speaker := range speakers {
		ids = append(ids, speaker.ParticipantID)
	}
	return ids
}
