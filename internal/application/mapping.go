package application

import (
	"errors"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

func toEvent(event persistence.Event) Event {
	return Event{
		ID:        event.ID,
		Name:      event.Name,
		StartDate: event.StartDate,
		EndDate:   event.EndDate,
		CreatedAt: event.CreatedAt,
		UpdatedAt: event.UpdatedAt,
	}
}

func toEventDay(day persistence.EventDay) EventDay {
	return EventDay{
		ID:        day.ID,
		EventID:   day.EventID,
		Date:      day.Date,
		SortOrder: day.SortOrder,
		CreatedAt: day.CreatedAt,
		UpdatedAt: day.UpdatedAt,
	}
}

func toVenue(venue persistence.Venue) Venue {
	return Venue{
		ID:         venue.ID,
		EventDayID: venue.EventDayID,
		Name:       venue.Name,
		Capacity:   venue.Capacity,
		SortOrder:  venue.SortOrder,
		CreatedAt:  venue.CreatedAt,
		UpdatedAt:  venue.UpdatedAt,
	}
}

func toProgramSession(session persistence.ProgramSession) ProgramSession {
	return ProgramSession{
		ID:           session.ID,
		VenueID:      session.VenueID,
		Title:        session.Title,
		SessionType:  session.SessionType,
		StartMinutes: session.StartMinutes,
		EndMinutes:   session.EndMinutes,
		IsBreak:      session.IsBreak,
		SponsorID:    session.SponsorID,
		CategoryIDs:  session.CategoryIDs,
		ModeratorIDs: session.ModeratorIDs,
		SortOrder:    session.SortOrder,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
}

func toPresentation(presentation persistence.Presentation) Presentation {
	speakers := make([]Speaker, 0, len(presentation.Speakers))
	for _, speaker := range presentation.Speakers {
		speakers = append(speakers, Speaker{
			ParticipantID: speaker.ParticipantID,
			Role:          speaker.Role,
			SortOrder:     speaker.SortOrder,
		})
	}
	return Presentation{
		ID:               presentation.ID,
		SessionID:        presentation.SessionID,
		Title:            presentation.Title,
		PresentationType: presentation.PresentationType,
		StartMinutes:     presentation.StartMinutes,
		EndMinutes:       presentation.EndMinutes,
		DurationMinutes:  presentation.DurationMinutes,
		SortOrder:        presentation.SortOrder,
		Speakers:         speakers,
		CreatedAt:        presentation.CreatedAt,
		UpdatedAt:        presentation.UpdatedAt,
	}
}

func toParticipant(participant persistence.Participant) Participant {
	return Participant{
		ID:          participant.ID,
		FullName:    participant.FullName,
		Email:       participant.Email,
		CanSpeak:    participant.CanSpeak,
		CanModerate: participant.CanModerate,
		CreatedAt:   participant.CreatedAt,
		UpdatedAt:   participant.UpdatedAt,
	}
}

// mapRepoError translates persistence sentinels into application errors so
// transports never depend on the storage package.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrConstraintViolation):
		vErr := &ValidationError{}
		vErr.add("interval", "stored constraint rejected the change")
		return vErr
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		vErr := &ValidationError{}
		vErr.add("reference", "related records are missing")
		return vErr
	default:
		return err
	}
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound)
}
