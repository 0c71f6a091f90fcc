package testfixtures

import (
	"context"
	"testing"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

type capturingParticipantRepo struct {
	created persistence.Participant
}

func (c *capturingParticipantRepo) CreateParticipant(ctx context.Context, participant persistence.Participant) error {
	c.created = participant
	return nil
}

func (c *capturingParticipantRepo) UpdateParticipant(ctx context.Context, participant persistence.Participant) error {
	return nil
}

func (c *capturingParticipantRepo) GetParticipant(ctx context.Context, id string) (persistence.Participant, error) {
	return persistence.Participant{}, persistence.ErrNotFound
}

func (c *capturingParticipantRepo) ListParticipants(ctx context.Context) ([]persistence.Participant, error) {
	return nil, nil
}

func (c *capturingParticipantRepo) DeleteParticipant(ctx context.Context, id string) error {
	return nil
}

func (c *capturingParticipantRepo) CommitmentsForParticipant(ctx context.Context, participantID, eventID string) ([]persistence.Commitment, error) {
	return nil, nil
}

func TestServiceFactoryNewParticipantService(t *testing.T) {
	factory := NewServiceFactory()
	repo := &capturingParticipantRepo{}

	svc := factory.NewParticipantService(ParticipantServiceDeps{Participants: repo})
	fixture := NewParticipantFixture()

	participant, err := svc.CreateParticipant(context.Background(), fixture.Input())
	if err != nil {
		t.Fatalf("CreateParticipant returned error: %v", err)
	}

	if participant.ID != "id-1" {
		t.Fatalf("expected generated ID id-1, got %q", participant.ID)
	}
	if repo.created.ID != participant.ID {
		t.Fatalf("repository received unexpected ID: %q", repo.created.ID)
	}
	if !participant.CreatedAt.Equal(factory.Clock.Current()) {
		t.Fatalf("expected timestamp %v, got %v", factory.Clock.Current(), participant.CreatedAt)
	}
}

func TestFixturesAreDeterministicAndDistinct(t *testing.T) {
	event := NewEventFixture()
	day := NewEventDayFixture(event.ID)
	venue := NewVenueFixture(day.ID)
	session := NewSessionFixture(venue.ID)
	other := NewSessionFixture(venue.ID)

	if day.EventID != event.ID {
		t.Fatalf("day not bound to event: %q", day.EventID)
	}
	if venue.EventDayID != day.ID {
		t.Fatalf("venue not bound to day: %q", venue.EventDayID)
	}
	if session.ID == other.ID {
		t.Fatalf("session fixtures must have distinct IDs")
	}
	if session.EndMinutes <= session.StartMinutes {
		t.Fatalf("session fixture has inverted interval: [%d, %d)", session.StartMinutes, session.EndMinutes)
	}
}
