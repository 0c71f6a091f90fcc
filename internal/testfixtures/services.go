package testfixtures

import (
	"log/slog"
	"time"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/application"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// EventServiceDeps captures dependencies for constructing an event service.
type EventServiceDeps struct {
	Events      persistence.EventRepository
	Venues      persistence.VenueRepository
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewEventService builds an event service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewEventService(deps EventServiceDeps) *application.EventService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewEventService(
		deps.Events,
		deps.Venues,
		idGen,
		now,
		deps.Logger,
	)
}

// ProgramServiceDeps captures dependencies for constructing a program service.
type ProgramServiceDeps struct {
	Sessions      persistence.SessionRepository
	Presentations persistence.PresentationRepository
	Venues        persistence.VenueRepository
	Events        persistence.EventRepository
	Participants  persistence.ParticipantRepository
	Validator     *scheduling.Validator
	Transactor    persistence.Transactor
	Reports       application.ReportInvalidator
	IDGenerator   func() string
	Now           func() time.Time
	Logger        *slog.Logger
}

// NewProgramService builds a program service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewProgramService(deps ProgramServiceDeps) *application.ProgramService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewProgramService(application.ProgramServiceDeps{
		Sessions:      deps.Sessions,
		Presentations: deps.Presentations,
		Venues:        deps.Venues,
		Events:        deps.Events,
		Participants:  deps.Participants,
		Validator:     deps.Validator,
		Transactor:    deps.Transactor,
		Reports:       deps.Reports,
		IDGenerator:   idGen,
		Now:           now,
		Logger:        deps.Logger,
	})
}

// ParticipantServiceDeps captures dependencies for constructing a participant
// service.
type ParticipantServiceDeps struct {
	Participants persistence.ParticipantRepository
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewParticipantService builds a participant service using the supplied
// dependencies.
func (f *ServiceFactory) NewParticipantService(deps ParticipantServiceDeps) *application.ParticipantService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewParticipantService(
		deps.Participants,
		idGen,
		now,
		deps.Logger,
	)
}

// ConflictReportServiceDeps captures dependencies for constructing a conflict
// report service.
type ConflictReportServiceDeps struct {
	Events        persistence.EventRepository
	Sessions      persistence.SessionRepository
	Presentations persistence.PresentationRepository
	Validator     *scheduling.Validator
	CacheTTL      time.Duration
	Now           func() time.Time
	Logger        *slog.Logger
}

// NewConflictReportService builds a conflict report service using the supplied
// dependencies.
func (f *ServiceFactory) NewConflictReportService(deps ConflictReportServiceDeps) *application.ConflictReportService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewConflictReportService(
		deps.Events,
		deps.Sessions,
		deps.Presentations,
		deps.Validator,
		deps.CacheTTL,
		now,
		deps.Logger,
	)
}
