package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/application"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/config"
	httptransport "github.com/burakcelikkiran/bilimsel-program-sub003/internal/http"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/logging"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/metrics"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence/sqlite"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(slog.LevelInfo).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	events := sqlite.NewEventRepository(storage)
	venues := sqlite.NewVenueRepository(storage)
	sessions := sqlite.NewSessionRepository(storage)
	presentations := sqlite.NewPresentationRepository(storage)
	participants := sqlite.NewParticipantRepository(storage)
	reader := sqlite.NewProgramReader(storage)

	validator := scheduling.NewValidator(reader, scheduling.DefaultPolicies())

	eventService := application.NewEventService(events, venues, idGenerator, now, logger)
	participantService := application.NewParticipantService(participants, idGenerator, now, logger)
	reportService := application.NewConflictReportService(events, sessions, presentations, validator, cfg.ConflictCacheTTL, now, logger)
	programService := application.NewProgramService(application.ProgramServiceDeps{
		Sessions:      sessions,
		Presentations: presentations,
		Venues:        venues,
		Events:        events,
		Participants:  participants,
		Validator:     validator,
		Transactor:    storage,
		Reports:       reportService,
		IDGenerator:   idGenerator,
		Now:           now,
		Logger:        logger,
	})

	m := metrics.New()

	e := httptransport.NewRouter(httptransport.RouterConfig{
		Events:       eventService,
		Program:      programService,
		Participants: participantService,
		Reports:      reportService,
		Store:        storage,
		Metrics:      m,
		Logger:       logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("program API listening", "addr", addr)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
