package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/application"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/metrics"
)

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	Events       *application.EventService
	Program      *application.ProgramService
	Participants *application.ParticipantService
	Reports      *application.ConflictReportService
	Store        Pinger
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// NewRouter assembles the echo instance with all routes and middleware.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger, cfg.Metrics)

	e.Use(echomw.Recover())
	e.Use(RequestID())
	e.Use(RequestLogger(cfg.Logger))
	e.Use(Prometheus(cfg.Metrics))

	e.GET("/healthz", NewHealthHandler(cfg.Store).Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	if cfg.Events != nil {
		h := NewEventHandler(cfg.Events)
		api.POST("/events", h.CreateEvent)
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEvent)
		api.PUT("/events/:id", h.UpdateEvent)
		api.DELETE("/events/:id", h.DeleteEvent)

		api.POST("/events/:id/days", h.CreateEventDay)
		api.GET("/events/:id/days", h.ListEventDays)
		api.DELETE("/days/:id", h.DeleteEventDay)

		api.POST("/days/:id/venues", h.CreateVenue)
		api.GET("/days/:id/venues", h.ListVenues)
		api.GET("/venues/:id", h.GetVenue)
		api.PUT("/venues/:id", h.UpdateVenue)
		api.DELETE("/venues/:id", h.DeleteVenue)
	}

	if cfg.Program != nil {
		h := NewProgramHandler(cfg.Program, cfg.Reports, cfg.Metrics)
		api.POST("/venues/:id/sessions", h.CreateSession)
		api.GET("/venues/:id/sessions", h.ListSessions)
		api.GET("/sessions/:id", h.GetSession)
		api.PUT("/sessions/:id", h.UpdateSession)
		api.DELETE("/sessions/:id", h.DeleteSession)

		api.POST("/sessions/:id/presentations", h.CreatePresentation)
		api.GET("/sessions/:id/presentations", h.ListPresentations)
		api.GET("/presentations/:id", h.GetPresentation)
		api.PUT("/presentations/:id", h.UpdatePresentation)
		api.DELETE("/presentations/:id", h.DeletePresentation)

		api.POST("/program/reorder", h.Reorder)
		api.GET("/events/:id/conflicts", h.ConflictReport)
	}

	if cfg.Participants != nil {
		h := NewParticipantHandler(cfg.Participants)
		api.POST("/participants", h.Create)
		api.GET("/participants", h.List)
		api.GET("/participants/:id", h.Get)
		api.PUT("/participants/:id", h.Update)
		api.DELETE("/participants/:id", h.Delete)
	}

	return e
}
