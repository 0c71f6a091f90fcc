package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/application"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/metrics"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

// ErrorResponse is the uniform error payload for every endpoint.
type ErrorResponse struct {
	Error       string                 `json:"error"`
	FieldErrors map[string]string      `json:"field_errors,omitempty"`
	Violations  []scheduling.Violation `json:"violations,omitempty"`
}

// NewHTTPErrorHandler maps application errors onto HTTP status codes.
// Scheduling rejections carry the full violation list with a 422 so clients
// can show every problem at once.
func NewHTTPErrorHandler(logger *slog.Logger, m *metrics.Metrics) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := ErrorResponse{Error: "internal server error"}

		var vErr *application.ValidationError
		var sErr *application.SchedulingError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &vErr):
			status = http.StatusBadRequest
			body = ErrorResponse{Error: "validation failed", FieldErrors: vErr.FieldErrors}
		case errors.As(err, &sErr):
			status = http.StatusUnprocessableEntity
			body = ErrorResponse{Error: "scheduling conflict", Violations: sErr.Violations}
			m.RecordValidation("rejected")
			for _, violation := range sErr.Violations {
				m.RecordViolation(string(violation.Code))
			}
		case errors.Is(err, application.ErrNotFound):
			status = http.StatusNotFound
			body = ErrorResponse{Error: "not found"}
		case errors.Is(err, application.ErrAlreadyExists):
			status = http.StatusConflict
			body = ErrorResponse{Error: "already exists"}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if message, ok := httpErr.Message.(string); ok {
				body = ErrorResponse{Error: message}
			} else {
				body = ErrorResponse{Error: http.StatusText(status)}
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"status", status,
				"path", c.Request().URL.Path,
				"error", err,
				"error_kind", application.ErrorKind(err))
		}

		if err := c.JSON(status, body); err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}
