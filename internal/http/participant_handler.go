package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/application"
)

// ParticipantHandler serves the participant CRUD endpoints.
type ParticipantHandler struct {
	participants *application.ParticipantService
}

// NewParticipantHandler binds the handler to its service.
func NewParticipantHandler(participants *application.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participants: participants}
}

// ParticipantRequest is the create/update payload for participants.
type ParticipantRequest struct {
	FullName    string  `json:"full_name" validate:"required"`
	Email       *string `json:"email" validate:"omitempty,email"`
	CanSpeak    bool    `json:"can_speak"`
	CanModerate bool    `json:"can_moderate"`
}

// ParticipantResponse is the wire shape of a participant.
type ParticipantResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Email       *string `json:"email,omitempty"`
	CanSpeak    bool    `json:"can_speak"`
	CanModerate bool    `json:"can_moderate"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toParticipantResponse(participant application.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:          participant.ID,
		FullName:    participant.FullName,
		Email:       participant.Email,
		CanSpeak:    participant.CanSpeak,
		CanModerate: participant.CanModerate,
		CreatedAt:   participant.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   participant.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *ParticipantHandler) participantInput(c echo.Context) (application.ParticipantInput, error) {
	var req ParticipantRequest
	if err := c.Bind(&req); err != nil {
		return application.ParticipantInput{}, echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return application.ParticipantInput{}, err
	}
	return application.ParticipantInput{
		FullName:    req.FullName,
		Email:       req.Email,
		CanSpeak:    req.CanSpeak,
		CanModerate: req.CanModerate,
	}, nil
}

// Create handles POST /api/v1/participants.
func (h *ParticipantHandler) Create(c echo.Context) error {
	input, err := h.participantInput(c)
	if err != nil {
		return err
	}
	participant, err := h.participants.CreateParticipant(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toParticipantResponse(participant))
}

// Update handles PUT /api/v1/participants/:id.
func (h *ParticipantHandler) Update(c echo.Context) error {
	input, err := h.participantInput(c)
	if err != nil {
		return err
	}
	participant, err := h.participants.UpdateParticipant(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParticipantResponse(participant))
}

// Get handles GET /api/v1/participants/:id.
func (h *ParticipantHandler) Get(c echo.Context) error {
	participant, err := h.participants.GetParticipant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParticipantResponse(participant))
}

// List handles GET /api/v1/participants.
func (h *ParticipantHandler) List(c echo.Context) error {
	participants, err := h.participants.ListParticipants(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]ParticipantResponse, 0, len(participants))
	for _, participant := range participants {
		out = append(out, toParticipantResponse(participant))
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /api/v1/participants/:id.
func (h *ParticipantHandler) Delete(c echo.Context) error {
	if err := h.participants.DeleteParticipant(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
