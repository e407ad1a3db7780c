package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/ledger-service/internal/apperrors"
	"github.com/eaglebank/ledger-service/internal/command"
	"github.com/eaglebank/ledger-service/internal/middleware"
	"github.com/eaglebank/ledger-service/internal/models"
)

// EventCommander defines the write-side operations used by EventHandler.
type EventCommander interface {
	ProcessEvent(ctx context.Context, cmd command.ProcessEventCommand) (*models.EventResult, error)
	ResetAccounts(ctx context.Context) error
}

type EventHandler struct {
	commands EventCommander
}

// ProcessEventRequest mirrors the core's validation rules at the schema
// level; the command service re-checks them in its own order so its contract
// does not depend on this layer.
type ProcessEventRequest struct {
	Type        string  `json:"type" validate:"required,oneof=deposit withdraw transfer"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
}

func NewEventHandler(commands EventCommander) *EventHandler {
	return &EventHandler{commands: commands}
}

func (h *EventHandler) ProcessEvent(c *gin.Context) {
	var req ProcessEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.commands.ProcessEvent(c.Request.Context(), command.ProcessEventCommand{
		Type:        req.Type,
		Amount:      req.Amount,
		Origin:      req.Origin,
		Destination: req.Destination,
	})
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindInvalidArgument, apperrors.KindValidation:
			middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
		case apperrors.KindNotFound:
			middleware.RespondWithError(c, http.StatusNotFound, err.Error())
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to process event")
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Reset clears every account. Administrative endpoint, no request body.
func (h *EventHandler) Reset(c *gin.Context) {
	if err := h.commands.ResetAccounts(c.Request.Context()); err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to reset accounts")
		return
	}
	c.Status(http.StatusOK)
}
