package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutetrack/minute-tracker/errors"
	"github.com/minutetrack/minute-tracker/internal/adapter/dto"
	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/internal/domain/repositories"
)

// Action handles the action-item lifecycle endpoints.
type Action struct {
	actions repositories.ActionRepository
	logger  *zap.Logger
}

// NewActionHandler creates the action handler.
func NewActionHandler(actions repositories.ActionRepository, logger *zap.Logger) *Action {
	return &Action{actions: actions, logger: logger}
}

// List returns all actions across meetings, optionally filtered.
// GET /v1/actions
func (h *Action) List(c echo.Context) error {
	var req dto.ListActionsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid query parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	filter := repositories.ActionFilter{
		Status:      entities.ActionStatus(req.Status),
		Urgency:     entities.DeadlineUrgency(req.Urgency),
		MeetingFile: req.Meeting,
		SortBy:      req.Sort,
	}

	actions, err := h.actions.List(c.Request().Context(), filter)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, dto.NewActionResponses(actions, time.Now()))
}

// Overdue returns open actions whose deadline has passed.
// GET /v1/actions/overdue
func (h *Action) Overdue(c echo.Context) error {
	actions, err := h.actions.ListOverdue(c.Request().Context(), time.Now())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, dto.NewActionResponses(actions, time.Now()))
}

// Stats returns derived lifecycle counts.
// GET /v1/actions/stats
func (h *Action) Stats(c echo.Context) error {
	stats, err := h.actions.Stats(c.Request().Context(), time.Now())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, stats)
}

// Complete transitions one action open -> completed.
// POST /v1/actions/:id/complete
func (h *Action) Complete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid action id"))
	}

	var req dto.CompleteActionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	action, err := h.actions.Complete(c.Request().Context(), id, req.ChangedBy, req.Reason, time.Now())
	if err != nil {
		switch err {
		case entities.ErrActionNotFound:
			return HandleError(h.logger, c, apperrors.ErrActionNotFound(id.String()))
		case entities.ErrInvalidTransition:
			return HandleError(h.logger, c, apperrors.ErrInvalidTransition(id.String(), string(entities.ActionStatusCompleted)))
		default:
			return HandleError(h.logger, c, err)
		}
	}

	return HandleSuccess(h.logger, c, http.StatusOK, dto.NewActionResponse(action, time.Now()))
}

// History returns the audit trail for one action.
// GET /v1/actions/:id/history
func (h *Action) History(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid action id"))
	}

	if _, err := h.actions.GetByID(c.Request().Context(), id); err != nil {
		if err == entities.ErrActionNotFound {
			return HandleError(h.logger, c, apperrors.ErrActionNotFound(id.String()))
		}
		return HandleError(h.logger, c, err)
	}

	entries, err := h.actions.History(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, entries)
}
