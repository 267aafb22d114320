package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

// ActionFilter narrows action listings. Zero values mean "no constraint".
type ActionFilter struct {
	Status      entities.ActionStatus
	Urgency     entities.DeadlineUrgency
	MeetingFile string
	SortBy      string // "deadline", "urgency", "created_at"
}

// ActionStats aggregates lifecycle counts across all actions.
type ActionStats struct {
	Total     int64 `json:"total"`
	Open      int64 `json:"open"`
	Completed int64 `json:"completed"`
	Overdue   int64 `json:"overdue"`
}

// ActionRepository manages the action item lifecycle.
type ActionRepository interface {
	// List returns actions matching the filter.
	List(ctx context.Context, filter ActionFilter) ([]*entities.ActionItem, error)

	// GetByID loads one action. Returns entities.ErrActionNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)

	// ListOverdue returns open actions whose deadline is before now.
	ListOverdue(ctx context.Context, now time.Time) ([]*entities.ActionItem, error)

	// Complete transitions an open action to completed and appends exactly
	// one history entry in the same transaction. Returns
	// entities.ErrActionNotFound or entities.ErrInvalidTransition.
	Complete(ctx context.Context, id uuid.UUID, changedBy, reason string, at time.Time) (*entities.ActionItem, error)

	// Stats returns lifecycle counts. Overdue is derived against now and
	// counts a subset of Open.
	Stats(ctx context.Context, now time.Time) (*ActionStats, error)

	// History returns the audit trail for one action, oldest first.
	History(ctx context.Context, actionID uuid.UUID) ([]entities.ActionHistoryEntry, error)
}
