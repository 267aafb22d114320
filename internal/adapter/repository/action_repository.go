package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/internal/domain/repositories"
)

// actionRepository implements the ActionRepository interface
type actionRepository struct {
	db *gorm.DB
}

// NewActionRepository creates a new action repository
func NewActionRepository(db *gorm.DB) repositories.ActionRepository {
	return &actionRepository{db: db}
}

// List returns actions matching the filter, newest first by default.
func (r *actionRepository) List(ctx context.Context, filter repositories.ActionFilter) ([]*entities.ActionItem, error) {
	query := r.db.WithContext(ctx).Model(&entities.ActionItem{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Urgency != "" {
		query = query.Where("deadline_urgency = ?", filter.Urgency)
	}
	if filter.MeetingFile != "" {
		query = query.Where("meeting_file = ?", filter.MeetingFile)
	}

	switch filter.SortBy {
	case "deadline":
		query = query.Order("deadline ASC NULLS LAST")
	case "urgency":
		// urgent first, low last
		query = query.Order(`CASE deadline_urgency
			WHEN 'urgent' THEN 0
			WHEN 'high' THEN 1
			WHEN 'medium' THEN 2
			ELSE 3 END ASC`).Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var actions []*entities.ActionItem
	err := query.Find(&actions).Error
	return actions, err
}

// GetByID loads one action.
func (r *actionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	var action entities.ActionItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&action).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrActionNotFound
		}
		return nil, err
	}
	return &action, nil
}

// ListOverdue returns open actions whose deadline has passed. Overdue is
// derived at read time, never stored.
func (r *actionRepository) ListOverdue(ctx context.Context, now time.Time) ([]*entities.ActionItem, error) {
	var actions []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", entities.ActionStatusOpen, now).
		Order("deadline ASC").
		Find(&actions).Error
	return actions, err
}

// Complete transitions open -> completed atomically. The conditional UPDATE
// claims the row; zero rows affected means either a missing id or a
// non-open status, distinguished by a follow-up read. Exactly one history
// entry is written in the same transaction.
func (r *actionRepository) Complete(ctx context.Context, id uuid.UUID, changedBy, reason string, at time.Time) (*entities.ActionItem, error) {
	var updated *entities.ActionItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.ActionItem{}).
			Where("id = ? AND status = ?", id, entities.ActionStatusOpen).
			Updates(map[string]interface{}{
				"status":       entities.ActionStatusCompleted,
				"completed_at": at,
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var existing entities.ActionItem
			if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return entities.ErrActionNotFound
				}
				return err
			}
			return entities.ErrInvalidTransition
		}

		history := entities.ActionHistoryEntry{
			ID:           uuid.New(),
			ActionID:     id,
			OldStatus:    entities.ActionStatusOpen,
			NewStatus:    entities.ActionStatusCompleted,
			ChangedBy:    changedBy,
			ChangeReason: reason,
			ChangedAt:    at,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		var action entities.ActionItem
		if err := tx.Where("id = ?", id).First(&action).Error; err != nil {
			return err
		}
		updated = &action
		return nil
	})

	return updated, err
}

// Stats returns lifecycle counts. Overdue counts a subset of Open.
func (r *actionRepository) Stats(ctx context.Context, now time.Time) (*repositories.ActionStats, error) {
	stats := &repositories.ActionStats{}
	base := r.db.WithContext(ctx).Model(&entities.ActionItem{})

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", entities.ActionStatusOpen).
		Count(&stats.Open).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", entities.ActionStatusCompleted).
		Count(&stats.Completed).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", entities.ActionStatusOpen, now).
		Count(&stats.Overdue).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// History returns the audit trail for one action, oldest first.
func (r *actionRepository) History(ctx context.Context, actionID uuid.UUID) ([]entities.ActionHistoryEntry, error) {
	var entries []entities.ActionHistoryEntry
	err := r.db.WithContext(ctx).
		Where("action_id = ?", actionID).
		Order("changed_at ASC").
		Find(&entries).Error
	return entries, err
}
