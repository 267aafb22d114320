package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// CreateWithActions persists meeting, participants and actions in one
// transaction. The unique index on filename backs the idempotency guard.
func (r *meetingRepository) CreateWithActions(ctx context.Context, meeting *entities.Meeting, actions []*entities.ActionItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			if isUniqueViolation(err) {
				return entities.ErrDuplicateMeeting
			}
			return err
		}

		for _, action := range actions {
			action.MeetingID = meeting.ID
			action.MeetingFile = meeting.Filename
			if err := tx.Create(action).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// GetByFilename loads a meeting with participants and actions.
func (r *meetingRepository) GetByFilename(ctx context.Context, filename string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Speakers").
		Preload("Actions").
		Where("filename = ?", filename).
		First(&meeting).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// ExistsByFilename reports whether a meeting row exists for the filename.
func (r *meetingRepository) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("filename = ?", filename).
		Count(&count).Error
	return count > 0, err
}

// List returns meetings ordered by date descending.
func (r *meetingRepository) List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error) {
	if limit <= 0 {
		limit = 50
	}

	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Speakers").
		Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&meetings).Error
	return meetings, err
}

// Delete removes the meeting; participants, actions and history go with it
// via ON DELETE CASCADE.
func (r *meetingRepository) Delete(ctx context.Context, filename string) error {
	result := r.db.WithContext(ctx).
		Where("filename = ?", filename).
		Delete(&entities.Meeting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505") ||
		errors.Is(err, gorm.ErrDuplicatedKey)
}
