package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActionStatus is the persisted lifecycle state of an action item.
// "overdue" is intentionally not a stored status: it is derived at read
// time from an open action whose deadline has passed.
type ActionStatus string

const (
	ActionStatusOpen      ActionStatus = "open"
	ActionStatusCompleted ActionStatus = "completed"
)

// DeadlineUrgency is the coarse time-pressure tier computed from the gap
// between meeting date and deadline.
type DeadlineUrgency string

const (
	UrgencyUrgent DeadlineUrgency = "urgent"
	UrgencyHigh   DeadlineUrgency = "high"
	UrgencyMedium DeadlineUrgency = "medium"
	UrgencyLow    DeadlineUrgency = "low"
)

// ActionItem is one detected action statement. MeetingFile is a denormalized
// copy of the owning meeting's filename kept for join-free display; the
// writer must always set it together with MeetingID.
type ActionItem struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingFile     string          `json:"meeting_file" gorm:"type:varchar(255);not null;index"`
	MeetingID       uuid.UUID       `json:"meeting_id" gorm:"type:uuid;not null;index"`
	ActionText      string          `json:"action_text" gorm:"type:text;not null"`
	Assignees       []string        `json:"assignees" gorm:"type:jsonb;serializer:json"`
	Deadline        *time.Time      `json:"deadline,omitempty" gorm:"index"`
	DeadlineUrgency DeadlineUrgency `json:"deadline_urgency" gorm:"type:varchar(16);default:'low'"`
	Status          ActionStatus    `json:"status" gorm:"type:varchar(16);default:'open';index"`
	Confidence      float64         `json:"confidence"`
	Speaker         string          `json:"speaker" gorm:"type:varchar(255)"`
	StartTime       float64         `json:"start_time"`
	EndTime         float64         `json:"end_time"`
	Features        datatypes.JSON  `json:"features,omitempty" gorm:"type:jsonb"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	Notes           *string         `json:"notes,omitempty" gorm:"type:text"`

	History []ActionHistoryEntry `json:"-" gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (ActionItem) TableName() string {
	return "actions"
}

// NewActionItem creates an open action draft owned by the given meeting.
func NewActionItem(meetingID uuid.UUID, meetingFile, text string) *ActionItem {
	return &ActionItem{
		ID:              uuid.New(),
		MeetingID:       meetingID,
		MeetingFile:     meetingFile,
		ActionText:      text,
		Assignees:       []string{},
		DeadlineUrgency: UrgencyLow,
		Status:          ActionStatusOpen,
		CreatedAt:       time.Now(),
	}
}

// IsOverdue reports whether the action is open with a deadline in the past.
func (a *ActionItem) IsOverdue(now time.Time) bool {
	return a.Status == ActionStatusOpen && a.Deadline != nil && a.Deadline.Before(now)
}

// Complete transitions the action to completed. CompletedAt is set iff the
// status is completed; callers persist the matching history entry in the
// same transaction.
func (a *ActionItem) Complete(now time.Time, notes *string) error {
	if a.Status == ActionStatusCompleted {
		return ErrInvalidTransition
	}
	a.Status = ActionStatusCompleted
	a.CompletedAt = &now
	if notes != nil {
		a.Notes = notes
	}
	return nil
}
