package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionHistoryEntry is an append-only audit record of one status change.
// Every status mutation writes exactly one entry in the same transaction;
// entries are never updated and only removed by cascade with their action.
type ActionHistoryEntry struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ActionID     uuid.UUID    `json:"action_id" gorm:"type:uuid;not null;index"`
	OldStatus    ActionStatus `json:"old_status" gorm:"type:varchar(16);not null"`
	NewStatus    ActionStatus `json:"new_status" gorm:"type:varchar(16);not null"`
	ChangedBy    string       `json:"changed_by" gorm:"type:varchar(255)"`
	ChangeReason string       `json:"change_reason" gorm:"type:text"`
	ChangedAt    time.Time    `json:"changed_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ActionHistoryEntry) TableName() string {
	return "action_history"
}
