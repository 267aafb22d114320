package entities

import (
	"github.com/google/uuid"
)

// Participant is one distinct speaker in one meeting, derived from the
// diarized segments. Rows are removed with their meeting (cascade).
type Participant struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID    uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	SpeakerName  string    `json:"speaker_name" gorm:"type:varchar(255);not null"`
	SpeakingTime float64   `json:"speaking_time"` // cumulative seconds
}

// TableName specifies the table name for GORM
func (Participant) TableName() string {
	return "participants"
}
