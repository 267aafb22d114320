package entities

import (
	"time"

	"github.com/google/uuid"
)

// Meeting is one processed recording with its structured minutes.
// Created once by the ingestion pipeline on successful completion and
// immutable afterwards; re-processing replaces the whole record.
type Meeting struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Filename       string     `json:"filename" gorm:"type:varchar(255);not null;uniqueIndex"`
	Title          string     `json:"title" gorm:"type:varchar(255)"`
	Date           time.Time  `json:"date" gorm:"not null;index"`
	Duration       float64    `json:"duration"` // seconds
	Participants   []string   `json:"participants" gorm:"type:jsonb;serializer:json"`
	Summary        string     `json:"summary" gorm:"type:text"`
	AgendaItems    []string   `json:"agenda_items" gorm:"type:jsonb;serializer:json"`
	Decisions      []string   `json:"decisions" gorm:"type:jsonb;serializer:json"`
	Risks          []string   `json:"risks" gorm:"type:jsonb;serializer:json"`
	NextSteps      []string   `json:"next_steps" gorm:"type:jsonb;serializer:json"`
	TranscriptPath string     `json:"transcript_path,omitempty" gorm:"type:varchar(512)"`
	AudioPath      string     `json:"audio_path,omitempty" gorm:"type:varchar(512)"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`

	Speakers []Participant `json:"-" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
	Actions  []*ActionItem `json:"-" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting record for a source file. List fields start
// empty rather than nil so they serialize as [].
func NewMeeting(filename, title string, date time.Time) *Meeting {
	return &Meeting{
		ID:           uuid.New(),
		Filename:     filename,
		Title:        title,
		Date:         date,
		Participants: []string{},
		AgendaItems:  []string{},
		Decisions:    []string{},
		Risks:        []string{},
		NextSteps:    []string{},
		CreatedAt:    time.Now(),
	}
}
