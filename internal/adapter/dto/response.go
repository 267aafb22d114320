package dto

import (
	"time"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

// SubmitMeetingResponse acknowledges an accepted ingestion.
type SubmitMeetingResponse struct {
	JobID    string `json:"job_id"`
	Filename string `json:"filename"`
	Stage    string `json:"stage"`
}

// ActionResponse is the API shape of one action item. Overdue is derived
// from status and deadline at render time.
type ActionResponse struct {
	ID              string     `json:"id"`
	MeetingFile     string     `json:"meeting_file"`
	ActionText      string     `json:"action_text"`
	Assignees       []string   `json:"assignees"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	DeadlineUrgency string     `json:"deadline_urgency"`
	Status          string     `json:"status"`
	Overdue         bool       `json:"overdue"`
	Confidence      float64    `json:"confidence"`
	Speaker         string     `json:"speaker,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// NewActionResponse converts an entity, deriving the overdue flag at now.
func NewActionResponse(action *entities.ActionItem, now time.Time) ActionResponse {
	assignees := action.Assignees
	if assignees == nil {
		assignees = []string{}
	}
	return ActionResponse{
		ID:              action.ID.String(),
		MeetingFile:     action.MeetingFile,
		ActionText:      action.ActionText,
		Assignees:       assignees,
		Deadline:        action.Deadline,
		DeadlineUrgency: string(action.DeadlineUrgency),
		Status:          string(action.Status),
		Overdue:         action.IsOverdue(now),
		Confidence:      action.Confidence,
		Speaker:         action.Speaker,
		CreatedAt:       action.CreatedAt,
		CompletedAt:     action.CompletedAt,
	}
}

// NewActionResponses converts a slice.
func NewActionResponses(actions []*entities.ActionItem, now time.Time) []ActionResponse {
	out := make([]ActionResponse, 0, len(actions))
	for _, a := range actions {
		out = append(out, NewActionResponse(a, now))
	}
	return out
}

// MeetingResponse is the full persisted record plus its actions, serialized
// losslessly.
type MeetingResponse struct {
	Meeting *entities.Meeting `json:"meeting"`
	Actions []ActionResponse  `json:"actions"`
}
