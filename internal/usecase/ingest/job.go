package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

// Stage is one step of the ingestion state machine. Transitions are strictly
// sequential; Failed is terminal and reachable from any stage.
type Stage string

const (
	StageQueued       Stage = "queued"
	StageValidating   Stage = "validating"
	StageTranscribing Stage = "transcribing"
	StageDiarizing    Stage = "diarizing"
	StageNormalizing  Stage = "normalizing"
	StageAnalyzing    Stage = "analyzing" // summarization and extraction run concurrently
	StagePersisting   Stage = "persisting"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// CancelledReason marks a job aborted by the caller rather than by a stage
// error.
const CancelledReason = "cancelled"

// stagePercent maps each stage to honest, monotonically increasing progress.
// 100 is reported only on Done.
var stagePercent = map[Stage]int{
	StageQueued:       0,
	StageValidating:   5,
	StageTranscribing: 30,
	StageDiarizing:    45,
	StageNormalizing:  55,
	StageAnalyzing:    75,
	StagePersisting:   90,
	StageDone:         100,
}

// Job tracks one ingestion through the pipeline. The coordinator's registry
// owns the mutable state; callers only ever see snapshots.
type Job struct {
	ID          uuid.UUID
	Filename    string
	Title       string
	MeetingDate time.Time
	AudioPath   string

	// ReplacePrior makes the worker delete the existing meeting for this
	// filename instead of rejecting it as a duplicate.
	ReplacePrior bool

	Stage       Stage
	Percent     int
	FailedStage Stage
	Reason      string

	CreatedAt time.Time
	UpdatedAt time.Time

	Result *entities.Meeting

	cancel context.CancelFunc
}

// Snapshot is the caller-visible view of a job.
type Snapshot struct {
	ID          uuid.UUID          `json:"id"`
	Filename    string             `json:"filename"`
	Stage       Stage              `json:"stage"`
	Percent     int                `json:"percent"`
	FailedStage Stage              `json:"failed_stage,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Result      *entities.Meeting  `json:"result,omitempty"`
}

func (j *Job) snapshot() Snapshot {
	return Snapshot{
		ID:          j.ID,
		Filename:    j.Filename,
		Stage:       j.Stage,
		Percent:     j.Percent,
		FailedStage: j.FailedStage,
		Reason:      j.Reason,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
		Result:      j.Result,
	}
}

// finished reports whether the job reached a terminal state.
func (j *Job) finished() bool {
	return j.Stage == StageDone || j.Stage == StageFailed
}
