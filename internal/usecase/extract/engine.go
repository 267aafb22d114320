// Package extract detects action-item statements in normalized meeting
// transcripts: candidate generation from commitment patterns, confidence
// scoring against canonical exemplars, assignee and deadline resolution, and
// near-duplicate collapsing.
package extract

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/internal/usecase/pipeline"
)

// Draft is one detected action statement before it is bound to a persisted
// meeting. Status is implicitly open.
type Draft struct {
	Text       string
	Speaker    string
	StartTime  float64
	EndTime    float64
	Assignees  []string
	Deadline   *time.Time
	Urgency    entities.DeadlineUrgency
	Confidence float64
	Features   map[string]float64
}

// Engine runs the detection pipeline over normalized segments.
type Engine struct {
	threshold float64
	logger    *zap.Logger
}

// NewEngine creates an extraction engine. Candidates scoring below threshold
// are discarded.
func NewEngine(threshold float64, logger *zap.Logger) *Engine {
	if threshold <= 0 {
		threshold = 0.5
	}
	return &Engine{threshold: threshold, logger: logger}
}

// minimum sentence length considered a candidate
const minSentenceLen = 10

// Extract returns action drafts ordered by confidence descending. The
// meeting date anchors deadline resolution; participants feed fuzzy assignee
// mapping.
func (e *Engine) Extract(segments []entities.Segment, meetingDate time.Time, participants []string) []Draft {
	var drafts []Draft

	for _, seg := range segments {
		for _, sentence := range pipeline.SplitSentences(seg.Text) {
			if len(sentence) < minSentenceLen {
				continue
			}

			score, features := Score(sentence)
			if score < e.threshold {
				continue
			}

			assignees := ResolveAssignees(sentence, seg.Speaker, participants)

			draft := Draft{
				Text:       sentence,
				Speaker:    seg.Speaker,
				StartTime:  seg.StartTime,
				EndTime:    seg.EndTime,
				Assignees:  assignees,
				Urgency:    entities.UrgencyLow,
				Confidence: score,
				Features:   features,
			}

			if deadline, ok := ExtractDeadline(sentence, meetingDate); ok {
				draft.Deadline = &deadline
				draft.Urgency = ClassifyUrgency(meetingDate, &deadline)
			}

			drafts = append(drafts, draft)
		}
	}

	drafts = Deduplicate(drafts)

	sort.SliceStable(drafts, func(i, j int) bool {
		return drafts[i].Confidence > drafts[j].Confidence
	})

	if e.logger != nil && len(drafts) > 0 {
		e.logger.Info("✅ Action items detected",
			zap.Int("count", len(drafts)),
			zap.Float64("threshold", e.threshold))
	}

	return drafts
}
