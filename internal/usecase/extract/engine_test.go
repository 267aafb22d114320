package extract

import (
	"testing"
	"time"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/internal/usecase/pipeline"
)

func TestExtract_DetectsActionWithDeadlineAndAssignee(t *testing.T) {
	engine := NewEngine(0.5, nil)
	meetingDate := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // Monday

	segments := []entities.Segment{
		{Text: "John will send the report by Friday.", Speaker: "Speaker 1", StartTime: 10, EndTime: 14},
	}

	drafts := engine.Extract(segments, meetingDate, []string{"John", "Mary"})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}

	d := drafts[0]
	if d.Confidence < 0.5 {
		t.Fatalf("confidence %v below threshold", d.Confidence)
	}
	if len(d.Assignees) != 1 || d.Assignees[0] != "John" {
		t.Fatalf("assignees = %v, want [John]", d.Assignees)
	}
	if d.Deadline == nil || d.Deadline.Day() != 6 {
		t.Fatalf("expected deadline on March 6, got %v", d.Deadline)
	}
	if d.Urgency != entities.UrgencyMedium {
		t.Fatalf("urgency = %q, want medium (4+ days out)", d.Urgency)
	}
	if d.Speaker != "Speaker 1" || d.StartTime != 10 || d.EndTime != 14 {
		t.Fatalf("segment metadata lost: %+v", d)
	}
}

func TestExtract_SurvivesDateNormalization(t *testing.T) {
	engine := NewEngine(0.5, nil)
	meetingDate := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // Monday

	segments := []entities.Segment{
		{Text: "I'll finish the report by tomorrow.", Speaker: "Alice", StartTime: 0, EndTime: 4},
	}

	// The normalizer rewrites "tomorrow" into an ISO date before extraction
	// ever sees the text; the deadline must survive that rewrite.
	normalized := pipeline.NewTextNormalizer(meetingDate).Normalize(segments)

	drafts := engine.Extract(normalized, meetingDate, []string{"Alice"})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}

	d := drafts[0]
	if d.Deadline == nil {
		t.Fatalf("deadline lost after normalization: %q", d.Text)
	}
	if d.Deadline.Year() != 2026 || d.Deadline.Month() != time.March || d.Deadline.Day() != 3 {
		t.Fatalf("deadline = %v, want March 3, 2026", d.Deadline)
	}
	if d.Urgency != entities.UrgencyUrgent {
		t.Fatalf("urgency = %q, want urgent for a next-day deadline", d.Urgency)
	}
}

func TestExtract_IgnoresSmallTalk(t *testing.T) {
	engine := NewEngine(0.5, nil)

	segments := []entities.Segment{
		{Text: "The weather was nice during the offsite. Everyone enjoyed lunch.", Speaker: "Speaker 1", StartTime: 0, EndTime: 5},
	}

	if drafts := engine.Extract(segments, time.Now(), nil); len(drafts) != 0 {
		t.Fatalf("expected no drafts from small talk, got %d", len(drafts))
	}
}

func TestExtract_OrdersByConfidenceDescending(t *testing.T) {
	engine := NewEngine(0.5, nil)
	meetingDate := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	segments := []entities.Segment{
		{Text: "We should investigate the login problem.", Speaker: "Speaker 1", StartTime: 0, EndTime: 4},
		{Text: "John will send the report by Friday.", Speaker: "Speaker 2", StartTime: 10, EndTime: 14},
	}

	drafts := engine.Extract(segments, meetingDate, nil)
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Confidence < drafts[1].Confidence {
		t.Fatalf("drafts not sorted by confidence: %v then %v", drafts[0].Confidence, drafts[1].Confidence)
	}
}
