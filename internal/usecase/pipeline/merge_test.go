package pipeline

import (
	"testing"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

func TestAlignSpeakers_NoTurnsFallsBack(t *testing.T) {
	segments := []entities.TranscriptSegment{
		{Text: "hello", StartTime: 0, EndTime: 2},
		{Text: "world", StartTime: 2, EndTime: 4},
	}

	merged := AlignSpeakers(segments, nil)
	if len(merged) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(merged))
	}
	for _, seg := range merged {
		if seg.Speaker != FallbackSpeaker {
			t.Fatalf("expected fallback speaker, got %q", seg.Speaker)
		}
	}
}

func TestAlignSpeakers_MaxOverlapWins(t *testing.T) {
	segments := []entities.TranscriptSegment{{Text: "x", StartTime: 0, EndTime: 10}}
	turns := []entities.SpeakerTurn{
		{Speaker: "Speaker A", StartTime: 0, EndTime: 4},
		{Speaker: "Speaker B", StartTime: 4, EndTime: 10},
	}

	merged := AlignSpeakers(segments, turns)
	if merged[0].Speaker != "Speaker B" {
		t.Fatalf("expected Speaker B (6s overlap), got %q", merged[0].Speaker)
	}
}

func TestAlignSpeakers_TieBreaksToEarlierTurn(t *testing.T) {
	segments := []entities.TranscriptSegment{{Text: "x", StartTime: 0, EndTime: 10}}
	turns := []entities.SpeakerTurn{
		{Speaker: "Speaker B", StartTime: 5, EndTime: 10},
		{Speaker: "Speaker A", StartTime: 0, EndTime: 5},
	}

	merged := AlignSpeakers(segments, turns)
	if merged[0].Speaker != "Speaker A" {
		t.Fatalf("expected tie to resolve to the earlier-starting turn, got %q", merged[0].Speaker)
	}
}

func TestSpeakingTimes(t *testing.T) {
	segments := []entities.Segment{
		{Speaker: "Speaker A", StartTime: 0, EndTime: 2},
		{Speaker: "Speaker B", StartTime: 2, EndTime: 5},
		{Speaker: "Speaker A", StartTime: 5, EndTime: 6},
	}

	order, totals := SpeakingTimes(segments)
	if len(order) != 2 || order[0] != "Speaker A" || order[1] != "Speaker B" {
		t.Fatalf("unexpected speaker order: %v", order)
	}
	if totals["Speaker A"] != 3 {
		t.Fatalf("Speaker A total = %v, want 3", totals["Speaker A"])
	}
	if totals["Speaker B"] != 3 {
		t.Fatalf("Speaker B total = %v, want 3", totals["Speaker B"])
	}
}
