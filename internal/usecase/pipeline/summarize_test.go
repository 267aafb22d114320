package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

type recordingCompleter struct {
	called   bool
	response string
}

func (r *recordingCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	r.called = true
	return r.response, nil
}

func TestSummarize_ShortTranscriptSkipsModel(t *testing.T) {
	completer := &recordingCompleter{}
	stage := NewMinutesStage(completer, nil)

	segments := []entities.Segment{
		{Speaker: "Alice", Text: "Nothing to report this week.", StartTime: 0, EndTime: 3},
	}

	minutes, err := stage.Summarize(context.Background(), segments)
	if err != nil {
		t.Fatalf("short transcript must not fail: %v", err)
	}
	if completer.called {
		t.Fatal("model should not be invoked for a transcript below the minimum")
	}
	if minutes.Summary != "Nothing to report this week." {
		t.Fatalf("unexpected minimal summary: %q", minutes.Summary)
	}
	if minutes.AgendaItems == nil || minutes.Decisions == nil || minutes.Risks == nil || minutes.NextSteps == nil {
		t.Fatalf("minimal minutes must have non-nil lists: %+v", minutes)
	}
}

func TestSummarize_LongTranscriptUsesModel(t *testing.T) {
	completer := &recordingCompleter{
		response: `{"summary":"The team aligned on the release plan.","agenda_items":["release"],"decisions":[],"risks":[],"next_steps":["ship it"]}`,
	}
	stage := NewMinutesStage(completer, nil)

	line := "We walked through the deployment checklist and assigned owners for every open item on the board."
	segments := []entities.Segment{
		{Speaker: "Alice", Text: line, StartTime: 0, EndTime: 10},
		{Speaker: "Bob", Text: line, StartTime: 10, EndTime: 20},
	}

	minutes, err := stage.Summarize(context.Background(), segments)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if !completer.called {
		t.Fatal("expected the model to be invoked")
	}
	if minutes.Summary != "The team aligned on the release plan." {
		t.Fatalf("unexpected summary: %q", minutes.Summary)
	}
	if len(minutes.NextSteps) != 1 || minutes.NextSteps[0] != "ship it" {
		t.Fatalf("unexpected next steps: %v", minutes.NextSteps)
	}
}

func TestFormatTranscript(t *testing.T) {
	segments := []entities.Segment{
		{Speaker: "Alice", Text: "Hello."},
		{Speaker: "Bob", Text: "Hi."},
	}
	got := FormatTranscript(segments)
	if !strings.Contains(got, "[Alice] Hello.") || !strings.Contains(got, "[Bob] Hi.") {
		t.Fatalf("unexpected transcript: %q", got)
	}
}
