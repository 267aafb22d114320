package pipeline

import (
	"strings"
	"testing"
)

func TestParseMinutes_PlainJSON(t *testing.T) {
	p := NewParser()

	minutes, err := p.ParseMinutes(`{"summary":"Weekly sync.","agenda_items":["roadmap"],"decisions":[],"risks":[],"next_steps":["ship v2"]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes.Summary != "Weekly sync." {
		t.Fatalf("unexpected summary: %q", minutes.Summary)
	}
	if len(minutes.NextSteps) != 1 || minutes.NextSteps[0] != "ship v2" {
		t.Fatalf("unexpected next steps: %v", minutes.NextSteps)
	}
}

func TestParseMinutes_MarkdownFenced(t *testing.T) {
	p := NewParser()

	content := "```json\n{\"summary\":\"Planning session.\"}\n```"
	minutes, err := p.ParseMinutes(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes.Summary != "Planning session." {
		t.Fatalf("unexpected summary: %q", minutes.Summary)
	}
	// missing list fields must come back initialized
	if minutes.AgendaItems == nil || minutes.Decisions == nil || minutes.Risks == nil || minutes.NextSteps == nil {
		t.Fatal("list fields must never be nil")
	}
}

func TestParseMinutes_MissingSummary(t *testing.T) {
	p := NewParser()

	if _, err := p.ParseMinutes(`{"agenda_items":["x"]}`); err == nil {
		t.Fatal("expected error for missing summary")
	}
}

func TestValidateTranscriptLength(t *testing.T) {
	p := NewParser()

	if err := p.ValidateTranscriptLength("too short", 60); err == nil {
		t.Fatal("expected error for short transcript")
	}

	long := strings.Repeat("every word counts here ", 20)
	if err := p.ValidateTranscriptLength(long, 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
