package datephrase

import (
	"testing"
	"time"
)

// Monday
var ref = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestParse_IndicatorPhrases(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{"send it by tomorrow", time.Date(2026, 3, 3, 23, 59, 59, 0, time.UTC)},
		{"finish this by Friday", time.Date(2026, 3, 6, 23, 59, 59, 0, time.UTC)},
		{"we will ship by next week", time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC)},
		{"report is due March 10, 2026", time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)},
		{"deadline: 03/15/2026", time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)},
		// ISO form produced by the transcript normalizer.
		{"send it by 2026-03-03", time.Date(2026, 3, 3, 23, 59, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.text, ref)
		if !ok {
			t.Fatalf("Parse(%q) returned no deadline", tt.text)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParse_BareISODate(t *testing.T) {
	got, ok := Parse("the report lands 2026-04-01 at the latest", ref)
	if !ok {
		t.Fatal("expected a deadline from a bare ISO date")
	}
	want := time.Date(2026, 4, 1, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParse_SpanWithoutIndicator(t *testing.T) {
	got, ok := Parse("complete this within 2 weeks", ref)
	if !ok {
		t.Fatal("expected a deadline")
	}
	want := time.Date(2026, 3, 16, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParse_UrgencyPhrase(t *testing.T) {
	got, ok := Parse("we need this asap", ref)
	if !ok {
		t.Fatal("expected a deadline from urgency phrase")
	}
	if !got.Equal(ref) {
		t.Fatalf("asap should resolve to the anchor, got %v", got)
	}
}

func TestParse_QuarterRollsForward(t *testing.T) {
	// Q1 already ended relative to an August anchor; without an explicit
	// year it must roll to the next year.
	august := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	got, ok := Parse("target this by Q1", august)
	if !ok {
		t.Fatal("expected a deadline")
	}
	want := time.Date(2027, 3, 31, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParse_NoDeadline(t *testing.T) {
	if _, ok := Parse("nothing actionable was discussed", ref); ok {
		t.Fatal("expected no deadline")
	}
}

func TestParse_ThisWeekEndsOnFriday(t *testing.T) {
	got, ok := Parse("wrap it up by this week", ref)
	if !ok {
		t.Fatal("expected a deadline")
	}
	if got.Weekday() != time.Friday {
		t.Fatalf("this week should end on Friday, got %v", got.Weekday())
	}
}
