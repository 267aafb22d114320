package extract

import "testing"

func TestResolveAssignees_FirstPersonResolvesToSpeaker(t *testing.T) {
	got := ResolveAssignees("I will prepare the slides", "Alice", nil)
	if len(got) != 1 || got[0] != "Alice" {
		t.Fatalf("got %v, want [Alice]", got)
	}
}

func TestResolveAssignees_NamedSubject(t *testing.T) {
	got := ResolveAssignees("John will send the report by Friday", "Speaker 1", []string{"John", "Mary"})
	if len(got) != 1 || got[0] != "John" {
		t.Fatalf("got %v, want [John]", got)
	}
}

func TestResolveAssignees_FuzzyParticipantMatch(t *testing.T) {
	got := ResolveAssignees("Jennifer should review the proposal", "Speaker 1", []string{"Jennifer Lee"})
	if len(got) != 1 || got[0] != "Jennifer Lee" {
		t.Fatalf("got %v, want [Jennifer Lee]", got)
	}
}

func TestResolveAssignees_StripsTitles(t *testing.T) {
	got := ResolveAssignees("Dr Watson must approve the budget", "Speaker 1", []string{"Watson"})
	if len(got) != 1 || got[0] != "Watson" {
		t.Fatalf("got %v, want [Watson]", got)
	}
}

func TestResolveAssignees_WeekdaysAreNotNames(t *testing.T) {
	got := ResolveAssignees("We need to finish this by Friday", "Bob", nil)
	// first-person plural resolves to the speaker; Friday must not appear
	for _, a := range got {
		if a == "Friday" {
			t.Fatalf("weekday leaked into assignees: %v", got)
		}
	}
	if len(got) != 1 || got[0] != "Bob" {
		t.Fatalf("got %v, want [Bob]", got)
	}
}

func TestExtractNames_FullNameSuppressesParts(t *testing.T) {
	names := extractNames("Sarah Connor will contact the vendor")
	if len(names) != 1 || names[0] != "Sarah Connor" {
		t.Fatalf("got %v, want [Sarah Connor]", names)
	}
}
