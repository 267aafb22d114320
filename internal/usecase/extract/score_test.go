package extract

import "testing"

func TestScore_CanonicalActionStatement(t *testing.T) {
	score, features := Score("John will send the report by Friday")
	if score < 0.9 {
		t.Fatalf("canonical action scored %v, want >= 0.9", score)
	}
	if features["has_deadline"] != 1 {
		t.Fatal("expected deadline feature to be set")
	}
	if features["has_modal"] != 1 {
		t.Fatal("expected modal feature to be set")
	}
}

func TestScore_NonActionSentence(t *testing.T) {
	score, _ := Score("The weather was nice during the offsite")
	if score != 0 {
		t.Fatalf("non-action sentence scored %v, want 0", score)
	}
}

func TestScore_CommitmentWithoutSubjectIsZero(t *testing.T) {
	// A modal with no subject of any kind never qualifies.
	score, _ := Score("must be finished quickly")
	if score != 0 {
		t.Fatalf("subject-less sentence scored %v, want 0", score)
	}
}

func TestScore_CapsAtPointNineNine(t *testing.T) {
	// Exemplar-identical wording would otherwise sum past 1.0.
	score, _ := Score("John will send the report by Friday")
	if score != 0.99 {
		t.Fatalf("score %v, want cap of 0.99", score)
	}
}
