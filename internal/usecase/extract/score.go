package extract

import (
	"regexp"
	"strings"
)

// Action indicators - words/phrases that suggest action items
var imperativeVerbs = []string{
	"schedule", "send", "create", "update", "review", "complete", "finish",
	"prepare", "organize", "contact", "call", "email", "follow up",
	"implement", "develop", "design", "test", "deploy", "launch",
	"analyze", "research", "investigate", "document", "write",
	"submit", "approve", "sign", "deliver", "present", "share",
}

var modalPhrases = []string{
	"need to", "should", "must", "have to", "will", "going to",
	"plan to", "intend to", "responsible for", "assigned to",
	"action item", "todo", "to do", "next step", "follow up",
}

var timeIndicators = []string{
	"by", "before", "after", "until", "deadline", "due",
	"next week", "next month", "tomorrow", "today", "asap",
	"end of week", "end of month", "q1", "q2", "q3", "q4",
}

// Canonical phrasings of real action statements; candidate similarity to
// these feeds the confidence score.
var actionExemplars = []string{
	"john will send the report by friday",
	"we need to schedule a follow-up meeting",
	"sarah should review the proposal",
	"please update the documentation",
	"action item: contact the vendor",
	"i will prepare the presentation for next week",
	"we must complete this by the deadline",
	"someone needs to call the client",
	"let us organize a team meeting",
	"the team will implement the new feature",
	"we should test this thoroughly",
	"please send me the updated files",
	"i need to finish the analysis",
	"we have to approve the budget",
	"action: review and sign the contract",
	"next step is to deploy to production",
	"we need to follow up on this issue",
	"please create a ticket for this bug",
	"i will document the process",
	"we should schedule training sessions",
	"the manager needs to approve this",
	"please prepare the quarterly report",
	"we must investigate this problem",
	"action item: update the website",
	"i will contact the stakeholders",
}

var (
	modalRe   = regexp.MustCompile(`\b(will|should|must|need|have to|going to)\b`)
	subjectRe = regexp.MustCompile(`\b(i|we|you|he|she|they|someone|team)\b`)
	namedRe   = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	timeRe    = regexp.MustCompile(`\b(by|before|until|deadline|due)\b`)
	tokenRe   = regexp.MustCompile(`[a-z0-9]+`)
)

// Score rates one sentence in [0,1] as an action statement. The score
// combines a commitment pattern, a subject, a deadline phrase, and lexical
// similarity to the exemplar set. The feature breakdown is returned for
// persistence alongside the confidence.
func Score(sentence string) (float64, map[string]float64) {
	lower := strings.ToLower(sentence)

	features := map[string]float64{
		"imperative_count": float64(countContains(lower, imperativeVerbs)),
		"modal_count":      float64(countContains(lower, modalPhrases)),
		"time_count":       float64(countContains(lower, timeIndicators)),
		"word_count":       float64(len(strings.Fields(sentence))),
	}

	hasCommitment := modalRe.MatchString(lower) || features["imperative_count"] > 0
	hasSubject := subjectRe.MatchString(lower) || namedRe.MatchString(sentence)
	hasDeadline := timeRe.MatchString(lower)

	features["has_modal"] = boolFeature(modalRe.MatchString(lower))
	features["has_person"] = boolFeature(hasSubject)
	features["has_deadline"] = boolFeature(hasDeadline)

	// A candidate needs both a commitment pattern and a subject.
	if !hasCommitment || !hasSubject {
		return 0, features
	}

	score := 0.35
	if namedRe.MatchString(sentence) || subjectRe.MatchString(lower) {
		score += 0.20
	}
	if hasDeadline {
		score += 0.15
	}
	score += 0.30 * maxExemplarSimilarity(lower)

	if score > 0.99 {
		score = 0.99
	}

	return score, features
}

func countContains(lower string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// maxExemplarSimilarity returns the highest token Jaccard similarity between
// the sentence and any canonical exemplar.
func maxExemplarSimilarity(lower string) float64 {
	candidate := tokenSet(lower)
	if len(candidate) == 0 {
		return 0
	}

	best := 0.0
	for _, exemplar := range actionExemplars {
		sim := jaccard(candidate, tokenSet(exemplar))
		if sim > best {
			best = sim
		}
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, tok := range tokenRe.FindAllString(strings.ToLower(s), -1) {
		set[tok] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
