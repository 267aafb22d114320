package extract

import (
	"regexp"
	"strings"
)

var (
	fullNameRe   = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
	singleNameRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	titleRe      = regexp.MustCompile(`\b(Mr|Mrs|Ms|Dr|Prof|CEO|CTO|VP|Director|Manager|Lead|Senior|Junior)\b\.?\s*`)
	firstPersonRe = regexp.MustCompile(`(?i)\b(i|i'll|we)\s+(will|am going to|are going to|need to|should|must|have to|'ll)\b|\bi will\b|\bwe will\b`)
)

// Capitalized words that match the name pattern but are never names.
var nameStopwords = map[string]bool{
	"Action": true, "Item": true, "Next": true, "Step": true, "Meeting": true,
	"Team": true, "Project": true, "Update": true, "Review": true, "Send": true,
	"Call": true, "Email": true, "Follow": true, "Complete": true,
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
	"January": true, "February": true, "March": true, "April": true,
	"May": true, "June": true, "July": true, "August": true,
	"September": true, "October": true, "November": true, "December": true,
	"The": true, "This": true, "That": true, "Please": true, "Someone": true,
	"Let": true, "We": true, "They": true, "He": true, "She": true, "You": true,
}

// ResolveAssignees extracts assignee names from one action sentence.
// First-person commitments resolve to the speaker; named subjects are
// fuzzy-matched against the participant list, falling back to the raw name.
// The returned list preserves extraction order without duplicates.
func ResolveAssignees(sentence, speaker string, participants []string) []string {
	var assignees []string

	if firstPersonRe.MatchString(sentence) && speaker != "" {
		assignees = append(assignees, speaker)
	}

	for _, name := range extractNames(sentence) {
		assignees = append(assignees, mapToParticipant(name, participants))
	}

	return dedupeStrings(assignees)
}

// extractNames finds candidate person names with title stripping and a
// stopword filter. Full names are preferred; single names already covered by
// a full name are skipped.
func extractNames(sentence string) []string {
	clean := titleRe.ReplaceAllString(sentence, "")

	var names []string
	seen := map[string]bool{}

	for _, m := range fullNameRe.FindAllString(clean, -1) {
		parts := strings.Fields(m)
		if nameStopwords[parts[0]] || nameStopwords[parts[1]] {
			continue
		}
		names = append(names, m)
		seen[parts[0]] = true
		seen[parts[1]] = true
	}

	for _, m := range singleNameRe.FindAllString(clean, -1) {
		if nameStopwords[m] || seen[m] {
			continue
		}
		names = append(names, m)
		seen[m] = true
	}

	return names
}

// mapToParticipant fuzzy-matches an extracted name against the meeting's
// participant list. Exact match wins; otherwise substring containment with a
// length-ratio score above 0.5 maps to the participant. Unmatched names are
// kept raw.
func mapToParticipant(name string, participants []string) string {
	lowerName := strings.ToLower(name)

	for _, p := range participants {
		if lowerName == strings.ToLower(p) {
			return p
		}
	}

	bestMatch := ""
	bestScore := 0.0
	for _, p := range participants {
		lowerP := strings.ToLower(p)
		if strings.Contains(lowerP, lowerName) || strings.Contains(lowerName, lowerP) {
			longer := len(p)
			if len(name) > longer {
				longer = len(name)
			}
			score := float64(min(len(name), len(p))) / float64(longer)
			if score > bestScore {
				bestScore = score
				bestMatch = p
			}
		}
	}

	if bestMatch != "" && bestScore > 0.5 {
		return bestMatch
	}
	return name
}

func dedupeStrings(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
