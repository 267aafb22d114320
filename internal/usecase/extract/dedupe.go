package extract

import "strings"

// similarity above which two candidates from the same speaker with
// overlapping time windows collapse into one
const duplicateSimilarity = 0.8

// Deduplicate collapses near-duplicate drafts, keeping the
// highest-confidence variant of each cluster.
func Deduplicate(drafts []Draft) []Draft {
	kept := make([]Draft, 0, len(drafts))

	for _, d := range drafts {
		replaced := false
		dup := false

		for i, k := range kept {
			if !isDuplicate(d, k) {
				continue
			}
			dup = true
			if d.Confidence > k.Confidence {
				kept[i] = d
				replaced = true
			}
			break
		}

		if !dup && !replaced {
			kept = append(kept, d)
		}
	}

	return kept
}

func isDuplicate(a, b Draft) bool {
	if a.Speaker != b.Speaker {
		return false
	}
	if a.EndTime < b.StartTime || b.EndTime < a.StartTime {
		return false
	}
	return jaccard(tokenSet(strings.ToLower(a.Text)), tokenSet(strings.ToLower(b.Text))) >= duplicateSimilarity
}
