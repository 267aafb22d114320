package pipeline

import (
	"regexp"
	"strings"
	"time"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/pkg/datephrase"
)

// TextNormalizer applies deterministic text transforms to merged segments:
// filler removal, contraction expansion, and rewriting relative date phrases
// to absolute dates anchored at the meeting date. Timing and speaker
// metadata pass through untouched.
type TextNormalizer struct {
	anchor time.Time
}

var fillerWords = map[string]bool{
	"um": true, "uh": true, "er": true, "ah": true, "like": true,
	"you know": true, "i mean": true, "sort of": true, "kind of": true,
	"basically": true, "actually": true, "literally": true, "obviously": true,
	"well": true, "so": true, "right": true, "okay": true, "alright": true,
	"yeah": true,
}

// Ordered so multi-character suffixes apply before the generic n't rule.
var contractions = []struct {
	from string
	to   string
}{
	{"won't", "will not"},
	{"can't", "cannot"},
	{"let's", "let us"},
	{"that's", "that is"},
	{"there's", "there is"},
	{"here's", "here is"},
	{"what's", "what is"},
	{"where's", "where is"},
	{"how's", "how is"},
	{"it's", "it is"},
	{"he's", "he is"},
	{"she's", "she is"},
	{"we're", "we are"},
	{"they're", "they are"},
	{"i'm", "i am"},
	{"you're", "you are"},
	{"don't", "do not"},
	{"doesn't", "does not"},
	{"didn't", "did not"},
	{"haven't", "have not"},
	{"hasn't", "has not"},
	{"hadn't", "had not"},
	{"wouldn't", "would not"},
	{"shouldn't", "should not"},
	{"couldn't", "could not"},
	{"mustn't", "must not"},
	{"n't", " not"},
	{"'re", " are"},
	{"'ve", " have"},
	{"'ll", " will"},
	{"'d", " would"},
	{"'m", " am"},
}

var (
	relativeDateRe = regexp.MustCompile(`(?i)\b(tomorrow|today|next\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|week|month)|this\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|week)|end of (?:the )?month|in\s+\d+\s+(?:days?|weeks?|months?))\b`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	repeatPunctRe  = regexp.MustCompile(`([.!?])[.!?]+`)
	spacePunctRe   = regexp.MustCompile(`\s+([.!?,:;])`)
	sentenceRe     = regexp.MustCompile(`[.!?]+`)
)

// NewTextNormalizer creates a normalizer anchored at the meeting date.
func NewTextNormalizer(meetingDate time.Time) *TextNormalizer {
	return &TextNormalizer{anchor: meetingDate}
}

// Normalize transforms every segment's text, dropping segments whose text
// normalizes to empty. Speaker and timing fields are copied verbatim.
func (n *TextNormalizer) Normalize(segments []entities.Segment) []entities.Segment {
	out := make([]entities.Segment, 0, len(segments))
	for _, seg := range segments {
		text := n.NormalizeText(seg.Text)
		if text == "" {
			continue
		}
		out = append(out, entities.Segment{
			Text:      text,
			Speaker:   seg.Speaker,
			StartTime: seg.StartTime,
			EndTime:   seg.EndTime,
		})
	}
	return out
}

// NormalizeText runs the full transform chain on one string.
func (n *TextNormalizer) NormalizeText(text string) string {
	text = removeFillers(text)
	text = expandContractions(text)
	text = n.anchorDates(text)
	return cleanText(text)
}

// removeFillers drops standalone filler tokens, checking two-word fillers
// ("you know") before single words.
func removeFillers(text string) string {
	words := strings.Fields(text)
	kept := make([]string, 0, len(words))

	i := 0
	for i < len(words) {
		word := strings.ToLower(strings.Trim(words[i], ".,!?;:"))

		if i < len(words)-1 {
			next := strings.ToLower(strings.Trim(words[i+1], ".,!?;:"))
			if fillerWords[word+" "+next] {
				i += 2
				continue
			}
		}

		if !fillerWords[word] {
			kept = append(kept, words[i])
		}
		i++
	}

	return strings.Join(kept, " ")
}

func expandContractions(text string) string {
	for _, c := range contractions {
		text = replaceFold(text, c.from, c.to)
	}
	return text
}

// replaceFold is a case-insensitive literal replacement.
func replaceFold(s, from, to string) string {
	var b strings.Builder
	lower := strings.ToLower(s)
	lowerFrom := strings.ToLower(from)
	for {
		idx := strings.Index(lower, lowerFrom)
		if idx < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:idx])
		b.WriteString(to)
		s = s[idx+len(from):]
		lower = lower[idx+len(lowerFrom):]
	}
}

// anchorDates rewrites relative date phrases to ISO dates using the meeting
// date as anchor. Phrases that fail to resolve are left as-is.
func (n *TextNormalizer) anchorDates(text string) string {
	return relativeDateRe.ReplaceAllStringFunc(text, func(phrase string) string {
		if t, ok := datephrase.Parse("by "+phrase, n.anchor); ok {
			return t.Format("2006-01-02")
		}
		return phrase
	})
}

func cleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = repeatPunctRe.ReplaceAllString(text, "$1")
	text = spacePunctRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// SplitSentences segments text on terminal punctuation.
func SplitSentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
