// Package datephrase resolves natural-language deadline phrases found in
// meeting speech ("by Friday", "within 2 weeks", "due March 3, 2026") to
// concrete timestamps relative to an anchor date.
package datephrase

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	indicatorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bby\s+(.*?)(?:\.|,|;|$)`),
		regexp.MustCompile(`(?i)\bbefore\s+(.*?)(?:\.|,|;|$)`),
		regexp.MustCompile(`(?i)\buntil\s+(.*?)(?:\.|,|;|$)`),
		regexp.MustCompile(`(?i)\bdue\s+(.*?)(?:\.|,|;|$)`),
		regexp.MustCompile(`(?i)\bdeadline\s*:?\s*(.*?)(?:\.|,|;|$)`),
	}

	slashDateRe   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	dashDateRe    = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{2,4})\b`)
	isoDateRe     = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	monthDateRe   = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{1,2})(?:,)?\s+(\d{4})\b`)
	inSpanRe      = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(days?|weeks?|months?)\b`)
	withinSpanRe  = regexp.MustCompile(`(?i)\bwithin\s+(\d+)\s+(days?|weeks?|months?)\b`)
	nextWeekdayRe = regexp.MustCompile(`(?i)\b(?:next\s+|this\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	quarterRe     = regexp.MustCompile(`(?i)\b(Q[1-4])\s*(\d{4})?\b`)
)

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Soft-commitment phrases that imply a deadline without naming a date.
var urgencyPhrases = []struct {
	phrase string
	days   int
}{
	{"asap", 0},
	{"as soon as possible", 0},
	{"urgent", 1},
	{"high priority", 3},
	{"soon", 7},
	{"eventually", 30},
}

// Parse extracts a deadline from free text, anchored at ref. It first tries
// phrases introduced by a deadline indicator (by, before, until, due,
// deadline), then bare date mentions anywhere in the text, then soft urgency
// phrases. Returns the zero time and false when nothing resolves.
func Parse(text string, ref time.Time) (time.Time, bool) {
	for _, pat := range indicatorPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		phrase := strings.TrimSpace(m[1])
		if t, ok := resolve(phrase, ref); ok {
			return t, true
		}
	}

	if t, ok := resolve(text, ref); ok {
		return t, true
	}

	lower := strings.ToLower(text)
	for _, u := range urgencyPhrases {
		if strings.Contains(lower, u.phrase) {
			return ref.AddDate(0, 0, u.days), true
		}
	}

	return time.Time{}, false
}

// resolve turns one date phrase into a timestamp relative to ref.
func resolve(phrase string, ref time.Time) (time.Time, bool) {
	lower := strings.ToLower(strings.TrimSpace(phrase))
	if lower == "" {
		return time.Time{}, false
	}

	switch {
	case strings.Contains(lower, "today"):
		return endOfDay(ref), true
	case strings.Contains(lower, "tomorrow"):
		return endOfDay(ref.AddDate(0, 0, 1)), true
	case strings.Contains(lower, "next week"):
		return endOfDay(ref.AddDate(0, 0, 7)), true
	case strings.Contains(lower, "this week"):
		// End of the working week.
		days := (int(time.Friday) - int(ref.Weekday()) + 7) % 7
		return endOfDay(ref.AddDate(0, 0, days)), true
	case strings.Contains(lower, "next month"):
		return endOfDay(ref.AddDate(0, 0, 30)), true
	case strings.Contains(lower, "end of month"), strings.Contains(lower, "end of the month"):
		firstOfNext := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 1, 0)
		return endOfDay(firstOfNext.AddDate(0, 0, -1)), true
	}

	if m := inSpanRe.FindStringSubmatch(lower); m != nil {
		return spanFrom(ref, m[1], m[2])
	}
	if m := withinSpanRe.FindStringSubmatch(lower); m != nil {
		return spanFrom(ref, m[1], m[2])
	}

	// ISO dates must win over the day-first dash form. The normalizer
	// rewrites relative phrases into this format, so a second parse of the
	// normalized text has to resolve them.
	if m := isoDateRe.FindStringSubmatch(phrase); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return endOfDay(time.Date(year, time.Month(month), day, 0, 0, 0, 0, ref.Location())), true
		}
	}
	if m := slashDateRe.FindStringSubmatch(phrase); m != nil {
		return explicitDate(m[1], m[2], m[3], ref)
	}
	if m := dashDateRe.FindStringSubmatch(phrase); m != nil {
		return explicitDate(m[1], m[2], m[3], ref)
	}
	if m := monthDateRe.FindStringSubmatch(phrase); m != nil {
		month := months[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if day >= 1 && day <= 31 {
			return endOfDay(time.Date(year, month, day, 0, 0, 0, 0, ref.Location())), true
		}
	}

	if m := nextWeekdayRe.FindStringSubmatch(lower); m != nil {
		target := weekdays[m[1]]
		days := (int(target) - int(ref.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return endOfDay(ref.AddDate(0, 0, days)), true
	}

	if m := quarterRe.FindStringSubmatch(phrase); m != nil {
		return quarterEnd(m[1], m[2], ref)
	}

	return time.Time{}, false
}

func spanFrom(ref time.Time, numStr, unit string) (time.Time, bool) {
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return time.Time{}, false
	}
	switch {
	case strings.HasPrefix(unit, "day"):
		return endOfDay(ref.AddDate(0, 0, n)), true
	case strings.HasPrefix(unit, "week"):
		return endOfDay(ref.AddDate(0, 0, 7*n)), true
	case strings.HasPrefix(unit, "month"):
		return endOfDay(ref.AddDate(0, 0, 30*n)), true
	}
	return time.Time{}, false
}

func explicitDate(monthStr, dayStr, yearStr string, ref time.Time) (time.Time, bool) {
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)
	year, _ := strconv.Atoi(yearStr)
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return endOfDay(time.Date(year, time.Month(month), day, 0, 0, 0, 0, ref.Location())), true
}

func quarterEnd(q, yearStr string, ref time.Time) (time.Time, bool) {
	year := ref.Year()
	if yearStr != "" {
		if y, err := strconv.Atoi(yearStr); err == nil {
			year = y
		}
	}
	var month time.Month
	var day int
	switch strings.ToUpper(q) {
	case "Q1":
		month, day = time.March, 31
	case "Q2":
		month, day = time.June, 30
	case "Q3":
		month, day = time.September, 30
	case "Q4":
		month, day = time.December, 31
	default:
		return time.Time{}, false
	}
	end := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
	// Quarters already past without an explicit year roll to next year.
	if yearStr == "" && end.Before(ref) {
		end = end.AddDate(1, 0, 0)
	}
	return endOfDay(end), true
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
