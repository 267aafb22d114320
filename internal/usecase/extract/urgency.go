package extract

import (
	"time"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/pkg/datephrase"
)

// ExtractDeadline resolves a deadline phrase in the sentence to an absolute
// timestamp anchored at the meeting date.
func ExtractDeadline(sentence string, meetingDate time.Time) (time.Time, bool) {
	return datephrase.Parse(sentence, meetingDate)
}

// ClassifyUrgency is a pure function of (meetingDate, deadline). The gap is
// counted in calendar days so an end-of-day deadline cannot demote its tier:
// a deadline tomorrow is urgent no matter the meeting's time of day. A
// missing deadline is low; one already past is urgent, never dropped.
func ClassifyUrgency(meetingDate time.Time, deadline *time.Time) entities.DeadlineUrgency {
	if deadline == nil {
		return entities.UrgencyLow
	}

	days := calendarDays(meetingDate, *deadline)
	switch {
	case days <= 1:
		// Covers past deadlines as well.
		return entities.UrgencyUrgent
	case days <= 3:
		return entities.UrgencyHigh
	case days <= 7:
		return entities.UrgencyMedium
	default:
		return entities.UrgencyLow
	}
}

func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(t.Sub(f) / (24 * time.Hour))
}
