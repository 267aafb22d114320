package pipeline

import (
	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

// FallbackSpeaker is assigned to every segment when diarization is
// unavailable and the pipeline continues in degraded mode.
const FallbackSpeaker = "Speaker 1"

// AlignSpeakers assigns each transcript segment the diarization label whose
// interval covers the largest part of the segment's span. Ties break toward
// the earlier-starting diarization turn. With no turns at all, every segment
// gets the fallback speaker.
func AlignSpeakers(segments []entities.TranscriptSegment, turns []entities.SpeakerTurn) []entities.Segment {
	merged := make([]entities.Segment, 0, len(segments))

	for _, seg := range segments {
		speaker := FallbackSpeaker
		if len(turns) > 0 {
			speaker = bestSpeaker(seg, turns)
		}
		merged = append(merged, entities.Segment{
			Text:      seg.Text,
			Speaker:   speaker,
			StartTime: seg.StartTime,
			EndTime:   seg.EndTime,
		})
	}

	return merged
}

func bestSpeaker(seg entities.TranscriptSegment, turns []entities.SpeakerTurn) string {
	best := FallbackSpeaker
	maxOverlap := 0.0
	bestStart := 0.0

	for _, turn := range turns {
		overlapStart := seg.StartTime
		if turn.StartTime > overlapStart {
			overlapStart = turn.StartTime
		}
		overlapEnd := seg.EndTime
		if turn.EndTime < overlapEnd {
			overlapEnd = turn.EndTime
		}
		overlap := overlapEnd - overlapStart
		if overlap <= 0 {
			continue
		}

		if overlap > maxOverlap || (overlap == maxOverlap && maxOverlap > 0 && turn.StartTime < bestStart) {
			maxOverlap = overlap
			bestStart = turn.StartTime
			best = turn.Speaker
		}
	}

	return best
}

// SpeakingTimes accumulates total spoken seconds per speaker across merged
// segments, preserving first-appearance order.
func SpeakingTimes(segments []entities.Segment) ([]string, map[string]float64) {
	order := []string{}
	totals := map[string]float64{}

	for _, seg := range segments {
		if _, seen := totals[seg.Speaker]; !seen {
			order = append(order, seg.Speaker)
		}
		totals[seg.Speaker] += seg.Duration()
	}

	return order, totals
}
