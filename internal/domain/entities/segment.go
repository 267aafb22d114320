package entities

// TranscriptSegment is a time-aligned span of recognized speech, as returned
// by the transcription capability. Segments are ordered by start time and
// non-overlapping; gaps are silence.
type TranscriptSegment struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// SpeakerTurn is one diarization interval. Labels are stable only within a
// single file (e.g. "Speaker 1"), never identities.
type SpeakerTurn struct {
	Speaker   string  `json:"speaker"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Segment is a transcript segment with its assigned speaker label after the
// transcription/diarization merge.
type Segment struct {
	Text      string  `json:"text"`
	Speaker   string  `json:"speaker"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Minutes holds the structured minute sections produced by summarization.
// The list fields are always non-nil so they serialize as [] rather than null.
type Minutes struct {
	Summary     string   `json:"summary"`
	AgendaItems []string `json:"agenda_items"`
	Decisions   []string `json:"decisions"`
	Risks       []string `json:"risks"`
	NextSteps   []string `json:"next_steps"`
}

// EnsureLists initializes any nil list field to an empty slice.
func (m *Minutes) EnsureLists() {
	if m.AgendaItems == nil {
		m.AgendaItems = []string{}
	}
	if m.Decisions == nil {
		m.Decisions = []string{}
	}
	if m.Risks == nil {
		m.Risks = []string{}
	}
	if m.NextSteps == nil {
		m.NextSteps = []string{}
	}
}
