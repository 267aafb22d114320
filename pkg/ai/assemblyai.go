package ai

import (
	"context"
	"fmt"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/minutetrack/minute-tracker/pkg/config"
)

// AssemblyAIClient wraps the AssemblyAI SDK for transcription with speaker
// diarization. One submitted job serves both concerns: the utterances carry
// text, timing and speaker labels.
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		client: aai.NewClient(apiKey),
	}
}

// Segment is one recognized speech span with millisecond-resolution timing
// converted to seconds.
type Segment struct {
	Text      string
	StartTime float64
	EndTime   float64
}

// SpeakerTurn is one diarization interval with its per-file speaker label.
type SpeakerTurn struct {
	Speaker   string
	StartTime float64
	EndTime   float64
}

// TranscriptResult is the combined output of one transcription job.
type TranscriptResult struct {
	Text     string
	Segments []Segment
	Turns    []SpeakerTurn
	Duration float64 // seconds
}

// Transcribe submits the audio URL with speaker labels enabled and polls
// until the job completes. The call blocks for the length of the job; pass a
// context with deadline.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioURL string) (*TranscriptResult, error) {
	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
		Punctuate:     aai.Bool(true),
		FormatText:    aai.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("submit transcription: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("transcription failed: %s", msg)
	}

	result := &TranscriptResult{}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	if transcript.AudioDuration != nil {
		result.Duration = *transcript.AudioDuration
	}

	for _, u := range transcript.Utterances {
		seg := Segment{
			StartTime: msToSeconds(u.Start),
			EndTime:   msToSeconds(u.End),
		}
		if u.Text != nil {
			seg.Text = *u.Text
		}
		result.Segments = append(result.Segments, seg)

		turn := SpeakerTurn{
			StartTime: seg.StartTime,
			EndTime:   seg.EndTime,
			Speaker:   "Speaker 1",
		}
		if u.Speaker != nil {
			turn.Speaker = fmt.Sprintf("Speaker %s", *u.Speaker)
		}
		result.Turns = append(result.Turns, turn)
	}

	return result, nil
}

func msToSeconds(ms *int64) float64 {
	if ms == nil {
		return 0
	}
	return float64(*ms) / 1000.0
}
