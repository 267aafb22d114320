package pipeline

import (
	"context"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/pkg/ai"
	"github.com/minutetrack/minute-tracker/pkg/jobcontext"
)

// Transcriber is the speech-to-text capability boundary.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) ([]entities.TranscriptSegment, float64, error)
}

// Diarizer is the speaker-separation capability boundary.
type Diarizer interface {
	Diarize(ctx context.Context, audioURL string) ([]entities.SpeakerTurn, error)
}

// SpeechEngine implements both Transcriber and Diarizer on top of a single
// AssemblyAI job: the provider returns text segments and speaker turns from
// one submission, so the engine memoizes the result per audio URL and serves
// both stage calls from it.
type SpeechEngine struct {
	client *ai.AssemblyAIClient
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]*ai.TranscriptResult
}

// NewSpeechEngine creates a speech engine backed by AssemblyAI.
func NewSpeechEngine(client *ai.AssemblyAIClient, logger *zap.Logger) *SpeechEngine {
	return &SpeechEngine{
		client: client,
		logger: logger,
		cache:  make(map[string]*ai.TranscriptResult),
	}
}

// Transcribe returns time-ordered text segments and the audio duration in
// seconds.
func (e *SpeechEngine) Transcribe(ctx context.Context, audioURL string) ([]entities.TranscriptSegment, float64, error) {
	result, err := e.result(ctx, audioURL)
	if err != nil {
		return nil, 0, err
	}

	segments := make([]entities.TranscriptSegment, 0, len(result.Segments))
	for _, s := range result.Segments {
		segments = append(segments, entities.TranscriptSegment{
			Text:      s.Text,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return segments, result.Duration, nil
}

// Diarize returns per-file speaker turns for the same audio.
func (e *SpeechEngine) Diarize(ctx context.Context, audioURL string) ([]entities.SpeakerTurn, error) {
	result, err := e.result(ctx, audioURL)
	if err != nil {
		return nil, err
	}

	turns := make([]entities.SpeakerTurn, 0, len(result.Turns))
	for _, t := range result.Turns {
		turns = append(turns, entities.SpeakerTurn{
			Speaker:   t.Speaker,
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
		})
	}
	return turns, nil
}

// Forget drops the memoized result for an audio URL once a job finishes.
func (e *SpeechEngine) Forget(audioURL string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.cache, audioURL)
}

func (e *SpeechEngine) result(ctx context.Context, audioURL string) (*ai.TranscriptResult, error) {
	e.mu.Lock()
	if cached, ok := e.cache[audioURL]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	var result *ai.TranscriptResult
	operation := func() error {
		var err error
		result, err = e.client.Transcribe(ctx, audioURL)
		if err != nil && !jobcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	expBackoff := backoff.NewExponentialBackOff()
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(expBackoff, 2), ctx)); err != nil {
		if e.logger != nil {
			e.logger.Error("❌ Transcription job failed", zap.Error(err))
		}
		return nil, err
	}

	if e.logger != nil {
		e.logger.Info("✅ Transcription job completed",
			zap.Int("segments", len(result.Segments)),
			zap.Float64("duration_seconds", result.Duration))
	}

	e.mu.Lock()
	e.cache[audioURL] = result
	e.mu.Unlock()

	return result, nil
}
