package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/pkg/jobcontext"
)

// Summarizer is the minutes-generation capability boundary.
type Summarizer interface {
	Summarize(ctx context.Context, segments []entities.Segment) (*entities.Minutes, error)
}

// Completer abstracts the chat-completion client.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// MinutesStage produces the structured minute sections from the normalized
// transcript via an LLM. The output contract is strict JSON; the parser
// tolerates markdown fences and initializes missing list fields.
type MinutesStage struct {
	completer Completer
	parser    *Parser
	logger    *zap.Logger
}

const minutesSystemPrompt = `You are a meeting-minutes writer. Given a speaker-attributed meeting transcript, respond with a single JSON object with exactly these keys:
"summary": a concise paragraph summarizing the meeting,
"agenda_items": a JSON array of short strings naming the topics discussed,
"decisions": a JSON array of short strings, one per decision made,
"risks": a JSON array of short strings, one per risk or concern raised,
"next_steps": a JSON array of short strings, one per planned follow-up.
Use empty arrays when a section has no content. Respond with JSON only, no prose.`

// NewMinutesStage creates a summarization stage.
func NewMinutesStage(completer Completer, logger *zap.Logger) *MinutesStage {
	return &MinutesStage{
		completer: completer,
		parser:    NewParser(),
		logger:    logger,
	}
}

// Summarize sends the transcript and returns well-formed minutes. Transcripts
// too short for the model produce a minimal record instead of an error. List
// fields are never nil.
func (s *MinutesStage) Summarize(ctx context.Context, segments []entities.Segment) (*entities.Minutes, error) {
	transcript := FormatTranscript(segments)
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("empty transcript")
	}

	if err := s.parser.ValidateTranscriptLength(transcript, 0); err != nil {
		if s.logger != nil {
			s.logger.Info("⚠️ Transcript below model minimum, emitting minimal minutes", zap.Error(err))
		}
		return minimalMinutes(segments), nil
	}

	var content string
	operation := func() error {
		var err error
		content, err = s.completer.Complete(ctx, minutesSystemPrompt, transcript)
		if err != nil && !jobcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	expBackoff := backoff.NewExponentialBackOff()
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(expBackoff, 2), ctx)); err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Minutes generation failed", zap.Error(err))
		}
		return nil, err
	}

	minutes, err := s.parser.ParseMinutes(content)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("✅ Minutes generated",
			zap.Int("agenda_items", len(minutes.AgendaItems)),
			zap.Int("decisions", len(minutes.Decisions)),
			zap.Int("next_steps", len(minutes.NextSteps)))
	}

	return minutes, nil
}

// minimalMinutes builds a bare record from the raw text for meetings with
// too little speech to summarize.
func minimalMinutes(segments []entities.Segment) *entities.Minutes {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	minutes := &entities.Minutes{Summary: strings.Join(texts, " ")}
	minutes.EnsureLists()
	return minutes
}

// FormatTranscript renders speaker-attributed segments as prompt input.
func FormatTranscript(segments []entities.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "[%s] %s\n", seg.Speaker, seg.Text)
	}
	return b.String()
}
