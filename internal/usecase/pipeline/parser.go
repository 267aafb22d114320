package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

// Parser handles parsing and validation of LLM responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseMinutes parses the JSON response from the LLM into Minutes
func (p *Parser) ParseMinutes(jsonString string) (*entities.Minutes, error) {
	// Extract JSON from response (the model might wrap it in markdown code blocks)
	jsonString = extractJSON(jsonString)

	var minutes entities.Minutes
	if err := json.Unmarshal([]byte(jsonString), &minutes); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := p.ValidateMinutes(&minutes); err != nil {
		return nil, err
	}

	return &minutes, nil
}

// ValidateMinutes validates that required fields are present. List fields
// can be empty for short meetings; they just must not be nil.
func (p *Parser) ValidateMinutes(minutes *entities.Minutes) error {
	if minutes == nil {
		return fmt.Errorf("minutes result is nil")
	}

	if strings.TrimSpace(minutes.Summary) == "" {
		return fmt.Errorf("missing summary in response")
	}

	minutes.EnsureLists()
	return nil
}

// ValidateTranscriptLength checks if transcript meets minimum requirements
func (p *Parser) ValidateTranscriptLength(transcript string, durationSeconds int) error {
	const (
		minChars = 100
		minWords = 20
	)

	if len(transcript) < minChars {
		return fmt.Errorf("transcript too short: %d characters (minimum: %d)", len(transcript), minChars)
	}

	words := strings.Fields(transcript)
	if len(words) < minWords {
		return fmt.Errorf("transcript too short: %d words (minimum: %d)", len(words), minWords)
	}

	return nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
