package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/minutetrack/minute-tracker/pkg/config"
)

// GroqClient is a minimal client for Groq API calls used for LLM analysis
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com/openai/v1"
		}
	}

	model := "llama-3.3-70b-versatile"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	timeout := 2 * time.Minute
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &GroqClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// ChatMessage is one turn in a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []ChatMessage   `json:"messages,omitempty"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat requests structured output from the model
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system+user prompt pair and returns the assistant content.
// The model is asked for a JSON object response.
func (g *GroqClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatRequest{
		Model: g.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.3,
		MaxTokens:      8000,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("groq returned status %d: %s", resp.StatusCode, string(body))
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
