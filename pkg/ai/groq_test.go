package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minutetrack/minute-tracker/pkg/config"
)

func TestComplete_Success(t *testing.T) {
	// Mock Groq server
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Fatalf("missing bearer token")
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(payload.Messages) != 2 {
			t.Fatalf("expected 2 messages got %d", len(payload.Messages))
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"summary":"ok"}`}},
			},
		})
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})

	content, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if content != `{"summary":"ok"}` {
		t.Fatalf("unexpected content %s", content)
	}
}

func TestComplete_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, err := client.Complete(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestMsToSeconds(t *testing.T) {
	if got := msToSeconds(nil); got != 0 {
		t.Fatalf("nil should be 0, got %f", got)
	}
	ms := int64(2500)
	if got := msToSeconds(&ms); got != 2.5 {
		t.Fatalf("expected 2.5 got %f", got)
	}
}
