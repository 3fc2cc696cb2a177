package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"alfredoptarigan/interview-prep/internal/config"
	"alfredoptarigan/interview-prep/internal/models"
)

func newTestOpenRouter(serverURL string) ChatCompleter {
	return NewOpenRouterService(config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: serverURL + "/api/v1/",
		Model:   "openchat/openchat-3.5-0106",
		Referer: "http://localhost:3000",
		Title:   "AI Interview Tool",
	}, 0)
}

func TestOpenRouterCompleteSendsChatRequest(t *testing.T) {
	var received struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/chat/completions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "http://localhost:3000" {
			t.Errorf("unexpected referer header %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "AI Interview Tool" {
			t.Errorf("unexpected title header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "gen-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "openchat/openchat-3.5-0106",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"score\": 8, \"feedback\": \"Good.\"}"}
			}]
		}`))
	}))
	defer server.Close()

	llm := newTestOpenRouter(server.URL)

	reply, err := llm.Complete(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != `{"score": 8, "feedback": "Good."}` {
		t.Fatalf("unexpected reply %q", reply)
	}

	if received.Model != "openchat/openchat-3.5-0106" {
		t.Fatalf("unexpected model %q", received.Model)
	}
	if len(received.Messages) != 2 {
		t.Fatalf("expected two messages, got %d", len(received.Messages))
	}
	if received.Messages[0].Role != "system" || received.Messages[0].Content != "system text" {
		t.Fatalf("unexpected system message %+v", received.Messages[0])
	}
	if received.Messages[1].Role != "user" || received.Messages[1].Content != "user text" {
		t.Fatalf("unexpected user message %+v", received.Messages[1])
	}

	if llm.Provider() != config.ProviderOpenRouter {
		t.Fatalf("unexpected provider %q", llm.Provider())
	}
}

func TestOpenRouterCompleteDoesNotRetry(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "upstream exploded"}}`))
	}))
	defer server.Close()

	_, err := newTestOpenRouter(server.URL).Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected an error from a 500 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one request, got %d", calls.Load())
	}
}

func TestOpenRouterCompleteWithoutChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "gen-2", "object": "chat.completion", "created": 1700000000, "model": "m", "choices": []}`))
	}))
	defer server.Close()

	_, err := newTestOpenRouter(server.URL).Complete(context.Background(), "s", "u")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func completionServer(content string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "gen-3",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "m",
			"choices": [{
				"index": 0,
				"finish_reason": "content_filter",
				"message": {"role": "assistant", "content": ` + content + `}
			}]
		}`))
	}))
}

func TestOpenRouterCompleteNullContent(t *testing.T) {
	server := completionServer("null")
	defer server.Close()

	_, err := newTestOpenRouter(server.URL).Complete(context.Background(), "s", "u")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestOpenRouterCompleteEmptyContent(t *testing.T) {
	server := completionServer(`""`)
	defer server.Close()

	reply, err := newTestOpenRouter(server.URL).Complete(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "" {
		t.Fatalf("expected empty reply, got %q", reply)
	}
}

func TestEvaluateAnswersTreatsNullContentAsCallFailure(t *testing.T) {
	server := completionServer("null")
	defer server.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	evaluator := NewAnswerEvaluator(newTestOpenRouter(server.URL), zap.New(core), 1, 100)

	got, err := evaluator.EvaluateAnswers(context.Background(), []string{"Q1"}, []string{"A1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.AnswerEvaluation{Score: 0, Feedback: models.DefaultFeedback, Outcome: models.OutcomeCallFailure}
	if got[0] != want {
		t.Fatalf("expected %+v, got %+v", want, got[0])
	}
	if n := logs.FilterMessage("❌ AI call failed, using default score for Q1").Len(); n != 1 {
		t.Fatalf("expected one warning for Q1, got %d", n)
	}
}
