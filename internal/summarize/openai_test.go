package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dshills/tagsum/internal/config"
)

func testOpenAI(url string, client *http.Client) *OpenAI {
	cfg := config.Default()
	return &OpenAI{
		apiKey:        "test-key",
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
		maxTokens:     cfg.MaxTokens,
		temperature:   cfg.Temperature,
		contextBudget: cfg.ContextBudget,
		baseURL:       url,
		client:        client,
	}
}

func TestOpenAI_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Missing or wrong Authorization header")
		}

		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Error("request should carry system + user messages")
		}
		if !strings.Contains(req.Messages[1].Content, "+a change") {
			t.Error("user message should embed the diff")
		}

		resp := openaiResponse{
			Choices: []openaiChoice{
				{Message: openaiMessage{Role: "assistant", Content: "A summary."}},
			},
			Usage: openaiUsage{TotalTokens: 42},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	o := testOpenAI(server.URL, server.Client())
	resp, err := o.Summarize(context.Background(), Request{
		Project: "proj", FromTag: "v1", ToTag: "v2", Diff: "+a change",
	})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if resp.Summary != "A summary." {
		t.Errorf("Summary = %q", resp.Summary)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("TokensUsed = %d, want 42", resp.TokensUsed)
	}
	if resp.Model != config.Default().Model {
		t.Errorf("Model = %q", resp.Model)
	}
}

func TestOpenAI_ServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(500)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	o := testOpenAI(server.URL, server.Client())
	_, err := o.Summarize(context.Background(), Request{Diff: "+x"})
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error should be *APIError, got %T", err)
	}
	if apiErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error message should include the status code: %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt (fail-fast), got %d", attempts)
	}
}

func TestOpenAI_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"error":"invalid key"}`))
	}))
	defer server.Close()

	o := testOpenAI(server.URL, server.Client())
	_, err := o.Summarize(context.Background(), Request{Diff: "+x"})
	if !IsAuthError(err) {
		t.Errorf("401 should map to auth error, got %v", err)
	}
}

func TestOpenAI_ContextLengthFallback(t *testing.T) {
	var models []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openaiRequest
		json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)

		if len(models) == 1 {
			w.WriteHeader(400)
			w.Write([]byte(`{"error":{"code":"context_length_exceeded"}}`))
			return
		}
		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{{Message: openaiMessage{Content: "short summary"}}},
		})
	}))
	defer server.Close()

	o := testOpenAI(server.URL, server.Client())
	resp, err := o.Summarize(context.Background(), Request{
		Project: "proj", FromTag: "v1", ToTag: "v2",
		Diff: strings.Repeat("+line\n", 100),
	})
	if err != nil {
		t.Fatalf("Summarize error after fallback: %v", err)
	}
	if resp.Summary != "short summary" {
		t.Errorf("Summary = %q", resp.Summary)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(models))
	}
	if models[0] != config.Default().Model {
		t.Errorf("first request model = %q", models[0])
	}
	if models[1] != config.Default().FallbackModel {
		t.Errorf("fallback request model = %q", models[1])
	}
}

func TestOpenAI_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	o := testOpenAI(server.URL, server.Client())
	_, err := o.Summarize(context.Background(), Request{Diff: "+x"})
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Errorf("expected no-choices error, got %v", err)
	}
}

func TestOpenAI_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	o := testOpenAI(server.URL, server.Client())
	_, err := o.Summarize(ctx, Request{Diff: "+x"})
	if err == nil {
		t.Error("expected error when context times out")
	}
}

func TestNewOpenAI_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewOpenAI(config.Default())
	if err == nil {
		t.Fatal("expected error for missing OPENAI_API_KEY")
	}
	if !IsAuthError(err) {
		t.Errorf("missing key should be an auth error, got %v", err)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New("bogus", config.Default()); err == nil {
		t.Error("expected error for unknown provider")
	}
}
