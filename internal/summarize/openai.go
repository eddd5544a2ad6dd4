package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dshills/tagsum/internal/config"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// fallbackBudget is the much smaller content budget used when the primary
// model rejects the request for exceeding its context length.
const fallbackBudget = 6000

// OpenAI implements the Summarizer interface for OpenAI's API.
type OpenAI struct {
	apiKey        string
	model         string
	fallbackModel string
	maxTokens     int
	temperature   float64
	contextBudget int
	baseURL       string
	client        *http.Client
}

// NewOpenAI creates a new OpenAI provider.
func NewOpenAI(cfg config.Config) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, &authError{message: "OPENAI_API_KEY environment variable is not set"}
	}
	baseURL := os.Getenv("TAGSUM_OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{
		apiKey:        key,
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
		maxTokens:     cfg.MaxTokens,
		temperature:   cfg.Temperature,
		contextBudget: cfg.ContextBudget,
		baseURL:       baseURL,
		client:        &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Summarize issues a single request to the chat completions endpoint.
// There is no retry: network failures and non-2xx statuses fail fast. The
// one exception is a context-length rejection, which is re-issued once on
// the fallback model with a hard-truncated diff — a different request, not
// a repeat of the failed one.
func (o *OpenAI) Summarize(ctx context.Context, req Request) (Response, error) {
	fitted, _ := FitToBudget(req.Diff, o.contextBudget)
	prompt := BuildPrompt(withDiff(req, fitted))

	resp, err := o.complete(ctx, o.model, prompt)
	if err == nil {
		return resp, nil
	}

	if o.fallbackModel != "" && isContextLength(err) {
		smaller, _ := FitToBudget(fitted, fallbackBudget)
		return o.complete(ctx, o.fallbackModel, BuildPrompt(withDiff(req, smaller)))
	}
	return Response{}, err
}

func withDiff(req Request, diff string) Request {
	req.Diff = diff
	return req
}

func isContextLength(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	return strings.Contains(apiErr.Body, "context_length_exceeded") ||
		strings.Contains(apiErr.Body, "maximum context length")
}

func (o *OpenAI) complete(ctx context.Context, model, prompt string) (Response, error) {
	body := openaiRequest{
		Model: model,
		Messages: []openaiMessage{
			{Role: "system", Content: SystemPrompt()},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode == 401 || httpResp.StatusCode == 403 {
		return Response{}, &authError{message: snippet(string(respBody))}
	}
	if httpResp.StatusCode != 200 {
		return Response{}, &APIError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Response{}, fmt.Errorf("parsing response: %w", err)
	}

	if len(result.Choices) == 0 {
		return Response{}, fmt.Errorf("no choices in response")
	}
	if result.Choices[0].Message.Content == "" {
		return Response{}, fmt.Errorf("empty text content in API response")
	}

	return Response{
		Summary:    result.Choices[0].Message.Content,
		Model:      model,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Usage   openaiUsage    `json:"usage"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}

type openaiUsage struct {
	TotalTokens int `json:"total_tokens"`
}
