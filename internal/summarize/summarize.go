package summarize

import (
	"context"
	"fmt"

	"github.com/dshills/tagsum/internal/config"
)

// Request contains the data sent to an LLM for summarization.
type Request struct {
	Project string
	FromTag string
	ToTag   string
	Commit  string // set instead of FromTag/ToTag for single-commit mode
	Diff    string
}

// Response contains the generated summary.
type Response struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Summarizer is the provider abstraction interface.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a provider by name. The API credential is read from the
// environment here, so a missing key fails before any network call.
func New(provider string, cfg config.Config) (Summarizer, error) {
	switch provider {
	case "openai":
		return NewOpenAI(cfg)
	case "anthropic":
		return NewAnthropic(cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
