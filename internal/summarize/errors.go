package summarize

import (
	"errors"
	"fmt"
)

const maxBodySnippet = 500

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError checks if an error is a missing or rejected credential,
// anywhere in the wrap chain.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// APIError is returned for non-2xx responses from the summarization API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, snippet(e.Body))
}

func snippet(body string) string {
	if len(body) > maxBodySnippet {
		return body[:maxBodySnippet] + "..."
	}
	return body
}
