// Package summarize sends diff text to a hosted LLM API and returns a
// generated change summary.
//
// Supported providers: OpenAI (default) and Anthropic. HTTP clients honor
// a base-URL override from the environment so tests can redirect calls to
// local httptest servers without making live API requests.
//
// Requests are single-attempt and fail fast: there is no retry or backoff,
// and non-2xx responses surface as [*APIError] carrying the status code
// and a body snippet. The one exception is OpenAI's context-length
// rejection, which triggers one re-issue on the configured fallback model
// with a hard-truncated diff, mirroring the tool's original behavior.
//
// Diffs larger than the configured context budget are reduced by
// [FitToBudget] before sending; truncation is always visible in the
// payload, never silent.
//
// Use [New] to obtain a Summarizer by provider name.
package summarize
