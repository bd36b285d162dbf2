// Package provider implements the ordered task-extraction fallback chain:
// Gemini (free tier) first, then OpenAI (paid), then a local Ollama model.
package provider

import (
	"context"
	"errors"
)

var (
	// ErrMissingCredential marks a provider that is not configured.
	ErrMissingCredential = errors.New("missing credential")
	// ErrEmptyResponse marks a provider that answered with no text.
	ErrEmptyResponse = errors.New("empty response")
	// ErrAllFailed is wrapped by ChainError when no provider produced text.
	ErrAllFailed = errors.New("all providers failed")
)

// Provider is one interchangeable extraction backend. Extract makes exactly
// one attempt; retrying is the chain's business, and the chain never does.
type Provider interface {
	Name() string
	Extract(ctx context.Context, prompt string) (string, error)
}

// Hinter is implemented by providers that can suggest a fix for an error.
type Hinter interface {
	Hint(err error) string
}

// Recorder observes provider attempts. outcome is "success" or "failure".
type Recorder interface {
	ObserveAttempt(provider, outcome string)
}
