// Package llm talks to the text-generation services used for relationship
// inference and outline generation.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Completer sends a prompt and returns the raw response text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Common errors returned by completers.
var (
	// ErrEmptyResponse indicates the service answered with no text.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrUnavailable indicates the service could not be reached.
	ErrUnavailable = errors.New("model service unavailable")

	// ErrUnknownProvider indicates a provider name with no client.
	ErrUnknownProvider = errors.New("unknown provider")
)

// APIError is a non-success HTTP answer from a model service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("model API error (status %d): %s", e.StatusCode, e.Message)
}

// IsAuthError returns true if the error indicates a rejected API key.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}
