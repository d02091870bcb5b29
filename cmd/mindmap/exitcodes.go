package main

import (
	"errors"
	"fmt"

	"github.com/matsen/mindmap/internal/config"
	"github.com/matsen/mindmap/internal/curriculum"
	"github.com/matsen/mindmap/internal/llm"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, unknown provider)
	ExitDataError   = 3 // Data error (missing or malformed input, inconsistent tree)
)

// exitCodeFor maps an error to the exit code reported to the operator.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, llm.ErrUnknownProvider):
		return ExitConfigError
	case errors.Is(err, curriculum.ErrNotFound),
		errors.Is(err, curriculum.ErrInvalidDocument),
		errors.Is(err, curriculum.ErrBrokenTree):
		return ExitDataError
	default:
		return ExitError
	}
}

// errorMessage adds a hint to errors the operator can fix.
func errorMessage(err error) string {
	switch {
	case llm.IsAuthError(err):
		return fmt.Sprintf("%v (check OLLAMA_API_KEY)", err)
	case errors.Is(err, llm.ErrUnavailable):
		return fmt.Sprintf("%v (check the service with 'mindmap config --check')", err)
	default:
		return err.Error()
	}
}
