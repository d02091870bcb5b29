package llm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultClaudeModel is the model passed to the claude CLI.
const DefaultClaudeModel = "haiku"

// ClaudeCLI completes prompts by shelling out to the claude CLI.
type ClaudeCLI struct {
	Binary  string
	Model   string
	Timeout time.Duration
}

// NewClaudeCLI returns a ClaudeCLI with defaults filled in.
func NewClaudeCLI(model string, timeout time.Duration) *ClaudeCLI {
	if model == "" {
		model = DefaultClaudeModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ClaudeCLI{Binary: "claude", Model: model, Timeout: timeout}
}

// ModelName returns the name of the model.
func (c *ClaudeCLI) ModelName() string {
	return c.Model
}

// Complete runs `claude --model <model> -p <prompt>`.
func (c *ClaudeCLI) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Binary, c.args(prompt)...)
	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("claude CLI timed out after %s", c.Timeout)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("claude CLI error: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%w: claude CLI: %v", ErrUnavailable, err)
	}

	text := strings.TrimSpace(string(output))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *ClaudeCLI) args(prompt string) []string {
	return []string{"--model", c.Model, "-p", prompt}
}
