// Package topic asks a model to draft a curriculum outline for a subject.
package topic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matsen/mindmap/internal/curriculum"
	"github.com/matsen/mindmap/internal/llm"
)

// ErrEmptyName is returned when no subject name is given.
var ErrEmptyName = errors.New("subject name is required")

// Slug turns a subject name into a URL-friendly identifier.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}

// Title capitalizes each word of the subject name.
func Title(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// FileName is the base name used when writing a generated outline.
func FileName(name, ext string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_") + ext
}

// DefaultDescription is used when the caller gives no description.
func DefaultDescription(name string) string {
	return fmt.Sprintf("Explore %s concepts", strings.TrimSpace(name))
}

// Generator drafts curricula with a model.
type Generator struct {
	completer llm.Completer
}

// NewGenerator creates a Generator backed by completer.
func NewGenerator(completer llm.Completer) *Generator {
	return &Generator{completer: completer}
}

// Generate asks for a JSON outline of name and wraps it with metadata. The
// result is validated like any curriculum file.
func (g *Generator) Generate(ctx context.Context, name, description string) (*curriculum.Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	raw, err := g.completer.Complete(ctx, BuildPrompt(name, FormatJSON))
	if err != nil {
		return nil, fmt.Errorf("generating outline: %w", err)
	}

	var outline struct {
		Sections []curriculum.Section `json:"sections"`
	}
	if err := json.Unmarshal([]byte(llm.FencedBlock(raw)), &outline); err != nil {
		return nil, fmt.Errorf("%w: outline is not JSON: %v", curriculum.ErrInvalidDocument, err)
	}

	if description == "" {
		description = DefaultDescription(name)
	}
	doc := &curriculum.Document{
		Name:        Title(name),
		Slug:        Slug(name),
		Description: description,
		Sections:    outline.Sections,
	}
	if doc.Sections == nil {
		doc.Sections = []curriculum.Section{}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// GenerateMarkdown asks for the outline as a markdown document and returns
// the text unchanged.
func (g *Generator) GenerateMarkdown(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}
	out, err := g.completer.Complete(ctx, BuildPrompt(name, FormatMarkdown))
	if err != nil {
		return "", fmt.Errorf("generating outline: %w", err)
	}
	return out, nil
}
