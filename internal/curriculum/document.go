// Package curriculum defines the input curriculum document and assigns
// stable integer ids to its sections, topics and concepts.
package curriculum

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults for missing document metadata.
const (
	DefaultName        = "Untitled Subject"
	DefaultSlug        = "untitled-subject"
	DefaultDescription = "No description provided"
)

// Input errors.
var (
	ErrNotFound        = errors.New("curriculum file not found")
	ErrInvalidDocument = errors.New("invalid curriculum document")
)

var validate = validator.New()

// Document is the curriculum as read from disk.
type Document struct {
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections" validate:"required,dive"`
}

// Section is a top-level grouping of topics.
type Section struct {
	Name   string  `json:"name" validate:"required"`
	Number Ordinal `json:"number,omitempty"`
	Topics []Topic `json:"topics,omitempty" validate:"dive"`
}

// Topic groups related concepts inside a section.
type Topic struct {
	Name     string    `json:"name" validate:"required"`
	Number   Ordinal   `json:"number,omitempty"`
	Concepts []Concept `json:"concepts,omitempty" validate:"dive"`
}

// Concept is a leaf of the curriculum.
type Concept struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Ordinal is outline numbering such as "1.2". Generated outlines sometimes
// emit it as a bare JSON number, so both forms decode to the same text.
type Ordinal string

// UnmarshalJSON accepts a string, a number or null.
func (o *Ordinal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = Ordinal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("number must be a string or a number: %w", err)
	}
	*o = Ordinal(n.String())
	return nil
}

// Load reads and validates the curriculum document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading curriculum: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a curriculum document, filling default metadata.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.ApplyDefaults()
	return &doc, nil
}

// Validate checks the structural requirements of the document.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, formatValidationError(err))
	}
	return nil
}

// ApplyDefaults fills missing name, slug and description with placeholders.
func (d *Document) ApplyDefaults() {
	if d.Name == "" {
		d.Name = DefaultName
	}
	if d.Slug == "" {
		d.Slug = DefaultSlug
	}
	if d.Description == "" {
		d.Description = DefaultDescription
	}
}

// formatValidationError turns validator errors into one readable line.
func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "Document.")
		msgs = append(msgs, fmt.Sprintf("%s is %s", path, fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
