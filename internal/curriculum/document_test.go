package curriculum

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "full document",
			input: `{"name":"DSA","slug":"dsa","description":"d","sections":[{"name":"Basics","number":"1","topics":[{"name":"Arrays","number":"1.1","concepts":[{"name":"Indexing","description":"O(1) access"}]}]}]}`,
		},
		{
			name:  "optional fields missing",
			input: `{"sections":[{"name":"Basics","topics":[{"name":"Arrays"}]},{"name":"Empty"}]}`,
		},
		{
			name:  "empty sections",
			input: `{"sections":[]}`,
		},
		{
			name:    "missing sections",
			input:   `{"name":"x"}`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "section without name",
			input:   `{"sections":[{"number":"1"}]}`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "concept without name",
			input:   `{"sections":[{"name":"s","topics":[{"name":"t","concepts":[{"description":"d"}]}]}]}`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "non-object section",
			input:   `{"sections":["Basics"]}`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "not JSON",
			input:   `sections: []`,
			wantErr: ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	doc, err := Parse([]byte(`{"sections":[]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Name != DefaultName {
		t.Errorf("Name = %q, want %q", doc.Name, DefaultName)
	}
	if doc.Slug != DefaultSlug {
		t.Errorf("Slug = %q, want %q", doc.Slug, DefaultSlug)
	}
	if doc.Description != DefaultDescription {
		t.Errorf("Description = %q, want %q", doc.Description, DefaultDescription)
	}
}

func TestOrdinal_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Ordinal
	}{
		{`{"sections":[{"name":"s","number":"1.2"}]}`, "1.2"},
		{`{"sections":[{"name":"s","number":3}]}`, "3"},
		{`{"sections":[{"name":"s","number":1.5}]}`, "1.5"},
		{`{"sections":[{"name":"s","number":null}]}`, ""},
		{`{"sections":[{"name":"s"}]}`, ""},
	}

	for _, tt := range tests {
		doc, err := Parse([]byte(tt.input))
		if err != nil {
			t.Fatalf("Parse(%s) error = %v", tt.input, err)
		}
		if got := doc.Sections[0].Number; got != tt.want {
			t.Errorf("Parse(%s) number = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := Parse([]byte(`{"sections":[{"name":"s","number":[1]}]}`)); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("array number: error = %v, want ErrInvalidDocument", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.json"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Load() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("Load() error = %v, want ErrInvalidDocument", err)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "ok.json")
		if err := os.WriteFile(path, []byte(`{"name":"OS","sections":[{"name":"Processes"}]}`), 0644); err != nil {
			t.Fatal(err)
		}
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if doc.Name != "OS" || len(doc.Sections) != 1 {
			t.Errorf("Load() = %+v", doc)
		}
	})
}
