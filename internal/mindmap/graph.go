package mindmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/mindmap/internal/curriculum"
	"github.com/matsen/mindmap/internal/relate"
)

// OutputSuffix is inserted before the extension of the input file name.
const OutputSuffix = "_relationships"

// Build materializes the tree and collects its lines into a Graph.
func Build(meta Metadata, tree *curriculum.Tree, rels relate.Map) (*Graph, error) {
	dots, err := Materialize(tree, rels)
	if err != nil {
		return nil, err
	}
	return NewGraph(meta, dots), nil
}

// NewGraph wraps materialized dots and their lines in an output document.
func NewGraph(meta Metadata, dots []Dot) *Graph {
	if dots == nil {
		dots = []Dot{}
	}
	return &Graph{
		Name:        meta.Name,
		Slug:        meta.Slug,
		Description: meta.Description,
		Dots:        dots,
		Paths:       []json.RawMessage{},
		Lines:       CollectLines(dots),
	}
}

// MetadataFrom copies the descriptive header of a curriculum document.
func MetadataFrom(doc *curriculum.Document) Metadata {
	return Metadata{Name: doc.Name, Slug: doc.Slug, Description: doc.Description}
}

// OutputPath derives the output file name: "x.json" becomes
// "x_relationships.json", any other name gets "_relationships.json" appended.
func OutputPath(input string) string {
	if base, ok := strings.CutSuffix(input, ".json"); ok {
		return base + OutputSuffix + ".json"
	}
	return input + OutputSuffix + ".json"
}

// Marshal encodes the graph with two-space indentation. Text is written
// as-is, without HTML escaping.
func (g *Graph) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return nil, fmt.Errorf("encoding graph: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the graph as indented JSON to path.
func WriteFile(path string, g *Graph) error {
	data, err := g.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing graph: %w", err)
	}
	return nil
}
