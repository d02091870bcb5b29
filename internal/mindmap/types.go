// Package mindmap builds the renderable mind-map graph: nested dots plus
// hierarchical and connection lines.
package mindmap

import "encoding/json"

// LineType distinguishes structural lines from inferred ones.
type LineType string

// Line types.
const (
	LineHierarchical LineType = "hierarchical"
	LineConnection   LineType = "connection"
)

// Graph is the output document consumed by the renderer.
type Graph struct {
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Dots        []Dot             `json:"dots"`
	Paths       []json.RawMessage `json:"paths"` // reserved, always empty
	Lines       Lines             `json:"lines"`
}

// Dot is a renderable node. Only sections appear at the top level; topics
// and concepts are nested under Children.
type Dot struct {
	ID          int    `json:"id"`
	Size        int    `json:"size"`
	Text        string `json:"text"`
	ParentID    *int   `json:"parentId"`
	Details     string `json:"details"`
	FullContent string `json:"fullContent"`

	// Reserved for later enrichment; always empty here.
	Implementations []string `json:"implementations"`
	Relationships   []string `json:"relationships"`

	Connections []int `json:"connections"`
	Children    []Dot `json:"children,omitempty"`
}

// Line is an edge between two dots.
type Line struct {
	Source int      `json:"source"`
	Target int      `json:"target"`
	Type   LineType `json:"type"`
}

// Lines groups the two edge lists of a graph.
type Lines struct {
	Hierarchical []Line `json:"hierarchical"`
	Connections  []Line `json:"connections"`
}

// Metadata is the descriptive header copied from the curriculum.
type Metadata struct {
	Name        string
	Slug        string
	Description string
}

// IsEmpty returns true if the graph has no dots.
func (g *Graph) IsEmpty() bool {
	return len(g.Dots) == 0
}
