package mindmap

import (
	"fmt"

	"github.com/matsen/mindmap/internal/curriculum"
	"github.com/matsen/mindmap/internal/relate"
)

// DetailsPreviewLength is the number of characters of a concept description
// shown in Details.
const DetailsPreviewLength = 150

// Materialize rebuilds the nested dot tree from the flat node list, one
// root per section, attaching connections from rels to concepts.
func Materialize(tree *curriculum.Tree, rels relate.Map) ([]Dot, error) {
	sections := tree.Sections()
	dots := make([]Dot, 0, len(sections))
	for i := range sections {
		dot, err := materialize(tree, &sections[i], rels)
		if err != nil {
			return nil, err
		}
		dots = append(dots, dot)
	}
	return dots, nil
}

func materialize(tree *curriculum.Tree, n *curriculum.Node, rels relate.Map) (Dot, error) {
	dot := Dot{
		ID:              n.ID,
		Size:            n.Kind.Size(),
		Text:            n.Label,
		Implementations: []string{},
		Relationships:   []string{},
		Connections:     []int{},
	}
	if n.HasParent() {
		parentID := n.ParentID
		dot.ParentID = &parentID
	}

	if n.IsConcept() {
		content := n.Description
		if content == "" {
			content = n.Label
		}
		dot.Details = preview(content, DetailsPreviewLength)
		dot.FullContent = content
		dot.Connections = append(dot.Connections, rels.Related(n.ID)...)
	} else {
		// The separator is kept when the number is empty.
		dot.Details = n.Label + " - " + n.Number
		dot.FullContent = n.Label
	}

	for _, childID := range n.ChildIDs {
		child, ok := tree.Node(childID)
		if !ok {
			return Dot{}, fmt.Errorf("%w: node %d lists unknown child %d", curriculum.ErrBrokenTree, n.ID, childID)
		}
		if child.ParentID != n.ID {
			return Dot{}, fmt.Errorf("%w: child %d of node %d has parent %d", curriculum.ErrBrokenTree, childID, n.ID, child.ParentID)
		}
		childDot, err := materialize(tree, child, rels)
		if err != nil {
			return Dot{}, err
		}
		dot.Children = append(dot.Children, childDot)
	}

	return dot, nil
}

// preview returns the first maxLen characters of text, without splitting a
// rune, followed by "...".
func preview(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return string(runes) + "..."
}
