package curriculum

import (
	"errors"
	"fmt"
)

// ErrBrokenTree reports a violated parent/child invariant. It indicates a
// bug or a corrupt tree and must abort the run.
var ErrBrokenTree = errors.New("curriculum tree is inconsistent")

// Tree is the flat, id-ordered node list produced by Assign.
type Tree struct {
	nodes []Node
}

// Assign walks the document in pre-order (section, its topics, each topic's
// concepts) and numbers every node from 1.
func Assign(doc *Document) (*Tree, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}

	a := &assigner{}
	for _, s := range doc.Sections {
		sectionID := a.add(Node{Kind: KindSection, Label: s.Name, Number: string(s.Number)})
		for _, t := range s.Topics {
			topicID := a.add(Node{Kind: KindTopic, Label: t.Name, Number: string(t.Number), ParentID: sectionID})
			for _, c := range t.Concepts {
				a.add(Node{Kind: KindConcept, Label: c.Name, Description: c.Description, ParentID: topicID})
			}
		}
	}

	tree := &Tree{nodes: a.nodes}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

// assigner holds the traversal state for one Assign call.
type assigner struct {
	nodes []Node
}

// add numbers n, links it under its parent and returns its id.
func (a *assigner) add(n Node) int {
	n.ID = len(a.nodes) + 1
	if n.HasParent() {
		parent := &a.nodes[n.ParentID-1]
		parent.ChildIDs = append(parent.ChildIDs, n.ID)
	}
	a.nodes = append(a.nodes, n)
	return n.ID
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns all nodes in id order. The slice must not be modified.
func (t *Tree) Nodes() []Node {
	return t.nodes
}

// Node looks up a node by id.
func (t *Tree) Node(id int) (*Node, bool) {
	if id < 1 || id > len(t.nodes) {
		return nil, false
	}
	return &t.nodes[id-1], true
}

// Sections returns the top-level nodes in document order.
func (t *Tree) Sections() []Node {
	return t.filter(func(n *Node) bool { return !n.HasParent() })
}

// Concepts returns the leaf concepts in document order.
func (t *Tree) Concepts() []Node {
	return t.filter((*Node).IsConcept)
}

// IsConcept reports whether id names a concept of the tree.
func (t *Tree) IsConcept(id int) bool {
	n, ok := t.Node(id)
	return ok && n.IsConcept()
}

func (t *Tree) filter(keep func(*Node) bool) []Node {
	var out []Node
	for i := range t.nodes {
		if keep(&t.nodes[i]) {
			out = append(out, t.nodes[i])
		}
	}
	return out
}

// Validate checks id density, parent ordering and parent/child agreement.
func (t *Tree) Validate() error {
	parents := make(map[int]int, len(t.nodes))
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.ID != i+1 {
			return fmt.Errorf("%w: node at position %d has id %d", ErrBrokenTree, i+1, n.ID)
		}
		if n.Label == "" {
			return fmt.Errorf("%w: node %d has no label", ErrBrokenTree, n.ID)
		}
		if n.HasParent() {
			if n.ParentID >= n.ID || n.ParentID < 1 {
				return fmt.Errorf("%w: node %d has parent %d", ErrBrokenTree, n.ID, n.ParentID)
			}
			if !childKind(t.nodes[n.ParentID-1].Kind, n.Kind) {
				return fmt.Errorf("%w: %s %d cannot sit under %s %d",
					ErrBrokenTree, n.Kind, n.ID, t.nodes[n.ParentID-1].Kind, n.ParentID)
			}
		} else if n.Kind != KindSection {
			return fmt.Errorf("%w: %s %d has no parent", ErrBrokenTree, n.Kind, n.ID)
		}
		for _, childID := range n.ChildIDs {
			child, ok := t.Node(childID)
			if !ok {
				return fmt.Errorf("%w: node %d lists unknown child %d", ErrBrokenTree, n.ID, childID)
			}
			if child.ParentID != n.ID {
				return fmt.Errorf("%w: node %d lists child %d whose parent is %d", ErrBrokenTree, n.ID, childID, child.ParentID)
			}
			if prev, seen := parents[childID]; seen {
				return fmt.Errorf("%w: node %d listed by both %d and %d", ErrBrokenTree, childID, prev, n.ID)
			}
			parents[childID] = n.ID
		}
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.HasParent() && parents[n.ID] != n.ParentID {
			return fmt.Errorf("%w: node %d is missing from children of %d", ErrBrokenTree, n.ID, n.ParentID)
		}
	}
	return nil
}

func childKind(parent, child Kind) bool {
	return (parent == KindSection && child == KindTopic) || (parent == KindTopic && child == KindConcept)
}
