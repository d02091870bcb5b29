package curriculum

// Kind tags the level of a node in the curriculum tree.
type Kind string

// Node kinds.
const (
	KindSection Kind = "section"
	KindTopic   Kind = "topic"
	KindConcept Kind = "concept"
)

// Visual weights per kind.
const (
	SectionSize = 6
	TopicSize   = 4
	ConceptSize = 3
)

// Size returns the default visual weight of the kind.
func (k Kind) Size() int {
	switch k {
	case KindSection:
		return SectionSize
	case KindTopic:
		return TopicSize
	default:
		return ConceptSize
	}
}

// Node is one section, topic or concept with its assigned id.
type Node struct {
	ID          int
	Kind        Kind
	Label       string
	Number      string // sections and topics only
	Description string // concepts only
	ParentID    int    // 0 for top-level sections
	ChildIDs    []int
}

// HasParent reports whether the node sits below another node.
func (n *Node) HasParent() bool {
	return n.ParentID != 0
}

// IsConcept reports whether the node is a leaf concept.
func (n *Node) IsConcept() bool {
	return n.Kind == KindConcept
}
