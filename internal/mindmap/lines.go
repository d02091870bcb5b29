package mindmap

// pairKey is an unordered pair of dot ids, stored as (min, max).
type pairKey struct {
	low, high int
}

func canonicalPair(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{low: a, high: b}
}

// CollectLines flattens the dot tree into both edge lists.
func CollectLines(dots []Dot) Lines {
	return Lines{
		Hierarchical: CollectHierarchical(dots),
		Connections:  CollectConnections(dots),
	}
}

// CollectHierarchical emits one parent->child line per child, in pre-order.
func CollectHierarchical(dots []Dot) []Line {
	lines := []Line{}
	var walk func(d *Dot)
	walk = func(d *Dot) {
		for i := range d.Children {
			child := &d.Children[i]
			lines = append(lines, Line{Source: d.ID, Target: child.ID, Type: LineHierarchical})
			walk(child)
		}
	}
	for i := range dots {
		walk(&dots[i])
	}
	return lines
}

// CollectConnections emits one line per unordered pair of connected dots.
// The first occurrence in pre-order decides the direction; reverse and
// repeated listings are dropped, as are self references.
func CollectConnections(dots []Dot) []Line {
	lines := []Line{}
	seen := make(map[pairKey]bool)
	var walk func(d *Dot)
	walk = func(d *Dot) {
		for _, target := range d.Connections {
			if target == d.ID {
				continue
			}
			key := canonicalPair(d.ID, target)
			if seen[key] {
				continue
			}
			seen[key] = true
			lines = append(lines, Line{Source: d.ID, Target: target, Type: LineConnection})
		}
		for i := range d.Children {
			walk(&d.Children[i])
		}
	}
	for i := range dots {
		walk(&dots[i])
	}
	return lines
}

// CountDots returns the number of dots in the tree, nested ones included.
func CountDots(dots []Dot) int {
	total := 0
	for i := range dots {
		total += 1 + CountDots(dots[i].Children)
	}
	return total
}
