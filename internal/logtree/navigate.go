package logtree

// ParentIndex returns the flat index of the parent of the node at p. A
// top-level node is its own parent.
func (t *Tree) ParentIndex(p Path) int {
	node := t.NodeAt(p.Parent())
	if node == nil {
		return 0
	}
	return node.FlatIndex()
}

// NextSiblingIndex returns the flat index of the next sibling of the node
// at p, walking up to an ancestor's sibling when the node is last among its
// own. At the top level the move clamps at the final node.
func (t *Tree) NextSiblingIndex(p Path) int {
	return t.siblingIndex(p, 1)
}

// PrevSiblingIndex is the mirror of NextSiblingIndex: previous sibling,
// falling back to an ancestor's previous sibling, clamping at the first
// top-level node.
func (t *Tree) PrevSiblingIndex(p Path) int {
	return t.siblingIndex(p, -1)
}

func (t *Tree) siblingIndex(p Path, delta int) int {
	if len(p) == 0 {
		return 0
	}
	// Line nodes navigate as part of their hunk.
	if len(p) > DepthHunk+1 {
		p = p[:DepthHunk+1]
	}

	for {
		idx := p[len(p)-1] + delta

		if len(p) == 1 {
			if idx < 0 {
				idx = 0
			}
			if idx > len(t.roots)-1 {
				idx = len(t.roots) - 1
			}
			return t.roots[idx].FlatIndex()
		}

		parent := t.NodeAt(p.Parent())
		if parent != nil && idx >= 0 && idx < len(parent.Children) {
			return parent.Children[idx].FlatIndex()
		}
		p = p.Parent()
	}
}
