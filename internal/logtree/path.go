package logtree

// Path identifies a node as the sequence of child indices from the tree
// root: change, file diff, diff hunk, hunk line. Paths are recomputed on
// every flatten pass and must not be retained across a reload.
type Path []int

// Depth constants: position of each level's index within a Path.
const (
	DepthChange = 0
	DepthFile   = 1
	DepthHunk   = 2
	DepthLine   = 3

	// MaxDepth is the number of tree levels.
	MaxDepth = 4
)

// Parent returns the path with its last component removed, or the path
// itself when already at root depth.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return p
	}
	return p[:len(p)-1]
}

// Child returns a new path descending to child i.
func (p Path) Child(i int) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = i
	return child
}
