package logtree

import (
	"fmt"

	"github.com/dlukegordon/majjit/internal/log"
)

// Source produces the raw jj output the tree is built from.
type Source interface {
	Log(revset string) (string, error)
	DiffSummary(changeID string) (string, error)
	DiffFile(changeID, path string) (string, error)
}

// Tree is the foldable log tree: change nodes at the root, file summaries
// beneath unfolded changes, diff hunks beneath unfolded files. Child levels
// load lazily on first unfold and are memoized after that.
type Tree struct {
	source Source
	roots  []*Node
}

func NewTree(source Source) *Tree {
	return &Tree{source: source}
}

// Load replaces the tree's contents from a fresh jj log run. All nodes
// start folded; fold state from a previous load is not carried over.
func (t *Tree) Load(revset string) error {
	output, err := t.source.Log(revset)
	if err != nil {
		return err
	}

	roots, err := parseLog(output)
	if err != nil {
		return fmt.Errorf("parsing log: %w", err)
	}

	log.Debug(log.CatTree, "loaded log tree", "revset", revset, "roots", len(roots))
	t.roots = roots
	return nil
}

// Len returns the number of top-level nodes.
func (t *Tree) Len() int {
	return len(t.roots)
}

// NodeAt resolves a path to its node, or nil if the path points outside the
// current tree shape.
func (t *Tree) NodeAt(p Path) *Node {
	if len(p) == 0 {
		return nil
	}

	nodes := t.roots
	var node *Node
	for _, idx := range p {
		if idx < 0 || idx >= len(nodes) {
			return nil
		}
		node = nodes[idx]
		nodes = node.Children
	}
	return node
}

// Flatten walks the tree depth-first and emits the visible nodes in
// display order, caching each node's flat index as it goes. The returned
// paths parallel the nodes slice.
func (t *Tree) Flatten() ([]*Node, []Path) {
	var nodes []*Node
	var paths []Path

	var walk func(n *Node, p Path)
	walk = func(n *Node, p Path) {
		n.flatIdx = len(nodes)
		nodes = append(nodes, n)
		paths = append(paths, p)
		if !n.Unfolded {
			return
		}
		for i, child := range n.Children {
			walk(child, p.Child(i))
		}
	}

	for i, root := range t.roots {
		walk(root, Path{i})
	}
	return nodes, paths
}

// ToggleFold flips the fold state of the node at p, lazily loading its
// children on first unfold. Info and line leaves have no fold state; a
// toggle on one is a no-op. If loading or parsing fails the fold state is
// left untouched and the error is returned.
func (t *Tree) ToggleFold(p Path) error {
	node := t.NodeAt(p)
	if node == nil {
		return fmt.Errorf("no node at path %v", p)
	}

	switch node.Kind {
	case KindInfo, KindLine:
		return nil
	case KindChange, KindFile:
		if !node.Loaded {
			if err := t.loadChildren(node); err != nil {
				return err
			}
		}
	}

	node.Unfolded = !node.Unfolded
	return nil
}

// Unfold unfolds the node at p, loading children if needed. Already
// unfolded nodes are left alone.
func (t *Tree) Unfold(p Path) error {
	node := t.NodeAt(p)
	if node == nil {
		return fmt.Errorf("no node at path %v", p)
	}
	if node.Unfolded {
		return nil
	}
	return t.ToggleFold(p)
}

// loadChildren fetches and parses a node's children from jj. Only set as
// loaded once parsing has fully succeeded, so a failed load retries on the
// next unfold.
func (t *Tree) loadChildren(node *Node) error {
	switch node.Kind {
	case KindChange:
		output, err := t.source.DiffSummary(node.Change.ChangeID)
		if err != nil {
			return err
		}
		children, err := parseFileSummary(node.Change.ChangeID, output, node.Change.GraphIndent)
		if err != nil {
			return fmt.Errorf("parsing diff summary for %s: %w", node.Change.ChangeID, err)
		}
		node.Children = children

	case KindFile:
		output, err := t.source.DiffFile(node.File.ChangeID, node.File.Path)
		if err != nil {
			return err
		}
		children, err := parseHunks(output, node.Indent)
		if err != nil {
			return fmt.Errorf("parsing diff for %s: %w", node.File.Path, err)
		}
		node.Children = children

	default:
		return nil
	}

	node.Loaded = true
	log.Debug(log.CatTree, "loaded children", "kind", node.Kind.String(), "count", len(node.Children))
	return nil
}

// WorkingCopyPath returns the path of the working-copy change, or nil when
// none is in the loaded revset.
func (t *Tree) WorkingCopyPath() Path {
	for i, root := range t.roots {
		if root.Kind == KindChange && root.Change.WorkingCopy {
			return Path{i}
		}
	}
	return nil
}

// ChangeAt returns the change the node at p belongs to: the node itself for
// a change node, its root ancestor otherwise. Info nodes have no change.
func (t *Tree) ChangeAt(p Path) *Change {
	if len(p) == 0 {
		return nil
	}
	root := t.NodeAt(p[:1])
	if root == nil || root.Kind != KindChange {
		return nil
	}
	return root.Change
}

// FileAt returns the file the node at p falls under, or nil for nodes at or
// above the change level.
func (t *Tree) FileAt(p Path) *File {
	if len(p) < DepthFile+1 {
		return nil
	}
	node := t.NodeAt(p[:DepthFile+1])
	if node == nil || node.Kind != KindFile {
		return nil
	}
	return node.File
}
