package logtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeSource struct {
	log        string
	summaries  map[string]string
	diffs      map[string]string
	summaryErr error
}

func (f *fakeSource) Log(revset string) (string, error) {
	return f.log, nil
}

func (f *fakeSource) DiffSummary(changeID string) (string, error) {
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return f.summaries[changeID], nil
}

func (f *fakeSource) DiffFile(changeID, path string) (string, error) {
	return f.diffs[changeID+":"+path], nil
}

func newTestSource() *fakeSource {
	return &fakeSource{
		log: sampleLog,
		summaries: map[string]string{
			"qpvuntsmwlqt": "M src/parser.go\nA docs/new.md",
			"kkmpptxzrspx": "",
		},
		diffs: map[string]string{
			"qpvuntsmwlqt:src/parser.go": sampleDiff,
			"qpvuntsmwlqt:docs/new.md":   "docs/new.md:\n         1: +hello",
		},
	}
}

func loadTestTree(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree(newTestSource())
	require.NoError(t, tree.Load("::@"))
	return tree
}

func TestLoadAndFlatten(t *testing.T) {
	tree := loadTestTree(t)
	require.Equal(t, 3, tree.Len())

	nodes, paths := tree.Flatten()
	require.Len(t, nodes, 3, "everything starts folded")
	require.Len(t, paths, 3)
	for i, n := range nodes {
		assert.Equal(t, i, n.FlatIndex())
		assert.Equal(t, n, tree.NodeAt(paths[i]))
	}
}

func TestToggleFoldLoadsLazily(t *testing.T) {
	tree := loadTestTree(t)
	foldedNodes, foldedPaths := tree.Flatten()

	require.NoError(t, tree.ToggleFold(Path{0}))
	nodes, _ := tree.Flatten()
	require.Len(t, nodes, 5, "change plus two files plus info lines")
	assert.Equal(t, KindFile, nodes[1].Kind)
	assert.Equal(t, "src/parser.go", nodes[1].File.Path)

	// Unfold the first file: two hunks plus their lines appear.
	require.NoError(t, tree.ToggleFold(Path{0, 0}))
	nodes, _ = tree.Flatten()
	file := tree.NodeAt(Path{0, 0})
	require.True(t, file.Unfolded)
	require.Len(t, file.Children, 2)
	assert.Greater(t, len(nodes), 5)

	// Fold the change back up: the flattened view is exactly the
	// pre-unfold one, and the children stay loaded.
	require.NoError(t, tree.ToggleFold(Path{0}))
	nodes, paths := tree.Flatten()
	require.Equal(t, foldedNodes, nodes)
	require.Equal(t, foldedPaths, paths)
	assert.True(t, file.Loaded)
}

func TestToggleFoldMemoizes(t *testing.T) {
	src := newTestSource()
	tree := NewTree(src)
	require.NoError(t, tree.Load("::@"))

	require.NoError(t, tree.ToggleFold(Path{0}))
	require.NoError(t, tree.ToggleFold(Path{0}))

	// A second unfold must not refetch.
	src.summaryErr = errors.New("jj exploded")
	require.NoError(t, tree.ToggleFold(Path{0}))
}

func TestToggleFoldErrorLeavesStateUntouched(t *testing.T) {
	src := newTestSource()
	src.summaryErr = errors.New("jj exploded")
	tree := NewTree(src)
	require.NoError(t, tree.Load("::@"))

	err := tree.ToggleFold(Path{0})
	require.Error(t, err)

	node := tree.NodeAt(Path{0})
	assert.False(t, node.Unfolded)
	assert.False(t, node.Loaded)

	// Once the source recovers the unfold succeeds.
	src.summaryErr = nil
	src.summaries = newTestSource().summaries
	require.NoError(t, tree.ToggleFold(Path{0}))
	assert.True(t, node.Unfolded)
}

func TestToggleFoldParseErrorLeavesStateUntouched(t *testing.T) {
	src := newTestSource()
	src.summaries["qpvuntsmwlqt"] = "?? not a summary line"
	tree := NewTree(src)
	require.NoError(t, tree.Load("::@"))

	err := tree.ToggleFold(Path{0})
	var perr *ParseError
	require.ErrorAs(t, err, &perr)

	node := tree.NodeAt(Path{0})
	assert.False(t, node.Unfolded)
	assert.False(t, node.Loaded)
}

func TestToggleFoldOnInfoIsNoop(t *testing.T) {
	tree := loadTestTree(t)
	require.NoError(t, tree.ToggleFold(Path{2}))
	assert.False(t, tree.NodeAt(Path{2}).Unfolded)
}

func TestToggleFoldOnLeavesIsNoop(t *testing.T) {
	tree := loadTestTree(t)
	require.NoError(t, tree.ToggleFold(Path{0}))
	require.NoError(t, tree.ToggleFold(Path{0, 0}))

	hunk := tree.NodeAt(Path{0, 0, 0})
	require.Equal(t, KindHunk, hunk.Kind)
	require.True(t, hunk.Unfolded)

	// Hunk lines have no fold state of their own.
	require.NoError(t, tree.ToggleFold(Path{0, 0, 0, 1}))
	assert.True(t, hunk.Unfolded)

	require.NoError(t, tree.ToggleFold(Path{0, 0, 0}))
	assert.False(t, hunk.Unfolded)
}

func TestWorkingCopyPath(t *testing.T) {
	tree := loadTestTree(t)
	assert.Equal(t, Path{0}, tree.WorkingCopyPath())
}

func TestChangeAtAndFileAt(t *testing.T) {
	tree := loadTestTree(t)
	require.NoError(t, tree.ToggleFold(Path{0}))
	require.NoError(t, tree.ToggleFold(Path{0, 0}))

	ch := tree.ChangeAt(Path{0, 0, 1})
	require.NotNil(t, ch)
	assert.Equal(t, "qpvuntsmwlqt", ch.ChangeID)

	f := tree.FileAt(Path{0, 0, 1, 2})
	require.NotNil(t, f)
	assert.Equal(t, "src/parser.go", f.Path)

	assert.Nil(t, tree.ChangeAt(Path{2}), "info nodes belong to no change")
	assert.Nil(t, tree.FileAt(Path{0}))
}

func TestSiblingNavigation(t *testing.T) {
	tree := loadTestTree(t)
	require.NoError(t, tree.ToggleFold(Path{0}))

	nodes, paths := tree.Flatten()
	require.Len(t, nodes, 5)

	// File to file.
	assert.Equal(t, 2, tree.NextSiblingIndex(paths[1]))
	assert.Equal(t, 1, tree.PrevSiblingIndex(paths[2]))

	// Last file falls through to the next change.
	assert.Equal(t, 3, tree.NextSiblingIndex(paths[2]))

	// Top-level moves clamp at the edges.
	assert.Equal(t, 0, tree.PrevSiblingIndex(Path{0}))
	assert.Equal(t, 4, tree.NextSiblingIndex(paths[4]))

	// Parent of a file is its change; a change is its own parent.
	assert.Equal(t, 0, tree.ParentIndex(paths[1]))
	assert.Equal(t, 0, tree.ParentIndex(Path{0}))
}

func TestNavigationStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := NewTree(newTestSource())
		require.NoError(t, tree.Load("::@"))

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		idx := 0
		for range steps {
			nodes, paths := tree.Flatten()
			require.Less(t, idx, len(nodes))
			p := paths[idx]

			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				idx = tree.NextSiblingIndex(p)
			case 1:
				idx = tree.PrevSiblingIndex(p)
			case 2:
				idx = tree.ParentIndex(p)
			case 3:
				if err := tree.ToggleFold(p); err == nil {
					nodes, _ = tree.Flatten()
					if idx >= len(nodes) {
						idx = len(nodes) - 1
					}
				}
			}

			nodes, _ = tree.Flatten()
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, len(nodes))
		}
	})
}
