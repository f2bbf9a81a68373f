package logtree

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFoldIndicators(t *testing.T) {
	tree := loadTestTree(t)

	change := tree.NodeAt(Path{0})
	assert.Contains(t, ansi.Strip(change.Render().Lines[0]), "▸")

	require.NoError(t, tree.ToggleFold(Path{0}))
	assert.Contains(t, ansi.Strip(change.Render().Lines[0]), "▾")

	file := tree.NodeAt(Path{0, 0})
	assert.Contains(t, ansi.Strip(file.Render().Lines[0]), "▸")

	require.NoError(t, tree.ToggleFold(Path{0, 0}))
	assert.Contains(t, ansi.Strip(file.Render().Lines[0]), "▾")

	hunk := tree.NodeAt(Path{0, 0, 0})
	assert.Contains(t, ansi.Strip(hunk.Render().Lines[0]), "▾", "hunks start unfolded")

	// Leaves carry no indicator.
	for _, p := range []Path{{0, 0, 0, 0}, {2}} {
		clean := ansi.Strip(tree.NodeAt(p).Render().Lines[0])
		assert.NotContains(t, clean, "▸")
		assert.NotContains(t, clean, "▾")
	}
}
