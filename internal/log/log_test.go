package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	defer cleanup()

	Debug(CatTree, "loaded", "roots", 3)
	Warn(CatWatcher, "watch error", "err", "boom")

	SetMinLevel(LevelWarn)
	Debug(CatTree, "filtered out")
	Error(CatJJ, "failed", "odd")

	SetEnabled(false)
	Error(CatJJ, "dropped")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "[DEBUG] [tree] loaded roots=3")
	assert.Contains(t, out, "[WARN] [watcher] watch error err=boom")
	assert.NotContains(t, out, "filtered out")
	assert.Contains(t, out, "failed odd=<missing>")
	assert.NotContains(t, out, "dropped")
}
