package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRepoLocalConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	dir := filepath.Join(root, ".majjit")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "revisions: \"::@\"\nui:\n  scroll_padding: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "::@", cfg.Revisions)
	assert.Equal(t, 5, cfg.UI.ScrollPadding)
	assert.True(t, cfg.AutoRefresh, "unset keys keep their defaults")
}

func TestLoadClampsNegativePadding(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	dir := filepath.Join(root, ".majjit")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ui:\n  scroll_padding: -2\n"), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.UI.ScrollPadding)
}

func TestWriteDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir := filepath.Join(t.TempDir(), ".majjit")

	path, err := WriteDefault(dir)
	require.NoError(t, err)
	require.FileExists(t, path)

	cfg, err := Load(filepath.Dir(dir))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = WriteDefault(dir)
	require.Error(t, err, "must not clobber an existing config")
}
