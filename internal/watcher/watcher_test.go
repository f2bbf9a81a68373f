package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "head"), []byte("x"), 0o644))

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("no event after write")
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)
	defer w.Close()

	for i := range 5 {
		name := filepath.Join(dir, "head")
		require.NoError(t, os.WriteFile(name, []byte{byte(i)}, 0o644))
	}

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("no event after burst")
	}

	// The burst collapses into one signal.
	select {
	case <-w.Events():
		t.Fatal("burst produced a second signal")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
