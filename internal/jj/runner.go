// Package jj shells out to the jj (Jujutsu) binary for log queries and
// change operations.
package jj

import "os/exec"

// Runner defines the interface for jj operations.
// This abstraction allows for easy testing with fake implementations.
type Runner interface {
	// Log returns the colored graph log for the given revset, one or two
	// physical lines per change.
	Log(revset string) (string, error)
	// DiffSummary returns the per-file change summary for a change:
	// one "status-letter path" line per modified path.
	DiffSummary(changeID string) (string, error)
	// DiffFile returns the colored diff of a single file within a change,
	// hunks separated by "..." lines.
	DiffFile(changeID, path string) (string, error)

	// Change operations. Each runs jj to completion and returns a
	// *CommandError when jj reports failure.
	New(changeID string) error
	Abandon(changeID string) error
	Undo() error
	Edit(changeID string) error
	Fetch() error
	Push() error
	BookmarkSet(name, changeID string) error

	// Interactive operations hand the terminal to jj (editor, pager).
	// The returned command is run via tea.ExecProcess; viewport state is
	// frozen while it owns the terminal.
	Describe(changeID string) *exec.Cmd
	Commit() *exec.Cmd
	Squash(changeID string) *exec.Cmd
	Show(changeID string) *exec.Cmd

	// SetIgnoreImmutable toggles passing --ignore-immutable to mutating
	// commands.
	SetIgnoreImmutable(on bool)
	// IgnoreImmutable reports the current toggle state.
	IgnoreImmutable() bool
}
