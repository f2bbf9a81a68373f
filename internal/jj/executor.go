package jj

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dlukegordon/majjit/internal/log"
)

// logNodeTemplate overrides jj's log node symbols so the graph column is
// stable regardless of user config: @ for the working copy, ┴ for root,
// ● for immutable, × for conflicts, ○ otherwise.
const logNodeTemplate = `
coalesce(
  if(!self, label("elided", "~")),
  label(
    separate(" ",
      if(current_working_copy, "working_copy"),
      if(immutable, "immutable"),
      if(conflict, "conflict"),
    ),
    coalesce(
      if(current_working_copy, "@"),
      if(root, "┴"),
      if(immutable, "●"),
      if(conflict, "×"),
      "○",
    )
  )
)`

// Compile-time check that Executor implements Runner.
var _ Runner = (*Executor)(nil)

// Executor implements Runner by executing the real jj binary.
type Executor struct {
	repository      string
	ignoreImmutable bool
}

// NewExecutor creates an Executor rooted at the given repository path.
func NewExecutor(repository string) *Executor {
	return &Executor{repository: repository}
}

// EnsureValidRepo checks that the repository path is inside a jj workspace
// and returns its workspace root. The jj error message is surfaced directly
// since it explains what is wrong ("no jj repo in ..." etc.).
func EnsureValidRepo(repository string) (string, error) {
	args := []string{"workspace", "root"}
	if repository != "" {
		args = append([]string{"--repository", repository}, args...)
	}
	cmd := exec.Command("jj", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return "", fmt.Errorf("invoking jj: %w", err)
		}
		msg := strings.TrimSpace(stderr.String())
		msg = strings.TrimPrefix(msg, "Error: ")
		return "", fmt.Errorf("%w: %s", ErrNotARepo, msg)
	}

	root := strings.TrimSpace(stdout.String())
	if root == "" {
		root = repository
	}
	return root, nil
}

// OpHeadsDir returns the directory jj rewrites on every operation,
// used by the repo watcher to detect out-of-band changes.
func OpHeadsDir(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, ".jj", "repo", "op_heads", "heads")
}

// baseArgs returns the argument prefix common to every jj invocation:
// forced color, the log node template override, underline suppression for
// diff tokens, and the repository flag.
func (e *Executor) baseArgs() []string {
	args := []string{
		"--color", "always",
		"--config", "colors.'diff added token'={underline=false}",
		"--config", "colors.'diff removed token'={underline=false}",
		"--config", "colors.'diff token'={underline=false}",
		"--config", "templates.log_node=" + logNodeTemplate,
	}
	if e.repository != "" {
		args = append(args, "--repository", e.repository)
	}
	if e.ignoreImmutable {
		args = append(args, "--ignore-immutable")
	}
	return args
}

// run executes jj with the given arguments and returns stdout.
// A non-zero exit becomes a *CommandError; failure to invoke the binary at
// all is returned as a plain wrapped error.
func (e *Executor) run(args ...string) (string, error) {
	full := append(e.baseArgs(), args...)
	cmd := exec.Command("jj", full...) //nolint:gosec // G204: args come from controlled sources

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug(log.CatJJ, "running jj", "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return "", fmt.Errorf("invoking jj %s: %w", strings.Join(args, " "), err)
		}
		cmdErr := &CommandError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
		log.ErrorErr(log.CatJJ, "jj command failed", cmdErr)
		return "", cmdErr
	}

	return stdout.String(), nil
}

// interactive builds a jj command wired for tea.ExecProcess: it inherits
// the terminal so jj can open editors and pagers.
func (e *Executor) interactive(args ...string) *exec.Cmd {
	full := append(e.baseArgs(), args...)
	return exec.Command("jj", full...) //nolint:gosec // G204: args come from controlled sources
}

// Log returns the graph log for the given revset. An empty revset leaves
// the choice to jj's configured default.
func (e *Executor) Log(revset string) (string, error) {
	args := []string{"log"}
	if revset != "" {
		args = append(args, "--revisions", revset)
	}
	return e.run(args...)
}

// DiffSummary returns the file-change summary for a change.
func (e *Executor) DiffSummary(changeID string) (string, error) {
	return e.run("diff", "--revisions", changeID, "--summary")
}

// DiffFile returns the diff of one file within a change.
func (e *Executor) DiffFile(changeID, path string) (string, error) {
	return e.run("diff", "--revisions", changeID, path)
}

// New creates a new change on top of changeID.
func (e *Executor) New(changeID string) error {
	_, err := e.run("new", changeID)
	return err
}

// Abandon abandons the given change.
func (e *Executor) Abandon(changeID string) error {
	_, err := e.run("abandon", changeID)
	return err
}

// Undo undoes the last jj operation.
func (e *Executor) Undo() error {
	_, err := e.run("undo")
	return err
}

// Edit makes the given change the working copy.
func (e *Executor) Edit(changeID string) error {
	_, err := e.run("edit", changeID)
	return err
}

// Fetch runs jj git fetch.
func (e *Executor) Fetch() error {
	_, err := e.run("git", "fetch")
	return err
}

// Push runs jj git push.
func (e *Executor) Push() error {
	_, err := e.run("git", "push")
	return err
}

// BookmarkSet moves the named bookmark to the given change.
func (e *Executor) BookmarkSet(name, changeID string) error {
	_, err := e.run("bookmark", "set", name, "--revision", changeID)
	return err
}

// Describe opens the description editor for a change.
func (e *Executor) Describe(changeID string) *exec.Cmd {
	return e.interactive("describe", changeID)
}

// Commit opens the commit editor for the working copy.
func (e *Executor) Commit() *exec.Cmd {
	return e.interactive("commit")
}

// Squash interactively squashes the given change into its parent.
func (e *Executor) Squash(changeID string) *exec.Cmd {
	return e.interactive("squash", "--revision", changeID)
}

// Show pages the full diff of a change.
func (e *Executor) Show(changeID string) *exec.Cmd {
	return e.interactive("show", changeID)
}

// SetIgnoreImmutable toggles --ignore-immutable on subsequent commands.
func (e *Executor) SetIgnoreImmutable(on bool) {
	e.ignoreImmutable = on
}

// IgnoreImmutable reports the current --ignore-immutable state.
func (e *Executor) IgnoreImmutable() bool {
	return e.ignoreImmutable
}
