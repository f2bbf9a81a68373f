package ui

import (
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dlukegordon/majjit/internal/config"
	"github.com/dlukegordon/majjit/internal/jj"
)

// fakeRunner serves a synthetic log of n changes and records every
// mutating call.
type fakeRunner struct {
	n               int
	summaries       map[string]string
	diffs           map[string]string
	calls           []string
	failNext        error
	summaryErr      error
	ignoreImmutable bool
}

var _ jj.Runner = (*fakeRunner)(nil)

func changeID(i int) string {
	return strings.Repeat(string(rune('k'+i%16)), 8)
}

func (f *fakeRunner) Log(revset string) (string, error) {
	var b strings.Builder
	for i := 0; i < f.n; i++ {
		symbol := "○"
		if i == 0 {
			symbol = "@"
		}
		fmt.Fprintf(&b, "%s  %s user@example.com 2026-08-29 11:22:33 %08x\n│  change %d\n",
			symbol, changeID(i), 0xabc+i, i)
	}
	return b.String(), nil
}

func (f *fakeRunner) DiffSummary(changeID string) (string, error) {
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return f.summaries[changeID], nil
}

func (f *fakeRunner) DiffFile(changeID, path string) (string, error) {
	return f.diffs[changeID+":"+path], nil
}

func (f *fakeRunner) mutate(name string) error {
	f.calls = append(f.calls, name)
	if err := f.failNext; err != nil {
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakeRunner) New(changeID string) error     { return f.mutate("new " + changeID) }
func (f *fakeRunner) Abandon(changeID string) error { return f.mutate("abandon " + changeID) }
func (f *fakeRunner) Undo() error                   { return f.mutate("undo") }
func (f *fakeRunner) Edit(changeID string) error    { return f.mutate("edit " + changeID) }
func (f *fakeRunner) Fetch() error                  { return f.mutate("fetch") }
func (f *fakeRunner) Push() error                   { return f.mutate("push") }

func (f *fakeRunner) BookmarkSet(name, changeID string) error {
	return f.mutate("bookmark set " + name + " " + changeID)
}

func (f *fakeRunner) Describe(changeID string) *exec.Cmd { return exec.Command("true") }
func (f *fakeRunner) Commit() *exec.Cmd                  { return exec.Command("true") }
func (f *fakeRunner) Squash(changeID string) *exec.Cmd   { return exec.Command("true") }
func (f *fakeRunner) Show(changeID string) *exec.Cmd     { return exec.Command("true") }

func (f *fakeRunner) SetIgnoreImmutable(on bool) { f.ignoreImmutable = on }
func (f *fakeRunner) IgnoreImmutable() bool      { return f.ignoreImmutable }

func newTestModel(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, n int) (*Model, *fakeRunner) {
	t.Helper()
	runner := &fakeRunner{
		n: n,
		summaries: map[string]string{
			changeID(0): "M src/parser.go\nA docs/new.md",
		},
		diffs: map[string]string{
			changeID(0) + ":src/parser.go": "src/parser.go:\n    12  12: context\n        13: +added",
			changeID(0) + ":docs/new.md":   "docs/new.md:\n         1: +hello",
		},
	}

	cfg := config.Default()
	m, err := New(runner, cfg, nil)
	if err != nil {
		t.Fatalf("building model: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	return m, runner
}

func pressKey(m *Model, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	return cmd
}
