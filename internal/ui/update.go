package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dlukegordon/majjit/internal/cmdtree"
	"github.com/dlukegordon/majjit/internal/log"
)

// execDoneMsg arrives when an interactive jj command has given the
// terminal back.
type execDoneMsg struct {
	err error
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case autoRefreshMsg:
		log.Debug(log.CatUI, "repo changed, refreshing")
		return m, tea.Batch(m.reload(), m.waitRefresh())

	case execDoneMsg:
		if msg.err != nil {
			// Exit errors stay recoverable: jj ran and wrote its
			// diagnostics to the terminal before handing it back.
			var exitErr *exec.ExitError
			if errors.As(msg.err, &exitErr) {
				m.info.add(fmt.Sprintf("jj exited with code %d", exitErr.ExitCode()), true)
				return m, nil
			}
			return m, m.reportError(msg.err)
		}
		return m, m.reload()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		if len(m.pending) > 0 {
			m.pending = nil
		} else {
			m.info.clear()
		}
		return m, nil
	}

	// A started command sequence captures everything except escape/quit.
	if len(m.pending) > 0 {
		return m, m.feedKey(msg.String())
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.setSelected(m.selected - 1)
	case key.Matches(msg, m.keys.Down):
		m.setSelected(m.selected + 1)
	case key.Matches(msg, m.keys.PrevSibling):
		m.setSelected(m.tree.PrevSiblingIndex(m.selectedPath()))
	case key.Matches(msg, m.keys.NextSibling):
		m.setSelected(m.tree.NextSiblingIndex(m.selectedPath()))
	case key.Matches(msg, m.keys.Parent):
		m.setSelected(m.tree.ParentIndex(m.selectedPath()))
	case key.Matches(msg, m.keys.WorkingCopy):
		m.selectWorkingCopy()
	case key.Matches(msg, m.keys.ToggleFold):
		return m, m.toggleFold()
	case key.Matches(msg, m.keys.Show):
		return m, m.execInteractive(ActionNone, true)
	case key.Matches(msg, m.keys.PageUp):
		m.page(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.page(1)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()
	case key.Matches(msg, m.keys.Immutable):
		on := !m.runner.IgnoreImmutable()
		m.runner.SetIgnoreImmutable(on)
		if on {
			m.info.add("--ignore-immutable on", false)
		} else {
			m.info.add("--ignore-immutable off", false)
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	default:
		return m, m.feedKey(msg.String())
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollRows(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollRows(1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.clickRow(msg.Y - headerLines)
	case msg.Button == tea.MouseButtonRight && msg.Action == tea.MouseActionPress:
		m.clickRow(msg.Y - headerLines)
		return m, m.toggleFold()
	}
	return m, nil
}

// feedKey extends the pending command sequence by one key and resolves it
// against the trie.
func (m *Model) feedKey(k string) tea.Cmd {
	m.pending = append(m.pending, k)
	match := m.trie.Feed(m.pending)

	switch match.Kind {
	case cmdtree.NoMatch:
		m.info.add("unbound keys: "+strings.Join(m.pending, " "), true)
		m.pending = nil
		return nil
	case cmdtree.PartialMatch:
		return nil
	default:
		m.pending = nil
		return m.dispatch(match.Action)
	}
}

// dispatch runs a resolved action. Interactive actions suspend the TUI via
// ExecProcess; everything else runs jj synchronously and reloads.
func (m *Model) dispatch(action Action) tea.Cmd {
	if action.interactive() {
		return m.execInteractive(action, false)
	}

	ch := m.selectedChange()
	needsChange := action != ActionUndo && action != ActionGitFetch && action != ActionGitPush
	if needsChange && ch == nil {
		m.info.add("no change selected", true)
		return nil
	}

	var err error
	switch action {
	case ActionNew:
		err = m.runner.New(ch.ChangeID)
	case ActionAbandon:
		err = m.runner.Abandon(ch.ChangeID)
	case ActionEdit:
		err = m.runner.Edit(ch.ChangeID)
	case ActionUndo:
		err = m.runner.Undo()
	case ActionGitFetch:
		err = m.runner.Fetch()
	case ActionGitPush:
		err = m.runner.Push()
	case ActionBookmarkSetMaster:
		err = m.runner.BookmarkSet("master", ch.ChangeID)
	}

	if err != nil {
		return m.reportError(err)
	}
	return m.reload()
}

// execInteractive builds the jj command for an action that takes over the
// terminal. show is the enter-key path rather than a trie action.
func (m *Model) execInteractive(action Action, show bool) tea.Cmd {
	ch := m.selectedChange()
	if ch == nil && action != ActionCommit {
		m.info.add("no change selected", true)
		return nil
	}

	var cmd *exec.Cmd
	switch {
	case show:
		cmd = m.runner.Show(ch.ChangeID)
	case action == ActionDescribe:
		cmd = m.runner.Describe(ch.ChangeID)
	case action == ActionCommit:
		cmd = m.runner.Commit()
	case action == ActionSquash:
		cmd = m.runner.Squash(ch.ChangeID)
	default:
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return execDoneMsg{err: err}
	})
}

// toggleFold folds or unfolds the selected node and keeps it selected
// through the reflatten. On a recoverable failure the message panel gets
// the error and the tree is untouched.
func (m *Model) toggleFold() tea.Cmd {
	p := m.selectedPath()
	if p == nil {
		return nil
	}

	if err := m.tree.ToggleFold(p); err != nil {
		return m.reportError(err)
	}
	m.reflatten()
	if n := m.tree.NodeAt(p); n != nil {
		m.setSelected(n.FlatIndex())
	}
	return nil
}
