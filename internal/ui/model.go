// Package ui implements the bubbletea program: the foldable log tree view,
// scroll and selection handling, the command trie dispatcher, and the
// message panel.
package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dlukegordon/majjit/internal/cmdtree"
	"github.com/dlukegordon/majjit/internal/config"
	"github.com/dlukegordon/majjit/internal/jj"
	"github.com/dlukegordon/majjit/internal/keys"
	"github.com/dlukegordon/majjit/internal/log"
	"github.com/dlukegordon/majjit/internal/logtree"
)

type Model struct {
	runner  jj.Runner
	tree    *logtree.Tree
	cfg     config.Config
	keys    keys.KeyMap
	trie    *cmdtree.Trie[Action]
	refresh <-chan struct{}

	// Flattened view of the tree, rebuilt after every structural change.
	// rowStarts[i] is the first display row of item i.
	nodes     []*logtree.Node
	paths     []logtree.Path
	items     []logtree.Item
	rowStarts []int
	totalRows int

	selected int // flat index of the selected item
	offset   int // first visible display row

	width  int
	height int

	pending  []string // keys fed into the command trie so far
	info     infoPanel
	showHelp bool
	quitting bool
	fatalErr error
}

// New builds the model and performs the initial load: the log for the
// configured revset, with the working-copy change unfolded and selected.
func New(runner jj.Runner, cfg config.Config, refresh <-chan struct{}) (*Model, error) {
	trie, err := newCommandTrie()
	if err != nil {
		return nil, err
	}

	m := &Model{
		runner:  runner,
		tree:    logtree.NewTree(runner),
		cfg:     cfg,
		keys:    keys.Default,
		trie:    trie,
		refresh: refresh,
	}

	if err := m.tree.Load(cfg.Revisions); err != nil {
		return nil, err
	}
	if p := m.tree.WorkingCopyPath(); p != nil {
		if err := m.tree.Unfold(p); err != nil {
			if cmd := m.reportError(err); cmd != nil {
				return nil, err
			}
		}
	}
	m.reflatten()
	m.selectWorkingCopy()

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return m.waitRefresh()
}

type autoRefreshMsg struct{}

// waitRefresh parks on the watcher channel and turns its next signal into
// a message. Re-issued after every delivery.
func (m *Model) waitRefresh() tea.Cmd {
	if m.refresh == nil {
		return nil
	}
	ch := m.refresh
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return autoRefreshMsg{}
	}
}

// reflatten rebuilds the flat item list and the row index from the tree.
// Flat indexes and paths are only valid until the next structural change.
func (m *Model) reflatten() {
	m.nodes, m.paths = m.tree.Flatten()

	m.items = make([]logtree.Item, len(m.nodes))
	m.rowStarts = make([]int, len(m.nodes))
	row := 0
	for i, n := range m.nodes {
		m.items[i] = n.Render()
		m.rowStarts[i] = row
		row += m.items[i].Height()
	}
	m.totalRows = row

	if m.selected > len(m.nodes)-1 {
		m.selected = len(m.nodes) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.clampOffset()
}

// reload refreshes the log from jj, carrying over which changes were
// unfolded and re-resolving the selection by change id. Fold state below
// the change level starts over.
func (m *Model) reload() tea.Cmd {
	unfolded := map[string]bool{}
	for _, n := range m.nodes {
		if n.Kind == logtree.KindChange && n.Unfolded {
			unfolded[n.Change.ChangeID] = true
		}
	}
	var selectedID string
	if ch := m.selectedChange(); ch != nil {
		selectedID = ch.ChangeID
	}

	if err := m.tree.Load(m.cfg.Revisions); err != nil {
		return m.reportError(err)
	}
	for i := 0; i < m.tree.Len(); i++ {
		p := logtree.Path{i}
		n := m.tree.NodeAt(p)
		if n.Kind == logtree.KindChange && unfolded[n.Change.ChangeID] {
			if err := m.tree.Unfold(p); err != nil {
				if cmd := m.reportError(err); cmd != nil {
					return cmd
				}
			}
		}
	}
	m.reflatten()

	if selectedID != "" {
		for i, n := range m.nodes {
			if n.Kind == logtree.KindChange && n.Change.ChangeID == selectedID {
				m.selected = i
				break
			}
		}
	}
	m.ensureVisible()
	log.Debug(log.CatUI, "reloaded", "items", len(m.nodes))
	return nil
}

// selectedChange is the change the selection currently sits in, nil on an
// info line.
func (m *Model) selectedChange() *logtree.Change {
	if len(m.paths) == 0 {
		return nil
	}
	return m.tree.ChangeAt(m.paths[m.selected])
}

func (m *Model) selectedPath() logtree.Path {
	if len(m.paths) == 0 {
		return nil
	}
	return m.paths[m.selected]
}

func (m *Model) selectWorkingCopy() {
	p := m.tree.WorkingCopyPath()
	if p == nil {
		return
	}
	if n := m.tree.NodeAt(p); n != nil {
		m.selected = n.FlatIndex()
		m.ensureVisible()
	}
}

// reportError routes a failure. jj-reported failures and parse failures
// are recoverable and land in the message panel; anything else means jj
// itself could not be run, so the session ends and Err carries the cause
// out through the program exit path.
func (m *Model) reportError(err error) tea.Cmd {
	if cmdErr, ok := jj.IsCommandError(err); ok {
		m.info.add(cmdErr.Message(), true)
		return nil
	}
	var parseErr *logtree.ParseError
	if errors.As(err, &parseErr) {
		m.info.add(err.Error(), true)
		return nil
	}
	m.fatalErr = err
	m.quitting = true
	return tea.Quit
}

// Err is the invocation failure that ended the session, if any.
func (m *Model) Err() error {
	return m.fatalErr
}

func (m *Model) setSelected(idx int) {
	if idx < 0 || idx > len(m.nodes)-1 {
		return
	}
	m.selected = idx
	m.ensureVisible()
}

func (m *Model) statusLine() string {
	ch := m.selectedChange()
	if ch == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", ch.ChangeID, ch.CommitID)
}
