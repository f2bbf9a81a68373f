package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/dlukegordon/majjit/internal/cmdtree"
	"github.com/dlukegordon/majjit/internal/ui/styles"
)

const (
	headerLines = 1
	statusLines = 1
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteByte('\n')

	vh := m.viewportHeight()
	rows := m.visibleRows(vh)
	for _, row := range rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	for i := len(rows); i < vh; i++ {
		b.WriteByte('\n')
	}

	for _, line := range m.bottomPanelLines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(m.statusView())
	return b.String()
}

func (m *Model) headerView() string {
	title := styles.Header.Render("majjit")
	revset := m.cfg.Revisions
	if revset == "" {
		revset = "(default revset)"
	}
	header := title + "  " + styles.StatusBar.Render(revset)
	if m.runner.IgnoreImmutable() {
		header += "  " + styles.HeaderNote.Render("--ignore-immutable")
	}
	return ansi.Truncate(header, m.width, "…")
}

// visibleRows renders the slice of document rows the viewport shows,
// cutting the first and last item at the viewport edges when they straddle
// them.
func (m *Model) visibleRows(vh int) []string {
	if len(m.nodes) == 0 {
		return nil
	}

	rows := make([]string, 0, vh)
	i := m.itemAtRow(m.offset)
	skip := m.offset - m.rowStarts[i]

	for ; i < len(m.items) && len(rows) < vh; i++ {
		for li, line := range m.items[i].Lines {
			if li < skip {
				continue
			}
			if len(rows) == vh {
				break
			}
			if i == m.selected {
				line = m.highlightRow(line)
			}
			rows = append(rows, ansi.Truncate(line, m.width, "…"))
		}
		skip = 0
	}
	return rows
}

// highlightRow paints the selection background across a full row. jj output
// resets styling mid-line, so resets are rewritten to re-apply the
// background for the rest of the row.
func (m *Model) highlightRow(line string) string {
	bg := "\x1b[48;5;" + string(styles.SelectedBg) + "m"
	if pad := m.width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bg)
	return bg + line + "\x1b[0m"
}

func (m *Model) statusView() string {
	left := styles.StatusBar.Render(m.statusLine())
	if len(m.pending) > 0 {
		left += "  " + styles.HelpKeys.Render(strings.Join(m.pending, " ")+" -")
	}
	return ansi.Truncate(left, m.width, "…")
}

// bottomPanelLines stacks the pending-keys panel and the message panel
// above the status bar, each under its own separator.
func (m *Model) bottomPanelLines() []string {
	var lines []string

	if len(m.pending) > 0 {
		match := m.trie.Feed(m.pending)
		if match.Kind == cmdtree.PartialMatch {
			lines = append(lines, m.separator())
			for _, l := range cmdtree.FormatLines(match.Pending) {
				lines = append(lines, ansi.Truncate(l, m.width, "…"))
			}
		}
	}

	if !m.info.empty() {
		lines = append(lines, m.separator())
		// jj error messages run long; wrap them instead of cutting.
		for _, l := range m.info.render() {
			lines = append(lines, strings.Split(wordwrap.String(l, m.width), "\n")...)
		}
	}
	return lines
}

func (m *Model) separator() string {
	return styles.StatusBar.Render(strings.Repeat("─", m.width))
}

func (m *Model) helpView() string {
	var b strings.Builder
	b.WriteString(styles.Header.Render("Keys") + "\n\n")

	b.WriteString(styles.HelpGroup.Render("Navigate") + "\n")
	nav := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.PrevSibling, m.keys.NextSibling,
		m.keys.Parent, m.keys.WorkingCopy, m.keys.ToggleFold, m.keys.Show,
		m.keys.PageUp, m.keys.PageDown,
	}
	for _, kb := range nav {
		b.WriteString(" " + styles.HelpKeys.Render(runewidth.FillRight(kb.Help().Key, 8)) + " " + kb.Help().Desc + "\n")
	}

	b.WriteString("\n" + styles.HelpGroup.Render("App") + "\n")
	for _, kb := range []key.Binding{m.keys.Refresh, m.keys.Immutable, m.keys.Help, m.keys.Quit} {
		b.WriteString(" " + styles.HelpKeys.Render(runewidth.FillRight(kb.Help().Key, 8)) + " " + kb.Help().Desc + "\n")
	}

	b.WriteString("\n")
	for _, l := range cmdtree.FormatLines(m.trie.Bindings()) {
		b.WriteString(l + "\n")
	}

	b.WriteString("\n" + styles.StatusBar.Render("press ? or esc to close"))
	return b.String()
}
