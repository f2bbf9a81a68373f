package logtree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	workingCopyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	conflictStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	symbolStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	hunkHeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	foldStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyles = map[Status]lipgloss.Style{
		StatusModified: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		StatusAdded:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		StatusDeleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		StatusRenamed:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		StatusCopied:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
)

// Item is one visible node rendered to its display lines. Changes take two
// lines, everything else one.
type Item struct {
	Lines []string
}

func (it Item) Height() int {
	return len(it.Lines)
}

// Render produces the display lines for a node.
func (n *Node) Render() Item {
	switch n.Kind {
	case KindChange:
		return renderChange(n)
	case KindInfo:
		return Item{Lines: []string{n.Text}}
	case KindFile:
		return renderFile(n)
	case KindHunk:
		return renderHunk(n)
	case KindLine:
		return Item{Lines: []string{n.Indent + "  " + boldDiffLine(n.Text)}}
	default:
		return Item{Lines: []string{""}}
	}
}

// foldSymbol marks a foldable node's state in the gutter.
func foldSymbol(unfolded bool) string {
	if unfolded {
		return foldStyle.Render("▾")
	}
	return foldStyle.Render("▸")
}

func renderChange(n *Node) Item {
	ch := n.Change
	symbol := symbolStyle.Render(ch.Symbol)
	if ch.WorkingCopy {
		symbol = workingCopyStyle.Render(ch.Symbol)
	}
	if ch.Conflict {
		symbol = conflictStyle.Render(ch.Symbol)
	}

	line1 := ch.Line1Graph + symbol + ch.Line1GraphTail + " " + foldSymbol(n.Unfolded) + " " + ch.PrettyLine1

	lines := []string{line1}
	if ch.PrettyLine2 != "" {
		lines = append(lines, ch.Line2Graph+ch.PrettyLine2)
	}
	return Item{Lines: lines}
}

func renderFile(n *Node) Item {
	f := n.File
	style, ok := statusStyles[f.Status]
	if !ok {
		style = lipgloss.NewStyle()
	}
	line := n.Indent + foldSymbol(n.Unfolded) + " " + style.Render(f.Status.String()+" "+f.Description)
	return Item{Lines: []string{line}}
}

func renderHunk(n *Node) Item {
	h := n.Hunk
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount(), h.NewStart, h.NewCount())
	return Item{Lines: []string{n.Indent + foldSymbol(n.Unfolded) + " " + hunkHeaderStyle.Render(header)}}
}

// boldDiffLine bolds added and removed diff lines. jj's own coloring resets
// styling mid-line, so every reset is rewritten to re-enable bold for the
// remainder.
func boldDiffLine(line string) string {
	clean := ansi.Strip(line)
	m := hunkLineNumsRegex.FindStringIndex(clean)
	if m == nil {
		return line
	}
	rest := strings.TrimLeft(clean[m[1]:], " ")
	if !strings.HasPrefix(rest, "+") && !strings.HasPrefix(rest, "-") {
		return line
	}

	bolded := strings.ReplaceAll(line, "\x1b[0m", "\x1b[0;1m")
	return "\x1b[1m" + bolded + "\x1b[0m"
}
