package logtree

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Regex patterns for jj output parsing. All matching happens against
// ANSI-stripped text except changeLinesRegex, which extracts the still
// colored header lines for display.
var (
	// A log line that looks like a change header: change id (reverse-hex
	// alphabet) and commit id somewhere on the line.
	changeLineRegex = regexp.MustCompile(`^.+([k-z]{8})\s+.*\s+([a-f0-9]{8}).*$`)

	// Full two-line change header: graph chars, node symbol, more graph
	// chars, change id, commit id, optional conflict marker, second-line
	// graph chars, optional (empty) marker, description.
	changeFieldsRegex = regexp.MustCompile(`^([ │]*)(.)([ │]*)  ([k-z]{8,})\s+.*\s+([a-f0-9]{8,})\s*(\S*)\s*\n([ │├─╯╮]*)(\(empty\))?\s*(.*)`)

	// The colored header lines with the graph column stripped off.
	changeLinesRegex = regexp.MustCompile(`^[ │]*\S+[ │]*(.*)\n[ │├─╯╮]*(.*)`)

	// One line of jj diff --summary output.
	fileLineRegex = regexp.MustCompile(`^([MADRC])\s+(.+)$`)

	// Rename/copy path notation: prefix{old => new}suffix.
	renameRegex = regexp.MustCompile(`^(.*)\{(.+?)\s*=>\s*(.+?)\}(.*)$`)

	// Line-number gutter of a hunk line: optional before and after numbers
	// followed by a colon.
	hunkLineNumsRegex = regexp.MustCompile(`^\s*(\d+)?\s+(\d+)?:`)

	// Hunk boundary separator emitted between diff regions.
	hunkSeparatorRegex = regexp.MustCompile(`^\s*\.\.\.\s*$`)
)

// hunkDivider is a synthetic trailing line appended to a file's last hunk,
// purely visual separation from the next log item.
const hunkDivider = "\x1b[35m~\x1b[0m"

// parseLog splits jj log output into top-level nodes. Lines that do not
// match the change-header shape pass through as Info nodes; change headers
// consume two physical lines.
func parseLog(output string) ([]*Node, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}

	var nodes []*Node
	for i := 0; i < len(lines); {
		line1 := lines[i]
		i++

		if !changeLineRegex.MatchString(ansi.Strip(line1)) {
			nodes = append(nodes, &Node{Kind: KindInfo, Text: line1})
			continue
		}

		line2 := ""
		if i < len(lines) {
			line2 = lines[i]
			i++
		}
		node, err := parseChange(line1 + "\n" + line2)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// parseChange parses a two-line colored change header into a Change node.
func parseChange(pretty string) (*Node, error) {
	clean := ansi.Strip(pretty)

	fields := changeFieldsRegex.FindStringSubmatch(clean)
	if fields == nil {
		return nil, &ParseError{Line: clean, Reason: "cannot parse change fields"}
	}

	colored := changeLinesRegex.FindStringSubmatch(pretty)
	if colored == nil {
		return nil, &ParseError{Line: clean, Reason: "cannot parse change lines"}
	}

	description := fields[9]
	if description == "(no description set)" {
		description = ""
	}

	ch := &Change{
		ChangeID:       fields[4],
		CommitID:       fields[5],
		WorkingCopy:    fields[2] == "@",
		Conflict:       fields[6] == "conflict",
		Empty:          fields[8] != "",
		Description:    description,
		Symbol:         fields[2],
		Line1Graph:     fields[1],
		Line1GraphTail: fields[3],
		Line2Graph:     fields[7],
		PrettyLine1:    colored[1],
		PrettyLine2:    colored[2],
		GraphIndent:    graphIndent(fields[7]),
	}

	return &Node{Kind: KindChange, Change: ch}, nil
}

// graphIndent derives the indent prefix for a change's descendants from its
// second-line graph chars: verticals and spaces carry through, a branch
// connector becomes a vertical, anything else becomes a space. The final
// rune is dropped to even out with our own spacing.
func graphIndent(line2Graph string) string {
	runes := []rune(line2Graph)
	indent := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch r {
		case '│', ' ':
			indent = append(indent, r)
		case '├':
			indent = append(indent, '│')
		default:
			indent = append(indent, ' ')
		}
	}
	if len(indent) > 0 {
		indent = indent[:len(indent)-1]
	}
	return string(indent)
}

// parseFileSummary parses jj diff --summary output into File nodes.
// A malformed line fails the whole load; partial trees are never built.
func parseFileSummary(changeID, output, indent string) ([]*Node, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, nil
	}

	var nodes []*Node
	for _, line := range strings.Split(trimmed, "\n") {
		node, err := parseFileLine(changeID, line, indent)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// parseFileLine parses one "status path" summary line.
func parseFileLine(changeID, line, indent string) (*Node, error) {
	clean := ansi.Strip(line)

	m := fileLineRegex.FindStringSubmatch(clean)
	if m == nil {
		return nil, &ParseError{Line: clean, Reason: "cannot parse file diff line"}
	}

	status, err := ParseStatus(m[1])
	if err != nil {
		return nil, err
	}
	description := m[2]

	path := description
	if status == StatusRenamed || status == StatusCopied {
		path, err = normalizeRename(description)
		if err != nil {
			return nil, err
		}
	}

	f := &File{
		ChangeID:    changeID,
		Path:        path,
		Description: description,
		Status:      status,
	}
	return &Node{Kind: KindFile, File: f, Indent: indent}, nil
}

// normalizeRename collapses jj's "prefix{old => new}suffix" rename notation
// into the flat new path: the unchanged prefix and suffix joined with the
// new middle segment.
func normalizeRename(description string) (string, error) {
	m := renameRegex.FindStringSubmatch(description)
	if m == nil {
		return "", &ParseError{Line: description, Reason: "cannot parse rename/copy paths"}
	}
	return m[1] + m[3] + m[4], nil
}

// parseHunks splits a file diff into Hunk nodes. The first output line is
// the file header and is skipped; "..." separator lines mark hunk
// boundaries. A trailing divider line is appended to the last hunk.
func parseHunks(output, indent string) ([]*Node, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > 0 {
		lines = lines[1:] // file header
	}

	var hunks []*Node
	var group []string

	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		hunk, err := newHunkNode(group, indent)
		if err != nil {
			return err
		}
		hunks = append(hunks, hunk)
		group = nil
		return nil
	}

	for _, line := range lines {
		if hunkSeparatorRegex.MatchString(ansi.Strip(line)) {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		group = append(group, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(hunks) > 0 {
		last := hunks[len(hunks)-1]
		last.Children = append(last.Children, &Node{
			Kind:   KindLine,
			Text:   hunkDivider,
			Indent: indent,
		})
	}

	return hunks, nil
}

// newHunkNode builds a Hunk node from its raw lines: derives the before and
// after line ranges, realigns the line-number gutter, and wraps each line
// as a Line child. Hunks default to unfolded.
func newHunkNode(lines []string, indent string) (*Node, error) {
	oldStart, newStart, err := findLineNums(lines, false)
	if err != nil {
		return nil, err
	}
	oldEnd, newEnd, err := findLineNums(lines, true)
	if err != nil {
		return nil, err
	}

	lines = alignLineNums(lines, max(oldEnd, newEnd))

	children := make([]*Node, 0, len(lines))
	for _, line := range lines {
		children = append(children, &Node{Kind: KindLine, Text: line, Indent: indent})
	}

	return &Node{
		Kind:     KindHunk,
		Unfolded: true,
		Loaded:   true,
		Children: children,
		Hunk: &Hunk{
			OldStart: oldStart,
			OldEnd:   oldEnd,
			NewStart: newStart,
			NewEnd:   newEnd,
		},
		Indent: indent,
	}, nil
}

// findLineNums scans hunk lines for the first before and after line
// numbers, from the top or (reverse) the bottom. A side with no numbered
// line defaults to 0, which covers one-sided hunks in added and deleted
// files. A line without a recognizable gutter is a parse failure.
func findLineNums(lines []string, reverse bool) (oldNum, newNum int, err error) {
	foundOld, foundNew := false, false

	for i := range lines {
		line := lines[i]
		if reverse {
			line = lines[len(lines)-1-i]
		}
		clean := ansi.Strip(line)
		if clean == "~" {
			continue
		}

		m := hunkLineNumsRegex.FindStringSubmatch(clean)
		if m == nil {
			return 0, 0, &ParseError{Line: clean, Reason: "cannot parse diff hunk line"}
		}
		if !foundOld && m[1] != "" {
			oldNum, _ = strconv.Atoi(m[1])
			foundOld = true
		}
		if !foundNew && m[2] != "" {
			newNum, _ = strconv.Atoi(m[2])
			foundNew = true
		}
		if foundOld && foundNew {
			break
		}
	}

	return oldNum, newNum, nil
}

// alignLineNums trims the slack jj pads small line numbers with, keeping a
// fixed 3-character number column so gutters of differing digit widths stay
// visually aligned.
func alignLineNums(lines []string, maxLineNum int) []string {
	digits := len(strconv.Itoa(max(maxLineNum, 1)))
	trim := 4 - digits
	if trim <= 0 {
		return lines
	}

	pad := strings.Repeat(" ", trim)
	aligned := make([]string, len(lines))
	for i, line := range lines {
		aligned[i] = strings.Replace(line, pad, "", 1)
	}
	return aligned
}
