// Package logtree implements the foldable change-log tree: a lazily
// populated hierarchy of change → file diff → diff hunk → hunk line, the
// projection of its unfolded subset into a flat renderable list, and
// navigation over the projected positions.
package logtree

import (
	"fmt"
)

// Kind discriminates the node variants. Dispatch is by switch rather than
// an interface hierarchy: the tree has exactly four levels and five shapes.
type Kind int

const (
	// KindChange is a top-level history entry.
	KindChange Kind = iota
	// KindInfo is a top-level line that is not a change header (elided
	// markers, advisory text). It never has children.
	KindInfo
	// KindFile is one changed path under a change.
	KindFile
	// KindHunk is one contiguous diff region within a file.
	KindHunk
	// KindLine is a single line of hunk text. It never has children.
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindChange:
		return "change"
	case KindInfo:
		return "info"
	case KindFile:
		return "file"
	case KindHunk:
		return "hunk"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Node is one entry in the log tree, a tagged variant over the five kinds.
// Exactly one of the payload pointers is set for Change/File/Hunk nodes;
// Info and Line nodes carry their raw colored text instead.
type Node struct {
	Kind     Kind
	Unfolded bool    // children included in the flattened projection
	Loaded   bool    // children fetched from jj (Change and File only)
	Children []*Node // insertion order from jj, never re-sorted

	// flatIdx is the index at which this node was emitted by the most
	// recent Flatten pass. Valid only until the next flatten.
	flatIdx int

	Change *Change // Kind == KindChange
	File   *File   // Kind == KindFile
	Hunk   *Hunk   // Kind == KindHunk
	Text   string  // Kind == KindInfo or KindLine: raw colored line
	Indent string  // graph indent prefix (File, Hunk, Line)
}

// FlatIndex returns the node's position in the last flattened projection.
func (n *Node) FlatIndex() int {
	return n.flatIdx
}

// Change holds the parsed fields of one history entry's two-line header.
type Change struct {
	ChangeID    string
	CommitID    string
	WorkingCopy bool   // the @ change
	Conflict    bool
	Empty       bool
	Description string // first description line; empty when unset

	Symbol         string // graph node symbol: @ ○ ● × ┴
	Line1Graph     string // graph chars before the symbol
	Line1GraphTail string // graph chars between symbol and change id
	Line2Graph     string // graph chars of the second header line
	PrettyLine1    string // colored header text after the graph column
	PrettyLine2    string // colored second line (may be empty)
	GraphIndent    string // indent used by this change's descendants
}

// Status is the change type of a file within a change.
type Status int

const (
	StatusModified Status = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusCopied
)

// ParseStatus converts a jj summary status letter to a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "M":
		return StatusModified, nil
	case "A":
		return StatusAdded, nil
	case "D":
		return StatusDeleted, nil
	case "R":
		return StatusRenamed, nil
	case "C":
		return StatusCopied, nil
	default:
		return 0, &ParseError{Line: s, Reason: "unknown file diff status"}
	}
}

// String returns the fixed-width display word for the status.
func (s Status) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusAdded:
		return "new file"
	case StatusDeleted:
		return "deleted "
	case StatusRenamed:
		return "renamed "
	case StatusCopied:
		return "copied  "
	default:
		return "unknown "
	}
}

// File holds one modified path under a change.
type File struct {
	ChangeID    string
	Path        string // normalized path (rename/copy collapsed to new path)
	Description string // path as printed by jj, including {old => new}
	Status      Status
}

// Hunk holds the derived line ranges of one diff region. End values of 0
// mean the side has no numbered lines (added or deleted file).
type Hunk struct {
	OldStart int
	OldEnd   int
	NewStart int
	NewEnd   int
}

// OldCount returns the number of lines on the before side.
func (h *Hunk) OldCount() int {
	if h.OldEnd == 0 {
		return 0
	}
	return h.OldEnd - h.OldStart + 1
}

// NewCount returns the number of lines on the after side.
func (h *Hunk) NewCount() int {
	if h.NewEnd == 0 {
		return 0
	}
	return h.NewEnd - h.NewStart + 1
}

// ParseError is returned when jj output does not match the expected shape.
// It is fatal for the triggering load but recoverable for the session: the
// tree keeps its last good state and the fold toggle is left un-applied.
type ParseError struct {
	Line   string // offending line, ANSI stripped
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Line)
}
