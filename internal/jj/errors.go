package jj

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotARepo indicates the directory is not inside a jj workspace.
var ErrNotARepo = errors.New("not a jj repository")

// CommandError is returned when jj was invoked successfully but reported
// failure. It is recoverable: the caller surfaces Stderr in the info panel
// and keeps the last good tree state. Invocation failures (jj binary
// missing, not executable) are returned as plain wrapped errors instead and
// are fatal upstream.
type CommandError struct {
	Args     []string // Arguments passed to jj
	ExitCode int      // Process exit code
	Stderr   string   // Trimmed stderr output
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("jj %s failed (exit %d): %s",
		strings.Join(e.Args, " "), e.ExitCode, e.Stderr)
}

// Message returns the user-facing diagnostic, with jj's "Error: " prefix
// stripped.
func (e *CommandError) Message() string {
	msg := strings.TrimSpace(e.Stderr)
	msg = strings.TrimPrefix(msg, "Error: ")
	if msg == "" {
		msg = fmt.Sprintf("jj %s failed with exit code %d",
			strings.Join(e.Args, " "), e.ExitCode)
	}
	return msg
}

// IsCommandError reports whether err is a jj-reported failure (as opposed
// to an invocation failure) and returns it if so.
func IsCommandError(err error) (*CommandError, bool) {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr, true
	}
	return nil, false
}
