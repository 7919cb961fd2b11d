package executor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSpawnFailed is an error that occurs when an external command could
	// not be started at all.
	ErrSpawnFailed = errors.New("command could not be started")

	// ErrNonZeroExit is an error that occurs when an external command ran but
	// exited with a non-zero exit code.
	ErrNonZeroExit = errors.New("command exited non-zero")

	// ErrWaitExceeded is an error that occurs when a bounded [Handler.Wait]
	// did not see the command succeed within its bound.
	ErrWaitExceeded = errors.New("command did not succeed in time")

	// ErrProgramNotFound is an error that occurs when a program is not
	// present in any of the search paths.
	ErrProgramNotFound = errors.New("program not found")
)

// CommandError describes a failed external command. It wraps both the kind of
// failure ([ErrSpawnFailed] or [ErrNonZeroExit]) and the underlying error.
type CommandError struct {
	Kind     error
	Cmdline  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if errors.Is(e.Kind, ErrSpawnFailed) {
		return fmt.Sprintf("command '%s' could not be started: %v", e.Cmdline, e.Err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "command '%s' failed with exit code %d", e.Cmdline, e.ExitCode)

	if stdout := strings.TrimSpace(e.Stdout); stdout != "" {
		fmt.Fprintf(&sb, "\nSTDOUT: %s", stdout)
	}

	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&sb, "\nSTDERR: %s", stderr)
	}

	return sb.String()
}

func (e *CommandError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
