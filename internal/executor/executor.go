// Package executor runs external commands under an idempotent check-then-act
// contract. A command that fails is reported as an error and never retried,
// with the exception of [Handler.Wait].
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/juju/clock"
)

// Outcome is the result of a [Handler.Perform].
type Outcome int

const (
	// OutcomeSkipped means the check succeeded and the operation was not run.
	OutcomeSkipped Outcome = iota

	// OutcomePerformed means the operation was run and succeeded.
	OutcomePerformed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomePerformed:
		return "performed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type unixProvider interface {
	Access(path string, mode uint32) error
}

// Options are the optional settings of a [Handler].
type Options struct {
	// Stdout and Stderr receive streamed command output. They default to the
	// process' standard output and standard error.
	Stdout io.Writer
	Stderr io.Writer

	// Escalate is the program privileged commands are wrapped in. An empty
	// value or "none" runs privileged commands directly.
	Escalate string

	// WaitMax bounds [Handler.Wait]. Zero means no bound.
	WaitMax time.Duration

	// SearchPaths are the directories [Handler.Which] looks in.
	SearchPaths []string
}

// Handler is the principal implementation for the command execution services.
type Handler struct {
	sync.Mutex
	unixHandler unixProvider
	clock       clock.Clock
	stdout      io.Writer
	stderr      io.Writer
	escalate    string
	waitMax     time.Duration
	searchPaths []string
}

// NewHandler returns a pointer to a new executor [Handler].
func NewHandler(unixHandler unixProvider, clk clock.Clock, opts Options) *Handler {
	h := &Handler{
		unixHandler: unixHandler,
		clock:       clk,
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		escalate:    opts.Escalate,
		waitMax:     opts.WaitMax,
		searchPaths: opts.SearchPaths,
	}

	if h.stdout == nil {
		h.stdout = os.Stdout
	}

	if h.stderr == nil {
		h.stderr = os.Stderr
	}

	if len(h.searchPaths) == 0 {
		h.searchPaths = DefaultSearchPaths
	}

	return h
}

// Perform runs op unless check is given and succeeds. With stream set, the
// output of op is echoed line by line while it runs, otherwise it is captured
// and only reported when op fails. Spawn failures and non-zero exits are
// returned as [CommandError].
func (e *Handler) Perform(ctx context.Context, description string, check *Command, op Command, stream bool) (Outcome, error) {
	if check != nil {
		done, err := e.Check(ctx, *check)
		if err != nil {
			return OutcomeSkipped, fmt.Errorf("(exec-perform) %s: check failed: %w", description, err)
		}
		if done {
			slog.Info(description+" was already done, skipping.", "check", check.String())

			return OutcomeSkipped, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return OutcomeSkipped, fmt.Errorf("(exec-perform) %s: %w", description, err)
	}

	var err error
	if stream {
		err = e.runStreaming(op)
	} else {
		_, err = e.runCaptured(op)
	}

	if err != nil {
		return OutcomeSkipped, fmt.Errorf("(exec-perform) %s: %w", description, err)
	}

	slog.Info(description+" succeeded.", "cmd", op.String())

	return OutcomePerformed, nil
}

// Check runs cmd and reports whether it exited zero. Only a command that
// could not be started is an error.
func (e *Handler) Check(ctx context.Context, cmd Command) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("(exec-check) %w", err)
	}

	if _, err := e.runCaptured(cmd); err != nil {
		if errors.Is(err, ErrNonZeroExit) {
			return false, nil
		}

		return false, fmt.Errorf("(exec-check) %w", err)
	}

	return true, nil
}

// Get runs op and returns its standard output.
func (e *Handler) Get(ctx context.Context, op Command) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("(exec-get) %w", err)
	}

	stdout, err := e.runCaptured(op)
	if err != nil {
		return "", fmt.Errorf("(exec-get) %w", err)
	}

	return stdout, nil
}

// runCaptured runs cmd to completion and returns its standard output.
func (e *Handler) runCaptured(cmd Command) (string, error) {
	var stdout, stderr bytes.Buffer

	c := exec.Command(cmd.Path, cmd.Args...)
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return stdout.String(), newCommandError(cmd, stdout.String(), stderr.String(), err)
	}

	return stdout.String(), nil
}

func newCommandError(cmd Command, stdout string, stderr string, err error) error {
	cmdErr := &CommandError{
		Kind:     ErrSpawnFailed,
		Cmdline:  cmd.String(),
		ExitCode: -1,
		Stdout:   stdout,
		Stderr:   stderr,
		Err:      err,
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.Kind = ErrNonZeroExit
		cmdErr.ExitCode = exitErr.ExitCode()
	}

	return cmdErr
}
