package executor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// runStreaming starts cmd and echoes its standard output and standard error
// as they arrive. Both readers are joined before the exit status is reported.
func (e *Handler) runStreaming(cmd Command) error {
	c := exec.Command(cmd.Path, cmd.Args...)

	stdoutPipe, err := c.StdoutPipe()
	if err != nil {
		return newCommandError(cmd, "", "", err)
	}

	stderrPipe, err := c.StderrPipe()
	if err != nil {
		return newCommandError(cmd, "", "", err)
	}

	if err := c.Start(); err != nil {
		return newCommandError(cmd, "", "", err)
	}

	var readers errgroup.Group

	readers.Go(func() error {
		return e.echoLines(stdoutPipe, e.stdout)
	})

	readers.Go(func() error {
		return e.echoLines(stderrPipe, e.stderr)
	})

	// The pipes are closed by Wait, so all reading must be done before.
	readErr := readers.Wait()

	if err := c.Wait(); err != nil {
		return newCommandError(cmd, "", "", err)
	}

	if readErr != nil {
		return fmt.Errorf("(exec-stream) failed to relay output of '%s': %w", cmd, readErr)
	}

	return nil
}

// echoLines copies r to w one line at a time. Lines from concurrent callers
// do not interleave.
func (e *Handler) echoLines(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			e.Lock()
			_, werr := w.Write(line)
			e.Unlock()

			if werr != nil {
				_, _ = io.Copy(io.Discard, reader)

				return werr
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}
	}
}
