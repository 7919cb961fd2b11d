package executor

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultSearchPaths are the directories programs are looked up in. The
// caller's PATH is deliberately not consulted.
var DefaultSearchPaths = []string{ //nolint:gochecknoglobals
	"/usr/sbin/",
	"/usr/bin/",
	"/sbin/",
	"/bin/",
}

// Which returns the absolute path of the first executable named program in
// the search paths.
func (e *Handler) Which(program string) (string, error) {
	for _, dir := range e.searchPaths {
		path := filepath.Join(dir, program)
		if err := e.unixHandler.Access(path, unix.X_OK); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: could not find program %s in system paths %s, please install it and try again",
		ErrProgramNotFound, program, strings.Join(e.searchPaths, " "))
}

// Privileged returns a [Command] running program with elevated privileges,
// by way of the configured escalation program.
func (e *Handler) Privileged(program string, args ...string) (Command, error) {
	path, err := e.Which(program)
	if err != nil {
		return Command{}, fmt.Errorf("(exec-privileged) %w", err)
	}

	if e.escalate == "" || e.escalate == "none" {
		return NewCommand(path, args...), nil
	}

	escalatePath, err := e.Which(e.escalate)
	if err != nil {
		return Command{}, fmt.Errorf("(exec-privileged) %w", err)
	}

	escalateArgs := make([]string, 0, len(args)+1)
	escalateArgs = append(escalateArgs, path)
	escalateArgs = append(escalateArgs, args...)

	return NewCommand(escalatePath, escalateArgs...), nil
}
