package executor

import (
	shellquote "github.com/kballard/go-shellquote"
)

// Command is an external command, given as program path and arguments. It is
// never passed through a shell.
type Command struct {
	Path string
	Args []string
}

// NewCommand returns a new [Command].
func NewCommand(path string, args ...string) Command {
	return Command{
		Path: path,
		Args: args,
	}
}

// String returns the command line, quoted the way a shell would need it.
func (c Command) String() string {
	words := make([]string, 0, len(c.Args)+1)
	words = append(words, c.Path)
	words = append(words, c.Args...)

	return shellquote.Join(words...)
}
