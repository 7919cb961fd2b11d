package machine

import "errors"

var (
	// ErrNoDisks is an error that occurs when the probe of a remote machine
	// reported no disks.
	ErrNoDisks = errors.New("no disks found")

	// ErrNotFound is an error that occurs when a machine is not in the
	// catalog.
	ErrNotFound = errors.New("machine not found")
)
