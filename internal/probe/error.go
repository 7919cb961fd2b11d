package probe

import "errors"

var (
	// ErrInvalidTarget is an error that occurs when a remote machine cannot be
	// connected to with the given target settings.
	ErrInvalidTarget = errors.New("invalid remote target")

	// ErrConnect is an error that occurs when a connection to the remote
	// machine could not be established.
	ErrConnect = errors.New("failed to connect to remote machine")

	// ErrRemoteCommand is an error that occurs when a remote command ran but
	// did not succeed.
	ErrRemoteCommand = errors.New("remote command failed")
)
