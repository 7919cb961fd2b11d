package disk

import "errors"

var (
	// ErrInvalidSize is an error that occurs when a probed disk size is not a
	// number of bytes.
	ErrInvalidSize = errors.New("invalid disk size")

	// ErrMissingSerial is an error that occurs when a disk has no serial
	// attribute to derive its identity from.
	ErrMissingSerial = errors.New("disk has no serial attribute")

	// ErrMissingDevlinks is an error that occurs when a disk has no device
	// links to corroborate its identity with.
	ErrMissingDevlinks = errors.New("disk has no device links attribute")

	// ErrIdentityMismatch is an error that occurs when a disk's derived
	// identity does not appear in its device links.
	ErrIdentityMismatch = errors.New("disk identity not found in device links")
)
