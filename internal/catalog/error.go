package catalog

import "errors"

var (
	// ErrIO is an error that occurs when the store cannot be opened, read,
	// written or flushed.
	ErrIO = errors.New("catalog i/o failure")

	// ErrCorruptRecord is an error that occurs when a stored record cannot be
	// decoded or does not match its checksum.
	ErrCorruptRecord = errors.New("catalog record is corrupt")

	// ErrMachineExists is an error that occurs when a machine is created
	// under a name that is already in the catalog.
	ErrMachineExists = errors.New("machine already exists")

	// ErrVolumePathExists is an error that occurs when a machine is created
	// while its storage path already exists on the pool.
	ErrVolumePathExists = errors.New("machine storage path already exists")

	// ErrInvalidName is an error that occurs when a machine name cannot be
	// used as a single storage path segment.
	ErrInvalidName = errors.New("invalid machine name")

	// ErrSettingUnset is an error that occurs when a required setting has no
	// value.
	ErrSettingUnset = errors.New("setting is not set")

	// ErrUnknownKey is an error that occurs when a setting name is not one of
	// the known [Key] values.
	ErrUnknownKey = errors.New("unknown setting")
)
