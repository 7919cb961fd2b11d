// Package volume provisions one sparse ZFS volume per machine disk, below
// {pool}/reflectron/{machine} on the local disk pool.
package volume

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/desertwitch/reflectron/internal/disk"
	"github.com/desertwitch/reflectron/internal/executor"
	"github.com/desertwitch/reflectron/internal/schema"
)

const (
	// RootDataset is the dataset below the pool that holds all machines.
	RootDataset = "reflectron"

	// BlockSize is the block size of every created volume.
	BlockSize = "4K"

	// DeviceDir is where udev links the block device of a volume.
	DeviceDir = "/dev/zvol"

	zfsProgram  = "zfs"
	testProgram = "test"

	devicePollInterval = time.Second
)

type executorProvider interface {
	Perform(ctx context.Context, description string, check *executor.Command, op executor.Command, stream bool) (executor.Outcome, error)
	Check(ctx context.Context, cmd executor.Command) (bool, error)
	Privileged(program string, args ...string) (executor.Command, error)
	Wait(ctx context.Context, op executor.Command, interval time.Duration) error
	Which(program string) (string, error)
}

// Handler is the principal implementation for the volume services.
type Handler struct {
	executorHandler executorProvider
}

// NewHandler returns a pointer to a new volume [Handler].
func NewHandler(executorHandler executorProvider) *Handler {
	return &Handler{
		executorHandler: executorHandler,
	}
}

// MachineRoot returns the dataset holding the volumes of a machine.
func (v *Handler) MachineRoot(pool string, machine string) string {
	return strings.Join([]string{pool, RootDataset, machine}, "/")
}

// Path returns the volume path for the disk with the given identity.
func (v *Handler) Path(pool string, machine string, identity string) string {
	return strings.Join([]string{v.MachineRoot(pool, machine), identity}, "/")
}

// Exists reports whether a dataset or volume exists at path.
func (v *Handler) Exists(ctx context.Context, path string) (bool, error) {
	cmd, err := v.existsCommand(path)
	if err != nil {
		return false, fmt.Errorf("(volume-exists) %w", err)
	}

	exists, err := v.executorHandler.Check(ctx, cmd)
	if err != nil {
		return false, fmt.Errorf("(volume-exists) %w", err)
	}

	return exists, nil
}

// ProvisionMachine creates a volume for every disk of machine on pool, in disk
// order, and waits for its block device to appear. Volumes that already exist
// are skipped, so running it again for the same machine creates nothing. Each
// disk is validated before anything is created for it.
func (v *Handler) ProvisionMachine(ctx context.Context, pool string, machine schema.Machine) error {
	if pool == "" {
		return fmt.Errorf("(volume-provision) %w", ErrPoolUnset)
	}

	for _, d := range machine.Disks {
		identity, err := disk.Validate(d)
		if err != nil {
			return fmt.Errorf("(volume-provision) %w", err)
		}

		path := v.Path(pool, machine.Name, identity)

		check, err := v.existsCommand(path)
		if err != nil {
			return fmt.Errorf("(volume-provision) %w", err)
		}

		create, err := v.executorHandler.Privileged(zfsProgram,
			"create",
			"-p",
			"-s",
			"-b", BlockSize,
			"-V", strconv.FormatUint(d.Size, 10),
			path,
		)
		if err != nil {
			return fmt.Errorf("(volume-provision) %w", err)
		}

		if _, err := v.executorHandler.Perform(ctx, "Create ZVOL for disk "+identity, &check, create, true); err != nil {
			return fmt.Errorf("(volume-provision) %w", err)
		}

		if err := v.waitForDevice(ctx, path); err != nil {
			return fmt.Errorf("(volume-provision) %w", err)
		}
	}

	return nil
}

// DevicePath returns the block device of the volume at path.
func (v *Handler) DevicePath(path string) string {
	return DeviceDir + "/" + path
}

func (v *Handler) waitForDevice(ctx context.Context, path string) error {
	test, err := v.executorHandler.Which(testProgram)
	if err != nil {
		return err //nolint:wrapcheck
	}

	device := v.DevicePath(path)
	slog.Debug("Waiting for volume device.", "device", device)

	return v.executorHandler.Wait(ctx, executor.NewCommand(test, "-b", device), devicePollInterval) //nolint:wrapcheck
}

func (v *Handler) existsCommand(path string) (executor.Command, error) {
	return v.executorHandler.Privileged(zfsProgram, "list", "-H", "-o", "name", path) //nolint:wrapcheck
}
