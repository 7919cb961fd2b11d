// Package machine implements the machine lifecycle: probing the disks of a
// remote machine, validating and recording them, and provisioning a volume
// for each of them.
package machine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/desertwitch/reflectron/internal/catalog"
	"github.com/desertwitch/reflectron/internal/disk"
	"github.com/desertwitch/reflectron/internal/schema"
)

type proberProvider interface {
	Probe(ctx context.Context) (string, error)
}

type settingsProvider interface {
	Require(key catalog.Key) (string, error)
}

type machinesProvider interface {
	Create(ctx context.Context, machine schema.Machine) error
	Get(name string) (*schema.Machine, bool, error)
	List() ([]string, error)
}

type volumeProvider interface {
	ProvisionMachine(ctx context.Context, pool string, machine schema.Machine) error
}

// Handler is the principal implementation for the machine services.
type Handler struct {
	settingsHandler settingsProvider
	machinesHandler machinesProvider
	volumeHandler   volumeProvider
}

// NewHandler returns a pointer to a new machine [Handler].
func NewHandler(settingsHandler settingsProvider, machinesHandler machinesProvider, volumeHandler volumeProvider) *Handler {
	return &Handler{
		settingsHandler: settingsHandler,
		machinesHandler: machinesHandler,
		volumeHandler:   volumeHandler,
	}
}

// New probes the disks of a remote machine, records the machine under name
// and provisions a volume for each of its disks. All disks are validated
// before the machine is recorded, so a machine with an unverifiable disk
// leaves no trace in the catalog or on the pool.
func (h *Handler) New(ctx context.Context, name string, prober proberProvider) (*schema.Machine, error) {
	pool, err := h.settingsHandler.Require(catalog.KeyDiskPool)
	if err != nil {
		return nil, fmt.Errorf("(machine-new) %w", err)
	}

	out, err := prober.Probe(ctx)
	if err != nil {
		return nil, fmt.Errorf("(machine-new) %w", err)
	}

	disks, err := disk.Parse(out)
	if err != nil {
		return nil, fmt.Errorf("(machine-new) %w", err)
	}

	if len(disks) == 0 {
		return nil, fmt.Errorf("(machine-new) %w: probe of %s reported no disks", ErrNoDisks, name)
	}

	if err := disk.ValidateAll(disks); err != nil {
		return nil, fmt.Errorf("(machine-new) %w", err)
	}

	m := schema.Machine{
		Name:  name,
		Disks: disks,
	}

	if err := h.machinesHandler.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("(machine-new) %w", err)
	}

	slog.Info("Machine recorded.", "machine", name, "disks", len(disks))

	if err := h.volumeHandler.ProvisionMachine(ctx, pool, m); err != nil {
		return nil, fmt.Errorf("(machine-new) %w", err)
	}

	return &m, nil
}

// Provision provisions the volumes of a recorded machine. Volumes that exist
// already are left alone.
func (h *Handler) Provision(ctx context.Context, name string) error {
	pool, err := h.settingsHandler.Require(catalog.KeyDiskPool)
	if err != nil {
		return fmt.Errorf("(machine-provision) %w", err)
	}

	m, err := h.get(name)
	if err != nil {
		return fmt.Errorf("(machine-provision) %w", err)
	}

	if err := h.volumeHandler.ProvisionMachine(ctx, pool, *m); err != nil {
		return fmt.Errorf("(machine-provision) %w", err)
	}

	return nil
}

// Show returns the rendered description of a recorded machine.
func (h *Handler) Show(name string) (string, error) {
	m, err := h.get(name)
	if err != nil {
		return "", fmt.Errorf("(machine-show) %w", err)
	}

	return Render(*m), nil
}

// List returns the names of all recorded machines.
func (h *Handler) List() ([]string, error) {
	names, err := h.machinesHandler.List()
	if err != nil {
		return nil, fmt.Errorf("(machine-list) %w", err)
	}

	return names, nil
}

func (h *Handler) get(name string) (*schema.Machine, error) {
	m, found, err := h.machinesHandler.Get(name)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return m, nil
}
