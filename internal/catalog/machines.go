package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertwitch/reflectron/internal/schema"
	badger "github.com/dgraph-io/badger/v4"
)

// Machines is the machines namespace of a [Catalog].
type Machines struct {
	catalog *Catalog
	volumes volumeProvider
}

// Create stores a new machine and flushes it to disk. It refuses a machine
// whose name is already taken, and a machine whose storage path already
// exists on the disk pool. An existing record is never modified.
func (m *Machines) Create(ctx context.Context, machine schema.Machine) error {
	if err := validateName(machine.Name); err != nil {
		return fmt.Errorf("(catalog-machines-create) %w", err)
	}

	pool, err := m.catalog.settings.Require(KeyDiskPool)
	if err != nil {
		return fmt.Errorf("(catalog-machines-create) %w", err)
	}

	if _, exists, err := m.Get(machine.Name); err != nil {
		return fmt.Errorf("(catalog-machines-create) %w", err)
	} else if exists {
		return fmt.Errorf("(catalog-machines-create) %w: %s", ErrMachineExists, machine.Name)
	}

	root := m.volumes.MachineRoot(pool, machine.Name)

	rootExists, err := m.volumes.Exists(ctx, root)
	if err != nil {
		return fmt.Errorf("(catalog-machines-create) failed to check %s: %w", root, err)
	}
	if rootExists {
		return fmt.Errorf("(catalog-machines-create) %w: %s", ErrVolumePathExists, root)
	}

	raw, err := encodeRecord(machine)
	if err != nil {
		return fmt.Errorf("(catalog-machines-create) %w", err)
	}

	key := machineKey(machine.Name)

	err = m.catalog.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("%w: %s", ErrMachineExists, machine.Name)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}

		if err := txn.Set(key, raw); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("(catalog-machines-create) %w", err)
	}

	if err := m.catalog.flush(); err != nil {
		return fmt.Errorf("(catalog-machines-create) %w", err)
	}

	return nil
}

// Get returns the machine stored under name and whether it exists. A record
// that cannot be decoded is an [ErrCorruptRecord].
func (m *Machines) Get(name string) (*schema.Machine, bool, error) {
	var machine schema.Machine

	found, err := m.catalog.get(machineKey(name), &machine)
	if err != nil {
		return nil, false, fmt.Errorf("(catalog-machines-get) %w", err)
	}

	if !found {
		return nil, false, nil
	}

	return &machine, true, nil
}

// List returns the names of all stored machines in ascending order.
func (m *Machines) List() ([]string, error) {
	names, err := m.catalog.keys(namespaceMachines)
	if err != nil {
		return nil, fmt.Errorf("(catalog-machines-list) %w", err)
	}

	return names, nil
}

// validateName makes sure name is usable as one segment of a pool path.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if strings.ContainsAny(name, "/@# \t\n") {
		return fmt.Errorf("%w: %q must not contain '/', '@', '#' or whitespace", ErrInvalidName, name)
	}

	return nil
}
