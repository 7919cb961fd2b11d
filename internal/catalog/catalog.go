// Package catalog is the durable store of settings and machine inventories.
// Both namespaces live in one embedded database that is opened once per
// process. Every write is flushed to disk before it returns.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
)

type volumeProvider interface {
	MachineRoot(pool string, machine string) string
	Exists(ctx context.Context, path string) (bool, error)
}

// Catalog is the principal implementation of the persistent catalog.
type Catalog struct {
	db       *badger.DB
	settings *Settings
	machines *Machines
}

// Open opens or creates the catalog at path. The volumes are consulted when
// machines are created.
func Open(path string, volumes volumeProvider) (*Catalog, error) {
	opts := badger.DefaultOptions(filepath.Clean(path)).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("(catalog-open) %w: failed to open %s: %w", ErrIO, path, err)
	}

	c := &Catalog{db: db}
	c.settings = &Settings{catalog: c}
	c.machines = &Machines{catalog: c, volumes: volumes}

	return c, nil
}

// Close closes the underlying store.
func (c *Catalog) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("(catalog-close) %w: %w", ErrIO, err)
	}

	return nil
}

// Settings returns the settings namespace.
func (c *Catalog) Settings() *Settings {
	return c.settings
}

// Machines returns the machines namespace.
func (c *Catalog) Machines() *Machines {
	return c.machines
}

// get decodes the record at key into v. It returns false if there is no such
// record.
func (c *Catalog) get(key []byte, v any) (bool, error) {
	var raw []byte

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		raw, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("%w: failed to read %s: %w", ErrIO, key, err)
	}

	if err := decodeRecord(raw, v); err != nil {
		return false, fmt.Errorf("record %s: %w", key, err)
	}

	return true, nil
}

// keys returns the keys in a namespace, without the namespace prefix, in
// ascending order.
func (c *Catalog) keys(namespace string) ([]string, error) {
	prefix := namespacePrefix(namespace)
	keys := []string{}

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(prefix):]))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list %s: %w", ErrIO, namespace, err)
	}

	return keys, nil
}

// flush makes all previous writes durable.
func (c *Catalog) flush() error {
	if err := c.db.Sync(); err != nil {
		return fmt.Errorf("%w: failed to flush: %w", ErrIO, err)
	}

	return nil
}
