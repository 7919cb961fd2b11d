package catalog

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// Setting is a setting and its value.
type Setting struct {
	Key   Key
	Value string
}

// Settings is the settings namespace of a [Catalog].
type Settings struct {
	catalog *Catalog
}

// Set stores value under key and flushes it to disk.
func (s *Settings) Set(key Key, value string) error {
	if _, ok := keyNames[key]; !ok {
		return fmt.Errorf("(catalog-settings-set) %w: %s", ErrUnknownKey, key)
	}

	raw, err := encodeRecord(value)
	if err != nil {
		return fmt.Errorf("(catalog-settings-set) %w", err)
	}

	err = s.catalog.db.Update(func(txn *badger.Txn) error {
		return txn.Set(settingKey(key), raw)
	})
	if err != nil {
		return fmt.Errorf("(catalog-settings-set) %w: failed to write %s: %w", ErrIO, key, err)
	}

	if err := s.catalog.flush(); err != nil {
		return fmt.Errorf("(catalog-settings-set) %w", err)
	}

	return nil
}

// Get returns the value of key and whether it is set.
func (s *Settings) Get(key Key) (string, bool, error) {
	var value string

	found, err := s.catalog.get(settingKey(key), &value)
	if err != nil {
		return "", false, fmt.Errorf("(catalog-settings-get) %w", err)
	}

	return value, found, nil
}

// Require returns the value of key, or an error telling how to set it.
func (s *Settings) Require(key Key) (string, error) {
	value, found, err := s.Get(key)
	if err != nil {
		return "", err
	}

	if !found || value == "" {
		return "", fmt.Errorf("(catalog-settings-require) %w: %s, set it with 'reflectron settings set %s <value>'",
			ErrSettingUnset, key, key)
	}

	return value, nil
}

// List returns all settings that have a value, in [Keys] order.
func (s *Settings) List() ([]Setting, error) {
	settings := []Setting{}

	for _, key := range Keys() {
		value, found, err := s.Get(key)
		if err != nil {
			return nil, err
		}

		if found {
			settings = append(settings, Setting{Key: key, Value: value})
		}
	}

	return settings, nil
}
