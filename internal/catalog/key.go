package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Key is a setting known to the catalog.
type Key int

const (
	// KeyDiskPool is the storage pool machine volumes are created on.
	KeyDiskPool Key = iota + 1
)

var keyNames = map[Key]string{ //nolint:gochecknoglobals
	KeyDiskPool: "disk_pool",
}

const (
	namespaceSettings = "settings"
	namespaceMachines = "machines"
	namespaceSep      = "::"
)

// String returns the name of the setting as used on the command line and in
// the store.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}

	return fmt.Sprintf("key(%d)", int(k))
}

// ParseKey returns the [Key] with the given name.
func ParseKey(name string) (Key, error) {
	for key, keyName := range keyNames {
		if keyName == name {
			return key, nil
		}
	}

	return 0, fmt.Errorf("%w: %q (known: %s)", ErrUnknownKey, name, strings.Join(keyStrings(), ", "))
}

// Keys returns all known settings in a stable order.
func Keys() []Key {
	keys := make([]Key, 0, len(keyNames))
	for key := range keyNames {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}

func keyStrings() []string {
	keys := Keys()

	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = key.String()
	}

	return names
}

func namespacePrefix(namespace string) []byte {
	return []byte(namespace + namespaceSep)
}

func settingKey(k Key) []byte {
	return append(namespacePrefix(namespaceSettings), k.String()...)
}

func machineKey(name string) []byte {
	return append(namespacePrefix(namespaceMachines), name...)
}
