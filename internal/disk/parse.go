// Package disk turns disk probe output into [schema.Disk] records and derives
// the validated identity each disk is provisioned under.
package disk

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertwitch/reflectron/internal/schema"
)

const (
	// HeaderPrefix starts a line switching the current disk context.
	HeaderPrefix = "Disk: "

	// AttributeKeyBus is the attribute holding the bus a disk is attached to.
	AttributeKeyBus = "ID_BUS"

	// AttributeKeySerial is the attribute holding the serial a disk's
	// identity is derived from.
	AttributeKeySerial = "ID_SERIAL"

	// AttributeKeyDevlinks is the attribute holding a disk's device links.
	AttributeKeyDevlinks = "DEVLINKS"

	primaryMinFields = 3
)

// AttributePrefixes are the tags marking attribute lines, as printed by
// udevadm for symlinks and properties.
var AttributePrefixes = []string{"S: ", "E: "} //nolint:gochecknoglobals

// Parse reads the text printed by the disk probe script into a list of disks,
// in the order their primary lines appear. Parsing the same text twice yields
// equal results.
//
// A primary line is split on whitespace into the positional fields name,
// size, type, wwn, serial, model and vendor, of which the first three are
// required. Lines with fewer fields are ignored. A header line names the disk
// that following attribute lines are merged into, with later values
// overwriting earlier ones. Attributes for a disk that has no primary line are
// dropped.
func Parse(text string) ([]schema.Disk, error) {
	disks := []schema.Disk{}
	current := ""

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(nil, 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			continue
		}

		if name, ok := strings.CutPrefix(line, HeaderPrefix); ok {
			current = strings.TrimSpace(name)

			continue
		}

		if attr, ok := cutAttributePrefix(line); ok {
			mergeAttribute(disks, current, attr)

			continue
		}

		fields := strings.Fields(line)

		if current != "" && strings.Contains(fields[0], "=") {
			mergeAttribute(disks, current, line)

			continue
		}

		if len(fields) < primaryMinFields {
			continue
		}

		disk, err := newDisk(fields)
		if err != nil {
			return nil, fmt.Errorf("(disk-parse) line %d: %w", lineNum, err)
		}

		disks = append(disks, disk)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("(disk-parse) failed to read probe output: %w", err)
	}

	return disks, nil
}

func cutAttributePrefix(line string) (string, bool) {
	for _, prefix := range AttributePrefixes {
		if attr, ok := strings.CutPrefix(line, prefix); ok {
			return attr, true
		}
	}

	return "", false
}

// mergeAttribute stores a key=value pair on the disk named current. Pairs
// without a separator, such as udevadm symlink lines, carry no key and are
// skipped.
func mergeAttribute(disks []schema.Disk, current string, attr string) {
	if current == "" {
		return
	}

	key, value, ok := strings.Cut(attr, "=")
	if !ok {
		return
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return
	}

	for i := range disks {
		if disks[i].Name != current {
			continue
		}

		if disks[i].Attributes == nil {
			disks[i].Attributes = make(map[string]string)
		}
		disks[i].Attributes[key] = strings.TrimSpace(value)

		return
	}
}

func newDisk(fields []string) (schema.Disk, error) {
	size, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return schema.Disk{}, fmt.Errorf("%w: %q for disk %s", ErrInvalidSize, fields[1], fields[0])
	}

	optional := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}

		return ""
	}

	return schema.Disk{
		Name:       fields[0],
		Size:       size,
		DeviceType: fields[2],
		WWN:        optional(3),
		Serial:     optional(4),
		Model:      optional(5),
		Vendor:     optional(6),
	}, nil
}
