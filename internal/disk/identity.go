package disk

import (
	"fmt"
	"strings"

	"github.com/desertwitch/reflectron/internal/schema"
)

const (
	busATA = "ata"

	prefixATA  = "ata-"
	prefixNVMe = "nvme-"
)

// Identity returns the canonical identity of a disk, the bus prefixed serial.
// Disks on any bus other than ATA are treated as NVMe.
func Identity(d schema.Disk) (string, error) {
	serial, ok := d.Attribute(AttributeKeySerial)
	if !ok || serial == "" {
		return "", fmt.Errorf("(disk-identity) %w: disk %s lacks %s", ErrMissingSerial, d.Name, AttributeKeySerial)
	}

	bus, _ := d.Attribute(AttributeKeyBus)
	if bus == busATA {
		return prefixATA + serial, nil
	}

	return prefixNVMe + serial, nil
}

// Validate returns the identity of a disk once it is confirmed by the disk's
// device links.
func Validate(d schema.Disk) (string, error) {
	identity, err := Identity(d)
	if err != nil {
		return "", err
	}

	devlinks, ok := d.Attribute(AttributeKeyDevlinks)
	if !ok || devlinks == "" {
		return "", fmt.Errorf("(disk-validate) %w: disk %s lacks %s", ErrMissingDevlinks, d.Name, AttributeKeyDevlinks)
	}

	if !strings.Contains(devlinks, identity) {
		return "", fmt.Errorf("(disk-validate) %w: %s not in %s of disk %s",
			ErrIdentityMismatch, identity, AttributeKeyDevlinks, d.Name)
	}

	return identity, nil
}

// ValidateAll validates every disk and fails on the first one that does not
// pass.
func ValidateAll(disks []schema.Disk) error {
	for _, d := range disks {
		if _, err := Validate(d); err != nil {
			return err
		}
	}

	return nil
}
