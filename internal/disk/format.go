package disk

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertwitch/reflectron/internal/schema"
	"github.com/dustin/go-humanize"
)

const unknownLabelPart = "unknown"

// Label returns the vendor-model-serial slug of a disk. It is kept for display
// only and must not be used to address a disk.
func Label(d schema.Disk) string {
	part := func(s string) string {
		if s == "" {
			return unknownLabelPart
		}

		return s
	}

	label := fmt.Sprintf("%s-%s-%s", part(d.Vendor), part(d.Model), part(d.Serial))

	return strings.ToLower(strings.ReplaceAll(label, " ", "-"))
}

// Summary returns a multi-line description of a disk with its attributes in
// key order.
func Summary(d schema.Disk) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Name: %s\n", d.Name)
	fmt.Fprintf(&sb, "Size: %s (%d bytes)\n", humanize.IBytes(d.Size), d.Size)
	fmt.Fprintf(&sb, "Device Type: %s\n", d.DeviceType)

	optional := []struct {
		title string
		value string
	}{
		{"WWN", d.WWN},
		{"Serial", d.Serial},
		{"Model", d.Model},
		{"Vendor", d.Vendor},
	}
	for _, o := range optional {
		if o.value != "" {
			fmt.Fprintf(&sb, "%s: %s\n", o.title, o.value)
		}
	}

	if len(d.Attributes) > 0 {
		sb.WriteString("Additional Information:\n")

		keys := make([]string, 0, len(d.Attributes))
		for key := range d.Attributes {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		for _, key := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", key, d.Attributes[key])
		}
	}

	return sb.String()
}
