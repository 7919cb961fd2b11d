package machine

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/reflectron/internal/disk"
	"github.com/desertwitch/reflectron/internal/schema"
	"github.com/dustin/go-humanize"
)

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for the machine title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	// diskStyle defines the style for a disk panel.
	diskStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	// errorStyle defines the style for a failed identity.
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))
)

// Render returns a machine with one panel per disk.
func Render(m schema.Machine) string {
	var total uint64
	for _, d := range m.Disks {
		total += d.Size
	}

	title := titleStyle.Render(fmt.Sprintf("%s: %d disks, %s", m.Name, len(m.Disks), humanize.IBytes(total)))

	panels := make([]string, 0, len(m.Disks)+1)
	panels = append(panels, title)

	for _, d := range m.Disks {
		panels = append(panels, diskStyle.Render(renderDisk(d)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func renderDisk(d schema.Disk) string {
	var sb strings.Builder

	identity, err := disk.Validate(d)
	if err != nil {
		fmt.Fprintf(&sb, "Identity: %s\n", errorStyle.Render(err.Error()))
	} else {
		fmt.Fprintf(&sb, "Identity: %s\n", identity)
	}

	fmt.Fprintf(&sb, "Label: %s\n", disk.Label(d))
	sb.WriteString(disk.Summary(d))

	return strings.TrimSuffix(sb.String(), "\n")
}
