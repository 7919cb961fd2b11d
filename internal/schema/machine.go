package schema

// Machine is a remote machine and its disks, in probe order. The name is
// unique across the catalog.
type Machine struct {
	Name  string `yaml:"name"`
	Disks []Disk `yaml:"disks"`
}

// GetName returns the machine name.
func (m *Machine) GetName() string {
	return m.Name
}

// GetDisks returns a copy of the machine's disk slice.
func (m *Machine) GetDisks() []Disk {
	disks := make([]Disk, len(m.Disks))
	copy(disks, m.Disks)

	return disks
}
