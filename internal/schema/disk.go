package schema

// Disk is a physical disk of a remote machine, as reported by the disk probe.
// Optional fields are empty when the probe did not report them. A [Disk] is not
// modified after the parser has finished with it.
type Disk struct {
	Name       string            `yaml:"name"`
	Size       uint64            `yaml:"size"`
	DeviceType string            `yaml:"device_type"`
	WWN        string            `yaml:"wwn,omitempty"`
	Serial     string            `yaml:"serial,omitempty"`
	Model      string            `yaml:"model,omitempty"`
	Vendor     string            `yaml:"vendor,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// Attribute returns the value of an additional attribute and whether it exists.
func (d *Disk) Attribute(key string) (string, bool) {
	value, exists := d.Attributes[key]

	return value, exists
}
