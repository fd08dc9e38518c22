package gpu

import "strings"

// DeviceClass prefixes NVML-derived device lines so they read like lspci output
const DeviceClass = "3D controller"

// DeviceInfo describes one GPU reported by NVML
type DeviceInfo struct {
	Name  string `json:"name"`
	UUID  string `json:"uuid"`
	Index int    `json:"index"`
}

// Inventory is the result of a detection pass
type Inventory struct {
	DriverVersion string       `json:"driver_version"`
	NVMLOk        bool         `json:"nvml_ok"`
	Devices       []DeviceInfo `json:"devices"`
	ErrorMessage  string       `json:"error_message,omitempty"`
}

// DeviceLines renders each named device as a "3D controller: <name>" line
func (inv Inventory) DeviceLines() []string {
	lines := make([]string, 0, len(inv.Devices))
	for _, dev := range inv.Devices {
		name := strings.TrimSpace(dev.Name)
		if name == "" {
			continue
		}
		lines = append(lines, DeviceClass+": "+name)
	}
	return lines
}

// AppendTo extends a PCI listing with the inventory's device lines
func (inv Inventory) AppendTo(listing string) string {
	lines := inv.DeviceLines()
	if len(lines) == 0 {
		return listing
	}
	if listing != "" && !strings.HasSuffix(listing, "\n") {
		listing += "\n"
	}
	return listing + strings.Join(lines, "\n") + "\n"
}
