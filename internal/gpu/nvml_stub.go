//go:build !cuda

package gpu

// NVMLInterface stands in for the NVML bindings in builds without the cuda
// tag. The crash hook then sees no NVIDIA devices and classifies from the
// PCI listing alone.
type NVMLInterface interface{}

// DeviceInterface stands in for an NVML device handle without the cuda tag.
type DeviceInterface interface{}

// NewRealNVML returns nil; Detect never calls into it without the cuda tag.
func NewRealNVML() NVMLInterface {
	return nil
}
