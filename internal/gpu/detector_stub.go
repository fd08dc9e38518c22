//go:build !cuda

package gpu

import "gpucrash/internal/logging"

// Detector is a no-op detector for builds without NVML
type Detector struct {
	logger *logging.Logger
}

// NewDetector creates a GPU detector that skips NVML when CUDA support is disabled.
func NewDetector(logger *logging.Logger) *Detector {
	return &Detector{logger: logger}
}

// NewDetectorWithNVML is provided for API compatibility; NVML is ignored when CUDA is disabled.
func NewDetectorWithNVML(_ NVMLInterface, logger *logging.Logger) *Detector {
	return NewDetector(logger)
}

// Detect returns an empty inventory
func (d *Detector) Detect() Inventory {
	d.logger.Debug("gpu.detect.disabled", "Skipping NVML detection (built without cuda tag)", nil)

	return Inventory{
		Devices:      []DeviceInfo{},
		ErrorMessage: "NVML disabled: rebuild with -tags cuda",
	}
}
