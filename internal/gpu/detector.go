//go:build cuda

package gpu

import (
	"fmt"

	"gpucrash/internal/logging"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// Detector enumerates NVIDIA devices through NVML
type Detector struct {
	nvml   NVMLInterface
	logger *logging.Logger
}

// NewDetector creates a new GPU detector
func NewDetector(logger *logging.Logger) *Detector {
	return &Detector{
		nvml:   NewRealNVML(),
		logger: logger,
	}
}

// NewDetectorWithNVML creates a detector with a custom NVML interface (for testing)
func NewDetectorWithNVML(nvmlInterface NVMLInterface, logger *logging.Logger) *Detector {
	return &Detector{
		nvml:   nvmlInterface,
		logger: logger,
	}
}

// Detect returns the device inventory. NVML failures are reported in the
// inventory, never as an error.
func (d *Detector) Detect() Inventory {
	d.logger.Debug("gpu.detect.start", "Starting NVML device detection", nil)

	inv := Inventory{
		Devices: make([]DeviceInfo, 0),
	}

	ret := d.nvml.Init()
	if ret != nvml.SUCCESS {
		inv.ErrorMessage = fmt.Sprintf("Failed to initialize NVML: %v", nvml.ErrorString(ret))
		d.logger.Debug("gpu.nvml.init.failed", "NVML initialization failed", map[string]interface{}{
			"error": inv.ErrorMessage,
		})
		return inv
	}
	defer d.nvml.Shutdown()

	inv.NVMLOk = true

	if driverVersion, ret := d.nvml.SystemGetDriverVersion(); ret == nvml.SUCCESS {
		inv.DriverVersion = driverVersion
	}

	count, ret := d.nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		inv.ErrorMessage = fmt.Sprintf("Failed to get device count: %v", nvml.ErrorString(ret))
		d.logger.Warn("gpu.device.count.failed", "Failed to get GPU count", map[string]interface{}{
			"error": inv.ErrorMessage,
		})
		return inv
	}

	for i := 0; i < count; i++ {
		device, ret := d.nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			d.logger.Warn("gpu.device.handle.failed", "Failed to get device handle", map[string]interface{}{
				"index": i,
				"error": nvml.ErrorString(ret),
			})
			continue
		}

		info := DeviceInfo{Index: i}
		if name, ret := device.GetName(); ret == nvml.SUCCESS {
			info.Name = name
		}
		if uuid, ret := device.GetUUID(); ret == nvml.SUCCESS {
			info.UUID = uuid
		}

		inv.Devices = append(inv.Devices, info)
		d.logger.Debug("gpu.device.detected", "GPU device detected", map[string]interface{}{
			"index": i,
			"name":  info.Name,
		})
	}

	return inv
}
