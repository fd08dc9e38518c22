// Package configdir locates the system-wide gpucrash configuration.
package configdir

import (
	"os"
	"path/filepath"
)

// EnvConfigDir overrides the system configuration directory, mostly for
// tests and packaged hooks that ship their own config.
const EnvConfigDir = "GPUCRASH_CONFIG_DIR"

const defaultConfigDir = "/etc/gpucrash"

// ConfigDir returns the directory holding the system config.yaml. A
// relative override is resolved against the working directory; one that
// cannot be resolved is ignored.
func ConfigDir() string {
	if env := os.Getenv(EnvConfigDir); env != "" {
		if abs, err := filepath.Abs(env); err == nil {
			return abs
		}
	}
	return defaultConfigDir
}
