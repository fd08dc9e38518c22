package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// profileFile is the on-disk shape of an extra profiles file.
type profileFile struct {
	Profiles []HardwareProfile `yaml:"profiles" json:"profiles"`
}

// LoadProfiles reads additional hardware profiles from a YAML (.yaml, .yml)
// or JSON (.json, .jsonc; comments and trailing commas allowed) file.
func LoadProfiles(path string) ([]HardwareProfile, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	var file profileFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported profiles file extension %q", ext)
	}

	return file.Profiles, nil
}

// Combine joins built-in and extra profiles. With prepend the extra profiles
// are scanned first and therefore win over built-in entries.
func Combine(builtin, extra []HardwareProfile, prepend bool) []HardwareProfile {
	combined := make([]HardwareProfile, 0, len(builtin)+len(extra))
	if prepend {
		combined = append(combined, extra...)
		return append(combined, builtin...)
	}
	combined = append(combined, builtin...)
	return append(combined, extra...)
}
