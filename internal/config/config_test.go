package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"LogLevel", cfg.Logging.Level, "info"},
		{"LogFormat", cfg.Logging.Format, "json"},
		{"Placement", cfg.Catalog.Placement, PlacementAppend},
		{"Hash", cfg.Signature.Hash, "md5"},
		{"DumpCommand", strings.Join(cfg.Collect.DumpCommand, " "), "intel_gpu_dump"},
		{"LspciCommand", strings.Join(cfg.Collect.LspciCommand, " "), "lspci -vvnn"},
		{"TimeoutSeconds", cfg.Collect.TimeoutSeconds, 30},
		{"ReportDir", cfg.Report.Dir, "/var/crash"},
		{"ReportFormat", cfg.Report.Format, "yaml"},
		{"Compression", cfg.Report.Compression, "zstd"},
		{"WindowSeconds", cfg.Suppress.WindowSeconds, 3600},
		{"Ledger", cfg.Suppress.Ledger, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("DefaultConfig().%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestValidation_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	if errors := cfg.Validate(); len(errors) != 0 {
		t.Errorf("Validate() on default config returned errors: %v", errors)
	}
}

func TestValidation_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		mutate func(*Config)
	}{
		{"log level", "logging.level", func(c *Config) { c.Logging.Level = "trace" }},
		{"log format", "logging.format", func(c *Config) { c.Logging.Format = "xml" }},
		{"placement", "catalog.placement", func(c *Config) { c.Catalog.Placement = "middle" }},
		{"extra profiles ext", "catalog.extra_profiles", func(c *Config) { c.Catalog.ExtraProfiles = "/etc/gpucrash/profiles.toml" }},
		{"hash", "signature.hash", func(c *Config) { c.Signature.Hash = "sha1" }},
		{"empty lspci", "collect.lspci_command", func(c *Config) { c.Collect.LspciCommand = nil }},
		{"timeout", "collect.timeout_seconds", func(c *Config) { c.Collect.TimeoutSeconds = 0 }},
		{"report dir", "report.dir", func(c *Config) { c.Report.Dir = "" }},
		{"report format", "report.format", func(c *Config) { c.Report.Format = "xml" }},
		{"compression", "report.compression", func(c *Config) { c.Report.Compression = "gzip" }},
		{"threshold", "report.compress_threshold_bytes", func(c *Config) { c.Report.CompressThresholdBytes = -1 }},
		{"state dir", "suppress.state_dir", func(c *Config) { c.Suppress.StateDir = "" }},
		{"window", "suppress.window_seconds", func(c *Config) { c.Suppress.WindowSeconds = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			errors := cfg.Validate()
			found := false
			for _, err := range errors {
				if err.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want an error for %s", errors, tt.path)
			}
		})
	}
}

func TestValidation_ProfileExtensions(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"/etc/gpucrash/profiles.jsonc", false},
		{"/etc/gpucrash/profiles.YAML", false},
		{"/etc/gpucrash/profiles.Json", false},
		{"/etc/gpucrash/profiles.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Catalog.ExtraProfiles = tt.path
			errors := cfg.Validate()
			if (len(errors) != 0) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", errors, tt.wantErr)
			}
		})
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	configContent := `
logging:
  level: debug
signature:
  hash: blake3
collect:
  dump_command: [sudo, intel_gpu_dump]
report:
  dir: /tmp/crash
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Signature.Hash != "blake3" {
		t.Errorf("Hash = %s, want blake3", cfg.Signature.Hash)
	}
	if got := strings.Join(cfg.Collect.DumpCommand, " "); got != "sudo intel_gpu_dump" {
		t.Errorf("DumpCommand = %q, want %q", got, "sudo intel_gpu_dump")
	}
	if cfg.Report.Dir != "/tmp/crash" {
		t.Errorf("ReportDir = %s, want /tmp/crash", cfg.Report.Dir)
	}

	// Unspecified fields keep their defaults
	if cfg.Logging.Format != "json" {
		t.Errorf("LogFormat = %s, want json (default)", cfg.Logging.Format)
	}
	if cfg.Report.Format != "yaml" {
		t.Errorf("ReportFormat = %s, want yaml (default)", cfg.Report.Format)
	}
	if !cfg.Collect.IncludeLogs {
		t.Error("IncludeLogs should keep its default of true")
	}
	if got := strings.Join(cfg.Collect.LspciCommand, " "); got != "lspci -vvnn" {
		t.Errorf("LspciCommand = %q, want default", got)
	}
}

func TestLoadFrom_BoolOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("suppress:\n  ledger: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Suppress.Ledger {
		t.Error("Ledger should be disabled by the file")
	}
	if cfg.Suppress.WindowSeconds != 3600 {
		t.Errorf("WindowSeconds = %d, want default 3600", cfg.Suppress.WindowSeconds)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("signature:\n  hash: crc32\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Fatal("LoadFrom() should return error for invalid config")
	}
	if !strings.Contains(err.Error(), "signature.hash") {
		t.Errorf("error %q should name the invalid field", err)
	}
}

func TestLoadFrom_NonexistentFile(t *testing.T) {
	if _, err := LoadFrom("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadFrom() should return error for nonexistent file")
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	malformedContent := `
logging:
  level: info
    format: json
`
	if err := os.WriteFile(configPath, []byte(malformedContent), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("LoadFrom() should return error for malformed YAML")
	}
}

func TestLoad_SystemConfigFromEnvDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GPUCRASH_CONFIG_DIR", dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("report:\n  format: cbor\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Report.Format != "cbor" {
		t.Errorf("ReportFormat = %s, want cbor", cfg.Report.Format)
	}
}

func TestSystemConfigPath(t *testing.T) {
	if base := filepath.Base(SystemConfigPath()); base != "config.yaml" {
		t.Errorf("SystemConfigPath() basename = %s, want config.yaml", base)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	if got := formatValidationErrors(nil); got != "" {
		t.Errorf("formatValidationErrors(nil) = %q, want empty", got)
	}

	single := []ValidationError{{Path: "report.dir", Message: "must not be empty"}}
	if got := formatValidationErrors(single); got != "report.dir: must not be empty" {
		t.Errorf("formatValidationErrors(single) = %q", got)
	}

	multiple := []ValidationError{
		{Path: "field1", Message: "error 1"},
		{Path: "field2", Message: "error 2"},
	}
	got := formatValidationErrors(multiple)
	if !strings.HasPrefix(got, "2 validation errors:") || !strings.Contains(got, "field2: error 2") {
		t.Errorf("formatValidationErrors(multiple) = %q", got)
	}
}
