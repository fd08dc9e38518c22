package config

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Placement: PlacementAppend,
		},
		Signature: SignatureConfig{
			Hash: "md5",
		},
		Collect: CollectConfig{
			LspciCommand:   []string{"lspci", "-vvnn"},
			DumpCommand:    []string{"intel_gpu_dump"},
			ErrorStatePath: "/sys/kernel/debug/dri/0/i915_error_state",
			TimeoutSeconds: 30,
			IncludeLogs:    true,
			IncludeConfig:  true,
		},
		Report: ReportConfig{
			Dir:                    "/var/crash",
			Format:                 "yaml",
			Compression:            "zstd",
			CompressThresholdBytes: 4096,
		},
		Suppress: SuppressConfig{
			StateDir:      "/var/lib/gpucrash",
			WindowSeconds: 3600, // one report per hour
			Ledger:        true,
		},
	}
}
