package config

// Config represents the complete gpucrash configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Signature SignatureConfig `yaml:"signature"`
	Collect   CollectConfig   `yaml:"collect"`
	Report    ReportConfig    `yaml:"report"`
	Suppress  SuppressConfig  `yaml:"suppress"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// CatalogConfig points at an optional file of additional hardware profiles
type CatalogConfig struct {
	ExtraProfiles string `yaml:"extra_profiles"`
	Placement     string `yaml:"placement"`
}

// SignatureConfig selects the content hash used for dump signatures
type SignatureConfig struct {
	Hash string `yaml:"hash"`
}

// CollectConfig configures the input providers and attachment collection
type CollectConfig struct {
	LspciCommand   []string `yaml:"lspci_command"`
	DumpCommand    []string `yaml:"dump_command"`
	ErrorStatePath string   `yaml:"error_state_path"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	IncludeLogs    bool     `yaml:"include_logs"`
	IncludeConfig  bool     `yaml:"include_config"`
}

// ReportConfig configures the report sink
type ReportConfig struct {
	Dir                    string `yaml:"dir"`
	Format                 string `yaml:"format"`
	Compression            string `yaml:"compression"`
	CompressThresholdBytes int    `yaml:"compress_threshold_bytes"`
}

// SuppressConfig configures duplicate suppression
type SuppressConfig struct {
	StateDir      string `yaml:"state_dir"`
	WindowSeconds int    `yaml:"window_seconds"`
	Ledger        bool   `yaml:"ledger"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
