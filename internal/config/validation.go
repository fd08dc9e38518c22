package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// PlacementAppend adds extra profiles after the built-in catalog.
	PlacementAppend = "append"
	// PlacementPrepend lets extra profiles win over the built-in catalog.
	PlacementPrepend = "prepend"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateCatalog()...)
	errors = append(errors, c.validateSignature()...)
	errors = append(errors, c.validateCollect()...)
	errors = append(errors, c.validateReport()...)
	errors = append(errors, c.validateSuppress()...)

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, c.Logging.Level) {
		errors = append(errors, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validLevels, c.Logging.Level),
		})
	}

	validFormats := []string{"json", "text"}
	if !slices.Contains(validFormats, c.Logging.Format) {
		errors = append(errors, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validFormats, c.Logging.Format),
		})
	}

	return errors
}

func (c *Config) validateCatalog() []ValidationError {
	var errors []ValidationError

	if c.Catalog.Placement != PlacementAppend && c.Catalog.Placement != PlacementPrepend {
		errors = append(errors, ValidationError{
			Path:    "catalog.placement",
			Message: fmt.Sprintf("must be '%s' or '%s', got '%s'", PlacementAppend, PlacementPrepend, c.Catalog.Placement),
		})
	}

	if c.Catalog.ExtraProfiles != "" {
		validExts := []string{".yaml", ".yml", ".json", ".jsonc"}
		if ext := strings.ToLower(filepath.Ext(c.Catalog.ExtraProfiles)); !slices.Contains(validExts, ext) {
			errors = append(errors, ValidationError{
				Path:    "catalog.extra_profiles",
				Message: fmt.Sprintf("extension must be one of %v, got '%s'", validExts, ext),
			})
		}
	}

	return errors
}

func (c *Config) validateSignature() []ValidationError {
	validHashes := []string{"md5", "blake2b", "blake3"}
	if slices.Contains(validHashes, c.Signature.Hash) {
		return nil
	}

	return []ValidationError{{
		Path:    "signature.hash",
		Message: fmt.Sprintf("must be one of %v, got '%s'", validHashes, c.Signature.Hash),
	}}
}

func (c *Config) validateCollect() []ValidationError {
	var errors []ValidationError

	if len(c.Collect.LspciCommand) == 0 {
		errors = append(errors, ValidationError{
			Path:    "collect.lspci_command",
			Message: "must not be empty",
		})
	}

	if c.Collect.TimeoutSeconds < 1 {
		errors = append(errors, ValidationError{
			Path:    "collect.timeout_seconds",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Collect.TimeoutSeconds),
		})
	}

	return errors
}

func (c *Config) validateReport() []ValidationError {
	var errors []ValidationError

	if c.Report.Dir == "" {
		errors = append(errors, ValidationError{
			Path:    "report.dir",
			Message: "must not be empty",
		})
	}

	validFormats := []string{"yaml", "json", "cbor"}
	if !slices.Contains(validFormats, c.Report.Format) {
		errors = append(errors, ValidationError{
			Path:    "report.format",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validFormats, c.Report.Format),
		})
	}

	validCompression := []string{"none", "zstd", "lz4"}
	if !slices.Contains(validCompression, c.Report.Compression) {
		errors = append(errors, ValidationError{
			Path:    "report.compression",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validCompression, c.Report.Compression),
		})
	}

	if c.Report.CompressThresholdBytes < 0 {
		errors = append(errors, ValidationError{
			Path:    "report.compress_threshold_bytes",
			Message: fmt.Sprintf("must be non-negative, got %d", c.Report.CompressThresholdBytes),
		})
	}

	return errors
}

func (c *Config) validateSuppress() []ValidationError {
	var errors []ValidationError

	if c.Suppress.StateDir == "" {
		errors = append(errors, ValidationError{
			Path:    "suppress.state_dir",
			Message: "must not be empty",
		})
	}

	if c.Suppress.WindowSeconds < 0 {
		errors = append(errors, ValidationError{
			Path:    "suppress.window_seconds",
			Message: fmt.Sprintf("must be non-negative, got %d", c.Suppress.WindowSeconds),
		})
	}

	return errors
}
