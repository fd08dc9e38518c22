package collect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gpucrash/internal/logging"
)

// ErrDumpUnavailable is returned when no dump source produced any output
var ErrDumpUnavailable = errors.New("gpu dump unavailable")

// PCIProvider supplies the PCI device listing
type PCIProvider struct {
	config *Config
	runner Runner
	logger *logging.Logger
	path   string
}

// NewPCIProvider creates a provider that runs the configured lspci command
func NewPCIProvider(config *Config, runner Runner, logger *logging.Logger) *PCIProvider {
	return &PCIProvider{config: config, runner: runner, logger: logger}
}

// FromFile makes the provider read the listing from path instead of running a command
func (p *PCIProvider) FromFile(path string) *PCIProvider {
	p.path = path
	return p
}

// Listing returns the device listing text
func (p *PCIProvider) Listing(ctx context.Context) (string, error) {
	if p.path != "" {
		data, err := os.ReadFile(filepath.Clean(p.path))
		if err != nil {
			return "", fmt.Errorf("failed to read PCI listing: %w", err)
		}
		return string(data), nil
	}

	ctx, cancel := withTimeout(ctx, p.config.Timeout)
	defer cancel()

	out, err := p.runner.Run(ctx, p.config.LspciCommand)
	if err != nil {
		p.logger.Warn("collect.lspci.failed", "Failed to list PCI devices", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("failed to list PCI devices: %w", err)
	}

	p.logger.Debug("collect.lspci.complete", "PCI listing collected", map[string]interface{}{
		"bytes": len(out),
	})
	return string(out), nil
}

// DumpProvider supplies the GPU error dump. The dump command is tried
// first, then the kernel error state file.
type DumpProvider struct {
	config *Config
	runner Runner
	logger *logging.Logger
	path   string
}

// NewDumpProvider creates a dump provider
func NewDumpProvider(config *Config, runner Runner, logger *logging.Logger) *DumpProvider {
	return &DumpProvider{config: config, runner: runner, logger: logger}
}

// FromFile makes the provider read the dump from path only
func (p *DumpProvider) FromFile(path string) *DumpProvider {
	p.path = path
	return p
}

// Dump returns the dump text. When no source yields a dump the error wraps
// ErrDumpUnavailable together with the reason of every attempted source.
func (p *DumpProvider) Dump(ctx context.Context) (string, error) {
	if p.path != "" {
		data, err := os.ReadFile(filepath.Clean(p.path))
		if err != nil {
			return "", errors.Join(ErrDumpUnavailable, err)
		}
		if err := checkDump(string(data)); err != nil {
			return "", errors.Join(ErrDumpUnavailable, fmt.Errorf("%s: %w", p.path, err))
		}
		return string(data), nil
	}

	var failures []error

	if len(p.config.DumpCommand) > 0 {
		dump, err := p.fromCommand(ctx)
		if err == nil {
			return dump, nil
		}
		failures = append(failures, err)
		p.logger.Warn("collect.dump.command_failed", "GPU dump command produced no dump", map[string]interface{}{
			"command": strings.Join(p.config.DumpCommand, " "),
			"error":   err.Error(),
		})
	}

	if p.config.ErrorStatePath != "" {
		dump, err := p.fromErrorState()
		if err == nil {
			return dump, nil
		}
		failures = append(failures, err)
		p.logger.Warn("collect.dump.error_state_failed", "Kernel error state unavailable", map[string]interface{}{
			"path":  p.config.ErrorStatePath,
			"error": err.Error(),
		})
	}

	return "", errors.Join(append([]error{ErrDumpUnavailable}, failures...)...)
}

func (p *DumpProvider) fromCommand(ctx context.Context) (string, error) {
	ctx, cancel := withTimeout(ctx, p.config.Timeout)
	defer cancel()

	out, err := p.runner.Run(ctx, p.config.DumpCommand)
	if err != nil {
		return "", err
	}
	if err := checkDump(string(out)); err != nil {
		return "", fmt.Errorf("%s: %w", p.config.DumpCommand[0], err)
	}
	return string(out), nil
}

func (p *DumpProvider) fromErrorState() (string, error) {
	data, err := os.ReadFile(filepath.Clean(p.config.ErrorStatePath))
	if err != nil {
		return "", err
	}
	if err := checkDump(string(data)); err != nil {
		return "", err
	}
	return string(data), nil
}

// checkDump rejects blank dumps and the kernel's empty error state.
func checkDump(dump string) error {
	text := strings.TrimSpace(dump)
	if text == "" {
		return errors.New("empty dump")
	}
	if strings.Contains(strings.ToLower(text), "no error state collected") {
		return errors.New("no error state collected")
	}
	return nil
}
