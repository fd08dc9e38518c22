package suppress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gpucrash/internal/fsutil"
	"gpucrash/internal/logging"
)

// LeaseFileName is the name of the lease file in the state directory
const LeaseFileName = "last_report.json"

// LeaseGate suppresses reports written within window of the previous one
type LeaseGate struct {
	stateDir string
	window   time.Duration
	logger   *logging.Logger
	now      func() time.Time
}

// NewLeaseGate creates a lease gate; a zero window never suppresses
func NewLeaseGate(stateDir string, window time.Duration, logger *logging.Logger) *LeaseGate {
	return &LeaseGate{
		stateDir: stateDir,
		window:   window,
		logger:   logger,
		now:      time.Now,
	}
}

func (g *LeaseGate) leasePath() string {
	return filepath.Join(g.stateDir, LeaseFileName)
}

// Allow returns ErrSuppressed while the previous lease is younger than the window
func (g *LeaseGate) Allow() error {
	if g.window <= 0 {
		return nil
	}

	lease, err := g.Status()
	if err != nil {
		return err
	}
	if lease == nil {
		return nil
	}

	age := g.now().Sub(lease.SinceTS)
	if age < 0 {
		g.logger.Warn("suppress.lease.future", "Lease timestamp is in the future, ignoring", map[string]interface{}{
			"since_ts": lease.SinceTS.Format(time.RFC3339),
		})
		return nil
	}
	if age < g.window {
		g.logger.Info("suppress.lease.active", "Previous report is too recent", map[string]interface{}{
			"age_seconds":    age.Seconds(),
			"window_seconds": g.window.Seconds(),
			"report_path":    lease.ReportPath,
		})
		return fmt.Errorf("previous report written %s ago: %w", age.Round(time.Second), ErrSuppressed)
	}
	return nil
}

// AllowSignature never suppresses; the lease is signature agnostic
func (g *LeaseGate) AllowSignature(string) error {
	return nil
}

// Record renews the lease
func (g *LeaseGate) Record(signature, reportPath string) error {
	lease := &Lease{
		Signature:  signature,
		ReportPath: reportPath,
		SinceTS:    g.now().UTC(),
	}

	data, err := json.MarshalIndent(lease, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal lease: %w", err)
	}
	if err := fsutil.EnsureDirectory(g.stateDir); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := fsutil.AtomicWriteFile(g.leasePath(), data, fsutil.DefaultFilePermissions, g.logger); err != nil {
		return fmt.Errorf("failed to save lease: %w", err)
	}

	g.logger.Debug("suppress.lease.renewed", "Report lease renewed", map[string]interface{}{
		"report_path": reportPath,
	})
	return nil
}

// Status returns the current lease, or nil when none exists
func (g *LeaseGate) Status() (*Lease, error) {
	data, err := os.ReadFile(g.leasePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lease: %w", err)
	}

	var lease Lease
	if err := json.Unmarshal(data, &lease); err != nil {
		g.logger.Warn("suppress.lease.corrupt", "Ignoring unreadable lease file", map[string]interface{}{
			"path":  g.leasePath(),
			"error": err.Error(),
		})
		return nil, nil
	}
	return &lease, nil
}

// Clear removes the lease
func (g *LeaseGate) Clear() error {
	if err := os.Remove(g.leasePath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lease file: %w", err)
	}
	return nil
}
