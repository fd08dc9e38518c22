package suppress

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gpucrash/internal/logging"
)

func TestNewLeaseGate(t *testing.T) {
	gate := NewLeaseGate("/tmp", time.Minute, logging.NewLogger(logging.LevelError))

	if gate.stateDir != "/tmp" {
		t.Errorf("Expected stateDir '/tmp', got: %s", gate.stateDir)
	}
	if gate.window != time.Minute {
		t.Errorf("Expected window 1m, got: %v", gate.window)
	}
}

func TestLeaseGate_NoLeaseAllows(t *testing.T) {
	gate := NewLeaseGate(t.TempDir(), time.Hour, nil)

	if err := gate.Allow(); err != nil {
		t.Fatalf("Expected no error without lease, got: %v", err)
	}
}

func TestLeaseGate_Window(t *testing.T) {
	tests := []struct {
		name       string
		age        time.Duration
		window     time.Duration
		suppressed bool
	}{
		{"inside window", 10 * time.Second, time.Minute, true},
		{"after window", 2 * time.Minute, time.Minute, false},
		{"zero window disables", time.Second, 0, false},
		{"future lease is ignored", -time.Hour, time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
			gate := NewLeaseGate(t.TempDir(), tt.window, nil)
			gate.now = func() time.Time { return base }

			if err := gate.Record("[i965gm] GPU lockup", "/var/crash/a.crash"); err != nil {
				t.Fatalf("Record failed: %v", err)
			}

			gate.now = func() time.Time { return base.Add(tt.age) }
			err := gate.Allow()

			if tt.suppressed && !errors.Is(err, ErrSuppressed) {
				t.Errorf("Expected ErrSuppressed, got: %v", err)
			}
			if !tt.suppressed && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestLeaseGate_RecordWritesLeaseFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	gate := NewLeaseGate(dir, time.Minute, nil)

	if err := gate.Record("GPU lockup", "/var/crash/b.crash"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, LeaseFileName))
	if err != nil {
		t.Fatalf("Lease file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("Expected lease mode 0600, got %o", perm)
	}

	lease, err := gate.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if lease == nil || lease.ReportPath != "/var/crash/b.crash" {
		t.Errorf("Unexpected lease: %+v", lease)
	}
}

func TestLeaseGate_CorruptLeaseAllows(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LeaseFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	gate := NewLeaseGate(dir, time.Hour, nil)
	if err := gate.Allow(); err != nil {
		t.Errorf("Expected corrupt lease to be ignored, got: %v", err)
	}
}

func TestLeaseGate_Clear(t *testing.T) {
	gate := NewLeaseGate(t.TempDir(), time.Hour, nil)
	if err := gate.Record("GPU lockup", "/x"); err != nil {
		t.Fatal(err)
	}
	if err := gate.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := gate.Allow(); err != nil {
		t.Errorf("Expected allow after clear, got: %v", err)
	}
	if err := gate.Clear(); err != nil {
		t.Errorf("Clear without lease should succeed, got: %v", err)
	}
}
