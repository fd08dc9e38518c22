package collect

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gpucrash/internal/logging"
)

const gm965Line = "00:02.0 VGA compatible controller [0300]: Intel Corporation Mobile GM965/GL960 Integrated Graphics Controller [8086:2a02] (rev 0c)\n"

func TestPCIProvider_Listing(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"lspci": {out: []byte(gm965Line)},
	}}
	provider := NewPCIProvider(testConfig(t.TempDir()), runner, logging.NewLogger(logging.LevelError))

	listing, err := provider.Listing(context.Background())
	if err != nil {
		t.Fatalf("Listing() error = %v", err)
	}
	if listing != gm965Line {
		t.Errorf("Listing() = %q", listing)
	}
	if len(runner.calls) != 1 || runner.calls[0] != "lspci -vvnn" {
		t.Errorf("unexpected calls: %v", runner.calls)
	}
}

func TestPCIProvider_CommandUnavailable(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{}}
	provider := NewPCIProvider(testConfig(t.TempDir()), runner, nil)

	_, err := provider.Listing(context.Background())
	if !errors.Is(err, ErrCommandUnavailable) {
		t.Fatalf("expected ErrCommandUnavailable, got %v", err)
	}
}

func TestPCIProvider_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lspci.txt")
	if err := os.WriteFile(path, []byte(gm965Line), 0o600); err != nil {
		t.Fatal(err)
	}

	provider := NewPCIProvider(testConfig(t.TempDir()), &fakeRunner{}, nil).FromFile(path)
	listing, err := provider.Listing(context.Background())
	if err != nil {
		t.Fatalf("Listing() error = %v", err)
	}
	if listing != gm965Line {
		t.Errorf("Listing() = %q", listing)
	}
}

func TestDumpProvider_Sources(t *testing.T) {
	const commandDump = "EIR: 0x00000010\n"
	const stateDump = "Time: 1 s\nEIR: 0x00000001\n"

	tests := []struct {
		name      string
		results   map[string]fakeResult
		state     string
		want      string
		wantError bool
	}{
		{
			name:    "command output wins",
			results: map[string]fakeResult{"intel_gpu_dump": {out: []byte(commandDump)}},
			state:   stateDump,
			want:    commandDump,
		},
		{
			name:    "falls back to error state when command missing",
			results: map[string]fakeResult{},
			state:   stateDump,
			want:    stateDump,
		},
		{
			name:    "falls back when command output is empty",
			results: map[string]fakeResult{"intel_gpu_dump": {out: []byte("  \n")}},
			state:   stateDump,
			want:    stateDump,
		},
		{
			name:      "no error state collected",
			results:   map[string]fakeResult{"intel_gpu_dump": {err: errors.New("exit status 1")}},
			state:     "No error state collected\n",
			wantError: true,
		},
		{
			name:      "nothing available",
			results:   map[string]fakeResult{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := testConfig(dir)
			if tt.state != "" {
				if err := os.WriteFile(cfg.ErrorStatePath, []byte(tt.state), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			provider := NewDumpProvider(cfg, &fakeRunner{results: tt.results}, nil)
			dump, err := provider.Dump(context.Background())

			if tt.wantError {
				if !errors.Is(err, ErrDumpUnavailable) {
					t.Fatalf("expected ErrDumpUnavailable, got %v", err)
				}
				if dump != "" {
					t.Errorf("expected empty dump, got %q", dump)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dump() error = %v", err)
			}
			if dump != tt.want {
				t.Errorf("Dump() = %q, want %q", dump, tt.want)
			}
		})
	}
}

func TestDumpProvider_FromFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError bool
	}{
		{"dump", "EIR: 0x00000010\n", false},
		{"whitespace only", " \n\t\n", true},
		{"empty", "", true},
		{"saved empty error state", "No error state collected\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "i915_error_state")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			provider := NewDumpProvider(testConfig(t.TempDir()), &fakeRunner{}, nil).FromFile(path)
			dump, err := provider.Dump(context.Background())

			if tt.wantError {
				if !errors.Is(err, ErrDumpUnavailable) {
					t.Fatalf("expected ErrDumpUnavailable, got %v", err)
				}
				if dump != "" {
					t.Errorf("expected empty dump, got %q", dump)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dump() error = %v", err)
			}
			if dump != tt.content {
				t.Errorf("Dump() = %q, want %q", dump, tt.content)
			}
		})
	}
}

func TestDumpProvider_ReportsEveryFailure(t *testing.T) {
	cfg := testConfig(t.TempDir())
	provider := NewDumpProvider(cfg, &fakeRunner{}, nil)

	_, err := provider.Dump(context.Background())
	if !errors.Is(err, ErrCommandUnavailable) {
		t.Errorf("expected joined ErrCommandUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected joined os.ErrNotExist, got %v", err)
	}
	if !strings.Contains(err.Error(), "intel_gpu_dump") {
		t.Errorf("error should name the command: %v", err)
	}
}

func TestExecRunner_MissingCommand(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), []string{"gpucrash-definitely-not-installed"})
	if !errors.Is(err, ErrCommandUnavailable) {
		t.Fatalf("expected ErrCommandUnavailable, got %v", err)
	}

	_, err = ExecRunner{}.Run(context.Background(), nil)
	if !errors.Is(err, ErrCommandUnavailable) {
		t.Fatalf("expected ErrCommandUnavailable for empty argv, got %v", err)
	}
}
