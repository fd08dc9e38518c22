package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gpucrash/internal/report"
)

const (
	gm965Listing = "00:02.0 VGA compatible controller [0300]: Intel Corporation Mobile GM965/GL960 Integrated Graphics Controller [8086:2a02] (rev 0c)\n"
	lockupDump   = "EIR: 0x00000010\nESR: 0x00000001\nPGTBL_ER: 0x00000000\nIPEHR: 0x00000000\n"
)

type testEnv struct {
	dir      string
	config   string
	pci      string
	dump     string
	crashDir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:      dir,
		config:   filepath.Join(dir, "config.yaml"),
		pci:      filepath.Join(dir, "lspci.txt"),
		dump:     filepath.Join(dir, "i915_error_state"),
		crashDir: filepath.Join(dir, "crash"),
	}

	cfg := "logging:\n  level: error\n" +
		"collect:\n  include_logs: false\n  include_config: false\n" +
		"report:\n  dir: " + env.crashDir + "\n" +
		"suppress:\n  state_dir: " + filepath.Join(dir, "state") + "\n"

	for path, content := range map[string]string{
		env.config: cfg,
		env.pci:    gm965Listing,
		env.dump:   lockupDump,
	} {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return env
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("expected version in output, got %q", out)
	}
}

func TestClassifyCommand_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "classify", "--config", env.config, "--pci", env.pci, "--dump", env.dump, "--json")
	if err != nil {
		t.Fatalf("classify failed: %v\n%s", err, out)
	}

	var rec report.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("output is not a record: %v\n%s", err, out)
	}
	if rec.Title != "[i965gm] GPU lockup (EIR: 0x00000010 ESR: 0x00000001)" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Chipset != "i965gm" {
		t.Errorf("Chipset = %q", rec.Chipset)
	}
}

func TestClassifyCommand_Summary(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "classify", "-c", env.config, "--pci", env.pci, "--dump", env.dump)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if !strings.Contains(out, "[i965gm] GPU lockup") || !strings.Contains(out, "freeze") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestReportCommand(t *testing.T) {
	env := newTestEnv(t)
	args := []string{"report", "--config", env.config, "--pci", env.pci, "--dump", env.dump}

	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("report failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Report written") {
		t.Errorf("unexpected output: %s", out)
	}

	matches, _ := filepath.Glob(filepath.Join(env.crashDir, "gpu-lockup-*.crash"))
	if len(matches) != 1 {
		t.Fatalf("expected one report, got %v", matches)
	}

	out, err = run(t, args...)
	if err != nil {
		t.Fatalf("second report failed: %v", err)
	}
	if !strings.Contains(out, "suppressed") {
		t.Errorf("expected suppression, got: %s", out)
	}

	out, err = run(t, append(args, "--force")...)
	if err != nil {
		t.Fatalf("forced report failed: %v", err)
	}
	if !strings.Contains(out, "already filed") {
		t.Errorf("expected existing report notice, got: %s", out)
	}
}

func TestCatalogCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "catalog", "list", "--config", env.config)
	if err != nil {
		t.Fatalf("catalog list failed: %v", err)
	}
	if !strings.HasPrefix(out, "NAME") || !strings.Contains(out, "i965gm") {
		t.Errorf("unexpected list output:\n%s", out)
	}

	out, err = run(t, "catalog", "match", "--config", env.config, strings.TrimSpace(gm965Listing), "Matrox G200 [102b:0522]")
	if err != nil {
		t.Fatalf("catalog match failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "i965gm\t") || !strings.HasPrefix(lines[1], "-\t") {
		t.Errorf("unexpected match output:\n%s", out)
	}

	out, err = run(t, "catalog", "match", "--config", env.config, "--listing", env.pci)
	if err != nil {
		t.Fatalf("catalog match --listing failed: %v", err)
	}
	if !strings.HasPrefix(out, "i965gm\t") {
		t.Errorf("unexpected listing match: %s", out)
	}

	if _, err := run(t, "catalog", "match", "--config", env.config); err == nil {
		t.Error("expected error without lines")
	}
}

func TestConfigTestCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "config", "test", env.config)
	if err != nil {
		t.Fatalf("config test failed: %v", err)
	}
	if !strings.Contains(out, "VALID") || !strings.Contains(out, env.crashDir) {
		t.Errorf("unexpected output:\n%s", out)
	}

	bad := filepath.Join(env.dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("signature:\n  hash: sha1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "config", "test", bad); err == nil {
		t.Error("expected validation failure for unknown hash")
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "schema")
	if err != nil {
		t.Fatalf("schema failed: %v", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if !strings.Contains(out, "duplicate_signature") {
		t.Errorf("schema missing record fields:\n%s", out)
	}
}

func TestSuppressCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "suppress", "status", "--config", env.config)
	if err != nil {
		t.Fatalf("suppress status failed: %v", err)
	}
	if !strings.Contains(out, "Lease:   none") || !strings.Contains(out, "0 filed") {
		t.Errorf("unexpected status before report:\n%s", out)
	}

	if _, err := run(t, "report", "--config", env.config, "--pci", env.pci, "--dump", env.dump); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	title := "[i965gm] GPU lockup (EIR: 0x00000010 ESR: 0x00000001)"
	out, err = run(t, "suppress", "status", "--config", env.config)
	if err != nil {
		t.Fatalf("suppress status failed: %v", err)
	}
	if !strings.Contains(out, "1 filed") || !strings.Contains(out, title) {
		t.Errorf("unexpected status after report:\n%s", out)
	}

	if _, err := run(t, "suppress", "clear", "--config", env.config); err != nil {
		t.Fatalf("suppress clear failed: %v", err)
	}
	out, err = run(t, "suppress", "forget", "--config", env.config, title)
	if err != nil {
		t.Fatalf("suppress forget failed: %v", err)
	}
	if !strings.Contains(out, "Removed 1 ledger entries") {
		t.Errorf("unexpected forget output: %s", out)
	}

	out, _ = run(t, "suppress", "status", "--config", env.config)
	if !strings.Contains(out, "Lease:   none") || !strings.Contains(out, "0 filed") {
		t.Errorf("unexpected status after reset:\n%s", out)
	}
}
