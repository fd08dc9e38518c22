package collect

import (
	"context"
	"strings"
	"time"
)

type fakeResult struct {
	out []byte
	err error
}

// fakeRunner returns canned output keyed by the command name
type fakeRunner struct {
	results map[string]fakeResult
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, argv []string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(argv, " "))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, ok := f.results[argv[0]]
	if !ok {
		return nil, ErrCommandUnavailable
	}
	return res.out, res.err
}

func testConfig(dir string) *Config {
	return &Config{
		LspciCommand:   []string{"lspci", "-vvnn"},
		DumpCommand:    []string{"intel_gpu_dump"},
		DmesgCommand:   []string{"dmesg"},
		ErrorStatePath: dir + "/i915_error_state",
		Timeout:        time.Second,
		IncludeLogs:    true,
		IncludeConfig:  true,
		ProcDir:        dir + "/proc",
		XorgLogDir:     dir + "/log",
		XorgConfPath:   dir + "/xorg.conf",
	}
}
