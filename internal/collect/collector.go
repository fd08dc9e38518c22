package collect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"

	"gpucrash/internal/logging"
)

// Collector gathers the supplementary system attachments of a crash report.
// Missing sources are skipped; only the attachments that could be read are
// returned.
type Collector struct {
	config   *Config
	runner   Runner
	redactor *Redactor
	logger   *logging.Logger
}

// NewCollector creates a new attachment collector
func NewCollector(config *Config, runner Runner, logger *logging.Logger) *Collector {
	return &Collector{
		config:   config,
		runner:   runner,
		redactor: NewRedactor(),
		logger:   logger,
	}
}

// Collect gathers every enabled attachment
func (c *Collector) Collect(ctx context.Context) map[string][]byte {
	files := make(map[string][]byte)

	merge := func(part map[string][]byte) {
		for name, data := range part {
			files[name] = data
		}
	}

	merge(c.CollectSystemInfo())
	merge(c.CollectLogs(ctx))
	merge(c.CollectConfig())

	c.logger.Info("collect.attachments.complete", "Attachment collection complete", map[string]interface{}{
		"count": len(files),
		"names": names(files),
	})
	return files
}

// CollectSystemInfo gathers kernel, CPU and user information
func (c *Collector) CollectSystemInfo() map[string][]byte {
	files := make(map[string][]byte)

	if text, err := uname(); err == nil {
		files[AttachmentUname] = []byte(text)
	} else {
		c.skip(AttachmentUname, err)
	}

	procFiles := map[string]string{
		AttachmentCpuinfo: "cpuinfo",
		AttachmentCmdline: "cmdline",
		AttachmentModules: "modules",
		AttachmentVersion: "version",
	}
	for name, rel := range procFiles {
		if data, err := c.readFile(filepath.Join(c.config.ProcDir, rel)); err == nil {
			files[name] = data
		} else {
			c.skip(name, err)
		}
	}

	if groups, err := userGroups(); err == nil {
		files[AttachmentUserGroups] = []byte(groups)
	} else {
		c.skip(AttachmentUserGroups, err)
	}

	return files
}

// CollectLogs gathers the X server logs and the kernel ring buffer
func (c *Collector) CollectLogs(ctx context.Context) map[string][]byte {
	if !c.config.IncludeLogs {
		return nil
	}

	files := make(map[string][]byte)

	logFiles := map[string]string{
		AttachmentXorgLog:    "Xorg.0.log",
		AttachmentXorgLogOld: "Xorg.0.log.old",
	}
	for name, rel := range logFiles {
		if data, err := c.readFile(filepath.Join(c.config.XorgLogDir, rel)); err == nil {
			files[name] = []byte(c.redactor.Redact(string(data)))
		} else {
			c.skip(name, err)
		}
	}

	if len(c.config.DmesgCommand) > 0 {
		runCtx, cancel := withTimeout(ctx, c.config.Timeout)
		out, err := c.runner.Run(runCtx, c.config.DmesgCommand)
		cancel()
		if err == nil && len(out) > 0 {
			files[AttachmentCurrentDmesg] = out
		} else if err != nil {
			c.skip(AttachmentCurrentDmesg, err)
		}
	}

	return files
}

// CollectConfig gathers and redacts the X server configuration
func (c *Collector) CollectConfig() map[string][]byte {
	if !c.config.IncludeConfig || c.config.XorgConfPath == "" {
		return nil
	}

	data, err := c.readFile(c.config.XorgConfPath)
	if err != nil {
		c.skip(AttachmentXorgConf, err)
		return nil
	}

	return map[string][]byte{
		AttachmentXorgConf: []byte(c.redactor.Redact(string(data))),
	}
}

func (c *Collector) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return data, nil
}

func (c *Collector) skip(name string, err error) {
	level := c.logger.Debug
	if !errors.Is(err, os.ErrNotExist) && !errors.Is(err, ErrCommandUnavailable) {
		level = c.logger.Warn
	}
	level("collect.attachment.skipped", "Attachment not collected", map[string]interface{}{
		"attachment": name,
		"error":      err.Error(),
	})
}

func userGroups() (string, error) {
	current, err := user.Current()
	if err != nil {
		return "", err
	}
	ids, err := current.GroupIds()
	if err != nil {
		return "", err
	}

	groups := make([]string, 0, len(ids))
	for _, id := range ids {
		if g, err := user.LookupGroupId(id); err == nil {
			groups = append(groups, g.Name)
		}
	}
	sort.Strings(groups)
	return strings.Join(groups, " "), nil
}

func names(files map[string][]byte) []string {
	out := make([]string, 0, len(files))
	for name := range files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
