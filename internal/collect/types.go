package collect

import (
	"time"

	"gpucrash/internal/config"
)

// Attachment names used in reports
const (
	AttachmentLspci        = "Lspci"
	AttachmentGpuDump      = "IntelGpuDump"
	AttachmentUname        = "Uname"
	AttachmentCpuinfo      = "ProcCpuinfo"
	AttachmentCmdline      = "ProcCmdline"
	AttachmentModules      = "ProcModules"
	AttachmentVersion      = "ProcVersion"
	AttachmentUserGroups   = "UserGroups"
	AttachmentXorgLog      = "XorgLog"
	AttachmentXorgLogOld   = "XorgLogOld"
	AttachmentXorgConf     = "XorgConf"
	AttachmentCurrentDmesg = "CurrentDmesg"
)

// Config configures the input providers and attachment collection
type Config struct {
	LspciCommand   []string
	DumpCommand    []string
	DmesgCommand   []string
	ErrorStatePath string
	Timeout        time.Duration
	IncludeLogs    bool
	IncludeConfig  bool
	ProcDir        string
	XorgLogDir     string
	XorgConfPath   string
}

// NewConfig derives the collection config from loaded settings
func NewConfig(settings config.CollectConfig) *Config {
	return &Config{
		LspciCommand:   append([]string(nil), settings.LspciCommand...),
		DumpCommand:    append([]string(nil), settings.DumpCommand...),
		DmesgCommand:   []string{"dmesg"},
		ErrorStatePath: settings.ErrorStatePath,
		Timeout:        time.Duration(settings.TimeoutSeconds) * time.Second,
		IncludeLogs:    settings.IncludeLogs,
		IncludeConfig:  settings.IncludeConfig,
		ProcDir:        "/proc",
		XorgLogDir:     "/var/log",
		XorgConfPath:   "/etc/X11/xorg.conf",
	}
}
