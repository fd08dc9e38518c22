package main

import (
	"os"

	"github.com/spf13/cobra"

	"gpucrash/internal/config"
	"gpucrash/internal/fsutil"
	"gpucrash/internal/logging"
)

// app carries the state shared by the subcommands
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gpucrash",
		Short: "Classify and file GPU lockup crash reports",
		Long: `gpucrash turns a GPU hang into a crash report the triage system can group.
It identifies the graphics chipset from the PCI listing, derives a signature
from the GPU error dump and writes one report per distinct lockup.`,
		Example: `
# Show how the current lockup would be classified
gpucrash classify

# Classify saved inputs
gpucrash classify --pci lspci.txt --dump i915_error_state

# File a report, asking first
gpucrash report --interactive
  `,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				fsutil.CloseWithError(a.logger.Close, nil, "log file")
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (default: system + user config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "override logging.format (json, text)")

	root.AddCommand(
		newClassifyCmd(a),
		newReportCmd(a),
		newCatalogCmd(a),
		newConfigCmd(a),
		newSuppressCmd(a),
		newSchemaCmd(),
		newVersionCmd(),
	)

	return root
}

// setup loads the configuration and builds the logger
func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		a.cfg.Logging.Format = a.logFormat
	}
	a.cfg.Suppress.StateDir = fsutil.GetStateDir(a.cfg.Suppress.StateDir)

	level := logging.ParseLevel(a.cfg.Logging.Level)
	format := logging.Format(a.cfg.Logging.Format)

	if a.cfg.Logging.File != "" {
		a.logger, err = logging.NewFileLogger(level, format, a.cfg.Logging.File)
		if err != nil {
			return err
		}
		return nil
	}

	a.logger = logging.NewLoggerWithWriter(level, format, os.Stderr)
	return nil
}
