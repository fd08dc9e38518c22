package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gpucrash/internal/config"
	"gpucrash/internal/logging"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(newConfigTestCmd(a))
	return cmd
}

func newConfigTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test [path]",
		Short: "Test configuration file for validity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(logging.LevelWarn)
			out := cmd.OutOrStdout()

			var cfg config.Config
			var configErr error

			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}

			if path != "" {
				fmt.Fprintf(out, "Testing configuration file: %s\n", path)
				cfg, configErr = config.LoadFrom(path)
			} else {
				fmt.Fprintln(out, "Testing configuration (system + user merge):")
				fmt.Fprintf(out, "  System config: %s\n", config.SystemConfigPath())
				if userPath := config.UserConfigPath(); userPath != "" {
					fmt.Fprintf(out, "  User config:   %s\n", userPath)
				}
				fmt.Fprintln(out)
				cfg, configErr = config.Load()
			}

			if configErr != nil {
				logger.Error("config.validation.error", "Configuration validation failed", map[string]interface{}{
					"error": configErr.Error(),
				})
				return fmt.Errorf("configuration validation failed: %w", configErr)
			}

			fmt.Fprintln(out, "Configuration is VALID")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Configuration Summary:")
			fmt.Fprintf(out, "  Log Level:          %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Log Format:         %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Signature Hash:     %s\n", cfg.Signature.Hash)
			fmt.Fprintf(out, "  Report Dir:         %s\n", cfg.Report.Dir)
			fmt.Fprintf(out, "  Report Format:      %s (%s)\n", cfg.Report.Format, cfg.Report.Compression)
			fmt.Fprintf(out, "  Suppress Window:    %ds (ledger: %t)\n", cfg.Suppress.WindowSeconds, cfg.Suppress.Ledger)
			if cfg.Catalog.ExtraProfiles != "" {
				fmt.Fprintf(out, "  Extra Profiles:     %s (%s)\n", cfg.Catalog.ExtraProfiles, cfg.Catalog.Placement)
			}
			return nil
		},
	}
}
