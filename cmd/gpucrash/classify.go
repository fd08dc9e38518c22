package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gpucrash/internal/collect"
	"gpucrash/internal/hook"
	"gpucrash/internal/report"
	"gpucrash/internal/tui"
)

// inputFlags select saved inputs instead of running the collaborator commands
type inputFlags struct {
	pciFile  string
	dumpFile string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pciFile, "pci", "", "read the PCI listing from `FILE` instead of running lspci")
	cmd.Flags().StringVar(&f.dumpFile, "dump", "", "read the GPU dump from `FILE` instead of running the dump command")
}

// dependencies wires the production collaborators, replacing the providers
// with file readers when saved inputs were given
func (a *app) dependencies(in inputFlags) (hook.Dependencies, error) {
	deps, err := hook.Wire(a.cfg, a.logger)
	if err != nil {
		return hook.Dependencies{}, err
	}

	collectCfg := collect.NewConfig(a.cfg.Collect)
	if in.pciFile != "" {
		deps.PCI = collect.NewPCIProvider(collectCfg, collect.ExecRunner{}, a.logger).FromFile(in.pciFile)
		deps.Devices = nil
	}
	if in.dumpFile != "" {
		deps.Dumps = collect.NewDumpProvider(collectCfg, collect.ExecRunner{}, a.logger).FromFile(in.dumpFile)
	}
	return deps, nil
}

func newClassifyCmd(a *app) *cobra.Command {
	var in inputFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify the current GPU lockup without writing a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			deps, err := a.dependencies(in)
			if err != nil {
				return err
			}

			classified, _, _ := hook.New(deps, a.logger).Classify(cmd.Context())
			rec := report.NewRecord(classified, deps.Algorithm, time.Now())

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode classification: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprint(out, tui.RenderSummary(rec))
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the classification as JSON")
	return cmd
}
