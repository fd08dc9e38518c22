package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"gpucrash/internal/suppress"
)

func newSuppressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suppress",
		Short: "Inspect and reset duplicate suppression state",
	}
	cmd.AddCommand(newSuppressStatusCmd(a), newSuppressClearCmd(a), newSuppressForgetCmd(a))
	return cmd
}

func (a *app) leaseGate() *suppress.LeaseGate {
	window := time.Duration(a.cfg.Suppress.WindowSeconds) * time.Second
	return suppress.NewLeaseGate(a.cfg.Suppress.StateDir, window, a.logger)
}

func newSuppressStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the report lease and filed signatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			lease, err := a.leaseGate().Status()
			if err != nil {
				return err
			}
			if lease == nil {
				fmt.Fprintln(out, "Lease:   none")
			} else {
				fmt.Fprintf(out, "Lease:   %s (%s)\n", lease.SinceTS.Format(time.RFC3339), lease.ReportPath)
				fmt.Fprintf(out, "Window:  %ds\n", a.cfg.Suppress.WindowSeconds)
			}

			if !a.cfg.Suppress.Ledger {
				fmt.Fprintln(out, "Ledger:  disabled")
				return nil
			}

			entries, err := suppress.NewLedger(a.cfg.Suppress.StateDir, a.logger).Entries()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Ledger:  %d filed\n", len(entries))
			if len(entries) == 0 {
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FILED\tSIGNATURE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\n", e.FiledAt.Format(time.RFC3339), e.Signature)
			}
			return w.Flush()
		},
	}
}

func newSuppressClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the report lease so the next lockup is reported",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if err := a.leaseGate().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Lease cleared")
			return nil
		},
	}
}

func newSuppressForgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget SIGNATURE",
		Short: "Drop a duplicate signature from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			removed, err := suppress.NewLedger(a.cfg.Suppress.StateDir, a.logger).Forget(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d ledger entries\n", removed)
			return nil
		},
	}
}
