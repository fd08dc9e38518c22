package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gpucrash/internal/hook"
	"gpucrash/internal/report"
	"gpucrash/internal/tui"
)

func newReportCmd(a *app) *cobra.Command {
	var in inputFlags
	var opts hook.Options
	var interactive bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Collect, classify and write a GPU lockup crash report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			deps, err := a.dependencies(in)
			if err != nil {
				return err
			}

			if interactive {
				opts.Confirm = func(rec report.Record) (tui.Decision, []string, error) {
					return tui.Confirm(rec, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)
				}
			}

			out := cmd.OutOrStdout()
			res, err := hook.New(deps, a.logger).Run(cmd.Context(), opts)
			switch {
			case errors.Is(err, report.ErrExists):
				fmt.Fprintf(out, "Report already filed: %s\n", res.Path)
				return nil
			case err != nil:
				return err
			case res.Suppressed:
				fmt.Fprintf(out, "Report suppressed: %s\n", res.Reason)
			case res.Declined:
				fmt.Fprintln(out, "Report discarded")
			default:
				fmt.Fprintf(out, "Report written: %s\n", res.Path)
				fmt.Fprintf(out, "Signature:      %s\n", res.Record.DuplicateSignature)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for confirmation before writing")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "ignore duplicate suppression")
	return cmd
}
