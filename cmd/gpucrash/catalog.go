package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gpucrash/internal/hook"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the hardware catalog",
	}
	cmd.AddCommand(newCatalogListCmd(a), newCatalogMatchCmd(a))
	return cmd
}

func newCatalogListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hardware profiles in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			matcher, err := hook.NewMatcher(a.cfg.Catalog)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATTERN")
			for _, p := range matcher.Profiles() {
				fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Pattern)
			}
			return w.Flush()
		},
	}
}

func newCatalogMatchCmd(a *app) *cobra.Command {
	var listingFile string

	cmd := &cobra.Command{
		Use:   "match [LINE...]",
		Short: "Show which profile a device line or listing resolves to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && listingFile == "" {
				return fmt.Errorf("give at least one device line or --listing")
			}
			if err := a.setup(); err != nil {
				return err
			}
			matcher, err := hook.NewMatcher(a.cfg.Catalog)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range args {
				if name, ok := matcher.Identify(line); ok {
					fmt.Fprintf(out, "%s\t%s\n", name, line)
				} else {
					fmt.Fprintf(out, "-\t%s\n", line)
				}
			}

			if listingFile != "" {
				data, err := os.ReadFile(filepath.Clean(listingFile))
				if err != nil {
					return fmt.Errorf("failed to read listing: %w", err)
				}
				if name, ok := matcher.IdentifyListing(string(data)); ok {
					fmt.Fprintf(out, "%s\t%s\n", name, listingFile)
				} else {
					fmt.Fprintf(out, "-\t%s\n", listingFile)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listingFile, "listing", "", "match a full lspci listing read from `FILE`")
	return cmd
}
