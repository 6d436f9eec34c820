package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aegis/internal/diagfmt"
	"aegis/internal/driver"
)

var checkWorkers int

func init() {
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0, "parallel workers (0 = one per CPU)")
}

var checkCmd = &cobra.Command{
	Use:   "check <tree-file>...",
	Short: "Type-check frontend tree files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colorize := colorEnabled(cmd, os.Stderr)

		results, err := driver.CheckFiles(cmd.Context(), args, checkWorkers)
		failed := false
		for _, r := range results {
			if r.Err != nil {
				failed = true
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
				continue
			}
			if r.Check.Bag.Len() > 0 {
				fmt.Fprintf(os.Stderr, "%s:\n", r.Path)
				diagfmt.FprintBag(os.Stderr, r.Check.Bag, colorize)
			}
			if r.Check.Bag.HasErrors() {
				failed = true
			}
		}
		if err != nil {
			return err
		}
		if failed {
			os.Exit(1)
		}
		return nil
	},
}
