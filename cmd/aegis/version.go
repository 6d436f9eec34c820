package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aegis/internal/version"
)

var versionShowFull bool

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include build metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show aegis build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("aegis %s\n", version.Version)
		if versionShowFull {
			if version.GitCommit != "" {
				fmt.Printf("commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Printf("built:  %s\n", version.BuildDate)
			}
		}
		return nil
	},
}
