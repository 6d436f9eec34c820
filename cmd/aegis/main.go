package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aegis/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "aegis",
	Short: "Aegis semantic analyzer and IR generator",
	Long:  `Aegis checks frontend-encoded source trees and lowers them to target IR`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color flag against the output stream.
func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	return isTerminal(f)
}
