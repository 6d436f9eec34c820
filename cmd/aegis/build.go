package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"aegis/internal/diagfmt"
	"aegis/internal/driver"
	"aegis/internal/mir"
	"aegis/internal/project"
)

var (
	buildOutput string
	buildTarget string
	buildEmit   string
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output path (default: input with .mir extension)")
	buildCmd.Flags().StringVar(&buildTarget, "target", "", "generation target (native|wasm32); overrides the manifest")
	buildCmd.Flags().StringVar(&buildEmit, "emit", "bin", "output format (bin|text)")
}

var buildCmd = &cobra.Command{
	Use:   "build <tree-file>",
	Short: "Check a tree file and lower it to IR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		colorize := colorEnabled(cmd, os.Stderr)

		target, err := resolveTarget(path)
		if err != nil {
			return err
		}

		root, err := driver.LoadTree(path)
		if err != nil {
			return err
		}
		result, err := driver.Compile(root, target)
		if result.Check.Bag.Len() > 0 {
			diagfmt.FprintBag(os.Stderr, result.Check.Bag, colorize)
		}
		if err != nil {
			return err
		}
		if result.Module == nil {
			os.Exit(1)
		}

		if buildEmit == "text" {
			if buildOutput == "" || buildOutput == "-" {
				return mir.Fprint(os.Stdout, result.Module)
			}
			return writeOut(buildOutput, func(f *os.File) error {
				return mir.Fprint(f, result.Module)
			})
		}

		out := buildOutput
		if out == "" {
			out = strings.TrimSuffix(path, filepath.Ext(path)) + ".mir"
		}
		return writeOut(out, func(f *os.File) error {
			return mir.EncodeModule(f, result.Module)
		})
	},
}

func resolveTarget(inputPath string) (mir.Target, error) {
	if buildTarget != "" {
		t, ok := mir.ByName(buildTarget)
		if !ok {
			return mir.Target{}, fmt.Errorf("unknown target %q", buildTarget)
		}
		return t, nil
	}
	manifest, err := project.Find(filepath.Dir(inputPath))
	if err != nil {
		return mir.Target{}, err
	}
	return manifest.Target(), nil
}

func writeOut(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
