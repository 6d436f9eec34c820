// Package driver sequences the semantic pipeline: decode a frontend
// tree, type-check it, and lower it for the configured target. Each
// invocation builds fresh state, so concurrent compilations never
// share tables or generators.
package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"aegis/internal/ast"
	"aegis/internal/mir"
	"aegis/internal/sema"
)

// Result is the outcome of one compilation. Module is nil whenever the
// bag holds errors: generation only runs on a clean check.
type Result struct {
	Check  sema.Result
	Module *mir.Module
}

// Compile checks root and, if the check is clean, lowers it. An error
// return means the pipeline itself failed (IR verification); source
// problems come back as diagnostics, not errors.
func Compile(root *ast.Node, target mir.Target) (Result, error) {
	res := Result{Check: sema.Check(root)}
	if res.Check.Bag.HasErrors() {
		return res, nil
	}
	m, err := mir.Generate(root, target)
	if err != nil {
		return res, err
	}
	res.Module = m
	return res, nil
}

// LoadTree reads a frontend-encoded tree file.
func LoadTree(path string) (*ast.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tree: %w", err)
	}
	defer f.Close()
	root, err := ast.DecodeTree(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// FileCheck is the per-file outcome of CheckFiles, in input order.
type FileCheck struct {
	Path  string
	Check sema.Result
	Err   error
}

// CheckFiles type-checks every tree file in parallel, one fresh checker
// per file. workers <= 0 means one per CPU. The returned slice matches
// the input order regardless of completion order; the error is the
// first decode failure, with per-file results still populated.
func CheckFiles(ctx context.Context, paths []string, workers int) ([]FileCheck, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]FileCheck, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkOne(path)
			return results[i].Err
		})
	}
	err := g.Wait()
	return results, err
}

func checkOne(path string) FileCheck {
	root, err := LoadTree(path)
	if err != nil {
		return FileCheck{Path: path, Err: err}
	}
	return FileCheck{Path: path, Check: sema.Check(root)}
}
