package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"aegis/internal/ast"
	"aegis/internal/mir"
	"aegis/internal/source"
)

func cleanTree(name string) *ast.Node {
	pos := source.Pos{File: name, Line: 1, Col: 1}
	return ast.Module("main", pos,
		ast.Function("id",
			[]*ast.Node{ast.Param("x", ast.Ref(ast.TypeInt), pos)},
			ast.Ref(ast.TypeInt),
			ast.Block(pos, ast.Return(ast.Ident("x", pos), pos)),
			pos,
		),
	)
}

func brokenTree(name string) *ast.Node {
	pos := source.Pos{File: name, Line: 1, Col: 1}
	return ast.Module("main", pos,
		ast.Function("f", nil, ast.Ref(ast.TypeInt), ast.Block(pos), pos),
	)
}

func writeTree(t *testing.T, dir, name string, root *ast.Node) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := ast.EncodeTree(f, root); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func TestCompileClean(t *testing.T) {
	res, err := Compile(cleanTree("a.ae"), mir.Native())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Check.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Check.Bag.Items())
	}
	if res.Module == nil {
		t.Fatal("clean compile should produce a module")
	}
	if _, ok := res.Module.Funcs["main.id"]; !ok {
		t.Errorf("module lacks main.id: %v", res.Module.FuncOrder)
	}
}

func TestCompileStopsOnErrors(t *testing.T) {
	res, err := Compile(brokenTree("b.ae"), mir.Native())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !res.Check.Bag.HasErrors() {
		t.Fatal("broken tree should produce diagnostics")
	}
	if res.Module != nil {
		t.Fatal("generation must not run on an erroneous check")
	}
}

func TestCheckFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTree(t, dir, "one.tree", cleanTree("one.ae")),
		writeTree(t, dir, "two.tree", brokenTree("two.ae")),
		writeTree(t, dir, "three.tree", cleanTree("three.ae")),
	}

	results, err := CheckFiles(context.Background(), paths, 2)
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d path = %s, want %s", i, r.Path, paths[i])
		}
	}
	if results[0].Check.Bag.HasErrors() || results[2].Check.Bag.HasErrors() {
		t.Error("clean files should check clean")
	}
	if !results[1].Check.Bag.HasErrors() {
		t.Error("broken file should carry diagnostics")
	}
}

func TestCheckFilesReportsDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.tree")
	if err := os.WriteFile(bad, []byte("not a tree"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := writeTree(t, dir, "good.tree", cleanTree("good.ae"))

	results, err := CheckFiles(context.Background(), []string{good, bad}, 1)
	if err == nil {
		t.Fatal("decode failure should surface as an error")
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[1].Err == nil {
		t.Error("bad file result should carry its error")
	}
}
