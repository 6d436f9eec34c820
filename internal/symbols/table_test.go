package symbols

import (
	"testing"

	"aegis/internal/ast"
)

func TestLookupWalksUp(t *testing.T) {
	table := NewTable(Hints{})
	table.DeclareVar("x", ast.Ref(ast.TypeInt), false)

	table.EnterScope("inner")
	table.DeclareVar("y", ast.Ref(ast.TypeString), true)

	sym, ok := table.Lookup("x")
	if !ok {
		t.Fatalf("Lookup(x) not found from inner scope")
	}
	if sym.VarType.Name != ast.TypeInt {
		t.Errorf("x type = %s, want int", sym.VarType)
	}
	if sym.Scope != GlobalScopeName {
		t.Errorf("x scope = %q, want %q", sym.Scope, GlobalScopeName)
	}

	sym, ok = table.Lookup("y")
	if !ok || !sym.Mutable {
		t.Fatalf("Lookup(y) = %+v, %v; want mutable var", sym, ok)
	}
}

func TestLookupRespectsShadowing(t *testing.T) {
	table := NewTable(Hints{})
	table.DeclareVar("x", ast.Ref(ast.TypeInt), false)
	table.EnterScope("fn")
	table.DeclareVar("x", ast.Ref(ast.TypeString), false)

	sym, ok := table.Lookup("x")
	if !ok || sym.VarType.Name != ast.TypeString {
		t.Fatalf("inner x = %v, want string shadow", sym)
	}

	table.ExitScope()
	sym, ok = table.Lookup("x")
	if !ok || sym.VarType.Name != ast.TypeInt {
		t.Fatalf("outer x = %v, want int after exit", sym)
	}
}

func TestRedeclarationLastWriteWins(t *testing.T) {
	table := NewTable(Hints{})
	table.DeclareVar("x", ast.Ref(ast.TypeInt), false)
	table.DeclareVar("x", ast.Ref(ast.TypeFloat), true)

	sym, ok := table.Lookup("x")
	if !ok {
		t.Fatal("x not found")
	}
	if sym.VarType.Name != ast.TypeFloat || !sym.Mutable {
		t.Errorf("redeclared x = %+v, want mutable float", sym)
	}
}

func TestLookupInScope(t *testing.T) {
	table := NewTable(Hints{})
	table.EnterScope("Point")
	table.DeclareFunc("magnitude", FuncInfo{
		Params: []ParamInfo{{Name: "self", Type: ast.Ref("Point")}},
		Result: ast.Ref(ast.TypeFloat),
		Method: true,
	})
	table.ExitScope()
	table.EnterScope("other")

	sym, ok := table.LookupInScope("magnitude", "Point")
	if !ok {
		t.Fatal("magnitude not found in Point scope")
	}
	if !sym.Fn.Method || sym.Fn.Result.Name != ast.TypeFloat {
		t.Errorf("magnitude = %+v, want float-returning method", sym.Fn)
	}

	if _, ok := table.LookupInScope("magnitude", "other"); ok {
		t.Error("magnitude should not resolve in unrelated scope")
	}
}

func TestScopePath(t *testing.T) {
	table := NewTable(Hints{})
	table.EnterScope("math")
	table.EnterScope("add")
	if got := table.ScopePath(); got != "global.math.add" {
		t.Errorf("ScopePath() = %q, want %q", got, "global.math.add")
	}
	table.ExitScope()
	table.ExitScope()
	table.ExitScope() // extra pop at global stays at global
	if got := table.ScopePath(); got != GlobalScopeName {
		t.Errorf("ScopePath() after pops = %q, want %q", got, GlobalScopeName)
	}
}

func TestEnterExistingReusesScope(t *testing.T) {
	table := NewTable(Hints{})
	table.EnterScope("mod")
	table.DeclareFunc("f", FuncInfo{Result: ast.Ref(ast.TypeVoid)})
	table.ExitScope()

	table.EnterExisting("mod")
	if _, ok := table.Lookup("f"); !ok {
		t.Fatal("f not visible after re-entering mod")
	}
	table.ExitScope()

	table.EnterExisting("fresh")
	if table.CurrentScopeName() != "fresh" {
		t.Errorf("CurrentScopeName() = %q, want fresh", table.CurrentScopeName())
	}
}
