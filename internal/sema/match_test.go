package sema

import (
	"strings"
	"testing"

	"aegis/internal/ast"
	"aegis/internal/diag"
)

// resultEnum builds `enum Result { Ok(value: int), Err(message: string) }`.
func resultEnum() *ast.Node {
	return ast.Enum("Result", pos(2, 1),
		ast.Variant("Ok", pos(3, 5), ast.Field("value", intRef(), pos(3, 8))),
		ast.Variant("Err", pos(4, 5), ast.Field("message", stringRef(), pos(4, 9))),
	)
}

func matchProgram(branches ...*ast.Node) *ast.Node {
	return ast.Module("main", pos(1, 1), resultEnum(),
		ast.Function("handle", []*ast.Node{ast.Param("r", ast.Ref("Result"), pos(7, 12))}, voidRef(),
			ast.Block(pos(7, 30),
				ast.Match(ast.Ident("r", pos(8, 11)), pos(8, 5), branches...),
			),
			pos(7, 1),
		),
	)
}

func TestMatchExhaustive(t *testing.T) {
	root := matchProgram(
		ast.Branch(
			ast.VariantPattern("Ok", pos(9, 9), ast.Ident("value", pos(9, 12))),
			ast.Block(pos(9, 20), ast.ExprStmt(ast.Call(ast.Ident("print", pos(10, 13)), pos(10, 13), ast.Ident("value", pos(10, 19))), pos(10, 13))),
			pos(9, 9)),
		ast.Branch(
			ast.VariantPattern("Err", pos(11, 9), ast.Ident("message", pos(11, 13))),
			ast.Block(pos(11, 22), ast.ExprStmt(ast.Call(ast.Ident("print", pos(12, 13)), pos(12, 13), ast.Ident("message", pos(12, 19))), pos(12, 13))),
			pos(11, 9)),
	)
	res := Check(root)
	if res.Bag.HasErrors() {
		t.Fatalf("exhaustive match should be clean, got %v", res.Bag.Items())
	}
}

func TestMatchNonExhaustiveNamesMissing(t *testing.T) {
	root := matchProgram(
		ast.Branch(
			ast.VariantPattern("Ok", pos(9, 9), ast.Ident("value", pos(9, 12))),
			ast.Block(pos(9, 20)),
			pos(9, 9)),
	)
	res := Check(root)
	if !hasCode(res.Bag, diag.TypeNonExhaustive) {
		t.Fatal("match missing Err should be reported")
	}
	msg := firstMessage(res.Bag, diag.TypeNonExhaustive)
	if !strings.Contains(msg, "missing variants: Err") {
		t.Errorf("message should name exactly the missing variant, got %q", msg)
	}
}

func TestMatchCatchAllCovers(t *testing.T) {
	root := matchProgram(
		ast.Branch(
			ast.VariantPattern("Ok", pos(9, 9), ast.Ident("value", pos(9, 12))),
			ast.Block(pos(9, 20)),
			pos(9, 9)),
		ast.Branch(ast.Ident("other", pos(10, 9)), ast.Block(pos(10, 18)), pos(10, 9)),
	)
	res := Check(root)
	if hasCode(res.Bag, diag.TypeNonExhaustive) {
		t.Error("catch-all binding should satisfy exhaustiveness")
	}
}

func TestMatchUnknownVariantListsValid(t *testing.T) {
	root := matchProgram(
		ast.Branch(
			ast.VariantPattern("Oops", pos(9, 9)),
			ast.Block(pos(9, 18)),
			pos(9, 9)),
	)
	res := Check(root)
	if !hasCode(res.Bag, diag.TypeBadPattern) {
		t.Fatal("unknown variant should be reported")
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.TypeBadPattern {
			if !strings.Contains(d.Suggestion, "Ok") || !strings.Contains(d.Suggestion, "Err") {
				t.Errorf("suggestion should list valid variants, got %q", d.Suggestion)
			}
		}
	}
}

func TestMatchVariantArity(t *testing.T) {
	root := matchProgram(
		ast.Branch(
			ast.VariantPattern("Ok", pos(9, 9)), // Ok carries one field
			ast.Block(pos(9, 16)),
			pos(9, 9)),
		ast.Branch(ast.Ident("rest", pos(10, 9)), ast.Block(pos(10, 17)), pos(10, 9)),
	)
	res := Check(root)
	if !hasCode(res.Bag, diag.TypeArityMismatch) {
		t.Fatal("variant pattern with wrong field count should be reported")
	}
}

func TestMatchGuardMustBeBool(t *testing.T) {
	root := matchProgram(
		ast.GuardedBranch(
			ast.VariantPattern("Ok", pos(9, 9), ast.Ident("value", pos(9, 12))),
			ast.IntLit(1, pos(9, 22)),
			ast.Block(pos(9, 26)),
			pos(9, 9)),
		ast.Branch(ast.Ident("rest", pos(10, 9)), ast.Block(pos(10, 17)), pos(10, 9)),
	)
	res := Check(root)
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.TypeMismatch && strings.Contains(d.Message, "guard") {
			found = true
		}
	}
	if !found {
		t.Fatalf("non-boolean guard should be reported, got %v", res.Bag.Items())
	}
}

func TestMatchBindsVariantFields(t *testing.T) {
	// value binds as int inside the Ok branch, so adding 1 to it is fine
	// but concatenating it to a string is not.
	root := matchProgram(
		ast.Branch(
			ast.VariantPattern("Ok", pos(9, 9), ast.Ident("value", pos(9, 12))),
			ast.Block(pos(9, 20),
				ast.Let("next", refPtr(intRef()),
					ast.Binary(ast.OpAdd, ast.Ident("value", pos(10, 24)), ast.IntLit(1, pos(10, 32)), pos(10, 30)),
					pos(10, 13)),
			),
			pos(9, 9)),
		ast.Branch(ast.Ident("rest", pos(11, 9)), ast.Block(pos(11, 17)), pos(11, 9)),
	)
	res := Check(root)
	if res.Bag.HasErrors() {
		t.Fatalf("bound variant field should type as int, got %v", res.Bag.Items())
	}
}

func TestMatchLiteralPatternType(t *testing.T) {
	root := ast.Module("main", pos(1, 1),
		ast.Function("f", []*ast.Node{ast.Param("n", intRef(), pos(2, 7))}, voidRef(),
			ast.Block(pos(2, 20),
				ast.Match(ast.Ident("n", pos(3, 11)), pos(3, 5),
					ast.Branch(ast.StringLit("one", pos(4, 9)), ast.Block(pos(4, 16)), pos(4, 9)),
					ast.Branch(ast.Ident("rest", pos(5, 9)), ast.Block(pos(5, 17)), pos(5, 9)),
				),
			),
			pos(2, 1),
		),
	)
	res := Check(root)
	if !hasCode(res.Bag, diag.TypeBadPattern) {
		t.Fatal("string literal pattern against int subject should be reported")
	}
}
