package sema

import (
	"strings"
	"testing"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/source"
)

func pos(line, col uint32) source.Pos {
	return source.Pos{File: "test.ae", Line: line, Col: col}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func firstMessage(bag *diag.Bag, code diag.Code) string {
	for _, d := range bag.Items() {
		if d.Code == code {
			return d.Message
		}
	}
	return ""
}

func intRef() ast.TypeRef    { return ast.Ref(ast.TypeInt) }
func floatRef() ast.TypeRef  { return ast.Ref(ast.TypeFloat) }
func boolRef() ast.TypeRef   { return ast.Ref(ast.TypeBool) }
func stringRef() ast.TypeRef { return ast.Ref(ast.TypeString) }
func voidRef() ast.TypeRef   { return ast.Ref(ast.TypeVoid) }

func refPtr(t ast.TypeRef) *ast.TypeRef { return &t }

func TestCheckCleanProgram(t *testing.T) {
	root := ast.Module("main", pos(1, 1),
		ast.Function("add",
			[]*ast.Node{
				ast.Param("a", intRef(), pos(2, 8)),
				ast.Param("b", intRef(), pos(2, 16)),
			},
			intRef(),
			ast.Block(pos(2, 25),
				ast.Return(ast.Binary(ast.OpAdd, ast.Ident("a", pos(3, 12)), ast.Ident("b", pos(3, 16)), pos(3, 14)), pos(3, 5)),
			),
			pos(2, 1),
		),
		ast.Function("main", nil, voidRef(),
			ast.Block(pos(6, 15),
				ast.Let("sum", refPtr(intRef()),
					ast.Call(ast.Ident("add", pos(7, 15)), pos(7, 15), ast.IntLit(1, pos(7, 19)), ast.IntLit(2, pos(7, 22))),
					pos(7, 5)),
				ast.ExprStmt(ast.Call(ast.Ident("print", pos(8, 5)), pos(8, 5), ast.StringLit("done", pos(8, 11))), pos(8, 5)),
			),
			pos(6, 1),
		),
	)

	res := Check(root)
	if res.Bag.Len() != 0 {
		t.Fatalf("clean program produced %d diagnostics: %v", res.Bag.Len(), res.Bag.Items())
	}
}

func TestCheckMissingReturn(t *testing.T) {
	fn := func(body *ast.Node) *ast.Node {
		return ast.Module("main", pos(1, 1),
			ast.Function("f", nil, intRef(), body, pos(2, 1)),
		)
	}

	res := Check(fn(ast.Block(pos(2, 15))))
	if !hasCode(res.Bag, diag.TypeMissingReturn) {
		t.Error("empty non-void body should report a missing return")
	}

	res = Check(fn(ast.Block(pos(2, 15),
		ast.Return(ast.IntLit(1, pos(3, 12)), pos(3, 5)),
	)))
	if hasCode(res.Bag, diag.TypeMissingReturn) {
		t.Error("body with return should not report a missing return")
	}
}

func TestCheckReturnCoverageIsAnyPath(t *testing.T) {
	// A return inside only one branch still satisfies the checker; path
	// completeness is the generator's concern via the default return.
	root := ast.Module("main", pos(1, 1),
		ast.Function("f", []*ast.Node{ast.Param("x", intRef(), pos(2, 7))}, intRef(),
			ast.Block(pos(2, 20),
				ast.If(
					ast.Binary(ast.OpGt, ast.Ident("x", pos(3, 8)), ast.IntLit(0, pos(3, 12)), pos(3, 10)),
					ast.Block(pos(3, 15), ast.Return(ast.Ident("x", pos(4, 16)), pos(4, 9))),
					pos(3, 5),
				),
			),
			pos(2, 1),
		),
	)
	res := Check(root)
	if hasCode(res.Bag, diag.TypeMissingReturn) {
		t.Error("return in a branch should count as return coverage")
	}
}

func TestCheckWideningDirection(t *testing.T) {
	root := ast.Module("main", pos(1, 1),
		ast.Function("f", nil, voidRef(),
			ast.Block(pos(2, 15),
				ast.Let("a", refPtr(floatRef()), ast.IntLit(1, pos(3, 20)), pos(3, 5)),
				ast.Let("b", refPtr(intRef()), ast.FloatLit(1.5, pos(4, 18)), pos(4, 5)),
			),
			pos(2, 1),
		),
	)
	res := Check(root)
	if !hasCode(res.Bag, diag.TypeMismatch) {
		t.Fatal("float literal to int variable should be rejected")
	}
	msg := firstMessage(res.Bag, diag.TypeMismatch)
	if !strings.Contains(msg, "'b'") {
		t.Errorf("mismatch should name b, got %q", msg)
	}
}

func TestCheckImmutableAssign(t *testing.T) {
	body := func(decl *ast.Node) *ast.Node {
		return ast.Module("main", pos(1, 1),
			ast.Function("f", nil, voidRef(),
				ast.Block(pos(2, 15),
					decl,
					ast.Assign(ast.Ident("x", pos(4, 5)), ast.IntLit(2, pos(4, 9)), pos(4, 7)),
				),
				pos(2, 1),
			),
		)
	}

	res := Check(body(ast.Let("x", refPtr(intRef()), ast.IntLit(1, pos(3, 18)), pos(3, 5))))
	if !hasCode(res.Bag, diag.TypeImmutableAssign) {
		t.Error("assignment to let binding should be rejected")
	}

	res = Check(body(ast.Var("x", refPtr(intRef()), ast.IntLit(1, pos(3, 18)), pos(3, 5))))
	if hasCode(res.Bag, diag.TypeImmutableAssign) {
		t.Error("assignment to var binding should be allowed")
	}
}

func TestCheckUndefinedSymbol(t *testing.T) {
	root := ast.Module("main", pos(1, 1),
		ast.Function("f", nil, voidRef(),
			ast.Block(pos(2, 15),
				ast.ExprStmt(ast.Ident("ghost", pos(3, 5)), pos(3, 5)),
			),
			pos(2, 1),
		),
	)
	res := Check(root)
	if !hasCode(res.Bag, diag.TypeUndefinedSymbol) {
		t.Fatal("unknown identifier should be reported")
	}
}

func TestCheckConditionMustBeBool(t *testing.T) {
	root := ast.Module("main", pos(1, 1),
		ast.Function("f", nil, voidRef(),
			ast.Block(pos(2, 15),
				ast.If(ast.IntLit(1, pos(3, 8)), ast.Block(pos(3, 11)), pos(3, 5)),
				ast.While(ast.StringLit("no", pos(4, 11)), ast.Block(pos(4, 16)), pos(4, 5)),
			),
			pos(2, 1),
		),
	)
	res := Check(root)
	count := 0
	for _, d := range res.Bag.Items() {
		if d.Code == diag.TypeMismatch && strings.Contains(d.Message, "condition must be a boolean") {
			count++
		}
	}
	if count != 2 {
		t.Errorf("got %d condition diagnostics, want 2: %v", count, res.Bag.Items())
	}
}

func TestCheckForIterables(t *testing.T) {
	loop := func(iterable *ast.Node) *ast.Node {
		return ast.Module("main", pos(1, 1),
			ast.Function("f", nil, voidRef(),
				ast.Block(pos(2, 15),
					ast.For("item", iterable,
						ast.Block(pos(3, 25),
							ast.ExprStmt(ast.Call(ast.Ident("print", pos(4, 9)), pos(4, 9), ast.Ident("item", pos(4, 15))), pos(4, 9)),
						),
						pos(3, 5)),
				),
				pos(2, 1),
			),
		)
	}

	rangeCall := ast.Call(ast.Ident("range", pos(3, 17)), pos(3, 17), ast.IntLit(0, pos(3, 23)), ast.IntLit(10, pos(3, 26)))
	res := Check(loop(rangeCall))
	if res.Bag.HasErrors() {
		t.Errorf("for over range(0, 10) should be clean, got %v", res.Bag.Items())
	}

	res = Check(loop(ast.IntLit(5, pos(3, 17))))
	if !hasCode(res.Bag, diag.TypeNotIterable) {
		t.Error("for over int should be rejected")
	}
}

func TestCheckMethodCall(t *testing.T) {
	point := ast.Struct("Point", pos(2, 1),
		ast.Field("x", floatRef(), pos(3, 5)),
		ast.Field("y", floatRef(), pos(4, 5)),
		ast.Function("scale",
			[]*ast.Node{
				ast.Param("self", ast.Ref("Point"), pos(5, 14)),
				ast.Param("factor", floatRef(), pos(5, 20)),
			},
			floatRef(),
			ast.Block(pos(5, 35),
				ast.Return(ast.Binary(ast.OpMul,
					ast.Member(ast.Ident("self", pos(6, 16)), "x", pos(6, 21)),
					ast.Ident("factor", pos(6, 25)),
					pos(6, 23)), pos(6, 9)),
			),
			pos(5, 5),
		),
	)

	call := func(args ...*ast.Node) *ast.Node {
		return ast.Module("main", pos(1, 1), point,
			ast.Function("f", []*ast.Node{ast.Param("p", ast.Ref("Point"), pos(9, 7))}, floatRef(),
				ast.Block(pos(9, 25),
					ast.Return(ast.Call(ast.Member(ast.Ident("p", pos(10, 12)), "scale", pos(10, 14)), pos(10, 14), args...), pos(10, 5)),
				),
				pos(9, 1),
			),
		)
	}

	// self is implicit: one explicit argument.
	res := Check(call(ast.FloatLit(2.0, pos(10, 22))))
	if res.Bag.HasErrors() {
		t.Errorf("method call with one argument should be clean, got %v", res.Bag.Items())
	}

	res = Check(call())
	if !hasCode(res.Bag, diag.TypeArityMismatch) {
		t.Error("method call missing the argument should be rejected")
	}

	res = Check(call(ast.StringLit("x", pos(10, 22))))
	if !hasCode(res.Bag, diag.TypeMismatch) {
		t.Error("method call with a string factor should be rejected")
	}
}

func TestCheckUnknownMember(t *testing.T) {
	root := ast.Module("main", pos(1, 1),
		ast.Struct("Point", pos(2, 1), ast.Field("x", floatRef(), pos(3, 5))),
		ast.Function("f", []*ast.Node{ast.Param("p", ast.Ref("Point"), pos(5, 7))}, voidRef(),
			ast.Block(pos(5, 25),
				ast.ExprStmt(ast.Member(ast.Ident("p", pos(6, 5)), "z", pos(6, 7)), pos(6, 5)),
			),
			pos(5, 1),
		),
	)
	res := Check(root)
	if !hasCode(res.Bag, diag.TypeUnknownMember) {
		t.Fatal("access to a missing field should be reported")
	}
}

func TestCheckAwaitRules(t *testing.T) {
	asyncWork := ast.AsyncFunction("work", nil, ast.Ref(ast.TypeTask, intRef()),
		ast.Block(pos(2, 30), ast.Return(ast.Spawn(ast.IntLit(1, pos(3, 18)), pos(3, 12)), pos(3, 5))),
		pos(2, 1),
	)

	awaitIn := func(wrap func(name string, params []*ast.Node, ret ast.TypeRef, body *ast.Node, p source.Pos) *ast.Node) *ast.Node {
		return ast.Module("main", pos(1, 1), asyncWork,
			wrap("caller", nil, intRef(),
				ast.Block(pos(6, 25),
					ast.Return(ast.Await(ast.Call(ast.Ident("work", pos(7, 18)), pos(7, 18)), pos(7, 12)), pos(7, 5)),
				),
				pos(6, 1),
			),
		)
	}

	res := Check(awaitIn(ast.AsyncFunction))
	if res.Bag.HasErrors() {
		t.Errorf("await in async function should be clean, got %v", res.Bag.Items())
	}

	res = Check(awaitIn(ast.Function))
	if !hasCode(res.Bag, diag.TypeInvalidAwait) {
		t.Error("await outside async function should be rejected")
	}
}

func TestCheckAwaitNonAwaitable(t *testing.T) {
	root := ast.Module("main", pos(1, 1),
		ast.AsyncFunction("f", nil, voidRef(),
			ast.Block(pos(2, 25),
				ast.ExprStmt(ast.Await(ast.IntLit(1, pos(3, 11)), pos(3, 5)), pos(3, 5)),
			),
			pos(2, 1),
		),
	)
	res := Check(root)
	if !hasCode(res.Bag, diag.TypeNotAwaitable) {
		t.Fatal("awaiting an int should be rejected")
	}
}

func TestCheckDeterministicOutput(t *testing.T) {
	root := ast.Module("main", pos(1, 1),
		ast.Function("f", nil, intRef(),
			ast.Block(pos(2, 20),
				ast.ExprStmt(ast.Ident("a", pos(3, 5)), pos(3, 5)),
				ast.ExprStmt(ast.Ident("b", pos(4, 5)), pos(4, 5)),
				ast.Let("x", refPtr(intRef()), ast.FloatLit(1.5, pos(5, 18)), pos(5, 5)),
			),
			pos(2, 1),
		),
	)

	first := Check(root)
	second := Check(root)
	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("diagnostic %d differs between runs:\n  %+v\n  %+v", i, a[i], b[i])
		}
	}
	for i := 1; i < len(a); i++ {
		if a[i].Pos.Before(a[i-1].Pos) {
			t.Errorf("diagnostics out of position order at %d: %v after %v", i, a[i].Pos, a[i-1].Pos)
		}
	}
}
