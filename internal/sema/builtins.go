package sema

import (
	"aegis/internal/ast"
	"aegis/internal/symbols"
)

// declareBuiltins seeds the global scope with the language's built-in
// functions before user declarations run. print accepts any single
// value; range builds the iterable bound pair.
func declareBuiltins(table *symbols.Table) {
	table.DeclareFunc("print", symbols.FuncInfo{
		Params: []symbols.ParamInfo{{Name: "value", Type: ast.Ref(ast.TypeAny)}},
		Result: ast.Ref(ast.TypeVoid),
	})
	table.DeclareFunc("range", symbols.FuncInfo{
		Params: []symbols.ParamInfo{
			{Name: "start", Type: ast.Ref(ast.TypeInt)},
			{Name: "end", Type: ast.Ref(ast.TypeInt)},
		},
		Result: ast.Ref(ast.TypeRange),
	})
}
