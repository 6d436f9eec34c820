// Package sema implements the Aegis type checker: a two-pass semantic
// analyzer over the frontend's syntax tree. The first pass registers
// every declaration so bodies may reference symbols declared later; the
// second pass validates bodies and expression types. Errors never halt
// a pass; the checker accumulates every diagnostic it can find and an
// empty, error-free bag is the sole green light for code generation.
package sema

import (
	"fmt"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/source"
	"aegis/internal/symbols"
)

// Result carries the artifacts of one checker invocation.
type Result struct {
	Bag   *diag.Bag
	Table *symbols.Table
}

// Check runs both passes over the tree with fresh state. The returned
// bag is sorted; the table is exposed for downstream consumers that
// want resolved signatures.
func Check(root *ast.Node) Result {
	c := &checker{
		table: symbols.NewTable(symbols.Hints{Scopes: 16, Symbols: 64}),
		bag:   diag.NewBag(),
	}
	declareBuiltins(c.table)
	if root != nil {
		c.declare(root)
		c.checkNode(root)
	}
	c.bag.Sort()
	return Result{Bag: c.bag, Table: c.table}
}

type fnContext struct {
	name      string
	result    ast.TypeRef // void when the function has no result
	async     bool
	sawReturn bool
}

type checker struct {
	table  *symbols.Table
	bag    *diag.Bag
	fn     *fnContext
	inLoop bool
}

func (c *checker) report(code diag.Code, pos source.Pos, msg, suggestion string) {
	c.bag.Add(diag.NewError(code, pos, msg).WithSuggestion(suggestion))
}

// validType reports whether a type name resolves: primitives always do,
// user-defined names need a Type symbol. Wrapper arguments are checked
// recursively; the wrapper base itself may be a built-in (Array, Task)
// or a registered generic type.
func (c *checker) validType(t ast.TypeRef) bool {
	for _, a := range t.Args {
		if !c.validType(a) {
			return false
		}
	}
	if t.IsPrimitive() {
		return true
	}
	switch t.Name {
	case ast.TypeArray, ast.TypeRange, ast.TypeTask, ast.TypeFuture:
		return true
	}
	sym, ok := c.table.Lookup(t.Name)
	return ok && sym.Kind == symbols.SymbolType
}

func (c *checker) reportUndefinedType(what string, t ast.TypeRef, pos source.Pos) {
	c.report(diag.TypeUndefinedType, pos,
		fmt.Sprintf("%s has undefined type '%s'", what, t),
		fmt.Sprintf("Use a valid type like 'int', 'string', or define the type '%s' before using it", t))
}

// checkNode validates one node and its children. For expression nodes
// the resolved type is returned with ok=true; statements and failed
// expressions return ok=false.
func (c *checker) checkNode(n *ast.Node) (ast.TypeRef, bool) {
	if n == nil {
		return ast.TypeRef{}, false
	}
	switch n.Kind {
	case ast.NodeModule:
		c.table.EnterExisting(n.Name)
		for _, child := range n.Children {
			c.checkNode(child)
		}
		c.table.ExitScope()

	case ast.NodeStruct:
		c.checkStruct(n)

	case ast.NodeEnum:
		c.checkEnum(n)

	case ast.NodeFunction:
		c.checkFunction(n)

	case ast.NodeBlock:
		c.table.EnterScope("block")
		for _, stmt := range n.Children {
			c.checkNode(stmt)
		}
		c.table.ExitScope()

	case ast.NodeVarDecl:
		c.checkVarDecl(n)

	case ast.NodeAssign:
		c.checkAssign(n)

	case ast.NodeIf:
		c.checkIf(n)

	case ast.NodeWhile:
		c.checkWhile(n)

	case ast.NodeFor:
		c.checkFor(n)

	case ast.NodeReturn:
		c.checkReturn(n)

	case ast.NodeExprStmt:
		if len(n.Children) > 0 {
			c.checkNode(n.Children[0])
		}

	case ast.NodeMatch:
		c.checkMatch(n)

	case ast.NodeIdent:
		return c.checkIdent(n)

	case ast.NodeMember:
		return c.checkMember(n)

	case ast.NodeLit:
		return litType(n.Lit), n.Lit != nil

	case ast.NodeBinary:
		return c.checkBinary(n)

	case ast.NodeUnary:
		return c.checkUnary(n)

	case ast.NodeCall:
		return c.checkCall(n)

	case ast.NodeAwait:
		return c.checkAwait(n)

	case ast.NodeTaskSpawn:
		return c.checkSpawn(n)

	case ast.NodeField, ast.NodeVariant, ast.NodeParam,
		ast.NodeMatchBranch, ast.NodeVariantPattern:
		// Handled by their owning construct.

	case ast.NodeInvalid:
	}
	return ast.TypeRef{}, false
}

func (c *checker) checkStruct(n *ast.Node) {
	c.table.EnterExisting(n.Name)
	for _, child := range n.Children {
		switch child.Kind {
		case ast.NodeField:
			if child.Type != nil && !c.validType(*child.Type) {
				c.reportUndefinedType(fmt.Sprintf("Field '%s'", child.Name), *child.Type, child.Pos)
			}
		case ast.NodeFunction:
			c.checkNode(child)
		}
	}
	c.table.ExitScope()
}

func (c *checker) checkEnum(n *ast.Node) {
	c.table.EnterExisting(n.Name)
	for _, child := range n.Children {
		switch child.Kind {
		case ast.NodeVariant:
			for _, field := range child.Children {
				if field.Kind == ast.NodeField && field.Type != nil && !c.validType(*field.Type) {
					c.reportUndefinedType(fmt.Sprintf("Variant field '%s'", field.Name), *field.Type, field.Pos)
				}
			}
		case ast.NodeFunction:
			c.checkNode(child)
		}
	}
	c.table.ExitScope()
}

func (c *checker) checkFunction(n *ast.Node) {
	result := ast.Ref(ast.TypeVoid)
	if n.Type != nil {
		result = *n.Type
	}
	if !result.IsVoid() && !c.validType(result) {
		c.reportUndefinedType(fmt.Sprintf("Function '%s' return", n.Name), result, n.Pos)
	}

	outer := c.fn
	c.fn = &fnContext{name: n.Name, result: result, async: n.Flags.Has(ast.FlagAsync)}
	c.table.EnterScope(n.Name)

	var body *ast.Node
	for _, child := range n.Children {
		switch child.Kind {
		case ast.NodeParam:
			typ := ast.Ref(ast.TypeAny)
			if child.Type != nil {
				typ = *child.Type
				if !c.validType(typ) {
					c.reportUndefinedType(fmt.Sprintf("Parameter '%s'", child.Name), typ, child.Pos)
				}
			}
			c.table.DeclareVar(child.Name, typ, false)
		case ast.NodeBlock:
			body = child
		}
	}

	// The body's statements run directly in the function scope so
	// parameters and top-level locals share one namespace.
	if body != nil {
		for _, stmt := range body.Children {
			c.checkNode(stmt)
		}
	}

	if !result.IsVoid() && !c.fn.sawReturn {
		c.report(diag.TypeMissingReturn, n.Pos,
			fmt.Sprintf("Function '%s' must return a value of type '%s' on all code paths", n.Name, result),
			"Add a return statement with the appropriate value type at the end of the function")
	}

	c.table.ExitScope()
	c.fn = outer
}

func (c *checker) checkVarDecl(n *ast.Node) {
	var declared *ast.TypeRef
	if n.Type != nil {
		declared = n.Type
		if !c.validType(*declared) {
			c.reportUndefinedType(fmt.Sprintf("Variable '%s'", n.Name), *declared, n.Pos)
		}
	}

	varType := ast.Ref(ast.TypeAny)
	if declared != nil {
		varType = *declared
	}
	if len(n.Children) > 0 {
		initType, ok := c.checkNode(n.Children[0])
		if ok {
			if declared != nil && !c.compatible(*declared, initType) {
				c.report(diag.TypeMismatch, n.Pos,
					fmt.Sprintf("Cannot assign value of type '%s' to variable '%s' of type '%s'", initType, n.Name, declared),
					fmt.Sprintf("Use a value of type '%s' or convert the value to '%s'", declared, declared))
			}
			if declared == nil {
				varType = initType
			}
		}
	}
	c.table.DeclareVar(n.Name, varType, n.Flags.Has(ast.FlagMutable))
}

func (c *checker) checkAssign(n *ast.Node) {
	if len(n.Children) != 2 {
		return
	}
	target, value := n.Children[0], n.Children[1]
	targetType, targetOK := c.checkNode(target)
	valueType, valueOK := c.checkNode(value)

	if targetOK && valueOK && !c.compatible(targetType, valueType) {
		c.report(diag.TypeMismatch, n.Pos,
			fmt.Sprintf("Cannot assign value of type '%s' to target of type '%s'", valueType, targetType),
			fmt.Sprintf("Use a value of type '%s' or convert the value to '%s'", targetType, targetType))
	}

	if target.Kind == ast.NodeIdent {
		if sym, ok := c.table.Lookup(target.Name); ok && sym.Kind == symbols.SymbolVariable && !sym.Mutable {
			c.report(diag.TypeImmutableAssign, n.Pos,
				fmt.Sprintf("Cannot assign to immutable variable '%s'", target.Name),
				"Use 'var' instead of 'let' if the variable needs to be mutable")
		}
	}
}

func (c *checker) checkCondition(cond *ast.Node, what string) {
	condType, ok := c.checkNode(cond)
	if ok && !(condType.Name == ast.TypeBool && !condType.IsGeneric()) {
		c.report(diag.TypeMismatch, cond.Pos,
			fmt.Sprintf("%s condition must be a boolean, got '%s'", what, condType),
			"Use a comparison or logical expression that evaluates to a boolean")
	}
}

func (c *checker) checkIf(n *ast.Node) {
	if len(n.Children) < 2 {
		return
	}
	c.checkCondition(n.Children[0], "If")

	c.table.EnterScope("if_branch")
	c.checkNode(n.Children[1])
	c.table.ExitScope()

	if len(n.Children) > 2 {
		els := n.Children[2]
		if els.Kind == ast.NodeIf {
			// elif chain: the nested if owns its own condition check.
			c.checkNode(els)
			return
		}
		c.table.EnterScope("else_branch")
		c.checkNode(els)
		c.table.ExitScope()
	}
}

func (c *checker) checkWhile(n *ast.Node) {
	if len(n.Children) != 2 {
		return
	}
	wasInLoop := c.inLoop
	c.inLoop = true
	c.checkCondition(n.Children[0], "While")

	c.table.EnterScope("while_loop")
	c.checkNode(n.Children[1])
	c.table.ExitScope()
	c.inLoop = wasInLoop
}

func (c *checker) checkFor(n *ast.Node) {
	if len(n.Children) != 2 {
		return
	}
	wasInLoop := c.inLoop
	c.inLoop = true

	iterable, body := n.Children[0], n.Children[1]
	iterType, iterOK := c.checkNode(iterable)
	elemType := ast.Ref(ast.TypeAny)
	if iterOK {
		elem, iterable := c.elementType(iterType)
		if !iterable {
			c.report(diag.TypeNotIterable, n.Children[0].Pos,
				fmt.Sprintf("Cannot iterate over type '%s'", iterType),
				"Use a collection type like an array, range, or implement the Iterable trait")
		} else {
			elemType = elem
		}
	}

	c.table.EnterScope("for_loop")
	c.table.DeclareVar(n.Name, elemType, false)
	c.checkNode(body)
	c.table.ExitScope()
	c.inLoop = wasInLoop
}

func (c *checker) checkReturn(n *ast.Node) {
	if c.fn == nil {
		return
	}
	c.fn.sawReturn = true
	expected := c.fn.result

	if expected.IsVoid() {
		if len(n.Children) > 0 {
			c.report(diag.TypeVoidReturn, n.Pos,
				"Cannot return a value from a function with void return type",
				"Remove the return value or change the function return type")
		}
		return
	}
	if len(n.Children) == 0 {
		c.report(diag.TypeMismatch, n.Pos,
			fmt.Sprintf("Function expects return value of type '%s' but no value is returned", expected),
			fmt.Sprintf("Add a return value of type '%s'", expected))
		return
	}
	actual, ok := c.checkNode(n.Children[0])
	if ok && !c.compatible(expected, actual) {
		c.report(diag.TypeMismatch, n.Children[0].Pos,
			fmt.Sprintf("Function expects return type '%s' but got '%s'", expected, actual),
			fmt.Sprintf("Return a value of type '%s' or convert the current value", expected))
	}
}

func litType(lit *ast.Lit) ast.TypeRef {
	if lit == nil {
		return ast.TypeRef{}
	}
	switch lit.Kind {
	case ast.LitInt:
		return ast.Ref(ast.TypeInt)
	case ast.LitFloat:
		return ast.Ref(ast.TypeFloat)
	case ast.LitBool:
		return ast.Ref(ast.TypeBool)
	case ast.LitString:
		return ast.Ref(ast.TypeString)
	}
	return ast.TypeRef{}
}
