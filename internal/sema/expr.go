package sema

import (
	"fmt"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/symbols"
	"aegis/internal/types"
)

// Thin aliases so the walk reads as checker policy even though the
// relations live in the types package.

func (c *checker) compatible(target, source ast.TypeRef) bool {
	return types.Compatible(target, source)
}

func (c *checker) elementType(iterable ast.TypeRef) (ast.TypeRef, bool) {
	return types.ElementType(iterable)
}

func (c *checker) checkIdent(n *ast.Node) (ast.TypeRef, bool) {
	sym, ok := c.table.Lookup(n.Name)
	if !ok {
		c.report(diag.TypeUndefinedSymbol, n.Pos,
			fmt.Sprintf("Undefined symbol '%s'", n.Name),
			"Declare the variable before using it or check for typos")
		return ast.TypeRef{}, false
	}
	switch sym.Kind {
	case symbols.SymbolVariable:
		return sym.VarType, true
	case symbols.SymbolFunction:
		return ast.Ref("function"), true
	case symbols.SymbolType:
		return ast.Ref(sym.Name), true
	}
	return ast.TypeRef{}, false
}

func (c *checker) checkMember(n *ast.Node) (ast.TypeRef, bool) {
	if len(n.Children) != 1 {
		return ast.TypeRef{}, false
	}
	objType, ok := c.checkNode(n.Children[0])
	if !ok {
		return ast.TypeRef{}, false
	}

	sym, found := c.table.Lookup(objType.Name)
	if !found || sym.Kind != symbols.SymbolType {
		c.report(diag.TypeUnknownMember, n.Pos,
			fmt.Sprintf("Cannot access member '%s' on non-struct/enum type '%s'", n.Name, objType),
			"Use a struct or enum type with the member access operator")
		return ast.TypeRef{}, false
	}

	if sym.Def.Kind == symbols.TypeDefStruct {
		if field, ok := sym.Def.Field(n.Name); ok {
			return field.Type, true
		}
	}

	c.report(diag.TypeUnknownMember, n.Pos,
		fmt.Sprintf("Type '%s' has no member named '%s'", objType, n.Name),
		fmt.Sprintf("Check for typos or add the member to type '%s'", objType))
	return ast.TypeRef{}, false
}

func (c *checker) checkBinary(n *ast.Node) (ast.TypeRef, bool) {
	if len(n.Children) != 2 {
		return ast.TypeRef{}, false
	}
	leftType, leftOK := c.checkNode(n.Children[0])
	rightType, rightOK := c.checkNode(n.Children[1])
	if !leftOK || !rightOK {
		return ast.TypeRef{}, false
	}

	result, ok := types.BinaryResult(n.Op, leftType, rightType)
	if ok {
		return result, true
	}

	switch {
	case n.Op.IsArith():
		c.report(diag.TypeInvalidOperator, n.Pos,
			fmt.Sprintf("Operator '%s' cannot be applied to types '%s' and '%s'", n.Op, leftType, rightType),
			"Use numeric types for arithmetic operations or strings for concatenation (+)")
	case n.Op.IsCompare():
		c.report(diag.TypeInvalidOperator, n.Pos,
			fmt.Sprintf("Cannot compare values of types '%s' and '%s' with operator '%s'", leftType, rightType, n.Op),
			"Use comparable types or implement comparison operators for custom types")
	case n.Op.IsLogic():
		c.report(diag.TypeInvalidOperator, n.Pos,
			fmt.Sprintf("Logical operator '%s' requires boolean operands, got '%s' and '%s'", n.Op, leftType, rightType),
			"Use boolean expressions for logical operations")
	}
	return ast.TypeRef{}, false
}

func (c *checker) checkUnary(n *ast.Node) (ast.TypeRef, bool) {
	if len(n.Children) != 1 {
		return ast.TypeRef{}, false
	}
	operandType, ok := c.checkNode(n.Children[0])
	if !ok {
		return ast.TypeRef{}, false
	}

	result, ok := types.UnaryResult(n.Op, operandType)
	if ok {
		return result, true
	}

	if n.Op == ast.OpNeg {
		c.report(diag.TypeInvalidOperator, n.Pos,
			fmt.Sprintf("Unary minus operator cannot be applied to type '%s'", operandType),
			"Use a numeric type with the negation operator")
	} else {
		c.report(diag.TypeInvalidOperator, n.Pos,
			fmt.Sprintf("Logical not operator cannot be applied to type '%s'", operandType),
			"Use a boolean value or expression with the logical not operator")
	}
	return ast.TypeRef{}, false
}

func (c *checker) checkCall(n *ast.Node) (ast.TypeRef, bool) {
	if len(n.Children) == 0 {
		return ast.TypeRef{}, false
	}
	callee := n.Children[0]
	args := n.Children[1:]

	if callee.Kind == ast.NodeMember {
		return c.checkMethodCall(callee, args, n)
	}
	name := callee.Name
	return c.checkFunctionCall(name, args, n)
}

func (c *checker) checkFunctionCall(name string, args []*ast.Node, call *ast.Node) (ast.TypeRef, bool) {
	sym, ok := c.table.Lookup(name)
	if !ok || sym.Kind != symbols.SymbolFunction {
		c.report(diag.TypeUndefinedSymbol, call.Pos,
			fmt.Sprintf("Call to undefined function '%s'", name),
			"Define the function before calling it or check for typos")
		return ast.TypeRef{}, false
	}

	params := sym.Fn.Params
	if len(args) != len(params) {
		c.report(diag.TypeArityMismatch, call.Pos,
			fmt.Sprintf("Function '%s' expects %d arguments but got %d", name, len(params), len(args)),
			fmt.Sprintf("Provide exactly %d arguments as defined in the function signature", len(params)))
		return ast.TypeRef{}, false
	}

	for i, arg := range args {
		argType, argOK := c.checkNode(arg)
		if !argOK {
			continue
		}
		p := params[i]
		if !c.compatible(p.Type, argType) {
			c.report(diag.TypeMismatch, arg.Pos,
				fmt.Sprintf("Function '%s' expects parameter '%s' of type '%s' but got '%s'", name, p.Name, p.Type, argType),
				fmt.Sprintf("Provide a value of type '%s' or convert the argument to that type", p.Type))
		}
	}
	return sym.Fn.Result, true
}

// checkMethodCall resolves obj.method(...) by looking the method up in
// the scope named after the object's type. The leading self parameter
// is dropped from the arity count and from positional checking.
func (c *checker) checkMethodCall(member *ast.Node, args []*ast.Node, call *ast.Node) (ast.TypeRef, bool) {
	objType, ok := c.checkNode(member.Children[0])
	if !ok {
		return ast.TypeRef{}, false
	}
	methodName := member.Name

	sym, found := c.table.LookupInScope(methodName, objType.Name)
	if !found || sym.Kind != symbols.SymbolFunction {
		c.report(diag.TypeUnknownMember, call.Pos,
			fmt.Sprintf("Type '%s' has no method named '%s'", objType, methodName),
			fmt.Sprintf("Check for typos or implement the method for type '%s'", objType))
		return ast.TypeRef{}, false
	}

	params := sym.Fn.Params
	if sym.Fn.Method && len(params) > 0 {
		params = params[1:] // implicit self
	}
	if len(args) != len(params) {
		c.report(diag.TypeArityMismatch, call.Pos,
			fmt.Sprintf("Method '%s' expects %d arguments but got %d", methodName, len(params), len(args)),
			fmt.Sprintf("Provide exactly %d arguments as defined in the method signature", len(params)))
		return ast.TypeRef{}, false
	}

	for i, arg := range args {
		argType, argOK := c.checkNode(arg)
		if !argOK {
			continue
		}
		if !c.compatible(params[i].Type, argType) {
			c.report(diag.TypeMismatch, arg.Pos,
				fmt.Sprintf("Method '%s' expects argument of type '%s' but got '%s'", methodName, params[i].Type, argType),
				fmt.Sprintf("Provide a value of type '%s' or convert the argument to that type", params[i].Type))
		}
	}
	return sym.Fn.Result, true
}

func (c *checker) checkAwait(n *ast.Node) (ast.TypeRef, bool) {
	if len(n.Children) != 1 {
		return ast.TypeRef{}, false
	}
	exprType, ok := c.checkNode(n.Children[0])

	if c.fn != nil && !c.fn.async {
		c.report(diag.TypeInvalidAwait, n.Pos,
			"Cannot use 'await' outside of an async function",
			"Mark the enclosing function as async using the 'async' keyword")
	}
	if !ok {
		return ast.TypeRef{}, false
	}

	result, awaitable := types.AwaitResult(exprType)
	if !awaitable {
		c.report(diag.TypeNotAwaitable, n.Pos,
			fmt.Sprintf("Type '%s' is not awaitable", exprType),
			"Use a Task<T> or Future<T> type that can be awaited in an async function")
		return ast.TypeRef{}, false
	}
	return result, true
}

func (c *checker) checkSpawn(n *ast.Node) (ast.TypeRef, bool) {
	if len(n.Children) != 1 {
		return ast.TypeRef{}, false
	}
	c.table.EnterScope("task")
	bodyType, ok := c.checkNode(n.Children[0])
	c.table.ExitScope()
	if !ok {
		bodyType = ast.Ref(ast.TypeVoid)
	}
	return types.TaskOf(bodyType), true
}
