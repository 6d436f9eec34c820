package types

import "aegis/internal/ast"

// BinaryResult computes the result type of a binary operation, or
// ok=false when the operand combination is rejected.
//
//	+ - * / %  numeric x numeric -> float if either side is float, else int
//	+          string x string   -> string
//	== != < <= > >=  equal types or both numeric -> bool
//	== !=      additionally when either side is compatible with the other
//	&& ||      bool x bool -> bool
func BinaryResult(op ast.Op, left, right ast.TypeRef) (ast.TypeRef, bool) {
	switch {
	case op.IsArith():
		if left.IsNumeric() && right.IsNumeric() {
			if left.Name == ast.TypeFloat || right.Name == ast.TypeFloat {
				return ast.Ref(ast.TypeFloat), true
			}
			return ast.Ref(ast.TypeInt), true
		}
		if op == ast.OpAdd && isString(left) && isString(right) {
			return ast.Ref(ast.TypeString), true
		}
		return ast.TypeRef{}, false

	case op.IsCompare():
		if left.Equal(right) {
			return ast.Ref(ast.TypeBool), true
		}
		if left.IsNumeric() && right.IsNumeric() {
			return ast.Ref(ast.TypeBool), true
		}
		if op.IsEquality() && (Compatible(left, right) || Compatible(right, left)) {
			return ast.Ref(ast.TypeBool), true
		}
		return ast.TypeRef{}, false

	case op.IsLogic():
		if isBool(left) && isBool(right) {
			return ast.Ref(ast.TypeBool), true
		}
		return ast.TypeRef{}, false
	}
	return ast.TypeRef{}, false
}

// UnaryResult computes the result type of a unary operation: negation
// preserves a numeric operand's type, logical not requires bool.
func UnaryResult(op ast.Op, operand ast.TypeRef) (ast.TypeRef, bool) {
	switch op {
	case ast.OpNeg:
		if operand.IsNumeric() {
			return operand, true
		}
	case ast.OpNot:
		if isBool(operand) {
			return ast.Ref(ast.TypeBool), true
		}
	}
	return ast.TypeRef{}, false
}

func isString(t ast.TypeRef) bool {
	return t.Name == ast.TypeString && !t.IsGeneric()
}

func isBool(t ast.TypeRef) bool {
	return t.Name == ast.TypeBool && !t.IsGeneric()
}
