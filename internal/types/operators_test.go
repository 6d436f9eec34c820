package types

import (
	"testing"

	"aegis/internal/ast"
)

func TestBinaryResultArith(t *testing.T) {
	intT := ast.Ref(ast.TypeInt)
	floatT := ast.Ref(ast.TypeFloat)
	strT := ast.Ref(ast.TypeString)

	if r, ok := BinaryResult(ast.OpAdd, intT, intT); !ok || r.Name != ast.TypeInt {
		t.Errorf("int + int = %v, %v", r, ok)
	}
	if r, ok := BinaryResult(ast.OpMul, intT, floatT); !ok || r.Name != ast.TypeFloat {
		t.Errorf("int * float = %v, %v, want float promotion", r, ok)
	}
	if r, ok := BinaryResult(ast.OpAdd, strT, strT); !ok || r.Name != ast.TypeString {
		t.Errorf("string + string = %v, %v", r, ok)
	}
	if _, ok := BinaryResult(ast.OpSub, strT, strT); ok {
		t.Error("string - string must be rejected")
	}
	if _, ok := BinaryResult(ast.OpAdd, strT, intT); ok {
		t.Error("string + int must be rejected")
	}
}

func TestBinaryResultCompare(t *testing.T) {
	intT := ast.Ref(ast.TypeInt)
	floatT := ast.Ref(ast.TypeFloat)
	strT := ast.Ref(ast.TypeString)
	boolT := ast.Ref(ast.TypeBool)

	if r, ok := BinaryResult(ast.OpLt, intT, floatT); !ok || r.Name != ast.TypeBool {
		t.Errorf("int < float = %v, %v", r, ok)
	}
	if r, ok := BinaryResult(ast.OpEq, strT, strT); !ok || r.Name != ast.TypeBool {
		t.Errorf("string == string = %v, %v", r, ok)
	}
	if _, ok := BinaryResult(ast.OpLt, strT, intT); ok {
		t.Error("string < int must be rejected")
	}
	if _, ok := BinaryResult(ast.OpGt, boolT, intT); ok {
		t.Error("bool > int must be rejected")
	}
}

func TestBinaryResultLogic(t *testing.T) {
	boolT := ast.Ref(ast.TypeBool)
	intT := ast.Ref(ast.TypeInt)

	if r, ok := BinaryResult(ast.OpAnd, boolT, boolT); !ok || r.Name != ast.TypeBool {
		t.Errorf("bool && bool = %v, %v", r, ok)
	}
	if _, ok := BinaryResult(ast.OpOr, intT, boolT); ok {
		t.Error("int || bool must be rejected")
	}
}

func TestUnaryResult(t *testing.T) {
	if r, ok := UnaryResult(ast.OpNeg, ast.Ref(ast.TypeFloat)); !ok || r.Name != ast.TypeFloat {
		t.Errorf("-float = %v, %v", r, ok)
	}
	if _, ok := UnaryResult(ast.OpNeg, ast.Ref(ast.TypeString)); ok {
		t.Error("-string must be rejected")
	}
	if r, ok := UnaryResult(ast.OpNot, ast.Ref(ast.TypeBool)); !ok || r.Name != ast.TypeBool {
		t.Errorf("!bool = %v, %v", r, ok)
	}
	if _, ok := UnaryResult(ast.OpNot, ast.Ref(ast.TypeInt)); ok {
		t.Error("!int must be rejected")
	}
}
