package types

import (
	"testing"

	"aegis/internal/ast"
)

func TestCompatibleWidening(t *testing.T) {
	intT := ast.Ref(ast.TypeInt)
	floatT := ast.Ref(ast.TypeFloat)

	if !Compatible(floatT, intT) {
		t.Error("int should widen to float")
	}
	if Compatible(intT, floatT) {
		t.Error("float must not narrow to int")
	}
}

func TestCompatibleAny(t *testing.T) {
	anyT := ast.Ref(ast.TypeAny)
	strT := ast.Ref(ast.TypeString)

	if !Compatible(anyT, strT) {
		t.Error("any target accepts everything")
	}
	if !Compatible(strT, anyT) {
		t.Error("any source assigns to everything")
	}
}

func TestCompatibleGenerics(t *testing.T) {
	cases := []struct {
		name   string
		target ast.TypeRef
		source ast.TypeRef
		want   bool
	}{
		{
			name:   "identical",
			target: ast.Ref(ast.TypeArray, ast.Ref(ast.TypeInt)),
			source: ast.Ref(ast.TypeArray, ast.Ref(ast.TypeInt)),
			want:   true,
		},
		{
			name:   "widening element",
			target: ast.Ref(ast.TypeArray, ast.Ref(ast.TypeFloat)),
			source: ast.Ref(ast.TypeArray, ast.Ref(ast.TypeInt)),
			want:   true,
		},
		{
			name:   "base mismatch",
			target: ast.Ref(ast.TypeTask, ast.Ref(ast.TypeInt)),
			source: ast.Ref(ast.TypeArray, ast.Ref(ast.TypeInt)),
			want:   false,
		},
		{
			name:   "arity mismatch",
			target: ast.Ref("Result", ast.Ref(ast.TypeInt), ast.Ref(ast.TypeString)),
			source: ast.Ref("Result", ast.Ref(ast.TypeInt)),
			want:   false,
		},
		{
			name:   "nested recursion",
			target: ast.Ref(ast.TypeArray, ast.Ref(ast.TypeArray, ast.Ref(ast.TypeFloat))),
			source: ast.Ref(ast.TypeArray, ast.Ref(ast.TypeArray, ast.Ref(ast.TypeInt))),
			want:   true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Compatible(tc.target, tc.source); got != tc.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tc.target, tc.source, got, tc.want)
			}
		})
	}
}

func TestElementType(t *testing.T) {
	if elem, ok := ElementType(ast.Ref(ast.TypeArray, ast.Ref(ast.TypeString))); !ok || elem.Name != ast.TypeString {
		t.Errorf("Array<string> element = %v, %v", elem, ok)
	}
	if elem, ok := ElementType(ast.Ref(ast.TypeRange)); !ok || elem.Name != ast.TypeInt {
		t.Errorf("Range element = %v, %v", elem, ok)
	}
	if elem, ok := ElementType(ast.Ref(ast.TypeString)); !ok || elem.Name != ast.TypeChar {
		t.Errorf("string element = %v, %v", elem, ok)
	}
	if _, ok := ElementType(ast.Ref(ast.TypeInt)); ok {
		t.Error("int must not be iterable")
	}
}

func TestAwaitResult(t *testing.T) {
	if r, ok := AwaitResult(ast.Ref(ast.TypeTask, ast.Ref(ast.TypeInt))); !ok || r.Name != ast.TypeInt {
		t.Errorf("await Task<int> = %v, %v", r, ok)
	}
	if r, ok := AwaitResult(ast.Ref(ast.TypeFuture, ast.Ref(ast.TypeString))); !ok || r.Name != ast.TypeString {
		t.Errorf("await Future<string> = %v, %v", r, ok)
	}
	if _, ok := AwaitResult(ast.Ref(ast.TypeInt)); ok {
		t.Error("int is not awaitable")
	}
}

func TestTaskOf(t *testing.T) {
	task := TaskOf(ast.Ref(ast.TypeBool))
	if task.Name != ast.TypeTask || len(task.Args) != 1 || task.Args[0].Name != ast.TypeBool {
		t.Errorf("TaskOf(bool) = %s", task)
	}
}
