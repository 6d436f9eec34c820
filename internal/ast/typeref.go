package ast

import "strings"

// TypeRef names a type as written in source: a primitive, a user-defined
// name, or a generic wrapper with ordered type arguments.
type TypeRef struct {
	Name string    `msgpack:"name"`
	Args []TypeRef `msgpack:"args,omitempty"`
}

// Primitive type names.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeString = "string"
	TypeVoid   = "void"
	TypeAny    = "any"
	TypeChar   = "char"
)

// Well-known wrapper base names.
const (
	TypeArray  = "Array"
	TypeRange  = "Range"
	TypeTask   = "Task"
	TypeFuture = "Future"
)

func Ref(name string, args ...TypeRef) TypeRef {
	return TypeRef{Name: name, Args: args}
}

func (t TypeRef) IsVoid() bool { return t.Name == TypeVoid }

func (t TypeRef) IsGeneric() bool { return len(t.Args) > 0 }

// IsPrimitive reports whether the name is one of the built-in scalar
// types (generic wrappers are never primitive).
func (t TypeRef) IsPrimitive() bool {
	if t.IsGeneric() {
		return false
	}
	switch t.Name {
	case TypeInt, TypeFloat, TypeBool, TypeString, TypeVoid, TypeAny, TypeChar:
		return true
	}
	return false
}

func (t TypeRef) IsNumeric() bool {
	return !t.IsGeneric() && (t.Name == TypeInt || t.Name == TypeFloat)
}

func (t TypeRef) Equal(other TypeRef) bool {
	if t.Name != other.Name || len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// String renders the reference the way it is written in source,
// e.g. "int" or "Result<int, string>".
func (t TypeRef) String() string {
	if !t.IsGeneric() {
		return t.Name
	}
	var sb strings.Builder
	sb.WriteString(t.Name)
	sb.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// Unwrap returns the sole type argument of a one-argument wrapper such
// as Task<T> or Array<T>; ok is false for anything else.
func (t TypeRef) Unwrap() (TypeRef, bool) {
	if len(t.Args) != 1 {
		return TypeRef{}, false
	}
	return t.Args[0], true
}
