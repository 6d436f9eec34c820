package mir

import "fmt"

// TypeKind enumerates IR-level value types. Source types reach one of
// these through the active target's mapping policy.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypeI1
	TypeI32
	TypeI64
	TypeF64
	TypePtr
	TypeStruct
)

// Type is an IR type. Struct names the aggregate layout registered in
// the module when Kind is TypeStruct.
type Type struct {
	Kind   TypeKind
	Struct string
}

func Void() Type { return Type{Kind: TypeVoid} }
func I1() Type   { return Type{Kind: TypeI1} }
func I32() Type  { return Type{Kind: TypeI32} }
func I64() Type  { return Type{Kind: TypeI64} }
func F64() Type  { return Type{Kind: TypeF64} }
func Ptr() Type  { return Type{Kind: TypePtr} }

func Aggregate(n string) Type { return Type{Kind: TypeStruct, Struct: n} }

func (t Type) IsVoid() bool  { return t.Kind == TypeVoid }
func (t Type) IsFloat() bool { return t.Kind == TypeF64 }

func (t Type) String() string {
	switch t.Kind {
	case TypeVoid:
		return "void"
	case TypeI1:
		return "i1"
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeF64:
		return "f64"
	case TypePtr:
		return "ptr"
	case TypeStruct:
		return fmt.Sprintf("%%%s", t.Struct)
	}
	return "?"
}
