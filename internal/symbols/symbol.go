package symbols

import "aegis/internal/ast"

// SymbolKind enumerates what a name refers to.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolFunction
	SymbolType
	SymbolTrait
	SymbolModule
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	case SymbolTrait:
		return "trait"
	case SymbolModule:
		return "module"
	default:
		return "invalid"
	}
}

// ParamInfo is one declared parameter of a function signature.
type ParamInfo struct {
	Name string
	Type ast.TypeRef
}

// FuncInfo is the registered signature of a function or method.
type FuncInfo struct {
	Params []ParamInfo
	Result ast.TypeRef // void for functions without a result
	Async  bool
	Method bool // declared inside a struct or enum; leading self param
}

// TypeDefKind distinguishes user-defined type shapes.
type TypeDefKind uint8

const (
	TypeDefStruct TypeDefKind = iota
	TypeDefEnum
)

// FieldInfo is one named field with its declared type.
type FieldInfo struct {
	Name string
	Type ast.TypeRef
}

// VariantInfo is one enum variant and its ordered payload fields.
type VariantInfo struct {
	Name   string
	Fields []FieldInfo
}

// TypeDef records a registered struct or enum. Field and variant order
// follows declaration order; struct layout depends on it.
type TypeDef struct {
	Kind     TypeDefKind
	Fields   []FieldInfo   // structs
	Variants []VariantInfo // enums
}

// Variant finds a declared variant by name.
func (d *TypeDef) Variant(name string) (VariantInfo, bool) {
	for _, v := range d.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return VariantInfo{}, false
}

// Field finds a declared struct field by name.
func (d *TypeDef) Field(name string) (FieldInfo, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// TraitInfo records a trait's method signatures by name.
type TraitInfo struct {
	Methods map[string]FuncInfo
}

// Symbol is one declaration. Exactly one of the payload fields is
// meaningful, selected by Kind: VarType for variables, Fn for
// functions, Def for types, Trait for traits.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Mutable bool
	Scope   string // name of the owning scope

	VarType ast.TypeRef
	Fn      *FuncInfo
	Def     *TypeDef
	Trait   *TraitInfo
}
