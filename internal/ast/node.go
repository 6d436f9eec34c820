package ast

import "aegis/internal/source"

// NodeKind enumerates the syntax node kinds handed over by the frontend.
// Dispatch in the checker and the generator is an exhaustive switch over
// this enum; there is no "unknown node" path.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	NodeModule
	NodeStruct
	NodeField
	NodeEnum
	NodeVariant
	NodeFunction
	NodeParam
	NodeBlock
	NodeVarDecl
	NodeAssign
	NodeIf
	NodeFor
	NodeWhile
	NodeReturn
	NodeExprStmt
	NodeMatch
	NodeMatchBranch
	NodeVariantPattern
	NodeAwait
	NodeTaskSpawn
	NodeBinary
	NodeUnary
	NodeCall
	NodeMember
	NodeIdent
	NodeLit
)

func (k NodeKind) String() string {
	switch k {
	case NodeModule:
		return "module"
	case NodeStruct:
		return "struct"
	case NodeField:
		return "field"
	case NodeEnum:
		return "enum"
	case NodeVariant:
		return "variant"
	case NodeFunction:
		return "function"
	case NodeParam:
		return "param"
	case NodeBlock:
		return "block"
	case NodeVarDecl:
		return "var_decl"
	case NodeAssign:
		return "assign"
	case NodeIf:
		return "if"
	case NodeFor:
		return "for"
	case NodeWhile:
		return "while"
	case NodeReturn:
		return "return"
	case NodeExprStmt:
		return "expr_stmt"
	case NodeMatch:
		return "match"
	case NodeMatchBranch:
		return "match_branch"
	case NodeVariantPattern:
		return "variant_pattern"
	case NodeAwait:
		return "await"
	case NodeTaskSpawn:
		return "task_spawn"
	case NodeBinary:
		return "binary"
	case NodeUnary:
		return "unary"
	case NodeCall:
		return "call"
	case NodeMember:
		return "member"
	case NodeIdent:
		return "ident"
	case NodeLit:
		return "literal"
	default:
		return "invalid"
	}
}

// Flags carry per-node boolean payload bits.
type Flags uint8

const (
	// FlagAsync marks an async function declaration.
	FlagAsync Flags = 1 << iota
	// FlagMutable marks a `var` (as opposed to `let`) declaration.
	FlagMutable
	// FlagHasGuard marks a match branch whose children carry a guard
	// expression between pattern and body.
	FlagHasGuard
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Node is one vertex of the immutable syntax tree. The meaning of Name,
// Type, Lit, Op and the child layout depends on Kind:
//
//	Module         Name; children are declarations
//	Struct         Name; children are fields, then methods
//	Field          Name, Type
//	Enum           Name; children are variants, then methods
//	Variant        Name; children are fields
//	Function       Name, Type (return, nil = void), FlagAsync;
//	               children are params, then one Block body
//	Param          Name, Type (nil = any)
//	Block          children are statements
//	VarDecl        Name, Type (nil = inferred), FlagMutable;
//	               children: optional initializer
//	Assign         children: target, value
//	If             children: cond, then-Block[, else]; else is a Block
//	               or a nested If (frontend desugars elif chains)
//	For            Name (iterator); children: iterable, body Block
//	While          children: cond, body Block
//	Return         children: optional value
//	ExprStmt       children: expression
//	Match          children: subject, then MatchBranch nodes
//	MatchBranch    children: pattern[, guard if FlagHasGuard], body
//	VariantPattern Name; children are field sub-patterns
//	Await          children: awaited expression
//	TaskSpawn      children: body expression
//	Binary         Op; children: left, right
//	Unary          Op; children: operand
//	Call           children: callee, then arguments
//	Member         Name (member); children: object
//	Ident          Name
//	Lit            Lit
//
// Children are owned exclusively by their parent; the tree is read-only
// input for both the checker and the generator.
type Node struct {
	Kind     NodeKind   `msgpack:"kind"`
	Name     string     `msgpack:"name,omitempty"`
	Op       Op         `msgpack:"op,omitempty"`
	Flags    Flags      `msgpack:"flags,omitempty"`
	Type     *TypeRef   `msgpack:"type,omitempty"`
	Lit      *Lit       `msgpack:"lit,omitempty"`
	Children []*Node    `msgpack:"children,omitempty"`
	Pos      source.Pos `msgpack:"pos"`
}

// LitKind tags literal payloads.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitString
)

// Lit is the payload of a NodeLit node.
type Lit struct {
	Kind  LitKind `msgpack:"kind"`
	Int   int64   `msgpack:"int,omitempty"`
	Float float64 `msgpack:"float,omitempty"`
	Bool  bool    `msgpack:"bool,omitempty"`
	Str   string  `msgpack:"str,omitempty"`
}
