package ast

import "aegis/internal/source"

// Construction helpers. Frontends and tests build trees with these
// instead of filling Node structs by hand.

func Module(name string, pos source.Pos, decls ...*Node) *Node {
	return &Node{Kind: NodeModule, Name: name, Pos: pos, Children: decls}
}

func Struct(name string, pos source.Pos, members ...*Node) *Node {
	return &Node{Kind: NodeStruct, Name: name, Pos: pos, Children: members}
}

func Field(name string, typ TypeRef, pos source.Pos) *Node {
	t := typ
	return &Node{Kind: NodeField, Name: name, Type: &t, Pos: pos}
}

func Enum(name string, pos source.Pos, members ...*Node) *Node {
	return &Node{Kind: NodeEnum, Name: name, Pos: pos, Children: members}
}

func Variant(name string, pos source.Pos, fields ...*Node) *Node {
	return &Node{Kind: NodeVariant, Name: name, Pos: pos, Children: fields}
}

// Function builds a function declaration. ret may be the void type for
// functions without a result. The body block is appended after params.
func Function(name string, params []*Node, ret TypeRef, body *Node, pos source.Pos) *Node {
	n := &Node{Kind: NodeFunction, Name: name, Pos: pos, Children: params}
	if !ret.IsVoid() {
		r := ret
		n.Type = &r
	}
	if body != nil {
		n.Children = append(n.Children, body)
	}
	return n
}

func AsyncFunction(name string, params []*Node, ret TypeRef, body *Node, pos source.Pos) *Node {
	n := Function(name, params, ret, body, pos)
	n.Flags |= FlagAsync
	return n
}

func Param(name string, typ TypeRef, pos source.Pos) *Node {
	t := typ
	return &Node{Kind: NodeParam, Name: name, Type: &t, Pos: pos}
}

func Block(pos source.Pos, stmts ...*Node) *Node {
	return &Node{Kind: NodeBlock, Pos: pos, Children: stmts}
}

// Let declares an immutable binding; Var a mutable one. typ may be nil
// to request inference from the initializer. init may be nil.
func Let(name string, typ *TypeRef, init *Node, pos source.Pos) *Node {
	n := &Node{Kind: NodeVarDecl, Name: name, Type: typ, Pos: pos}
	if init != nil {
		n.Children = []*Node{init}
	}
	return n
}

func Var(name string, typ *TypeRef, init *Node, pos source.Pos) *Node {
	n := Let(name, typ, init, pos)
	n.Flags |= FlagMutable
	return n
}

func Assign(target, value *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeAssign, Pos: pos, Children: []*Node{target, value}}
}

func If(cond, then *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeIf, Pos: pos, Children: []*Node{cond, then}}
}

func IfElse(cond, then, els *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeIf, Pos: pos, Children: []*Node{cond, then, els}}
}

func While(cond, body *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeWhile, Pos: pos, Children: []*Node{cond, body}}
}

func For(iter string, iterable, body *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeFor, Name: iter, Pos: pos, Children: []*Node{iterable, body}}
}

func Return(value *Node, pos source.Pos) *Node {
	n := &Node{Kind: NodeReturn, Pos: pos}
	if value != nil {
		n.Children = []*Node{value}
	}
	return n
}

func ExprStmt(expr *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeExprStmt, Pos: pos, Children: []*Node{expr}}
}

func Match(subject *Node, pos source.Pos, branches ...*Node) *Node {
	n := &Node{Kind: NodeMatch, Pos: pos, Children: []*Node{subject}}
	n.Children = append(n.Children, branches...)
	return n
}

func Branch(pattern, body *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeMatchBranch, Pos: pos, Children: []*Node{pattern, body}}
}

func GuardedBranch(pattern, guard, body *Node, pos source.Pos) *Node {
	return &Node{
		Kind:     NodeMatchBranch,
		Flags:    FlagHasGuard,
		Pos:      pos,
		Children: []*Node{pattern, guard, body},
	}
}

func VariantPattern(name string, pos source.Pos, fields ...*Node) *Node {
	return &Node{Kind: NodeVariantPattern, Name: name, Pos: pos, Children: fields}
}

func Await(expr *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeAwait, Pos: pos, Children: []*Node{expr}}
}

func Spawn(body *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeTaskSpawn, Pos: pos, Children: []*Node{body}}
}

func Binary(op Op, left, right *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeBinary, Op: op, Pos: pos, Children: []*Node{left, right}}
}

func Unary(op Op, operand *Node, pos source.Pos) *Node {
	return &Node{Kind: NodeUnary, Op: op, Pos: pos, Children: []*Node{operand}}
}

func Call(callee *Node, pos source.Pos, args ...*Node) *Node {
	n := &Node{Kind: NodeCall, Pos: pos, Children: []*Node{callee}}
	n.Children = append(n.Children, args...)
	return n
}

func Member(object *Node, member string, pos source.Pos) *Node {
	return &Node{Kind: NodeMember, Name: member, Pos: pos, Children: []*Node{object}}
}

func Ident(name string, pos source.Pos) *Node {
	return &Node{Kind: NodeIdent, Name: name, Pos: pos}
}

func IntLit(v int64, pos source.Pos) *Node {
	return &Node{Kind: NodeLit, Lit: &Lit{Kind: LitInt, Int: v}, Pos: pos}
}

func FloatLit(v float64, pos source.Pos) *Node {
	return &Node{Kind: NodeLit, Lit: &Lit{Kind: LitFloat, Float: v}, Pos: pos}
}

func BoolLit(v bool, pos source.Pos) *Node {
	return &Node{Kind: NodeLit, Lit: &Lit{Kind: LitBool, Bool: v}, Pos: pos}
}

func StringLit(v string, pos source.Pos) *Node {
	return &Node{Kind: NodeLit, Lit: &Lit{Kind: LitString, Str: v}, Pos: pos}
}
