// Lowering of a validated syntax tree into MIR. The generator mirrors
// the checker's two-pass shape: the first pass declares aggregate
// layouts and function signatures under qualified names, the second
// lowers function bodies into blocks. Generation must only run on a
// tree that type-checked cleanly.
package mir

import (
	"fmt"
	"strings"

	"aegis/internal/ast"
)

// fnSig is the generator's view of one declared function.
type fnSig struct {
	qualified string
	params    []paramSig
	result    ast.TypeRef
	method    bool
}

type paramSig struct {
	name string
	typ  ast.TypeRef
}

type fieldSig struct {
	name string
	typ  ast.TypeRef
}

type variantSig struct {
	name   string
	fields []fieldSig
}

type enumSig struct {
	name     string
	variants []variantSig
}

// Generator lowers one syntax tree for one target policy. Alternate
// targets are alternate Target values passed in here.
type Generator struct {
	target Target
	mod    *Module

	fns     map[string]*fnSig
	structs map[string][]fieldSig
	enums   map[string]*enumSig
}

// Generate lowers root and verifies the result. A verification failure
// is fatal: no module is returned.
func Generate(root *ast.Node, target Target) (*Module, error) {
	name := "main"
	if root != nil && root.Kind == ast.NodeModule && root.Name != "" {
		name = root.Name
	}
	g := &Generator{
		target:  target,
		mod:     NewModule(name),
		fns:     make(map[string]*fnSig),
		structs: make(map[string][]fieldSig),
		enums:   make(map[string]*enumSig),
	}
	g.declareIntrinsics()
	if root != nil {
		g.declareNode(root, nil)
		g.implementNode(root, nil)
	}
	if err := Validate(g.mod); err != nil {
		return nil, fmt.Errorf("ir verification failed: %w", err)
	}
	return g.mod, nil
}

func (g *Generator) declareIntrinsics() {
	for _, in := range g.target.Intrinsics {
		params := make([]Param, len(in.Params))
		for i, p := range in.Params {
			params[i] = Param{Name: fmt.Sprintf("a%d", i), Type: p}
		}
		g.mod.DeclareFunc(&Func{
			Name:     in.Name,
			Params:   params,
			Result:   in.Result,
			Variadic: in.Variadic,
			External: true,
			Entry:    NoBlockID,
		})
	}
}

func qualify(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, ".") + "." + name
}

// declareNode is the first pass: layouts and signatures only, no
// bodies.
func (g *Generator) declareNode(n *ast.Node, path []string) {
	switch n.Kind {
	case ast.NodeModule:
		next := path
		if n.Name != "" {
			next = append(append([]string{}, path...), n.Name)
		}
		for _, child := range n.Children {
			g.declareNode(child, next)
		}

	case ast.NodeStruct:
		g.declareStruct(n, path)

	case ast.NodeEnum:
		g.declareEnum(n, path)

	case ast.NodeFunction:
		g.declareFunction(n, path, false)

	default:
		// Statements and expressions carry no declarations.
	}
}

func (g *Generator) declareStruct(n *ast.Node, path []string) {
	var fields []fieldSig
	var layout []Type
	for _, child := range n.Children {
		switch child.Kind {
		case ast.NodeField:
			typ := ast.Ref(ast.TypeAny)
			if child.Type != nil {
				typ = *child.Type
			}
			fields = append(fields, fieldSig{name: child.Name, typ: typ})
			layout = append(layout, g.target.MapType(typ))
		case ast.NodeFunction:
			methodPath := append(append([]string{}, path...), n.Name)
			g.declareFunction(child, methodPath, true)
		}
	}
	g.structs[n.Name] = fields
	g.mod.DeclareStruct(n.Name, layout)
}

// declareEnum registers the enum's tag-only layout plus one layout per
// variant (tag word followed by the variant's payload fields), named
// "Enum.Variant".
func (g *Generator) declareEnum(n *ast.Node, path []string) {
	info := &enumSig{name: n.Name}
	g.mod.DeclareStruct(n.Name, []Type{I32()})
	for _, child := range n.Children {
		switch child.Kind {
		case ast.NodeVariant:
			variant := variantSig{name: child.Name}
			layout := []Type{I32()}
			for _, field := range child.Children {
				if field.Kind != ast.NodeField {
					continue
				}
				typ := ast.Ref(ast.TypeAny)
				if field.Type != nil {
					typ = *field.Type
				}
				variant.fields = append(variant.fields, fieldSig{name: field.Name, typ: typ})
				layout = append(layout, g.target.MapType(typ))
			}
			info.variants = append(info.variants, variant)
			g.mod.DeclareStruct(n.Name+"."+child.Name, layout)
		case ast.NodeFunction:
			methodPath := append(append([]string{}, path...), n.Name)
			g.declareFunction(child, methodPath, true)
		}
	}
	g.enums[n.Name] = info
}

func (g *Generator) declareFunction(n *ast.Node, path []string, method bool) {
	sig := &fnSig{qualified: qualify(path, n.Name), method: method, result: ast.Ref(ast.TypeVoid)}
	if n.Type != nil {
		sig.result = *n.Type
	}

	var params []Param
	for _, child := range n.Children {
		if child.Kind != ast.NodeParam {
			continue
		}
		typ := ast.Ref(ast.TypeAny)
		if child.Type != nil {
			typ = *child.Type
		}
		sig.params = append(sig.params, paramSig{name: child.Name, typ: typ})
		params = append(params, Param{Name: child.Name, Type: g.target.MapType(typ)})
	}

	g.mod.DeclareFunc(&Func{
		Name:   sig.qualified,
		Params: params,
		Result: g.target.MapType(sig.result),
		Entry:  NoBlockID,
	})

	// Plain-name resolution for direct calls; methods additionally
	// resolve as "Type.method" from member calls.
	g.fns[n.Name] = sig
	if method && len(path) > 0 {
		g.fns[path[len(path)-1]+"."+n.Name] = sig
	}
	g.fns[sig.qualified] = sig
}

// implementNode is the second pass: lower every function body.
func (g *Generator) implementNode(n *ast.Node, path []string) {
	switch n.Kind {
	case ast.NodeModule:
		next := path
		if n.Name != "" {
			next = append(append([]string{}, path...), n.Name)
		}
		for _, child := range n.Children {
			g.implementNode(child, next)
		}

	case ast.NodeStruct, ast.NodeEnum:
		memberPath := append(append([]string{}, path...), n.Name)
		for _, child := range n.Children {
			if child.Kind == ast.NodeFunction {
				g.implementFunction(child, memberPath)
			}
		}

	case ast.NodeFunction:
		g.implementFunction(n, path)

	default:
	}
}

func (g *Generator) implementFunction(n *ast.Node, path []string) {
	qualified := qualify(path, n.Name)
	f := g.mod.Funcs[qualified]
	sig := g.fns[qualified]
	if f == nil || sig == nil {
		return
	}

	l := &lowerer{g: g, f: f, sig: sig, vars: make(map[string]varSlot)}
	f.Entry = f.NewBlock("entry")
	l.cur = f.Entry

	// Parameters get a stack slot and behave as mutable locals from
	// here on.
	for i, p := range sig.params {
		irType := g.target.MapType(p.typ)
		slot := l.emitAlloca(p.name, irType)
		l.emit(Instr{Kind: InstrStore, Store: StoreInstr{
			Slot:  ValueOp(slot),
			Value: ParamOp(uint32(i)),
		}})
		l.vars[p.name] = varSlot{slot: ValueOp(slot), src: p.typ, typ: irType}
	}

	var body *ast.Node
	for _, child := range n.Children {
		if child.Kind == ast.NodeBlock {
			body = child
		}
	}
	if body != nil {
		for _, stmt := range body.Children {
			l.lowerStmt(stmt)
		}
	}

	// Default-return policy: any unterminated block gets a synthesized
	// return of the target type's zero value, so every emitted function
	// is structurally complete even when the checker would have
	// complained about a missing return.
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == TermNone {
			f.Blocks[i].Term = l.defaultReturn()
		}
	}
}

// varSlot tracks one named local: its storage slot, source type and IR
// type.
type varSlot struct {
	slot Operand
	src  ast.TypeRef
	typ  Type
}

// value is a lowered expression: an operand plus the source type it
// carries.
type value struct {
	op  Operand
	src ast.TypeRef
	typ Type
}

type lowerer struct {
	g         *Generator
	f         *Func
	sig       *fnSig
	cur       BlockID
	nextValue ValueID
	vars      map[string]varSlot
}

func (l *lowerer) newValue() ValueID {
	id := l.nextValue
	l.nextValue++
	return id
}

// emit appends to the current block, opening a fresh block first if the
// current one is already terminated (code after a return).
func (l *lowerer) emit(in Instr) {
	l.ensureBlock()
	b := l.f.Block(l.cur)
	b.Instrs = append(b.Instrs, in)
}

func (l *lowerer) ensureBlock() {
	if l.f.Block(l.cur).Terminated() {
		l.cur = l.f.NewBlock("dead")
	}
}

func (l *lowerer) terminate(t Terminator) {
	l.ensureBlock()
	l.f.Block(l.cur).Term = t
}

func (l *lowerer) terminated() bool {
	return l.f.Block(l.cur).Terminated()
}

func (l *lowerer) emitAlloca(name string, t Type) ValueID {
	id := l.newValue()
	l.emit(Instr{Kind: InstrAlloca, Alloca: AllocaInstr{Dst: id, Name: name, Type: t}})
	return id
}

func (l *lowerer) emitLoad(slot Operand, t Type) ValueID {
	id := l.newValue()
	l.emit(Instr{Kind: InstrLoad, Load: LoadInstr{Dst: id, Slot: slot, Type: t}})
	return id
}

func (l *lowerer) emitStore(slot, v Operand) {
	l.emit(Instr{Kind: InstrStore, Store: StoreInstr{Slot: slot, Value: v}})
}

func (l *lowerer) emitBin(op BinOp, left, right Operand, t Type) ValueID {
	id := l.newValue()
	l.emit(Instr{Kind: InstrBin, Bin: BinInstr{Dst: id, Op: op, Left: left, Right: right, Type: t}})
	return id
}

func (l *lowerer) emitCall(callee string, args []Operand, result Type) (ValueID, bool) {
	if result.IsVoid() {
		l.emit(Instr{Kind: InstrCall, Call: CallInstr{Callee: callee, Args: args, Type: result}})
		return NoValueID, false
	}
	id := l.newValue()
	l.emit(Instr{Kind: InstrCall, Call: CallInstr{HasDst: true, Dst: id, Callee: callee, Args: args, Type: result}})
	return id, true
}

func (l *lowerer) emitFieldAddr(base Operand, layout string, index uint32, fieldType Type) ValueID {
	id := l.newValue()
	l.emit(Instr{Kind: InstrFieldAddr, FieldAddr: FieldAddrInstr{
		Dst: id, Base: base, Struct: layout, Index: index, Type: fieldType,
	}})
	return id
}

// defaultReturn builds the zero-value return for the function's result
// type: 0, 0.0, false, an empty interned string, or a null pointer.
func (l *lowerer) defaultReturn() Terminator {
	r := l.f.Result
	switch r.Kind {
	case TypeVoid:
		return Terminator{Kind: TermReturn}
	case TypeF64:
		return Terminator{Kind: TermReturn, Return: ReturnTerm{HasValue: true, Value: ConstFloat(0)}}
	case TypeI1, TypeI32, TypeI64:
		return Terminator{Kind: TermReturn, Return: ReturnTerm{HasValue: true, Value: ConstInt(r, 0)}}
	case TypePtr:
		if l.sig.result.Name == ast.TypeString && !l.sig.result.IsGeneric() {
			id := l.g.mod.InternString("")
			return Terminator{Kind: TermReturn, Return: ReturnTerm{HasValue: true, Value: GlobalOp(id)}}
		}
		return Terminator{Kind: TermReturn, Return: ReturnTerm{HasValue: true, Value: NullOp()}}
	default:
		return Terminator{Kind: TermReturn, Return: ReturnTerm{HasValue: true, Value: NullOp()}}
	}
}
