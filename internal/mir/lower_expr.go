package mir

import "aegis/internal/ast"

func (l *lowerer) lowerExpr(n *ast.Node) value {
	switch n.Kind {
	case ast.NodeLit:
		return l.lowerLit(n)

	case ast.NodeIdent:
		return l.lowerIdent(n)

	case ast.NodeBinary:
		return l.lowerBinary(n)

	case ast.NodeUnary:
		return l.lowerUnary(n)

	case ast.NodeCall:
		return l.lowerCall(n)

	case ast.NodeMember:
		return l.lowerMember(n)

	case ast.NodeAwait, ast.NodeTaskSpawn:
		// Async constructs are checked but not executed by this core;
		// they lower to their operand's value.
		if len(n.Children) == 1 {
			return l.lowerExpr(n.Children[0])
		}
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}

	default:
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
}

func (l *lowerer) lowerLit(n *ast.Node) value {
	if n.Lit == nil {
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
	switch n.Lit.Kind {
	case ast.LitInt:
		t := l.g.target.Int()
		return value{op: ConstInt(t, n.Lit.Int), src: ast.Ref(ast.TypeInt), typ: t}
	case ast.LitFloat:
		return value{op: ConstFloat(n.Lit.Float), src: ast.Ref(ast.TypeFloat), typ: F64()}
	case ast.LitBool:
		return value{op: ConstBool(n.Lit.Bool), src: ast.Ref(ast.TypeBool), typ: I1()}
	case ast.LitString:
		id := l.g.mod.InternString(n.Lit.Str)
		return value{op: GlobalOp(id), src: ast.Ref(ast.TypeString), typ: Ptr()}
	}
	return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
}

func (l *lowerer) lowerIdent(n *ast.Node) value {
	if slot, ok := l.vars[n.Name]; ok {
		// Aggregates live in their slot; the slot pointer is the value.
		if slot.typ.Kind == TypeStruct {
			return value{op: slot.slot, src: slot.src, typ: Ptr()}
		}
		id := l.emitLoad(slot.slot, slot.typ)
		return value{op: ValueOp(id), src: slot.src, typ: slot.typ}
	}
	if sig, ok := l.g.fns[n.Name]; ok {
		return value{op: FuncOp(sig.qualified), src: ast.Ref("function"), typ: Ptr()}
	}
	return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
}

// lowerBinary picks the instruction family by the left operand's source
// type: float operands get the floating-point opcodes, everything else
// the integer ones. Logical and/or lower to bitwise opcodes on i1.
func (l *lowerer) lowerBinary(n *ast.Node) value {
	if len(n.Children) != 2 {
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
	left := l.lowerExpr(n.Children[0])
	right := l.lowerExpr(n.Children[1])
	isFloat := left.src.Name == ast.TypeFloat && !left.src.IsGeneric()

	if n.Op.IsLogic() {
		op := IAnd
		if n.Op == ast.OpOr {
			op = IOr
		}
		id := l.emitBin(op, left.op, right.op, I1())
		return value{op: ValueOp(id), src: ast.Ref(ast.TypeBool), typ: I1()}
	}

	if n.Op.IsCompare() {
		id := l.emitBin(compareOp(n.Op, isFloat), left.op, right.op, I1())
		return value{op: ValueOp(id), src: ast.Ref(ast.TypeBool), typ: I1()}
	}

	op, ok := arithOp(n.Op, isFloat)
	if !ok {
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
	id := l.emitBin(op, left.op, right.op, left.typ)
	return value{op: ValueOp(id), src: left.src, typ: left.typ}
}

func arithOp(op ast.Op, isFloat bool) (BinOp, bool) {
	if isFloat {
		switch op {
		case ast.OpAdd:
			return FAdd, true
		case ast.OpSub:
			return FSub, true
		case ast.OpMul:
			return FMul, true
		case ast.OpDiv:
			return FDiv, true
		}
		return 0, false
	}
	switch op {
	case ast.OpAdd:
		return IAdd, true
	case ast.OpSub:
		return ISub, true
	case ast.OpMul:
		return IMul, true
	case ast.OpDiv:
		return IDiv, true
	case ast.OpRem:
		return IRem, true
	}
	return 0, false
}

func compareOp(op ast.Op, isFloat bool) BinOp {
	if isFloat {
		switch op {
		case ast.OpEq:
			return FCmpEq
		case ast.OpNe:
			return FCmpNe
		case ast.OpLt:
			return FCmpLt
		case ast.OpLe:
			return FCmpLe
		case ast.OpGt:
			return FCmpGt
		}
		return FCmpGe
	}
	switch op {
	case ast.OpEq:
		return ICmpEq
	case ast.OpNe:
		return ICmpNe
	case ast.OpLt:
		return ICmpLt
	case ast.OpLe:
		return ICmpLe
	case ast.OpGt:
		return ICmpGt
	}
	return ICmpGe
}

func (l *lowerer) lowerUnary(n *ast.Node) value {
	if len(n.Children) != 1 {
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
	operand := l.lowerExpr(n.Children[0])

	var op UnOp
	switch {
	case n.Op == ast.OpNot:
		op = Not
	case operand.src.Name == ast.TypeFloat && !operand.src.IsGeneric():
		op = FNeg
	default:
		op = INeg
	}
	id := l.newValue()
	l.emit(Instr{Kind: InstrUn, Un: UnInstr{Dst: id, Op: op, Operand: operand.op, Type: operand.typ}})
	return value{op: ValueOp(id), src: operand.src, typ: operand.typ}
}

func (l *lowerer) lowerCall(n *ast.Node) value {
	if len(n.Children) == 0 {
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
	callee := n.Children[0]
	args := n.Children[1:]

	if callee.Kind == ast.NodeMember {
		return l.lowerMethodCall(callee, args)
	}

	switch callee.Name {
	case "print":
		return l.lowerPrint(args)
	case "range":
		return l.lowerRange(args)
	}

	sig, ok := l.g.fns[callee.Name]
	if !ok {
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
	ops := make([]Operand, 0, len(args))
	for _, arg := range args {
		ops = append(ops, l.lowerExpr(arg).op)
	}
	return l.finishCall(sig, ops)
}

func (l *lowerer) lowerMethodCall(callee *ast.Node, args []*ast.Node) value {
	if len(callee.Children) != 1 {
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
	recv := l.lowerExpr(callee.Children[0])
	sig, ok := l.g.fns[recv.src.Name+"."+callee.Name]
	if !ok {
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
	ops := make([]Operand, 0, len(args)+1)
	if sig.method && len(sig.params) > len(args) {
		// Explicit receiver parameter: the object pointer rides first.
		ops = append(ops, recv.op)
	}
	for _, arg := range args {
		ops = append(ops, l.lowerExpr(arg).op)
	}
	return l.finishCall(sig, ops)
}

func (l *lowerer) finishCall(sig *fnSig, args []Operand) value {
	resultT := l.g.target.MapType(sig.result)
	id, has := l.emitCall(sig.qualified, args, resultT)
	if !has {
		return value{op: Operand{Kind: OperandNone}, src: sig.result, typ: resultT}
	}
	return value{op: ValueOp(id), src: sig.result, typ: resultT}
}

// lowerPrint resolves the built-in print to the target's output
// intrinsic.
func (l *lowerer) lowerPrint(args []*ast.Node) value {
	ops := make([]Operand, 0, len(args))
	for _, arg := range args {
		ops = append(ops, l.lowerExpr(arg).op)
	}
	result := Void()
	if l.g.target.PrintIntrinsic == "printf" {
		result = I32()
	}
	l.emit(Instr{Kind: InstrCall, Call: CallInstr{
		Callee: l.g.target.PrintIntrinsic, Args: ops, Type: result,
	}})
	return value{op: Operand{Kind: OperandNone}, src: ast.Ref(ast.TypeVoid), typ: Void()}
}

// lowerRange materializes a Range aggregate on the stack and yields its
// address.
func (l *lowerer) lowerRange(args []*ast.Node) value {
	intT := l.g.target.Int()
	if _, ok := l.g.mod.Structs[ast.TypeRange]; !ok {
		l.g.mod.DeclareStruct(ast.TypeRange, []Type{intT, intT})
	}
	slot := l.emitAlloca("range", Aggregate(ast.TypeRange))
	for i := 0; i < 2 && i < len(args); i++ {
		v := l.lowerExpr(args[i])
		addr := l.emitFieldAddr(ValueOp(slot), ast.TypeRange, uint32(i), intT)
		l.emitStore(ValueOp(addr), v.op)
	}
	return value{op: ValueOp(slot), src: ast.Ref(ast.TypeRange), typ: Ptr()}
}

func (l *lowerer) lowerMember(n *ast.Node) value {
	addr, field, ok := l.memberAddrTyped(n)
	if !ok {
		return value{op: NullOp(), src: ast.Ref(ast.TypeAny), typ: Ptr()}
	}
	fieldT := l.g.target.MapType(field)
	if fieldT.Kind == TypeStruct {
		return value{op: ValueOp(addr), src: field, typ: Ptr()}
	}
	id := l.emitLoad(ValueOp(addr), fieldT)
	return value{op: ValueOp(id), src: field, typ: fieldT}
}

// memberAddr computes the address of a struct field access.
func (l *lowerer) memberAddr(n *ast.Node) (ValueID, bool) {
	id, _, ok := l.memberAddrTyped(n)
	return id, ok
}

func (l *lowerer) memberAddrTyped(n *ast.Node) (ValueID, ast.TypeRef, bool) {
	if len(n.Children) != 1 {
		return NoValueID, ast.TypeRef{}, false
	}
	base := l.lowerExpr(n.Children[0])
	fields, ok := l.g.structs[base.src.Name]
	if !ok {
		return NoValueID, ast.TypeRef{}, false
	}
	for i, f := range fields {
		if f.name == n.Name {
			fieldT := l.g.target.MapType(f.typ)
			id := l.emitFieldAddr(base.op, base.src.Name, uint32(i), fieldT)
			return id, f.typ, true
		}
	}
	return NoValueID, ast.TypeRef{}, false
}
