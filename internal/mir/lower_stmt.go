package mir

import "aegis/internal/ast"

func (l *lowerer) lowerStmt(n *ast.Node) {
	switch n.Kind {
	case ast.NodeBlock:
		for _, child := range n.Children {
			l.lowerStmt(child)
		}

	case ast.NodeVarDecl:
		l.lowerVarDecl(n)

	case ast.NodeAssign:
		l.lowerAssign(n)

	case ast.NodeIf:
		l.lowerIf(n)

	case ast.NodeWhile:
		l.lowerWhile(n)

	case ast.NodeFor:
		l.lowerFor(n)

	case ast.NodeReturn:
		l.lowerReturn(n)

	case ast.NodeMatch:
		l.lowerMatch(n)

	case ast.NodeExprStmt:
		if len(n.Children) == 1 {
			l.lowerExpr(n.Children[0])
		}

	default:
		// Bare expressions can appear in statement position after
		// desugaring.
		l.lowerExpr(n)
	}
}

func (l *lowerer) lowerVarDecl(n *ast.Node) {
	var init *ast.Node
	if len(n.Children) == 1 {
		init = n.Children[0]
	}

	src := ast.Ref(ast.TypeAny)
	switch {
	case n.Type != nil:
		src = *n.Type
	case init != nil:
		// Inferred declaration: the initializer decides the slot type,
		// so it lowers first.
		v := l.lowerExpr(init)
		slot := l.emitAlloca(n.Name, l.slotType(v.src))
		l.emitStore(ValueOp(slot), v.op)
		l.vars[n.Name] = varSlot{slot: ValueOp(slot), src: v.src, typ: v.typ}
		return
	}

	slot := l.emitAlloca(n.Name, l.slotType(src))
	l.vars[n.Name] = varSlot{slot: ValueOp(slot), src: src, typ: l.g.target.MapType(src)}
	if init != nil {
		v := l.lowerExpr(init)
		l.emitStore(ValueOp(slot), v.op)
	}
}

// slotType picks the alloca type for a binding of the given source
// type. Aggregates are stored in place; everything else by value.
func (l *lowerer) slotType(src ast.TypeRef) Type {
	return l.g.target.MapType(src)
}

func (l *lowerer) lowerAssign(n *ast.Node) {
	if len(n.Children) != 2 {
		return
	}
	target, expr := n.Children[0], n.Children[1]
	v := l.lowerExpr(expr)

	switch target.Kind {
	case ast.NodeIdent:
		if slot, ok := l.vars[target.Name]; ok {
			l.emitStore(slot.slot, v.op)
		}
	case ast.NodeMember:
		if addr, ok := l.memberAddr(target); ok {
			l.emitStore(ValueOp(addr), v.op)
		}
	}
}

func (l *lowerer) lowerIf(n *ast.Node) {
	if len(n.Children) < 2 {
		return
	}
	cond := l.lowerExpr(n.Children[0])
	thenNode := n.Children[1]
	var elseNode *ast.Node
	if len(n.Children) == 3 {
		elseNode = n.Children[2]
	}

	thenB := l.f.NewBlock("if.then")

	if elseNode == nil {
		merge := l.f.NewBlock("if.end")
		l.terminate(Terminator{Kind: TermIf, If: IfTerm{Cond: cond.op, Then: thenB, Else: merge}})
		l.cur = thenB
		l.lowerStmt(thenNode)
		if !l.terminated() {
			l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: merge}})
		}
		l.cur = merge
		return
	}

	elseB := l.f.NewBlock("if.else")
	l.terminate(Terminator{Kind: TermIf, If: IfTerm{Cond: cond.op, Then: thenB, Else: elseB}})

	l.cur = thenB
	l.lowerStmt(thenNode)
	thenEnd, thenOpen := l.cur, !l.terminated()

	l.cur = elseB
	l.lowerStmt(elseNode)
	elseEnd, elseOpen := l.cur, !l.terminated()

	// The merge block only exists when some path falls through, so a
	// function whose branches both return has no unreachable tail.
	if !thenOpen && !elseOpen {
		l.cur = elseEnd
		return
	}
	merge := l.f.NewBlock("if.end")
	if thenOpen {
		l.f.Block(thenEnd).Term = Terminator{Kind: TermGoto, Goto: GotoTerm{Target: merge}}
	}
	if elseOpen {
		l.f.Block(elseEnd).Term = Terminator{Kind: TermGoto, Goto: GotoTerm{Target: merge}}
	}
	l.cur = merge
}

func (l *lowerer) lowerWhile(n *ast.Node) {
	if len(n.Children) != 2 {
		return
	}
	header := l.f.NewBlock("while.cond")
	l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: header}})

	l.cur = header
	cond := l.lowerExpr(n.Children[0])
	body := l.f.NewBlock("while.body")
	exit := l.f.NewBlock("while.end")
	l.terminate(Terminator{Kind: TermIf, If: IfTerm{Cond: cond.op, Then: body, Else: exit}})

	l.cur = body
	l.lowerStmt(n.Children[1])
	if !l.terminated() {
		l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: header}})
	}
	l.cur = exit
}

// lowerFor lowers the three iterable shapes to a counted loop: ranges
// iterate the bound pair, arrays and strings go through the runtime
// length/index intrinsics.
func (l *lowerer) lowerFor(n *ast.Node) {
	if len(n.Children) != 2 {
		return
	}
	iterable := l.lowerExpr(n.Children[0])
	intT := l.g.target.Int()

	var limit Operand
	elemSrc := ast.Ref(ast.TypeAny)
	kind := forArray
	switch {
	case iterable.src.Name == ast.TypeRange && !iterable.src.IsGeneric():
		kind = forRange
		elemSrc = ast.Ref(ast.TypeInt)
	case iterable.src.Name == ast.TypeString && !iterable.src.IsGeneric():
		kind = forString
		elemSrc = ast.Ref(ast.TypeChar)
	case iterable.src.Name == ast.TypeArray && len(iterable.src.Args) == 1:
		elemSrc = iterable.src.Args[0]
	}

	idxSlot := l.emitAlloca(n.Name+".idx", intT)
	switch kind {
	case forRange:
		loAddr := l.emitFieldAddr(iterable.op, ast.TypeRange, 0, intT)
		lo := l.emitLoad(ValueOp(loAddr), intT)
		hiAddr := l.emitFieldAddr(iterable.op, ast.TypeRange, 1, intT)
		hi := l.emitLoad(ValueOp(hiAddr), intT)
		l.emitStore(ValueOp(idxSlot), ValueOp(lo))
		limit = ValueOp(hi)
	case forString:
		length, _ := l.emitCall("aegis_str_len", []Operand{iterable.op}, intT)
		l.emitStore(ValueOp(idxSlot), ConstInt(intT, 0))
		limit = ValueOp(length)
	default:
		length, _ := l.emitCall("aegis_arr_len", []Operand{iterable.op}, intT)
		l.emitStore(ValueOp(idxSlot), ConstInt(intT, 0))
		limit = ValueOp(length)
	}

	header := l.f.NewBlock("for.cond")
	l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: header}})

	l.cur = header
	idx := l.emitLoad(ValueOp(idxSlot), intT)
	cmp := l.emitBin(ICmpLt, ValueOp(idx), limit, I1())
	body := l.f.NewBlock("for.body")
	exit := l.f.NewBlock("for.end")
	l.terminate(Terminator{Kind: TermIf, If: IfTerm{Cond: ValueOp(cmp), Then: body, Else: exit}})

	l.cur = body
	elemT := l.g.target.MapType(elemSrc)
	varSlotID := l.emitAlloca(n.Name, elemT)
	switch kind {
	case forRange:
		l.emitStore(ValueOp(varSlotID), ValueOp(idx))
	case forString:
		ch, _ := l.emitCall("aegis_str_get", []Operand{iterable.op, ValueOp(idx)}, I32())
		l.emitStore(ValueOp(varSlotID), ValueOp(ch))
	default:
		addr, _ := l.emitCall("aegis_arr_get", []Operand{iterable.op, ValueOp(idx)}, Ptr())
		elem := l.emitLoad(ValueOp(addr), elemT)
		l.emitStore(ValueOp(varSlotID), ValueOp(elem))
	}
	l.vars[n.Name] = varSlot{slot: ValueOp(varSlotID), src: elemSrc, typ: elemT}

	l.lowerStmt(n.Children[1])
	if !l.terminated() {
		next := l.emitBin(IAdd, ValueOp(idx), ConstInt(intT, 1), intT)
		l.emitStore(ValueOp(idxSlot), ValueOp(next))
		l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: header}})
	}
	l.cur = exit
}

type forKind uint8

const (
	forArray forKind = iota
	forRange
	forString
)

func (l *lowerer) lowerReturn(n *ast.Node) {
	if len(n.Children) == 0 {
		l.terminate(Terminator{Kind: TermReturn})
		return
	}
	v := l.lowerExpr(n.Children[0])
	l.terminate(Terminator{Kind: TermReturn, Return: ReturnTerm{HasValue: true, Value: v.op}})
}

// lowerMatch dispatches enum subjects on their tag word with a
// switch-tag terminator; non-enum subjects fall back to an equality
// chain over literal patterns.
func (l *lowerer) lowerMatch(n *ast.Node) {
	if len(n.Children) == 0 {
		return
	}
	subject := l.lowerExpr(n.Children[0])
	branches := n.Children[1:]

	if info, ok := l.g.enums[subject.src.Name]; ok && !subject.src.IsGeneric() {
		l.lowerEnumMatch(subject, info, branches)
		return
	}
	l.lowerLiteralMatch(subject, branches)
}

func (l *lowerer) lowerEnumMatch(subject value, info *enumSig, branches []*ast.Node) {
	tagAddr := l.emitFieldAddr(subject.op, info.name, 0, I32())
	tag := l.emitLoad(ValueOp(tagAddr), I32())

	type caseWork struct {
		block  BlockID
		branch *ast.Node
		// variant is nil for the catch-all branch.
		variant *variantSig
	}

	var cases []SwitchTagCase
	var work []caseWork
	defaultB := NoBlockID

	for _, branch := range branches {
		pattern, _, _ := splitBranch(branch)
		if pattern == nil {
			continue
		}
		if pattern.Kind == ast.NodeVariantPattern {
			idx, variant := info.variantByName(pattern.Name)
			if variant == nil {
				continue
			}
			b := l.f.NewBlock("match." + pattern.Name)
			cases = append(cases, SwitchTagCase{TagName: pattern.Name, Tag: int64(idx), Target: b})
			work = append(work, caseWork{block: b, branch: branch, variant: variant})
			continue
		}
		if pattern.Kind == ast.NodeIdent && defaultB == NoBlockID {
			defaultB = l.f.NewBlock("match.else")
			work = append(work, caseWork{block: defaultB, branch: branch})
		}
	}

	merge := l.f.NewBlock("match.end")
	if defaultB == NoBlockID {
		defaultB = merge
	}
	l.terminate(Terminator{Kind: TermSwitchTag, SwitchTag: SwitchTagTerm{
		Value: ValueOp(tag), Cases: cases, Default: defaultB,
	}})

	for _, w := range work {
		l.cur = w.block
		pattern, guard, body := splitBranch(w.branch)
		if w.variant != nil {
			l.bindVariantFields(subject, w.variant, pattern)
		} else if pattern.Kind == ast.NodeIdent && pattern.Name != "_" {
			slot := l.emitAlloca(pattern.Name, subject.typ)
			l.emitStore(ValueOp(slot), subject.op)
			l.vars[pattern.Name] = varSlot{slot: ValueOp(slot), src: subject.src, typ: subject.typ}
		}
		if guard != nil {
			g := l.lowerExpr(guard)
			bodyB := l.f.NewBlock(w.block.labelFor(l.f) + ".body")
			l.terminate(Terminator{Kind: TermIf, If: IfTerm{Cond: g.op, Then: bodyB, Else: merge}})
			l.cur = bodyB
		}
		if body != nil {
			l.lowerStmt(body)
		}
		if !l.terminated() {
			l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: merge}})
		}
	}
	l.cur = merge
}

// bindVariantFields binds identifier sub-patterns to loads from the
// variant layout (tag at index 0, payload fields after).
func (l *lowerer) bindVariantFields(subject value, variant *variantSig, pattern *ast.Node) {
	layout := l.g.enums[subject.src.Name].name + "." + variant.name
	for i, sub := range pattern.Children {
		if sub.Kind != ast.NodeIdent || sub.Name == "_" || i >= len(variant.fields) {
			continue
		}
		field := variant.fields[i]
		fieldT := l.g.target.MapType(field.typ)
		addr := l.emitFieldAddr(subject.op, layout, uint32(i+1), fieldT)
		v := l.emitLoad(ValueOp(addr), fieldT)
		slot := l.emitAlloca(sub.Name, fieldT)
		l.emitStore(ValueOp(slot), ValueOp(v))
		l.vars[sub.Name] = varSlot{slot: ValueOp(slot), src: field.typ, typ: fieldT}
	}
}

func (l *lowerer) lowerLiteralMatch(subject value, branches []*ast.Node) {
	merge := l.f.NewBlock("match.end")
	for _, branch := range branches {
		pattern, guard, body := splitBranch(branch)
		if pattern == nil {
			continue
		}
		if pattern.Kind == ast.NodeIdent {
			if pattern.Name != "_" {
				slot := l.emitAlloca(pattern.Name, subject.typ)
				l.emitStore(ValueOp(slot), subject.op)
				l.vars[pattern.Name] = varSlot{slot: ValueOp(slot), src: subject.src, typ: subject.typ}
			}
			if guard != nil {
				g := l.lowerExpr(guard)
				bodyB := l.f.NewBlock("match.arm")
				next := l.f.NewBlock("match.next")
				l.terminate(Terminator{Kind: TermIf, If: IfTerm{Cond: g.op, Then: bodyB, Else: next}})
				l.cur = bodyB
				if body != nil {
					l.lowerStmt(body)
				}
				if !l.terminated() {
					l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: merge}})
				}
				l.cur = next
				continue
			}
			if body != nil {
				l.lowerStmt(body)
			}
			if !l.terminated() {
				l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: merge}})
			}
			l.cur = merge
			// A catch-all ends the chain.
			return
		}

		lit := l.lowerExpr(pattern)
		op := ICmpEq
		if subject.src.Name == ast.TypeFloat && !subject.src.IsGeneric() {
			op = FCmpEq
		}
		cmp := l.emitBin(op, subject.op, lit.op, I1())
		cond := ValueOp(cmp)
		if guard != nil {
			g := l.lowerExpr(guard)
			both := l.emitBin(IAnd, cond, g.op, I1())
			cond = ValueOp(both)
		}
		bodyB := l.f.NewBlock("match.arm")
		next := l.f.NewBlock("match.next")
		l.terminate(Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: bodyB, Else: next}})
		l.cur = bodyB
		if body != nil {
			l.lowerStmt(body)
		}
		if !l.terminated() {
			l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: merge}})
		}
		l.cur = next
	}
	if !l.terminated() {
		l.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: merge}})
	}
	l.cur = merge
}

// splitBranch unpacks a match branch into pattern, optional guard and
// body.
func splitBranch(branch *ast.Node) (pattern, guard, body *ast.Node) {
	if branch == nil || branch.Kind != ast.NodeMatchBranch || len(branch.Children) < 2 {
		return nil, nil, nil
	}
	pattern = branch.Children[0]
	if branch.Flags.Has(ast.FlagHasGuard) && len(branch.Children) == 3 {
		guard = branch.Children[1]
		body = branch.Children[2]
		return pattern, guard, body
	}
	body = branch.Children[len(branch.Children)-1]
	return pattern, nil, body
}

func (b BlockID) labelFor(f *Func) string {
	if blk := f.Block(b); blk != nil {
		return blk.Label
	}
	return "block"
}

func (info *enumSig) variantByName(name string) (int, *variantSig) {
	for i := range info.variants {
		if info.variants[i].name == name {
			return i, &info.variants[i]
		}
	}
	return -1, nil
}
