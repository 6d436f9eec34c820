package mir

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a deterministic textual rendering of the module.
// Declaration order is preserved, so two generations of the same tree
// print byte-identically.
func Fprint(w io.Writer, m *Module) error {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", m.Name)

	for _, name := range m.StructOrder {
		fields := make([]string, len(m.Structs[name]))
		for i, t := range m.Structs[name] {
			fields[i] = t.String()
		}
		fmt.Fprintf(&b, "%%%s = { %s }\n", name, strings.Join(fields, ", "))
	}

	for _, g := range m.Globals {
		fmt.Fprintf(&b, "global %s = %q\n", g.Name, g.Data)
	}

	for _, name := range m.FuncOrder {
		printFunc(&b, m.Funcs[name])
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (m *Module) String() string {
	var b strings.Builder
	Fprint(&b, m)
	return b.String()
}

func printFunc(b *strings.Builder, f *Func) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s %s", p.Type, p.Name)
	}
	if f.Variadic {
		params = append(params, "...")
	}
	if f.External {
		fmt.Fprintf(b, "declare %s %s(%s)\n", f.Result, f.Name, strings.Join(params, ", "))
		return
	}
	fmt.Fprintf(b, "func %s %s(%s) {\n", f.Result, f.Name, strings.Join(params, ", "))
	for i := range f.Blocks {
		printBlock(b, &f.Blocks[i])
	}
	b.WriteString("}\n")
}

func printBlock(b *strings.Builder, blk *Block) {
	fmt.Fprintf(b, "%s.%d:\n", blk.Label, blk.ID)
	for _, in := range blk.Instrs {
		b.WriteString("  ")
		b.WriteString(instrString(in))
		b.WriteByte('\n')
	}
	b.WriteString("  ")
	b.WriteString(termString(blk.Term))
	b.WriteByte('\n')
}

func operandString(o Operand) string {
	switch o.Kind {
	case OperandConst:
		if o.Const.Type.Kind == TypeF64 {
			return fmt.Sprintf("%s %g", o.Const.Type, o.Const.Float)
		}
		return fmt.Sprintf("%s %d", o.Const.Type, o.Const.Int)
	case OperandValue:
		return fmt.Sprintf("%%v%d", o.Value)
	case OperandParam:
		return fmt.Sprintf("%%arg%d", o.Param)
	case OperandGlobal:
		return fmt.Sprintf("@.str.%d", o.Global)
	case OperandFunc:
		return "@" + o.Func
	case OperandNull:
		return "null"
	}
	return "void"
}

func instrString(in Instr) string {
	switch in.Kind {
	case InstrAlloca:
		return fmt.Sprintf("%%v%d = alloca %s ; %s", in.Alloca.Dst, in.Alloca.Type, in.Alloca.Name)
	case InstrLoad:
		return fmt.Sprintf("%%v%d = load %s, %s", in.Load.Dst, in.Load.Type, operandString(in.Load.Slot))
	case InstrStore:
		return fmt.Sprintf("store %s, %s", operandString(in.Store.Slot), operandString(in.Store.Value))
	case InstrBin:
		return fmt.Sprintf("%%v%d = %s %s, %s", in.Bin.Dst, in.Bin.Op, operandString(in.Bin.Left), operandString(in.Bin.Right))
	case InstrUn:
		return fmt.Sprintf("%%v%d = %s %s", in.Un.Dst, in.Un.Op, operandString(in.Un.Operand))
	case InstrCall:
		args := make([]string, len(in.Call.Args))
		for i, a := range in.Call.Args {
			args[i] = operandString(a)
		}
		call := fmt.Sprintf("call %s %s(%s)", in.Call.Type, in.Call.Callee, strings.Join(args, ", "))
		if in.Call.HasDst {
			return fmt.Sprintf("%%v%d = %s", in.Call.Dst, call)
		}
		return call
	case InstrFieldAddr:
		return fmt.Sprintf("%%v%d = fieldaddr %%%s, %s, %d", in.FieldAddr.Dst, in.FieldAddr.Struct, operandString(in.FieldAddr.Base), in.FieldAddr.Index)
	}
	return "?"
}

func termString(t Terminator) string {
	switch t.Kind {
	case TermReturn:
		if t.Return.HasValue {
			return "ret " + operandString(t.Return.Value)
		}
		return "ret void"
	case TermGoto:
		return fmt.Sprintf("br block %d", t.Goto.Target)
	case TermIf:
		return fmt.Sprintf("br %s, block %d, block %d", operandString(t.If.Cond), t.If.Then, t.If.Else)
	case TermSwitchTag:
		cases := make([]string, len(t.SwitchTag.Cases))
		for i, c := range t.SwitchTag.Cases {
			cases[i] = fmt.Sprintf("%s(%d) -> block %d", c.TagName, c.Tag, c.Target)
		}
		return fmt.Sprintf("switchtag %s [%s], default block %d", operandString(t.SwitchTag.Value), strings.Join(cases, ", "), t.SwitchTag.Default)
	case TermNone:
		return "<unterminated>"
	}
	return "?"
}
