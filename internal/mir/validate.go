package mir

import (
	"errors"
	"fmt"
)

// Validate checks structural soundness of a lowered module: every
// defined function has an entry, every block carries exactly one
// terminator, every branch target and callee exists, and returns agree
// with the function's result type. Generation treats any failure here
// as fatal.
func Validate(m *Module) error {
	if m == nil {
		return errors.New("mir: nil module")
	}
	var errs []error
	for _, name := range m.FuncOrder {
		f := m.Funcs[name]
		if f == nil {
			errs = append(errs, fmt.Errorf("func %s: registered but missing", name))
			continue
		}
		if f.External {
			if len(f.Blocks) != 0 {
				errs = append(errs, fmt.Errorf("func %s: external declaration with a body", name))
			}
			continue
		}
		errs = append(errs, validateFunc(m, f)...)
	}
	return errors.Join(errs...)
}

func validateFunc(m *Module, f *Func) []error {
	var errs []error
	if len(f.Blocks) == 0 {
		return []error{fmt.Errorf("func %s: no blocks", f.Name)}
	}
	if f.Block(f.Entry) == nil {
		errs = append(errs, fmt.Errorf("func %s: entry block %d out of range", f.Name, f.Entry))
	}

	checkTarget := func(b *Block, id BlockID, what string) {
		if f.Block(id) == nil {
			errs = append(errs, fmt.Errorf("func %s: block %s: %s target %d out of range", f.Name, b.Label, what, id))
		}
	}

	for i := range f.Blocks {
		b := &f.Blocks[i]
		for _, in := range b.Instrs {
			if in.Kind == InstrCall {
				if _, ok := m.Funcs[in.Call.Callee]; !ok {
					errs = append(errs, fmt.Errorf("func %s: block %s: call to undeclared %q", f.Name, b.Label, in.Call.Callee))
				}
			}
			if in.Kind == InstrFieldAddr {
				if _, ok := m.Structs[in.FieldAddr.Struct]; !ok {
					errs = append(errs, fmt.Errorf("func %s: block %s: field address into unknown layout %q", f.Name, b.Label, in.FieldAddr.Struct))
				}
			}
		}

		switch b.Term.Kind {
		case TermNone:
			errs = append(errs, fmt.Errorf("func %s: block %s: not terminated", f.Name, b.Label))
		case TermReturn:
			if f.Result.IsVoid() && b.Term.Return.HasValue {
				errs = append(errs, fmt.Errorf("func %s: block %s: value returned from void function", f.Name, b.Label))
			}
			if !f.Result.IsVoid() && !b.Term.Return.HasValue {
				errs = append(errs, fmt.Errorf("func %s: block %s: missing return value", f.Name, b.Label))
			}
		case TermGoto:
			checkTarget(b, b.Term.Goto.Target, "goto")
		case TermIf:
			checkTarget(b, b.Term.If.Then, "then")
			checkTarget(b, b.Term.If.Else, "else")
		case TermSwitchTag:
			for _, c := range b.Term.SwitchTag.Cases {
				checkTarget(b, c.Target, "case "+c.TagName)
			}
			checkTarget(b, b.Term.SwitchTag.Default, "default")
		default:
			errs = append(errs, fmt.Errorf("func %s: block %s: unknown terminator kind %d", f.Name, b.Label, b.Term.Kind))
		}
	}
	return errs
}
