package ast

// Op enumerates binary and unary operators. Binary and unary operators
// share one enum; NodeBinary and NodeUnary constrain which values are
// meaningful on a given node.
type Op uint8

const (
	OpInvalid Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpNeg
	OpNot
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	default:
		return "?"
	}
}

// IsArith reports whether o is one of + - * / %.
func (o Op) IsArith() bool {
	return o >= OpAdd && o <= OpRem
}

// IsCompare reports whether o is one of == != < <= > >=.
func (o Op) IsCompare() bool {
	return o >= OpEq && o <= OpGe
}

// IsEquality reports whether o is == or !=.
func (o Op) IsEquality() bool {
	return o == OpEq || o == OpNe
}

// IsLogic reports whether o is && or ||.
func (o Op) IsLogic() bool {
	return o == OpAnd || o == OpOr
}
