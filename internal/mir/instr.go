package mir

// OperandKind distinguishes instruction operand sources.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	// OperandConst is an immediate constant.
	OperandConst
	// OperandValue is the result of an earlier instruction.
	OperandValue
	// OperandParam is an incoming function parameter.
	OperandParam
	// OperandGlobal is a pointer to an interned module global.
	OperandGlobal
	// OperandFunc is a direct reference to a declared function.
	OperandFunc
	// OperandNull is a typed null pointer.
	OperandNull
)

// Const is an immediate. Int holds bools (0/1) and chars as well.
type Const struct {
	Type  Type
	Int   int64
	Float float64
}

// Operand is one input to an instruction or terminator.
type Operand struct {
	Kind   OperandKind
	Const  Const
	Value  ValueID
	Param  uint32
	Global GlobalID
	Func   string
}

func ConstInt(t Type, v int64) Operand {
	return Operand{Kind: OperandConst, Const: Const{Type: t, Int: v}}
}

func ConstFloat(v float64) Operand {
	return Operand{Kind: OperandConst, Const: Const{Type: F64(), Float: v}}
}

func ConstBool(v bool) Operand {
	n := int64(0)
	if v {
		n = 1
	}
	return ConstInt(I1(), n)
}

func ValueOp(id ValueID) Operand   { return Operand{Kind: OperandValue, Value: id} }
func ParamOp(i uint32) Operand     { return Operand{Kind: OperandParam, Param: i} }
func GlobalOp(id GlobalID) Operand { return Operand{Kind: OperandGlobal, Global: id} }
func FuncOp(name string) Operand   { return Operand{Kind: OperandFunc, Func: name} }
func NullOp() Operand              { return Operand{Kind: OperandNull} }

// BinOp enumerates binary instruction opcodes. Integer and float
// opcodes are separate instruction families; all comparisons produce an
// i1 regardless of family.
type BinOp uint8

const (
	IAdd BinOp = iota
	ISub
	IMul
	IDiv
	IRem
	IAnd
	IOr
	ICmpEq
	ICmpNe
	ICmpLt
	ICmpLe
	ICmpGt
	ICmpGe
	FAdd
	FSub
	FMul
	FDiv
	FCmpEq
	FCmpNe
	FCmpLt
	FCmpLe
	FCmpGt
	FCmpGe
)

func (o BinOp) String() string {
	switch o {
	case IAdd:
		return "add"
	case ISub:
		return "sub"
	case IMul:
		return "mul"
	case IDiv:
		return "sdiv"
	case IRem:
		return "srem"
	case IAnd:
		return "and"
	case IOr:
		return "or"
	case ICmpEq:
		return "icmp eq"
	case ICmpNe:
		return "icmp ne"
	case ICmpLt:
		return "icmp slt"
	case ICmpLe:
		return "icmp sle"
	case ICmpGt:
		return "icmp sgt"
	case ICmpGe:
		return "icmp sge"
	case FAdd:
		return "fadd"
	case FSub:
		return "fsub"
	case FMul:
		return "fmul"
	case FDiv:
		return "fdiv"
	case FCmpEq:
		return "fcmp oeq"
	case FCmpNe:
		return "fcmp one"
	case FCmpLt:
		return "fcmp olt"
	case FCmpLe:
		return "fcmp ole"
	case FCmpGt:
		return "fcmp ogt"
	case FCmpGe:
		return "fcmp oge"
	}
	return "?"
}

// IsCompare reports whether o is a comparison opcode (either family).
func (o BinOp) IsCompare() bool {
	return (o >= ICmpEq && o <= ICmpGe) || (o >= FCmpEq && o <= FCmpGe)
}

// UnOp enumerates unary instruction opcodes.
type UnOp uint8

const (
	INeg UnOp = iota
	FNeg
	Not
)

func (o UnOp) String() string {
	switch o {
	case INeg:
		return "neg"
	case FNeg:
		return "fneg"
	case Not:
		return "not"
	}
	return "?"
}

// InstrKind enumerates instruction kinds.
type InstrKind uint8

const (
	// InstrAlloca reserves a local storage slot.
	InstrAlloca InstrKind = iota
	// InstrLoad reads a slot.
	InstrLoad
	// InstrStore writes a slot.
	InstrStore
	// InstrBin applies a binary opcode.
	InstrBin
	// InstrUn applies a unary opcode.
	InstrUn
	// InstrCall calls a declared function or intrinsic directly. The
	// language has no virtual dispatch in this core.
	InstrCall
	// InstrFieldAddr computes the address of an aggregate field.
	InstrFieldAddr
)

// Instr is one non-terminator instruction. Exactly one payload field is
// meaningful, selected by Kind.
type Instr struct {
	Kind InstrKind

	Alloca    AllocaInstr
	Load      LoadInstr
	Store     StoreInstr
	Bin       BinInstr
	Un        UnInstr
	Call      CallInstr
	FieldAddr FieldAddrInstr
}

// AllocaInstr reserves a slot of Type named after a source binding.
type AllocaInstr struct {
	Dst  ValueID
	Name string
	Type Type
}

type LoadInstr struct {
	Dst  ValueID
	Slot Operand
	Type Type
}

type StoreInstr struct {
	Slot  Operand
	Value Operand
}

type BinInstr struct {
	Dst   ValueID
	Op    BinOp
	Left  Operand
	Right Operand
	Type  Type // result type
}

type UnInstr struct {
	Dst     ValueID
	Op      UnOp
	Operand Operand
	Type    Type
}

type CallInstr struct {
	HasDst bool
	Dst    ValueID
	Callee string
	Args   []Operand
	Type   Type // result type; void when HasDst is false
}

// FieldAddrInstr computes a pointer to field Index of the layout named
// Struct, given a base pointer.
type FieldAddrInstr struct {
	Dst    ValueID
	Base   Operand
	Struct string
	Index  uint32
	Type   Type // field type
}
