package mir

// TermKind enumerates block terminators.
type TermKind uint8

const (
	TermNone TermKind = iota
	TermReturn
	TermGoto
	TermIf
	TermSwitchTag
)

// Terminator ends a basic block. Kind selects the payload.
type Terminator struct {
	Kind TermKind

	Return    ReturnTerm
	Goto      GotoTerm
	If        IfTerm
	SwitchTag SwitchTagTerm
}

type ReturnTerm struct {
	HasValue bool
	Value    Operand
}

type GotoTerm struct {
	Target BlockID
}

type IfTerm struct {
	Cond Operand
	Then BlockID
	Else BlockID
}

// SwitchTagCase routes one enum variant tag to a block.
type SwitchTagCase struct {
	TagName string
	Tag     int64
	Target  BlockID
}

// SwitchTagTerm dispatches on an enum value's tag word.
type SwitchTagTerm struct {
	Value   Operand
	Cases   []SwitchTagCase
	Default BlockID
}
