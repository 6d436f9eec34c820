package mir

// Block is a straight-line instruction sequence with exactly one
// terminator once the module is complete.
type Block struct {
	ID     BlockID
	Label  string
	Instrs []Instr
	Term   Terminator
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}
