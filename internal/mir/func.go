package mir

// Param is one declared function parameter.
type Param struct {
	Name string
	Type Type
}

// Func is one function: a declaration (intrinsics, signatures from the
// first pass) or a full definition with blocks after the second pass.
type Func struct {
	// Name is the qualified name: dot-joined module path plus the
	// function name, so same-named functions in different modules never
	// collide.
	Name     string
	Params   []Param
	Result   Type
	Variadic bool
	// External marks intrinsic declarations that carry no body.
	External bool

	Blocks []Block
	Entry  BlockID
}

// NewBlock appends an unterminated block and returns its ID.
func (f *Func) NewBlock(label string) BlockID {
	id := BlockID(len(f.Blocks))
	f.Blocks = append(f.Blocks, Block{ID: id, Label: label, Term: Terminator{Kind: TermNone}})
	return id
}

func (f *Func) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}
