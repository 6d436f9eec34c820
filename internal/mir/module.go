package mir

import "fmt"

// Global is one deduplicated constant byte array (interned string data,
// including the terminating zero byte).
type Global struct {
	Name string
	Data []byte
}

// Module is the complete IR for one compilation unit: aggregate
// layouts, functions keyed by qualified name, and interned globals. It
// is produced once per successful type check and never mutated after
// hand-off.
type Module struct {
	Name string

	// Structs maps a layout name to its ordered field types.
	Structs     map[string][]Type
	StructOrder []string

	Funcs     map[string]*Func
	FuncOrder []string

	Globals     []Global
	globalIndex map[string]GlobalID
}

func NewModule(name string) *Module {
	return &Module{
		Name:        name,
		Structs:     make(map[string][]Type),
		Funcs:       make(map[string]*Func),
		globalIndex: make(map[string]GlobalID),
	}
}

// DeclareStruct registers an aggregate layout. Redeclaring a name
// overwrites the layout but keeps its original order slot.
func (m *Module) DeclareStruct(name string, fields []Type) {
	if _, ok := m.Structs[name]; !ok {
		m.StructOrder = append(m.StructOrder, name)
	}
	m.Structs[name] = fields
}

// DeclareFunc registers a function under its qualified name.
func (m *Module) DeclareFunc(f *Func) *Func {
	if _, ok := m.Funcs[f.Name]; !ok {
		m.FuncOrder = append(m.FuncOrder, f.Name)
	}
	m.Funcs[f.Name] = f
	return f
}

// InternString returns the global holding s (with a trailing zero
// byte), creating it on first use. Identical contents share one global.
func (m *Module) InternString(s string) GlobalID {
	if id, ok := m.globalIndex[s]; ok {
		return id
	}
	id := GlobalID(len(m.Globals))
	data := append([]byte(s), 0)
	m.Globals = append(m.Globals, Global{
		Name: fmt.Sprintf(".str.%d", id),
		Data: data,
	})
	m.globalIndex[s] = id
	return id
}

func (m *Module) Global(id GlobalID) *Global {
	if id < 0 || int(id) >= len(m.Globals) {
		return nil
	}
	return &m.Globals[id]
}
