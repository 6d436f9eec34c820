package symbols

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"aegis/internal/ast"
)

// GlobalScopeName is the name of the root scope of every table.
const GlobalScopeName = "global"

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table is the scope/symbol table for one compile invocation. It is
// created fresh per compilation and never reused or shared. The table
// itself raises no errors: redeclaration silently overwrites the
// previous entry (last write wins) and failed lookups return ok=false;
// reporting is the caller's responsibility.
type Table struct {
	scopes  []Scope
	symbols []Symbol
	current ScopeID
}

// NewTable builds a table containing only the global scope.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t := &Table{
		scopes:  make([]Scope, 0, scopeCap),
		symbols: make([]Symbol, 0, symCap),
	}
	t.current = t.newScope(GlobalScopeName, NoScopeID)
	return t
}

func (t *Table) newScope(name string, parent ScopeID) ScopeID {
	t.scopes = append(t.scopes, Scope{
		Name:    name,
		Parent:  parent,
		Symbols: make(map[string]SymbolID),
	})
	id := ScopeID(len(t.scopes))
	if parent.IsValid() {
		p := t.scope(parent)
		p.Children = append(p.Children, id)
	}
	return id
}

func (t *Table) scope(id ScopeID) *Scope {
	return &t.scopes[id-1]
}

// Global returns the root scope ID.
func (t *Table) Global() ScopeID {
	return ScopeID(1)
}

// Current returns the scope new symbols are added to.
func (t *Table) Current() ScopeID {
	return t.current
}

// CurrentScopeName returns the name of the current scope.
func (t *Table) CurrentScopeName() string {
	return t.scope(t.current).Name
}

// ScopePath returns the dot-joined path from the global scope to the
// current one, e.g. "global.math.add".
func (t *Table) ScopePath() string {
	var parts []string
	for id := t.current; id.IsValid(); id = t.scope(id).Parent {
		parts = append(parts, t.scope(id).Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// EnterScope pushes a named child of the current scope.
func (t *Table) EnterScope(name string) ScopeID {
	t.current = t.newScope(name, t.current)
	return t.current
}

// EnterExisting re-enters a child scope with the given name, creating
// it only when no such child exists. The second checker pass uses this
// to land in the scopes the declaration pass built.
func (t *Table) EnterExisting(name string) ScopeID {
	for _, child := range t.scope(t.current).Children {
		if t.scope(child).Name == name {
			t.current = child
			return child
		}
	}
	return t.EnterScope(name)
}

// ExitScope pops to the parent scope. Popping the global scope is a
// no-op.
func (t *Table) ExitScope() {
	parent := t.scope(t.current).Parent
	if parent.IsValid() {
		t.current = parent
	}
}

func (t *Table) add(sym Symbol) SymbolID {
	sym.Scope = t.scope(t.current).Name
	t.symbols = append(t.symbols, sym)
	id := SymbolID(len(t.symbols))
	t.scope(t.current).Symbols[sym.Name] = id
	return id
}

// DeclareVar registers a variable in the current scope.
func (t *Table) DeclareVar(name string, typ ast.TypeRef, mutable bool) SymbolID {
	return t.add(Symbol{Name: name, Kind: SymbolVariable, VarType: typ, Mutable: mutable})
}

// DeclareFunc registers a function signature in the current scope.
func (t *Table) DeclareFunc(name string, fn FuncInfo) SymbolID {
	f := fn
	return t.add(Symbol{Name: name, Kind: SymbolFunction, Fn: &f})
}

// DeclareType registers a struct or enum definition in the current scope.
func (t *Table) DeclareType(name string, def TypeDef) SymbolID {
	d := def
	return t.add(Symbol{Name: name, Kind: SymbolType, Def: &d})
}

// DeclareTrait registers a trait in the current scope.
func (t *Table) DeclareTrait(name string, tr TraitInfo) SymbolID {
	tc := tr
	return t.add(Symbol{Name: name, Kind: SymbolTrait, Trait: &tc})
}

// DeclareModule registers a module name in the current scope.
func (t *Table) DeclareModule(name string) SymbolID {
	return t.add(Symbol{Name: name, Kind: SymbolModule})
}

// Symbol resolves an ID to its symbol.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) > len(t.symbols) {
		return nil
	}
	return &t.symbols[id-1]
}

// Lookup walks from the current scope to the global scope and returns
// the first symbol with the given name.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for id := t.current; id.IsValid(); id = t.scope(id).Parent {
		if sym, ok := t.scope(id).Symbols[name]; ok {
			return t.Symbol(sym), true
		}
	}
	return nil, false
}

// LookupInScope finds a scope by name anywhere in the tree and checks
// only that scope for the symbol.
func (t *Table) LookupInScope(name, scopeName string) (*Symbol, bool) {
	id := t.findScope(t.Global(), scopeName)
	if !id.IsValid() {
		return nil, false
	}
	if sym, ok := t.scope(id).Symbols[name]; ok {
		return t.Symbol(sym), true
	}
	return nil, false
}

func (t *Table) findScope(from ScopeID, name string) ScopeID {
	if t.scope(from).Name == name {
		return from
	}
	for _, child := range t.scope(from).Children {
		if found := t.findScope(child, name); found.IsValid() {
			return found
		}
	}
	return NoScopeID
}
