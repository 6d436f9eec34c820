package symbols

// Scope is one namespace level. Parent is a non-owning index into the
// table's scope arena, so the scope tree carries no ownership cycles.
type Scope struct {
	Name     string
	Parent   ScopeID
	Symbols  map[string]SymbolID
	Children []ScopeID
}
