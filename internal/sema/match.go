package sema

import (
	"fmt"
	"strings"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/symbols"
	"aegis/internal/types"
)

func (c *checker) checkMatch(n *ast.Node) {
	if len(n.Children) == 0 {
		return
	}
	subject := n.Children[0]
	branches := n.Children[1:]
	subjectType, subjectOK := c.checkNode(subject)

	for _, branch := range branches {
		if branch.Kind != ast.NodeMatchBranch || len(branch.Children) < 2 {
			continue
		}
		pattern := branch.Children[0]
		var guard, body *ast.Node
		if branch.Flags.Has(ast.FlagHasGuard) && len(branch.Children) == 3 {
			guard, body = branch.Children[1], branch.Children[2]
		} else {
			body = branch.Children[1]
		}

		c.table.EnterScope("match_branch")

		if pattern.Kind == ast.NodeIdent {
			// Irrefutable catch-all: binds the subject's type.
			bindType := ast.Ref(ast.TypeAny)
			if subjectOK {
				bindType = subjectType
			}
			c.table.DeclareVar(pattern.Name, bindType, false)
		} else if subjectOK {
			c.checkPattern(subjectType, pattern)
		}

		if guard != nil {
			guardType, ok := c.checkNode(guard)
			if ok && !(guardType.Name == ast.TypeBool && !guardType.IsGeneric()) {
				c.report(diag.TypeMismatch, guard.Pos,
					fmt.Sprintf("Match guard must be a boolean, got '%s'", guardType),
					"Use a comparison or logical expression that evaluates to a boolean")
			}
		}

		c.checkNode(body)
		c.table.ExitScope()
	}

	if subjectOK {
		c.checkExhaustiveness(subjectType, branches, n)
	}
}

// checkPattern validates a refutable pattern against the subject type:
// variant patterns must name a declared variant of an enum subject with
// matching field arity; literal patterns must be compatible with the
// subject.
func (c *checker) checkPattern(subjectType ast.TypeRef, pattern *ast.Node) {
	switch pattern.Kind {
	case ast.NodeVariantPattern:
		sym, ok := c.table.Lookup(subjectType.Name)
		if !ok || sym.Kind != symbols.SymbolType || sym.Def.Kind != symbols.TypeDefEnum {
			c.report(diag.TypeBadPattern, pattern.Pos,
				fmt.Sprintf("Cannot match non-enum type '%s' against variant pattern", subjectType),
				"Use a simple binding pattern or ensure the matched value is an enum")
			return
		}
		variant, found := sym.Def.Variant(pattern.Name)
		if !found {
			var names []string
			for _, v := range sym.Def.Variants {
				names = append(names, v.Name)
			}
			c.report(diag.TypeBadPattern, pattern.Pos,
				fmt.Sprintf("Enum '%s' has no variant named '%s'", subjectType, pattern.Name),
				fmt.Sprintf("Use one of the defined variants: %s", strings.Join(names, ", ")))
			return
		}
		if len(pattern.Children) != len(variant.Fields) {
			c.report(diag.TypeArityMismatch, pattern.Pos,
				fmt.Sprintf("Variant '%s' expects %d fields but got %d", pattern.Name, len(variant.Fields), len(pattern.Children)),
				"Provide the correct number of fields for this variant")
		}
		// Bind sub-pattern identifiers to the variant's field types.
		for i, sub := range pattern.Children {
			if sub.Kind == ast.NodeIdent && i < len(variant.Fields) {
				c.table.DeclareVar(sub.Name, variant.Fields[i].Type, false)
			}
		}

	case ast.NodeLit:
		patType := litType(pattern.Lit)
		if !types.Compatible(subjectType, patType) {
			c.report(diag.TypeBadPattern, pattern.Pos,
				fmt.Sprintf("Cannot match value of type '%s' against literal of type '%s'", subjectType, patType),
				fmt.Sprintf("Use a pattern of type '%s'", subjectType))
		}
	}
}

// checkExhaustiveness reports the set of enum variants not covered by
// any branch. A catch-all identifier pattern covers everything. The
// check only applies when the subject is a declared enum.
func (c *checker) checkExhaustiveness(subjectType ast.TypeRef, branches []*ast.Node, match *ast.Node) {
	sym, ok := c.table.Lookup(subjectType.Name)
	if !ok || sym.Kind != symbols.SymbolType || sym.Def.Kind != symbols.TypeDefEnum {
		return
	}

	covered := make(map[string]bool)
	for _, branch := range branches {
		if branch.Kind != ast.NodeMatchBranch || len(branch.Children) == 0 {
			continue
		}
		pattern := branch.Children[0]
		switch pattern.Kind {
		case ast.NodeIdent:
			return // catch-all covers every variant
		case ast.NodeVariantPattern:
			covered[pattern.Name] = true
		}
	}

	var missing []string
	for _, v := range sym.Def.Variants {
		if !covered[v.Name] {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		c.report(diag.TypeNonExhaustive, match.Pos,
			fmt.Sprintf("Match statement for enum '%s' is not exhaustive, missing variants: %s",
				subjectType, strings.Join(missing, ", ")),
			"Add patterns for all variants or include a catch-all pattern with '_'")
	}
}
