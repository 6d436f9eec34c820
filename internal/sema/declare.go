package sema

import (
	"aegis/internal/ast"
	"aegis/internal/symbols"
)

// declare is the first pass: it registers every struct, enum, function
// and trait into the symbol table, entering a scope per module, struct
// and enum so names are qualifiable. Bodies are never inspected here,
// which is what makes forward references work.
func (c *checker) declare(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.NodeModule:
		c.table.DeclareModule(n.Name)
		c.table.EnterScope(n.Name)
		for _, child := range n.Children {
			c.declare(child)
		}
		c.table.ExitScope()

	case ast.NodeStruct:
		def := symbols.TypeDef{Kind: symbols.TypeDefStruct}
		var methods []*ast.Node
		for _, child := range n.Children {
			switch child.Kind {
			case ast.NodeField:
				def.Fields = append(def.Fields, fieldInfo(child))
			case ast.NodeFunction:
				methods = append(methods, child)
			}
		}
		c.table.DeclareType(n.Name, def)
		c.declareMethods(n.Name, methods)

	case ast.NodeEnum:
		def := symbols.TypeDef{Kind: symbols.TypeDefEnum}
		var methods []*ast.Node
		for _, child := range n.Children {
			switch child.Kind {
			case ast.NodeVariant:
				variant := symbols.VariantInfo{Name: child.Name}
				for _, field := range child.Children {
					if field.Kind == ast.NodeField {
						variant.Fields = append(variant.Fields, fieldInfo(field))
					}
				}
				def.Variants = append(def.Variants, variant)
			case ast.NodeFunction:
				methods = append(methods, child)
			}
		}
		c.table.DeclareType(n.Name, def)
		c.declareMethods(n.Name, methods)

	case ast.NodeFunction:
		c.table.DeclareFunc(n.Name, funcInfo(n, false))

	default:
		// Only declarations participate in the first pass.
	}
}

// declareMethods registers a type's methods inside a scope named after
// the type, so member calls resolve them with a scoped lookup.
func (c *checker) declareMethods(typeName string, methods []*ast.Node) {
	if len(methods) == 0 {
		return
	}
	c.table.EnterScope(typeName)
	for _, m := range methods {
		c.table.DeclareFunc(m.Name, funcInfo(m, true))
	}
	c.table.ExitScope()
}

func fieldInfo(n *ast.Node) symbols.FieldInfo {
	info := symbols.FieldInfo{Name: n.Name, Type: ast.Ref(ast.TypeAny)}
	if n.Type != nil {
		info.Type = *n.Type
	}
	return info
}

func funcInfo(n *ast.Node, method bool) symbols.FuncInfo {
	info := symbols.FuncInfo{
		Result: ast.Ref(ast.TypeVoid),
		Async:  n.Flags.Has(ast.FlagAsync),
		Method: method,
	}
	if n.Type != nil {
		info.Result = *n.Type
	}
	for _, child := range n.Children {
		if child.Kind != ast.NodeParam {
			continue
		}
		param := symbols.ParamInfo{Name: child.Name, Type: ast.Ref(ast.TypeAny)}
		if child.Type != nil {
			param.Type = *child.Type
		}
		info.Params = append(info.Params, param)
	}
	return info
}
