// Package types implements the type relations of the Aegis language:
// assignment compatibility, operator result typing, and the built-in
// wrapper conventions (Array<T>, Range, Task<T>, Future<T>).
//
// Everything here is a pure function over ast.TypeRef; diagnostics are
// the caller's job.
package types

import "aegis/internal/ast"

// Compatible reports whether a value of type source may be assigned to
// a slot of type target.
//
//	equal types            -> yes
//	any on either side     -> yes
//	int -> float           -> yes (widening)
//	float -> int           -> no
//	Base<A...> -> Base<B...> when bases match, arity matches, and every
//	argument pair is recursively compatible
func Compatible(target, source ast.TypeRef) bool {
	if target.Equal(source) {
		return true
	}
	if target.Name == ast.TypeAny && !target.IsGeneric() {
		return true
	}
	if source.Name == ast.TypeAny && !source.IsGeneric() {
		return true
	}
	if target.Name == ast.TypeFloat && source.Name == ast.TypeInt &&
		!target.IsGeneric() && !source.IsGeneric() {
		return true
	}
	if target.IsGeneric() && source.IsGeneric() {
		if target.Name != source.Name || len(target.Args) != len(source.Args) {
			return false
		}
		for i := range target.Args {
			if !Compatible(target.Args[i], source.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// ElementType resolves the per-iteration type of a `for` loop subject:
// Array<T> yields T, Range yields int, string yields char. Anything
// else is not iterable.
func ElementType(iterable ast.TypeRef) (ast.TypeRef, bool) {
	if iterable.Name == ast.TypeArray {
		if elem, ok := iterable.Unwrap(); ok {
			return elem, true
		}
		return ast.TypeRef{}, false
	}
	if !iterable.IsGeneric() {
		switch iterable.Name {
		case ast.TypeRange:
			return ast.Ref(ast.TypeInt), true
		case ast.TypeString:
			return ast.Ref(ast.TypeChar), true
		}
	}
	return ast.TypeRef{}, false
}

// AwaitResult unwraps Task<T> or Future<T>; ok is false for any other
// type, which means the expression is not awaitable.
func AwaitResult(awaited ast.TypeRef) (ast.TypeRef, bool) {
	if awaited.Name == ast.TypeTask || awaited.Name == ast.TypeFuture {
		return awaited.Unwrap()
	}
	return ast.TypeRef{}, false
}

// TaskOf wraps a body result type into the Task<T> a spawn expression
// produces.
func TaskOf(result ast.TypeRef) ast.TypeRef {
	return ast.Ref(ast.TypeTask, result)
}
