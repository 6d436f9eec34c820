package mir

import "aegis/internal/ast"

// Intrinsic is an externally provided function the generated module may
// call. The execution backend resolves these at link or instantiation
// time.
type Intrinsic struct {
	Name     string
	Params   []Type
	Result   Type
	Variadic bool
}

// Target is the policy that parameterizes one generator: the mapping
// from source types to IR types (chiefly the integer width) and the
// intrinsic declaration set. There is exactly one generator; alternate
// targets are alternate Target values, never subclassed generators.
type Target struct {
	Name     string
	IntWidth uint8 // 32 or 64
	// PrintIntrinsic is the intrinsic a call to the built-in print
	// resolves to.
	PrintIntrinsic string
	Intrinsics     []Intrinsic
}

// Native targets the host: 64-bit integers and a C-style formatted
// output primitive.
func Native() Target {
	return Target{
		Name:           "native",
		IntWidth:       64,
		PrintIntrinsic: "printf",
		Intrinsics: []Intrinsic{
			{Name: "printf", Params: []Type{Ptr()}, Result: I32(), Variadic: true},
			{Name: "aegis_arr_len", Params: []Type{Ptr()}, Result: I64()},
			{Name: "aegis_arr_get", Params: []Type{Ptr(), I64()}, Result: Ptr()},
			{Name: "aegis_str_len", Params: []Type{Ptr()}, Result: I64()},
			{Name: "aegis_str_get", Params: []Type{Ptr(), I64()}, Result: I32()},
		},
	}
}

// Wasm32 targets a portable/WebAssembly-style embedding: 32-bit
// integers and an imported console primitive instead of printf.
func Wasm32() Target {
	return Target{
		Name:           "wasm32",
		IntWidth:       32,
		PrintIntrinsic: "console_log",
		Intrinsics: []Intrinsic{
			{Name: "console_log", Params: []Type{Ptr()}, Result: Void()},
			{Name: "aegis_arr_len", Params: []Type{Ptr()}, Result: I32()},
			{Name: "aegis_arr_get", Params: []Type{Ptr(), I32()}, Result: Ptr()},
			{Name: "aegis_str_len", Params: []Type{Ptr()}, Result: I32()},
			{Name: "aegis_str_get", Params: []Type{Ptr(), I32()}, Result: I32()},
		},
	}
}

// ByName resolves a configured target name.
func ByName(name string) (Target, bool) {
	switch name {
	case "", "native":
		return Native(), true
	case "wasm32", "wasm":
		return Wasm32(), true
	}
	return Target{}, false
}

// Int returns the IR integer type for the source int under this policy.
func (t Target) Int() Type {
	if t.IntWidth == 32 {
		return I32()
	}
	return I64()
}

// MapType maps a source type reference to its IR type. User-defined
// names map to registered aggregates; wrapper types (Array, Task,
// Future) and strings are pointers at this level.
func (t Target) MapType(src ast.TypeRef) Type {
	if src.IsGeneric() {
		return Ptr()
	}
	switch src.Name {
	case ast.TypeInt:
		return t.Int()
	case ast.TypeFloat:
		return F64()
	case ast.TypeBool:
		return I1()
	case ast.TypeChar:
		return I32()
	case ast.TypeString:
		return Ptr()
	case ast.TypeVoid:
		return Void()
	case ast.TypeAny:
		return Ptr()
	case ast.TypeRange:
		return Aggregate(ast.TypeRange)
	}
	return Aggregate(src.Name)
}
