package ast

import (
	"bytes"
	"testing"

	"aegis/internal/source"
)

func TestTreeCodecRoundTrip(t *testing.T) {
	pos := source.Pos{File: "demo.ae", Line: 3, Col: 7}
	root := Module("demo", source.Pos{File: "demo.ae", Line: 1, Col: 1},
		Function("square",
			[]*Node{Param("n", Ref(TypeInt), pos)},
			Ref(TypeInt),
			Block(pos,
				Return(Binary(OpMul, Ident("n", pos), Ident("n", pos), pos), pos),
			),
			pos,
		),
	)

	var buf bytes.Buffer
	if err := EncodeTree(&buf, root); err != nil {
		t.Fatalf("EncodeTree: %v", err)
	}
	got, err := DecodeTree(&buf)
	if err != nil {
		t.Fatalf("DecodeTree: %v", err)
	}

	if got.Kind != NodeModule || got.Name != "demo" {
		t.Fatalf("root = %s %q, want module demo", got.Kind, got.Name)
	}
	fn := got.Children[0]
	if fn.Kind != NodeFunction || fn.Name != "square" {
		t.Fatalf("child = %s %q, want function square", fn.Kind, fn.Name)
	}
	if fn.Type == nil || fn.Type.Name != TypeInt {
		t.Errorf("function result = %v, want int", fn.Type)
	}
	param := fn.Children[0]
	if param.Kind != NodeParam || param.Name != "n" || param.Pos != (source.Pos{File: "demo.ae", Line: 3, Col: 7}) {
		t.Errorf("param = %+v, want n at demo.ae:3:7", param)
	}
	ret := fn.Children[1].Children[0]
	if ret.Kind != NodeReturn || ret.Children[0].Op != OpMul {
		t.Errorf("body = %+v, want return of a multiplication", ret)
	}
}

func TestDecodeTreeRejectsGarbage(t *testing.T) {
	if _, err := DecodeTree(bytes.NewReader([]byte{0xff, 0x00, 0x13})); err == nil {
		t.Fatal("garbage input should fail to decode")
	}
}
