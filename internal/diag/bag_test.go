package diag

import (
	"testing"

	"aegis/internal/source"
)

func at(line, col uint32) source.Pos {
	return source.Pos{File: "x.ae", Line: line, Col: col}
}

func TestBagSortByPosition(t *testing.T) {
	bag := NewBag()
	bag.Add(New(SevError, TypeMismatch, at(5, 1), "later"))
	bag.Add(New(SevError, TypeMismatch, at(2, 3), "earlier"))
	bag.Add(New(SevError, TypeMismatch, at(2, 1), "earliest on line"))
	bag.Sort()

	items := bag.Items()
	want := []string{"earliest on line", "earlier", "later"}
	for i, msg := range want {
		if items[i].Message != msg {
			t.Errorf("item %d = %q, want %q", i, items[i].Message, msg)
		}
	}
}

func TestBagSortTieBreaks(t *testing.T) {
	bag := NewBag()
	bag.Add(New(SevWarning, TypeInfo, at(1, 1), "warning"))
	bag.Add(New(SevError, TypeMismatch, at(1, 1), "error"))
	bag.Sort()

	items := bag.Items()
	if items[0].Severity != SevError {
		t.Errorf("errors sort before warnings at the same position, got %v first", items[0].Severity)
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := NewBag()
	if bag.HasErrors() {
		t.Error("empty bag reports errors")
	}
	bag.Add(New(SevWarning, TypeInfo, at(1, 1), "just a warning"))
	if bag.HasErrors() {
		t.Error("warnings alone are not errors")
	}
	bag.Add(NewError(TypeUndefinedSymbol, at(2, 2), "boom"))
	if !bag.HasErrors() {
		t.Error("error not detected")
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag()
	a.Add(NewError(TypeMismatch, at(3, 1), "from a"))
	b := NewBag()
	b.Add(NewError(TypeMismatch, at(1, 1), "from b"))

	a.Merge(b)
	a.Sort()
	if a.Len() != 2 {
		t.Fatalf("merged len = %d, want 2", a.Len())
	}
	if a.Items()[0].Message != "from b" {
		t.Errorf("merged bag not sorted, first = %q", a.Items()[0].Message)
	}
}

func TestCodeString(t *testing.T) {
	if got := TypeMismatch.String(); got != "AEG3003" {
		t.Errorf("TypeMismatch = %q, want AEG3003", got)
	}
}
