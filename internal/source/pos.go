package source

import "fmt"

// Pos is a human-readable position in a source file as reported by the
// frontend. Line and Col are 1-based; a zero Pos means "unknown".
type Pos struct {
	Line uint32 `msgpack:"line"`
	Col  uint32 `msgpack:"col"`
	File string `msgpack:"file"`
}

func (p Pos) IsZero() bool {
	return p.Line == 0 && p.Col == 0 && p.File == ""
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Before reports whether p sorts before other: by file, then line, then
// column. Used to order diagnostics deterministically.
func (p Pos) Before(other Pos) bool {
	if p.File != other.File {
		return p.File < other.File
	}
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}
