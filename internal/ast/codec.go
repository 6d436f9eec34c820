package ast

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Trees cross the frontend boundary as msgpack. The envelope carries a
// schema version so a stale frontend is rejected instead of silently
// mis-decoded.

const treeSchemaVersion uint16 = 1

type treeEnvelope struct {
	Schema uint16 `msgpack:"schema"`
	Root   *Node  `msgpack:"root"`
}

// EncodeTree writes a syntax tree to w.
func EncodeTree(w io.Writer, root *Node) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(treeEnvelope{Schema: treeSchemaVersion, Root: root})
}

// DecodeTree reads a syntax tree produced by EncodeTree.
func DecodeTree(r io.Reader) (*Node, error) {
	var env treeEnvelope
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode syntax tree: %w", err)
	}
	if env.Schema != treeSchemaVersion {
		return nil, fmt.Errorf("syntax tree schema %d, want %d", env.Schema, treeSchemaVersion)
	}
	if env.Root == nil {
		return nil, fmt.Errorf("syntax tree has no root node")
	}
	return env.Root, nil
}
