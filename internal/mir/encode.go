package mir

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// moduleSchemaVersion guards the hand-off format. Bump on any change to
// the instruction or terminator encoding.
const moduleSchemaVersion = 1

type moduleEnvelope struct {
	Schema int     `msgpack:"schema"`
	Module *Module `msgpack:"module"`
}

// EncodeModule writes the module for hand-off to an execution backend.
func EncodeModule(w io.Writer, m *Module) error {
	if m == nil {
		return errors.New("mir: encode nil module")
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(moduleEnvelope{Schema: moduleSchemaVersion, Module: m})
}

// DecodeModule reads a module written by EncodeModule, rejecting
// mismatched schema versions.
func DecodeModule(r io.Reader) (*Module, error) {
	var env moduleEnvelope
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("mir: decode module: %w", err)
	}
	if env.Schema != moduleSchemaVersion {
		return nil, fmt.Errorf("mir: module schema %d, want %d", env.Schema, moduleSchemaVersion)
	}
	if env.Module == nil {
		return nil, errors.New("mir: decoded empty envelope")
	}
	m := env.Module
	// The intern index is rebuilt so a decoded module stays usable.
	m.globalIndex = make(map[string]GlobalID, len(m.Globals))
	for i, g := range m.Globals {
		s := string(g.Data)
		if len(s) > 0 && s[len(s)-1] == 0 {
			s = s[:len(s)-1]
		}
		m.globalIndex[s] = GlobalID(i)
	}
	return m, nil
}
