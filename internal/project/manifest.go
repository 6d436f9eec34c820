// Package project reads the aegis.toml manifest that names a project
// and selects its build target.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"aegis/internal/mir"
)

// ManifestName is the file the loader looks for.
const ManifestName = "aegis.toml"

// Manifest is the parsed project file.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Build   BuildSection   `toml:"build"`
}

type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type BuildSection struct {
	// Target selects the generation policy: "native" (default) or
	// "wasm32".
	Target string `toml:"target"`
}

// Default returns the manifest used when no file is present.
func Default(name string) Manifest {
	return Manifest{
		Package: PackageSection{Name: name, Version: "0.1.0"},
		Build:   BuildSection{Target: "native"},
	}
}

// Load reads and validates the manifest at path.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := m.validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Find walks up from dir looking for the manifest; a miss falls back to
// defaults named after dir.
func Find(dir string) (Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Manifest{}, err
	}
	for cur := abs; ; {
		path := filepath.Join(cur, ManifestName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return Default(filepath.Base(abs)), nil
}

func (m Manifest) validate() error {
	if m.Package.Name == "" {
		return errors.New("manifest: package.name is required")
	}
	if _, ok := mir.ByName(m.Build.Target); !ok {
		return fmt.Errorf("manifest: unknown build.target %q", m.Build.Target)
	}
	return nil
}

// Target resolves the manifest's generation policy.
func (m Manifest) Target() mir.Target {
	t, _ := mir.ByName(m.Build.Target)
	return t
}
