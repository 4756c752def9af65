// Package versions reads and writes the versions.json lock file, which
// records the ordered requirements a package was planned with.
package versions

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/mavlink/mavsdk-recipe/pkgs/mod/module"
)

// Dependency is one locked requirement: a package and its minimum version.
type Dependency struct {
	Path    string `json:"path"`
	Version string `json:"min"`
}

// Versions is the content of a versions.json file.
type Versions struct {
	Path         string       `json:"path"`
	Version      string       `json:"version"`
	Requires     []Dependency `json:"requires"`
	ToolRequires []Dependency `json:"tool_requires,omitempty"`
}

// New returns the lock content of main with the given requirements,
// keeping their order.
func New(main module.Version, requires, toolRequires []module.Version) *Versions {
	conv := func(vers []module.Version) []Dependency {
		deps := make([]Dependency, 0, len(vers))
		for _, v := range vers {
			deps = append(deps, Dependency{Path: v.Path, Version: v.Version})
		}
		return deps
	}
	v := &Versions{
		Path:     main.Path,
		Version:  main.Version,
		Requires: conv(requires),
	}
	if len(toolRequires) > 0 {
		v.ToolRequires = conv(toolRequires)
	}
	return v
}

// Parse reads and parses a version file from either provided data or a file path.
// If data is non-nil, it is used directly and the file parameter is ignored.
// Otherwise, the file is read from the provided path.
func Parse(file string, data []byte) (*Versions, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewBuffer(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		reader = f
	}

	var v Versions

	if err := json.NewDecoder(reader).Decode(&v); err != nil {
		return nil, err
	}

	return &v, nil
}

// Marshal encodes v with tab indentation and a trailing newline, so equal
// locks are byte-identical.
func (v *Versions) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Write stores v at file.
func (v *Versions) Write(file string) error {
	data, err := v.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}

// Equal reports whether v and other lock the same package and requirements
// in the same order.
func (v *Versions) Equal(other *Versions) bool {
	return v.Path == other.Path &&
		v.Version == other.Version &&
		slices.Equal(v.Requires, other.Requires) &&
		slices.Equal(v.ToolRequires, other.ToolRequires)
}
