// Package module defines the module.Version type along with support code.
package module

import (
	"path/filepath"
	"strings"
)

// A Version identifies a package at a specific version.
type Version struct {
	Path    string // package name, e.g. "jsoncpp"
	Version string // version string, e.g. "1.9.5"
}

func (v Version) String() string {
	if v.Version == "" {
		return v.Path
	}
	return v.Path + "@" + v.Version
}

// ParseArg parses an argument in the form "name@version" or "name".
func ParseArg(arg string) Version {
	if i := strings.LastIndexByte(arg, '@'); i >= 0 {
		return Version{Path: arg[:i], Version: arg[i+1:]}
	}
	return Version{Path: arg}
}

// EscapePath returns the escaped form of the given module path as a valid
// file system path. It fails if the module path is invalid.
func EscapePath(path string) (escaped string, err error) {
	return filepath.Localize(path)
}
