package formula

import (
	"fmt"
	"strings"
)

const (
	OSWindows = "Windows"
	OSLinux   = "Linux"
	OSMacos   = "Macos"
)

// Platform describes the target build environment as supplied by the host.
type Platform struct {
	OS              string `yaml:"os" validate:"required"`
	Arch            string `yaml:"arch" validate:"required"`
	Compiler        string `yaml:"compiler" validate:"required"`
	CompilerVersion string `yaml:"compiler.version" validate:"required"`
	// CompilerCppStd is the declared language standard, empty when not declared.
	CompilerCppStd string `yaml:"compiler.cppstd"`
	BuildType      string `yaml:"build_type" validate:"required,oneof=Debug Release RelWithDebInfo MinSizeRel"`
}

// HasPIC reports whether position-independent code can be toggled on the platform.
func (p Platform) HasPIC() bool {
	return p.OS != OSWindows
}

// Settings returns the platform as Conan-style setting names.
// compiler.cppstd is omitted when not declared.
func (p Platform) Settings() map[string]string {
	s := map[string]string{
		"os":               p.OS,
		"arch":             p.Arch,
		"compiler":         p.Compiler,
		"compiler.version": p.CompilerVersion,
		"build_type":       p.BuildType,
	}
	if p.CompilerCppStd != "" {
		s["compiler.cppstd"] = p.CompilerCppStd
	}
	return s
}

// Set assigns a setting by its Conan-style name.
func (p *Platform) Set(key, value string) error {
	switch key {
	case "os":
		p.OS = value
	case "arch":
		p.Arch = value
	case "compiler":
		p.Compiler = value
	case "compiler.version":
		p.CompilerVersion = value
	case "compiler.cppstd":
		p.CompilerCppStd = value
	case "build_type":
		p.BuildType = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func (p Platform) String() string {
	parts := []string{p.OS, p.Arch, p.Compiler + "-" + p.CompilerVersion}
	if p.CompilerCppStd != "" {
		parts = append(parts, "cppstd"+p.CompilerCppStd)
	}
	if p.BuildType != "" {
		parts = append(parts, p.BuildType)
	}
	return strings.Join(parts, "/")
}
