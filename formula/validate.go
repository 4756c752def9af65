package formula

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/mavlink/mavsdk-recipe/pkgs/version"
)

// MinCppStd is the language standard the package is written against.
const MinCppStd = "17"

// compilersMinimumVersion maps a compiler to the first version supporting
// MinCppStd.
var compilersMinimumVersion = map[string]string{
	"Visual Studio": "15.9",
	"msvc":          "16",
	"gcc":           "7",
	"clang":         "8",
	"apple-clang":   "10",
}

// Policy returns a copy of the compiler minimum version table.
func Policy() map[string]string {
	return maps.Clone(compilersMinimumVersion)
}

// UnknownCompilerPolicy decides how Validate treats a compiler without an
// entry in the minimum version table.
type UnknownCompilerPolicy int

const (
	// AllowUnknownCompiler treats a missing entry as unconstrained.
	AllowUnknownCompiler UnknownCompilerPolicy = iota
	// RejectUnknownCompiler fails with *UnknownCompilerError.
	RejectUnknownCompiler
)

func (p UnknownCompilerPolicy) String() string {
	if p == RejectUnknownCompiler {
		return "reject"
	}
	return "allow"
}

// ValidateDefault validates platform against MinCppStd, allowing unknown
// compilers.
func ValidateDefault(platform Platform) error {
	return Validate(platform, MinCppStd, AllowUnknownCompiler)
}

// KnownCompiler reports whether the minimum version policy has an entry
// for compiler. Validate passes unknown compilers unchecked under
// AllowUnknownCompiler; callers may want to tell the user.
func KnownCompiler(compiler string) bool {
	_, ok := compilersMinimumVersion[compiler]
	return ok
}

// Validate checks that platform can build the package with the cppstd
// language standard. The declared compiler.cppstd, if any, is checked first,
// then the compiler version against the minimum version policy. It has no
// side effects.
func Validate(platform Platform, cppstd string, policy UnknownCompilerPolicy) error {
	ref := PackageMetadata().Ref()

	if declared := platform.CompilerCppStd; declared != "" {
		if err := checkMinCppStd(ref, declared, cppstd); err != nil {
			return err
		}
	}

	minimum, ok := compilersMinimumVersion[platform.Compiler]
	if !ok {
		if policy == RejectUnknownCompiler {
			return &UnknownCompilerError{Ref: ref, Compiler: platform.Compiler, CppStd: cppstd}
		}
		return nil
	}
	if !version.Valid(platform.CompilerVersion) {
		return &InvalidVersionError{Ref: ref, Compiler: platform.Compiler, Version: platform.CompilerVersion}
	}
	if version.Compare(minimum, platform.CompilerVersion) > 0 {
		return &CompilerTooOldError{
			Ref:      ref,
			Compiler: platform.Compiler,
			Version:  platform.CompilerVersion,
			Minimum:  minimum,
			CppStd:   cppstd,
		}
	}
	return nil
}

func checkMinCppStd(ref, current, required string) error {
	cur, err := cppStdYear(current)
	if err != nil {
		return &StandardTooLowError{Ref: ref, Current: current, Required: required, Err: err}
	}
	req, err := cppStdYear(required)
	if err != nil {
		return fmt.Errorf("%w: required standard %q", err, required)
	}
	if cur < req {
		return &StandardTooLowError{Ref: ref, Current: current, Required: required}
	}
	return nil
}

// cppStdYear maps a cppstd value such as "17" or "gnu14" to its year so
// that 98 sorts before 11.
func cppStdYear(std string) (int, error) {
	s := strings.TrimPrefix(std, "gnu")
	if len(s) != 2 {
		return 0, ErrInvalidCppStd
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrInvalidCppStd
	}
	if n >= 98 {
		return 1900 + n, nil
	}
	return 2000 + n, nil
}
