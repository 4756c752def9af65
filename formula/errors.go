package formula

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every validation error.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrInvalidCppStd reports a compiler.cppstd value that is not a C++ standard.
var ErrInvalidCppStd = errors.New("invalid cppstd")

// StandardTooLowError is returned when the declared compiler.cppstd is lower
// than the standard the package requires.
type StandardTooLowError struct {
	Ref      string
	Current  string
	Required string
	Err      error // set when Current cannot be parsed
}

func (e *StandardTooLowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v %q, C++%s is required", e.Ref, e.Err, e.Current, e.Required)
	}
	return fmt.Sprintf("%s: current cppstd (%s) is lower than the required C++ standard (%s)", e.Ref, e.Current, e.Required)
}

func (e *StandardTooLowError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfiguration, e.Err}
	}
	return []error{ErrInvalidConfiguration}
}

// CompilerTooOldError is returned when the compiler version is below the
// policy minimum.
type CompilerTooOldError struct {
	Ref      string
	Compiler string
	Version  string
	Minimum  string
	CppStd   string
}

func (e *CompilerTooOldError) Error() string {
	return fmt.Sprintf("%s requires C++%s, which your compiler does not support (%s %s < %s)", e.Ref, e.CppStd, e.Compiler, e.Version, e.Minimum)
}

func (e *CompilerTooOldError) Unwrap() error {
	return ErrInvalidConfiguration
}

// UnknownCompilerError is returned under RejectUnknownCompiler when the
// compiler has no entry in the minimum version policy.
type UnknownCompilerError struct {
	Ref      string
	Compiler string
	CppStd   string
}

func (e *UnknownCompilerError) Error() string {
	return fmt.Sprintf("%s requires C++%s, but compiler %q has no minimum version policy", e.Ref, e.CppStd, e.Compiler)
}

func (e *UnknownCompilerError) Unwrap() error {
	return ErrInvalidConfiguration
}

// InvalidVersionError is returned when the compiler version of a platform
// is not a version string and cannot be checked against the policy.
type InvalidVersionError struct {
	Ref      string
	Compiler string
	Version  string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("%s: invalid %s version %q", e.Ref, e.Compiler, e.Version)
}

func (e *InvalidVersionError) Unwrap() error {
	return ErrInvalidConfiguration
}
