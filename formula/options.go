package formula

import (
	"strconv"
	"strings"
)

// OptBool is an option value that may not apply to a configuration at all.
// The zero value is None, which is distinct from Some(false).
type OptBool struct {
	set   bool
	value bool
}

// Some returns an OptBool holding v.
func Some(v bool) OptBool {
	return OptBool{set: true, value: v}
}

// None returns an OptBool with no value.
func None() OptBool {
	return OptBool{}
}

// Get returns the held value and whether the option is present.
func (o OptBool) Get() (v bool, ok bool) {
	return o.value, o.set
}

// IsSome reports whether the option is present.
func (o OptBool) IsSome() bool {
	return o.set
}

// String returns "True", "False" or "None".
func (o OptBool) String() string {
	if !o.set {
		return "None"
	}
	return boolString(o.value)
}

// Options is the set of user-selected build options.
type Options struct {
	Shared bool
	FPIC   OptBool
}

// DefaultOptions returns shared=False, fPIC=True.
func DefaultOptions() Options {
	return Options{Shared: false, FPIC: Some(true)}
}

// Values returns the options as name/value strings. Absent options are omitted.
func (o Options) Values() map[string]string {
	vals := map[string]string{
		OptionShared: boolString(o.Shared),
	}
	if v, ok := o.FPIC.Get(); ok {
		vals[OptionFPIC] = boolString(v)
	}
	return vals
}

// String formats the options as "shared=False fPIC=True".
func (o Options) String() string {
	parts := []string{OptionShared + "=" + boolString(o.Shared)}
	if v, ok := o.FPIC.Get(); ok {
		parts = append(parts, OptionFPIC+"="+boolString(v))
	}
	return strings.Join(parts, " ")
}

const (
	OptionShared = "shared"
	OptionFPIC   = "fPIC"
)

// NormalizeOptions strips options that are meaningless for platform:
// fPIC is removed on Windows, and whenever a shared library is requested.
func NormalizeOptions(opts Options, platform Platform) Options {
	out := opts
	if !platform.HasPIC() {
		out.FPIC = None()
	}
	if out.Shared {
		out.FPIC = None()
	}
	return out
}

// ParseOptBool parses a boolean option value. "None" and "" yield None.
func ParseOptBool(s string) (OptBool, error) {
	switch s {
	case "", "None":
		return None(), nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return None(), err
	}
	return Some(v), nil
}

func boolString(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
