package formula

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mavlink/mavsdk-recipe/pkgs/mod/module"
	"golang.org/x/mod/semver"
)

// Requirement pins an upstream package to a minimum version with an open
// upper bound.
type Requirement struct {
	Name string
	Min  string
}

// String returns the requirement as a version-range reference,
// e.g. "jsoncpp/[>=1.9.5]".
func (r Requirement) String() string {
	return r.Name + "/[>=" + r.Min + "]"
}

// Version returns the lower bound as a module.Version.
func (r Requirement) Version() module.Version {
	return module.Version{Path: r.Name, Version: r.Min}
}

// Allows reports whether ver satisfies the lower bound.
// Versions that are not semantic versions never satisfy it.
func (r Requirement) Allows(ver string) bool {
	v, lower := canonical(ver), canonical(r.Min)
	if v == "" || lower == "" {
		return false
	}
	return semver.Compare(v, lower) >= 0
}

// ParseRequirement parses "name/[>=min]" or "name>=min".
func ParseRequirement(s string) (Requirement, error) {
	name, rng, ok := strings.Cut(s, "/")
	if ok {
		if !strings.HasPrefix(rng, "[") || !strings.HasSuffix(rng, "]") {
			return Requirement{}, fmt.Errorf("invalid requirement %q: range must be enclosed in []", s)
		}
		rng = rng[1 : len(rng)-1]
	} else {
		i := strings.Index(s, ">=")
		if i < 0 {
			return Requirement{}, fmt.Errorf("invalid requirement %q: missing lower bound", s)
		}
		name, rng = s[:i], s[i:]
	}
	lower, ok := strings.CutPrefix(strings.TrimSpace(rng), ">=")
	if !ok {
		return Requirement{}, fmt.Errorf("invalid requirement %q: only >= ranges are supported", s)
	}
	name, lower = strings.TrimSpace(name), strings.TrimSpace(lower)
	if name == "" {
		return Requirement{}, fmt.Errorf("invalid requirement %q: empty name", s)
	}
	if canonical(lower) == "" {
		return Requirement{}, fmt.Errorf("invalid requirement %q: bad version %q", s, lower)
	}
	return Requirement{Name: name, Min: lower}, nil
}

var requirements = []Requirement{
	{Name: "jsoncpp", Min: "1.9.5"},
	{Name: "tinyxml2", Min: "9.0.0"},
	{Name: "openssl", Min: "3.1.3"},
	{Name: "protobuf", Min: "3.21.12"},
	{Name: "grpc", Min: "1.54.3"},
}

// re2 may only be a transitive dependency of grpc.
var disabledRequirements = []Requirement{
	{Name: "re2", Min: "20230301"},
}

var toolRequirements = []Requirement{
	{Name: "cmake", Min: "3.19"},
}

// RequiredHostVersion is the minimum version of the host package manager.
const RequiredHostVersion = ">=2.0.0"

// PlanRequirements returns the library requirements in declaration order.
func PlanRequirements() []Requirement {
	return slices.Clone(requirements)
}

// DisabledRequirements returns candidate requirements that are declared but
// not active. They are never part of PlanRequirements.
func DisabledRequirements() []Requirement {
	return slices.Clone(disabledRequirements)
}

// ToolRequirements returns the tools needed to build the package.
func ToolRequirements() []Requirement {
	return slices.Clone(toolRequirements)
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
