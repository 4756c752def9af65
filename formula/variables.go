package formula

import (
	"maps"
	"slices"
)

// VarBuildShared toggles a shared or static library build.
const VarBuildShared = "MAVSDK_BUILD_SHARED"

// BuildVariables maps CMake variable names to their values.
type BuildVariables map[string]string

// Keys returns the variable names in sorted order.
func (v BuildVariables) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// GenerateBuildVariables derives the CMake variables for opts.
func GenerateBuildVariables(opts Options) BuildVariables {
	return BuildVariables{
		VarBuildShared: onOff(opts.Shared),
	}
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
