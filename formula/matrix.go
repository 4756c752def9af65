package formula

import (
	"cmp"
	"maps"
	"slices"
)

// Matrix describes a space of configurations. Require holds settings,
// Options holds package options; each key maps to its possible values.
type Matrix struct {
	Require map[string][]string
	Options map[string][]string
}

// MatrixOf returns the single-point matrix of a configuration.
func MatrixOf(platform Platform, opts Options) Matrix {
	m := Matrix{
		Require: map[string][]string{},
		Options: map[string][]string{},
	}
	for k, v := range platform.Settings() {
		m.Require[k] = []string{v}
	}
	for k, v := range opts.Values() {
		m.Options[k] = []string{v}
	}
	return m
}

// OptionsMatrix returns the full option space of the package on platform,
// before normalization.
func OptionsMatrix(platform Platform) Matrix {
	m := Matrix{
		Require: map[string][]string{},
		Options: map[string][]string{
			OptionShared: {"False", "True"},
			OptionFPIC:   {"False", "True"},
		},
	}
	for k, v := range platform.Settings() {
		m.Require[k] = []string{v}
	}
	return m
}

// OptionSpace returns the distinct normalized option sets available on
// platform, ordered by their matrix key.
func OptionSpace(platform Platform) []Options {
	seen := map[string]bool{}
	var out []Options
	for _, shared := range []bool{false, true} {
		for _, fpic := range []bool{false, true} {
			opts := NormalizeOptions(Options{Shared: shared, FPIC: Some(fpic)}, platform)
			key := MatrixOf(platform, opts).String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, opts)
		}
	}
	slices.SortFunc(out, func(a, b Options) int {
		return cmp.Compare(MatrixOf(platform, a).String(), MatrixOf(platform, b).String())
	})
	return out
}

// String returns the key of the first combination. For a single-point
// matrix it identifies the configuration.
func (m Matrix) String() string {
	combos := m.Combinations()
	if len(combos) == 0 {
		return ""
	}
	return combos[0]
}

// Combinations returns every configuration key of the matrix. Inside each
// part values are joined with "-" in sorted key order; settings and options
// are separated by "|". The first value of each key varies slowest.
func (m Matrix) Combinations() []string {
	settings, options := product(m.Require), product(m.Options)
	switch {
	case settings == nil:
		return options
	case options == nil:
		return settings
	}
	keys := make([]string, 0, len(settings)*len(options))
	for _, s := range settings {
		for _, o := range options {
			keys = append(keys, s+"|"+o)
		}
	}
	return keys
}

// CombinationCount returns len(m.Combinations()) without building the keys.
func (m Matrix) CombinationCount() int {
	settings, options := productSize(m.Require), productSize(m.Options)
	switch {
	case settings == 0:
		return options
	case options == 0:
		return settings
	}
	return settings * options
}

// product joins one value of every key, for all value choices. It returns
// nil for an empty space.
func product(space map[string][]string) []string {
	if len(space) == 0 {
		return nil
	}
	keys := []string{""}
	for i, name := range slices.Sorted(maps.Keys(space)) {
		next := make([]string, 0, len(keys)*len(space[name]))
		for _, prefix := range keys {
			for _, v := range space[name] {
				if i > 0 {
					v = prefix + "-" + v
				}
				next = append(next, v)
			}
		}
		keys = next
	}
	return keys
}

func productSize(space map[string][]string) int {
	if len(space) == 0 {
		return 0
	}
	n := 1
	for _, values := range space {
		n *= len(values)
	}
	return n
}
