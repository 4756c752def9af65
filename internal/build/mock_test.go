package build

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/mavlink/mavsdk-recipe/pkgs/buildsys"
)

// mockBuildSystem records the lifecycle calls it receives.
type mockBuildSystem struct {
	dirs     Dirs
	calls    []string
	defines  map[string]string
	env      map[string]string
	failStep string
}

var _ buildsys.BuildSystem = (*mockBuildSystem)(nil)

func (m *mockBuildSystem) Use(root string) { m.calls = append(m.calls, "use "+root) }
func (m *mockBuildSystem) OutputDir() string { return m.dirs.Install }

func (m *mockBuildSystem) Env(key, val string) {
	if m.env == nil {
		m.env = map[string]string{}
	}
	m.env[key] = val
}

func (m *mockBuildSystem) ApplyVariables(vars map[string]string) {
	if m.defines == nil {
		m.defines = map[string]string{}
	}
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		m.defines[k] = vars[k]
		m.calls = append(m.calls, fmt.Sprintf("define %s=%s", k, vars[k]))
	}
}

func (m *mockBuildSystem) step(name string) error {
	m.calls = append(m.calls, name)
	if m.failStep == name {
		return fmt.Errorf("%s failed", name)
	}
	return nil
}

func (m *mockBuildSystem) Configure(ctx context.Context, args ...string) error {
	return m.step("configure")
}

func (m *mockBuildSystem) Build(ctx context.Context, args ...string) error {
	return m.step("build")
}

func (m *mockBuildSystem) Install(ctx context.Context, args ...string) error {
	if err := m.step("install"); err != nil {
		return err
	}
	lib := filepath.Join(m.dirs.Install, "lib", "libmavsdk.a")
	if err := os.MkdirAll(filepath.Dir(lib), 0o755); err != nil {
		return err
	}
	return os.WriteFile(lib, nil, 0o644)
}

// mockFactory returns a NewBuildSystemFunc that hands out mocks and keeps
// track of them.
func mockFactory(created *[]*mockBuildSystem, failStep string) NewBuildSystemFunc {
	return func(platform formula.Platform, dirs Dirs) buildsys.BuildSystem {
		m := &mockBuildSystem{dirs: dirs, failStep: failStep}
		*created = append(*created, m)
		return m
	}
}
