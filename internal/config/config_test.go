package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/qiniu/x/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, formula.AllowUnknownCompiler, cfg.UnknownCompilerPolicy())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[build]
source_dir = "mavsdk"
build_dir = "out"
generator = "Ninja"
jobs = 8
deps = ["/opt/jsoncpp", "/opt/tinyxml2"]
toolchain = "cross/aarch64.cmake"

[build.env]
CC = "gcc-11"

[validate]
reject_unknown_compilers = true

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mavsdk", cfg.Build.SourceDir)
	assert.Equal(t, "out", cfg.Build.BuildDir)
	assert.Equal(t, "package", cfg.Build.PackageDir, "unset keys keep their default")
	assert.Equal(t, "Ninja", cfg.Build.Generator)
	assert.Equal(t, 8, cfg.Build.Jobs)
	assert.Equal(t, []string{"/opt/jsoncpp", "/opt/tinyxml2"}, cfg.Build.Deps)
	assert.Equal(t, "cross/aarch64.cmake", cfg.Build.Toolchain)
	assert.Equal(t, map[string]string{"CC": "gcc-11"}, cfg.Build.Env)
	assert.Equal(t, formula.RejectUnknownCompiler, cfg.UnknownCompilerPolicy())

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.Ldebug, level)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[build]
build_dir = "out"
`)
	t.Setenv("RECIPE_BUILD_DIR", "env-out")
	t.Setenv("RECIPE_LOG_LEVEL", "warn")
	t.Setenv("RECIPE_REJECT_UNKNOWN_COMPILERS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-out", cfg.Build.BuildDir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Validate.RejectUnknownCompilers)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"bad toml":  "[build\n",
		"bad level": "[log]\nlevel = \"loud\"\n",
		"bad jobs":  "[build]\njobs = -1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadBadEnvOverride(t *testing.T) {
	t.Setenv("RECIPE_REJECT_UNKNOWN_COMPILERS", "sometimes")
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "RECIPE_REJECT_UNKNOWN_COMPILERS")
}
