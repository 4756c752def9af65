// Package config loads the recipe tool configuration from recipe.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/pelletier/go-toml/v2"
	"github.com/qiniu/x/log"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "recipe.toml"

// Config represents the tool configuration.
type Config struct {
	Build    BuildConfig    `toml:"build"`
	Validate ValidateConfig `toml:"validate"`
	Log      LogConfig      `toml:"log"`
}

type BuildConfig struct {
	SourceDir  string   `toml:"source_dir"`  // recipe root, holds CMakeLists.txt
	BuildDir   string   `toml:"build_dir"`   // empty = layout build folder under source_dir
	PackageDir string   `toml:"package_dir"` // install prefix of the package
	Generator  string   `toml:"generator"`   // CMake generator, empty = CMake default
	Jobs       int      `toml:"jobs"`        // parallel build level, 0 = generator default
	Deps       []string `toml:"deps"`        // install roots of already built requirements

	Toolchain string            `toml:"toolchain"` // CMAKE_TOOLCHAIN_FILE, empty = host compilers
	Env       map[string]string `toml:"env"`       // extra environment of the cmake processes, e.g. CC, CXX
}

type ValidateConfig struct {
	RejectUnknownCompilers bool `toml:"reject_unknown_compilers"`
}

type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			SourceDir:  ".",
			PackageDir: "package",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("config %s not found, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if _, err := cfg.LogLevel(); err != nil {
		return nil, err
	}
	if cfg.Build.Jobs < 0 {
		return nil, fmt.Errorf("invalid build.jobs %d", cfg.Build.Jobs)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if level := os.Getenv("RECIPE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if dir := os.Getenv("RECIPE_BUILD_DIR"); dir != "" {
		cfg.Build.BuildDir = dir
	}
	if dir := os.Getenv("RECIPE_PACKAGE_DIR"); dir != "" {
		cfg.Build.PackageDir = dir
	}
	if v := os.Getenv("RECIPE_REJECT_UNKNOWN_COMPILERS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RECIPE_REJECT_UNKNOWN_COMPILERS %q: %w", v, err)
		}
		cfg.Validate.RejectUnknownCompilers = b
	}
	return nil
}

// UnknownCompilerPolicy returns the validation policy for compilers missing
// from the minimum version table.
func (c *Config) UnknownCompilerPolicy() formula.UnknownCompilerPolicy {
	if c.Validate.RejectUnknownCompilers {
		return formula.RejectUnknownCompiler
	}
	return formula.AllowUnknownCompiler
}

// LogLevel maps Log.Level to a github.com/qiniu/x/log output level.
func (c *Config) LogLevel() (int, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return log.Ldebug, nil
	case "", "info":
		return log.Linfo, nil
	case "warn", "warning":
		return log.Lwarn, nil
	case "error":
		return log.Lerror, nil
	}
	return 0, fmt.Errorf("invalid log level %q", c.Log.Level)
}
