// Package cmake wraps the cmake configure/build/install workflow.
package cmake

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/mavlink/mavsdk-recipe/pkgs/buildsys"
	"github.com/qiniu/x/log"
)

type defineValue struct {
	value    string
	typeName string
}

// Runner executes a command with extra environment variables.
type Runner func(ctx context.Context, name string, args []string, env map[string]string) error

// CMake drives CMake-based builds.
type CMake struct {
	sourceDir  string
	buildDir   string
	installDir string
	generator  string
	buildType  string
	toolchain  string
	jobs       int
	defines    map[string]defineValue
	env        map[string]string
	run        Runner
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New returns a ready-to-use CMake.
func New(sourceDir, buildDir, installDir string) *CMake {
	return &CMake{
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
		defines:    make(map[string]defineValue),
		env:        make(map[string]string),
		run:        execRun,
	}
}

// SetRunner replaces the command runner.
func (c *CMake) SetRunner(r Runner) { c.run = r }

// Generator sets the CMake generator (e.g. "Ninja", "Unix Makefiles").
func (c *CMake) Generator(name string) { c.generator = name }

// BuildType sets CMAKE_BUILD_TYPE (e.g. "Release", "Debug").
func (c *CMake) BuildType(name string) { c.buildType = name }

// Toolchain sets CMAKE_TOOLCHAIN_FILE.
func (c *CMake) Toolchain(path string) { c.toolchain = path }

// Jobs sets the parallel build level. Zero leaves it to the generator.
func (c *CMake) Jobs(n int) { c.jobs = n }

// Define adds a -D<key>:STRING=<value> definition. ON/OFF values are
// defined as BOOL.
func (c *CMake) Define(key, value string) {
	typeName := "STRING"
	if value == "ON" || value == "OFF" {
		typeName = "BOOL"
	}
	c.defines[key] = defineValue{value: value, typeName: typeName}
}

// ApplyVariables defines every variable in vars.
func (c *CMake) ApplyVariables(vars map[string]string) {
	for k, v := range vars {
		c.Define(k, v)
	}
}

// Env sets an environment variable for the cmake processes.
func (c *CMake) Env(key, value string) {
	c.env[key] = value
}

// Use makes headers, libraries and pkg-config files of a dependency
// installed at root visible to CMake and the compilers.
func (c *CMake) Use(root string) {
	includeDir := filepath.Join(root, "include")
	libDir := filepath.Join(root, "lib")
	pkgconfigDir := filepath.Join(libDir, "pkgconfig")

	if exists(pkgconfigDir) {
		c.prependPath("PKG_CONFIG_PATH", pkgconfigDir)
	}
	c.prependPath("CMAKE_PREFIX_PATH", root)
	if exists(includeDir) {
		c.prependPath("CMAKE_INCLUDE_PATH", includeDir)
	}
	if exists(libDir) {
		c.prependPath("CMAKE_LIBRARY_PATH", libDir)
	}

	if runtime.GOOS == "windows" {
		if exists(includeDir) {
			c.prependPath("INCLUDE", includeDir)
		}
		if exists(libDir) {
			c.prependPath("LIB", libDir)
		}
	} else {
		if exists(includeDir) {
			c.appendFlag("CPPFLAGS", "-I"+includeDir)
		}
		if exists(libDir) {
			c.appendFlag("LDFLAGS", "-L"+libDir)
		}
	}
}

// Configure runs "cmake -S <source> -B <build>" with all configured options.
// Extra args are appended at the end.
func (c *CMake) Configure(ctx context.Context, args ...string) error {
	if err := os.MkdirAll(c.buildDir, 0o755); err != nil {
		return err
	}
	cmakeArgs := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	if c.installDir != "" {
		c.Define("CMAKE_INSTALL_PREFIX", c.installDir)
	}
	if c.toolchain != "" {
		c.Define("CMAKE_TOOLCHAIN_FILE", c.toolchain)
	}
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)
	return c.exec(ctx, cmakeArgs)
}

// Build runs "cmake --build <build>" with optional extra arguments.
func (c *CMake) Build(ctx context.Context, args ...string) error {
	cmakeArgs := []string{"--build", c.buildDir}
	if c.buildType != "" {
		cmakeArgs = append(cmakeArgs, "--config", c.buildType)
	}
	if c.jobs > 0 {
		cmakeArgs = append(cmakeArgs, "--parallel", strconv.Itoa(c.jobs))
	}
	cmakeArgs = append(cmakeArgs, args...)
	return c.exec(ctx, cmakeArgs)
}

// Install runs "cmake --install <build>" with optional extra arguments.
func (c *CMake) Install(ctx context.Context, args ...string) error {
	cmakeArgs := []string{"--install", c.buildDir}
	if c.buildType != "" {
		cmakeArgs = append(cmakeArgs, "--config", c.buildType)
	}
	if c.installDir != "" {
		cmakeArgs = append(cmakeArgs, "--prefix", c.installDir)
	}
	cmakeArgs = append(cmakeArgs, args...)
	return c.exec(ctx, cmakeArgs)
}

// OutputDir returns installDir if set, otherwise buildDir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

func (c *CMake) exec(ctx context.Context, args []string) error {
	log.Debugf("cmake %s", strings.Join(args, " "))
	return c.run(ctx, "cmake", args, c.env)
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		d := c.defines[k]
		args = append(args, "-D"+k+":"+d.typeName+"="+d.value)
	}
	return args
}

func (c *CMake) lookupEnv(key string) string {
	if v, ok := c.env[key]; ok {
		return v
	}
	return os.Getenv(key)
}

// prependPath prepends value to a PATH-style env var.
func (c *CMake) prependPath(key, value string) {
	if cur := c.lookupEnv(key); cur != "" {
		value += string(os.PathListSeparator) + cur
	}
	c.env[key] = value
}

// appendFlag appends a space-separated flag to an env var.
func (c *CMake) appendFlag(key, flag string) {
	if cur := strings.TrimSpace(c.lookupEnv(key)); cur != "" {
		flag = cur + " " + flag
	}
	c.env[key] = flag
}

func execRun(ctx context.Context, name string, args []string, env map[string]string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), env)
	}
	return cmd.Run()
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
