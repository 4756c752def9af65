package build

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/mavlink/mavsdk-recipe/internal/config"
	"github.com/mavlink/mavsdk-recipe/internal/env"
	"github.com/mavlink/mavsdk-recipe/pkgs/buildsys"
	"github.com/mavlink/mavsdk-recipe/pkgs/buildsys/cmake"
	"github.com/qiniu/x/log"
)

// PackageInfoFile is written to the package directory after install.
const PackageInfoFile = "package-info.json"

// Dirs are the folders of one build.
type Dirs struct {
	Source  string
	Build   string
	Install string
}

// NewBuildSystemFunc creates the build system driving one build.
type NewBuildSystemFunc func(platform formula.Platform, dirs Dirs) buildsys.BuildSystem

// Options configures a Builder.
type Options struct {
	Config *config.Config
	// CacheDir holds build caches. If empty, env.CacheDir() is used.
	CacheDir string
	// Force rebuilds even when the build cache has an entry.
	Force bool
	// NewBuildSystem overrides the CMake build system.
	NewBuildSystem NewBuildSystemFunc
}

// Builder runs the package lifecycle for one configuration.
type Builder struct {
	cfg            *config.Config
	cacheDir       string
	force          bool
	newBuildSystem NewBuildSystemFunc
}

// Plan is the validated configuration of a build.
type Plan struct {
	Platform  formula.Platform
	Options   formula.Options // normalized
	Variables formula.BuildVariables
	Matrix    string
	Layout    formula.Layout
}

// Result describes a finished build.
type Result struct {
	*Plan
	PackageDir string
	Info       formula.PackageInfo
	Cached     bool
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) (*Builder, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	cacheDir := opts.CacheDir
	if cacheDir == "" {
		dir, err := env.CacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get cache dir: %w", err)
		}
		cacheDir = dir
	}
	newBuildSystem := opts.NewBuildSystem
	if newBuildSystem == nil {
		newBuildSystem = cmakeBuildSystem(cfg)
	}
	return &Builder{
		cfg:            cfg,
		cacheDir:       cacheDir,
		force:          opts.Force,
		newBuildSystem: newBuildSystem,
	}, nil
}

func cmakeBuildSystem(cfg *config.Config) NewBuildSystemFunc {
	return func(platform formula.Platform, dirs Dirs) buildsys.BuildSystem {
		c := cmake.New(dirs.Source, dirs.Build, dirs.Install)
		if cfg.Build.Generator != "" {
			c.Generator(cfg.Build.Generator)
		}
		c.BuildType(platform.BuildType)
		c.Jobs(cfg.Build.Jobs)
		if cfg.Build.Toolchain != "" {
			c.Toolchain(cfg.Build.Toolchain)
		}
		return c
	}
}

// Plan normalizes opts, validates platform and derives the build
// variables. It only logs.
func (b *Builder) Plan(platform formula.Platform, opts formula.Options) (*Plan, error) {
	norm := formula.NormalizeOptions(opts, platform)
	if err := formula.Validate(platform, formula.MinCppStd, b.cfg.UnknownCompilerPolicy()); err != nil {
		return nil, err
	}
	if !formula.KnownCompiler(platform.Compiler) {
		log.Warnf("no minimum version known for compiler %q, assuming C++%s support", platform.Compiler, formula.MinCppStd)
	}
	m := formula.MatrixOf(platform, norm)
	return &Plan{
		Platform:  platform,
		Options:   norm,
		Variables: formula.GenerateBuildVariables(norm),
		Matrix:    m.String(),
		Layout:    formula.LayoutOf(platform),
	}, nil
}

// Build runs the whole lifecycle: plan, configure and build, copy the
// license files, configure with the build variables and install, then
// write the package information. A configuration rejected by Plan stops
// before any build step runs.
func (b *Builder) Build(ctx context.Context, platform formula.Platform, opts formula.Options) (*Result, error) {
	plan, err := b.Plan(platform, opts)
	if err != nil {
		return nil, err
	}
	meta := formula.PackageMetadata()

	dirs, err := b.dirs(plan)
	if err != nil {
		return nil, err
	}

	cache, err := b.loadCache(meta.Name)
	if err != nil {
		cache = &buildCache{}
	}
	if !b.force {
		if entry, ok := cache.get(meta.Version, plan.Matrix); ok && entry.installed(dirs.Install) {
			log.Infof("%s: up to date (%s)", meta.Ref(), plan.Matrix)
			return &Result{Plan: plan, PackageDir: entry.PackageDir, Info: formula.PackageInfoOf(), Cached: true}, nil
		}
	}

	log.Infof("%s: building %s", meta.Ref(), plan.Matrix)

	bs := b.newBuildSystem(platform, dirs)
	for _, root := range b.cfg.Build.Deps {
		bs.Use(root)
	}
	for k, v := range b.cfg.Build.Env {
		bs.Env(k, v)
	}

	// generate
	bs.ApplyVariables(plan.Variables)

	// build
	if err := bs.Configure(ctx); err != nil {
		return nil, fmt.Errorf("failed to configure %s: %w", meta.Ref(), err)
	}
	if err := bs.Build(ctx); err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", meta.Ref(), err)
	}

	// package
	if err := copyPackageFiles(dirs.Source, dirs.Install, meta.PackageFiles); err != nil {
		return nil, fmt.Errorf("failed to copy package files: %w", err)
	}
	bs.ApplyVariables(plan.Variables)
	if err := bs.Configure(ctx); err != nil {
		return nil, fmt.Errorf("failed to configure %s: %w", meta.Ref(), err)
	}
	if err := bs.Install(ctx); err != nil {
		return nil, fmt.Errorf("failed to install %s: %w", meta.Ref(), err)
	}

	// package_info
	packageDir := bs.OutputDir()
	info := formula.PackageInfoOf()
	data, err := writePackageInfo(packageDir, plan, info)
	if err != nil {
		return nil, fmt.Errorf("failed to write package info: %w", err)
	}

	cache.set(meta.Version, plan.Matrix, &buildEntry{
		PackageDir: packageDir,
		Metadata:   string(data),
		BuildTime:  time.Now(),
	})
	if err := b.saveCache(meta.Name, cache); err != nil {
		log.Warnf("failed to save build cache: %v", err)
	}

	log.Infof("%s: packaged to %s", meta.Ref(), packageDir)
	return &Result{Plan: plan, PackageDir: packageDir, Info: info}, nil
}

func (b *Builder) dirs(plan *Plan) (Dirs, error) {
	source, err := filepath.Abs(b.cfg.Build.SourceDir)
	if err != nil {
		return Dirs{}, err
	}
	build := b.cfg.Build.BuildDir
	if build == "" {
		build = filepath.Join(source, filepath.FromSlash(plan.Layout.Build))
	}
	if build, err = filepath.Abs(build); err != nil {
		return Dirs{}, err
	}
	install, err := filepath.Abs(b.cfg.Build.PackageDir)
	if err != nil {
		return Dirs{}, err
	}
	return Dirs{Source: source, Build: build, Install: install}, nil
}

// copyPackageFiles copies the files matching each pattern from the source
// folder into its destination below the package folder.
func copyPackageFiles(sourceDir, packageDir string, patterns []formula.CopyPattern) error {
	proj := &formula.Project{DirFS: os.DirFS(sourceDir)}
	for _, p := range patterns {
		files, err := proj.Glob(p.Pattern)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		for _, name := range files {
			data, err := proj.ReadFile(name)
			if err != nil {
				return err
			}
			dst := filepath.Join(packageDir, p.Dst, filepath.FromSlash(name))
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(dst, data, 0o644); err != nil {
				return err
			}
			log.Debugf("copied %s to %s", name, dst)
		}
	}
	return nil
}

// packageInfo is the content of PackageInfoFile.
type packageInfo struct {
	formula.PackageInfo
	Settings  map[string]string      `json:"settings"`
	Options   map[string]string      `json:"options"`
	Variables formula.BuildVariables `json:"variables"`
	Requires  []string               `json:"requires"`
}

func writePackageInfo(packageDir string, plan *Plan, info formula.PackageInfo) ([]byte, error) {
	var requires []string
	for _, r := range formula.PlanRequirements() {
		requires = append(requires, r.String())
	}
	data, err := json.MarshalIndent(packageInfo{
		PackageInfo: info,
		Settings:    plan.Platform.Settings(),
		Options:     plan.Options.Values(),
		Variables:   plan.Variables,
		Requires:    requires,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(packageDir, 0o755); err != nil {
		return nil, err
	}
	return data, os.WriteFile(filepath.Join(packageDir, PackageInfoFile), data, 0o644)
}
