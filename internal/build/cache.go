package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/mavlink/mavsdk-recipe/pkgs/mod/module"
)

// Cache directory layout:
//
//	cacheDir/
//	  <escaped>/          # package-level dir
//	    .cache.json       # build cache: maps "version-matrix" → buildEntry
const cacheFile = ".cache.json"

// buildEntry contains metadata about a single successful build.
type buildEntry struct {
	PackageDir string    `json:"package_dir"`
	Metadata   string    `json:"metadata"`
	BuildTime  time.Time `json:"build_time"`
}

// installed reports whether the package folder dir still holds the build
// recorded by e. Another configuration installed into the same folder
// replaces its package info, so the recorded content no longer matches.
func (e *buildEntry) installed(dir string) bool {
	if e.PackageDir != dir {
		return false
	}
	data, err := os.ReadFile(filepath.Join(dir, PackageInfoFile))
	return err == nil && string(data) == e.Metadata
}

// buildCache maps "version-matrixString" keys to their build entries.
type buildCache struct {
	Cache map[string]*buildEntry `json:"cache"`
}

func cacheKey(version, matrix string) string {
	return version + "-" + matrix
}

func (c *buildCache) get(version, matrix string) (*buildEntry, bool) {
	entry, ok := c.Cache[cacheKey(version, matrix)]
	return entry, ok
}

func (c *buildCache) set(version, matrix string, entry *buildEntry) {
	if c.Cache == nil {
		c.Cache = make(map[string]*buildEntry)
	}
	c.Cache[cacheKey(version, matrix)] = entry
}

// cachePath returns the cache file of a package: cacheDir/<escapedPath>/.cache.json.
func (b *Builder) cachePath(modPath string) (string, error) {
	escaped, err := module.EscapePath(modPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(b.cacheDir, escaped, cacheFile), nil
}

// loadCache reads the cache file of a package.
func (b *Builder) loadCache(modPath string) (*buildCache, error) {
	path, err := b.cachePath(modPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cache buildCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return &cache, nil
}

// saveCache writes the cache file of a package.
func (b *Builder) saveCache(modPath string, cache *buildCache) error {
	path, err := b.cachePath(modPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
