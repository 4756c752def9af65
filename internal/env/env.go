package env

import (
	"os"
	"path/filepath"
)

// WorkDir returns the per-user directory of the recipe tool,
// <UserCacheDir>/.mavsdk-recipe.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".mavsdk-recipe"), nil
}

// CacheDir returns the directory holding build caches and creates it with
// 0700 permissions if needed.
func CacheDir() (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(workDir, "cache")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
