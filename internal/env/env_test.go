package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, ".cache"))
	t.Setenv("LocalAppData", filepath.Join(tmp, "AppData"))

	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		t.Skipf("no user cache dir: %v", err)
	}

	workDir, err := WorkDir()
	if err != nil {
		t.Fatalf("WorkDir() returned error: %v", err)
	}
	if want := filepath.Join(userCacheDir, ".mavsdk-recipe"); workDir != want {
		t.Errorf("WorkDir() = %q, want %q", workDir, want)
	}

	cacheDir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() returned error: %v", err)
	}
	if want := filepath.Join(workDir, "cache"); cacheDir != want {
		t.Errorf("CacheDir() = %q, want %q", cacheDir, want)
	}
	info, err := os.Stat(cacheDir)
	if err != nil {
		t.Fatalf("directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", cacheDir)
	}

	// Calling again must not fail on an existing directory.
	if _, err := CacheDir(); err != nil {
		t.Fatalf("second CacheDir() returned error: %v", err)
	}
}
