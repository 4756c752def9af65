package formula

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"slices"
)

// -----------------------------------------------------------------------------

// Project is the source tree of the package being built.
type Project struct {
	DirFS fs.FS
}

// ReadFile reads the content of a file in the project.
func (p *Project) ReadFile(name string) ([]byte, error) {
	file, err := p.DirFS.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// Glob returns the files matching pattern. A pattern ending in "/*" matches
// the whole directory tree below it.
func (p *Project) Glob(pattern string) ([]string, error) {
	if dir, ok := cutTreeSuffix(pattern); ok {
		var files []string
		err := fs.WalkDir(p.DirFS, dir, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, name)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return files, nil
	}
	matches, err := fs.Glob(p.DirFS, pattern)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(matches, func(name string) bool {
		info, err := fs.Stat(p.DirFS, name)
		return err != nil || info.IsDir()
	}), nil
}

// ExportedSources returns the files selected by the package's export
// patterns, in pattern order. Patterns without a match are skipped.
func (p *Project) ExportedSources() ([]string, error) {
	var files []string
	for _, pattern := range PackageMetadata().ExportsSources {
		matches, err := p.Glob(pattern)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

func cutTreeSuffix(pattern string) (string, bool) {
	if path.Base(pattern) != "*" {
		return "", false
	}
	return path.Dir(pattern), true
}

// -----------------------------------------------------------------------------
