// Package scanner discovers Python source files to analyze.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// SourceFile is one discovered Python file.
type SourceFile struct {
	// Path is the absolute path to the file.
	Path string
	// Module is the module name derived from the file name.
	Module string
}

var skipDirs = map[string]struct{}{
	"__pycache__":   {},
	"node_modules":  {},
	"venv":          {},
	"env":           {},
	"build":         {},
	"dist":          {},
	".tox":          {},
	".mypy_cache":   {},
	".ruff_cache":   {},
	".pytest_cache": {},
}

// DiscoverSources walks the given paths collecting .py files. A path that
// is itself a file is accepted directly. Hidden directories and common
// vendored/derived trees are skipped, and a .gitignore at each walk root is
// honored. Results are deduplicated by absolute path and sorted.
func DiscoverSources(paths []string) ([]SourceFile, error) {
	seen := make(map[string]bool)
	var results []SourceFile

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		results = append(results, SourceFile{
			Path:   abs,
			Module: strings.TrimSuffix(filepath.Base(abs), ".py"),
		})
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if strings.HasSuffix(root, ".py") {
				add(root)
			}
			continue
		}

		gi := loadGitignore(root)

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable entries are skipped, not fatal
			}
			name := d.Name()

			if d.IsDir() {
				if path == root {
					return nil
				}
				if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}

			if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".py") {
				return nil
			}
			if d.Type()&os.ModeSymlink != 0 {
				return nil
			}

			if gi != nil {
				if rel, err := filepath.Rel(root, path); err == nil && gi.MatchesPath(rel) {
					return nil
				}
			}

			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
