// Package walker enumerates candidate files under one or more roots,
// applying the ignore-dir and ignore-glob rules. The walker only decides
// what passes through, not which extractor handles it — that is the
// dispatcher's job (see internal/dispatch).
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Walker enumerates files under a set of roots.
type Walker struct {
	ignoreDirs   map[string]struct{}
	ignoreGlobs  []glob.Glob
	excludedExts map[string]struct{}
}

// New compiles the ignore-dir, ignore-glob, and excluded-extension rule sets.
func New(ignoreDirs, ignoreGlobs, excludedExtensions []string) (*Walker, error) {
	dirSet := make(map[string]struct{}, len(ignoreDirs))
	for _, d := range ignoreDirs {
		dirSet[d] = struct{}{}
	}

	globs := make([]glob.Glob, 0, len(ignoreGlobs))
	for _, pattern := range ignoreGlobs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling ignore glob %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	extSet := make(map[string]struct{}, len(excludedExtensions))
	for _, ext := range excludedExtensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}

	return &Walker{ignoreDirs: dirSet, ignoreGlobs: globs, excludedExts: extSet}, nil
}

// Walk enumerates every file under roots that should be considered for
// extraction, in deterministic (lexicographic, per-directory) order.
func (w *Walker) Walk(roots []string) ([]string, error) {
	var files []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if !w.rejectFile(filepath.Base(root)) {
				files = append(files, root)
			}
			continue
		}

		walked, err := w.walkDir(root)
		if err != nil {
			return nil, err
		}
		files = append(files, walked...)
	}

	return files, nil
}

func (w *Walker) walkDir(root string) ([]string, error) {
	var files []string

	var visit func(dir string) error
	visit = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading %s: %w", dir, err)
		}

		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, entry := range entries {
			name := entry.Name()
			path := filepath.Join(dir, name)

			if entry.IsDir() {
				if w.rejectDir(name) {
					continue
				}
				if err := visit(path); err != nil {
					return err
				}
				continue
			}

			if w.rejectFile(name) {
				continue
			}
			files = append(files, path)
		}

		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return files, nil
}

func (w *Walker) rejectDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ignored := w.ignoreDirs[name]
	return ignored
}

func (w *Walker) rejectFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if _, excluded := w.excludedExts[strings.ToLower(filepath.Ext(name))]; excluded {
		return true
	}
	for _, g := range w.ignoreGlobs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
