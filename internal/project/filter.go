package project

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// SourceExt is the extension of DOL source files.
const SourceExt = ".dol"

// Filter decides which files under a root belong to the project. Patterns
// use '/' as the separator and are matched against slash-separated paths
// relative to the root, and against the base name.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles include and exclude patterns. An empty include list
// accepts every .dol file.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.include, err = compileAll(include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileAll(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchAny(globs []glob.Glob, rel string) bool {
	base := path.Base(rel)
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// Match reports whether the file at rel is part of the project.
func (f *Filter) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	if path.Ext(rel) != SourceExt {
		return false
	}
	if f == nil {
		return true
	}
	if matchAny(f.exclude, rel) {
		return false
	}
	return len(f.include) == 0 || matchAny(f.include, rel)
}

// SkipDir reports whether the directory at rel is excluded as a whole.
func (f *Filter) SkipDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return false
	}
	if strings.HasPrefix(path.Base(rel), ".") {
		return true
	}
	if f == nil {
		return false
	}
	return matchAny(f.exclude, rel) || matchAny(f.exclude, rel+"/")
}

// Collect walks root and returns the sorted list of matching files.
func (f *Filter) Collect(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			rel = p
		}
		if d.IsDir() {
			if f.SkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if f.Match(rel) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
