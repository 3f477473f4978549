package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"dol/internal/analyzer"
	"dol/internal/format"
	"dol/internal/project"
	"dol/internal/source"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check  bool
	Stdout bool
	// Filter selects files inside directories; nil accepts every .dol file.
	Filter *project.Filter
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// ErrSyntax marks files that were left alone because they do not analyze
// cleanly.
var ErrSyntax = errors.New("syntax errors present")

// FormatPaths formats provided files or directories (recursively collecting .dol files).
// When opts.Check is true, files are not modified; Changed indicates whether formatting
// would update the file contents. When opts.Stdout is true, formatted content is returned
// in the results without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectFiles(ctx, paths, opts.Filter)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := FormatResult{Path: path}
		formatted, changed, err := formatSingleFile(path)
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}

		if opts.Check {
			result.Changed = changed
			results = append(results, result)
			continue
		}

		if opts.Stdout {
			result.Formatted = formatted
			result.Changed = changed
			results = append(results, result)
			continue
		}

		if changed {
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
				result.Err = err
			} else {
				result.Changed = true
			}
		}
		results = append(results, result)
	}

	return results, nil
}

func formatSingleFile(path string) (formatted []byte, changed bool, err error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, false, err
	}
	sf := fileSet.Get(fileID)

	res := analyzer.Analyze(string(sf.Content), analyzer.Options{})
	if !res.Success {
		return nil, false, fmt.Errorf("%s: %w", path, ErrSyntax)
	}

	formatted, err = format.FormatFile(sf)
	if err != nil {
		return nil, false, err
	}

	return formatted, !bytes.Equal(sf.Content, formatted), nil
}
