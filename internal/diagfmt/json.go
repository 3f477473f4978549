package diagfmt

import (
	"encoding/json"
	"io"

	"dol/internal/analyzer"
	"dol/internal/ast"
	"dol/internal/diag"
	"dol/internal/driver"
	"dol/internal/source"
)

// FileJSON is the per-file entry of a check report.
type FileJSON struct {
	Path     string            `json:"path"`
	Success  bool              `json:"success"`
	Cached   bool              `json:"cached,omitempty"`
	Errors   []diag.Diagnostic `json:"errors"`
	Warnings []diag.Diagnostic `json:"warnings"`
	Metadata analyzer.Metadata `json:"metadata"`
	AST      []ast.Node        `json:"ast,omitempty"`
}

// CheckOutput представляет корневую структуру JSON вывода
type CheckOutput struct {
	Files    []FileJSON `json:"files"`
	Count    int        `json:"count"`
	Errors   int        `json:"errors"`
	Warnings int        `json:"warnings"`
}

// BuildCheckOutput формирует структуру JSON-вывода без сериализации.
func BuildCheckOutput(results []driver.FileResult, fs *source.FileSet, opts JSONOpts) CheckOutput {
	out := CheckOutput{Files: make([]FileJSON, 0, len(results))}
	for _, r := range results {
		entry := FileJSON{
			Path:     ResultPath(r, fs, opts.PathMode),
			Success:  r.Success(),
			Cached:   r.Cached,
			Errors:   r.Result.Errors,
			Warnings: r.Result.Warnings,
			Metadata: r.Result.Metadata,
		}
		if opts.IncludeAST {
			entry.AST = r.Result.AST
		}
		out.Errors += len(entry.Errors)
		out.Warnings += len(entry.Warnings)
		out.Files = append(out.Files, entry)
	}
	out.Count = len(out.Files)
	return out
}

// ResultPath returns how the file behind r is displayed under mode. Files
// that failed to load keep the path they were requested under.
func ResultPath(r driver.FileResult, fs *source.FileSet, mode PathMode) string {
	if r.Err == nil && fs != nil {
		if sf := fs.Get(r.FileID); sf != nil {
			return displayPath(sf, fs, mode)
		}
	}
	return r.Path
}

// JSON writes the check report for results.
func JSON(w io.Writer, results []driver.FileResult, fs *source.FileSet, opts JSONOpts) error {
	return encode(w, BuildCheckOutput(results, fs, opts))
}

// ResultJSON writes a single analyzer result in its external shape.
func ResultJSON(w io.Writer, res analyzer.Result) error {
	return encode(w, res)
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
