package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dol/internal/driver"
	"dol/internal/logging"
	"dol/internal/source"
)

const stdinPath = "-"

// analyzeInput analyzes a single file, or stdin when path is "-".
func analyzeInput(cmd *cobra.Command, path string, cfg projectConfig) (*source.FileSet, driver.FileResult, error) {
	fs := source.NewFileSet()
	opts := driver.Options{
		Analyzer: cfg.analyzer,
		Logger:   logging.FromContext(cmd.Context()),
	}
	if path == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, driver.FileResult{}, fmt.Errorf("read stdin: %w", err)
		}
		return fs, driver.AnalyzeSource(fs, "<stdin>", content, opts), nil
	}
	res, err := driver.AnalyzeFile(fs, path, opts)
	if err != nil {
		return nil, res, err
	}
	return fs, res, nil
}

// configStart is where manifest discovery begins for path.
func configStart(path string) string {
	if path == stdinPath {
		return "."
	}
	return path
}
