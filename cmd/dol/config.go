package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dol/internal/analyzer"
	"dol/internal/project"
)

// projectConfig is the effective configuration of a command: dol.toml values
// with explicit flags layered on top.
type projectConfig struct {
	manifest *project.Manifest // nil without dol.toml
	analyzer analyzer.Options
	filter   *project.Filter
}

// loadProjectConfig discovers the manifest governing start (a file or a
// directory) and resolves analyzer options from it and cmd's flags.
func loadProjectConfig(cmd *cobra.Command, start string) (projectConfig, error) {
	dir := start
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		dir = filepath.Dir(start)
	}

	var cfg projectConfig
	m, err := project.Discover(dir)
	switch {
	case errors.Is(err, project.ErrNoManifest):
	case err != nil:
		return cfg, err
	default:
		cfg.manifest = m
	}

	opts := analyzer.DefaultOptions()
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return cfg, err
	}
	opts.MaxDiagnostics = maxDiagnostics
	opts = cfg.manifest.AnalyzerOptions(opts)

	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		opts.MaxDiagnostics = maxDiagnostics
	}
	if opts.MaxDiagnostics < 0 {
		return cfg, fmt.Errorf("--max-diagnostics must not be negative")
	}
	if f := cmd.Flags().Lookup("strategy"); f != nil && f.Changed {
		s, err := analyzer.ParseStrategy(f.Value.String())
		if err != nil {
			return cfg, err
		}
		opts.Strategy = s
	}
	if f := cmd.Flags().Lookup("no-warnings"); f != nil && f.Changed {
		noWarnings, err := cmd.Flags().GetBool("no-warnings")
		if err != nil {
			return cfg, err
		}
		opts.Warnings = !noWarnings
	}
	cfg.analyzer = opts

	cfg.filter, err = cfg.manifest.Filter()
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// colorEnabled resolves --color against the output stream.
func colorEnabled(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return os.Getenv("NO_COLOR") == "" && isTerminal(cmd.OutOrStdout()), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}

func quietFlag(cmd *cobra.Command) bool {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && quiet
}

func timingsFlag(cmd *cobra.Command) bool {
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	return err == nil && timings
}
