package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dol/internal/diagfmt"
	"dol/internal/driver"
	"dol/internal/logging"
	"dol/internal/observ"
	"dol/internal/source"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [path...]",
		Short: "Check DOL source files or directories",
		Long:  `Analyze .dol files, or every project file below the given directories, and report structural diagnostics`,
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().String("strategy", "scoped", "analysis strategy (scoped|legacy)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("no-warnings", false, "do not report warnings")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("with-ast", false, "include the declaration tree in json output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output (same as --path-mode=absolute)")
	cmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	cmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	cmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before checking")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	return cmd
}

type checkFlags struct {
	format           string
	jobs             int
	warningsAsErrors bool
	withNotes        bool
	withAST          bool
	pathMode         diagfmt.PathMode
	cache            bool
	clearCache       bool
	ui               uiMode
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.withAST, err = cmd.Flags().GetBool("with-ast"); err != nil {
		return f, fmt.Errorf("failed to get with-ast flag: %w", err)
	}
	pathModeFlag, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if f.pathMode, ok = diagfmt.ParsePathMode(pathModeFlag); !ok {
		return f, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", pathModeFlag)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if fullPath {
		f.pathMode = diagfmt.PathModeAbsolute
	}
	if f.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.clearCache, err = cmd.Flags().GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiFlag); err != nil {
		return f, err
	}
	return f, nil
}

// runCheck executes "check": it analyzes the given paths (default ".") and
// renders the diagnostics. The exit code is 1 when any file has errors, or
// warnings under --warnings-as-errors.
func runCheck(cmd *cobra.Command, args []string) error {
	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	cfg, err := loadProjectConfig(cmd, paths[0])
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	quiet := quietFlag(cmd)

	session, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil {
			log.Warn("failed to write profiles", "error", stopErr)
		}
	}()
	var timer *observ.Timer
	if timingsFlag(cmd) {
		timer = observ.NewTimer()
	}

	opts := driver.Options{
		Analyzer: cfg.analyzer,
		Jobs:     flags.jobs,
		Filter:   cfg.filter,
		Logger:   log,
		Timings:  timer != nil,
	}
	if flags.cache || flags.clearCache {
		cache, cacheErr := driver.OpenDiskCache("dol")
		switch {
		case cacheErr != nil && flags.clearCache:
			return fmt.Errorf("failed to open cache: %w", cacheErr)
		case cacheErr != nil:
			log.Warn("disk cache disabled", "error", cacheErr)
		default:
			if flags.clearCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
				log.Debug("disk cache cleared")
			}
			if flags.cache {
				opts.Cache = cache
			}
		}
	}

	out := cmd.OutOrStdout()
	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	idx := timer.Begin("analyze")
	if flags.format == "pretty" && !quiet && shouldUseTUI(flags.ui, out) {
		files, collectErr := driver.CollectFiles(ctx, paths, cfg.filter)
		if collectErr != nil {
			return collectErr
		}
		fs, results, err = runCheckWithUI(ctx, "checking", files, opts, out)
		if fs != nil && len(paths) == 1 {
			if info, statErr := os.Stat(paths[0]); statErr == nil && info.IsDir() {
				fs.SetBaseDir(paths[0])
			}
		}
	} else {
		fs, results, err = driver.AnalyzePaths(ctx, paths, opts)
	}
	timer.End(idx, fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if len(results) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no .dol files found")
		}
		return nil
	}

	idx = timer.Begin("render")
	err = renderCheck(out, fs, results, flags, useColor)
	timer.End(idx, flags.format)
	if err != nil {
		return err
	}

	errCount, warnCount, failed := summarize(results)
	if !quiet && flags.format == "pretty" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) checked: %d error(s), %d warning(s)\n", len(results), errCount, warnCount)
	}
	if timer != nil {
		printTimings(cmd.ErrOrStderr(), timer, results)
	}
	if failed > 0 || (flags.warningsAsErrors && warnCount > 0) {
		return exitError{code: exitFindings}
	}
	return nil
}

func renderCheck(out io.Writer, fs *source.FileSet, results []driver.FileResult, flags checkFlags, useColor bool) error {
	pathMode := flags.pathMode
	switch flags.format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: flags.withNotes,
		}
		first := true
		for _, r := range results {
			if len(r.Result.Errors)+len(r.Result.Warnings) == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(out)
			}
			first = false
			diagfmt.PrettyResult(out, r, fs, prettyOpts)
		}
	case "short":
		for _, r := range results {
			diagfmt.Short(out, diagfmt.ResultPath(r, fs, pathMode), r.Result.Diagnostics(), flags.withNotes)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{PathMode: pathMode, IncludeAST: flags.withAST}
		if err := diagfmt.JSON(out, results, fs, jsonOpts); err != nil {
			return fmt.Errorf("failed to encode check output: %w", err)
		}
	}
	return nil
}

func summarize(results []driver.FileResult) (errCount, warnCount, failed int) {
	for _, r := range results {
		errCount += len(r.Result.Errors)
		warnCount += len(r.Result.Warnings)
		if !r.Success() {
			failed++
		}
	}
	return errCount, warnCount, failed
}
