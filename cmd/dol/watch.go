package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dol/internal/diagfmt"
	"dol/internal/driver"
	"dol/internal/logging"
	"dol/internal/source"
	"dol/internal/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags] [dir]",
		Short: "Re-check DOL files as they change",
		Long:  `Check every project file under dir once, then re-check files as they are written until interrupted`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}
	cmd.Flags().String("strategy", "scoped", "analysis strategy (scoped|legacy)")
	cmd.Flags().Bool("no-warnings", false, "do not report warnings")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before re-checking")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if st, err := os.Stat(dir); err != nil {
		return err
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(cmd, dir)
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	out := cmd.OutOrStdout()
	opts := driver.Options{Analyzer: cfg.analyzer, Filter: cfg.filter, Logger: log}
	prettyOpts := diagfmt.PrettyOpts{Color: useColor, Context: 1, PathMode: diagfmt.PathModeRelative, ShowNotes: withNotes}

	fs, results, err := driver.AnalyzeDir(ctx, dir, opts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	reportWatch(out, fs, results, prettyOpts)

	w, err := watch.New(dir, watch.Options{Debounce: debounce, Filter: cfg.filter, Logger: log})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	defer w.Close()
	if !quietFlag(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl+c to stop)\n", dir)
	}

	err = w.Run(ctx, func(paths []string) {
		present := paths[:0:0]
		for _, p := range paths {
			if _, statErr := os.Stat(p); statErr == nil {
				present = append(present, p)
			} else {
				fmt.Fprintf(out, "%s removed\n", p)
			}
		}
		if len(present) == 0 {
			return
		}
		fs, results, err := driver.AnalyzePaths(ctx, present, opts)
		if err != nil {
			log.Warn("re-check failed", "error", err)
			return
		}
		fs.SetBaseDir(dir)
		reportWatch(out, fs, results, prettyOpts)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func reportWatch(out io.Writer, fs *source.FileSet, results []driver.FileResult, opts diagfmt.PrettyOpts) {
	stamp := time.Now().Format("15:04:05")
	for _, r := range results {
		path := diagfmt.ResultPath(r, fs, opts.PathMode)
		if r.Success() && len(r.Result.Warnings) == 0 {
			fmt.Fprintf(out, "[%s] %s ok\n", stamp, path)
			continue
		}
		fmt.Fprintf(out, "[%s] %s\n", stamp, path)
		diagfmt.PrettyResult(out, r, fs, opts)
	}
}
