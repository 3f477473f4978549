package driver

import (
	"fmt"
	"log/slog"
	"time"

	"dol/internal/analyzer"
	"dol/internal/ast"
	"dol/internal/diag"
	"dol/internal/logging"
	"dol/internal/observ"
	"dol/internal/project"
	"dol/internal/source"
	"dol/internal/version"
)

// Options configures a check run.
type Options struct {
	Analyzer analyzer.Options
	// Jobs bounds parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Filter selects files inside directories; nil accepts every .dol file.
	Filter   *project.Filter
	Cache    *DiskCache
	Progress ProgressSink
	Logger   *slog.Logger
	// Timings records per-file phase durations in FileResult.Timing.
	Timings bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.Discard()
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Result analyzer.Result
	// Err is set when the file could not be loaded; Result then carries a
	// matching IO diagnostic.
	Err    error
	Cached bool
	Timing *observ.Report
}

// Success reports whether the file loaded and analyzed without errors.
func (r FileResult) Success() bool {
	return r.Err == nil && r.Result.Success
}

// AnalyzeSource adds content to fileSet as a virtual file and analyzes it.
func AnalyzeSource(fileSet *source.FileSet, path string, content []byte, opts Options) FileResult {
	id := fileSet.AddVirtual(path, content)
	return analyzeLoaded(path, fileSet.Get(id), opts)
}

// AnalyzeFile loads path into fileSet and analyzes it. Load failures are
// reported both as the returned error and as an IO diagnostic.
func AnalyzeFile(fileSet *source.FileSet, path string, opts Options) (FileResult, error) {
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	id, err := fileSet.Load(path)
	if err != nil {
		res := loadFailure(path, err)
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return res, res.Err
	}
	return analyzeLoaded(path, fileSet.Get(id), opts), nil
}

// analyzeLoaded reports under path, the name the caller used, rather than the
// normalized sf.Path.
func analyzeLoaded(path string, sf *source.File, opts Options) FileResult {
	log := opts.logger()
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	start := time.Now()
	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})

	out := FileResult{Path: path, FileID: sf.ID}
	key := cacheKey(sf, opts.Analyzer)

	if opts.Cache != nil {
		idx := timer.Begin("cache")
		res, ok, err := opts.Cache.Lookup(key)
		timer.End(idx, "")
		if err != nil {
			log.Warn("cache read failed", "path", path, "error", err)
		}
		if ok {
			out.Result, out.Cached = res, true
		}
	}
	if !out.Cached {
		timer.Measure("analyze", func() {
			out.Result = analyzer.Analyze(string(sf.Content), opts.Analyzer)
		})
		if opts.Cache != nil {
			if err := opts.Cache.Store(key, out.Result); err != nil {
				log.Warn("cache write failed", "path", path, "error", err)
			}
		}
	}
	if timer != nil {
		rep := timer.Report()
		out.Timing = &rep
	}

	log.Debug("analyzed file",
		"path", path,
		"success", out.Result.Success,
		"errors", len(out.Result.Errors),
		"warnings", len(out.Result.Warnings),
		"cached", out.Cached,
	)
	status := StatusDone
	if !out.Result.Success {
		status = StatusError
	}
	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: status, Elapsed: time.Since(start), Cached: out.Cached})
	return out
}

func loadFailure(path string, err error) FileResult {
	d := diag.NewError(diag.IOLoadFileError, source.Position{}, "failed to load file: "+err.Error())
	return FileResult{
		Path: path,
		Err:  fmt.Errorf("load %s: %w", path, err),
		Result: analyzer.Result{
			AST:      []ast.Node{},
			Errors:   []diag.Diagnostic{d},
			Warnings: []diag.Diagnostic{},
			Metadata: analyzer.Metadata{CompilerVersion: version.Version},
		},
	}
}
