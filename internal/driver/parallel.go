package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"dol/internal/project"
	"dol/internal/source"
)

// AnalyzeDir analyzes every project file under dir in parallel.
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	return AnalyzePaths(ctx, []string{dir}, opts)
}

// AnalyzePaths analyzes files and directories in parallel. Results follow
// the sorted file order and do not depend on scheduling.
func AnalyzePaths(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := CollectFiles(ctx, paths, opts.Filter)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	if len(paths) == 1 {
		if info, statErr := os.Stat(paths[0]); statErr == nil && info.IsDir() {
			fileSet.SetBaseDir(paths[0])
		}
	}
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: загружаем файлы заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				results[i] = loadFailure(path, loadErr)
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			results[i] = analyzeLoaded(path, fileSet.Get(fileIDs[path]), opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	opts.logger().Debug("check finished", "files", len(files), "jobs", jobs)
	return fileSet, results, nil
}

// CollectFiles expands directories through filter and returns the sorted,
// deduplicated file list. Explicit file arguments are kept whatever their
// extension.
func CollectFiles(ctx context.Context, paths []string, filter *project.Filter) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		found, err := filter.Collect(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		for _, f := range found {
			addFile(f)
		}
	}

	sort.Strings(files)
	return files, nil
}
