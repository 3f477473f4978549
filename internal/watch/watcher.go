// Package watch re-runs a callback when project sources change on disk.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"dol/internal/project"
)

// DefaultDebounce is the quiet period after the last event before a batch is
// delivered.
const DefaultDebounce = 150 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	Filter   *project.Filter
	Logger   *slog.Logger
}

// Watcher watches a directory tree for changes to .dol files.
type Watcher struct {
	root    string
	fsw     *fsnotify.Watcher
	opts    Options
	log     *slog.Logger
	pending map[string]struct{}
}

// New creates a watcher over root and every non-excluded directory below it.
func New(root string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:    filepath.Clean(root),
		fsw:     fsw,
		opts:    opts,
		log:     log,
		pending: make(map[string]struct{}),
	}
	if err := w.addTree(w.root, false); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Root returns the watched directory.
func (w *Watcher) Root() string { return w.root }

// Run delivers batches of changed files, sorted, to onChange until ctx is
// cancelled. onChange runs on the watcher goroutine; events arriving while it
// runs are batched for the next call.
func (w *Watcher) Run(ctx context.Context, onChange func([]string)) error {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			timerC = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)

		case <-timerC:
			timerC = nil
			if batch := w.flush(); len(batch) > 0 {
				onChange(batch)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// handle records ev and reports whether something was queued.
func (w *Watcher) handle(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	if ev.Has(fsnotify.Create) && isDir(ev.Name) {
		if w.opts.Filter.SkipDir(w.rel(ev.Name)) {
			return false
		}
		if err := w.addTree(ev.Name, true); err != nil {
			w.log.Warn("failed to watch new directory", "path", ev.Name, "error", err)
		}
		return len(w.pending) > 0
	}
	if !w.opts.Filter.Match(w.rel(ev.Name)) {
		return false
	}
	w.log.Debug("source changed", "path", ev.Name, "op", ev.Op.String())
	w.pending[ev.Name] = struct{}{}
	return true
}

// addTree registers root and its subdirectories. With enqueue set, files
// already present are queued too: they may have been written before the
// directory watch was in place.
func (w *Watcher) addTree(root string, enqueue bool) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p != root {
				return nil
			}
			return err
		}
		rel := w.rel(p)
		if d.IsDir() {
			if p != w.root && w.opts.Filter.SkipDir(rel) {
				return filepath.SkipDir
			}
			return w.fsw.Add(p)
		}
		if enqueue && w.opts.Filter.Match(rel) {
			w.pending[p] = struct{}{}
		}
		return nil
	})
}

func (w *Watcher) flush() []string {
	batch := make([]string, 0, len(w.pending))
	for p := range w.pending {
		batch = append(batch, p)
	}
	clear(w.pending)
	slices.Sort(batch)
	return batch
}

func (w *Watcher) rel(p string) string {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return p
	}
	return rel
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
