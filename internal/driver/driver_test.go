package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dol/internal/analyzer"
	"dol/internal/diag"
	"dol/internal/logging"
	"dol/internal/project"
	"dol/internal/source"
)

const (
	goodSource   = "spirit Foo {\n  fn bar() {}\n}\n"
	brokenSource = "spirit Broken {\n"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) final(file string) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].File == file {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func TestAnalyzeSource(t *testing.T) {
	fs := source.NewFileSet()
	res := AnalyzeSource(fs, "<stdin>", []byte(goodSource), Options{Analyzer: analyzer.DefaultOptions()})
	assert.True(t, res.Success())
	assert.Equal(t, "<stdin>", res.Path)
	assert.Equal(t, 1, res.Result.Metadata.SpiritCount)
	assert.Nil(t, res.Timing)
	require.NotNil(t, fs.Get(res.FileID))
}

func TestAnalyzeFileMissing(t *testing.T) {
	fs := source.NewFileSet()
	res, err := AnalyzeFile(fs, filepath.Join(t.TempDir(), "missing.dol"), Options{})
	require.Error(t, err)
	assert.False(t, res.Success())
	require.Len(t, res.Result.Errors, 1)
	assert.Equal(t, diag.IOLoadFileError, res.Result.Errors[0].Code)
}

func TestAnalyzeFileTimings(t *testing.T) {
	root := writeTree(t, map[string]string{"a.dol": goodSource})
	res, err := AnalyzeFile(source.NewFileSet(), filepath.Join(root, "a.dol"), Options{
		Analyzer: analyzer.DefaultOptions(),
		Timings:  true,
		Logger:   logging.NewTestLogger(t),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Timing)
	assert.Equal(t, "analyze", res.Timing.Phases[0].Name)
}

func TestAnalyzeDirParallel(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.dol":           goodSource,
		"b.dol":           brokenSource,
		"nested/c.dol":    "fn standalone() {}\n",
		"vendor/v.dol":    brokenSource,
		"notes/readme.md": "not source",
	})
	filter, err := project.NewFilter(nil, []string{"vendor/**"})
	require.NoError(t, err)
	rec := &recorder{}

	fs, results, err := AnalyzeDir(context.Background(), root, Options{
		Analyzer: analyzer.DefaultOptions(),
		Jobs:     2,
		Filter:   filter,
		Progress: rec,
	})
	require.NoError(t, err)
	assert.Equal(t, root, fs.BaseDir())
	require.Len(t, results, 3)

	assert.Equal(t, filepath.Join(root, "a.dol"), results[0].Path)
	assert.True(t, results[0].Success())
	assert.False(t, results[1].Success())
	assert.Equal(t, filepath.Join(root, "nested", "c.dol"), results[2].Path)
	assert.True(t, results[2].Success())

	ev, ok := rec.final(results[1].Path)
	require.True(t, ok)
	assert.Equal(t, StatusError, ev.Status)
	ev, ok = rec.final(results[0].Path)
	require.True(t, ok)
	assert.Equal(t, StatusDone, ev.Status)
}

func TestAnalyzePathsExplicitFileAndDedup(t *testing.T) {
	root := writeTree(t, map[string]string{"x.txt": goodSource, "y.dol": goodSource})
	x := filepath.Join(root, "x.txt")
	_, results, err := AnalyzePaths(context.Background(), []string{x, root, x}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, x, results[0].Path)
}

func TestAnalyzePathsErrors(t *testing.T) {
	_, _, err := AnalyzePaths(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, Options{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = AnalyzePaths(ctx, []string{t.TempDir()}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeEmptyDir(t *testing.T) {
	fs, results, err := AnalyzeDir(context.Background(), t.TempDir(), Options{})
	require.NoError(t, err)
	assert.NotNil(t, fs)
	assert.Empty(t, results)
}

func TestChanSinkAndSinkFunc(t *testing.T) {
	ch := make(chan Event, 1)
	ChanSink(ch).OnEvent(Event{File: "a"})
	assert.Equal(t, "a", (<-ch).File)

	var got string
	SinkFunc(func(ev Event) { got = ev.File }).OnEvent(Event{File: "b"})
	assert.Equal(t, "b", got)
}

func TestCollectFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.dol":         goodSource,
		"sub/b.dol":     goodSource,
		"sub/skip.txt":  "x",
		".git/c.dol":    goodSource,
		"vendor/v.dol":  goodSource,
		"explicit.text": goodSource,
	})
	filter, err := project.NewFilter(nil, []string{"vendor/**"})
	require.NoError(t, err)

	files, err := CollectFiles(context.Background(), []string{
		filepath.Join(root, "explicit.text"),
		root,
		filepath.Join(root, "a.dol"),
	}, filter)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.dol"),
		filepath.Join(root, "explicit.text"),
		filepath.Join(root, "sub", "b.dol"),
	}, files)
}
