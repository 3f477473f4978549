package driver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dol/internal/analyzer"
	"dol/internal/project"
	"dol/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	src := "spirit A {\n  spirit B {\n    pub fn f() {}\n  }\n}\nstray\n"
	res := analyzer.Analyze(src, analyzer.DefaultOptions())
	key := project.Combine(project.Digest{}, []byte(src))

	require.NoError(t, cache.Store(key, res))
	got, ok, err := cache.Lookup(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, res.Equal(got), "cached result differs: %+v", got)

	_, ok, err = cache.Lookup(project.Combine(project.Digest{}, []byte("other")))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiskCacheFailureResult(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	res := analyzer.Analyze("spirit A {\n", analyzer.DefaultOptions())
	key := project.Combine(project.Digest{}, []byte("k"))
	require.NoError(t, cache.Store(key, res))

	got, ok, err := cache.Lookup(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Success)
	assert.Equal(t, res.Errors[0].Notes, got.Errors[0].Notes)
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	key := project.Combine(project.Digest{}, []byte("k"))
	require.NoError(t, cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}))
	_, ok, err := cache.Lookup(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiskCacheNil(t *testing.T) {
	var cache *DiskCache
	require.NoError(t, cache.Store(project.Digest{}, analyzer.Result{}))
	_, ok, err := cache.Lookup(project.Digest{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, cache.DropAll())
}

func TestDiskCacheDropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := NewDiskCache(dir)
	require.NoError(t, err)
	key := project.Combine(project.Digest{}, []byte("k"))
	require.NoError(t, cache.Store(key, analyzer.Analyze("fn a() {}", analyzer.DefaultOptions())))
	require.NoError(t, cache.DropAll())
	_, ok, err := cache.Lookup(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("a.dol", []byte("fn a() {}")))
	scoped := cacheKey(sf, analyzer.DefaultOptions())
	legacy := cacheKey(sf, analyzer.Options{Strategy: analyzer.StrategyLegacy})
	assert.NotEqual(t, scoped, legacy)
	assert.Equal(t, scoped, cacheKey(sf, analyzer.DefaultOptions()))
}

func TestAnalyzeUsesCache(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	opts := Options{Analyzer: analyzer.DefaultOptions(), Cache: cache}

	first := AnalyzeSource(source.NewFileSet(), "a.dol", []byte(goodSource), opts)
	second := AnalyzeSource(source.NewFileSet(), "a.dol", []byte(goodSource), opts)
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.True(t, first.Result.Equal(second.Result))
}
