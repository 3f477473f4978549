package project

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatch(t *testing.T) {
	f, err := NewFilter([]string{"src/**.dol", "main.dol"}, []string{"src/gen/**", "*_skip.dol"})
	require.NoError(t, err)

	assert.True(t, f.Match("main.dol"))
	assert.True(t, f.Match("src/a.dol"))
	assert.True(t, f.Match("src/deep/b.dol"))
	assert.False(t, f.Match("src/a.txt"))
	assert.False(t, f.Match("other/c.dol"))
	assert.False(t, f.Match("src/gen/d.dol"))
	assert.False(t, f.Match("src/e_skip.dol"))
}

func TestFilterEmptyIncludeAcceptsAllSources(t *testing.T) {
	f, err := NewFilter(nil, nil)
	require.NoError(t, err)
	assert.True(t, f.Match("any/where.dol"))
	assert.False(t, f.Match("README.md"))

	var nilFilter *Filter
	assert.True(t, nilFilter.Match("x.dol"))
}

func TestFilterSkipDir(t *testing.T) {
	f, err := NewFilter(nil, []string{"vendor/**", "build"})
	require.NoError(t, err)
	assert.True(t, f.SkipDir("vendor"))
	assert.True(t, f.SkipDir("build"))
	assert.True(t, f.SkipDir(".git"))
	assert.False(t, f.SkipDir("src"))
	assert.False(t, f.SkipDir("."))
}

func TestFilterCollect(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"b.dol", "a.dol", "sub/c.dol", "vendor/v.dol", ".hidden/h.dol", "notes.txt"} {
		writeFile(t, filepath.Join(root, p), "fn x() {}\n")
	}
	f, err := NewFilter(nil, []string{"vendor/**"})
	require.NoError(t, err)

	files, err := f.Collect(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.dol"),
		filepath.Join(root, "b.dol"),
		filepath.Join(root, "sub", "c.dol"),
	}, files)
}

func TestFilterCollectCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.dol"), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var f *Filter
	_, err := f.Collect(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDigest(t *testing.T) {
	a := Combine(Digest{}, []byte("spirit A {}"))
	b := Combine(Digest{}, []byte("spirit B {}"))
	assert.NotEqual(t, a, b)
	assert.Len(t, a.String(), 64)
	assert.NotEqual(t, Combine(a, []byte("x")), Combine(a, []byte("y")))
}
