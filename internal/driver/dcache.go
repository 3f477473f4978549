package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"dol/internal/analyzer"
	"dol/internal/ast"
	"dol/internal/diag"
	"dol/internal/project"
	"dol/internal/source"
	"dol/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты анализа на диске, по ключу из хеша содержимого,
// версии анализатора и опций.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached form of analyzer.Result.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Success  bool
	Nodes    []ast.Record
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
	Metadata analyzer.Metadata
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func cacheKey(sf *source.File, opts analyzer.Options) project.Digest {
	warnings := "0"
	if opts.Warnings {
		warnings = "1"
	}
	return project.Combine(project.Digest(sf.Hash),
		[]byte(version.Version),
		[]byte(opts.Strategy.String()),
		[]byte(warnings),
		[]byte(strconv.Itoa(opts.MaxDiagnostics)),
	)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// Результаты лежат в подкаталоге "results", так их проще найти и очистить.
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (found bool, err error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// Lookup returns the cached result for key. Entries written by another
// schema are treated as missing.
func (c *DiskCache) Lookup(key project.Digest) (analyzer.Result, bool, error) {
	var payload DiskPayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok {
		return analyzer.Result{}, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return analyzer.Result{}, false, nil
	}
	res, err := payloadToResult(&payload)
	if err != nil {
		return analyzer.Result{}, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return res, true, nil
}

// Store caches res under key.
func (c *DiskCache) Store(key project.Digest, res analyzer.Result) error {
	return c.Put(key, resultToPayload(res))
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func resultToPayload(res analyzer.Result) *DiskPayload {
	return &DiskPayload{
		Schema:   diskCacheSchemaVersion,
		Success:  res.Success,
		Nodes:    ast.ToRecords(res.AST),
		Errors:   res.Errors,
		Warnings: res.Warnings,
		Metadata: res.Metadata,
	}
}

func payloadToResult(p *DiskPayload) (analyzer.Result, error) {
	nodes, err := ast.FromRecords(p.Nodes)
	if err != nil {
		return analyzer.Result{}, err
	}
	res := analyzer.Result{
		Success:  p.Success,
		AST:      nodes,
		Errors:   p.Errors,
		Warnings: p.Warnings,
		Metadata: p.Metadata,
	}
	if res.Errors == nil {
		res.Errors = []diag.Diagnostic{}
	}
	if res.Warnings == nil {
		res.Warnings = []diag.Diagnostic{}
	}
	if res.Success != (len(res.Errors) == 0) {
		return analyzer.Result{}, errors.New("success flag disagrees with errors")
	}
	return res, nil
}
