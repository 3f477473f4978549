package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"dol/internal/analyzer"
)

// ManifestName is the project manifest file name.
const ManifestName = "dol.toml"

// ErrNoManifest is returned when no dol.toml is found above a directory.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// Manifest mirrors dol.toml.
type Manifest struct {
	Package  PackageSection  `toml:"package"`
	Analyzer AnalyzerSection `toml:"analyzer"`
	Files    FilesSection    `toml:"files"`

	// Root is the directory holding the manifest; not part of the file.
	Root string `toml:"-"`
	// warningsSet tracks whether [analyzer].warnings was written explicitly.
	warningsSet bool
}

type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version,omitempty"`
}

type AnalyzerSection struct {
	Strategy       string `toml:"strategy"`
	Warnings       bool   `toml:"warnings"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type FilesSection struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// FindManifest walks up from startDir to locate dol.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest parses and validates a dol.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if _, err := analyzer.ParseStrategy(m.Analyzer.Strategy); err != nil {
		return nil, fmt.Errorf("%s: [analyzer].strategy: %w", path, err)
	}
	if m.Analyzer.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [analyzer].max_diagnostics must not be negative", path)
	}
	if _, err := NewFilter(m.Files.Include, m.Files.Exclude); err != nil {
		return nil, fmt.Errorf("%s: [files]: %w", path, err)
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	m.warningsSet = meta.IsDefined("analyzer", "warnings")
	m.Root = filepath.Dir(path)
	return &m, nil
}

// Discover finds and loads the manifest governing startDir. It returns
// ErrNoManifest when there is none.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return LoadManifest(path)
}

// AnalyzerOptions applies the manifest's [analyzer] section on top of base.
func (m *Manifest) AnalyzerOptions(base analyzer.Options) analyzer.Options {
	if m == nil {
		return base
	}
	if m.Analyzer.Strategy != "" {
		// validated in LoadManifest
		base.Strategy, _ = analyzer.ParseStrategy(m.Analyzer.Strategy)
	}
	if m.warningsSet {
		base.Warnings = m.Analyzer.Warnings
	}
	if m.Analyzer.MaxDiagnostics > 0 {
		base.MaxDiagnostics = m.Analyzer.MaxDiagnostics
	}
	return base
}

// Filter compiles the manifest's [files] patterns.
func (m *Manifest) Filter() (*Filter, error) {
	if m == nil {
		return NewFilter(nil, nil)
	}
	return NewFilter(m.Files.Include, m.Files.Exclude)
}

// DefaultManifest is what `dol init` writes.
func DefaultManifest(name string) *Manifest {
	return &Manifest{
		Package: PackageSection{Name: name, Version: "0.1.0"},
		Analyzer: AnalyzerSection{
			Strategy: analyzer.StrategyScoped.String(),
			Warnings: true,
		},
		Files: FilesSection{
			Include: []string{"**.dol"},
			Exclude: []string{},
		},
		warningsSet: true,
	}
}

// Encode writes m as TOML.
func (m *Manifest) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(m)
}
