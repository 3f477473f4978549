// Package dol is the embedding API of the DOL structural analyzer.
//
// A typical caller does:
//
//	dol.Initialize()
//	res := dol.Compile(src)
//	if !res.Success {
//		for _, d := range res.Errors { ... }
//	}
//
// Compile never panics and never returns a Go error: every problem found in
// the input is reported as a diagnostic in the result.
package dol

import (
	"log/slog"
	"sync"

	"dol/internal/analyzer"
	"dol/internal/ast"
	"dol/internal/diag"
	"dol/internal/format"
	"dol/internal/source"
	"dol/internal/version"
)

type (
	CompileResult = analyzer.Result
	Metadata      = analyzer.Metadata
	Options       = analyzer.Options
	Strategy      = analyzer.Strategy
	Node          = ast.Node
	Spirit        = ast.Spirit
	Function      = ast.Function
	Diagnostic    = diag.Diagnostic
	Position      = source.Position
)

const (
	StrategyScoped = analyzer.StrategyScoped
	StrategyLegacy = analyzer.StrategyLegacy
)

type runtimeState struct {
	mu          sync.RWMutex
	initialized bool
	logger      *slog.Logger
}

var state = runtimeState{logger: slog.New(slog.DiscardHandler)}

// Option configures Initialize.
type Option func(*runtimeState)

// WithLogger routes debug records of Compile to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *runtimeState) {
		if l != nil {
			s.logger = l
		}
	}
}

// Initialize prepares the package. Calling it again is a no-op until Shutdown.
func Initialize(opts ...Option) {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.initialized {
		return
	}
	for _, opt := range opts {
		opt(&state)
	}
	state.initialized = true
	state.logger.Debug("dol initialized", "version", version.Version)
}

// Shutdown resets the package to its pre-Initialize state.
func Shutdown() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.initialized = false
	state.logger = slog.New(slog.DiscardHandler)
}

// Initialized reports whether Initialize has run since the last Shutdown.
func Initialized() bool {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.initialized
}

func logger() *slog.Logger {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.logger
}

// DefaultOptions returns the options used by Compile.
func DefaultOptions() Options {
	return analyzer.DefaultOptions()
}

// Compile analyzes src with the default options.
func Compile(src string) CompileResult {
	return CompileWith(src, analyzer.DefaultOptions())
}

// CompileWith analyzes src with opts.
func CompileWith(src string, opts Options) CompileResult {
	res := analyzer.Analyze(src, opts)
	logger().Debug("compiled",
		"strategy", opts.Strategy.String(),
		"success", res.Success,
		"spirits", res.Metadata.SpiritCount,
		"functions", res.Metadata.FunctionCount,
		"lines", res.Metadata.SourceLineCount,
	)
	return res
}

// Validate reports whether src compiles without errors.
func Validate(src string) bool {
	return Compile(src).Success
}

// Version returns the analyzer version.
func Version() string {
	return version.Version
}

// Format returns src unchanged.
func Format(src string) string {
	return format.Source(src)
}

// Walk visits nodes depth-first in source order. depth is 0 for top-level
// declarations; returning false skips a spirit's body.
func Walk(nodes []Node, visit func(n Node, depth int) bool) {
	ast.Walk(nodes, visit)
}

// Find returns the first declaration named name, or nil.
func Find(nodes []Node, name string) Node {
	return ast.Find(nodes, name)
}

// Functions returns every function declaration in nodes, nested ones
// included, in source order.
func Functions(nodes []Node) []*Function {
	var out []*Function
	ast.Inspect(nodes, func(n Node) bool {
		if fn, ok := n.(*Function); ok {
			out = append(out, fn)
		}
		return true
	})
	return out
}
