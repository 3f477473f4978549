package analyzer

import (
	"fmt"
	"strings"
)

// Strategy selects how containers and braces are tracked.
type Strategy uint8

const (
	// StrategyScoped keeps a stack of open spirits. Each spirit closes when
	// brace depth returns to the depth it was declared at, so spirits nest.
	StrategyScoped Strategy = iota
	// StrategyLegacy keeps a single open-spirit slot that closes on the first
	// return to depth zero and counts every brace byte.
	StrategyLegacy
)

func (s Strategy) String() string {
	switch s {
	case StrategyScoped:
		return "scoped"
	case StrategyLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// ParseStrategy accepts the names printed by Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "scoped":
		return StrategyScoped, nil
	case "legacy":
		return StrategyLegacy, nil
	default:
		return StrategyScoped, fmt.Errorf("unknown strategy %q (want scoped or legacy)", name)
	}
}

// Options controls a single analysis. The zero value is the scoped strategy
// with warnings off; use DefaultOptions for the usual setup.
type Options struct {
	Strategy Strategy
	// Warnings enables non-fatal diagnostics. Ignored by StrategyLegacy.
	Warnings bool
	// MaxDiagnostics caps the number of warnings kept; 0 means unlimited.
	// Errors are never dropped.
	MaxDiagnostics int
}

// DefaultOptions returns the scoped strategy with warnings enabled.
func DefaultOptions() Options {
	return Options{Strategy: StrategyScoped, Warnings: true}
}

func (o Options) warningsEnabled() bool {
	return o.Warnings && o.Strategy != StrategyLegacy
}
