// Package diag defines the diagnostic model shared by the analyzer, the driver
// and the renderers.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for structural findings
//     (unbalanced braces, missing declarations, malformed declaration shapes).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format for terminals, perform IO or talk to the CLI.
// Rendering lives in internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: tri-level enum (Info, Warning, Error). Callers see it folded
//     into a Category: SyntaxError for errors, Warning for everything else.
//   - Code: compact numeric identifier with a stable string form (SYN2001).
//   - Message: human oriented text; keep it short and actionable.
//   - Position: 1-based line/column of the finding.
//   - Notes: optional secondary positions, e.g. where an unclosed brace opened.
//
// There are no fix suggestions: the analyzer reports and never repairs.
//
// # Emitting diagnostics
//
// Producers take a Reporter and use ReportError/ReportWarning, chaining
// WithNote before Emit. SplitReporter routes errors and warnings into separate
// bags, BagReporter stores into a Bag.
package diag
