package analyzer

import (
	"slices"

	"dol/internal/ast"
	"dol/internal/diag"
)

// Result is the outcome of one analysis. Success is true exactly when Errors
// is empty.
type Result struct {
	Success  bool              `json:"success"`
	AST      []ast.Node        `json:"ast"`
	Errors   []diag.Diagnostic `json:"errors"`
	Warnings []diag.Diagnostic `json:"warnings"`
	Metadata Metadata          `json:"metadata"`
}

// Metadata summarises the analyzed source. Counts cover the whole source,
// nested declarations included.
type Metadata struct {
	CompilerVersion string `json:"compiler_version"`
	SpiritCount     int    `json:"spirit_count"`
	FunctionCount   int    `json:"function_count"`
	SourceLineCount int    `json:"source_line_count"`
}

// Diagnostics returns errors and warnings merged in source order.
func (r Result) Diagnostics() []diag.Diagnostic {
	bag := diag.NewBag(0)
	for _, d := range r.Errors {
		bag.Add(d)
	}
	for _, d := range r.Warnings {
		bag.Add(d)
	}
	bag.Sort()
	return bag.Items()
}

// Equal reports whether two results carry the same values.
func (r Result) Equal(other Result) bool {
	if r.Success != other.Success || r.Metadata != other.Metadata {
		return false
	}
	if !slices.EqualFunc(r.Errors, other.Errors, sameDiagnostic) ||
		!slices.EqualFunc(r.Warnings, other.Warnings, sameDiagnostic) {
		return false
	}
	return sameNodes(r.AST, other.AST)
}

func sameDiagnostic(a, b diag.Diagnostic) bool {
	return a.Severity == b.Severity && a.Code == b.Code && a.Message == b.Message &&
		a.Position == b.Position && slices.Equal(a.Notes, b.Notes)
}

func sameNodes(a, b []ast.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch x := a[i].(type) {
		case *ast.Spirit:
			y, ok := b[i].(*ast.Spirit)
			if !ok || x.Name != y.Name || x.Line != y.Line || !sameNodes(x.Body, y.Body) {
				return false
			}
		case *ast.Function:
			y, ok := b[i].(*ast.Function)
			if !ok || x.Name != y.Name || x.Line != y.Line || x.Visibility != y.Visibility ||
				x.Body != y.Body || !slices.Equal(x.Params, y.Params) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
