package diag

import "dol/internal/source"

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), SplitReporter.
type Reporter interface {
	Report(code Code, sev Severity, pos source.Position, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, pos source.Position, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, pos, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, pos source.Position, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, pos, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, pos source.Position, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, pos, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(pos source.Position, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(pos, msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Position, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, pos source.Position, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Position: pos, Notes: notes,
	})
}

// SplitReporter routes errors and lesser diagnostics to separate reporters.
type SplitReporter struct {
	Errors   Reporter
	Warnings Reporter
}

func (r SplitReporter) Report(code Code, sev Severity, pos source.Position, msg string, notes []Note) {
	next := r.Warnings
	if sev >= SevError {
		next = r.Errors
	}
	if next != nil {
		next.Report(code, sev, pos, msg, notes)
	}
}
