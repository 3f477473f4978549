package analyzer

import (
	"fmt"
	"strings"

	"dol/internal/ast"
	"dol/internal/diag"
	"dol/internal/lexer"
	"dol/internal/source"
	"dol/internal/token"
	"dol/internal/version"
)

const (
	msgExpectDeclaration = "expected a spirit or function declaration"
	msgUnbalancedBraces  = "unbalanced braces: residual depth %d"
)

// scanState is the per-invocation state of one pass.
type scanState struct {
	opts      Options
	tracker   tracker
	braces    *lexer.BraceScanner
	errors    *diag.Bag
	warnings  *diag.Bag
	reporter  diag.Reporter
	spirits   int
	functions int
	// params is the number of parentheses a function header left open.
	params int
	// pending holds the braces of the current line until it is recognized.
	pending []lexer.Brace
}

func newScanState(opts Options) *scanState {
	mode := lexer.ModeAware
	if opts.Strategy == StrategyLegacy {
		mode = lexer.ModeRaw
	}
	st := &scanState{
		opts:     opts,
		tracker:  newTracker(opts.Strategy),
		braces:   lexer.NewBraceScanner(mode),
		errors:   diag.NewBag(0),
		warnings: diag.NewBag(opts.MaxDiagnostics),
	}
	st.reporter = diag.SplitReporter{
		Errors:   diag.BagReporter{Bag: st.errors},
		Warnings: diag.BagReporter{Bag: st.warnings},
	}
	return st
}

// Analyze runs one pass over src. It never fails: every problem is reported
// through the result's diagnostics.
func Analyze(src string, opts Options) Result {
	st := newScanState(opts)
	for line := range source.Lines(src) {
		st.line(line)
	}
	return st.finish(src)
}

func (st *scanState) line(line source.Line) {
	if line.Text == "" {
		return
	}
	if st.opts.Strategy == StrategyLegacy {
		if line.Trivia() {
			return
		}
		st.declare(line.Number, lexer.Recognize(line.Text))
		st.braces.Scan(line, st.tracker.brace)
		return
	}

	// Braces are applied after recognition: a spirit's base depth is the
	// depth before its own `{`.
	st.pending = st.pending[:0]
	ls := st.braces.Scan(line, st.collect)
	if ls.Code >= 0 {
		st.code(line.Number, strings.TrimSpace(line.Raw[ls.Code:]))
	}
	for _, b := range st.pending {
		st.tracker.brace(b)
	}
}

func (st *scanState) collect(b lexer.Brace) {
	st.pending = append(st.pending, b)
}

// code handles the part of a line that follows leading comments.
func (st *scanState) code(lineNo int, text string) {
	depth, outside := st.tracker.depth(), st.tracker.outside()
	decl := lexer.Recognize(text)
	st.declare(lineNo, decl)
	switch {
	case decl.Matched():
		st.params = 0
		if decl.Kind == lexer.DeclFunction {
			st.params = max(parenDelta(text), 0)
		}
	case st.params > 0:
		// продолжение заголовка функции
		st.params = max(st.params+parenDelta(text), 0)
	case st.opts.warningsEnabled():
		st.inspect(lineNo, text, depth == 0 && outside)
	}
}

func parenDelta(text string) int {
	return strings.Count(text, token.LParen.Lexeme()) - strings.Count(text, token.RParen.Lexeme())
}

func (st *scanState) declare(lineNo int, decl lexer.Decl) {
	at := source.At(lineNo, 1).Line
	switch decl.Kind {
	case lexer.DeclSpirit:
		st.spirits++
		st.tracker.openSpirit(ast.NewSpirit(decl.Name, at))
	case lexer.DeclFunction:
		st.functions++
		vis := ast.VisPrivate
		if decl.Public {
			vis = ast.VisPublic
		}
		st.tracker.addFunction(ast.NewFunction(decl.Name, vis, at))
	}
}

// inspect reports warnings for a line that is not a declaration.
func (st *scanState) inspect(lineNo int, text string, topLevel bool) {
	pos := source.At(lineNo, 1)
	if kw, ok := lexer.Malformed(text); ok {
		what := "spirit"
		if kw == token.KwFn {
			what = "function"
		}
		diag.ReportWarning(st.reporter, diag.SynMalformedDeclaration, pos,
			fmt.Sprintf("malformed %s declaration", what)).Emit()
		return
	}
	if !topLevel || bracesOnly(text) {
		return
	}
	word := strings.Fields(text)[0]
	diag.ReportWarning(st.reporter, diag.SynUnexpectedTopLevel, pos,
		fmt.Sprintf("unexpected %q at top level", word)).Emit()
}

func bracesOnly(text string) bool {
	return strings.Trim(text, "{} \t;") == ""
}

func (st *scanState) finish(src string) Result {
	lines := source.CountLines(src)

	if depth := st.tracker.depth(); depth != 0 {
		b := diag.ReportError(st.reporter, diag.SynUnbalancedBraces, source.At(max(lines, 1), 1),
			fmt.Sprintf(msgUnbalancedBraces, depth))
		if note, ok := st.tracker.residual(); ok {
			b.WithNote(note.Position, note.Msg)
		}
		b.Emit()
	}
	if st.missingContent(src) {
		diag.ReportError(st.reporter, diag.SynExpectDeclaration, source.LineStart(1), msgExpectDeclaration).Emit()
	}

	return Result{
		Success:  !st.errors.HasErrors(),
		AST:      st.tracker.finish(),
		Errors:   st.errors.Snapshot(),
		Warnings: st.warnings.Snapshot(),
		Metadata: Metadata{
			CompilerVersion: version.Version,
			SpiritCount:     st.spirits,
			FunctionCount:   st.functions,
			SourceLineCount: lines,
		},
	}
}

func (st *scanState) missingContent(src string) bool {
	if st.spirits > 0 {
		return false
	}
	if st.opts.Strategy == StrategyLegacy {
		return !strings.Contains(src, token.KwFn.Lexeme())
	}
	return st.functions == 0
}
