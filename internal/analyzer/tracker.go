package analyzer

import (
	"dol/internal/ast"
	"dol/internal/diag"
	"dol/internal/lexer"
	"dol/internal/source"
	"dol/internal/token"
)

// tracker owns brace depth and open containers during a pass.
type tracker interface {
	openSpirit(s *ast.Spirit)
	addFunction(f *ast.Function)
	brace(b lexer.Brace)
	depth() int
	// outside reports whether no spirit is open.
	outside() bool
	// residual explains a non-zero final depth, when the tracker knows where
	// the offending brace is.
	residual() (diag.Note, bool)
	// finish drains the tracker into the top-level sequence.
	finish() []ast.Node
}

func newTracker(s Strategy) tracker {
	if s == StrategyLegacy {
		return &legacyTracker{top: []ast.Node{}}
	}
	return &scopedTracker{top: []ast.Node{}}
}

// frame is an open spirit with the depth it was declared at.
type frame struct {
	spirit *ast.Spirit
	base   int
}

type scopedTracker struct {
	level int
	stack []frame
	top   []ast.Node
	// opens holds positions of unmatched '{', innermost last.
	opens []source.Position
	stray *source.Position
}

func (t *scopedTracker) openSpirit(s *ast.Spirit) {
	t.stack = append(t.stack, frame{spirit: s, base: t.level})
}

func (t *scopedTracker) addFunction(f *ast.Function) {
	t.attach(f)
}

// attach appends n to the innermost open spirit or to the top level.
func (t *scopedTracker) attach(n ast.Node) {
	if len(t.stack) > 0 {
		t.stack[len(t.stack)-1].spirit.Append(n)
		return
	}
	t.top = append(t.top, n)
}

func (t *scopedTracker) brace(b lexer.Brace) {
	if b.Kind == token.LBrace {
		t.level++
		t.opens = append(t.opens, b.Pos)
		return
	}
	t.level--
	if n := len(t.opens); n > 0 {
		t.opens = t.opens[:n-1]
	} else if t.stray == nil {
		pos := b.Pos
		t.stray = &pos
	}
	for len(t.stack) > 0 && t.level <= t.stack[len(t.stack)-1].base {
		t.pop()
	}
}

func (t *scopedTracker) pop() {
	last := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	t.attach(last.spirit)
}

func (t *scopedTracker) depth() int { return t.level }

func (t *scopedTracker) outside() bool { return len(t.stack) == 0 }

func (t *scopedTracker) residual() (diag.Note, bool) {
	switch {
	case t.level > 0 && len(t.opens) > 0:
		return diag.Note{Position: t.opens[len(t.opens)-1], Msg: "unclosed '{' opened here"}, true
	case t.level < 0 && t.stray != nil:
		return diag.Note{Position: *t.stray, Msg: "unmatched '}'"}, true
	}
	return diag.Note{}, false
}

// finish closes whatever is still open so that the tree keeps every
// recognized declaration; the missing braces are reported separately.
func (t *scopedTracker) finish() []ast.Node {
	for len(t.stack) > 0 {
		t.pop()
	}
	return t.top
}

// legacyTracker reproduces the single-slot behavior: a new spirit replaces
// the open one, and the open spirit closes on the first return to depth 0.
type legacyTracker struct {
	level int
	open  *ast.Spirit
	top   []ast.Node
}

func (t *legacyTracker) openSpirit(s *ast.Spirit) { t.open = s }

func (t *legacyTracker) addFunction(f *ast.Function) {
	if t.open != nil {
		t.open.Append(f)
		return
	}
	t.top = append(t.top, f)
}

func (t *legacyTracker) brace(b lexer.Brace) {
	if b.Kind == token.LBrace {
		t.level++
		return
	}
	t.level--
	if t.level == 0 && t.open != nil {
		t.top = append(t.top, t.open)
		t.open = nil
	}
}

func (t *legacyTracker) depth() int { return t.level }

func (t *legacyTracker) outside() bool { return t.open == nil }

func (t *legacyTracker) residual() (diag.Note, bool) { return diag.Note{}, false }

// finish drops a spirit that never closed.
func (t *legacyTracker) finish() []ast.Node { return t.top }
