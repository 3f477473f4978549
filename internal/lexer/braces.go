package lexer

import (
	"strings"

	"dol/internal/source"
	"dol/internal/token"
)

// Mode selects how much of the line the brace scanner understands.
type Mode uint8

const (
	// ModeAware skips braces inside string literals, after `//` and inside
	// `/* */` comments. Block comments may span lines.
	ModeAware Mode = iota
	// ModeRaw counts every brace byte.
	ModeRaw
)

// Brace is one counted brace occurrence.
type Brace struct {
	Kind token.Kind // LBrace or RBrace
	Pos  source.Position
}

// LineState describes what the scanner found on one line.
type LineState struct {
	// Code is the byte offset in Raw of the first byte that is neither blank
	// nor inside a comment, or -1 when the line has none. ModeRaw knows no
	// comments and reports the first non-blank byte.
	Code int
}

// BraceScanner finds structural braces line by line. It keeps block comment
// state between lines, so lines must be fed in order.
type BraceScanner struct {
	mode    Mode
	inBlock bool
}

func NewBraceScanner(mode Mode) *BraceScanner {
	return &BraceScanner{mode: mode}
}

// Scan calls emit for every brace of line.Raw that counts, left to right.
func (s *BraceScanner) Scan(line source.Line, emit func(Brace)) LineState {
	st := LineState{Code: -1}
	c := NewCursor(line.Raw)
	if s.mode == ModeRaw {
		if lead := strings.TrimLeft(line.Raw, blanks); lead != "" {
			st.Code = len(line.Raw) - len(lead)
		}
		for !c.EOF() {
			s.brace(&c, line.Number, emit)
		}
		return st
	}
	for !c.EOF() {
		if s.inBlock {
			if c.Eat2('*', '/') {
				s.inBlock = false
				continue
			}
			c.Bump()
			continue
		}
		b := c.Peek()
		if st.Code < 0 && !strings.ContainsRune(blanks, rune(b)) && !atComment(&c) {
			st.Code = c.Off
		}
		switch b {
		case '/':
			if c.Eat2('/', '/') {
				return st
			}
			if c.Eat2('/', '*') {
				s.inBlock = true
				continue
			}
			c.Bump()
		case '"', '\'':
			c.Bump()
			skipString(&c, b)
		default:
			s.brace(&c, line.Number, emit)
		}
	}
	return st
}

func (s *BraceScanner) brace(c *Cursor, lineNo int, emit func(Brace)) {
	col := c.Column()
	switch c.Bump() {
	case '{':
		emit(Brace{Kind: token.LBrace, Pos: source.At(lineNo, col)})
	case '}':
		emit(Brace{Kind: token.RBrace, Pos: source.At(lineNo, col)})
	}
}

const blanks = " \t\r\f\v"

func atComment(c *Cursor) bool {
	b0, b1, ok := c.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}

// skipString advances past a literal opened by quote. An unterminated
// literal ends with the line.
func skipString(c *Cursor, quote byte) {
	for !c.EOF() {
		switch c.Bump() {
		case '\\':
			c.Bump()
		case quote:
			return
		}
	}
}
