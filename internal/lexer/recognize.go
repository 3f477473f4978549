package lexer

import (
	"regexp"
	"strings"

	"dol/internal/token"
)

// DeclKind tells which declaration shape a line matched.
type DeclKind uint8

const (
	DeclNone DeclKind = iota
	DeclSpirit
	DeclFunction
)

func (k DeclKind) String() string {
	switch k {
	case DeclSpirit:
		return "spirit"
	case DeclFunction:
		return "function"
	default:
		return "none"
	}
}

// Decl is the outcome of matching one trimmed line.
type Decl struct {
	Kind DeclKind
	Name string
	// Public is set for `pub fn`.
	Public bool
	// OpensBrace is set when a spirit header ends with its `{` marker.
	OpensBrace bool
}

// Matched reports whether the line is a declaration.
func (d Decl) Matched() bool { return d.Kind != DeclNone }

var (
	spiritDecl   = regexp.MustCompile(`^spirit\s+(\w+)\s*(\{)?`)
	functionDecl = regexp.MustCompile(`^(pub\s+)?fn\s+(\w+)\s*\(`)
)

// Recognize matches a trimmed line against the declaration shapes. Spirit is
// tried first; a line never yields both.
func Recognize(text string) Decl {
	if m := spiritDecl.FindStringSubmatch(text); m != nil {
		return Decl{Kind: DeclSpirit, Name: m[1], OpensBrace: m[2] != ""}
	}
	if m := functionDecl.FindStringSubmatch(text); m != nil {
		return Decl{Kind: DeclFunction, Name: m[2], Public: m[1] != ""}
	}
	return Decl{}
}

// Malformed reports whether text starts like a declaration (with `spirit`,
// `fn` or `pub fn` as whole words) yet fails to match its shape. The returned
// kind is the keyword that introduced the attempt.
func Malformed(text string) (token.Kind, bool) {
	kw, ok := token.LeadingKeyword(text)
	if !ok {
		return token.Invalid, false
	}
	if kw == token.KwPub {
		_, rest := token.LeadingWord(text)
		trimmed := strings.TrimLeft(rest, " \t")
		if len(trimmed) == len(rest) {
			return token.Invalid, false
		}
		if next, ok := token.LeadingKeyword(trimmed); !ok || next != token.KwFn {
			return token.Invalid, false
		}
		kw = token.KwFn
	}
	if Recognize(text).Matched() {
		return token.Invalid, false
	}
	return kw, true
}
