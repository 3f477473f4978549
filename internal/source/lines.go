package source

import (
	"iter"
	"strings"
)

// LineCommentMarker starts a comment that runs to the end of the line.
const LineCommentMarker = "//"

// Line is one physical line of source text.
type Line struct {
	Number int    // 1-based
	Offset int    // byte offset of Raw within the text
	Raw    string // without the line terminator
	Text   string // Raw with surrounding whitespace trimmed
}

// Trivia reports whether the line carries nothing to recognize: it is blank
// or its trimmed text starts with a line comment.
func (l Line) Trivia() bool {
	return l.Text == "" || strings.HasPrefix(l.Text, LineCommentMarker)
}

// Lines returns a lazy, restartable sequence over the physical lines of text.
// Both "\n" and "\r\n" end a line; a trailing terminator does not open an
// extra empty line.
func Lines(text string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		n := 0
		for off := 0; off < len(text); {
			next := len(text)
			raw := text[off:]
			if i := strings.IndexByte(raw, '\n'); i >= 0 {
				raw = raw[:i]
				next = off + i + 1
			}
			raw = strings.TrimSuffix(raw, "\r")
			n++
			if !yield(Line{Number: n, Offset: off, Raw: raw, Text: strings.TrimSpace(raw)}) {
				return
			}
			off = next
		}
	}
}

// CountLines returns the number of physical lines Lines would yield for text.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
