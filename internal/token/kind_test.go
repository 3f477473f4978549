package token

import "testing"

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		Invalid:  "Invalid",
		Ident:    "Ident",
		KwSpirit: "KwSpirit",
		KwFn:     "KwFn",
		KwPub:    "KwPub",
		LBrace:   "LBrace",
		RBrace:   "RBrace",
		LParen:   "LParen",
		RParen:   "RParen",
		Kind(99): "Invalid",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestIsIdentByte(t *testing.T) {
	for _, b := range []byte("azAZ09_") {
		if !IsIdentByte(b) {
			t.Errorf("IsIdentByte(%q) = false", b)
		}
	}
	for _, b := range []byte(" {}()-.$\t") {
		if IsIdentByte(b) {
			t.Errorf("IsIdentByte(%q) = true", b)
		}
	}
}
