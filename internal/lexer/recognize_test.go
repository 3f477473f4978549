package lexer

import (
	"testing"

	"dol/internal/token"
)

func TestRecognize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Decl
	}{
		{"spirit with brace", "spirit Foo {", Decl{Kind: DeclSpirit, Name: "Foo", OpensBrace: true}},
		{"spirit tight brace", "spirit Foo{", Decl{Kind: DeclSpirit, Name: "Foo", OpensBrace: true}},
		{"spirit no brace", "spirit Foo", Decl{Kind: DeclSpirit, Name: "Foo"}},
		{"spirit digits", "spirit Foo_2 {}", Decl{Kind: DeclSpirit, Name: "Foo_2", OpensBrace: true}},
		{"function", "fn bar() {}", Decl{Kind: DeclFunction, Name: "bar"}},
		{"function space paren", "fn bar (x)", Decl{Kind: DeclFunction, Name: "bar"}},
		{"pub function", "pub fn baz(a, b) {", Decl{Kind: DeclFunction, Name: "baz", Public: true}},
		{"function without paren", "fn bar", Decl{}},
		{"missing space", "spiritFoo {", Decl{}},
		{"missing name", "spirit {", Decl{}},
		{"bad identifier", "fn -x()", Decl{}},
		{"not anchored", "let spirit Foo {", Decl{}},
		{"call", "bar()", Decl{}},
		{"empty", "", Decl{}},
		{"uppercase keyword", "Spirit Foo {", Decl{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recognize(tt.text)
			if got != tt.want {
				t.Fatalf("Recognize(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRecognizeSpiritWins(t *testing.T) {
	d := Recognize("spirit fn (")
	if d.Kind != DeclSpirit || d.Name != "fn" {
		t.Fatalf("expected spirit named fn, got %+v", d)
	}
}

func TestMalformed(t *testing.T) {
	tests := []struct {
		text string
		kw   token.Kind
		ok   bool
	}{
		{"spirit {", token.KwSpirit, true},
		{"spirit", token.KwSpirit, true},
		{"fn", token.KwFn, true},
		{"fn bar", token.KwFn, true},
		{"pub fn {", token.KwFn, true},
		{"spirit Foo {", token.Invalid, false},
		{"pub fn ok()", token.Invalid, false},
		{"pub struct", token.Invalid, false},
		{"pubfn x(", token.Invalid, false},
		{"spiritual {", token.Invalid, false},
		{"x = 1", token.Invalid, false},
	}
	for _, tt := range tests {
		kw, ok := Malformed(tt.text)
		if kw != tt.kw || ok != tt.ok {
			t.Errorf("Malformed(%q) = %v, %v; want %v, %v", tt.text, kw, ok, tt.kw, tt.ok)
		}
	}
}
