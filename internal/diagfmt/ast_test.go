package diagfmt

import (
	"bytes"
	"testing"

	"dol/internal/ast"
)

func TestFormatASTPretty(t *testing.T) {
	outer := ast.NewSpirit("Outer", 1)
	inner := ast.NewSpirit("Inner", 2)
	inner.Append(ast.NewFunction("deep", ast.VisPrivate, 3))
	outer.Append(inner)
	outer.Append(ast.NewFunction("api", ast.VisPublic, 5))
	nodes := []ast.Node{outer, ast.NewFunction("free", ast.VisPrivate, 7)}

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, "tree.dol", nodes); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	want := "tree.dol\n" +
		"├─ Spirit Outer (line 1)\n" +
		"│  ├─ Spirit Inner (line 2)\n" +
		"│  │  └─ Function deep() (line 3)\n" +
		"│  └─ Function pub api() (line 5)\n" +
		"└─ Function free() (line 7)\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatASTJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, nil); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("got %q", buf.String())
	}
}
