package format

import (
	"testing"

	"dol/internal/source"
)

func TestSourceIsIdentity(t *testing.T) {
	inputs := []string{"", "spirit A {\n}\n", "  messy   {{\r\n", "fn a() {}"}
	for _, in := range inputs {
		if got := Source(in); got != in {
			t.Errorf("Source(%q) = %q", in, got)
		}
	}
}

func TestFormatFile(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("a.dol", []byte("spirit A {\n  fn f() {}\n}\n")))

	out, err := FormatFile(sf)
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	if string(out) != string(sf.Content) {
		t.Fatalf("formatted output differs")
	}
	out[0] = 'X'
	if sf.Content[0] == 'X' {
		t.Fatal("output must not alias file content")
	}
	changed, err := Changed(sf)
	if err != nil || changed {
		t.Fatalf("Changed = %v, %v", changed, err)
	}
	if _, err := FormatFile(nil); err == nil {
		t.Fatal("expected error for nil file")
	}
}
