package diag

import (
	"encoding/json"
	"strings"
	"testing"

	"dol/internal/source"
)

func pos(line, col uint32) source.Position {
	return source.Position{Line: line, Column: col}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewWarning(SynUnexpectedTopLevel, pos(1, 1), "a")) {
		t.Fatal("first add should succeed")
	}
	if !bag.Add(NewWarning(SynUnexpectedTopLevel, pos(2, 1), "b")) {
		t.Fatal("second add should succeed")
	}
	if bag.Add(NewWarning(SynUnexpectedTopLevel, pos(3, 1), "c")) {
		t.Fatal("third add should be rejected by the limit")
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
}

func TestBagUnbounded(t *testing.T) {
	bag := NewBag(0)
	for i := range 200 {
		if !bag.Add(NewWarning(SynUnexpectedTopLevel, pos(uint32(i+1), 1), "w")) {
			t.Fatalf("unbounded bag rejected item %d", i)
		}
	}
	if bag.Len() != 200 {
		t.Fatalf("expected 200 items, got %d", bag.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := NewBag(10)
	if bag.HasErrors() {
		t.Fatal("empty bag should report nothing")
	}
	bag.Add(NewWarning(SynMalformedDeclaration, pos(1, 1), "w"))
	if bag.HasErrors() {
		t.Fatal("warning-only bag misreported")
	}
	bag.Add(NewError(SynUnbalancedBraces, pos(2, 1), "e"))
	if !bag.HasErrors() {
		t.Fatal("expected HasErrors after adding an error")
	}
}

func TestBagSort(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewWarning(SynUnexpectedTopLevel, pos(3, 1), "late"))
	bag.Add(NewWarning(SynMalformedDeclaration, pos(1, 1), "early"))
	bag.Add(NewError(SynExpectDeclaration, pos(1, 1), "error first"))

	bag.Sort()
	got := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		got = append(got, d.Message)
	}
	if strings.Join(got, ",") != "error first,early,late" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestBagSnapshot(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewWarning(SynUnexpectedTopLevel, pos(1, 1), "w"))
	bag.Add(NewError(SynUnbalancedBraces, pos(2, 1), "e"))

	snap := bag.Snapshot()
	bag.Sort()
	if len(snap) != 2 || snap[0].Message != "w" {
		t.Fatalf("snapshot must not observe later sorting: %+v", snap)
	}
	if NewBag(3).Snapshot() == nil {
		t.Fatal("snapshot of an empty bag must be non-nil")
	}
}

func TestSeverityCategory(t *testing.T) {
	if SevError.Category() != CategorySyntaxError {
		t.Fatal("errors must be syntax errors")
	}
	if SevWarning.Category() != CategoryWarning || SevInfo.Category() != CategoryWarning {
		t.Fatal("lesser severities must map to warnings")
	}
	if CategorySyntaxError.String() != "SyntaxError" || CategoryWarning.String() != "Warning" {
		t.Fatal("unexpected category names")
	}
}

func TestDiagnosticJSON(t *testing.T) {
	d := NewError(SynUnbalancedBraces, pos(4, 1), "unbalanced braces: residual depth 1").
		WithNote(pos(2, 13), "unclosed '{' opened here")

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"message":"unbalanced braces: residual depth 1","position":{"line":4,"column":1},` +
		`"category":"SyntaxError","code":"SYN2001","notes":[{"position":{"line":2,"column":13},"message":"unclosed '{' opened here"}]}`
	if string(raw) != want {
		t.Fatalf("unexpected JSON:\nwant %s\ngot  %s", want, raw)
	}
}

func TestCodeID(t *testing.T) {
	for code, want := range map[Code]string{
		SynUnbalancedBraces: "SYN2001",
		IOLoadFileError:     "IO4001",
		UnknownCode:         "E0000",
	} {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Error("unknown codes should fall back to the generic title")
	}
}
