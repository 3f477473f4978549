package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.dol", []byte("spirit A {}"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	// Добавляем тот же файл с новым содержимым
	id2 := fs.Add("test.dol", []byte("spirit B {}"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	// Старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "spirit A {}" {
		t.Errorf("Expected first file content 'spirit A {}', got %q", got)
	}
	if got := string(fs.Get(id2).Content); got != "spirit B {}" {
		t.Errorf("Expected second file content 'spirit B {}', got %q", got)
	}
}

func TestGetUnknownID(t *testing.T) {
	fs := NewFileSet()
	if f := fs.Get(3); f != nil {
		t.Fatalf("Expected nil for unknown id, got %+v", f)
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.dol", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3} // позиции символов \n
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("lines.dol", []byte("first\nsecond\nthird")))

	for lineNum, want := range map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""} {
		if got := file.GetLine(lineNum); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", lineNum, got, want)
		}
	}
}

// TestCRLFNormalization проверяет нормализацию CRLF
func TestCRLFNormalization(t *testing.T) {
	original := []byte("a\r\nb\r\nc\r")
	normalized, changed := normalizeCRLF(original)

	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}
	// одиночный \r остаётся на месте
	if string(normalized) != "a\nb\nc\r" {
		t.Errorf("Expected normalized content %q, got %q", "a\nb\nc\r", string(normalized))
	}

	if _, changed := normalizeCRLF([]byte("plain\n")); changed {
		t.Error("Expected no change for LF-only content")
	}
}

func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	if file := fs.Get(fs.AddVirtual("empty.dol", []byte{})); len(file.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for empty file, got length %d", len(file.LineIdx))
	}
	if file := fs.Get(fs.AddVirtual("no_newlines.dol", []byte("hello"))); len(file.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for file without newlines, got length %d", len(file.LineIdx))
	}
	if file := fs.Get(fs.AddVirtual("only_newline.dol", []byte("\n"))); len(file.LineIdx) != 1 || file.LineIdx[0] != 0 {
		t.Errorf("Expected LineIdx [0] for file with only newline, got %v", file.LineIdx)
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.dol")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantFlags FileFlags
	}{
		{name: "plain", raw: "a\nb\n", want: "a\nb\n"},
		{name: "utf8 bom", raw: "\xEF\xBB\xBFa\nb\n", want: "a\nb\n", wantFlags: FileHadBOM},
		{name: "crlf", raw: "a\r\nb\r\n", want: "a\nb\n", wantFlags: FileNormalizedCRLF},
		{name: "utf16le bom", raw: "\xFF\xFEa\x00\n\x00b\x00", want: "a\nb", wantFlags: FileHadBOM | FileDecodedUTF16},
		{name: "utf16be bom", raw: "\xFE\xFF\x00a\x00\r\x00\n", want: "a\n", wantFlags: FileHadBOM | FileDecodedUTF16 | FileNormalizedCRLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			id, err := fs.Load(writeTemp(t, tt.raw))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			file := fs.Get(id)
			if string(file.Content) != tt.want {
				t.Errorf("Expected file content %q, got %q", tt.want, string(file.Content))
			}
			if file.Flags != tt.wantFlags {
				t.Errorf("Expected flags %b, got %b", tt.wantFlags, file.Flags)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.dol")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
