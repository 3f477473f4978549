package source

import (
	"fmt"

	"fortio.org/safecast"
)

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	// FileDecodedUTF16 marks content that was transcoded from UTF-16 to UTF-8 on load.
	FileDecodedUTF16
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Position is a human-readable location in a source file.
type Position struct {
	Line   uint32 `json:"line"`   // 1-based
	Column uint32 `json:"column"` // 1-based
}

// LineStart returns the position of the first column of line.
func LineStart(line uint32) Position {
	if line == 0 {
		line = 1
	}
	return Position{Line: line, Column: 1}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether both coordinates are set.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// At builds a position from int coordinates, as produced by Lines and
// byte offsets within a line. It panics if either value overflows.
func At(line, column int) Position {
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	c, err := safecast.Conv[uint32](column)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return Position{Line: l, Column: c}
}
