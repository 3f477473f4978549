package format

import (
	"bytes"
	"errors"

	"dol/internal/source"
)

// Source formats DOL source text.
func Source(src string) string {
	return src
}

// FormatFile formats the content of sf.
func FormatFile(sf *source.File) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	out := make([]byte, len(sf.Content))
	copy(out, sf.Content)
	return out, nil
}

// Changed reports whether formatting sf would alter it.
func Changed(sf *source.File) (bool, error) {
	out, err := FormatFile(sf)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(out, sf.Content), nil
}
