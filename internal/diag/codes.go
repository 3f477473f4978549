package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Синтаксические
	SynUnbalancedBraces     Code = 2001
	SynExpectDeclaration    Code = 2002
	SynMalformedDeclaration Code = 2003
	SynUnexpectedTopLevel   Code = 2004

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	SynUnbalancedBraces:     "Unbalanced braces",
	SynExpectDeclaration:    "Expected a declaration",
	SynMalformedDeclaration: "Malformed declaration",
	SynUnexpectedTopLevel:   "Unexpected top level",
	IOLoadFileError:         "Failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
