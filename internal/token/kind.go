package token

// Kind represents the category of a lexeme.
type Kind uint8

const (
	// Invalid indicates an erroneous or unrecognized lexeme.
	Invalid Kind = iota
	// Ident represents an identifier.
	Ident
	// KwSpirit represents the 'spirit' keyword.
	KwSpirit // spirit
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwPub represents the 'pub' visibility keyword.
	KwPub  // pub
	LBrace // {
	RBrace // }
	LParen // (
	RParen // )
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "Ident"
	case KwSpirit:
		return "KwSpirit"
	case KwFn:
		return "KwFn"
	case KwPub:
		return "KwPub"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	default:
		return "Invalid"
	}
}

// IsIdentByte reports whether b may appear in an identifier.
func IsIdentByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
