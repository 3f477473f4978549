package token

var keywords = map[string]Kind{
	"spirit": KwSpirit,
	"fn":     KwFn,
	"pub":    KwPub,
}

// Lexeme returns the source spelling of a keyword or punctuation kind.
func (k Kind) Lexeme() string {
	switch k {
	case KwSpirit:
		return "spirit"
	case KwFn:
		return "fn"
	case KwPub:
		return "pub"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LParen:
		return "("
	case RParen:
		return ")"
	}
	return ""
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: распознаются только lowercase версии.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LeadingWord splits off the run of identifier bytes at the start of text.
// rest begins right after the word.
func LeadingWord(text string) (word, rest string) {
	i := 0
	for i < len(text) && IsIdentByte(text[i]) {
		i++
	}
	return text[:i], text[i:]
}

// LeadingKeyword reports the keyword text starts with, if any. The keyword
// must be a whole word: "spiritual" does not start with 'spirit'.
func LeadingKeyword(text string) (Kind, bool) {
	word, _ := LeadingWord(text)
	return LookupKeyword(word)
}
