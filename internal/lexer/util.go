package lexer

// ===== Классификаторы =====

func IsDec(b byte) bool { return b >= '0' && b <= '9' }

func IsHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func IsASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// IsInlineSpace matches whitespace that does not end a line.
func IsInlineSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f' || b == '\v'
}

// IsWhitespace matches every ASCII whitespace byte, line terminators included.
func IsWhitespace(b byte) bool {
	return IsInlineSpace(b) || b == '\n' || b == '\r'
}
