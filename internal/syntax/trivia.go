package syntax

// TriviaKind classifies a piece of trivia.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaSingleLineComment
	TriviaMultiLineComment
	TriviaBOM
	// TriviaSkipped holds tokens the parser consumed as trivia.
	TriviaSkipped
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "Whitespace"
	case TriviaNewline:
		return "Newline"
	case TriviaSingleLineComment:
		return "Comment"
	case TriviaMultiLineComment:
		return "MultiLineComment"
	case TriviaBOM:
		return "BOM"
	case TriviaSkipped:
		return "Skipped"
	}
	return "Unknown"
}

func (k TriviaKind) IsComment() bool {
	return k == TriviaSingleLineComment || k == TriviaMultiLineComment
}

// TriviaPiece is one run of trivia, stored as a length relative to its token.
type TriviaPiece struct {
	Kind TriviaKind
	Len  TextSize
}

// Trivia is a trivia piece with an absolute range, as produced by a token source.
type Trivia struct {
	Kind     TriviaKind
	Range    TextRange
	Trailing bool
}

func piecesLen(pieces []TriviaPiece) TextSize {
	var n TextSize
	for _, p := range pieces {
		n += p.Len
	}
	return n
}
