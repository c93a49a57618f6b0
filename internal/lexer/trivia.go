package lexer

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

const utf8BOM = "\uFEFF"

// ScanBOM consumes a byte order mark at offset zero.
func (b *Base) ScanBOM() bool {
	if b.Off != 0 {
		return false
	}
	return b.EatString(utf8BOM)
}

// ScanWhitespace consumes either one line terminator (\n, \r or \r\n) or a
// run of other whitespace, and returns the matching trivia kind.
func (b *Base) ScanWhitespace() syntax.Kind {
	switch b.Peek() {
	case '\n':
		b.Bump()
		return syntax.Newline
	case '\r':
		b.Bump()
		b.Eat('\n')
		return syntax.Newline
	}
	for IsInlineSpace(b.Peek()) {
		b.Bump()
	}
	return syntax.Whitespace
}

// ScanBlockComment consumes a /* */ comment; the cursor must be on the '/'.
// Comments do not nest. An unterminated comment runs to the end of input
// and is reported.
func (b *Base) ScanBlockComment() syntax.Kind {
	start := b.Mark()
	b.Advance(2)
	multiline := false
	for !b.EOF() {
		if b.Peek() == '*' && b.PeekAt(1) == '/' {
			b.Advance(2)
			return b.commentKind(multiline)
		}
		if c := b.Bump(); c == '\n' || c == '\r' {
			multiline = true
		}
	}
	b.Report(diag.LexUnterminatedBlockComment, b.RangeFrom(start), "Unterminated block comment")
	return b.commentKind(multiline)
}

func (b *Base) commentKind(multiline bool) syntax.Kind {
	if multiline {
		b.SetAfterNewline()
		return syntax.MultiLineComment
	}
	return syntax.SingleLineComment
}

// ScanLineComment consumes a // comment up to, but not including, the line
// terminator.
func (b *Base) ScanLineComment() syntax.Kind {
	b.Advance(2)
	for !b.EOF() && b.Peek() != '\n' && b.Peek() != '\r' {
		b.Bump()
	}
	return syntax.SingleLineComment
}
