package json

import (
	"fmt"
	"strings"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// Lexer tokenizes JSON. It has a single context.
type Lexer struct {
	lexer.Base
	comments bool
}

func NewLexer(src string, opts Options) *Lexer {
	return &Lexer{Base: lexer.NewBase(src), comments: opts.AllowComments}
}

func (l *Lexer) NextToken(lexer.Context) syntax.Kind {
	l.Begin()
	if l.EOF() {
		return l.Emit(syntax.EOF)
	}
	if l.ScanBOM() {
		return l.Emit(syntax.UnicodeBOM)
	}
	return l.Emit(l.scan(l.Peek()))
}

func (l *Lexer) scan(c byte) syntax.Kind {
	switch {
	case lexer.IsWhitespace(c):
		return l.ScanWhitespace()
	case c == '"' || c == '\'':
		return l.scanString(c)
	case c == '-' || lexer.IsDec(c):
		return l.scanNumber()
	case isWordStart(c):
		return l.scanWord()
	}

	switch c {
	case '/':
		switch l.PeekAt(1) {
		case '*':
			return l.comment(l.ScanBlockComment())
		case '/':
			return l.comment(l.ScanLineComment())
		}
	case '{':
		return l.single(LBrace)
	case '}':
		return l.single(RBrace)
	case '[':
		return l.single(LBracket)
	case ']':
		return l.single(RBracket)
	case ':':
		return l.single(Colon)
	case ',':
		return l.single(Comma)
	}

	l.BumpRune()
	r := l.CurrentRange()
	l.Report(diag.LexUnknownChar, r, "unexpected character `"+r.Slice(l.Src)+"`")
	return syntax.ErrorToken
}

func (l *Lexer) single(kind syntax.Kind) syntax.Kind {
	l.Bump()
	return kind
}

// comment keeps the comment as trivia and reports it in strict mode.
func (l *Lexer) comment(kind syntax.Kind) syntax.Kind {
	if !l.comments {
		r := l.CurrentRange()
		l.Push(diag.NewError(diag.SynJSONCommentNotAllowed, r, "JSON standard does not allow comments").
			WithNote(r, "Enable allow_comments to parse JSON with comments."))
	}
	return kind
}

// scanString lexes a double quoted string. Single quotes are accepted and
// reported; a line break or the end of input closes an unterminated string.
func (l *Lexer) scanString(quote byte) syntax.Kind {
	start := l.Mark()
	l.Bump()
	for {
		switch c := l.Peek(); {
		case l.EOF(), c == '\n', c == '\r':
			r := l.RangeFrom(start)
			if quote == '\'' {
				l.Report(diag.LexSingleQuotedString, source.RangeAt(source.TextSize(start), 1), singleQuoteMsg)
			}
			l.Push(diag.NewError(diag.LexUnterminatedString, r, "Missing closing quote").
				WithNote(r, "The closing quote must be on the same line."))
			return StringLiteral
		case c == quote:
			l.Bump()
			if quote == '\'' {
				l.reportSingleQuoted(l.RangeFrom(start))
			}
			return StringLiteral
		case c == '\\':
			l.scanEscape()
		case c < 0x20:
			at := l.Mark()
			l.Bump()
			l.Report(diag.LexControlChar, l.RangeFrom(at),
				fmt.Sprintf("Control character `\\u%04x` is not allowed in string literals", c))
		default:
			l.BumpRune()
		}
	}
}

const singleQuoteMsg = "JSON standard does not allow single quoted strings"

// reportSingleQuoted offers a rewrite to double quotes when the body needs
// no re-escaping.
func (l *Lexer) reportSingleQuoted(r source.TextRange) {
	d := diag.NewError(diag.LexSingleQuotedString, r, singleQuoteMsg)
	text := r.Slice(l.Source())
	body := text[1 : len(text)-1]
	if !strings.ContainsAny(body, "\"\\") {
		d = d.WithFixSuggestion(diag.Fix{
			Title:         "Use double quotes",
			Applicability: diag.FixAlwaysSafe,
			Edits:         []diag.FixEdit{diag.ReplaceEdit(r, text, `"`+body+`"`)},
		})
	}
	l.Push(d)
}

func (l *Lexer) scanEscape() {
	esc := l.Mark()
	l.Bump()
	switch l.Peek() {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		l.Bump()
	case 'u':
		l.Bump()
		for range 4 {
			if !lexer.IsHex(l.Peek()) {
				l.Report(diag.LexBadEscape, l.RangeFrom(esc), "Invalid unicode sequence")
				return
			}
			l.Bump()
		}
	default:
		if !l.EOF() && l.Peek() != '\n' && l.Peek() != '\r' {
			l.BumpRune()
		}
		l.Report(diag.LexBadEscape, l.RangeFrom(esc), "Invalid escape sequence")
	}
}

// scanNumber lexes -?(0|[1-9][0-9]*)(.[0-9]+)?([eE][+-]?[0-9]+)? and
// reports the first way the text deviates from it.
func (l *Lexer) scanNumber() syntax.Kind {
	start := l.Mark()
	bad := func(msg string) syntax.Kind {
		l.Report(diag.LexBadNumber, l.RangeFrom(start), msg)
		return NumberLiteral
	}
	l.Eat('-')
	switch {
	case l.Peek() == '0':
		l.Bump()
		if lexer.IsDec(l.Peek()) {
			l.eatDigits()
			return bad("JSON standard does not allow leading zeros")
		}
	case lexer.IsDec(l.Peek()):
		l.eatDigits()
	default:
		return bad("Minus must be followed by a digit")
	}
	if l.Eat('.') {
		if !lexer.IsDec(l.Peek()) {
			return bad("Missing fraction")
		}
		l.eatDigits()
	}
	if c := l.Peek(); c == 'e' || c == 'E' {
		l.Bump()
		if c := l.Peek(); c == '+' || c == '-' {
			l.Bump()
		}
		if !lexer.IsDec(l.Peek()) {
			return bad("Missing exponent")
		}
		l.eatDigits()
	}
	return NumberLiteral
}

func (l *Lexer) eatDigits() {
	for lexer.IsDec(l.Peek()) {
		l.Bump()
	}
}

func isWordStart(c byte) bool {
	return lexer.IsASCIILetter(c) || c == '_' || c == '$'
}

func isWordByte(c byte) bool {
	return isWordStart(c) || lexer.IsDec(c)
}

// scanWord lexes the keywords and bare words; the parser rejects the
// latter where JSON wants a string.
func (l *Lexer) scanWord() syntax.Kind {
	for isWordByte(l.Peek()) {
		l.Bump()
	}
	if kind, ok := keywords[l.CurrentRange().Slice(l.Src)]; ok {
		return kind
	}
	return Ident
}
