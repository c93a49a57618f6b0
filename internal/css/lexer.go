package css

import (
	"unicode/utf8"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// Lex contexts. The parser picks one for the token after every bump.
const (
	RegularContext = lexer.Regular
	// SelectorContext turns a whitespace byte into a SpaceLiteral combinator.
	SelectorContext lexer.Context = iota
	// PseudoNthContext splits `n`, `-` and `+` out of an An+B expression.
	PseudoNthContext
	// URLRawContext reads an unquoted url( ) argument as one token.
	URLRawContext
	// ColorContext reads the hex digits after `#`.
	ColorContext
)

// Lexer tokenizes CSS source text.
type Lexer struct {
	lexer.Base
	lineComments bool
}

// NewLexer creates a lexer over src.
func NewLexer(src string, opts Options) *Lexer {
	return &Lexer{Base: lexer.NewBase(src), lineComments: opts.AllowWrongLineComments}
}

func (l *Lexer) NextToken(ctx lexer.Context) syntax.Kind {
	l.Begin()
	if l.EOF() {
		return l.Emit(syntax.EOF)
	}
	if l.ScanBOM() {
		return l.Emit(syntax.UnicodeBOM)
	}
	c := l.Peek()
	switch ctx {
	case SelectorContext:
		if lexer.IsWhitespace(c) {
			l.Bump()
			return l.Emit(SpaceLiteral)
		}
	case PseudoNthContext:
		switch c {
		case '-':
			l.Bump()
			return l.Emit(Minus)
		case '+':
			l.Bump()
			return l.Emit(Plus)
		case 'n', 'N':
			l.Bump()
			return l.Emit(Ident)
		}
		if lexer.IsDec(c) {
			l.scanNumber()
			return l.Emit(NumberLiteral)
		}
	case URLRawContext:
		if !lexer.IsWhitespace(c) && c != '"' && c != '\'' && c != ')' && !l.startsComment() {
			return l.Emit(l.scanURLRaw())
		}
	case ColorContext:
		if l.isNameByte(0) {
			return l.Emit(l.scanColor())
		}
	}
	return l.Emit(l.scanRegular(c))
}

func (l *Lexer) startsComment() bool {
	return l.Peek() == '/' && l.PeekAt(1) == '*'
}

func (l *Lexer) scanRegular(c byte) syntax.Kind {
	switch {
	case lexer.IsWhitespace(c):
		return l.ScanWhitespace()
	case c == '"' || c == '\'':
		return l.scanString(c)
	case lexer.IsDec(c):
		return l.scanNumeric()
	case l.atCDC():
		l.Advance(3)
		return CDC
	case l.startsIdent(0):
		l.scanIdent()
		return Ident
	}

	switch c {
	case '/':
		if l.PeekAt(1) == '*' {
			return l.ScanBlockComment()
		}
		if l.PeekAt(1) == '/' && l.lineComments {
			return l.ScanLineComment()
		}
		return l.single(Slash)
	case '-':
		if l.startsNumber() {
			return l.scanNumeric()
		}
		return l.single(Minus)
	case '+':
		if l.startsNumber() {
			return l.scanNumeric()
		}
		return l.single(Plus)
	case '.':
		if lexer.IsDec(l.PeekAt(1)) {
			return l.scanNumeric()
		}
		return l.single(Dot)
	case '<':
		if l.EatString("<!--") {
			return CDO
		}
		return l.pair('=', Lt, LtEq)
	case '$':
		if l.EatString("$=") {
			return DollarEq
		}
	case '*':
		return l.pair('=', Star, StarEq)
	case '^':
		return l.pair('=', Caret, CaretEq)
	case '~':
		return l.pair('=', Tilde, TildeEq)
	case '>':
		return l.pair('=', Gt, GtEq)
	case ':':
		return l.pair(':', Colon, ColonColon)
	case '|':
		l.Bump()
		switch {
		case l.Eat('|'):
			return PipePipe
		case l.Eat('='):
			return PipeEq
		}
		return Pipe
	case ';':
		return l.single(Semicolon)
	case ',':
		return l.single(Comma)
	case '#':
		return l.single(Hash)
	case '@':
		return l.single(At)
	case '(':
		return l.single(LParen)
	case ')':
		return l.single(RParen)
	case '{':
		return l.single(LBrace)
	case '}':
		return l.single(RBrace)
	case '[':
		return l.single(LBracket)
	case ']':
		return l.single(RBracket)
	case '=':
		return l.single(Eq)
	case '!':
		return l.single(Bang)
	case '%':
		return l.single(Percent)
	case '&':
		return l.single(Amp)
	}

	l.BumpRune()
	r := l.CurrentRange()
	l.Report(diag.LexUnknownChar, r, "unexpected character `"+r.Slice(l.Src)+"`")
	return syntax.ErrorToken
}

func (l *Lexer) atCDC() bool {
	return l.Peek() == '-' && l.PeekAt(1) == '-' && l.PeekAt(2) == '>'
}

func (l *Lexer) single(kind syntax.Kind) syntax.Kind {
	l.Bump()
	return kind
}

// pair lexes a one byte token that turns into long when followed by next.
func (l *Lexer) pair(next byte, short, long syntax.Kind) syntax.Kind {
	l.Bump()
	if l.Eat(next) {
		return long
	}
	return short
}

// startsNumber checks a sign followed by digits or `.digit`.
func (l *Lexer) startsNumber() bool {
	c := l.PeekAt(1)
	return lexer.IsDec(c) || (c == '.' && lexer.IsDec(l.PeekAt(2)))
}

// scanNumeric lexes a number and classifies it by what follows: `%` makes
// it a percentage, an identifier makes it a dimension. Neither suffix is
// part of the token.
func (l *Lexer) scanNumeric() syntax.Kind {
	if c := l.Peek(); c == '+' || c == '-' {
		l.Bump()
	}
	l.scanNumber()
	switch {
	case l.Peek() == '%':
		return PercentageValue
	case l.startsIdent(0) && !l.atCDC():
		return DimensionValue
	}
	return NumberLiteral
}

func (l *Lexer) scanNumber() {
	l.eatDigits()
	if l.Peek() == '.' && lexer.IsDec(l.PeekAt(1)) {
		l.Bump()
		l.eatDigits()
	}
	if c := l.Peek(); c == 'e' || c == 'E' {
		next := l.PeekAt(1)
		switch {
		case lexer.IsDec(next):
			l.Bump()
		case (next == '+' || next == '-') && lexer.IsDec(l.PeekAt(2)):
			l.Advance(2)
		default:
			return
		}
		l.eatDigits()
	}
}

func (l *Lexer) eatDigits() {
	for lexer.IsDec(l.Peek()) {
		l.Bump()
	}
}

// scanString lexes a quoted string. A raw newline or the end of input
// terminates it early; the token is still a string.
func (l *Lexer) scanString(quote byte) syntax.Kind {
	start := l.Mark()
	l.Bump()
	for {
		switch c := l.Peek(); {
		case l.EOF(), c == '\n', c == '\r':
			r := l.RangeFrom(start)
			l.Push(diag.NewError(diag.LexUnterminatedString, r, "Missing closing quote").
				WithNote(r, "The closing quote must be on the same line."))
			return StringLiteral
		case c == quote:
			l.Bump()
			return StringLiteral
		case c == '\\':
			l.scanStringEscape()
		default:
			l.BumpRune()
		}
	}
}

func (l *Lexer) scanStringEscape() {
	esc := l.Mark()
	l.Bump()
	switch c := l.Peek(); {
	case l.EOF():
		l.Report(diag.LexBadEscape, l.RangeFrom(esc), "Invalid escape sequence")
	case c == '\r':
		l.Bump()
		l.Eat('\n')
	case c == '\n':
		l.Bump()
	default:
		l.scanEscapeBody()
	}
}

// scanEscapeBody consumes what follows a backslash: up to six hex digits
// plus one optional whitespace, or any single code point.
func (l *Lexer) scanEscapeBody() {
	if !lexer.IsHex(l.Peek()) {
		l.BumpRune()
		return
	}
	for i := 0; i < 6 && lexer.IsHex(l.Peek()); i++ {
		l.Bump()
	}
	if c := l.Peek(); c == '\r' {
		l.Bump()
		l.Eat('\n')
	} else if lexer.IsWhitespace(c) {
		l.Bump()
	}
}

// validEscape checks for a backslash at n that is not followed by a newline.
func (l *Lexer) validEscape(n int) bool {
	if l.PeekAt(n) != '\\' {
		return false
	}
	c := l.PeekAt(n + 1)
	return c != '\n' && c != '\r' && c != '\f' && (c != 0 || int(l.Off)+n+1 < len(l.Src))
}

func isNameStart(c byte) bool {
	return lexer.IsASCIILetter(c) || c == '_' || c >= utf8.RuneSelf
}

func (l *Lexer) isNameByte(n int) bool {
	c := l.PeekAt(n)
	return isNameStart(c) || lexer.IsDec(c) || c == '-'
}

// startsIdent checks whether the three bytes at n would start an identifier.
func (l *Lexer) startsIdent(n int) bool {
	switch c := l.PeekAt(n); {
	case c == '-':
		next := l.PeekAt(n + 1)
		return isNameStart(next) || next == '-' || l.validEscape(n+1)
	case isNameStart(c):
		return true
	case c == '\\':
		return l.validEscape(n)
	}
	return false
}

func (l *Lexer) scanIdent() {
	for {
		switch {
		case l.validEscape(0):
			l.Bump()
			l.scanEscapeBody()
		case l.isNameByte(0):
			l.BumpRune()
		default:
			return
		}
	}
}

// scanURLRaw reads an unquoted url argument up to the closing parenthesis
// or whitespace.
func (l *Lexer) scanURLRaw() syntax.Kind {
	start := l.Mark()
	for !l.EOF() {
		c := l.Peek()
		if c == ')' || lexer.IsWhitespace(c) {
			return URLRawLiteral
		}
		if c == '\\' && l.validEscape(0) {
			l.Bump()
			l.scanEscapeBody()
			continue
		}
		l.BumpRune()
	}
	r := l.RangeFrom(start)
	l.Push(diag.NewError(diag.LexBadURL, r, "Invalid url raw value").
		WithNote(r, "Expected a closing parenthesis."))
	return URLRawLiteral
}

// scanColor reads the name after `#` and checks it is a 3, 4, 6 or 8 digit
// hex color.
func (l *Lexer) scanColor() syntax.Kind {
	start := l.Mark()
	hex := true
	for l.isNameByte(0) {
		hex = hex && lexer.IsHex(l.Peek())
		l.BumpRune()
	}
	r := l.RangeFrom(start)
	switch n := r.Len(); {
	case !hex:
		l.Push(diag.NewError(diag.LexBadColor, r, "Invalid color").
			WithNote(r, "A color must only contain hex digits."))
	case n != 3 && n != 4 && n != 6 && n != 8:
		l.Push(diag.NewError(diag.LexBadColor, r, "Invalid color").
			WithNote(r, "A hex color has 3, 4, 6 or 8 digits."))
	}
	return ColorLiteral
}
