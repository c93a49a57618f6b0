package lexer

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// Token is one raw token as the lexer produced it, trivia included.
type Token struct {
	Kind      syntax.Kind
	Range     source.TextRange
	LineBreak bool
}

// Text slices the token out of src.
func (t Token) Text(src string) string { return t.Range.Slice(src) }

// Tokenize drains l in ctx up to and including EOF. It is meant for token
// dumps; parsers pull tokens one at a time and switch contexts.
func Tokenize(l Lexer, ctx Context) ([]Token, []diag.Diagnostic) {
	var tokens []Token
	for {
		kind := l.NextToken(ctx)
		tokens = append(tokens, Token{
			Kind:      kind,
			Range:     l.CurrentRange(),
			LineBreak: l.HasPrecedingLineBreak(),
		})
		if kind == syntax.EOF {
			return tokens, l.Finish()
		}
	}
}
