package parser

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// TokenSource hides trivia from the parser. Every trivia piece is recorded
// in document order together with whether it trails the previous token, so
// the tree sink can give each byte back to exactly one token.
type TokenSource struct {
	lexer  lexer.Lexer
	trivia []syntax.Trivia
}

// TokenSourceCheckpoint restores a token source for speculative parsing.
type TokenSourceCheckpoint struct {
	lexer     lexer.Checkpoint
	triviaLen int
}

// NewTokenSource primes lx with its first non-trivia token.
func NewTokenSource(lx lexer.Lexer) *TokenSource {
	s := &TokenSource{lexer: lx}
	s.nextNonTrivia(lexer.Regular, true)
	return s
}

// nextNonTrivia lexes with ctx until a non-trivia token is current. Trivia
// on the same line as the previous token trails it; a newline ends that run
// and everything after it leads the next token. first means there is no
// previous token.
func (s *TokenSource) nextNonTrivia(ctx lexer.Context, first bool) {
	trailing := !first
	for {
		kind := s.lexer.NextToken(ctx)
		tk, ok := kind.TriviaKind()
		if !ok {
			return
		}
		if tk == syntax.TriviaNewline {
			trailing = false
		}
		s.trivia = append(s.trivia, syntax.Trivia{Kind: tk, Range: s.lexer.CurrentRange(), Trailing: trailing})
	}
}

func (s *TokenSource) Text() string                   { return s.lexer.Source() }
func (s *TokenSource) Current() syntax.Kind           { return s.lexer.Current() }
func (s *TokenSource) CurrentRange() source.TextRange { return s.lexer.CurrentRange() }
func (s *TokenSource) HasPrecedingLineBreak() bool    { return s.lexer.HasPrecedingLineBreak() }

// Position is the start of the current token. It grows with every bump
// before the end of input.
func (s *TokenSource) Position() source.TextSize {
	return s.lexer.CurrentRange().Start
}

// Bump moves to the next non-trivia token, lexing it with ctx.
func (s *TokenSource) Bump(ctx lexer.Context) {
	if s.Current() == syntax.EOF {
		return
	}
	s.nextNonTrivia(ctx, false)
}

// SkipAsTrivia turns the current token into skipped trivia that leads the
// next token.
func (s *TokenSource) SkipAsTrivia(ctx lexer.Context) {
	if s.Current() == syntax.EOF {
		return
	}
	s.trivia = append(s.trivia, syntax.Trivia{Kind: syntax.TriviaSkipped, Range: s.CurrentRange()})
	s.nextNonTrivia(ctx, true)
}

// lookahead lexes n non-trivia tokens past the current one in the regular
// context, then restores the lexer.
func (s *TokenSource) lookahead(n int) (syntax.Kind, bool) {
	if n == 0 {
		return s.Current(), s.HasPrecedingLineBreak()
	}
	cp := s.lexer.Checkpoint()
	defer s.lexer.Rewind(cp)

	kind := s.Current()
	for i := 0; i < n && kind != syntax.EOF; {
		kind = s.lexer.NextToken(lexer.Regular)
		if !kind.IsTrivia() {
			i++
		}
	}
	return kind, s.lexer.HasPrecedingLineBreak()
}

// Nth returns the kind of the n-th non-trivia token ahead; Nth(0) is the
// current token.
func (s *TokenSource) Nth(n int) syntax.Kind {
	kind, _ := s.lookahead(n)
	return kind
}

// HasNthPrecedingLineBreak reports a line break before the n-th token ahead.
func (s *TokenSource) HasNthPrecedingLineBreak(n int) bool {
	_, lb := s.lookahead(n)
	return lb
}

func (s *TokenSource) Checkpoint() TokenSourceCheckpoint {
	return TokenSourceCheckpoint{lexer: s.lexer.Checkpoint(), triviaLen: len(s.trivia)}
}

func (s *TokenSource) Rewind(cp TokenSourceCheckpoint) {
	s.lexer.Rewind(cp.lexer)
	s.trivia = s.trivia[:cp.triviaLen]
}

// Finish returns the recorded trivia and the lexer diagnostics.
func (s *TokenSource) Finish() ([]syntax.Trivia, []diag.Diagnostic) {
	return s.trivia, s.lexer.Finish()
}
