// Package lexer holds the contract every grammar lexer implements and the
// byte cursor and state shared by the concrete lexers.
package lexer

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// Context selects the tokenization rules for the next token. Each grammar
// numbers its own contexts; zero is always the regular context.
type Context uint8

const Regular Context = 0

// Lexer produces raw tokens, trivia included, one at a time.
type Lexer interface {
	Source() string
	// NextToken lexes the token at the current position using ctx and makes
	// it current.
	NextToken(ctx Context) syntax.Kind
	Current() syntax.Kind
	CurrentRange() source.TextRange
	// HasPrecedingLineBreak reports a newline between the previous non-trivia
	// token and the current one.
	HasPrecedingLineBreak() bool
	Checkpoint() Checkpoint
	Rewind(cp Checkpoint)
	// Finish hands over the accumulated lex diagnostics.
	Finish() []diag.Diagnostic
}

// Checkpoint captures everything needed to restart lexing at a position.
type Checkpoint struct {
	Position       source.TextSize
	CurrentStart   source.TextSize
	Current        syntax.Kind
	AfterNewline   bool
	LineBreak      bool
	DiagnosticsLen int
}
