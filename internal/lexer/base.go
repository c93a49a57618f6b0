package lexer

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// Base implements the bookkeeping half of Lexer. Grammar lexers embed it and
// only provide NextToken, which wraps its scanning between Begin and Emit.
type Base struct {
	Cursor
	start        source.TextSize
	current      syntax.Kind
	afterNewline bool
	lineBreak    bool
	diags        []diag.Diagnostic
}

// NewBase prepares the shared state for src.
func NewBase(src string) Base {
	return Base{Cursor: NewCursor(src), current: syntax.Tombstone}
}

func (b *Base) Source() string                 { return b.Src }
func (b *Base) Current() syntax.Kind           { return b.current }
func (b *Base) CurrentRange() source.TextRange { return source.NewRange(b.start, b.Off) }
func (b *Base) HasPrecedingLineBreak() bool    { return b.lineBreak }

// Begin marks the start of a new token.
func (b *Base) Begin() {
	b.start = b.Off
}

// Emit makes kind the current token. A newline trivia raises the line break
// flag for the next non-trivia token.
func (b *Base) Emit(kind syntax.Kind) syntax.Kind {
	b.current = kind
	b.lineBreak = b.afterNewline
	switch {
	case kind == syntax.Newline:
		b.afterNewline = true
	case !kind.IsTrivia():
		b.afterNewline = false
	}
	return kind
}

// SetAfterNewline records a line break hidden inside a token, such as a
// block comment spanning lines.
func (b *Base) SetAfterNewline() {
	b.afterNewline = true
}

// TokenStart is the offset where the current token began.
func (b *Base) TokenStart() source.TextSize {
	return b.start
}

func (b *Base) Checkpoint() Checkpoint {
	return Checkpoint{
		Position:       b.Off,
		CurrentStart:   b.start,
		Current:        b.current,
		AfterNewline:   b.afterNewline,
		LineBreak:      b.lineBreak,
		DiagnosticsLen: len(b.diags),
	}
}

func (b *Base) Rewind(cp Checkpoint) {
	b.Off = cp.Position
	b.start = cp.CurrentStart
	b.current = cp.Current
	b.afterNewline = cp.AfterNewline
	b.lineBreak = cp.LineBreak
	// lookahead must not leave duplicate diagnostics behind
	b.diags = b.diags[:cp.DiagnosticsLen]
}

func (b *Base) Finish() []diag.Diagnostic {
	out := b.diags
	b.diags = nil
	return out
}

// Report records a lex error over r.
func (b *Base) Report(code diag.Code, r source.TextRange, msg string) *diag.Diagnostic {
	b.diags = append(b.diags, diag.NewError(code, r, msg))
	return &b.diags[len(b.diags)-1]
}

// Push records a diagnostic built by the caller, notes included.
func (b *Base) Push(d diag.Diagnostic) {
	b.diags = append(b.diags, d)
}
