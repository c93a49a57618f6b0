// Package parser is the grammar-independent half of every parser: the token
// source over a contextual lexer, marker based tree construction, list loops
// with error recovery, and the fold of parse events into a green tree.
package parser

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// Host is implemented by grammar parsers, which embed *Parser.
type Host interface {
	Base() *Parser
}

// Parser: состояние парсера на один файл
type Parser struct {
	lang     *syntax.Language
	source   *TokenSource
	events   []Event
	diags    []diag.Diagnostic
	skipping bool
	// open counts markers that are neither completed nor abandoned
	open int
	// speculative disables recovery while a TryParse is running
	speculative int
}

// New creates a parser reading tokens from lx.
func New(lang *syntax.Language, lx lexer.Lexer) *Parser {
	return &Parser{lang: lang, source: NewTokenSource(lx)}
}

func (p *Parser) Base() *Parser               { return p }
func (p *Parser) Language() *syntax.Language  { return p.lang }
func (p *Parser) Source() *TokenSource        { return p.source }
func (p *Parser) Cur() syntax.Kind            { return p.source.Current() }
func (p *Parser) CurRange() source.TextRange  { return p.source.CurrentRange() }
func (p *Parser) HasPrecedingLineBreak() bool { return p.source.HasPrecedingLineBreak() }

// Text returns the source text of r.
func (p *Parser) Text(r source.TextRange) string {
	return r.Slice(p.source.Text())
}

// CurText is the text of the current token without trivia.
func (p *Parser) CurText() string {
	return p.Text(p.CurRange())
}

func (p *Parser) At(kind syntax.Kind) bool           { return p.Cur() == kind }
func (p *Parser) AtTS(kinds syntax.TokenSet) bool    { return kinds.Contains(p.Cur()) }
func (p *Parser) Nth(n int) syntax.Kind              { return p.source.Nth(n) }
func (p *Parser) NthAt(n int, kind syntax.Kind) bool { return p.Nth(n) == kind }

func (p *Parser) NthAtTS(n int, kinds syntax.TokenSet) bool {
	return kinds.Contains(p.Nth(n))
}

func (p *Parser) HasNthPrecedingLineBreak(n int) bool {
	return p.source.HasNthPrecedingLineBreak(n)
}

// Start opens a node at the current token.
func (p *Parser) Start() Marker {
	pos := uint32(len(p.events))
	p.events = append(p.events, tombstone())
	p.open++
	return Marker{pos: pos, start: p.source.Position(), oldStart: pos}
}

// Bump consumes the current token, which must be of kind.
func (p *Parser) Bump(kind syntax.Kind) {
	p.BumpWithContext(kind, lexer.Regular)
}

// BumpWithContext consumes the current token, which must be of kind, and
// lexes the next one with ctx.
func (p *Parser) BumpWithContext(kind syntax.Kind, ctx lexer.Context) {
	if p.Cur() != kind {
		panic(fmt.Sprintf("expected %s but at %s", p.lang.KindName(kind), p.lang.KindName(p.Cur())))
	}
	p.doBump(kind, ctx)
}

// BumpTS consumes the current token, which must be in kinds.
func (p *Parser) BumpTS(kinds syntax.TokenSet) {
	if !p.AtTS(kinds) {
		panic(fmt.Sprintf("expected %s but at %s", kinds.Format(p.lang), p.lang.KindName(p.Cur())))
	}
	p.BumpAny()
}

// BumpAny consumes the current token whatever its kind. It panics at the end
// of input.
func (p *Parser) BumpAny() {
	kind := p.Cur()
	if kind == syntax.EOF {
		panic("BumpAny at the end of input")
	}
	p.doBump(kind, lexer.Regular)
}

// BumpRemap consumes the current token and records it as kind.
func (p *Parser) BumpRemap(kind syntax.Kind) {
	p.doBump(kind, lexer.Regular)
}

func (p *Parser) BumpRemapWithContext(kind syntax.Kind, ctx lexer.Context) {
	p.doBump(kind, ctx)
}

func (p *Parser) doBump(kind syntax.Kind, ctx lexer.Context) {
	p.events = append(p.events, Event{Kind: EventToken, Syntax: kind, End: p.CurRange().End})
	if p.skipping {
		p.source.SkipAsTrivia(ctx)
	} else {
		p.source.Bump(ctx)
	}
}

// Eat consumes the current token if it is of kind.
func (p *Parser) Eat(kind syntax.Kind) bool {
	return p.EatWithContext(kind, lexer.Regular)
}

func (p *Parser) EatWithContext(kind syntax.Kind, ctx lexer.Context) bool {
	if !p.At(kind) {
		return false
	}
	p.doBump(kind, ctx)
	return true
}

// EatTS consumes the current token if it is in kinds.
func (p *Parser) EatTS(kinds syntax.TokenSet) bool {
	return p.EatTSWithContext(kinds, lexer.Regular)
}

func (p *Parser) EatTSWithContext(kinds syntax.TokenSet, ctx lexer.Context) bool {
	if !p.AtTS(kinds) {
		return false
	}
	p.doBump(p.Cur(), ctx)
	return true
}

// Expect eats kind or reports that it is missing.
func (p *Parser) Expect(kind syntax.Kind) bool {
	return p.ExpectWithContext(kind, lexer.Regular)
}

func (p *Parser) ExpectWithContext(kind syntax.Kind, ctx lexer.Context) bool {
	if p.EatWithContext(kind, ctx) {
		return true
	}
	p.Error(ExpectedToken(p, kind))
	return false
}

// ParseAsSkippedTriviaTokens runs parse and turns every token it consumes
// into skipped trivia of the following token. Nodes started inside vanish.
func (p *Parser) ParseAsSkippedTriviaTokens(parse func()) {
	pos := len(p.events)
	p.skipping = true
	parse()
	p.skipping = false
	p.events = p.events[:pos]
}

// Error records d unless the previous diagnostic starts at the same offset;
// one error per position is enough and the first one is usually the best.
func (p *Parser) Error(d diag.Diagnostic) {
	if n := len(p.diags); n > 0 && p.diags[n-1].Range().Start == d.Range().Start {
		return
	}
	p.diags = append(p.diags, d)
}

// ErrAndBump wraps the current token into a node of kind and reports d.
func (p *Parser) ErrAndBump(d diag.Diagnostic, kind syntax.Kind) {
	m := p.Start()
	p.BumpAny()
	m.Complete(p, kind)
	p.Error(d)
}

// Diagnostics returns the parse diagnostics recorded so far.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.diags }

// Last returns the kind of the most recently consumed token.
func (p *Parser) Last() (syntax.Kind, bool) {
	for _, ev := range slices.Backward(p.events) {
		if ev.Kind == EventToken {
			return ev.Syntax, true
		}
	}
	return syntax.Tombstone, false
}

// LastEnd returns the end of the most recently consumed token.
func (p *Parser) LastEnd() (source.TextSize, bool) {
	for _, ev := range slices.Backward(p.events) {
		if ev.Kind == EventToken {
			return ev.End, true
		}
	}
	return 0, false
}

// Checkpoint captures the parser for a later Rewind.
type Checkpoint struct {
	source    TokenSourceCheckpoint
	eventsLen int
	diagsLen  int
	open      int
}

func (p *Parser) Checkpoint() Checkpoint {
	return Checkpoint{source: p.source.Checkpoint(), eventsLen: len(p.events), diagsLen: len(p.diags), open: p.open}
}

// Rewind drops every event, diagnostic and token consumed since cp.
// Markers started after cp are forgotten along with their events.
func (p *Parser) Rewind(cp Checkpoint) {
	p.source.Rewind(cp.source)
	p.events = p.events[:cp.eventsLen]
	p.diags = p.diags[:cp.diagsLen]
	p.open = cp.open
}

// TryParse runs parse speculatively: recovery is disabled and, when parse
// returns false, the parser is rewound as if nothing happened.
func (p *Parser) TryParse(parse func() bool) bool {
	cp := p.Checkpoint()
	p.speculative++
	ok := parse()
	p.speculative--
	if !ok {
		p.Rewind(cp)
	}
	return ok
}

// IsSpeculative reports whether a TryParse is running.
func (p *Parser) IsSpeculative() bool { return p.speculative > 0 }

// Finish folds the recorded events into a tree. The grammar must have
// consumed the EOF token and closed every marker.
func (p *Parser) Finish(cache *syntax.NodeCache) Result {
	if p.open != 0 {
		panic(fmt.Sprintf("%d markers were neither completed nor abandoned", p.open))
	}
	if !p.At(syntax.EOF) {
		panic(fmt.Sprintf("grammar stopped at %s before the end of input", p.CurRange()))
	}
	if last, _ := p.Last(); last != syntax.EOF {
		panic("grammar did not consume the EOF token")
	}
	trivia, lexDiags := p.source.Finish()
	builder := syntax.NewTreeBuilder(cache)
	sink := newTreeSink(p.source.Text(), trivia, builder)
	fold(p.events, sink)
	sink.finish()
	p.events = nil

	diags := make([]diag.Diagnostic, 0, len(lexDiags)+len(p.diags))
	diags = append(diags, lexDiags...)
	diags = append(diags, p.diags...)
	slices.SortStableFunc(diags, func(a, b diag.Diagnostic) int {
		return cmp.Compare(a.Range().Start, b.Range().Start)
	})
	return Result{Root: syntax.NewRoot(builder.Finish(), p.lang), Diagnostics: diags}
}

// Result is the outcome of one parse: a tree that always covers the whole
// input and the diagnostics found on the way.
type Result struct {
	Root        *syntax.SyntaxNode
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether any diagnostic is an error.
func (r Result) HasErrors() bool {
	return slices.ContainsFunc(r.Diagnostics, func(d diag.Diagnostic) bool {
		return d.Severity >= diag.SevError
	})
}
