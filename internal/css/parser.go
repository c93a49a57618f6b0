// Package css parses CSS into a lossless syntax tree. The grammar covers
// rules, nested rules, selectors level 4, declarations, component values and
// generic at-rules, plus the CSS Modules extensions behind Options.
package css

import (
	"golang.org/x/text/cases"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/parser"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

type cssParser struct {
	*parser.Parser
	opts Options
	// fold is per parser: a Caser keeps state and is not safe to share
	fold cases.Caser
}

func newParser(src string, opts Options) *cssParser {
	return &cssParser{
		Parser: parser.New(Lang, NewLexer(src, opts)),
		opts:   opts,
		fold:   cases.Fold(),
	}
}

// Result is a parse result plus the counts derived from the tree.
type Result struct {
	parser.Result
	Facts Facts
}

// Parse parses src. It never fails: malformed input ends up in bogus nodes
// and diagnostics.
func Parse(src string, opts Options) Result {
	return ParseWithCache(src, opts, nil)
}

// ParseWithCache is Parse sharing green tokens through cache.
func ParseWithCache(src string, opts Options, cache *syntax.NodeCache) Result {
	p := newParser(src, opts)
	parseRoot(p)
	res := p.Finish(cache)
	return Result{Result: res, Facts: CollectFacts(res.Root)}
}

func parseRoot(p *cssParser) {
	m := p.Start()
	parser.ParseNodeList(p, rootItemList{})
	p.Expect(syntax.EOF)
	m.Complete(p, Root)
}

// keyword is the case folded text of the current token.
func (p *cssParser) keyword() string {
	return p.fold.String(p.CurText())
}

func (p *cssParser) atKeyword(kw string) bool {
	return p.At(Ident) && p.keyword() == kw
}

func (p *cssParser) atFunction() bool {
	return p.At(Ident) && p.NthAt(1, LParen)
}

var ruleStart = selectorStart.Union(syntax.NewTokenSet(At, CDO, CDC))

type rootItemList struct{}

func (rootItemList) ListKind() syntax.Kind                         { return RootItemList }
func (rootItemList) ParseElement(p *cssParser) parser.ParsedSyntax { return parseRootItem(p) }
func (rootItemList) IsAtListEnd(*cssParser) bool                   { return false }

func (rootItemList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	return parsed.OrRecover(p, parser.TokenSetRecovery{Kind: BogusRule, Set: ruleStart}, expectedRule)
}

func parseRootItem(p *cssParser) parser.ParsedSyntax {
	switch {
	case p.At(At):
		return parseAtRule(p)
	case p.At(CDO), p.At(CDC):
		m := p.Start()
		p.BumpAny()
		return parser.Present(m.Complete(p, HTMLCommentDelimiter))
	}
	return parseQualifiedRule(p)
}

// parseQualifiedRule parses `selectors { ... }`.
func parseQualifiedRule(p *cssParser) parser.ParsedSyntax {
	if !p.atSelectorStart() {
		return parser.Absent()
	}
	m := p.Start()
	parser.ParseSeparatedList(p, selectorList{end: LBrace})
	parseDeclarationOrRuleBlock(p)
	return parser.Present(m.Complete(p, QualifiedRule))
}

// skipBalanced consumes tokens up to the close that matches an already
// consumed opener, keeping nested brackets paired. It stops before `;`,
// `{` or `}` at the outer level and before the end of input.
func skipBalanced(p *cssParser, end syntax.Kind) {
	var stack []syntax.Kind
	for !p.At(syntax.EOF) {
		cur := p.Cur()
		if len(stack) == 0 && (cur == end || cur == Semicolon || cur == LBrace || cur == RBrace) {
			return
		}
		switch cur {
		case LParen:
			stack = append(stack, RParen)
		case LBracket:
			stack = append(stack, RBracket)
		case RParen, RBracket:
			if n := len(stack); n > 0 && stack[n-1] == cur {
				stack = stack[:n-1]
			}
		}
		p.BumpAny()
	}
}

func (p *cssParser) report(code diag.Code, r source.TextRange, msg string) {
	p.Error(diag.NewError(code, r, msg))
}

// bumpIdentAs wraps the current identifier into a node of kind, lexing the
// next token with ctx.
func (p *cssParser) bumpIdentAs(kind syntax.Kind, ctx lexer.Context) parser.CompletedMarker {
	m := p.Start()
	p.BumpWithContext(Ident, ctx)
	return m.Complete(p, kind)
}
