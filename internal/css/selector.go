package css

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/parser"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

var (
	subSelectorStart = syntax.NewTokenSet(Dot, Hash, LBracket, Colon, ColonColon)
	selectorStart    = subSelectorStart.Union(syntax.NewTokenSet(Ident, Star, Pipe, Amp))
	combinators      = syntax.NewTokenSet(Gt, Plus, Tilde, PipePipe, SpaceLiteral)

	selectorRecoveryStop = syntax.NewTokenSet(LBrace, RBrace, Semicolon)

	// tokens after which whitespace is trivia rather than a combinator
	selectorEnd = combinators.Union(syntax.NewTokenSet(LBrace, Comma, RParen, syntax.EOF))
)

func (p *cssParser) atSelectorStart() bool {
	return p.AtTS(selectorStart)
}

// selectorContext is the lex context for the token after the one being
// bumped: inside a selector a whitespace is a descendant combinator, unless
// the selector ends or another combinator follows anyway.
func (p *cssParser) selectorContext() lexer.Context {
	if p.NthAtTS(1, selectorEnd) {
		return RegularContext
	}
	return SelectorContext
}

// selectorList is `selector (, selector)*` ending before end.
type selectorList struct {
	end syntax.Kind
}

func (selectorList) ListKind() syntax.Kind                         { return SelectorList }
func (selectorList) ParseElement(p *cssParser) parser.ParsedSyntax { return parseSelector(p) }
func (l selectorList) IsAtListEnd(p *cssParser) bool               { return p.At(l.end) }
func (selectorList) SeparatingElementKind() syntax.Kind            { return Comma }
func (selectorList) AllowTrailingSeparator() bool                  { return false }
func (selectorList) AllowEmptyElements() bool                      { return false }

func (l selectorList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	return parsed.OrRecover(p, selectorRecovery(l.end), expectedSelector)
}

// selectorRecovery resumes at the next selector of the list, at the list
// end or on a new line. It is soft so that a stray `}` or `;` ends the list
// instead of being swallowed.
func selectorRecovery(end syntax.Kind) parser.Recovery {
	return parser.RecoveryFunc{
		Kind: BogusSelector,
		Soft: true,
		At: func(p *parser.Parser) bool {
			return p.At(Comma) || p.At(end) || p.AtTS(selectorRecoveryStop) || p.HasPrecedingLineBreak()
		},
	}
}

// parseSelector parses a complex selector: compound selectors joined by
// combinators, left associative.
func parseSelector(p *cssParser) parser.ParsedSyntax {
	left := parseCompoundSelector(p)
	if left.IsAbsent() {
		return left
	}
	for p.AtTS(combinators) {
		m := left.Precede(p)
		p.BumpAny()
		parseCompoundSelector(p).OrAddDiagnostic(p, expectedCompoundSelector)
		left = parser.Present(m.Complete(p, ComplexSelector))
	}
	return left
}

type relativeSelectorList struct {
	end syntax.Kind
}

func (relativeSelectorList) ListKind() syntax.Kind              { return RelativeSelectorList }
func (l relativeSelectorList) IsAtListEnd(p *cssParser) bool    { return p.At(l.end) }
func (relativeSelectorList) SeparatingElementKind() syntax.Kind { return Comma }
func (relativeSelectorList) AllowTrailingSeparator() bool       { return false }
func (relativeSelectorList) AllowEmptyElements() bool           { return false }

func (relativeSelectorList) ParseElement(p *cssParser) parser.ParsedSyntax {
	return parseRelativeSelector(p)
}

func (l relativeSelectorList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	return parsed.OrRecover(p, selectorRecovery(l.end), expectedRelativeSelector)
}

// parseRelativeSelector is a selector with an optional leading combinator,
// as in :has(> img) or a nested `> a { }`.
func parseRelativeSelector(p *cssParser) parser.ParsedSyntax {
	if !p.atSelectorStart() && !p.AtTS(combinators) {
		return parser.Absent()
	}
	m := p.Start()
	if p.AtTS(combinators) {
		p.BumpAny()
	}
	parseSelector(p).OrAddDiagnostic(p, expectedSelector)
	return parser.Present(m.Complete(p, RelativeSelector))
}

type compoundSelectorList struct{}

func (compoundSelectorList) ListKind() syntax.Kind              { return CompoundSelectorList }
func (compoundSelectorList) IsAtListEnd(p *cssParser) bool      { return p.At(RParen) }
func (compoundSelectorList) SeparatingElementKind() syntax.Kind { return Comma }
func (compoundSelectorList) AllowTrailingSeparator() bool       { return false }
func (compoundSelectorList) AllowEmptyElements() bool           { return false }

func (compoundSelectorList) ParseElement(p *cssParser) parser.ParsedSyntax {
	return parseCompoundSelector(p)
}

func (compoundSelectorList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	return parsed.OrRecover(p, selectorRecovery(RParen), expectedCompoundSelector)
}

// parseCompoundSelector parses `&* simple? sub*` with no whitespace in
// between.
func parseCompoundSelector(p *cssParser) parser.ParsedSyntax {
	if !p.atSelectorStart() {
		return parser.Absent()
	}
	m := p.Start()

	nested := p.Start()
	for p.At(Amp) {
		n := p.Start()
		p.BumpWithContext(Amp, p.selectorContext())
		n.Complete(p, NestedSelector)
	}
	nested.Complete(p, NestedSelectorList)

	parseSimpleSelector(p)
	parser.ParseNodeList(p, subSelectorList{})
	return parser.Present(m.Complete(p, CompoundSelector))
}

// parseSimpleSelector parses a type or universal selector with an optional
// namespace prefix.
func parseSimpleSelector(p *cssParser) parser.ParsedSyntax {
	if !p.At(Ident) && !p.At(Star) && !p.At(Pipe) {
		return parser.Absent()
	}
	m := p.Start()
	parseNamespace(p)
	switch {
	case p.At(Ident):
		p.bumpIdentAs(Identifier, p.selectorContext())
		return parser.Present(m.Complete(p, TypeSelector))
	case p.At(Star):
		p.BumpWithContext(Star, p.selectorContext())
		return parser.Present(m.Complete(p, UniversalSelector))
	}
	p.Error(expectedIdentifier(p.Parser, p.CurRange()))
	return parser.Present(m.Complete(p, TypeSelector))
}

// parseNamespace parses `ns|`, `*|` or a bare `|`.
func parseNamespace(p *cssParser) parser.ParsedSyntax {
	named := p.At(Ident) && p.NthAt(1, Pipe)
	universal := p.At(Star) && p.NthAt(1, Pipe)
	if !named && !universal && !p.At(Pipe) {
		return parser.Absent()
	}
	m := p.Start()
	switch {
	case named:
		pm := p.Start()
		p.Bump(Ident)
		pm.Complete(p, NamedNamespacePrefix)
	case universal:
		pm := p.Start()
		p.Bump(Star)
		pm.Complete(p, UniversalNamespacePrefix)
	}
	p.Bump(Pipe)
	return parser.Present(m.Complete(p, Namespace))
}

type subSelectorList struct{}

func (subSelectorList) ListKind() syntax.Kind                         { return SubSelectorList }
func (subSelectorList) ParseElement(p *cssParser) parser.ParsedSyntax { return parseSubSelector(p) }
func (subSelectorList) IsAtListEnd(p *cssParser) bool                 { return !p.AtTS(subSelectorStart) }

func (subSelectorList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	r := parser.TokenSetRecovery{Kind: BogusSubSelector, Set: subSelectorStart}
	return parsed.OrRecover(p, r, expectedSelector)
}

func parseSubSelector(p *cssParser) parser.ParsedSyntax {
	switch p.Cur() {
	case Dot:
		return parseNamedSubSelector(p, Dot, ClassSelector)
	case Hash:
		return parseNamedSubSelector(p, Hash, IDSelector)
	case LBracket:
		return parseAttributeSelector(p)
	case Colon:
		return parsePseudoClassSelector(p)
	case ColonColon:
		return parsePseudoElementSelector(p)
	}
	return parser.Absent()
}

// parseNamedSubSelector parses `.name` and `#name`.
func parseNamedSubSelector(p *cssParser, prefix, kind syntax.Kind) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(prefix)
	if p.At(Ident) {
		p.bumpIdentAs(CustomIdentifier, p.selectorContext())
	} else {
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
	}
	return parser.Present(m.Complete(p, kind))
}

var attributeMatchers = syntax.NewTokenSet(Eq, TildeEq, PipeEq, CaretEq, DollarEq, StarEq)

// parseAttributeSelector parses `[ns|name op value modifier]`.
func parseAttributeSelector(p *cssParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(LBracket)

	name := p.Start()
	parseNamespace(p)
	if p.At(Ident) {
		p.bumpIdentAs(Identifier, RegularContext)
	} else {
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
	}
	name.Complete(p, AttributeName)

	if p.AtTS(attributeMatchers) {
		matcher := p.Start()
		p.BumpAny()
		value := p.Start()
		switch {
		case p.At(Ident):
			p.bumpIdentAs(Identifier, RegularContext)
		case p.At(StringLiteral):
			s := p.Start()
			p.Bump(StringLiteral)
			s.Complete(p, String)
		default:
			p.Error(parser.ExpectedAny(p.Parser, diag.SynCSSBadAttribute, []string{"identifier", "string"}, p.CurRange()))
		}
		value.Complete(p, AttributeMatcherValue)
		if p.atKeyword("i") || p.atKeyword("s") {
			p.Bump(Ident)
		}
		matcher.Complete(p, AttributeMatcher)
	}

	if !p.At(RBracket) {
		p.Error(parser.ExpectedToken(p.Parser, RBracket))
		skipBalanced(p, RBracket)
	}
	p.EatWithContext(RBracket, p.selectorContext())
	return parser.Present(m.Complete(p, AttributeSelector))
}
