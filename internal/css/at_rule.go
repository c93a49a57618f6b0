package css

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/parser"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// parseAtRule parses `@name prelude { ... }` or `@name prelude;`.
// Keyframes get their own block grammar and @value is a CSS Modules
// extension; every other at-rule is generic.
func parseAtRule(p *cssParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(At)
	switch {
	case !p.At(Ident):
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
		parseAtRuleRest(p)
	case isKeyframesName(p.keyword()):
		parseKeyframesAtRule(p)
	case p.atKeyword("value"):
		parser.ParseExclusiveSyntax(p, cssModules, parseValueAtRule, cssModulesOnly)
	default:
		p.Bump(Ident)
		parseAtRuleRest(p)
	}
	return parser.Present(m.Complete(p, AtRule))
}

func parseAtRuleRest(p *cssParser) {
	parser.ParseNodeList(p, nestedValues(AtRulePrelude, LBrace))
	switch {
	case p.At(LBrace):
		parseDeclarationOrRuleBlock(p)
	case p.At(Semicolon):
		p.Bump(Semicolon)
	default:
		p.Error(parser.ExpectedAny(p.Parser, diag.SynCSSExpectedBlock, []string{"`{`", "`;`"}, p.CurRange()))
	}
}

// parseValueAtRule parses the CSS Modules `@value name: value;` and
// `@value a, b from "./file";` forms.
func parseValueAtRule(p *cssParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(Ident)
	if !p.At(Ident) {
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
	}
	parser.ParseNodeList(p, nestedValues(ComponentValueList, Semicolon))
	if !p.At(RBrace) && !p.At(syntax.EOF) {
		p.Expect(Semicolon)
	}
	return parser.Present(m.Complete(p, ValueAtRule))
}

func parseKeyframesAtRule(p *cssParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(Ident)
	switch p.Cur() {
	case Ident:
		p.bumpIdentAs(CustomIdentifier, RegularContext)
	case StringLiteral:
		s := p.Start()
		p.Bump(StringLiteral)
		s.Complete(p, String)
	default:
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
	}
	parseKeyframesBlock(p)
	return parser.Present(m.Complete(p, KeyframesAtRule))
}

func parseKeyframesBlock(p *cssParser) parser.ParsedSyntax {
	if !p.At(LBrace) {
		p.Error(expectedBlock(p.Parser, p.CurRange()))
		return parser.Absent()
	}
	m := p.Start()
	p.Bump(LBrace)
	parser.ParseNodeList(p, keyframesItemList{})
	p.Expect(RBrace)
	return parser.Present(m.Complete(p, KeyframesBlock))
}

var keyframesSelectorStart = syntax.NewTokenSet(Ident, PercentageValue)

type keyframesItemList struct{}

func (keyframesItemList) ListKind() syntax.Kind                         { return KeyframesItemList }
func (keyframesItemList) ParseElement(p *cssParser) parser.ParsedSyntax { return parseKeyframesItem(p) }
func (keyframesItemList) IsAtListEnd(p *cssParser) bool                 { return p.At(RBrace) }

func (keyframesItemList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	r := parser.TokenSetRecovery{Kind: BogusKeyframesItem, Set: keyframesSelectorStart.With(RBrace)}
	return parsed.OrRecover(p, r, expectedKeyframesSelector)
}

// parseKeyframesItem parses `from, 50% { ... }`.
func parseKeyframesItem(p *cssParser) parser.ParsedSyntax {
	if !p.AtTS(keyframesSelectorStart) {
		return parser.Absent()
	}
	m := p.Start()
	parser.ParseSeparatedList(p, keyframesSelectorList{})
	parseDeclarationOrRuleBlock(p)
	return parser.Present(m.Complete(p, KeyframesItem))
}

type keyframesSelectorList struct{}

func (keyframesSelectorList) ListKind() syntax.Kind              { return KeyframesSelectorList }
func (keyframesSelectorList) IsAtListEnd(p *cssParser) bool      { return p.At(LBrace) }
func (keyframesSelectorList) SeparatingElementKind() syntax.Kind { return Comma }
func (keyframesSelectorList) AllowTrailingSeparator() bool       { return false }
func (keyframesSelectorList) AllowEmptyElements() bool           { return false }

func (keyframesSelectorList) ParseElement(p *cssParser) parser.ParsedSyntax {
	switch p.Cur() {
	case Ident:
		if !p.atKeyword("from") && !p.atKeyword("to") {
			p.Error(expectedKeyframesSelector(p.Parser, p.CurRange()))
		}
		m := p.Start()
		p.Bump(Ident)
		return parser.Present(m.Complete(p, KeyframesSelector))
	case PercentageValue:
		m := p.Start()
		pct := p.Start()
		p.BumpRemap(NumberLiteral)
		p.Bump(Percent)
		pct.Complete(p, Percentage)
		return parser.Present(m.Complete(p, KeyframesSelector))
	}
	return parser.Absent()
}

func (keyframesSelectorList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	r := parser.TokenSetRecovery{Kind: BogusSelector, Set: syntax.NewTokenSet(Comma, LBrace, RBrace)}
	return parsed.OrRecover(p, r, expectedKeyframesSelector)
}
