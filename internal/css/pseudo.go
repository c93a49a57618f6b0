package css

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/parser"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

var cssModules = parser.FeatureFunc[*cssParser](func(p *cssParser) bool { return p.opts.CSSModules })

func isModulesPseudo(name string) bool {
	return name == "global" || name == "local"
}

// parsePseudoClassSelector parses `:name` or `:name(...)`. Unknown names
// keep their node and get a diagnostic on the name.
func parsePseudoClassSelector(p *cssParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(Colon)
	switch {
	case p.atFunction():
		parsePseudoClassFunction(p)
	case p.At(Ident):
		if isModulesPseudo(p.keyword()) {
			parser.ParseExclusiveSyntax(p, cssModules, parsePseudoClassIdentifier, cssModulesOnly)
		} else {
			parsePseudoClassIdentifier(p)
		}
	default:
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
	}
	return parser.Present(m.Complete(p, PseudoClassSelector))
}

func parsePseudoClassIdentifier(p *cssParser) parser.ParsedSyntax {
	name, r := p.keyword(), p.CurRange()
	if _, ok := pseudoClassIdentifiers[name]; !ok && !isVendorPrefixed(name) {
		p.Error(unknownPseudoClass(p.CurText(), r))
	}
	m := p.Start()
	p.bumpIdentAs(Identifier, p.selectorContext())
	return parser.Present(m.Complete(p, PseudoClassIdentifier))
}

func parsePseudoClassFunction(p *cssParser) parser.ParsedSyntax {
	name := p.keyword()
	kind, ok := pseudoClassFunctions[name]
	if !ok {
		kind, ok = pseudoClassFunctions[unprefixed(name)]
		if ok && kind != pseudoCompoundSelectorList {
			kind, ok = pseudoUnknown, false
		}
	}
	if !ok {
		return parseUnknownPseudoFunction(p, BogusPseudoClass, unknownPseudoClass)
	}
	if isModulesPseudo(name) {
		return parser.ParseExclusiveSyntax(p, cssModules, func(p *cssParser) parser.ParsedSyntax {
			return parsePseudoFunctionBody(p, kind)
		}, cssModulesOnly)
	}
	return parsePseudoFunctionBody(p, kind)
}

// parseUnknownPseudoFunction wraps `name(...)` into a bogus node.
func parseUnknownPseudoFunction(p *cssParser, bogus syntax.Kind, report func(string, source.TextRange) diag.Diagnostic) parser.ParsedSyntax {
	p.Error(report(p.CurText(), p.CurRange()))
	m := p.Start()
	p.Bump(Ident)
	p.Bump(LParen)
	skipBalanced(p, RParen)
	p.EatWithContext(RParen, p.selectorContext())
	return parser.Present(m.Complete(p, bogus))
}

func parsePseudoFunctionBody(p *cssParser, kind pseudoKind) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(Ident)
	if kind == pseudoNth {
		p.BumpWithContext(LParen, PseudoNthContext)
	} else {
		p.Bump(LParen)
	}

	var node syntax.Kind
	switch kind {
	case pseudoIdentifier:
		node = PseudoClassFunctionIdentifier
		if p.At(Ident) {
			p.bumpIdentAs(Identifier, RegularContext)
		} else {
			p.Error(expectedIdentifier(p.Parser, p.CurRange()))
		}
	case pseudoSelector:
		node = PseudoClassFunctionSelector
		parseSelector(p).OrAddDiagnostic(p, expectedSelector)
	case pseudoSelectorList:
		node = PseudoClassFunctionSelectorList
		parser.ParseSeparatedList(p, selectorList{end: RParen})
	case pseudoCompoundSelector:
		node = PseudoClassFunctionCompoundSelector
		parseCompoundSelector(p).OrAddDiagnostic(p, expectedCompoundSelector)
	case pseudoCompoundSelectorList:
		node = PseudoClassFunctionCompoundSelectorList
		parser.ParseSeparatedList(p, compoundSelectorList{})
	case pseudoRelativeSelectorList:
		node = PseudoClassFunctionRelativeSelectorList
		parser.ParseSeparatedList(p, relativeSelectorList{end: RParen})
	case pseudoValueList:
		node = PseudoClassFunctionValueList
		parser.ParseSeparatedList(p, pseudoValues{})
	case pseudoNth:
		node = PseudoClassFunctionNth
		parseNthSelector(p)
	}

	if !p.At(RParen) && !p.At(syntax.EOF) {
		p.Error(parser.ExpectedToken(p.Parser, RParen))
		skipBalanced(p, RParen)
	}
	if !p.EatWithContext(RParen, p.selectorContext()) {
		p.Error(parser.ExpectedToken(p.Parser, RParen))
	}
	return parser.Present(m.Complete(p, node))
}

// pseudoValues holds the identifiers and strings of :lang() and :state().
type pseudoValues struct{}

func (pseudoValues) ListKind() syntax.Kind              { return PseudoValueList }
func (pseudoValues) IsAtListEnd(p *cssParser) bool      { return p.At(RParen) }
func (pseudoValues) SeparatingElementKind() syntax.Kind { return Comma }
func (pseudoValues) AllowTrailingSeparator() bool       { return false }
func (pseudoValues) AllowEmptyElements() bool           { return false }

func (pseudoValues) ParseElement(p *cssParser) parser.ParsedSyntax {
	switch p.Cur() {
	case Ident:
		return parser.Present(p.bumpIdentAs(Identifier, RegularContext))
	case StringLiteral:
		m := p.Start()
		p.Bump(StringLiteral)
		return parser.Present(m.Complete(p, String))
	}
	return parser.Absent()
}

func (pseudoValues) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	r := parser.TokenSetRecovery{Kind: BogusPseudoClass, Set: syntax.NewTokenSet(Comma, RParen, LBrace)}
	return parsed.OrRecover(p, r, expectedIdentifier)
}

// parseNthSelector parses the An+B argument of the :nth-* family with an
// optional `of <selectors>` tail.
func parseNthSelector(p *cssParser) {
	m := p.Start()
	parseNth(p).OrAddDiagnostic(p, expectedNth)
	if p.atKeyword("of") {
		of := p.Start()
		p.Bump(Ident)
		parser.ParseSeparatedList(p, selectorList{end: RParen})
		of.Complete(p, PseudoClassOfNthSelector)
	}
	m.Complete(p, PseudoClassNthSelector)
}

var nthSign = syntax.NewTokenSet(Plus, Minus)

func (p *cssParser) atNthSymbol() bool {
	if !p.At(Ident) {
		return false
	}
	t := p.CurText()
	return t == "n" || t == "N"
}

func parseNth(p *cssParser) parser.ParsedSyntax {
	if p.atKeyword("odd") || p.atKeyword("even") {
		return parser.Present(p.bumpIdentAs(PseudoClassNthIdentifier, RegularContext))
	}
	if !p.AtTS(nthSign) && !p.At(NumberLiteral) && !p.atNthSymbol() {
		return parser.Absent()
	}

	m := p.Start()
	p.EatTSWithContext(nthSign, PseudoNthContext)
	if p.At(NumberLiteral) {
		value := p.Start()
		p.BumpWithContext(NumberLiteral, PseudoNthContext)
		if !p.atNthSymbol() {
			value.Complete(p, Number)
			return parser.Present(m.Complete(p, PseudoClassNthNumber))
		}
		value.Complete(p, NthMultiplier)
	}

	if !p.atNthSymbol() {
		p.Error(expectedNth(p.Parser, p.CurRange()))
		return parser.Present(m.Complete(p, PseudoClassNth))
	}
	p.BumpWithContext(Ident, PseudoNthContext)
	if p.AtTS(nthSign) {
		offset := p.Start()
		p.EatTSWithContext(nthSign, PseudoNthContext)
		if p.At(NumberLiteral) {
			num := p.Start()
			p.BumpWithContext(NumberLiteral, PseudoNthContext)
			num.Complete(p, Number)
		} else {
			p.Error(parser.ExpectedToken(p.Parser, NumberLiteral))
		}
		offset.Complete(p, NthOffset)
	}
	return parser.Present(m.Complete(p, PseudoClassNth))
}

// parsePseudoElementSelector parses `::name` or `::name(...)`.
func parsePseudoElementSelector(p *cssParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(ColonColon)
	switch {
	case p.atFunction():
		parsePseudoElementFunction(p)
	case p.At(Ident):
		name, r := p.keyword(), p.CurRange()
		if _, ok := pseudoElementIdentifiers[name]; !ok && !isVendorPrefixed(name) {
			p.Error(unknownPseudoElement(p.CurText(), r))
		}
		id := p.Start()
		p.bumpIdentAs(Identifier, p.selectorContext())
		id.Complete(p, PseudoElementIdentifier)
	default:
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
	}
	return parser.Present(m.Complete(p, PseudoElementSelector))
}

func parsePseudoElementFunction(p *cssParser) parser.ParsedSyntax {
	kind, ok := pseudoElementFunctions[p.keyword()]
	if !ok {
		return parseUnknownPseudoFunction(p, BogusPseudoElement, unknownPseudoElement)
	}
	m := p.Start()
	p.Bump(Ident)
	p.Bump(LParen)
	node := PseudoElementFunctionIdentifier
	if kind == pseudoSelector {
		node = PseudoElementFunctionSelector
		parseSelector(p).OrAddDiagnostic(p, expectedSelector)
	} else {
		if !p.At(Ident) {
			p.Error(expectedIdentifier(p.Parser, p.CurRange()))
		}
		for p.At(Ident) {
			p.bumpIdentAs(Identifier, RegularContext)
		}
	}
	if !p.At(RParen) && !p.At(syntax.EOF) {
		p.Error(parser.ExpectedToken(p.Parser, RParen))
		skipBalanced(p, RParen)
	}
	if !p.EatWithContext(RParen, p.selectorContext()) {
		p.Error(parser.ExpectedToken(p.Parser, RParen))
	}
	return parser.Present(m.Complete(p, node))
}
