package css

import (
	"github.com/biomejs/biome-sub019/internal/parser"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// parseDeclarationOrRuleBlock parses `{ ... }` holding declarations,
// nested rules and at-rules in any order.
func parseDeclarationOrRuleBlock(p *cssParser) parser.ParsedSyntax {
	if !p.At(LBrace) {
		p.Error(expectedBlock(p.Parser, p.CurRange()))
		return parser.Absent()
	}
	m := p.Start()
	p.Bump(LBrace)
	parser.ParseNodeList(p, declarationOrRuleList{})
	p.Expect(RBrace)
	return parser.Present(m.Complete(p, DeclarationOrRuleBlock))
}

var blockItemRecovery = parser.TokenSetRecovery{
	Kind:      BogusDeclarationItem,
	Set:       syntax.NewTokenSet(Semicolon, RBrace, At),
	LineBreak: true,
}

type declarationOrRuleList struct{}

func (declarationOrRuleList) ListKind() syntax.Kind         { return DeclarationOrRuleList }
func (declarationOrRuleList) IsAtListEnd(p *cssParser) bool { return p.At(RBrace) }

func (declarationOrRuleList) ParseElement(p *cssParser) parser.ParsedSyntax {
	return parseDeclarationOrRule(p)
}

func (declarationOrRuleList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	return parsed.OrRecover(p, blockItemRecovery, expectedDeclarationItem)
}

func (p *cssParser) atDeclarationStart() bool {
	return p.At(Ident) && p.NthAt(1, Colon)
}

func (p *cssParser) atNestedRuleStart() bool {
	return p.atSelectorStart() || p.AtTS(combinators)
}

// parseDeclarationOrRule tells `a:hover {}` from `color: red` by trying a
// clean declaration first and a nested rule second. The nested rule wins as
// soon as its selectors reach `{`, even when they reported errors such as an
// unknown pseudo-class; its block is then parsed with recovery enabled, so
// only the selectors are ever parsed twice. When both attempts fail it
// commits to one of them and reports errors.
func parseDeclarationOrRule(p *cssParser) parser.ParsedSyntax {
	switch {
	case p.At(Semicolon):
		m := p.Start()
		p.Bump(Semicolon)
		return parser.Present(m.Complete(p, EmptyDeclaration))
	case p.At(At):
		return parseAtRule(p)
	}

	if p.atDeclarationStart() {
		var decl parser.ParsedSyntax
		ok := p.TryParse(func() bool {
			before := len(p.Diagnostics())
			decl = parseDeclarationWithSemicolon(p)
			return len(p.Diagnostics()) == before
		})
		if ok {
			return decl
		}
	}

	if p.atNestedRuleStart() {
		var m parser.Marker
		ok := p.TryParse(func() bool {
			m = p.Start()
			parser.ParseSeparatedList(p, relativeSelectorList{end: LBrace})
			return p.At(LBrace)
		})
		if ok {
			parseDeclarationOrRuleBlock(p)
			return parser.Present(m.Complete(p, NestedQualifiedRule))
		}
	}

	switch {
	case p.atDeclarationStart():
		return parseDeclarationWithSemicolon(p)
	case p.atNestedRuleStart():
		return parseNestedQualifiedRule(p)
	}
	return parser.Absent()
}

func parseNestedQualifiedRule(p *cssParser) parser.ParsedSyntax {
	m := p.Start()
	parser.ParseSeparatedList(p, relativeSelectorList{end: LBrace})
	parseDeclarationOrRuleBlock(p)
	return parser.Present(m.Complete(p, NestedQualifiedRule))
}

// parseDeclarationWithSemicolon parses a declaration and its `;`, which may
// be left out before the closing brace.
func parseDeclarationWithSemicolon(p *cssParser) parser.ParsedSyntax {
	decl := parseDeclaration(p)
	if decl.IsAbsent() {
		return decl
	}
	m := decl.Precede(p)
	if !p.At(RBrace) && !p.At(syntax.EOF) {
		p.Expect(Semicolon)
	}
	return parser.Present(m.Complete(p, DeclarationWithSemicolon))
}

func parseDeclaration(p *cssParser) parser.ParsedSyntax {
	if !p.At(Ident) {
		return parser.Absent()
	}
	m := p.Start()
	prop := p.Start()
	custom := isDashed(p.CurText())
	if custom {
		p.bumpIdentAs(DashedIdentifier, RegularContext)
	} else {
		p.bumpIdentAs(Identifier, RegularContext)
	}
	p.Expect(Colon)
	values := declarationValues()
	// custom properties may be empty
	if !custom && !p.atComponentValue(values) {
		p.Error(expectedValue(p.Parser, p.CurRange()))
	}
	parser.ParseNodeList(p, values)
	prop.Complete(p, GenericProperty)
	parseImportant(p)
	return parser.Present(m.Complete(p, Declaration))
}
