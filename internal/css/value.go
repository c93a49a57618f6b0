package css

import (
	"strings"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/parser"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

type valueMode uint8

const (
	// valueDeclaration accepts only well formed component values and
	// commas; anything else ends the declaration value.
	valueDeclaration valueMode = iota
	// valueParameter is a function argument: any token up to `,` or `)`.
	valueParameter
	// valueNested is the inside of a bracket pair or an at-rule prelude:
	// any token up to close.
	valueNested
)

// componentValueList is a run of component values in the given mode.
type componentValueList struct {
	kind  syntax.Kind
	mode  valueMode
	close syntax.Kind
}

func declarationValues() componentValueList {
	return componentValueList{kind: ComponentValueList, mode: valueDeclaration}
}

func nestedValues(kind, end syntax.Kind) componentValueList {
	return componentValueList{kind: kind, mode: valueNested, close: end}
}

func (l componentValueList) ListKind() syntax.Kind                         { return l.kind }
func (l componentValueList) ParseElement(p *cssParser) parser.ParsedSyntax { return parseComponentValue(p, l) }
func (l componentValueList) IsAtListEnd(p *cssParser) bool                 { return !p.atComponentValue(l) }

func (componentValueList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	r := parser.TokenSetRecovery{Kind: BogusPropertyValue, Set: syntax.NewTokenSet(Semicolon, RBrace, RParen)}
	return parsed.OrRecover(p, r, expectedValue)
}

func (p *cssParser) atComponentValue(l componentValueList) bool {
	switch p.Cur() {
	case syntax.EOF, Semicolon, LBrace, RBrace:
		return false
	case Ident, StringLiteral, NumberLiteral, DimensionValue, PercentageValue,
		Hash, LParen, LBracket, Plus, Minus, Star, Slash, Eq:
		return true
	case Comma:
		return l.mode != valueParameter
	}
	return l.mode != valueDeclaration && !p.At(l.close)
}

func isDashed(name string) bool {
	return strings.HasPrefix(name, "--")
}

func parseComponentValue(p *cssParser, l componentValueList) parser.ParsedSyntax {
	if !p.atComponentValue(l) {
		return parser.Absent()
	}
	if p.At(Ident) {
		switch {
		case p.atFunction() && p.atKeyword("url"):
			return parseURLFunction(p)
		case p.atFunction():
			return parseFunction(p)
		case isDashed(p.CurText()):
			return parser.Present(p.bumpIdentAs(DashedIdentifier, RegularContext))
		}
		return parser.Present(p.bumpIdentAs(Identifier, RegularContext))
	}

	m := p.Start()
	switch p.Cur() {
	case StringLiteral:
		p.Bump(StringLiteral)
		return parser.Present(m.Complete(p, String))
	case NumberLiteral:
		p.Bump(NumberLiteral)
		return parser.Present(m.Complete(p, Number))
	case DimensionValue:
		// the lexer only produces a dimension when a unit follows
		p.BumpRemap(NumberLiteral)
		p.Bump(Ident)
		return parser.Present(m.Complete(p, RegularDimension))
	case PercentageValue:
		p.BumpRemap(NumberLiteral)
		p.Bump(Percent)
		return parser.Present(m.Complete(p, Percentage))
	case Hash:
		p.BumpWithContext(Hash, ColorContext)
		p.Expect(ColorLiteral)
		return parser.Present(m.Complete(p, Color))
	case LParen, LBracket:
		end := RParen
		if p.At(LBracket) {
			end = RBracket
		}
		p.BumpAny()
		parser.ParseNodeList(p, nestedValues(ComponentValueList, end))
		p.Expect(end)
		return parser.Present(m.Complete(p, SimpleBlock))
	}
	p.BumpAny()
	return parser.Present(m.Complete(p, GenericDelimiter))
}

// parseFunction parses `name(arg, arg)`.
func parseFunction(p *cssParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(Ident)
	p.Bump(LParen)
	parser.ParseSeparatedList(p, parameterList{})
	p.Expect(RParen)
	return parser.Present(m.Complete(p, Function))
}

type parameterList struct{}

func (parameterList) ListKind() syntax.Kind                         { return ParameterList }
func (parameterList) ParseElement(p *cssParser) parser.ParsedSyntax { return parseParameter(p) }
func (parameterList) IsAtListEnd(p *cssParser) bool                 { return p.At(RParen) }
func (parameterList) SeparatingElementKind() syntax.Kind            { return Comma }
func (parameterList) AllowTrailingSeparator() bool                  { return false }
func (parameterList) AllowEmptyElements() bool                      { return false }

func (parameterList) Recover(p *cssParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	r := parser.TokenSetRecovery{Kind: BogusParameter, Set: syntax.NewTokenSet(Comma, RParen, Semicolon, LBrace, RBrace)}
	return parsed.OrRecover(p, r, expectedParameter)
}

var parameterValues = componentValueList{kind: ComponentValueList, mode: valueParameter, close: RParen}

func parseParameter(p *cssParser) parser.ParsedSyntax {
	if !p.atComponentValue(parameterValues) {
		return parser.Absent()
	}
	m := p.Start()
	parser.ParseNodeList(p, parameterValues)
	return parser.Present(m.Complete(p, Parameter))
}

// parseURLFunction parses url() whose argument is either a string or a raw
// unquoted value.
func parseURLFunction(p *cssParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(Ident)
	p.BumpWithContext(LParen, URLRawContext)
	switch p.Cur() {
	case StringLiteral:
		s := p.Start()
		p.Bump(StringLiteral)
		s.Complete(p, String)
	case URLRawLiteral:
		raw := p.Start()
		p.Bump(URLRawLiteral)
		raw.Complete(p, URLValueRaw)
	}
	p.Expect(RParen)
	return parser.Present(m.Complete(p, URLFunction))
}

// parseImportant parses `! important`.
func parseImportant(p *cssParser) parser.ParsedSyntax {
	if !p.At(Bang) {
		return parser.Absent()
	}
	m := p.Start()
	p.Bump(Bang)
	if p.atKeyword("important") {
		p.Bump(Ident)
	} else {
		p.report(diag.SynCSSExpectedIdentifier, p.CurRange(), "Expected `important` after `!`")
	}
	return parser.Present(m.Complete(p, DeclarationImportant))
}
