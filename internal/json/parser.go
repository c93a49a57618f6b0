// Package json parses JSON and JSONC into a lossless syntax tree.
package json

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/parser"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

type jsonParser struct {
	*parser.Parser
	opts Options
}

// Result is a parse result plus the facts derived from the tree.
type Result struct {
	parser.Result
	Facts Facts
}

// Parse parses src. Like every grammar here it never fails.
func Parse(src string, opts Options) Result {
	return ParseWithCache(src, opts, nil)
}

func ParseWithCache(src string, opts Options, cache *syntax.NodeCache) Result {
	p := &jsonParser{Parser: parser.New(Lang, NewLexer(src, opts)), opts: opts}
	parseRoot(p)
	res := p.Finish(cache)
	return Result{Result: res, Facts: CollectFacts(res.Root)}
}

// parseRoot parses a single value. Anything after it is wrapped into one
// bogus value.
func parseRoot(p *jsonParser) {
	m := p.Start()
	parseValue(p).OrAddDiagnostic(p, expectedValue)
	if !p.At(syntax.EOF) {
		extra, err := parser.Recover(p, parser.TokenSetRecovery{Kind: BogusValue})
		if err == nil {
			r := extra.Range(p)
			p.Error(diag.NewError(diag.SynJSONExtraValue, r, "End of file expected").
				WithNote(r, "Use an array for a sequence of values: `[1, 2]`"))
		}
	}
	p.Expect(syntax.EOF)
	m.Complete(p, Root)
}

var valueStart = syntax.NewTokenSet(LBrace, LBracket, StringLiteral, NumberLiteral, TrueKw, FalseKw, NullKw, Ident)

func parseValue(p *jsonParser) parser.ParsedSyntax {
	switch p.Cur() {
	case LBrace:
		return parseObject(p)
	case LBracket:
		return parseArray(p)
	case StringLiteral:
		return literal(p, StringValue)
	case NumberLiteral:
		return literal(p, NumberValue)
	case TrueKw, FalseKw:
		return literal(p, BooleanValue)
	case NullKw:
		return literal(p, NullValue)
	case Ident:
		m := p.Start()
		p.Error(diag.NewError(diag.SynJSONExpectedValue, p.CurRange(), "String values must be double quoted"))
		p.Bump(Ident)
		return parser.Present(m.Complete(p, BogusValue))
	}
	return parser.Absent()
}

func literal(p *jsonParser, kind syntax.Kind) parser.ParsedSyntax {
	m := p.Start()
	p.BumpAny()
	return parser.Present(m.Complete(p, kind))
}

func parseObject(p *jsonParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(LBrace)
	parser.ParseSeparatedList(p, memberList{})
	p.checkTrailingComma(RBrace)
	p.Expect(RBrace)
	return parser.Present(m.Complete(p, ObjectValue))
}

func parseArray(p *jsonParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(LBracket)
	parser.ParseSeparatedList(p, elementList{})
	p.checkTrailingComma(RBracket)
	p.Expect(RBracket)
	return parser.Present(m.Complete(p, ArrayValue))
}

// checkTrailingComma runs after a list that stopped at end: the list itself
// accepts a trailing comma so the option decides here.
func (p *jsonParser) checkTrailingComma(end syntax.Kind) {
	if p.opts.AllowTrailingCommas || !p.At(end) {
		return
	}
	if last, _ := p.Last(); last != Comma {
		return
	}
	commaEnd, _ := p.LastEnd()
	r := source.NewRange(commaEnd-1, commaEnd)
	p.Error(diag.NewError(diag.SynJSONTrailingComma, r, "JSON standard does not allow trailing commas").
		WithNote(r, "Enable allow_trailing_commas to accept them.").
		WithFix("Remove the trailing comma", diag.DeleteEdit(r, ",")))
}

type memberList struct{}

func (memberList) ListKind() syntax.Kind                          { return MemberList }
func (memberList) ParseElement(p *jsonParser) parser.ParsedSyntax { return parseMember(p) }
func (memberList) IsAtListEnd(p *jsonParser) bool                 { return p.At(RBrace) }
func (memberList) SeparatingElementKind() syntax.Kind             { return Comma }
func (memberList) AllowTrailingSeparator() bool                   { return true }
func (memberList) AllowEmptyElements() bool                       { return false }

func (memberList) Recover(p *jsonParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	r := parser.TokenSetRecovery{Kind: BogusMember, Set: syntax.NewTokenSet(Comma, RBrace, RBracket), Soft: true}
	return parsed.OrRecover(p, r, expectedProperty)
}

// parseMember parses `"name": value`. A bare or single quoted name keeps
// the member and gets a diagnostic.
func parseMember(p *jsonParser) parser.ParsedSyntax {
	if !p.At(StringLiteral) && !p.At(Ident) && !(p.AtTS(valueStart) && p.NthAt(1, Colon)) {
		return parser.Absent()
	}
	m := p.Start()
	if p.At(StringLiteral) {
		name := p.Start()
		p.Bump(StringLiteral)
		name.Complete(p, MemberName)
	} else {
		p.ErrAndBump(diag.NewError(diag.SynJSONExpectedProperty, p.CurRange(), "Property key must be double quoted"), BogusMemberName)
	}
	p.Expect(Colon)
	parseValue(p).OrAddDiagnostic(p, expectedValue)
	return parser.Present(m.Complete(p, Member))
}

type elementList struct{}

func (elementList) ListKind() syntax.Kind                          { return ArrayElementList }
func (elementList) ParseElement(p *jsonParser) parser.ParsedSyntax { return parseValue(p) }
func (elementList) IsAtListEnd(p *jsonParser) bool                 { return p.At(RBracket) }
func (elementList) SeparatingElementKind() syntax.Kind             { return Comma }
func (elementList) AllowTrailingSeparator() bool                   { return true }
func (elementList) AllowEmptyElements() bool                       { return false }

func (elementList) Recover(p *jsonParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	r := parser.TokenSetRecovery{Kind: BogusValue, Set: syntax.NewTokenSet(Comma, RBracket, RBrace), Soft: true}
	return parsed.OrRecover(p, r, expectedValue)
}

func expectedValue(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedAny(p, diag.SynJSONExpectedValue, []string{"an array", "an object", "a literal"}, r)
}

func expectedProperty(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedNode(p, diag.SynJSONExpectedProperty, "property", r)
}
