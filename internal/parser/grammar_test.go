package parser_test

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/parser"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// A small bracket-list grammar used to drive the parser machinery:
//
//	root  = item* EOF
//	item  = IDENT | NUMBER | '#' NUMBER | '@' IDENT | array | item ('+' item)*
//	array = '[' (item (',' item)*)? ']'

const (
	identK syntax.Kind = syntax.FirstGrammarKind + iota
	numK
	commaK
	lbrackK
	rbrackK
	plusK
	hashK
	atK
)

const (
	rootK syntax.Kind = syntax.MaxTokenKind + iota
	itemListK
	nameK
	numberK
	hashItemK
	atRuleK
	arrayK
	arrayItemsK
	binaryK
	bogusK
	bogusAtK
)

// digitsCtx lexes every digit as its own NUMBER token.
const digitsCtx lexer.Context = 1

var lang = syntax.NewLanguage("brackets", map[syntax.Kind]syntax.KindInfo{
	identK:      {Name: "IDENT", Flags: syntax.FlagToken},
	numK:        {Name: "NUMBER", Flags: syntax.FlagToken},
	commaK:      {Name: "COMMA", Text: ",", Flags: syntax.FlagToken},
	lbrackK:     {Name: "L_BRACK", Text: "[", Flags: syntax.FlagToken},
	rbrackK:     {Name: "R_BRACK", Text: "]", Flags: syntax.FlagToken},
	plusK:       {Name: "PLUS", Text: "+", Flags: syntax.FlagToken},
	hashK:       {Name: "HASH", Text: "#", Flags: syntax.FlagToken},
	atK:         {Name: "AT", Text: "@", Flags: syntax.FlagToken},
	rootK:       {Name: "ROOT", Flags: syntax.FlagNode | syntax.FlagRoot},
	itemListK:   {Name: "ITEM_LIST", Flags: syntax.FlagNode | syntax.FlagList},
	nameK:       {Name: "NAME", Flags: syntax.FlagNode},
	numberK:     {Name: "NUMBER_ITEM", Flags: syntax.FlagNode},
	hashItemK:   {Name: "HASH_ITEM", Flags: syntax.FlagNode},
	atRuleK:     {Name: "AT_ITEM", Flags: syntax.FlagNode, Bogus: bogusAtK},
	arrayK:      {Name: "ARRAY", Flags: syntax.FlagNode},
	arrayItemsK: {Name: "ARRAY_ITEMS", Flags: syntax.FlagNode | syntax.FlagList},
	binaryK:     {Name: "BINARY", Flags: syntax.FlagNode},
	bogusK:      {Name: "BOGUS_ITEM", Flags: syntax.FlagNode | syntax.FlagBogus},
	bogusAtK:    {Name: "BOGUS_AT_ITEM", Flags: syntax.FlagNode | syntax.FlagBogus},
})

type testLexer struct {
	lexer.Base
}

func newTestLexer(src string) *testLexer {
	return &testLexer{Base: lexer.NewBase(src)}
}

func (l *testLexer) NextToken(ctx lexer.Context) syntax.Kind {
	l.Begin()
	if l.EOF() {
		return l.Emit(syntax.EOF)
	}
	if l.ScanBOM() {
		return l.Emit(syntax.UnicodeBOM)
	}
	c := l.Peek()
	switch {
	case lexer.IsWhitespace(c):
		return l.Emit(l.ScanWhitespace())
	case c == '/' && l.PeekAt(1) == '*':
		return l.Emit(l.ScanBlockComment())
	case c == '/' && l.PeekAt(1) == '/':
		return l.Emit(l.ScanLineComment())
	case lexer.IsASCIILetter(c):
		for lexer.IsASCIILetter(l.Peek()) {
			l.Bump()
		}
		return l.Emit(identK)
	case lexer.IsDec(c):
		l.Bump()
		for ctx != digitsCtx && lexer.IsDec(l.Peek()) {
			l.Bump()
		}
		return l.Emit(numK)
	}
	l.Bump()
	switch c {
	case ',':
		return l.Emit(commaK)
	case '[':
		return l.Emit(lbrackK)
	case ']':
		return l.Emit(rbrackK)
	case '+':
		return l.Emit(plusK)
	case '#':
		return l.Emit(hashK)
	case '@':
		return l.Emit(atK)
	}
	l.Reset(lexer.Mark(l.TokenStart()))
	l.BumpRune()
	r := l.CurrentRange()
	l.Report(diag.LexUnknownChar, r, "unexpected character `"+r.Slice(l.Src)+"`")
	return l.Emit(syntax.ErrorToken)
}

type testParser struct {
	*parser.Parser
	lenient bool
	allowAt bool
}

func newTestParser(src string) *testParser {
	return &testParser{Parser: parser.New(lang, newTestLexer(src))}
}

var itemStart = syntax.NewTokenSet(identK, numK, lbrackK, hashK, atK)

func expectedItem(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedNode(p, diag.SynExpectedNode, "item", r)
}

func parseRoot(p *testParser) parser.Result {
	m := p.Start()
	parser.ParseNodeList(p, itemList{})
	p.Expect(syntax.EOF)
	m.Complete(p, rootK)
	return p.Finish(nil)
}

func parseItem(p *testParser) parser.ParsedSyntax {
	lhs := parseOperand(p)
	for p.At(plusK) {
		m := lhs.Precede(p)
		p.Bump(plusK)
		parseOperand(p).OrAddDiagnostic(p, expectedItem)
		lhs = parser.Present(m.Complete(p, binaryK))
	}
	return lhs
}

func parseOperand(p *testParser) parser.ParsedSyntax {
	switch p.Cur() {
	case identK:
		m := p.Start()
		p.Bump(identK)
		return parser.Present(m.Complete(p, nameK))
	case numK:
		m := p.Start()
		p.Bump(numK)
		return parser.Present(m.Complete(p, numberK))
	case hashK:
		m := p.Start()
		p.BumpWithContext(hashK, digitsCtx)
		p.Expect(numK)
		return parser.Present(m.Complete(p, hashItemK))
	case atK:
		return parser.ParseExclusiveSyntax(p, atFeature, parseAtItem, func(p *testParser, m parser.CompletedMarker) diag.Diagnostic {
			return diag.NewError(diag.SynUnsupportedSyntax, m.Range(p), "at items are not enabled")
		})
	case lbrackK:
		return parseArray(p)
	}
	return parser.Absent()
}

var atFeature = parser.FeatureFunc[*testParser](func(p *testParser) bool { return p.allowAt })

func parseAtItem(p *testParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(atK)
	p.Expect(identK)
	return parser.Present(m.Complete(p, atRuleK))
}

func parseArray(p *testParser) parser.ParsedSyntax {
	m := p.Start()
	p.Bump(lbrackK)
	if p.lenient {
		parser.ParseSeparatedList(p, lenientItems{})
	} else {
		parser.ParseSeparatedList(p, arrayItems{})
	}
	p.Expect(rbrackK)
	return parser.Present(m.Complete(p, arrayK))
}

type itemList struct{}

func (itemList) ListKind() syntax.Kind                          { return itemListK }
func (itemList) ParseElement(p *testParser) parser.ParsedSyntax { return parseItem(p) }
func (itemList) IsAtListEnd(*testParser) bool                   { return false }

func (itemList) Recover(p *testParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	return parsed.OrRecover(p, parser.TokenSetRecovery{Kind: bogusK, Set: itemStart.With(rbrackK)}, expectedItem)
}

type arrayItems struct{}

func (arrayItems) ListKind() syntax.Kind                          { return arrayItemsK }
func (arrayItems) ParseElement(p *testParser) parser.ParsedSyntax { return parseItem(p) }
func (arrayItems) IsAtListEnd(p *testParser) bool                 { return p.At(rbrackK) }
func (arrayItems) SeparatingElementKind() syntax.Kind             { return commaK }
func (arrayItems) AllowTrailingSeparator() bool                   { return false }
func (arrayItems) AllowEmptyElements() bool                       { return false }

func (arrayItems) Recover(p *testParser, parsed parser.ParsedSyntax) (parser.CompletedMarker, error) {
	set := syntax.NewTokenSet(commaK, rbrackK)
	return parsed.OrRecover(p, parser.TokenSetRecovery{Kind: bogusK, Set: set, LineBreak: true}, expectedItem)
}

// lenientItems is arrayItems with trailing and empty elements allowed.
type lenientItems struct{ arrayItems }

func (lenientItems) AllowTrailingSeparator() bool { return true }
func (lenientItems) AllowEmptyElements() bool     { return true }

// stuckList never consumes anything and must trip the progress check.
type stuckList struct{}

func (stuckList) ListKind() syntax.Kind                        { return itemListK }
func (stuckList) ParseElement(*testParser) parser.ParsedSyntax { return parser.Absent() }
func (stuckList) IsAtListEnd(*testParser) bool                 { return false }

func (stuckList) Recover(*testParser, parser.ParsedSyntax) (parser.CompletedMarker, error) {
	return parser.CompletedMarker{}, nil
}
