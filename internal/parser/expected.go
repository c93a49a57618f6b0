package parser

import (
	"strings"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// found describes what sits at r for "but instead ..." messages.
func found(p *Parser, r source.TextRange) string {
	if p.At(syntax.EOF) && r.Start >= p.CurRange().Start {
		return "but instead the file ends"
	}
	text := p.Text(r)
	if text == "" {
		text = p.CurText()
	}
	return "but instead found `" + text + "`"
}

// ExpectedToken reports that kind is missing at the current token.
func ExpectedToken(p *Parser, kind syntax.Kind) diag.Diagnostic {
	r := p.CurRange()
	return diag.NewError(diag.SynExpectedToken, r,
		"expected "+p.lang.Display(kind)+" "+found(p, r))
}

// ExpectedNode reports that a construct called name is missing over r.
func ExpectedNode(p *Parser, code diag.Code, name string, r source.TextRange) diag.Diagnostic {
	return diag.NewError(code, r, "expected "+article(name)+" "+found(p, r))
}

// ExpectedAny reports that none of the named constructs is present over r.
func ExpectedAny(p *Parser, code diag.Code, names []string, r source.TextRange) diag.Diagnostic {
	var list string
	switch len(names) {
	case 0:
		list = "something"
	case 1:
		list = article(names[0])
	default:
		list = "one of " + strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
	return diag.NewError(code, r, "expected "+list+" "+found(p, r))
}

func article(name string) string {
	if name != "" && strings.ContainsRune("aeiou", rune(name[0])) {
		return "an " + name
	}
	return "a " + name
}
