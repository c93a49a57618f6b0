package css

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/parser"
	"github.com/biomejs/biome-sub019/internal/source"
)

func expectedRule(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedAny(p, diag.SynCSSExpectedRule, []string{"qualified rule", "at rule"}, r)
}

func expectedSelector(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedNode(p, diag.SynCSSExpectedSelector, "selector", r)
}

func expectedCompoundSelector(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedNode(p, diag.SynCSSExpectedSelector, "compound selector", r)
}

func expectedRelativeSelector(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedNode(p, diag.SynCSSExpectedSelector, "relative selector", r)
}

func expectedIdentifier(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedNode(p, diag.SynCSSExpectedIdentifier, "identifier", r)
}

func expectedDeclarationItem(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedAny(p, diag.SynCSSExpectedDeclaration, []string{"declaration", "at rule", "nested rule"}, r)
}

func expectedValue(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedNode(p, diag.SynCSSExpectedValue, "value", r)
}

func expectedBlock(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedNode(p, diag.SynCSSExpectedBlock, "block", r)
}

func expectedNth(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedAny(p, diag.SynCSSBadNth, []string{"`odd`", "`even`", "an+b expression"}, r)
}

func expectedKeyframesSelector(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedAny(p, diag.SynCSSExpectedSelector, []string{"`from`", "`to`", "percentage"}, r)
}

func expectedParameter(p *parser.Parser, r source.TextRange) diag.Diagnostic {
	return parser.ExpectedNode(p, diag.SynCSSExpectedValue, "parameter", r)
}

func unknownPseudoClass(name string, r source.TextRange) diag.Diagnostic {
	return diag.NewError(diag.SynCSSUnknownPseudoClass, r, "Unexpected unknown pseudo-class "+name)
}

func unknownPseudoElement(name string, r source.TextRange) diag.Diagnostic {
	return diag.NewError(diag.SynCSSUnknownPseudoElem, r, "Unexpected unknown pseudo-element "+name)
}

func cssModulesOnly(p *cssParser, m parser.CompletedMarker) diag.Diagnostic {
	r := m.Range(p)
	return diag.NewError(diag.SynCSSModulesOnly, r, "`"+p.Text(r)+"` is only available with CSS Modules").
		WithNote(r, "Enable the css_modules option to use this syntax.")
}
