package css_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biomejs/biome-sub019/internal/css"
	"github.com/biomejs/biome-sub019/internal/css/ast"
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
	"github.com/biomejs/biome-sub019/internal/testkit"
)

// parse checks the tree invariants on every result it hands out.
func parse(t *testing.T, src string, opts css.Options) css.Result {
	t.Helper()
	res := css.Parse(src, opts)
	require.NoError(t, testkit.CheckTreeInvariants(res.Root, src))
	ranges := make([]source.TextRange, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		ranges[i] = d.Range()
	}
	require.NoError(t, testkit.DiagnosticsInBounds(ranges, src))
	return res
}

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func firstRule(t *testing.T, root *syntax.SyntaxNode) ast.QualifiedRule {
	t.Helper()
	items := root.ChildOfKind(css.RootItemList)
	require.NotNil(t, items)
	rule, ok := ast.CastQualifiedRule(items.FirstChild())
	require.True(t, ok, "first root item is %s", items.FirstChild())
	return rule
}

func findAll(root *syntax.SyntaxNode, kind syntax.Kind) []*syntax.SyntaxNode {
	var out []*syntax.SyntaxNode
	for n := range root.Descendants() {
		if n.Kind() == kind {
			out = append(out, n)
		}
	}
	return out
}

func TestCompoundSelectors(t *testing.T) {
	res := parse(t, "div.class#id[attr], a:hover {}", css.Options{})
	require.Empty(t, res.Diagnostics)

	sels, ok := firstRule(t, res.Root).Selectors()
	require.True(t, ok)
	compounds := sels.Compounds()
	require.Len(t, compounds, 2)

	name, ok := compounds[0].TypeName()
	require.True(t, ok)
	assert.Equal(t, "div", name.Text())
	assert.Equal(t, []syntax.Kind{css.ClassSelector, css.IDSelector, css.AttributeSelector}, compounds[0].SubSelectorKinds())

	name, ok = compounds[1].TypeName()
	require.True(t, ok)
	assert.Equal(t, "a", name.Text())
	assert.Equal(t, []syntax.Kind{css.PseudoClassSelector}, compounds[1].SubSelectorKinds())

	assert.Equal(t, 2, res.Facts.Selectors)
	assert.Equal(t, 1, res.Facts.Rules)
}

func TestUnknownPseudoClassKeepsRule(t *testing.T) {
	src := "a:unknown-pseudo { color: red; }"
	res := parse(t, src, css.Options{})
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, diag.SynCSSUnknownPseudoClass, d.Code)
	assert.Equal(t, source.NewRange(2, 16), d.Range())
	assert.Equal(t, "Unexpected unknown pseudo-class unknown-pseudo", d.Message)

	rule := firstRule(t, res.Root)
	sels, ok := rule.Selectors()
	require.True(t, ok)
	compounds := sels.Compounds()
	require.Len(t, compounds, 1)
	subs := compounds[0].SubSelectors()
	require.Len(t, subs, 1)
	pseudo, ok := ast.CastPseudoClassSelector(subs[0])
	require.True(t, ok)
	pname, ok := pseudo.Name()
	require.True(t, ok)
	assert.Equal(t, "unknown-pseudo", pname.Text())

	block, ok := rule.Block()
	require.True(t, ok)
	decls := block.Declarations()
	require.Len(t, decls, 1)
	prop, ok := decls[0].Name()
	require.True(t, ok)
	assert.Equal(t, "color", prop.Text())
	assert.Equal(t, "red", decls[0].Value().TextTrimmed())
	assert.False(t, decls[0].Important())
	assert.Empty(t, findAll(res.Root, css.BogusBlock))
}

func TestVendorPrefixedPseudoClass(t *testing.T) {
	res := parse(t, "input:-moz-focusring, :-webkit-any(a, b) {}", css.Options{})
	assert.Empty(t, res.Diagnostics)
}

func TestNth(t *testing.T) {
	tests := []struct {
		src  string
		kind syntax.Kind
	}{
		{"li:nth-child(2n+1) {}", css.PseudoClassNth},
		{"li:nth-child(-n + 3) {}", css.PseudoClassNth},
		{"li:nth-of-type(odd) {}", css.PseudoClassNthIdentifier},
		{"li:nth-last-child(3) {}", css.PseudoClassNthNumber},
		{"li:nth-child(2n of .item) {}", css.PseudoClassOfNthSelector},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parse(t, tt.src, css.Options{})
			require.Empty(t, res.Diagnostics)
			assert.Len(t, findAll(res.Root, tt.kind), 1)
		})
	}

	res := parse(t, "li:nth-child(2n+1) {}", css.Options{})
	require.Len(t, findAll(res.Root, css.NthMultiplier), 1)
	offsets := findAll(res.Root, css.NthOffset)
	require.Len(t, offsets, 1)
	assert.Equal(t, "+1", offsets[0].Text())
}

func TestNthErrors(t *testing.T) {
	res := parse(t, "li:nth-child(foo) {}", css.Options{})
	assert.Contains(t, codes(res.Diagnostics), diag.SynCSSBadNth)
	assert.Len(t, findAll(res.Root, css.QualifiedRule), 1)
}

func TestAttributeSelectors(t *testing.T) {
	for _, src := range []string{
		"[href] {}",
		`a[href^="http" i] {}`,
		"[data-x=y] {}",
		"[xlink|href] {}",
		"[*|lang|=en] {}",
	} {
		t.Run(src, func(t *testing.T) {
			res := parse(t, src, css.Options{})
			assert.Empty(t, res.Diagnostics)
			assert.Len(t, findAll(res.Root, css.AttributeSelector), 1)
		})
	}

	res := parse(t, "[a=b c {}", css.Options{})
	assert.NotEmpty(t, res.Diagnostics)
}

func TestPseudoElements(t *testing.T) {
	for _, src := range []string{
		"p::before {}",
		"::part(label) {}",
		"::slotted(span) {}",
		"p::-webkit-scrollbar {}",
		"a:after {}",
	} {
		t.Run(src, func(t *testing.T) {
			res := parse(t, src, css.Options{})
			assert.Empty(t, res.Diagnostics)
		})
	}

	res := parse(t, "p::nope {}", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSUnknownPseudoElem}, codes(res.Diagnostics))

	res = parse(t, "p::nope(x) {}", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSUnknownPseudoElem}, codes(res.Diagnostics))
	assert.Len(t, findAll(res.Root, css.BogusPseudoElement), 1)
}

func TestUnknownPseudoFunctionIsBogus(t *testing.T) {
	res := parse(t, "a:frobnicate(b, c) { color: red }", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSUnknownPseudoClass}, codes(res.Diagnostics))
	bogus := findAll(res.Root, css.BogusPseudoClass)
	require.Len(t, bogus, 1)
	assert.Equal(t, "frobnicate(b, c)", bogus[0].TextTrimmed())
	assert.Equal(t, 1, res.Facts.Declarations)
}

func TestSelectorFunctions(t *testing.T) {
	for _, src := range []string{
		"a:not(.b, .c) {}",
		"a:is(h1, h2 > span) {}",
		"a:has(> img, + p) {}",
		":host(.dark) {}",
		"p:lang(en, \"fr\") {}",
		"p:dir(rtl) {}",
		"a > b + c ~ d || e {}",
		"ns|a *|b |c * {}",
	} {
		t.Run(src, func(t *testing.T) {
			res := parse(t, src, css.Options{})
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestPseudoValueList(t *testing.T) {
	res := parse(t, "p:lang(en, \"fr\"), p:state(open) {}", css.Options{})
	require.Empty(t, res.Diagnostics)
	lists := findAll(res.Root, css.PseudoValueList)
	require.Len(t, lists, 2)
	assert.Equal(t, `en, "fr"`, lists[0].TextTrimmed())
	assert.Equal(t, "open", lists[1].TextTrimmed())
}

func TestDescendantCombinator(t *testing.T) {
	res := parse(t, "ul  li a {}", css.Options{})
	require.Empty(t, res.Diagnostics)
	sels, ok := firstRule(t, res.Root).Selectors()
	require.True(t, ok)
	assert.Len(t, sels.Compounds(), 3)
	assert.Len(t, findAll(res.Root, css.ComplexSelector), 2)
}

func TestNestedRules(t *testing.T) {
	src := `a {
  color: red;
  &:hover { color: blue; }
  > b { margin: 0 }
  span:focus { outline: none }
}`
	res := parse(t, src, css.Options{})
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, 4, res.Facts.Rules)
	assert.Equal(t, 4, res.Facts.Declarations)
	assert.Len(t, findAll(res.Root, css.NestedQualifiedRule), 3)
	assert.Len(t, findAll(res.Root, css.NestedSelector), 1)
}

func TestNestedRuleWithUnknownPseudoClass(t *testing.T) {
	src := "div { a:unknown-pseudo { color: red; } }"
	res := parse(t, src, css.Options{})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.SynCSSUnknownPseudoClass, res.Diagnostics[0].Code)
	assert.Equal(t, source.NewRange(8, 22), res.Diagnostics[0].Range())

	nested := findAll(res.Root, css.NestedQualifiedRule)
	require.Len(t, nested, 1)
	assert.Equal(t, "a:unknown-pseudo { color: red; }", nested[0].TextTrimmed())
	assert.Empty(t, findAll(res.Root, css.BogusRule))
	assert.Empty(t, findAll(res.Root, css.BogusDeclarationItem))
	assert.Equal(t, src, firstRule(t, res.Root).Syntax().Text())
}

func TestNestedRuleWithBrokenBlockKeepsStructure(t *testing.T) {
	src := "div { a:hover { color: red; !! } }"
	res := parse(t, src, css.Options{})
	require.NotEmpty(t, res.Diagnostics)

	require.Len(t, findAll(res.Root, css.NestedQualifiedRule), 1)
	assert.NotEmpty(t, findAll(res.Root, css.BogusDeclarationItem))
	assert.Empty(t, findAll(res.Root, css.BogusRule))
	assert.Equal(t, src, firstRule(t, res.Root).Syntax().Text())
}

func TestDeclarations(t *testing.T) {
	src := `a {
  margin: 0 auto !important;
  width: calc(100% - 10px);
  background: url(img/a.png) no-repeat, url("b.png");
  color: #ff0000;
  --gap: ;
  grid-area: 1 / 2 / 3;
  font: 12px/1.5 "Helvetica", sans-serif
}`
	res := parse(t, src, css.Options{})
	require.Empty(t, res.Diagnostics)

	block, ok := firstRule(t, res.Root).Block()
	require.True(t, ok)
	decls := block.Declarations()
	require.Len(t, decls, 7)
	assert.True(t, decls[0].Important())
	custom, ok := decls[4].Name()
	require.True(t, ok)
	assert.Equal(t, "--gap", custom.Text())

	assert.Len(t, findAll(res.Root, css.URLFunction), 2)
	assert.Len(t, findAll(res.Root, css.URLValueRaw), 1)
	assert.Len(t, findAll(res.Root, css.Color), 1)
	assert.Len(t, findAll(res.Root, css.Function), 1)
	assert.Len(t, findAll(res.Root, css.RegularDimension), 2)
}

func TestDeclarationErrors(t *testing.T) {
	res := parse(t, "a { color: ; margin: 0 }", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSExpectedValue}, codes(res.Diagnostics))
	assert.Equal(t, 2, res.Facts.Declarations)

	res = parse(t, "a { color: red !foo }", css.Options{})
	assert.Contains(t, codes(res.Diagnostics), diag.SynCSSExpectedIdentifier)

	res = parse(t, "a { color: #12 }", css.Options{})
	assert.Contains(t, codes(res.Diagnostics), diag.LexBadColor)
	assert.Equal(t, 1, res.Facts.Declarations)
}

func TestAtRules(t *testing.T) {
	tests := []struct {
		src   string
		rules int
		decls int
	}{
		{"@media screen and (min-width: 100px) { a { color: red } }", 2, 1},
		{"@import url(foo.css) screen;", 1, 0},
		{`@charset "utf-8";`, 1, 0},
		{"@font-face { font-family: x; src: url(x.woff2) }", 1, 2},
		{"@supports (display: grid) and (not (display: inline-grid)) { }", 1, 0},
		{"@page :first { margin: 1in }", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parse(t, tt.src, css.Options{})
			require.Empty(t, res.Diagnostics)
			assert.Equal(t, tt.rules, res.Facts.Rules)
			assert.Equal(t, tt.decls, res.Facts.Declarations)
		})
	}
}

func TestAtRuleErrors(t *testing.T) {
	res := parse(t, "@ {}", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSExpectedIdentifier}, codes(res.Diagnostics))

	res = parse(t, "@media screen", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSExpectedBlock}, codes(res.Diagnostics))
}

func TestKeyframes(t *testing.T) {
	src := "@keyframes spin { from { opacity: 0 } 50%, 75% { opacity: .5 } to { opacity: 1 } }"
	res := parse(t, src, css.Options{})
	require.Empty(t, res.Diagnostics)
	assert.Len(t, findAll(res.Root, css.KeyframesItem), 3)
	assert.Len(t, findAll(res.Root, css.KeyframesSelector), 4)
	assert.Equal(t, 3, res.Facts.Declarations)

	res = parse(t, "@-webkit-keyframes x { middle { top: 0 } }", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSExpectedSelector}, codes(res.Diagnostics))
	assert.Len(t, findAll(res.Root, css.KeyframesItem), 1)
}

func TestCSSModules(t *testing.T) {
	tests := []struct {
		src  string
		kind syntax.Kind
	}{
		{":global(.a) {}", css.PseudoClassFunctionSelector},
		{":local(.b) .c {}", css.PseudoClassFunctionSelector},
		{"@value primary: red;", css.ValueAtRule},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parse(t, tt.src, css.Options{CSSModules: true})
			require.Empty(t, res.Diagnostics)
			assert.Len(t, findAll(res.Root, tt.kind), 1)

			res = parse(t, tt.src, css.Options{})
			assert.Equal(t, []diag.Code{diag.SynCSSModulesOnly}, codes(res.Diagnostics))
			assert.Empty(t, findAll(res.Root, tt.kind))
			assert.Contains(t, res.Diagnostics[0].Message, "only available with CSS Modules")
		})
	}

	res := parse(t, ":global .a {}", css.Options{CSSModules: true})
	assert.Empty(t, res.Diagnostics)
	res = parse(t, ":global .a {}", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSModulesOnly}, codes(res.Diagnostics))
}

func TestRecovery(t *testing.T) {
	res := parse(t, "a { color: red; 123 ; margin: 0 }", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSExpectedDeclaration}, codes(res.Diagnostics))
	bogus := findAll(res.Root, css.BogusDeclarationItem)
	require.Len(t, bogus, 1)
	assert.Equal(t, "123", bogus[0].TextTrimmed())
	assert.Equal(t, 2, res.Facts.Declarations)

	res = parse(t, "} a {}", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynCSSExpectedRule}, codes(res.Diagnostics))
	require.Len(t, findAll(res.Root, css.BogusRule), 1)
	assert.Equal(t, 1, res.Facts.Rules)

	res = parse(t, "a, , b {}", css.Options{})
	assert.Equal(t, []diag.Code{diag.SynEmptyElement}, codes(res.Diagnostics))
	assert.Equal(t, 2, res.Facts.Selectors)
}

func TestMalformedInputStaysLossless(t *testing.T) {
	corpus := []string{
		"",
		"\uFEFFa{}",
		"a {",
		"a { color: red",
		"{}",
		"a b c",
		"a { b { c { d: e } }",
		"@media (",
		"a[",
		"a:",
		"a::",
		"a:nth-child(",
		"a:not(",
		"a { color: \"unterminated }",
		"a { background: url(unterminated",
		"/* unterminated",
		"<!-- a {} -->",
		"a { ;;; }",
		"a { : red }",
		"a{}}}}",
		"a { color: red !important !important }",
		"@keyframes { }",
		"@keyframes x { 10 { } }",
		"#",
		"a { --x: {a;b}; }",
		"a ? b {}",
		"\\",
		"a { x: y(((( }",
		"@value",
		"&",
		"a:has(",
		"a > > b {}",
	}
	for _, src := range corpus {
		t.Run(src, func(t *testing.T) {
			res := parse(t, src, css.Options{})
			again := css.Parse(src, css.Options{})
			assert.Equal(t, syntax.DebugString(res.Root), syntax.DebugString(again.Root))
			assert.Equal(t, codes(res.Diagnostics), codes(again.Diagnostics))
			for n := range res.Root.Descendants() {
				if css.Lang.IsBogus(n.Kind()) {
					assert.NotEmpty(t, n.Text())
				}
			}
		})
	}
}

func TestDeterministicRecovery(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts css.Options
	}{
		{"unclosed block", "a { color: red", css.Options{}},
		{"broken nested rule", "div { a:hover { color: red; !! } }", css.Options{}},
		{"unknown nested pseudo", "div { a:unknown-pseudo { color: red; } }", css.Options{}},
		{"deep unclosed nesting", "a { b { c { d { e: f", css.Options{}},
		{"stray tokens", "a ? b {} ) ] } c {}", css.Options{}},
		{"bad at rules", "@media ( { @keyframes { 10 { } } @value", css.Options{}},
		{"modules disabled", "a:global(.x) :local b {} @value x: 1;", css.Options{}},
		{"modules enabled", "a:global( :local( {} @value", css.Options{CSSModules: true}},
		{"wrong line comments", "a { // x\n color: red; ::: }", css.Options{AllowWrongLineComments: true}},
		{"broken functions", "a { x: y(((( ; background: url(x", css.Options{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			first := parse(t, tc.src, tc.opts)
			second := css.Parse(tc.src, tc.opts)
			require.NotEmpty(t, first.Diagnostics)
			assert.Equal(t, syntax.DebugString(first.Root), syntax.DebugString(second.Root))
			assert.Equal(t, first.Diagnostics, second.Diagnostics)
		})
	}
}

func TestSharedCache(t *testing.T) {
	cache := syntax.NewNodeCache()
	a := css.ParseWithCache("a { color: red }", css.Options{}, cache)
	b := css.ParseWithCache("b { color: red }", css.Options{}, cache)
	assert.Equal(t, "a { color: red }", a.Root.Text())
	assert.Equal(t, "b { color: red }", b.Root.Text())
}

func TestFacts(t *testing.T) {
	res := parse(t, "a, b > c { x: 1; y: 2 } @media print { d {} }", css.Options{})
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, css.Facts{Selectors: 3, Rules: 3, Declarations: 2}, res.Facts)
}

func TestDebugString(t *testing.T) {
	res := parse(t, "a{}", css.Options{})
	want := `CSS_ROOT@0..3
  CSS_ROOT_ITEM_LIST@0..3
    CSS_QUALIFIED_RULE@0..3
      CSS_SELECTOR_LIST@0..1
        CSS_COMPOUND_SELECTOR@0..1
          CSS_NESTED_SELECTOR_LIST@0..0
          CSS_TYPE_SELECTOR@0..1
            CSS_IDENTIFIER@0..1
              IDENT@0..1 "a" [] []
          CSS_SUB_SELECTOR_LIST@1..1
      CSS_DECLARATION_OR_RULE_BLOCK@1..3
        L_CURLY@1..2 "{" [] []
        CSS_DECLARATION_OR_RULE_LIST@2..2
        R_CURLY@2..3 "}" [] []
  EOF@3..3 "" [] []
`
	assert.Equal(t, want, syntax.DebugString(res.Root))
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, css.Options{CSSModules: true, AllowWrongLineComments: true}.Validate())
	assert.ErrorIs(t, css.Options{GritMetavariables: true}.Validate(), css.ErrGritMetavariables)
}

func TestWrongLineComments(t *testing.T) {
	src := "a {\n  // color: red;\n  margin: 0;\n}"
	res := parse(t, src, css.Options{AllowWrongLineComments: true})
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, 1, res.Facts.Declarations)
}
