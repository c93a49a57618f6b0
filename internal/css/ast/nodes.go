// Package ast holds typed views over CSS syntax trees. A view wraps a node
// of a known kind; accessors report pieces missing from malformed input
// with false or nil.
package ast

import (
	"slices"

	"github.com/biomejs/biome-sub019/internal/css"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// QualifiedRule is a top level or nested `selectors { ... }` rule.
type QualifiedRule struct{ node *syntax.SyntaxNode }

func CastQualifiedRule(n *syntax.SyntaxNode) (QualifiedRule, bool) {
	if n == nil || (n.Kind() != css.QualifiedRule && n.Kind() != css.NestedQualifiedRule) {
		return QualifiedRule{}, false
	}
	return QualifiedRule{n}, true
}

func (r QualifiedRule) Syntax() *syntax.SyntaxNode { return r.node }

// Selectors is the rule prelude; nested rules hold a relative selector list.
func (r QualifiedRule) Selectors() (SelectorList, bool) {
	for c := range r.node.Children() {
		if l, ok := CastSelectorList(c); ok {
			return l, true
		}
	}
	return SelectorList{}, false
}

func (r QualifiedRule) Block() (Block, bool) {
	return CastBlock(r.node.ChildOfKind(css.DeclarationOrRuleBlock))
}

// SelectorList is a comma separated list of selectors.
type SelectorList struct{ node *syntax.SyntaxNode }

func CastSelectorList(n *syntax.SyntaxNode) (SelectorList, bool) {
	if n == nil {
		return SelectorList{}, false
	}
	switch n.Kind() {
	case css.SelectorList, css.RelativeSelectorList, css.CompoundSelectorList:
		return SelectorList{n}, true
	}
	return SelectorList{}, false
}

func (l SelectorList) Syntax() *syntax.SyntaxNode { return l.node }

// Selectors returns the list elements, bogus ones included.
func (l SelectorList) Selectors() []*syntax.SyntaxNode {
	return slices.Collect(l.node.Children())
}

// Compounds returns every compound selector of the list in source order,
// descending into complex and relative selectors but not into pseudo-class
// arguments.
func (l SelectorList) Compounds() []CompoundSelector {
	var out []CompoundSelector
	var walk func(n *syntax.SyntaxNode)
	walk = func(n *syntax.SyntaxNode) {
		if c, ok := CastCompoundSelector(n); ok {
			out = append(out, c)
			return
		}
		if n.Kind() == css.ComplexSelector || n.Kind() == css.RelativeSelector {
			for c := range n.Children() {
				walk(c)
			}
		}
	}
	for _, sel := range l.Selectors() {
		walk(sel)
	}
	return out
}

// CompoundSelector is `&* type? sub*`.
type CompoundSelector struct{ node *syntax.SyntaxNode }

func CastCompoundSelector(n *syntax.SyntaxNode) (CompoundSelector, bool) {
	if n == nil || n.Kind() != css.CompoundSelector {
		return CompoundSelector{}, false
	}
	return CompoundSelector{n}, true
}

func (c CompoundSelector) Syntax() *syntax.SyntaxNode { return c.node }

// Simple is the type or universal selector, if any.
func (c CompoundSelector) Simple() *syntax.SyntaxNode {
	if n := c.node.ChildOfKind(css.TypeSelector); n != nil {
		return n
	}
	return c.node.ChildOfKind(css.UniversalSelector)
}

// TypeName is the element name of a type selector.
func (c CompoundSelector) TypeName() (syntax.TokenText, bool) {
	t := c.node.ChildOfKind(css.TypeSelector)
	if t == nil {
		return syntax.TokenText{}, false
	}
	return identText(t.ChildOfKind(css.Identifier))
}

// SubSelectors returns the class, id, attribute and pseudo selectors.
func (c CompoundSelector) SubSelectors() []*syntax.SyntaxNode {
	list := c.node.ChildOfKind(css.SubSelectorList)
	if list == nil {
		return nil
	}
	return slices.Collect(list.Children())
}

// SubSelectorKinds lists the kinds of SubSelectors.
func (c CompoundSelector) SubSelectorKinds() []syntax.Kind {
	subs := c.SubSelectors()
	kinds := make([]syntax.Kind, len(subs))
	for i, s := range subs {
		kinds[i] = s.Kind()
	}
	return kinds
}

// Block is a `{ ... }` of declarations, nested rules and at-rules.
type Block struct{ node *syntax.SyntaxNode }

func CastBlock(n *syntax.SyntaxNode) (Block, bool) {
	if n == nil || n.Kind() != css.DeclarationOrRuleBlock {
		return Block{}, false
	}
	return Block{n}, true
}

func (b Block) Syntax() *syntax.SyntaxNode { return b.node }

func (b Block) Items() []*syntax.SyntaxNode {
	list := b.node.ChildOfKind(css.DeclarationOrRuleList)
	if list == nil {
		return nil
	}
	return slices.Collect(list.Children())
}

func (b Block) Declarations() []Declaration {
	var out []Declaration
	for _, item := range b.Items() {
		if item.Kind() != css.DeclarationWithSemicolon {
			continue
		}
		if d, ok := CastDeclaration(item.ChildOfKind(css.Declaration)); ok {
			out = append(out, d)
		}
	}
	return out
}

// Declaration is `property: value !important`.
type Declaration struct{ node *syntax.SyntaxNode }

func CastDeclaration(n *syntax.SyntaxNode) (Declaration, bool) {
	if n == nil || n.Kind() != css.Declaration {
		return Declaration{}, false
	}
	return Declaration{n}, true
}

func (d Declaration) Syntax() *syntax.SyntaxNode { return d.node }

func (d Declaration) property() *syntax.SyntaxNode {
	return d.node.ChildOfKind(css.GenericProperty)
}

// Name is the property name, custom properties included.
func (d Declaration) Name() (syntax.TokenText, bool) {
	prop := d.property()
	if prop == nil {
		return syntax.TokenText{}, false
	}
	if n := prop.ChildOfKind(css.Identifier); n != nil {
		return identText(n)
	}
	return identText(prop.ChildOfKind(css.DashedIdentifier))
}

// Value is the component value list after the colon.
func (d Declaration) Value() *syntax.SyntaxNode {
	if prop := d.property(); prop != nil {
		return prop.ChildOfKind(css.ComponentValueList)
	}
	return nil
}

func (d Declaration) Important() bool {
	return d.node.ChildOfKind(css.DeclarationImportant) != nil
}

// PseudoClassSelector is `:name` or `:name(...)`.
type PseudoClassSelector struct{ node *syntax.SyntaxNode }

func CastPseudoClassSelector(n *syntax.SyntaxNode) (PseudoClassSelector, bool) {
	if n == nil || n.Kind() != css.PseudoClassSelector {
		return PseudoClassSelector{}, false
	}
	return PseudoClassSelector{n}, true
}

func (s PseudoClassSelector) Syntax() *syntax.SyntaxNode { return s.node }

// Name is the pseudo-class name without the colon.
func (s PseudoClassSelector) Name() (syntax.TokenText, bool) {
	class := s.node.FirstChild()
	if class == nil {
		return syntax.TokenText{}, false
	}
	if class.Kind() == css.PseudoClassIdentifier {
		return identText(class.ChildOfKind(css.Identifier))
	}
	if t := class.TokenOfKind(css.Ident); t != nil {
		return t.TokenText(), true
	}
	return syntax.TokenText{}, false
}

func identText(n *syntax.SyntaxNode) (syntax.TokenText, bool) {
	if n == nil {
		return syntax.TokenText{}, false
	}
	t := n.TokenOfKind(css.Ident)
	if t == nil {
		return syntax.TokenText{}, false
	}
	return t.TokenText(), true
}
