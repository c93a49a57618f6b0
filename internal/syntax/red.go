package syntax

import (
	"fmt"
	"iter"

	"github.com/biomejs/biome-sub019/internal/source"
)

// SyntaxNode is a positioned view of a green node. It knows its parent and
// absolute offset. Views are created on navigation and are cheap to drop.
type SyntaxNode struct {
	green  *GreenNode
	parent *SyntaxNode
	index  int
	offset TextSize
	lang   *Language
}

// NewRoot wraps a green root.
func NewRoot(green *GreenNode, lang *Language) *SyntaxNode {
	return &SyntaxNode{green: green, lang: lang}
}

func (n *SyntaxNode) Green() *GreenNode    { return n.green }
func (n *SyntaxNode) Language() *Language  { return n.lang }
func (n *SyntaxNode) Kind() Kind           { return n.green.kind }
func (n *SyntaxNode) Parent() *SyntaxNode  { return n.parent }
func (n *SyntaxNode) Index() int           { return n.index }
func (n *SyntaxNode) KindName() string     { return n.lang.KindName(n.green.kind) }
func (n *SyntaxNode) TextRange() TextRange { return source.RangeAt(n.offset, n.green.textLen) }

// Text is the exact source text of the node, trivia included.
func (n *SyntaxNode) Text() string { return n.green.Text() }

// TextTrimmedRange excludes the leading trivia of the first token and the
// trailing trivia of the last token.
func (n *SyntaxNode) TextTrimmedRange() TextRange {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		return source.EmptyAt(n.offset)
	}
	return source.NewRange(first.TextTrimmedRange().Start, last.TextTrimmedRange().End)
}

// TextTrimmed is the node text without outer trivia.
func (n *SyntaxNode) TextTrimmed() string {
	r := n.TextTrimmedRange().Sub(n.offset)
	if r.Empty() {
		return ""
	}
	return r.Slice(n.Text())
}

// Equal reports whether both views point at the same tree position.
func (n *SyntaxNode) Equal(other *SyntaxNode) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.green == other.green && n.offset == other.offset
}

func (n *SyntaxNode) String() string {
	return fmt.Sprintf("%s@%s", n.KindName(), n.TextRange())
}

func (n *SyntaxNode) element(i int) SyntaxElement {
	c := n.green.children[i]
	off := n.offset + c.Offset
	if c.Element.node != nil {
		return SyntaxElement{Node: &SyntaxNode{green: c.Element.node, parent: n, index: i, offset: off, lang: n.lang}}
	}
	return SyntaxElement{Token: &SyntaxToken{green: c.Element.token, parent: n, index: i, offset: off}}
}

// ChildCount counts nodes and tokens.
func (n *SyntaxNode) ChildCount() int { return len(n.green.children) }

// ChildAt returns the i-th child element.
func (n *SyntaxNode) ChildAt(i int) SyntaxElement { return n.element(i) }

// ChildrenWithTokens yields every child element in order.
func (n *SyntaxNode) ChildrenWithTokens() iter.Seq[SyntaxElement] {
	return func(yield func(SyntaxElement) bool) {
		for i := range n.green.children {
			if !yield(n.element(i)) {
				return
			}
		}
	}
}

// Children yields the child nodes only.
func (n *SyntaxNode) Children() iter.Seq[*SyntaxNode] {
	return func(yield func(*SyntaxNode) bool) {
		for i, c := range n.green.children {
			if c.Element.node == nil {
				continue
			}
			if !yield(n.element(i).Node) {
				return
			}
		}
	}
}

// FirstChild is the first child node, or nil.
func (n *SyntaxNode) FirstChild() *SyntaxNode {
	for c := range n.Children() {
		return c
	}
	return nil
}

// ChildOfKind is the first child node of the given kind, or nil.
func (n *SyntaxNode) ChildOfKind(kind Kind) *SyntaxNode {
	for c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// TokenOfKind is the first direct child token of the given kind, or nil.
func (n *SyntaxNode) TokenOfKind(kind Kind) *SyntaxToken {
	for i, c := range n.green.children {
		if c.Element.token != nil && c.Element.token.kind == kind {
			return n.element(i).Token
		}
	}
	return nil
}

func (n *SyntaxNode) sibling(delta int) *SyntaxNode {
	if n.parent == nil {
		return nil
	}
	kids := n.parent.green.children
	for i := n.index + delta; i >= 0 && i < len(kids); i += delta {
		if kids[i].Element.node != nil {
			return n.parent.element(i).Node
		}
	}
	return nil
}

// NextSibling is the next node with the same parent, or nil.
func (n *SyntaxNode) NextSibling() *SyntaxNode { return n.sibling(1) }

// PrevSibling is the previous node with the same parent, or nil.
func (n *SyntaxNode) PrevSibling() *SyntaxNode { return n.sibling(-1) }

// Ancestors yields n and then every parent up to the root.
func (n *SyntaxNode) Ancestors() iter.Seq[*SyntaxNode] {
	return func(yield func(*SyntaxNode) bool) {
		for cur := n; cur != nil; cur = cur.parent {
			if !yield(cur) {
				return
			}
		}
	}
}

// Root walks up to the tree root.
func (n *SyntaxNode) Root() *SyntaxNode {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Depth is the number of ancestors above n.
func (n *SyntaxNode) Depth() int {
	d := 0
	for cur := n.parent; cur != nil; cur = cur.parent {
		d++
	}
	return d
}

// Descendants yields n and every node below it in preorder.
func (n *SyntaxNode) Descendants() iter.Seq[*SyntaxNode] {
	return func(yield func(*SyntaxNode) bool) {
		n.walkNodes(yield)
	}
}

func (n *SyntaxNode) walkNodes(yield func(*SyntaxNode) bool) bool {
	if !yield(n) {
		return false
	}
	for c := range n.Children() {
		if !c.walkNodes(yield) {
			return false
		}
	}
	return true
}

// DescendantTokens yields every token below n in document order.
func (n *SyntaxNode) DescendantTokens() iter.Seq[*SyntaxToken] {
	return func(yield func(*SyntaxToken) bool) {
		n.walkTokens(yield)
	}
}

func (n *SyntaxNode) walkTokens(yield func(*SyntaxToken) bool) bool {
	for el := range n.ChildrenWithTokens() {
		if el.Token != nil {
			if !yield(el.Token) {
				return false
			}
			continue
		}
		if !el.Node.walkTokens(yield) {
			return false
		}
	}
	return true
}

// FirstToken is the first token below n, or nil for an empty node.
func (n *SyntaxNode) FirstToken() *SyntaxToken {
	for i := range n.green.children {
		el := n.element(i)
		if el.Token != nil {
			return el.Token
		}
		if t := el.Node.FirstToken(); t != nil {
			return t
		}
	}
	return nil
}

// LastToken is the last token below n, or nil for an empty node.
func (n *SyntaxNode) LastToken() *SyntaxToken {
	for i := len(n.green.children) - 1; i >= 0; i-- {
		el := n.element(i)
		if el.Token != nil {
			return el.Token
		}
		if t := el.Node.LastToken(); t != nil {
			return t
		}
	}
	return nil
}

// TokenAtOffset returns the token whose full range contains offset. An offset
// equal to the end of the node yields the last token.
func (n *SyntaxNode) TokenAtOffset(offset TextSize) *SyntaxToken {
	if !n.TextRange().ContainsInclusive(offset) {
		return nil
	}
	cur := n
	for {
		var next *SyntaxNode
		for i := range cur.green.children {
			el := cur.element(i)
			r := el.TextRange()
			if !r.Contains(offset) && !(offset == r.End && i == len(cur.green.children)-1) {
				continue
			}
			if el.Token != nil {
				return el.Token
			}
			next = el.Node
			break
		}
		if next == nil {
			return nil
		}
		cur = next
	}
}

// CoveringElement returns the deepest element whose range contains r.
func (n *SyntaxNode) CoveringElement(r TextRange) SyntaxElement {
	if !n.TextRange().ContainsRange(r) {
		return SyntaxElement{}
	}
	cur := SyntaxElement{Node: n}
	for cur.Node != nil {
		var next SyntaxElement
		for el := range cur.Node.ChildrenWithTokens() {
			er := el.TextRange()
			if er.ContainsRange(r) && (!r.Empty() || er.Contains(r.Start)) {
				next = el
				break
			}
		}
		if next.IsZero() {
			return cur
		}
		cur = next
	}
	return cur
}

// Detach returns a root view over the same green node.
func (n *SyntaxNode) Detach() *SyntaxNode {
	return NewRoot(n.green, n.lang)
}

// SyntaxToken is a positioned view of a green token.
type SyntaxToken struct {
	green  *GreenToken
	parent *SyntaxNode
	index  int
	offset TextSize
}

func (t *SyntaxToken) Green() *GreenToken   { return t.green }
func (t *SyntaxToken) Kind() Kind           { return t.green.kind }
func (t *SyntaxToken) Parent() *SyntaxNode  { return t.parent }
func (t *SyntaxToken) Index() int           { return t.index }
func (t *SyntaxToken) Text() string         { return t.green.text }
func (t *SyntaxToken) TextTrimmed() string  { return t.green.TextTrimmed() }
func (t *SyntaxToken) TextRange() TextRange { return source.RangeAt(t.offset, t.green.TextLen()) }

func (t *SyntaxToken) TextTrimmedRange() TextRange {
	return t.green.TrimmedRange().Add(t.offset)
}

func (t *SyntaxToken) KindName() string {
	if t.parent == nil {
		return fmt.Sprintf("KIND_%d", t.green.kind)
	}
	return t.parent.lang.KindName(t.green.kind)
}

func (t *SyntaxToken) String() string {
	return fmt.Sprintf("%s@%s %q", t.KindName(), t.TextTrimmedRange(), t.TextTrimmed())
}

// TokenText is a view of the trimmed token text.
func (t *SyntaxToken) TokenText() TokenText {
	return TokenText{token: t.green, rng: t.green.TrimmedRange()}
}

// TokenTextFull is a view of the text including trivia.
func (t *SyntaxToken) TokenTextFull() TokenText {
	return NewTokenText(t.green)
}

// SyntaxTrivia is a trivia piece with its absolute range and text.
type SyntaxTrivia struct {
	Kind  TriviaKind
	Range TextRange
	Text  string
}

func (t *SyntaxToken) trivia(pieces []TriviaPiece, rel TextSize) []SyntaxTrivia {
	out := make([]SyntaxTrivia, 0, len(pieces))
	for _, p := range pieces {
		r := source.RangeAt(rel, p.Len)
		out = append(out, SyntaxTrivia{Kind: p.Kind, Range: r.Add(t.offset), Text: r.Slice(t.green.text)})
		rel += p.Len
	}
	return out
}

func (t *SyntaxToken) LeadingTrivia() []SyntaxTrivia {
	return t.trivia(t.green.leading, 0)
}

func (t *SyntaxToken) TrailingTrivia() []SyntaxTrivia {
	return t.trivia(t.green.trailing, t.green.TrimmedRange().End)
}

// HasLeadingComments reports whether a comment precedes the token.
func (t *SyntaxToken) HasLeadingComments() bool {
	for _, p := range t.green.leading {
		if p.Kind.IsComment() {
			return true
		}
	}
	return false
}

// NextToken is the following token in the whole tree, or nil.
func (t *SyntaxToken) NextToken() *SyntaxToken {
	parent, idx := t.parent, t.index
	for parent != nil {
		for i := idx + 1; i < len(parent.green.children); i++ {
			el := parent.element(i)
			if el.Token != nil {
				return el.Token
			}
			if tok := el.Node.FirstToken(); tok != nil {
				return tok
			}
		}
		idx = parent.index
		parent = parent.parent
	}
	return nil
}

// PrevToken is the preceding token in the whole tree, or nil.
func (t *SyntaxToken) PrevToken() *SyntaxToken {
	parent, idx := t.parent, t.index
	for parent != nil {
		for i := idx - 1; i >= 0; i-- {
			el := parent.element(i)
			if el.Token != nil {
				return el.Token
			}
			if tok := el.Node.LastToken(); tok != nil {
				return tok
			}
		}
		idx = parent.index
		parent = parent.parent
	}
	return nil
}

// SyntaxElement holds either a node or a token.
type SyntaxElement struct {
	Node  *SyntaxNode
	Token *SyntaxToken
}

func (e SyntaxElement) IsZero() bool { return e.Node == nil && e.Token == nil }

func (e SyntaxElement) Kind() Kind {
	if e.Node != nil {
		return e.Node.Kind()
	}
	return e.Token.Kind()
}

func (e SyntaxElement) TextRange() TextRange {
	if e.Node != nil {
		return e.Node.TextRange()
	}
	return e.Token.TextRange()
}

func (e SyntaxElement) Parent() *SyntaxNode {
	if e.Node != nil {
		return e.Node.parent
	}
	return e.Token.parent
}

func (e SyntaxElement) Index() int {
	if e.Node != nil {
		return e.Node.index
	}
	return e.Token.index
}
