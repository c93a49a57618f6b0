package syntax

import (
	"fmt"
	"strings"

	"github.com/biomejs/biome-sub019/internal/source"
)

type (
	TextSize  = source.TextSize
	TextRange = source.TextRange
)

// GreenToken is an immutable token. Its text covers leading trivia, the token
// itself and trailing trivia, in that order.
type GreenToken struct {
	kind     Kind
	text     string
	leading  []TriviaPiece
	trailing []TriviaPiece
}

// NewGreenToken builds a token. The trivia pieces must fit inside text.
func NewGreenToken(kind Kind, text string, leading, trailing []TriviaPiece) *GreenToken {
	if piecesLen(leading)+piecesLen(trailing) > source.SizeOf(len(text)) {
		panic(fmt.Sprintf("trivia of token %d is longer than its text %q", kind, text))
	}
	return &GreenToken{kind: kind, text: text, leading: leading, trailing: trailing}
}

func (t *GreenToken) Kind() Kind { return t.kind }

// Text is the full text including trivia.
func (t *GreenToken) Text() string { return t.text }

func (t *GreenToken) TextLen() TextSize { return source.SizeOf(len(t.text)) }

// TrimmedRange is the range of the token without trivia, relative to the token start.
func (t *GreenToken) TrimmedRange() TextRange {
	return source.NewRange(piecesLen(t.leading), t.TextLen()-piecesLen(t.trailing))
}

// TextTrimmed is the token text without trivia.
func (t *GreenToken) TextTrimmed() string {
	return t.TrimmedRange().Slice(t.text)
}

func (t *GreenToken) LeadingTrivia() []TriviaPiece  { return t.leading }
func (t *GreenToken) TrailingTrivia() []TriviaPiece { return t.trailing }

func (t *GreenToken) String() string {
	return fmt.Sprintf("%d@%q", t.kind, t.text)
}

// GreenElement is either a node or a token.
type GreenElement struct {
	node  *GreenNode
	token *GreenToken
}

func NodeElement(n *GreenNode) GreenElement   { return GreenElement{node: n} }
func TokenElement(t *GreenToken) GreenElement { return GreenElement{token: t} }

func (e GreenElement) Node() *GreenNode   { return e.node }
func (e GreenElement) Token() *GreenToken { return e.token }
func (e GreenElement) IsNode() bool       { return e.node != nil }
func (e GreenElement) IsZero() bool       { return e.node == nil && e.token == nil }

func (e GreenElement) Kind() Kind {
	if e.node != nil {
		return e.node.kind
	}
	return e.token.kind
}

func (e GreenElement) TextLen() TextSize {
	if e.node != nil {
		return e.node.textLen
	}
	return e.token.TextLen()
}

func (e GreenElement) writeText(sb *strings.Builder) {
	if e.node != nil {
		e.node.writeText(sb)
		return
	}
	sb.WriteString(e.token.text)
}

// GreenChild is a child with its offset relative to the parent start.
type GreenChild struct {
	Offset  TextSize
	Element GreenElement
}

// GreenNode is an immutable interior node. It caches its text length.
type GreenNode struct {
	kind     Kind
	textLen  TextSize
	children []GreenChild
}

// NewGreenNode builds a node over children. Zero elements are skipped.
func NewGreenNode(kind Kind, children []GreenElement) *GreenNode {
	n := &GreenNode{kind: kind, children: make([]GreenChild, 0, len(children))}
	for _, c := range children {
		if c.IsZero() {
			continue
		}
		n.children = append(n.children, GreenChild{Offset: n.textLen, Element: c})
		n.textLen += c.TextLen()
	}
	return n
}

func (n *GreenNode) Kind() Kind        { return n.kind }
func (n *GreenNode) TextLen() TextSize { return n.textLen }
func (n *GreenNode) ChildCount() int   { return len(n.children) }

// Children returns the child slots. Callers must not modify the slice.
func (n *GreenNode) Children() []GreenChild { return n.children }

func (n *GreenNode) Child(i int) GreenElement { return n.children[i].Element }

// Text concatenates the text of every token below n.
func (n *GreenNode) Text() string {
	var sb strings.Builder
	sb.Grow(int(n.textLen))
	n.writeText(&sb)
	return sb.String()
}

func (n *GreenNode) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		c.Element.writeText(sb)
	}
}

func (n *GreenNode) elements() []GreenElement {
	out := make([]GreenElement, len(n.children))
	for i, c := range n.children {
		out[i] = c.Element
	}
	return out
}

// Splice returns a copy of n where children [start, end) are replaced by
// elems. Every other child is shared with n.
func (n *GreenNode) Splice(start, end int, elems ...GreenElement) *GreenNode {
	if start < 0 || end < start || end > len(n.children) {
		panic(fmt.Sprintf("splice %d..%d out of bounds for %d children", start, end, len(n.children)))
	}
	old := n.elements()
	next := make([]GreenElement, 0, len(old)-(end-start)+len(elems))
	next = append(next, old[:start]...)
	next = append(next, elems...)
	next = append(next, old[end:]...)
	return NewGreenNode(n.kind, next)
}

// ReplaceChild returns a copy of n with child i replaced.
func (n *GreenNode) ReplaceChild(i int, elem GreenElement) *GreenNode {
	return n.Splice(i, i+1, elem)
}

// RemoveChild returns a copy of n without child i.
func (n *GreenNode) RemoveChild(i int) *GreenNode {
	return n.Splice(i, i+1)
}

// InsertChild returns a copy of n with elem inserted before child i.
func (n *GreenNode) InsertChild(i int, elem GreenElement) *GreenNode {
	return n.Splice(i, i, elem)
}

// WithKind returns a node with the same children and another kind.
func (n *GreenNode) WithKind(kind Kind) *GreenNode {
	return &GreenNode{kind: kind, textLen: n.textLen, children: n.children}
}
