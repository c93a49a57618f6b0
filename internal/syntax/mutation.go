package syntax

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/biomejs/biome-sub019/internal/source"
)

// TextEdit describes the text change between two trees as a single replacement.
type TextEdit struct {
	Range   TextRange
	NewText string
}

type slotKey struct {
	green  *GreenNode
	offset TextSize
}

type pendingParent struct {
	node  *SyntaxNode
	depth int
	// slot index -> replacement; a zero element removes the slot
	slots map[int]GreenElement
}

// BatchMutation collects edits against one tree and applies them together,
// producing a new green tree. Untouched subtrees are shared with the old tree
// and the old root stays valid.
type BatchMutation struct {
	root    *SyntaxNode
	pending map[slotKey]*pendingParent
}

// Begin starts a mutation of the tree that contains root.
func Begin(root *SyntaxNode) *BatchMutation {
	return &BatchMutation{root: root.Root(), pending: make(map[slotKey]*pendingParent)}
}

func (b *BatchMutation) record(parent *SyntaxNode, index int, elem GreenElement) {
	b.set(parent, index, elem, true)
}

func (b *BatchMutation) set(parent *SyntaxNode, index int, elem GreenElement, overwrite bool) {
	if parent == nil {
		panic("cannot mutate the root element through its parent")
	}
	if !parent.Root().Equal(b.root) {
		panic("element does not belong to the mutated tree")
	}
	key := slotKey{green: parent.green, offset: parent.offset}
	p, ok := b.pending[key]
	if !ok {
		p = &pendingParent{node: parent, depth: parent.Depth(), slots: make(map[int]GreenElement)}
		b.pending[key] = p
	}
	if _, exists := p.slots[index]; exists && !overwrite {
		return
	}
	p.slots[index] = elem
}

// ReplaceNode swaps prev for next.
func (b *BatchMutation) ReplaceNode(prev *SyntaxNode, next *GreenNode) {
	b.record(prev.parent, prev.index, NodeElement(next))
}

// ReplaceToken swaps prev for next.
func (b *BatchMutation) ReplaceToken(prev *SyntaxToken, next *GreenToken) {
	b.record(prev.parent, prev.index, TokenElement(next))
}

// ReplaceTokenTransferTrivia swaps prev for a token of next's kind and trimmed
// text, keeping prev's leading and trailing trivia.
func (b *BatchMutation) ReplaceTokenTransferTrivia(prev *SyntaxToken, next *GreenToken) {
	old := prev.green
	trimmed := old.TrimmedRange()
	text := old.text[:trimmed.Start] + next.TextTrimmed() + old.text[trimmed.End:]
	b.ReplaceToken(prev, NewGreenToken(next.kind, text, old.leading, old.trailing))
}

// ReplaceElement swaps prev for next, whatever their shapes.
func (b *BatchMutation) ReplaceElement(prev SyntaxElement, next GreenElement) {
	if next.IsZero() {
		panic("ReplaceElement with an empty element; use RemoveElement")
	}
	b.record(prev.Parent(), prev.Index(), next)
}

// RemoveNode drops node and its text from the tree.
func (b *BatchMutation) RemoveNode(node *SyntaxNode) {
	b.record(node.parent, node.index, GreenElement{})
}

// RemoveToken drops token and its text from the tree.
func (b *BatchMutation) RemoveToken(token *SyntaxToken) {
	b.record(token.parent, token.index, GreenElement{})
}

// RemoveElement drops an element.
func (b *BatchMutation) RemoveElement(el SyntaxElement) {
	b.record(el.Parent(), el.Index(), GreenElement{})
}

// IsEmpty reports whether no change was recorded.
func (b *BatchMutation) IsEmpty() bool {
	return len(b.pending) == 0
}

// Commit applies every change, deepest parents first, and returns the new root.
func (b *BatchMutation) Commit() *SyntaxNode {
	if b.IsEmpty() {
		return b.root
	}
	for len(b.pending) > 0 {
		deepest := b.popDeepest()
		green := rebuild(deepest)
		if deepest.node.parent == nil {
			return NewRoot(green, b.root.lang)
		}
		// an explicit change of the parent slot wins over edits inside it
		b.set(deepest.node.parent, deepest.node.index, NodeElement(green), false)
	}
	panic("mutation did not reach the root")
}

// CommitWithEdit applies the changes and also returns the equivalent text edit.
func (b *BatchMutation) CommitWithEdit() (*SyntaxNode, TextEdit) {
	oldText := b.root.Text()
	next := b.Commit()
	return next, diffText(oldText, next.Text())
}

func (b *BatchMutation) popDeepest() *pendingParent {
	var keys []slotKey
	for k := range b.pending {
		keys = append(keys, k)
	}
	// deepest first; ties broken by offset for a deterministic order
	best := slices.MaxFunc(keys, func(x, y slotKey) int {
		px, py := b.pending[x], b.pending[y]
		if c := cmp.Compare(px.depth, py.depth); c != 0 {
			return c
		}
		return cmp.Compare(y.offset, x.offset)
	})
	p := b.pending[best]
	delete(b.pending, best)
	return p
}

func rebuild(p *pendingParent) *GreenNode {
	children := make([]GreenElement, 0, len(p.node.green.children))
	for i, c := range p.node.green.children {
		if repl, ok := p.slots[i]; ok {
			if !repl.IsZero() {
				children = append(children, repl)
			}
			continue
		}
		children = append(children, c.Element)
	}
	for i := range p.slots {
		if i < 0 || i >= len(p.node.green.children) {
			panic(fmt.Sprintf("slot %d out of range for %s", i, p.node))
		}
	}
	return NewGreenNode(p.node.green.kind, children)
}

func diffText(oldText, newText string) TextEdit {
	prefix := 0
	for prefix < len(oldText) && prefix < len(newText) && oldText[prefix] == newText[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldText)-prefix && suffix < len(newText)-prefix &&
		oldText[len(oldText)-1-suffix] == newText[len(newText)-1-suffix] {
		suffix++
	}
	return TextEdit{
		Range:   source.NewRange(source.SizeOf(prefix), source.SizeOf(len(oldText)-suffix)),
		NewText: strings.Clone(newText[prefix : len(newText)-suffix]),
	}
}
