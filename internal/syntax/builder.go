package syntax

import "fmt"

type builderParent struct {
	kind       Kind
	firstChild int
}

// TreeBuilder assembles a green tree from start/token/finish calls.
type TreeBuilder struct {
	cache    *NodeCache
	parents  []builderParent
	children []GreenElement
}

// NewTreeBuilder returns a builder. cache may be nil.
func NewTreeBuilder(cache *NodeCache) *TreeBuilder {
	return &TreeBuilder{cache: cache}
}

// StartNode opens a node of the given kind.
func (b *TreeBuilder) StartNode(kind Kind) {
	b.parents = append(b.parents, builderParent{kind: kind, firstChild: len(b.children)})
}

// Token appends a token to the currently open node.
func (b *TreeBuilder) Token(kind Kind, text string, leading, trailing []TriviaPiece) {
	b.children = append(b.children, TokenElement(b.cache.Token(kind, text, leading, trailing)))
}

// Node appends an already built node to the currently open node.
func (b *TreeBuilder) Node(n *GreenNode) {
	b.children = append(b.children, NodeElement(n))
}

// FinishNode closes the innermost open node.
func (b *TreeBuilder) FinishNode() {
	if len(b.parents) == 0 {
		panic("FinishNode without a matching StartNode")
	}
	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]
	node := NewGreenNode(top.kind, b.children[top.firstChild:])
	b.children = append(b.children[:top.firstChild], NodeElement(node))
}

// Checkpoint remembers the current child position for StartNodeAt.
func (b *TreeBuilder) Checkpoint() int {
	return len(b.children)
}

// StartNodeAt opens a node that adopts every child appended since checkpoint.
func (b *TreeBuilder) StartNodeAt(checkpoint int, kind Kind) {
	if checkpoint > len(b.children) {
		panic(fmt.Sprintf("checkpoint %d is ahead of %d children", checkpoint, len(b.children)))
	}
	if len(b.parents) > 0 && checkpoint < b.parents[len(b.parents)-1].firstChild {
		panic("checkpoint is outside the currently open node")
	}
	b.parents = append(b.parents, builderParent{kind: kind, firstChild: checkpoint})
}

// Finish returns the single root node.
func (b *TreeBuilder) Finish() *GreenNode {
	if len(b.parents) != 0 {
		panic(fmt.Sprintf("%d nodes are still open", len(b.parents)))
	}
	if len(b.children) != 1 || !b.children[0].IsNode() {
		panic(fmt.Sprintf("tree builder must end with exactly one root node, got %d elements", len(b.children)))
	}
	return b.children[0].Node()
}
