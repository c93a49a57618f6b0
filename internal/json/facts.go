package json

import "github.com/biomejs/biome-sub019/internal/syntax"

// Facts are derived from a parsed document.
type Facts struct {
	// MaxDepth is the deepest object or array nesting; a scalar root is 0.
	MaxDepth int
}

func CollectFacts(root *syntax.SyntaxNode) Facts {
	return Facts{MaxDepth: depth(root)}
}

func depth(n *syntax.SyntaxNode) int {
	best := 0
	for c := range n.Children() {
		best = max(best, depth(c))
	}
	if n.Kind() == ObjectValue || n.Kind() == ArrayValue {
		best++
	}
	return best
}
