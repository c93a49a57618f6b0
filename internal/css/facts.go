package css

import "github.com/biomejs/biome-sub019/internal/syntax"

// Facts are counts derived from a parsed stylesheet.
type Facts struct {
	// Selectors counts the elements of every rule prelude, nested rules
	// included, but not selectors inside pseudo-class arguments.
	Selectors    int
	Rules        int
	Declarations int
}

// CollectFacts walks root once.
func CollectFacts(root *syntax.SyntaxNode) Facts {
	var f Facts
	for n := range root.Descendants() {
		switch n.Kind() {
		case QualifiedRule, NestedQualifiedRule:
			f.Rules++
			for c := range n.Children() {
				if c.Kind() == SelectorList || c.Kind() == RelativeSelectorList {
					for range c.Children() {
						f.Selectors++
					}
				}
			}
		case AtRule:
			f.Rules++
		case Declaration:
			f.Declarations++
		}
	}
	return f
}
