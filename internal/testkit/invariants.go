// Package testkit holds checks shared by the grammar test suites.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// CheckTreeInvariants runs the structural checks every parse result must
// pass, whatever the input:
// 1) the tree text is the source text
// 2) tokens tile the root range in order, without gaps or overlap
// 3) every node range is the cover of its children
// 4) bogus nodes are never empty
// 5) no node still carries the tombstone kind
func CheckTreeInvariants(root *syntax.SyntaxNode, src string) error {
	if root == nil {
		return fmt.Errorf("nil root")
	}
	if root.Parent() != nil {
		return fmt.Errorf("root has a parent")
	}

	// 1) round trip
	if got := root.Text(); got != src {
		return fmt.Errorf("tree text differs from source: got %q want %q", got, src)
	}
	srcLen, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("source length overflow: %w", err)
	}
	if root.TextRange() != source.NewRange(0, srcLen) {
		return fmt.Errorf("root range %s does not cover 0..%d", root.TextRange(), srcLen)
	}

	// 2) tiling
	var end source.TextSize
	for tok := range root.DescendantTokens() {
		r := tok.TextRange()
		if r.Start != end {
			return fmt.Errorf("token %s starts at %d, previous token ended at %d", tok, r.Start, end)
		}
		end = r.End
	}
	if end != root.TextRange().End {
		return fmt.Errorf("tokens end at %d, root ends at %d", end, root.TextRange().End)
	}

	// 3) 4) 5) per node
	lang := root.Language()
	for n := range root.Descendants() {
		if n.Kind() == syntax.Tombstone {
			return fmt.Errorf("tombstone node at %s", n.TextRange())
		}
		if lang.IsBogus(n.Kind()) && n.TextRange().Empty() {
			return fmt.Errorf("empty bogus node %s", n.KindName())
		}
		if err := checkChildren(n); err != nil {
			return err
		}
	}
	return nil
}

func checkChildren(n *syntax.SyntaxNode) error {
	pos := n.TextRange().Start
	for el := range n.ChildrenWithTokens() {
		var r source.TextRange
		if el.Node != nil {
			r = el.Node.TextRange()
			if el.Node.Parent() != n {
				return fmt.Errorf("%s child %s has a different parent", n.KindName(), el.Node.KindName())
			}
		} else {
			r = el.Token.TextRange()
		}
		if r.Start != pos {
			return fmt.Errorf("%s: child at %s, expected start %d", n.KindName(), r, pos)
		}
		pos = r.End
	}
	if pos != n.TextRange().End {
		return fmt.Errorf("%s: children end at %d, node ends at %d", n.KindName(), pos, n.TextRange().End)
	}
	return nil
}

// DiagnosticsInBounds checks every diagnostic range lies within the source.
func DiagnosticsInBounds(ranges []source.TextRange, src string) error {
	srcLen, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("source length overflow: %w", err)
	}
	for _, r := range ranges {
		if r.Start > r.End || r.End > srcLen {
			return fmt.Errorf("diagnostic range %s outside 0..%d", r, srcLen)
		}
	}
	return nil
}
