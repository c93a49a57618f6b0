package syntax

import (
	"fmt"
	"strings"
)

// DebugString renders the tree one element per line, indented by depth:
//
//	CSS_ROOT@0..5
//	  CSS_RULE_LIST@0..5
//	    IDENT@0..1 "a" [] [Whitespace(" ")]
func DebugString(n *SyntaxNode) string {
	var sb strings.Builder
	writeDebug(&sb, n, 0)
	return sb.String()
}

func writeDebug(sb *strings.Builder, n *SyntaxNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s@%s\n", indent, n.KindName(), n.TextRange())
	for el := range n.ChildrenWithTokens() {
		if el.Node != nil {
			writeDebug(sb, el.Node, depth+1)
			continue
		}
		t := el.Token
		fmt.Fprintf(sb, "%s  %s@%s %q %s %s\n", indent, t.KindName(), t.TextRange(), t.TextTrimmed(),
			formatTrivia(t.LeadingTrivia()), formatTrivia(t.TrailingTrivia()))
	}
}

func formatTrivia(trivia []SyntaxTrivia) string {
	parts := make([]string, len(trivia))
	for i, tr := range trivia {
		parts[i] = fmt.Sprintf("%s(%q)", tr.Kind, tr.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
