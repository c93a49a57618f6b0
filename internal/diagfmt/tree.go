package diagfmt

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/biomejs/biome-sub019/internal/syntax"
)

// TreeFormat selects how parse dumps the syntax tree.
type TreeFormat uint8

const (
	TreeText TreeFormat = iota
	TreeJSON
	TreeYAML
)

// TriviaOutput is one trivia piece of a token.
type TriviaOutput struct {
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// TreeNode is the serialisable form of a node or token. Tokens carry Text
// and trivia, nodes carry Children.
type TreeNode struct {
	Kind     string         `json:"kind" yaml:"kind"`
	Start    uint32         `json:"start" yaml:"start"`
	End      uint32         `json:"end" yaml:"end"`
	Text     string         `json:"text,omitempty" yaml:"text,omitempty"`
	Leading  []TriviaOutput `json:"leading,omitempty" yaml:"leading,omitempty"`
	Trailing []TriviaOutput `json:"trailing,omitempty" yaml:"trailing,omitempty"`
	Children []TreeNode     `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildTree converts the red tree under n.
func BuildTree(n *syntax.SyntaxNode) TreeNode {
	r := n.TextRange()
	out := TreeNode{Kind: n.KindName(), Start: r.Start, End: r.End}
	for el := range n.ChildrenWithTokens() {
		if el.Node != nil {
			out.Children = append(out.Children, BuildTree(el.Node))
			continue
		}
		t := el.Token
		tr := t.TextTrimmedRange()
		out.Children = append(out.Children, TreeNode{
			Kind:     t.KindName(),
			Start:    tr.Start,
			End:      tr.End,
			Text:     t.TextTrimmed(),
			Leading:  triviaOutput(t.LeadingTrivia()),
			Trailing: triviaOutput(t.TrailingTrivia()),
		})
	}
	return out
}

func triviaOutput(trivia []syntax.SyntaxTrivia) []TriviaOutput {
	if len(trivia) == 0 {
		return nil
	}
	out := make([]TriviaOutput, len(trivia))
	for i, tr := range trivia {
		out[i] = TriviaOutput{Kind: tr.Kind.String(), Text: tr.Text}
	}
	return out
}

// FormatTree writes root in format.
func FormatTree(w io.Writer, root *syntax.SyntaxNode, format TreeFormat) error {
	switch format {
	case TreeJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(BuildTree(root))
	case TreeYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(BuildTree(root)); err != nil {
			return err
		}
		return encoder.Close()
	default:
		_, err := io.WriteString(w, syntax.DebugString(root))
		return err
	}
}
