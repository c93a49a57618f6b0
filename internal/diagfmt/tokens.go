package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

type TokenOutput struct {
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	Trivia    bool   `json:"trivia,omitempty"`
	LineBreak bool   `json:"line_break,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []lexer.Token, lang *syntax.Language, fs *source.FileSet, file source.FileID) error {
	src := fs.Get(file).Text()
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(file, tok.Range)
		if _, err := fmt.Fprintf(w, "%3d: %-24s %-10s %d:%d-%d:%d", i+1, lang.KindName(tok.Kind), tok.Range,
			startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
		if text := tok.Text(src); text != "" {
			fmt.Fprintf(w, " %q", text)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []lexer.Token, lang *syntax.Language, src string) error {
	output := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		output[i] = TokenOutput{
			Kind:      lang.KindName(tok.Kind),
			Text:      tok.Text(src),
			Start:     tok.Range.Start,
			End:       tok.Range.End,
			Trivia:    tok.Kind.IsTrivia(),
			LineBreak: tok.LineBreak,
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
