package fuzztests

import (
	"testing"

	"github.com/biomejs/biome-sub019/internal/css"
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/json"
	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
	"github.com/biomejs/biome-sub019/internal/testkit"
)

// checkTokens verifies that tokens tile src and end with EOF.
func checkTokens(t *testing.T, src string, tokens []lexer.Token, diags []diag.Diagnostic) {
	t.Helper()
	var end source.TextSize
	for i, tok := range tokens {
		if tok.Range.Start != end {
			t.Fatalf("token %d starts at %d, previous ended at %d", i, tok.Range.Start, end)
		}
		end = tok.Range.End
	}
	if n := len(tokens); n == 0 || tokens[n-1].Kind != syntax.EOF {
		t.Fatal("token stream does not end with EOF")
	}
	if int(end) != len(src) {
		t.Fatalf("tokens cover %d bytes of %d", end, len(src))
	}
	ranges := make([]source.TextRange, len(diags))
	for i, d := range diags {
		ranges[i] = d.Range()
	}
	if err := testkit.DiagnosticsInBounds(ranges, src); err != nil {
		t.Fatal(err)
	}
}

func FuzzCSSLexerTokens(f *testing.F) {
	addCorpusSeeds(f, ".css", cssSeeds...)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampInput(input))
		opts := css.Options{AllowWrongLineComments: len(src)%2 == 0}
		tokens, diags := lexer.Tokenize(css.NewLexer(src, opts), lexer.Regular)
		checkTokens(t, src, tokens, diags)
	})
}

func FuzzJSONLexerTokens(f *testing.F) {
	addCorpusSeeds(f, ".json", jsonSeeds...)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampInput(input))
		tokens, diags := lexer.Tokenize(json.NewLexer(src, json.Options{AllowComments: true}), lexer.Regular)
		checkTokens(t, src, tokens, diags)
	})
}
