package fuzztests

import (
	"context"
	"testing"
	"time"

	"github.com/biomejs/biome-sub019/internal/css"
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/json"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
	"github.com/biomejs/biome-sub019/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func checkParse(t *testing.T, src string, root *syntax.SyntaxNode, diags []diag.Diagnostic) {
	t.Helper()
	if err := testkit.CheckTreeInvariants(root, src); err != nil {
		t.Fatalf("%v\ninput (%d bytes): %q", err, len(src), truncateForLog([]byte(src), 200))
	}
	ranges := make([]source.TextRange, len(diags))
	for i, d := range diags {
		ranges[i] = d.Range()
	}
	if err := testkit.DiagnosticsInBounds(ranges, src); err != nil {
		t.Fatal(err)
	}
}

func FuzzCSSParserLossless(f *testing.F) {
	addCorpusSeeds(f, ".css", cssSeeds...)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampInput(input))
		res := css.Parse(src, css.Options{CSSModules: true})
		checkParse(t, src, res.Root, res.Diagnostics)
	})
}

func FuzzJSONParserLossless(f *testing.F) {
	addCorpusSeeds(f, ".json", jsonSeeds...)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampInput(input))
		for _, opts := range []json.Options{{}, {AllowComments: true, AllowTrailingCommas: true}} {
			res := json.Parse(src, opts)
			checkParse(t, src, res.Root, res.Diagnostics)
		}
	})
}

// FuzzParserNoHang tests that neither parser hangs on any input. Error
// recovery that fails to make progress shows up here as a timeout.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f, ".css", cssSeeds...)
	addCorpusSeeds(f, ".json", jsonSeeds...)

	// inputs that stress recovery
	f.Add([]byte("a { b: c d e f ; ; ; } } } {"))
	f.Add([]byte("@media ( ( ( ( {"))
	f.Add([]byte("a:nth-child(2n+ { }"))
	f.Add([]byte(`{"a": [1, {"b": [}]}`))
	f.Add([]byte(",,,,,:::::"))

	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampInput(input))

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = css.Parse(src, css.Options{})
			_ = json.Parse(src, json.Options{AllowComments: true})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(src), truncateForLog([]byte(src), 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
