package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/lexer"
	jsonlang "github.com/biomejs/biome-sub019/internal/json"
	"github.com/biomejs/biome-sub019/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.json", []byte("{\n  \"a\": [1,],\n}\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynJSONTrailingComma, source.NewRange(11, 12), "Trailing comma").
		WithNote(source.NewRange(12, 13), "the array ends here").
		WithFix("Remove the trailing comma", diag.DeleteEdit(source.NewRange(11, 12), ",")).
		WithFile(fileID))
	bag.Add(diag.NewWarning(diag.SynJSONTrailingComma, source.NewRange(13, 14), "Trailing comma").WithFile(fileID))
	return bag, fs
}

func TestJSONOutput(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}))

	var output DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Equal(t, 2, output.Count)

	first := output.Diagnostics[0]
	assert.Equal(t, "ERROR", first.Severity)
	assert.Equal(t, "SYN2204", first.Code)
	assert.Equal(t, "Trailing comma", first.Title)
	assert.Equal(t, LocationJSON{
		File: "test.json", StartByte: 11, EndByte: 12,
		StartLine: 2, StartCol: 10, EndLine: 2, EndCol: 11,
	}, first.Location)
	require.Len(t, first.Notes, 1)
	require.Len(t, first.Fixes, 1)
	fix := first.Fixes[0]
	assert.Equal(t, "safe", fix.Applicability)
	require.Len(t, fix.Edits, 1)
	assert.Equal(t, ",", fix.Edits[0].OldText)
	assert.Equal(t, []string{`  "a": [1,],`}, fix.Edits[0].BeforeLines)
	assert.Equal(t, []string{`  "a": [1],`}, fix.Edits[0].AfterLines)
}

func TestJSONMaxAndFilters(t *testing.T) {
	bag, fs := sampleBag(t)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	require.Equal(t, 1, out.Count)
	assert.Empty(t, out.Diagnostics[0].Notes)
	assert.Empty(t, out.Diagnostics[0].Fixes)
	assert.Zero(t, out.Diagnostics[0].Location.StartLine)
}

func TestYAMLOutput(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeFixes: true}))
	assert.Contains(t, buf.String(), "code: SYN2204")

	var output DiagnosticsOutput
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, "Remove the trailing comma", output.Diagnostics[0].Fixes[0].Title)
}

func TestSarif(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	require.NoError(t, Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "cstool", ToolVersion: "1.0.0"}))

	var log map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log["version"])
	runs := log["runs"].([]any)
	run := runs[0].(map[string]any)
	results := run["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "error", results[0].(map[string]any)["level"])
	assert.Equal(t, "warning", results[1].(map[string]any)["level"])

	rules := run["tool"].(map[string]any)["driver"].(map[string]any)["rules"].([]any)
	assert.Len(t, rules, 1)
}

func TestTreeFormats(t *testing.T) {
	res := jsonlang.Parse("[1]", jsonlang.Options{})

	var text bytes.Buffer
	require.NoError(t, FormatTree(&text, res.Root, TreeText))
	assert.True(t, strings.HasPrefix(text.String(), "JSON_ROOT@0..3\n"))

	var js bytes.Buffer
	require.NoError(t, FormatTree(&js, res.Root, TreeJSON))
	var node TreeNode
	require.NoError(t, json.Unmarshal(js.Bytes(), &node))
	assert.Equal(t, "JSON_ROOT", node.Kind)
	assert.Equal(t, uint32(3), node.End)

	var ym bytes.Buffer
	require.NoError(t, FormatTree(&ym, res.Root, TreeYAML))
	assert.Contains(t, ym.String(), "kind: JSON_ARRAY_VALUE")
	assert.Contains(t, ym.String(), "text: \"1\"")
}

func TestTokens(t *testing.T) {
	src := "{ \"a\": 1 }"
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.json", []byte(src))
	tokens, diags := lexer.Tokenize(jsonlang.NewLexer(src, jsonlang.Options{}), lexer.Regular)
	assert.Empty(t, diags)

	var pretty bytes.Buffer
	require.NoError(t, FormatTokensPretty(&pretty, tokens, jsonlang.Lang, fs, fileID))
	assert.Contains(t, pretty.String(), "L_CURLY")
	assert.Contains(t, pretty.String(), `"\"a\""`)

	var js bytes.Buffer
	require.NoError(t, FormatTokensJSON(&js, tokens, jsonlang.Lang, src))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &out))
	assert.Equal(t, "EOF", out[len(out)-1].Kind)
	assert.True(t, out[1].Trivia)
}
