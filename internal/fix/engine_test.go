package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
)

func edit(file source.FileID, start, end source.TextSize, oldText, newText string) diag.FixEdit {
	return diag.FixEdit{
		Span:    source.SpanOf(file, source.NewRange(start, end)),
		OldText: oldText,
		NewText: newText,
	}
}

func fixDiag(code diag.Code, file source.FileID, start source.TextSize, app diag.Applicability, edits ...diag.FixEdit) diag.Diagnostic {
	d := diag.NewError(code, source.EmptyAt(start), "m").WithFixSuggestion(diag.Fix{
		Title:         "fix",
		Applicability: app,
		Edits:         edits,
	})
	return d.WithFile(file)
}

func TestPlanAllSafe(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.json", []byte(`{"a":1,"b":[2,],}`))

	res, err := Plan(fs, []diag.Diagnostic{
		fixDiag(diag.SynJSONTrailingComma, id, 15, diag.FixAlwaysSafe, edit(id, 15, 16, ",", "")),
		fixDiag(diag.SynJSONTrailingComma, id, 13, diag.FixAlwaysSafe, edit(id, 13, 14, ",", "")),
		fixDiag(diag.SynJSONExtraValue, id, 0, diag.FixManualReview, edit(id, 0, 1, "{", "[")),
	}, ApplyOptions{Mode: ApplyModeAll})
	require.NoError(t, err)

	assert.Len(t, res.Applied, 2)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "applicability is manual", res.Skipped[0].Reason)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, `{"a":1,"b":[2]}`, string(res.Changes[0].Content))
	assert.Equal(t, 2, res.Changes[0].EditCount)
}

func TestPlanConflicts(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.css", []byte("abcdef"))

	res, err := Plan(fs, []diag.Diagnostic{
		fixDiag(diag.SynUnexpectedToken, id, 1, diag.FixAlwaysSafe, edit(id, 1, 3, "bc", "X")),
		fixDiag(diag.SynUnexpectedToken, id, 2, diag.FixAlwaysSafe, edit(id, 2, 4, "cd", "Y")),
		fixDiag(diag.SynUnexpectedToken, id, 5, diag.FixAlwaysSafe, edit(id, 5, 6, "zz", "")),
	}, ApplyOptions{Mode: ApplyModeAll})
	require.NoError(t, err)

	require.Len(t, res.Applied, 1)
	require.Len(t, res.Skipped, 2)
	assert.Contains(t, res.Skipped[0].Reason, "conflicts")
	assert.Equal(t, "existing text does not match expected content", res.Skipped[1].Reason)
	assert.Equal(t, "aXdef", string(res.Changes[0].Content))
}

func TestPlanModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.css", []byte("a b c"))
	diags := []diag.Diagnostic{
		fixDiag(diag.SynUnexpectedToken, id, 0, diag.FixManualReview, edit(id, 0, 1, "a", "A")),
		fixDiag(diag.SynEmptyElement, id, 2, diag.FixAlwaysSafe, edit(id, 2, 3, "b", "B")),
		fixDiag(diag.SynEmptyElement, id, 4, diag.FixAlwaysSafe, edit(id, 4, 5, "c", "C")),
	}

	once, err := Plan(fs, diags, ApplyOptions{Mode: ApplyModeOnce})
	require.NoError(t, err)
	assert.Equal(t, "a B c", string(once.Changes[0].Content))

	byCode, err := Plan(fs, diags, ApplyOptions{Mode: ApplyModeCode, Code: diag.SynUnexpectedToken})
	require.NoError(t, err)
	assert.Equal(t, "A b c", string(byCode.Changes[0].Content))

	all, err := Plan(fs, diags, ApplyOptions{Mode: ApplyModeAll, Unsafe: true})
	require.NoError(t, err)
	assert.Equal(t, "A B C", string(all.Changes[0].Content))

	_, err = Plan(fs, diags, ApplyOptions{Mode: ApplyModeCode, Code: diag.LexBadURL})
	assert.True(t, errors.Is(err, ErrNoFixes))

	_, err = Plan(fs, nil, ApplyOptions{})
	assert.True(t, errors.Is(err, ErrNoFixes))
}

func TestApplyWritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,]"), 0o600))

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)

	_, err = Apply(fs, []diag.Diagnostic{
		fixDiag(diag.SynJSONTrailingComma, id, 2, diag.FixAlwaysSafe, edit(id, 2, 3, ",", "")),
	}, ApplyOptions{Mode: ApplyModeAll})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(data))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestApplyText(t *testing.T) {
	out, err := ApplyText("a{b:c;;}", []diag.FixEdit{
		edit(0, 6, 7, ";", ""),
		edit(0, 1, 1, "", " "),
		edit(0, 0, 0, "", "/* x */"),
	})
	require.NoError(t, err)
	assert.Equal(t, "/* x */a {b:c;}", out)

	_, err = ApplyText("abc", []diag.FixEdit{edit(0, 0, 2, "", ""), edit(0, 1, 3, "", "")})
	assert.Error(t, err)
}

func TestSpansConflict(t *testing.T) {
	cases := []struct {
		a, b source.TextRange
		want bool
	}{
		{source.NewRange(0, 0), source.NewRange(0, 0), false},
		{source.NewRange(2, 2), source.NewRange(0, 4), true},
		{source.NewRange(0, 2), source.NewRange(2, 2), false},
		{source.NewRange(0, 2), source.NewRange(1, 3), true},
		{source.NewRange(0, 2), source.NewRange(2, 4), false},
	}
	for _, c := range cases {
		a := diag.FixEdit{Span: source.SpanOf(0, c.a)}
		b := diag.FixEdit{Span: source.SpanOf(0, c.b)}
		assert.Equal(t, c.want, spansConflict(a, b), "%s vs %s", c.a, c.b)
	}
}
