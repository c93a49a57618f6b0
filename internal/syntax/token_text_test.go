package syntax_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

func textOf(s string) syntax.TokenText {
	return syntax.NewTokenText(syntax.NewGreenToken(identKind, s, nil, nil))
}

func collect(seq func(func(syntax.TokenText) bool)) []string {
	var out []string
	for t := range seq {
		out = append(out, t.Text())
	}
	return out
}

func TestTokenText_SplitKeepsEmptyPieces(t *testing.T) {
	parts := collect(textOf("a,,b,").Split(syntax.RunePattern(',')))
	assert.Equal(t, []string{"a", "", "b", ""}, parts)
}

func TestTokenText_SplitEmptyPatternYieldsWholeText(t *testing.T) {
	parts := collect(textOf("a,b").Split(syntax.StringPattern("")))
	assert.Equal(t, []string{"a,b"}, parts)
}

func TestTokenText_SplitIsRestartableAndStops(t *testing.T) {
	seq := textOf("x--y--z").Split(syntax.StringPattern("--"))
	first := collect(seq)
	second := collect(seq)
	assert.Equal(t, []string{"x", "y", "z"}, first)
	assert.Equal(t, first, second)

	var got []string
	for part := range seq {
		got = append(got, part.Text())
		break
	}
	assert.Equal(t, []string{"x"}, got)
}

func TestTokenText_SplitViewsShareToken(t *testing.T) {
	whole := textOf("ab;cd")
	for part := range whole.Split(syntax.RunePattern(';')) {
		assert.Same(t, whole.Token(), part.Token())
	}
	parts := slices.Collect(whole.Split(syntax.RunePattern(';')))
	require.Len(t, parts, 2)
	assert.Equal(t, source.NewRange(3, 5), parts[1].Range())
}

func TestTokenText_Trim(t *testing.T) {
	assert.Equal(t, "hello", textOf("  \thello\n ").TrimToken().Text())
	assert.True(t, textOf(" \n\t ").TrimToken().IsEmpty())
	assert.Equal(t, "a b", textOf(" a b ").TrimToken().Text())
}

func TestTokenText_SliceAndCompare(t *testing.T) {
	full := textOf("prefix-body")
	body := full.Slice(source.NewRange(7, 11))
	assert.Equal(t, "body", body.Text())
	assert.Equal(t, syntax.TextSize(4), body.Len())
	assert.Equal(t, "od", body.Slice(source.NewRange(1, 3)).Text())

	other := textOf("body")
	assert.True(t, body.Equal(other))
	assert.Equal(t, body.Hash(), other.Hash())
	assert.Equal(t, 0, body.Compare(other))
	assert.Equal(t, -1, textOf("a").Compare(textOf("b")))
	assert.True(t, textOf("HoVer").EqualFold("hover"))
	assert.True(t, full.HasPrefix("pre"))

	assert.Panics(t, func() { body.Slice(source.NewRange(0, 9)) })
}
