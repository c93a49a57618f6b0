package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biomejs/biome-sub019/internal/trace"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]trace.Level{
		"off":    trace.LevelOff,
		"ERROR":  trace.LevelError,
		"phase":  trace.LevelPhase,
		"file":   trace.LevelFile,
		"detail": trace.LevelFile,
		"debug":  trace.LevelDebug,
	} {
		got, err := trace.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := trace.ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelFiltersScopes(t *testing.T) {
	assert.True(t, trace.LevelPhase.ShouldEmit(trace.ScopePhase))
	assert.False(t, trace.LevelPhase.ShouldEmit(trace.ScopeFile))
	assert.True(t, trace.LevelFile.ShouldEmit(trace.ScopeFile))
	assert.False(t, trace.LevelFile.ShouldEmit(trace.ScopeNode))
	assert.True(t, trace.LevelDebug.ShouldEmit(trace.ScopeNode))
	assert.False(t, trace.LevelOff.ShouldEmit(trace.ScopeDriver))
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelFile, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	ctx, root := trace.StartSpan(ctx, trace.ScopeDriver, "check")
	_, file := trace.StartSpan(ctx, trace.ScopeFile, "file:a.css")
	file.WithExtra("lang", "css").WithExtra("diagnostics", "2").End("")
	_, node := trace.StartSpan(ctx, trace.ScopeNode, "rule")
	node.End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "→ check")
	assert.Contains(t, lines[1], "  → file:a.css")
	assert.Contains(t, lines[2], "← file:a.css {diagnostics=2, lang=css}")
	assert.Contains(t, lines[3], "← check (ok)")
	assert.Zero(t, node.ID())
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{
		Level:      trace.LevelPhase,
		Mode:       trace.ModeStream,
		Output:     &buf,
		OutputPath: "run.ndjson",
	})
	require.NoError(t, err)

	span := trace.Begin(tr, trace.ScopePhase, "parse", 0)
	span.End("")
	require.NoError(t, tr.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &ev))
	assert.Equal(t, "end", ev["kind"])
	assert.Equal(t, "phase", ev["scope"])
	assert.Equal(t, "parse", ev["name"])
}

func TestRingTracerWraps(t *testing.T) {
	ring := trace.NewRingTracer(3, trace.LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ring.Emit(&trace.Event{Kind: trace.KindPoint, Scope: trace.ScopeFile, Name: name})
	}
	snap := ring.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "c", snap[0].Name)
	assert.Equal(t, "e", snap[2].Name)
	assert.Less(t, snap[0].Seq, snap[2].Seq)

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, trace.FormatText))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestErrorLevelKeepsRing(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelError, Mode: trace.ModeStream})
	require.NoError(t, err)
	ring, ok := trace.FindRing(tr)
	require.True(t, ok)

	trace.Begin(tr, trace.ScopePhase, "lex", 0).End("")
	trace.Begin(tr, trace.ScopeFile, "file:x.json", 0).End("")
	assert.Len(t, ring.Snapshot(), 2)
}

func TestMultiTracerCopiesEvents(t *testing.T) {
	var buf bytes.Buffer
	ring := trace.NewRingTracer(8, trace.LevelPhase)
	multi := trace.NewMultiTracer(trace.LevelPhase,
		trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatAuto), ring)

	trace.Point(trace.WithTracer(context.Background(), multi), trace.ScopeDriver, "cache", "hit")
	assert.Contains(t, buf.String(), "• cache (hit)")
	_, found := trace.FindRing(multi)
	assert.True(t, found)
	assert.Len(t, ring.Snapshot(), 1)
}

func TestNopByDefault(t *testing.T) {
	tr := trace.FromContext(context.Background())
	assert.False(t, tr.Enabled())
	ctx, span := trace.StartSpan(context.Background(), trace.ScopeDriver, "x")
	assert.Zero(t, trace.CurrentSpan(ctx).SpanID)
	assert.Zero(t, span.End(""))
	assert.Nil(t, trace.StartHeartbeat(tr, 0))

	off, err := trace.New(trace.Config{Level: trace.LevelOff})
	require.NoError(t, err)
	assert.Equal(t, trace.Nop, off)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, trace.FormatNDJSON, trace.DetectFormat(trace.FormatAuto, "out.ndjson"))
	assert.Equal(t, trace.FormatText, trace.DetectFormat(trace.FormatAuto, "-"))
	assert.Equal(t, trace.FormatNDJSON, trace.DetectFormat(trace.FormatNDJSON, "-"))
	_, err := trace.ParseFormat("chrome")
	assert.Error(t, err)
}
