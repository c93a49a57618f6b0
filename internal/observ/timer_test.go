package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	lex := tm.Begin("lex")
	tm.End(lex, "")
	tm.Measure("parse", func() {})
	tm.End(42, "ignored")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	assert.Equal(t, "lex", r.Phases[0].Name)
	assert.InDelta(t, 1.0, r.Phases[0].DurationMS, 1e-9)
	assert.InDelta(t, 2.0, r.TotalMS, 1e-9)
}

func TestReportAdd(t *testing.T) {
	var total Report
	for range 3 {
		tm := NewTimer()
		tm.now = fakeClock(2 * time.Millisecond)
		tm.Measure("parse", func() {})
		total.Add(tm.Report())
	}
	require.Len(t, total.Phases, 1)
	assert.Equal(t, 3, total.Phases[0].Count)
	assert.InDelta(t, 6.0, total.TotalMS, 1e-9)

	s := total.Summary()
	assert.True(t, strings.HasPrefix(s, "timings:\n"))
	assert.Contains(t, s, "x3")
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Measure("parse", func() {})
	assert.Empty(t, tm.Report().Phases)
}
