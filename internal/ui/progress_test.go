package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biomejs/biome-sub019/internal/driver"
)

func newModel(t *testing.T, files ...string) *progressModel {
	t.Helper()
	m, ok := NewProgressModel("checking", "/p", files, nil).(*progressModel)
	require.True(t, ok)
	return m
}

func TestApplyEvent_UpdatesStatus(t *testing.T) {
	m := newModel(t, "/p/a.css", "/p/b.json")

	m.applyEvent(driver.ProgressEvent{Path: "/p/a.css", Status: driver.StatusDone})
	m.applyEvent(driver.ProgressEvent{Path: "/p/b.json", Status: driver.StatusError})
	m.applyEvent(driver.ProgressEvent{Path: "/p/unknown.css", Status: driver.StatusDone})

	finished, failed := m.counts()
	assert.Equal(t, 2, finished)
	assert.Equal(t, 1, failed)
}

func TestView_ShowsRelativePathsAndCounts(t *testing.T) {
	m := newModel(t, "/p/a.css", "/p/sub/b.json")
	m.applyEvent(driver.ProgressEvent{Path: "/p/sub/b.json", Status: driver.StatusError})

	view := m.View()
	assert.Contains(t, view, "checking (1/2, 1 with errors)")
	assert.Contains(t, view, "sub/b.json")
	assert.NotContains(t, view, "/p/sub")
	assert.Contains(t, view, "queued")
}

func TestView_CapsRows(t *testing.T) {
	var files []string
	for i := range 30 {
		files = append(files, "/p/"+strings.Repeat("x", i+1)+".css")
	}
	m := newModel(t, files...)
	m.applyEvent(driver.ProgressEvent{Path: files[29], Status: driver.StatusWorking})

	rows := m.visibleItems()
	require.Len(t, rows, m.maxRows)
	assert.Equal(t, files[29], rows[0].path, "files in flight come first")
	assert.Contains(t, m.View(), "… 10 more")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestEmptyModelRendersNothing(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, "", m.View())
}
