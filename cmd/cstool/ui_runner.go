package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/biomejs/biome-sub019/internal/driver"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/ui"
)

// uiMode is the value of `check --ui`.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModes = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	mode, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("unknown --ui mode %q, want auto, on or off", value)
	}
	return mode, nil
}

// wantsProgressView reports whether a directory check should run behind the
// progress view. The view draws on stderr, so auto looks at that stream.
func wantsProgressView(mode uiMode, view *os.File) bool {
	if mode == uiModeAuto {
		return isTerminal(view)
	}
	return mode == uiModeOn
}

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runCheckWithUI runs CheckDir behind the progress view. The file list is
// computed up front so the view can show queued files from the start.
func runCheckWithUI(ctx context.Context, dir string, opts driver.DirOptions) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListFiles(dir, opts.Options)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(ev driver.ProgressEvent) { events <- ev }
		fs, results, err := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// after Ctrl+C or a UI error nobody reads events; drain so CheckDir
	// never blocks on a full channel
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
