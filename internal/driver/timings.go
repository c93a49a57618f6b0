package driver

import (
	"encoding/json"
	"fmt"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/observ"
	"github.com/biomejs/biome-sub019/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds an info diagnostic carrying the report as a
// JSON note, so that every output format shows timings without a schema
// change. It is appended after caching and never stored.
func appendTimingDiagnostic(bag *diag.Bag, fileID source.FileID, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "file"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.IOTimings, source.TextRange{}, msg).
		WithNote(source.TextRange{}, string(data)).
		WithFile(fileID)

	if bag.Add(entry) {
		return
	}
	// a full bag still gets its timings
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
