package diagfmt

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string             `json:"ruleId"`
	Level            string             `json:"level"`
	Message          sarifMessage       `json:"message"`
	Locations        []sarifLocation    `json:"locations"`
	RelatedLocations []sarifRelLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifRelLocation struct {
	ID               int           `json:"id"`
	Message          sarifMessage  `json:"message"`
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation struct {
		URI string `json:"uri"`
	} `json:"artifactLocation"`
	Region sarifRegion `json:"region"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}},
		Invocations: []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: true,
		}},
		Results: make([]sarifResult, 0, bag.Len()),
	}

	var codes []diag.Code
	for _, d := range bag.Items() {
		if !slices.Contains(codes, d.Code) {
			codes = append(codes, d.Code)
		}
		res := sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifLocationOf(fs, d.Primary)}},
		}
		for i, n := range d.Notes {
			res.RelatedLocations = append(res.RelatedLocations, sarifRelLocation{
				ID:               i + 1,
				Message:          sarifMessage{Text: n.Msg},
				PhysicalLocation: sarifLocationOf(fs, n.Span),
			})
		}
		run.Results = append(run.Results, res)
	}
	slices.Sort(codes)
	run.Tool.Driver.Rules = make([]sarifRule, len(codes))
	for i, c := range codes {
		run.Tool.Driver.Rules[i] = sarifRule{ID: c.ID(), ShortDescription: sarifMessage{Text: c.Title()}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Schema: sarifSchema, Version: "2.1.0", Runs: []sarifRun{run}})
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifLocationOf(fs *source.FileSet, span source.Span) sarifPhysical {
	var phys sarifPhysical
	phys.ArtifactLocation.URI = formatPath(fs, span.File, PathModeRelative)
	phys.Region.ByteOffset = span.Start
	phys.Region.ByteLength = span.Len()
	if fs.Get(span.File) != nil {
		start, end := fs.Resolve(span.File, span.TextRange)
		phys.Region.StartLine, phys.Region.StartColumn = start.Line, start.Col
		phys.Region.EndLine, phys.Region.EndColumn = end.Line, end.Col
	}
	return phys
}
