package driver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/biomejs/biome-sub019/internal/css"
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/json"
	"github.com/biomejs/biome-sub019/internal/observ"
	"github.com/biomejs/biome-sub019/internal/project"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
	"github.com/biomejs/biome-sub019/internal/trace"
)

// Options are shared by every driver entry point.
type Options struct {
	Config project.Config
	// Lang forces a language; LangUnknown detects it per file.
	Lang Language
	// Cache serves the diagnostics of unchanged files without building a
	// tree. Leave it nil when the caller needs Root.
	Cache *DiskCache
	// Timings records phase durations on every result.
	Timings bool
}

// Facts are the counts a grammar derives from its tree. CSS fills the
// first three, JSON fills MaxDepth.
type Facts struct {
	Rules        int `json:"rules,omitempty" yaml:"rules,omitempty" msgpack:"rules,omitempty"`
	Selectors    int `json:"selectors,omitempty" yaml:"selectors,omitempty" msgpack:"selectors,omitempty"`
	Declarations int `json:"declarations,omitempty" yaml:"declarations,omitempty" msgpack:"declarations,omitempty"`
	MaxDepth     int `json:"max_depth,omitempty" yaml:"max_depth,omitempty" msgpack:"max_depth,omitempty"`
}

// FileResult is the outcome of parsing one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Lang   Language
	// Root is nil for cache hits and for files that were not parsed.
	Root   *syntax.SyntaxNode
	Bag    *diag.Bag
	Facts  Facts
	Timing *observ.Report
	Cached bool
}

func (r *FileResult) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// ParseFile loads path into a fresh FileSet and parses it.
func ParseFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSetWithBase(opts.Config.Root())
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fs, ParseSource(ctx, fs, fileID, opts), nil
}

// ParseSource parses a file already stored in fs. fs is only read, so
// several goroutines may parse different files of one FileSet.
func ParseSource(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *FileResult {
	file := fs.Get(fileID)
	_, span := trace.StartSpan(ctx, trace.ScopeFile, "parse")
	span.WithExtra("path", file.Path)

	res := &FileResult{
		Path:   file.Path,
		FileID: fileID,
		Lang:   opts.Lang,
		Bag:    diag.NewBag(opts.Config.Files.MaxDiagnostics),
	}
	if res.Lang == LangUnknown {
		res.Lang = DetectLanguage(file.Path)
	}
	if res.Lang == LangUnknown {
		diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.ProjUnknownLang, source.SpanOf(fileID, source.TextRange{}),
			fmt.Sprintf("cannot tell the language of %s", file.Path)).
			WithNote(source.TextRange{}, "pass --lang css or --lang json").
			Emit()
		span.End("unknown language")
		return res
	}
	span.WithExtra("lang", res.Lang.String())

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	var key project.Digest
	if opts.Cache != nil {
		idx := timer.Begin("cache")
		key = cacheKey(file, res.Lang, opts)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err == nil && hit && payload.Schema == diskCacheSchemaVersion {
			res.Cached = true
			res.Facts = payload.Facts
			res.Bag.AddAll(payload.diagnostics(fileID))
			timer.End(idx, "hit")
			finishTiming(res, timer)
			span.End("cached")
			return res
		}
		timer.End(idx, "miss")
	}

	idx := timer.Begin("parse")
	var diags []diag.Diagnostic
	src := string(file.Content)
	switch res.Lang {
	case LangCSS:
		parsed := css.Parse(src, opts.Config.CSSOptions())
		res.Root, diags = parsed.Root, parsed.Diagnostics
		res.Facts = Facts{
			Rules:        parsed.Facts.Rules,
			Selectors:    parsed.Facts.Selectors,
			Declarations: parsed.Facts.Declarations,
		}
	case LangJSON:
		parsed := json.Parse(src, opts.Config.JSONOptions(file.Path))
		res.Root, diags = parsed.Root, parsed.Diagnostics
		res.Facts = Facts{MaxDepth: parsed.Facts.MaxDepth}
	}
	timer.End(idx, fmt.Sprintf("%d diagnostics", len(diags)))

	// recovery may report the same error twice at one position
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	for _, d := range diags {
		diag.Emit(reporter, d.WithFile(fileID))
	}

	if opts.Cache != nil {
		// a failed write only costs the next run a parse
		if err := opts.Cache.Put(key, newDiskPayload(res)); err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache_write_failed", err.Error())
		}
	}

	finishTiming(res, timer)
	span.End(fmt.Sprintf("%d diagnostics", res.Bag.Len()))
	return res
}

func finishTiming(res *FileResult, timer *observ.Timer) {
	if timer == nil {
		return
	}
	report := timer.Report()
	res.Timing = &report
	appendTimingDiagnostic(res.Bag, res.FileID, timingPayload{
		Path:    res.Path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	})
}

// cacheKey covers everything that changes the diagnostics of a file: its
// bytes, the language, the grammar options, the diagnostic limit and the
// tool version.
func cacheKey(file *source.File, lang Language, opts Options) project.Digest {
	var options []byte
	switch lang {
	case LangCSS:
		options = encodeKeyPart(opts.Config.CSSOptions())
	case LangJSON:
		options = encodeKeyPart(opts.Config.JSONOptions(file.Path))
	}
	return project.Combine(project.Digest(file.Hash),
		[]byte(lang.String()),
		options,
		[]byte(strconv.Itoa(opts.Config.Files.MaxDiagnostics)),
		[]byte(cacheSalt()),
	)
}
