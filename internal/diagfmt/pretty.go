package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
)

const tabWidth = 4

type palette struct {
	sev    map[diag.Severity]*color.Color
	loc    *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
	fix    *color.Color
	minus  *color.Color
	plus   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
		minus:  color.New(color.FgRed),
		plus:   color.New(color.FgGreen),
	}
	all := []*color.Color{p.loc, p.gutter, p.caret, p.note, p.fix, p.minus, p.plus}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строки контекста с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	file := fs.Get(d.Primary.File)
	if file == nil {
		fmt.Fprintf(w, "%s %s: %s\n", pal.sev[d.Severity].Sprint(d.Severity), d.Code.ID(), d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary.File, d.Primary.TextRange)
	path := formatPath(fs, d.Primary.File, opts.PathMode)

	fmt.Fprintf(w, "%s %s %s: %s\n",
		pal.loc.Sprintf("%s:%d:%d:", path, start.Line, start.Col),
		pal.sev[d.Severity].Sprint(d.Severity),
		pal.sev[d.Severity].Sprint(d.Code.ID()),
		d.Message)

	writeSnippet(w, file, start, end, opts, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span.File, n.Span.TextRange)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
				formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	if opts.ShowFixes {
		for i, f := range d.Fixes {
			fmt.Fprintf(w, "  %s %s [%s]\n", pal.fix.Sprintf("fix #%d:", i+1), f.Title, f.Applicability)
			for _, e := range f.Edits {
				es, ee := fs.Resolve(e.Span.File, e.Span.TextRange)
				fmt.Fprintf(w, "    %s:%d:%d-%d:%d apply=%q\n",
					formatPath(fs, e.Span.File, opts.PathMode), es.Line, es.Col, ee.Line, ee.Col, e.NewText)
				if opts.ShowPreview {
					writePreview(w, fs, e, pal)
				}
			}
		}
	}
}

func writeSnippet(w io.Writer, file *source.File, start, end source.LineCol, opts PrettyOpts, pal palette) {
	lineCount := source.SizeOf(len(file.LineIdx)) + 1
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lineCount)
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		line := expandTabs(file.GetLine(ln))
		if opts.Width > 0 && runewidth.StringWidth(line) > int(opts.Width) {
			line = runewidth.Truncate(line, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), line)
		if ln != start.Line {
			continue
		}
		raw := file.GetLine(ln)
		from := min(int(start.Col)-1, len(raw))
		to := len(raw)
		if end.Line == start.Line {
			to = min(max(int(end.Col)-1, from), len(raw))
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		width := max(runewidth.StringWidth(expandTabs(raw[from:to])), 1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad), pal.caret.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

func writePreview(w io.Writer, fs *source.FileSet, e diag.FixEdit, pal palette) {
	preview, err := buildFixEditPreview(fs, e)
	if err != nil {
		return
	}
	fmt.Fprintln(w, "    preview:")
	for _, l := range preview.before {
		fmt.Fprintf(w, "      %s\n", pal.minus.Sprint("- "+l))
	}
	for _, l := range preview.after {
		fmt.Fprintf(w, "      %s\n", pal.plus.Sprint("+ "+l))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Summary prints the closing "N errors, M warnings in K files" line.
func Summary(w io.Writer, bag *diag.Bag, files int, useColor bool) {
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	pal := newPalette(useColor)
	msg := fmt.Sprintf("%s, %s in %s", plural(errs, "error"), plural(warns, "warning"), plural(files, "file"))
	switch {
	case errs > 0:
		fmt.Fprintln(w, pal.sev[diag.SevError].Sprint(msg))
	case warns > 0:
		fmt.Fprintln(w, pal.sev[diag.SevWarning].Sprint(msg))
	default:
		fmt.Fprintln(w, pal.fix.Sprint(msg))
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
