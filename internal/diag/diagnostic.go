package diag

import (
	"github.com/biomejs/biome-sub019/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces Span with NewText. OldText, when set, must match the
// current text for the edit to apply.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Applicability tells how much a fix can be trusted without review.
type Applicability uint8

const (
	FixAlwaysSafe Applicability = iota
	FixSafeWithHeuristics
	FixManualReview
)

func (a Applicability) String() string {
	switch a {
	case FixAlwaysSafe:
		return "safe"
	case FixSafeWithHeuristics:
		return "heuristic"
	default:
		return "manual"
	}
}

type Fix struct {
	Title         string
	Applicability Applicability
	Edits         []FixEdit
}

// Diagnostic never aborts parsing; it is a plain value.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// Range is the primary text range.
func (d Diagnostic) Range() source.TextRange {
	return d.Primary.TextRange
}

// WithFile moves the diagnostic, its notes and its fix edits into file.
// Parsers work on bare text and leave File at zero.
func (d Diagnostic) WithFile(file source.FileID) Diagnostic {
	d.Primary.File = file
	if len(d.Notes) > 0 {
		notes := make([]Note, len(d.Notes))
		for i, n := range d.Notes {
			n.Span.File = file
			notes[i] = n
		}
		d.Notes = notes
	}
	if len(d.Fixes) > 0 {
		fixes := make([]Fix, len(d.Fixes))
		for i, f := range d.Fixes {
			edits := make([]FixEdit, len(f.Edits))
			for j, e := range f.Edits {
				e.Span.File = file
				edits[j] = e
			}
			f.Edits = edits
			fixes[i] = f
		}
		d.Fixes = fixes
	}
	return d
}
