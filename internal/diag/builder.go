package diag

import "github.com/biomejs/biome-sub019/internal/source"

func New(sev Severity, code Code, r source.TextRange, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  source.Span{TextRange: r},
		Message:  msg,
	}
}

func NewError(code Code, r source.TextRange, msg string) Diagnostic {
	return New(SevError, code, r, msg)
}

func NewWarning(code Code, r source.TextRange, msg string) Diagnostic {
	return New(SevWarning, code, r, msg)
}

func (d Diagnostic) WithNote(r source.TextRange, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: source.SpanOf(d.Primary.File, r), Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

func (d Diagnostic) WithFixSuggestion(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}

// ReplaceEdit builds a guarded replacement edit.
func ReplaceEdit(r source.TextRange, oldText, newText string) FixEdit {
	return FixEdit{Span: source.Span{TextRange: r}, OldText: oldText, NewText: newText}
}

// InsertEdit builds an insertion at offset.
func InsertEdit(offset source.TextSize, text string) FixEdit {
	return FixEdit{Span: source.Span{TextRange: source.EmptyAt(offset)}, NewText: text}
}

// DeleteEdit removes r.
func DeleteEdit(r source.TextRange, oldText string) FixEdit {
	return FixEdit{Span: source.Span{TextRange: r}, OldText: oldText}
}
