// Package diag defines the diagnostic model shared by lexers, parsers and the
// tools built on top of them.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go),
//     grouped by range: LEX1xxx, SYN2xxx, IO4xxx, PRJ5xxx, FIX6xxx.
//   - Message: short, actionable text such as "expected `,` but found `{`".
//   - Primary: a source.Span. Parsers work on bare text and leave the file at
//     zero; the driver moves diagnostics into their file with WithFile.
//   - Notes: secondary spans with extra context.
//   - Fixes: structured text edits that internal/fix can apply.
//
// Diagnostics are values. A parser never stops because of one, and emitting a
// diagnostic never changes the tree that is produced.
//
// # Emitting
//
// Phases that do not own a slice of diagnostics report through a Reporter.
// BagReporter collects into a Bag, DedupReporter filters repeated entries and
// ReportBuilder chains notes and fixes before Emit.
//
// Rendering lives in internal/diagfmt; applying fixes lives in internal/fix.
package diag
