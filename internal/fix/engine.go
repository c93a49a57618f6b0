// Package fix applies the edits attached to diagnostics.
package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines which fixes are taken.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota // first fix only, safe ones preferred
	ApplyModeAll                   // every fix at or above MinApplicability
	ApplyModeCode                  // every fix of diagnostics with Code
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode ApplyMode
	Code diag.Code
	// Unsafe also takes heuristic and manual-review fixes in ApplyModeAll.
	Unsafe bool
}

// AppliedFix records a fix that went in.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.Applicability
	Path          string
	EditCount     int
}

// SkippedFix records a fix that did not, with the reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange is the new content of one file.
type FileChange struct {
	File      source.FileID
	Path      string
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Changes []FileChange
}

type candidate struct {
	id    string
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Plan selects fixes from diagnostics and computes the resulting file
// contents without touching the disk.
func Plan(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skipped := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skipped...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skipped, changes := applyCandidates(fs, selected)
	result.Applied = applied
	result.Skipped = append(result.Skipped, skipped...)
	result.Changes = changes
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// Apply runs Plan and writes the changed files, keeping their mode.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result, err := Plan(fs, diagnostics, opts)
	if err != nil {
		return result, err
	}
	for _, change := range result.Changes {
		file := fs.Get(change.File)
		if file.Flags&source.FileVirtual != 0 {
			continue
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, change.Content, mode); err != nil {
			return result, fmt.Errorf("write %s: %w", file.Path, err)
		}
	}
	return result, nil
}

func gatherCandidates(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			cands = append(cands, candidate{
				id:    fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx),
				diag:  d,
				fix:   f,
				order: len(cands),
			})
		}
	}
	return cands
}

// sortCandidates orders by file, then position, then insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	var selected []candidate
	var skipped []SkippedFix
	skip := func(c candidate, reason string) {
		skipped = append(skipped, SkippedFix{ID: c.id, Title: c.fix.Title, Reason: reason})
	}

	switch opts.Mode {
	case ApplyModeCode:
		for _, c := range candidates {
			if c.diag.Code == opts.Code {
				selected = append(selected, c)
			}
		}
		if len(selected) == 0 {
			skipped = append(skipped, SkippedFix{ID: opts.Code.ID(), Reason: "no fixes for code"})
		}
	case ApplyModeAll:
		for _, c := range candidates {
			if c.fix.Applicability == diag.FixAlwaysSafe || opts.Unsafe {
				selected = append(selected, c)
				continue
			}
			skip(c, "applicability is "+c.fix.Applicability.String())
		}
	case ApplyModeOnce:
		idx := slices.IndexFunc(candidates, func(c candidate) bool {
			return c.fix.Applicability == diag.FixAlwaysSafe
		})
		if idx < 0 {
			idx = 0
		}
		selected = []candidate{candidates[idx]}
	}
	return selected, skipped
}

func applyCandidates(fs *source.FileSet, selected []candidate) ([]AppliedFix, []SkippedFix, []FileChange) {
	buffers := make(map[source.FileID][]byte)
	appliedEdits := make(map[source.FileID][]diag.FixEdit)
	editCount := make(map[source.FileID]int)

	var applied []AppliedFix
	var skipped []SkippedFix

	for _, cand := range selected {
		staged := make(map[source.FileID][]byte)
		stagedEdits := make(map[source.FileID][]diag.FixEdit)
		total := 0
		var reason string

		for fileID, edits := range groupEditsByFile(cand.fix.Edits) {
			file := fs.Get(fileID)
			if file == nil {
				reason = "target file is unknown"
				break
			}
			if conflictsWithExisting(appliedEdits[fileID], edits) {
				reason = "conflicts with previously applied edits in " + file.FormatPath("auto", fs.BaseDir())
				break
			}
			base, ok := buffers[fileID]
			if !ok {
				base = file.Content
			}
			working, done, err := applyEdits(base, appliedEdits[fileID], edits)
			if err != nil {
				reason = err.Error()
				break
			}
			staged[fileID] = working
			stagedEdits[fileID] = done
			total += len(edits)
		}

		if reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for fileID, buf := range staged {
			buffers[fileID] = buf
			editCount[fileID] += len(stagedEdits[fileID]) - len(appliedEdits[fileID])
			appliedEdits[fileID] = stagedEdits[fileID]
		}
		applied = append(applied, AppliedFix{
			ID:            cand.id,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			Path:          formatFilePath(fs, cand.diag.Primary.File),
			EditCount:     total,
		})
	}

	changes := make([]FileChange, 0, len(buffers))
	for fileID, buf := range buffers {
		changes = append(changes, FileChange{
			File:      fileID,
			Path:      formatFilePath(fs, fileID),
			EditCount: editCount[fileID],
			Content:   buf,
		})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].File < changes[j].File })
	return applied, skipped, changes
}

// applyEdits applies edits, given in original coordinates, on top of base
// which already holds prior. It returns the new buffer and prior+edits.
func applyEdits(base []byte, prior, edits []diag.FixEdit) ([]byte, []diag.FixEdit, error) {
	working := slices.Clone(base)
	done := slices.Clone(prior)

	// справа налево, чтобы смещения ещё не применённых правок не поехали
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Span.Start == edits[j].Span.Start {
			return edits[i].Span.End > edits[j].Span.End
		}
		return edits[i].Span.Start > edits[j].Span.Start
	})

	for _, edit := range edits {
		start := int(edit.Span.Start) + cumulativeDelta(done, int(edit.Span.Start))
		end := int(edit.Span.End) + cumulativeDelta(done, int(edit.Span.End))
		if start < 0 || end < start || end > len(working) {
			return nil, nil, errors.New("edit span out of range")
		}
		if edit.OldText != "" && string(working[start:end]) != edit.OldText {
			return nil, nil, errors.New("existing text does not match expected content")
		}
		working = slices.Concat(working[:start], []byte(edit.NewText), working[end:])
		done = insertEditSorted(done, edit)
	}
	return working, done, nil
}

// ApplyText applies edits to text directly, without a FileSet. Overlapping
// edits are an error.
func ApplyText(text string, edits []diag.FixEdit) (string, error) {
	sorted := slices.Clone(edits)
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			if spansConflict(a, b) {
				return text, fmt.Errorf("edits %s and %s overlap", a.Span.TextRange, b.Span.TextRange)
			}
		}
	}
	out, _, err := applyEdits([]byte(text), nil, sorted)
	if err != nil {
		return text, err
	}
	return string(out), nil
}

func conflictsWithExisting(existing, edits []diag.FixEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict treats spans as half-open. Two insertions never conflict;
// an insertion conflicts with a span strictly containing its position.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	switch {
	case aStart == aEnd && bStart == bEnd:
		return false
	case aStart == aEnd:
		return bStart < aStart && aStart < bEnd
	case bStart == bEnd:
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func groupEditsByFile(edits []diag.FixEdit) map[source.FileID][]diag.FixEdit {
	buckets := make(map[source.FileID][]diag.FixEdit)
	for _, edit := range edits {
		buckets[edit.Span.File] = append(buckets[edit.Span.File], edit)
	}
	return buckets
}

// cumulativeDelta is the size change of applied edits ending at or before pos.
func cumulativeDelta(edits []diag.FixEdit, pos int) int {
	delta := 0
	for _, e := range edits {
		if int(e.Span.Start) > pos {
			break
		}
		if int(e.Span.End) <= pos {
			delta += len(e.NewText) - int(e.Span.Len())
		}
	}
	return delta
}

func insertEditSorted(edits []diag.FixEdit, edit diag.FixEdit) []diag.FixEdit {
	idx := sort.Search(len(edits), func(i int) bool {
		if edits[i].Span.Start == edit.Span.Start {
			return edits[i].Span.End >= edit.Span.End
		}
		return edits[i].Span.Start > edit.Span.Start
	})
	return slices.Insert(edits, idx, edit)
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	file := fs.Get(fileID)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
