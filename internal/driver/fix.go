package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/biomejs/biome-sub019/internal/fix"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/trace"
)

// DefaultMaxPasses bounds the parse and fix rounds of FixSource.
const DefaultMaxPasses = 8

// FixOptions configure FixFile and FixSource.
type FixOptions struct {
	Options
	Apply     fix.ApplyOptions
	MaxPasses int
	// Write stores a changed result back to the file.
	Write bool
}

// FixResult is the outcome of fixing one file.
type FixResult struct {
	Path     string
	Passes   int
	Applied  []fix.AppliedFix
	Skipped  []fix.SkippedFix
	Original []byte
	Content  []byte
	// FileSet and Final hold the parse of Content; Final.Bag is what is left.
	FileSet *source.FileSet
	Final   *FileResult
	Written bool
}

func (r *FixResult) Changed() bool {
	return !bytes.Equal(r.Original, r.Content)
}

// FixSource parses content, applies the selected fixes and parses again
// until nothing applies, the text stops changing or MaxPasses is reached.
// Fixes of one pass never overlap; fixes that lose a conflict get another
// chance in the next pass against fresh diagnostics.
func FixSource(ctx context.Context, path string, content []byte, opts FixOptions) (*FixResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "fix")
	span.WithExtra("path", path)

	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	// кэш хранит диагностики исходного текста, а не промежуточного
	opts.Cache = nil

	res := &FixResult{Path: path, Original: content, Content: content}
	for {
		fs := source.NewFileSetWithBase(opts.Config.Root())
		fileID := fs.Add(path, res.Content, source.FileVirtual)
		res.FileSet = fs
		res.Final = ParseSource(ctx, fs, fileID, opts.Options)
		if res.Passes >= maxPasses {
			break
		}

		plan, err := fix.Plan(fs, res.Final.Bag.Items(), opts.Apply)
		res.Skipped = plan.Skipped
		if errors.Is(err, fix.ErrNoFixes) {
			break
		}
		if err != nil {
			span.End("error")
			return nil, err
		}

		next, ok := changedContent(plan, fileID)
		if !ok || bytes.Equal(next, res.Content) {
			break
		}
		res.Passes++
		res.Applied = append(res.Applied, plan.Applied...)
		res.Content = next
		trace.Point(ctx, trace.ScopeFile, "fix_pass", fmt.Sprintf("pass %d: %d fixes", res.Passes, len(plan.Applied)))

		if opts.Apply.Mode == fix.ApplyModeOnce {
			maxPasses = res.Passes
		}
	}

	span.End(fmt.Sprintf("%d passes, %d fixes", res.Passes, len(res.Applied)))
	return res, nil
}

// FixFile runs FixSource over the file at path and, with Write, stores the
// result keeping the file mode.
func FixFile(ctx context.Context, path string, opts FixOptions) (*FixResult, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	res, err := FixSource(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}
	if !opts.Write || !res.Changed() {
		return res, nil
	}
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, res.Content, mode); err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	res.Written = true
	return res, nil
}

func changedContent(plan *fix.ApplyResult, fileID source.FileID) ([]byte, bool) {
	for _, change := range plan.Changes {
		if change.File == fileID {
			return change.Content, true
		}
	}
	return nil, false
}
