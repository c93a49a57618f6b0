package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/trace"
)

// ProgressStatus is where a file is in a directory run.
type ProgressStatus uint8

const (
	StatusQueued ProgressStatus = iota
	StatusWorking
	StatusDone
	StatusError
)

// ProgressEvent reports one file changing status. Events for a file arrive
// in order; events of different files interleave.
type ProgressEvent struct {
	Path   string
	Status ProgressStatus
}

// DirOptions configure CheckDir.
type DirOptions struct {
	Options
	// Jobs caps the parsing goroutines; 0 means GOMAXPROCS.
	Jobs int
	// Progress, when set, is called from worker goroutines.
	Progress func(ProgressEvent)
}

// ListFiles returns the files under dir that the config includes, sorted.
// Excluded directories are not descended into.
func ListFiles(dir string, opts Options) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && opts.Config.Excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if !opts.Config.Included(rel) {
			return nil
		}
		// с --lang любой включённый файл годится, иначе только известные
		if opts.Lang == LangUnknown && DetectLanguage(path) == LangUnknown {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir parses every included file under dir in parallel. Results are in
// path order; files that could not be read get an IO diagnostic instead of
// failing the run.
func CheckDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []FileResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopePhase, "check_dir")
	defer span.End("")

	files, err := ListFiles(dir, opts.Options)
	if err != nil {
		return nil, nil, err
	}
	span.WithExtra("files", fmt.Sprint(len(files)))

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	maxSize := opts.Config.Files.MaxSize
	for _, path := range files {
		if maxSize > 0 {
			if info, statErr := os.Stat(path); statErr == nil && info.Size() > maxSize {
				loadErrors[path] = errTooLarge{size: info.Size(), limit: maxSize}
				fileIDs[path] = fileSet.AddVirtual(path, nil)
				continue
			}
		}
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			// пустой виртуальный файл, чтобы диагностика знала путь
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		fileIDs[path] = fileID
	}

	for _, path := range files {
		opts.report(path, StatusQueued)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				results[i] = loadFailure(path, fileIDs[path], loadErr, opts.Config.Files.MaxDiagnostics)
				opts.report(path, StatusError)
				return nil
			}

			opts.report(path, StatusWorking)
			res := ParseSource(gctx, fileSet, fileIDs[path], opts.Options)
			results[i] = *res
			if res.HasErrors() {
				opts.report(path, StatusError)
			} else {
				opts.report(path, StatusDone)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

func (o DirOptions) report(path string, status ProgressStatus) {
	if o.Progress != nil {
		o.Progress(ProgressEvent{Path: path, Status: status})
	}
}

type errTooLarge struct {
	size, limit int64
}

func (e errTooLarge) Error() string {
	return fmt.Sprintf("file is %d bytes, over the max_size of %d", e.size, e.limit)
}

func loadFailure(path string, fileID source.FileID, err error, maxDiagnostics int) FileResult {
	bag := diag.NewBag(maxDiagnostics)
	code := diag.IOLoadFileError
	msg := "failed to load file: " + err.Error()
	if tooLarge := (errTooLarge{}); errors.As(err, &tooLarge) {
		code = diag.IOFileTooLarge
		msg = "skipped: " + err.Error()
	}
	bag.Add(diag.NewError(code, source.TextRange{}, msg).WithFile(fileID))
	return FileResult{Path: path, FileID: fileID, Lang: DetectLanguage(path), Bag: bag}
}
