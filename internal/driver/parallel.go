package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tyir/internal/trace"
)

// SheetExt is the extension of type sheet files.
const SheetExt = ".tys"

// FileResult is the outcome for one input of LowerFiles. Exactly one of
// Result and Err is set.
type FileResult struct {
	Path   string
	Result *LowerResult
	Err    error
}

// ListSheets возвращает отсортированный список всех *.tys файлов в директории
func ListSheets(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SheetExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// LowerFiles lowers paths concurrently, at most opts.Jobs at a time. Results
// come back in input order. A file that fails to load does not stop the
// others; only cancellation of ctx makes LowerFiles return an error.
func LowerFiles(ctx context.Context, paths []string, opts LowerOptions) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	span := trace.BeginCtx(ctx, trace.ScopeDriver, "lower-files")
	ctx = trace.WithParent(ctx, span)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			res, err := Lower(gctx, path, opts)
			// индексы уникальны для каждой горутины, мьютекс не нужен
			results[i] = FileResult{Path: path, Result: res, Err: err}

			evt := Event{File: path, Stage: StageLower, Status: StatusDone, Elapsed: time.Since(started)}
			switch {
			case err != nil:
				evt.Status = StatusError
				evt.Err = err
			case res.Bag.HasErrors():
				evt.Status = StatusError
			default:
				evt.Cached = res.Cached
			}
			emit(opts.Progress, evt)

			// Ошибки загрузки остаются в results; группу рвёт только отмена.
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			return nil
		})
	}

	err := g.Wait()
	span.WithExtra("files", strconv.Itoa(len(paths))).End(errDetail(err))
	return results, err
}

func errDetail(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
