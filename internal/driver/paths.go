package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"vesszo/internal/detector"
	"vesszo/internal/diag"
	"vesszo/internal/ingest"
	"vesszo/internal/source"
	"vesszo/internal/trace"
)

// ExpandPaths replaces every directory in paths with the supported documents
// below it (sorted, hidden directories skipped). Named files are kept as is.
// Duplicates are dropped, first occurrence wins.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{}, len(paths))
	add := func(p string) {
		clean := filepath.Clean(p)
		if _, dup := seen[clean]; dup {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			// ошибку чтения покажет загрузка документа
			add(p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if ingest.Supported(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		slices.Sort(found)
		for _, f := range found {
			add(f)
		}
	}
	return out, nil
}

// CheckPaths expands paths and checks every document in parallel.
// Results keep the order of the expanded paths. Documents that fail to load
// produce a Result with Loaded false and one error diagnostic.
func CheckPaths(ctx context.Context, paths []string, set detector.Set, opts Options) (*source.FileSet, []Result, error) {
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopePass, "check", trace.CurrentSpan(ctx).SpanID)
	defer runSpan.End("")

	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	for _, path := range files {
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен, поэтому документы загружаются заранее
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", runSpan.ID())
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		fileID, err := loadDocument(fileSet, path, opts.Strict)
		if err != nil {
			loadErrors[path] = err
			trace.Point(tracer, trace.ScopeDocument, "load-failed", path+": "+err.Error())
			continue
		}
		fileIDs[path] = fileID
	}
	loadSpan.End("")

	results := make([]Result, len(files))
	ctx = trace.WithSpan(ctx, runSpan)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				results[i] = loadFailure(path, loadErr, opts.MaxDiagnostics)
				emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(opts.Sink, Event{File: path, Stage: StageCheck, Status: StatusWorking})
			start := time.Now()
			// у каждой горутины свои детекторы: состояние не общее
			res := CheckFile(gctx, fileSet, fileIDs[path], set.Fresh(), opts)
			res.Path = path
			results[i] = *res
			emit(opts.Sink, Event{
				File:     path,
				Stage:    StageCheck,
				Status:   StatusDone,
				Findings: res.Bag.Len(),
				Elapsed:  time.Since(start),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func loadFailure(path string, err error, maxDiagnostics int) Result {
	code := diag.IOLoadFileError
	if errors.Is(err, ingest.ErrUnsupported) {
		code = diag.IOUnsupportedType
	}
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(code, path, "failed to load file: "+err.Error()))
	return Result{Path: path, Bag: bag}
}
