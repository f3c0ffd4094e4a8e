package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"vesszo/internal/detector"
	"vesszo/internal/diag"
	"vesszo/internal/lexer"
	"vesszo/internal/source"
	"vesszo/internal/trace"
)

// CheckReader reads documents from r until a read yields no input and checks
// each of them from a clean detector state. On a terminal every end-of-file
// closes one document; piped input is a single document.
// The first document is registered as name, later ones as name#2, name#3...
func CheckReader(ctx context.Context, r io.Reader, name string, set detector.Set, opts Options) (*source.FileSet, []Result, error) {
	fs := source.NewFileSet()
	var results []Result
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return fs, results, err
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return fs, results, fmt.Errorf("read %s: %w", name, err)
		}
		if len(data) == 0 {
			break
		}
		docName := name
		if n > 1 {
			docName = name + "#" + strconv.Itoa(n)
		}
		id := fs.AddVirtual(docName, data)
		emit(opts.Sink, Event{File: docName, Stage: StageCheck, Status: StatusWorking})
		res := CheckFile(ctx, fs, id, set, opts)
		emit(opts.Sink, Event{File: docName, Stage: StageCheck, Status: StatusDone, Findings: res.Bag.Len()})
		results = append(results, *res)
	}
	return fs, results, nil
}

// CheckLines streams r line by line. Every line is tokenized on its own and
// fed to ScanRow; a row end behaves like a line break, so the findings match
// a whole-document scan of the same text (an open sentence or pair still
// spans lines, a greeting at the end of a line is closed).
// Lines are registered as virtual files "name:N"; diagnostics carry name as Path.
// Kept findings go to opts.Reporter as soon as their line is scanned and are
// also collected in the returned Result.
func CheckLines(ctx context.Context, r io.Reader, name string, set detector.Set, opts Options) (*source.FileSet, *Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDocument, name, trace.CurrentSpan(ctx).SpanID)
	defer span.End("by line")

	fs := source.NewFileSet()
	set.Reset()
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &Result{Path: name, Loaded: true, Bag: bag}

	br := bufio.NewReader(r)
	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return fs, res, err
		}
		line, readErr := br.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fs, res, fmt.Errorf("read %s: %w", name, readErr)
		}
		if len(line) == 0 && readErr != nil {
			break
		}

		id := fs.AddVirtual(name+":"+strconv.Itoa(row), trimNewline(line))
		// перевод строки уже отброшен, границу строки задаёт ScanRow
		tokens := lexer.All(fs.Get(id), opts.Lexer)
		res.Tokens += len(tokens)
		found := set.ScanRow(tokens)
		if opts.Sort {
			b := diag.NewBag(0)
			b.AddAll(found)
			b.Sort()
			found = b.Items()
		}
		for _, d := range found {
			if !opts.keep(d) {
				continue
			}
			d.Path = name
			if !bag.Add(d) {
				res.Dropped++
				continue
			}
			if opts.Reporter != nil {
				opts.Reporter.Report(d)
			}
		}
		if readErr != nil {
			break
		}
	}
	return fs, res, nil
}

func trimNewline(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
