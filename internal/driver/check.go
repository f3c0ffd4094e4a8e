package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sourcegraph/conc"

	"vesszo/internal/detector"
	"vesszo/internal/diag"
	"vesszo/internal/lexer"
	"vesszo/internal/observ"
	"vesszo/internal/source"
	"vesszo/internal/trace"
)

// CheckFile tokenizes the document once and runs every detector of set over
// the shared tokens. Detectors run concurrently; their findings are
// concatenated in set order.
//
// set must not be used by another goroutine during the call (see Set.Fresh).
func CheckFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, set detector.Set, opts Options) *Result {
	file := fs.Get(fileID)
	tracer := trace.FromContext(ctx)
	docSpan := trace.Begin(tracer, trace.ScopeDocument, file.Path, trace.CurrentSpan(ctx).SpanID)

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	lexIdx := timer.Begin("lex")
	tokens := lexer.All(file, opts.Lexer)
	timer.End(lexIdx, fmt.Sprintf("%d tokens", len(tokens)))

	// каждый детектор пишет только в свой слот
	slots := make([]*diag.Bag, len(set))
	var wg conc.WaitGroup
	for i, d := range set {
		wg.Go(func() {
			if ctx.Err() != nil {
				return
			}
			span := trace.Begin(tracer, trace.ScopeDetector, d.Name(), docSpan.ID())
			start := time.Now()
			found := diag.NewBag(0)
			found.AddAll(d.Scan(tokens))
			slots[i] = found
			timer.Record("detect:"+d.Name(), time.Since(start), "")
			span.End(strconv.Itoa(found.Len()) + " findings")
		})
	}
	wg.Wait()

	filterIdx := timer.Begin("filter")
	all := diag.NewBag(0)
	for _, found := range slots {
		all.Merge(found)
	}
	raw := all.Len()
	all.Filter(opts.Threshold)
	if opts.Sort {
		all.Sort()
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	dropped := bag.AddAll(all.Items())
	timer.End(filterIdx, fmt.Sprintf("%d of %d kept", bag.Len(), raw))

	res := &Result{
		Path:    file.Path,
		FileID:  fileID,
		Loaded:  true,
		Tokens:  len(tokens),
		Bag:     bag,
		Dropped: dropped,
	}
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}
	docSpan.WithExtra("findings", strconv.Itoa(bag.Len())).End("")
	return res
}

// CheckText checks in-memory text registered as a virtual document.
func CheckText(ctx context.Context, name string, text []byte, set detector.Set, opts Options) (*source.FileSet, *Result) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, text)
	return fs, CheckFile(ctx, fs, id, set, opts)
}
