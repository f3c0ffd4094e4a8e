package driver

import (
	"vesszo/internal/diag"
	"vesszo/internal/observ"
	"vesszo/internal/source"
)

// Result is the outcome of checking one document.
type Result struct {
	Path    string
	FileID  source.FileID
	Loaded  bool // false when the document could not be read; Bag holds the error
	Tokens  int
	Bag     *diag.Bag
	Dropped int // findings over MaxDiagnostics
	Timing  *observ.Report
}

// Diagnostics returns the findings of r in reporting order.
func (r *Result) Diagnostics() []diag.Diagnostic {
	if r == nil || r.Bag == nil {
		return nil
	}
	return r.Bag.Items()
}

// Collect concatenates the diagnostics of results in order.
func Collect(results []Result) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range results {
		out = append(out, results[i].Diagnostics()...)
	}
	return out
}

// CountAtLeast counts diagnostics with severity >= sev across results.
func CountAtLeast(results []Result, sev diag.Severity) int {
	n := 0
	for i := range results {
		if results[i].Bag != nil {
			n += results[i].Bag.CountAtLeast(sev)
		}
	}
	return n
}

// MergeTimings sums the per-document timing reports.
func MergeTimings(results []Result) observ.Report {
	var total observ.Report
	for i := range results {
		if results[i].Timing != nil {
			total.Merge(*results[i].Timing)
		}
	}
	return total
}
