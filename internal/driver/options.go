package driver

import (
	"runtime"

	"vesszo/internal/diag"
	"vesszo/internal/lexer"
)

// DefaultThreshold is the confidence a finding must exceed to be reported.
const DefaultThreshold = 0.30

// Options tune a check run. The zero value reports every finding with a
// positive confidence; use DefaultOptions for the usual behaviour.
type Options struct {
	Threshold      float64 // keep findings with confidence > Threshold
	Sort           bool    // order by row, column, code instead of detector order
	MaxDiagnostics int     // per document, <= 0 means unbounded
	Jobs           int     // parallel documents, <= 0 means GOMAXPROCS
	Strict         bool    // reject explicitly named files with unknown extensions
	Timings        bool    // record phase timings in Result.Timing
	Lexer          lexer.Options
	Sink           Sink // optional progress events
	// Reporter, when set, receives every kept finding of CheckLines as soon
	// as its row has been scanned.
	Reporter diag.Reporter
}

// DefaultOptions returns options with the standard threshold.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

func (o Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

func (o Options) keep(d diag.Diagnostic) bool {
	return d.Severity >= diag.SevError || d.Confidence > o.Threshold
}
