package main

import (
	"fmt"
	"io"

	"vesszo/internal/driver"
)

// printTimings writes the merged phase timings of results.
func printTimings(out io.Writer, results []driver.Result) {
	if out == nil {
		return
	}
	report := driver.MergeTimings(results)
	if len(report.Phases) == 0 {
		return
	}
	fmt.Fprint(out, report.Summary())
}
