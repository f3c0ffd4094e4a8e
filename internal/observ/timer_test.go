package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerConcurrentRecord(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Record("detect", time.Millisecond, "")
		}()
	}
	wg.Wait()
	if got := len(tm.Phases()); got != 8 {
		t.Fatalf("recorded %d phases, want 8", got)
	}
	if r := tm.Report(); r.TotalMS < 8 {
		t.Fatalf("total %.2f ms, want >= 8", r.TotalMS)
	}
}

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("lex")
	tm.End(idx, "12 tokens")
	tm.End(99, "ignored")
	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != "lex" || r.Phases[0].Note != "12 tokens" {
		t.Fatalf("unexpected report %+v", r)
	}
	if !strings.Contains(tm.Summary(), "lex") {
		t.Fatalf("summary misses phase:\n%s", tm.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Record("y", time.Second, "")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "lex", DurationMS: 1}, {Name: "detect", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "detect", DurationMS: 4}, {Name: "filter", DurationMS: 1}}}
	a.Merge(b)
	if a.TotalMS != 8 || len(a.Phases) != 3 {
		t.Fatalf("merged %+v", a)
	}
	if a.Phases[1].DurationMS != 6 || a.Phases[2].Name != "filter" {
		t.Fatalf("merged phases %+v", a.Phases)
	}
}
